package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/absfs/huffmanfs"
	"github.com/absfs/huffmanfs/huffman"
	"github.com/absfs/huffmanfs/internal/naming"
	"github.com/rs/zerolog"
)

// compressFile compresses input into output. An empty output is derived
// from the input name and the algorithm.
func compressFile(ctx context.Context, input, output string, algo huffmanfs.Algorithm, level int, w io.Writer, logger zerolog.Logger) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var compressed []byte
	if algo == huffmanfs.AlgorithmHuffman {
		compressed, err = huffman.Encode(data, naming.Extension(input))
		if output == "" {
			output = naming.CompressedPath(input)
		}
	} else {
		compressed, err = huffmanfs.CompressBytes(data, algo, level)
		if output == "" {
			output = input + huffmanfs.GetExtension(algo)
		}
	}
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(output, compressed, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Debug().
		Str("input", input).
		Str("output", output).
		Str("algorithm", string(algo)).
		Int("original", len(data)).
		Int("compressed", len(compressed)).
		Msg("compressed")
	fmt.Fprintf(w, "%s -> %s (%d -> %d bytes, %.1f%% saved)\n", input, output, len(data), len(compressed),
		huffmanfs.GetCompressionPercentage(int64(len(data)), int64(len(compressed))))
	return nil
}

// decompressFile restores input into output. The algorithm comes from the
// magic bytes, then from the file extension; anything else is treated as a
// Huffman file so a foreign file fails with huffman.ErrBadMagic.
func decompressFile(ctx context.Context, input, output string, w io.Writer, logger zerolog.Logger) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	algo, ok := huffmanfs.DetectCompressionAlgorithm(data)
	if !ok {
		algo = huffmanfs.AlgorithmHuffman
		if byExt, found := huffmanfs.DetectAlgorithmFromExtension(input); found {
			algo = byExt
		}
	}

	var restored []byte
	if algo == huffmanfs.AlgorithmHuffman {
		var ext string
		restored, ext, err = huffman.Decompress(data)
		if output == "" {
			output = naming.DecompressedPath(input, ext)
		}
	} else {
		restored, err = huffmanfs.DecompressBytes(data, algo)
		if output == "" {
			output = strippedPath(input)
		}
	}
	if err != nil {
		return fmt.Errorf("decompress %s: %w", input, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(output, restored, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Debug().
		Str("input", input).
		Str("output", output).
		Str("algorithm", string(algo)).
		Int("restored", len(restored)).
		Msg("decompressed")
	fmt.Fprintf(w, "%s -> %s (%d bytes)\n", input, output, len(restored))
	return nil
}

// strippedPath drops a known compression extension from input, or falls
// back to the Huffman naming scheme when there is none.
func strippedPath(input string) string {
	if stripped, _, ok := huffmanfs.StripExtension(input); ok {
		return stripped
	}
	return naming.DecompressedPath(input, "")
}

// inspectFile prints the header fields and the code table of a Huffman file.
func inspectFile(input string, w io.Writer) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	f, err := huffman.ParseFile(data)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}
	root, err := huffman.DeserializeTree(f.Tree)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}
	codes := huffman.GenerateCodes(root)

	fmt.Fprintf(w, "extension:   %q\n", f.Extension)
	fmt.Fprintf(w, "tree:        %d bytes, %d leaves\n", len(f.Tree), root.Leaves())
	fmt.Fprintf(w, "symbols:     %d\n", f.TotalSymbols)
	fmt.Fprintf(w, "header:      %d bytes\n", f.HeaderSize())
	fmt.Fprintf(w, "payload:     %d bytes\n", len(f.Payload))
	fmt.Fprintln(w, "codes:")
	for _, sym := range codes.Symbols() {
		fmt.Fprintf(w, "  %-6s %s\n", symbolLabel(sym), codes[sym])
	}
	return nil
}

func symbolLabel(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("%q", rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
