// Command huff compresses and decompresses files with static Huffman
// coding, or with one of the other algorithms huffmanfs supports.
//
// Usage:
//
//	huff                                      interactive mode
//	huff compress [-algo NAME] [-level N] [-o OUT] FILE
//	huff decompress [-o OUT] FILE
//	huff inspect FILE
//
// LOG_LEVEL selects the log level (default info).
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/absfs/huffmanfs"
	"github.com/absfs/huffmanfs/internal/logging"
	"github.com/rs/zerolog"
)

var errUsage = errors.New("expected exactly one FILE argument")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := logging.FromEnv("huff", zerolog.InfoLevel)

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, logger)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) int {
	if len(args) == 0 {
		return interactive(ctx, stdin, stdout, logger)
	}

	var err error
	switch args[0] {
	case "compress":
		err = compressCmd(ctx, args[1:], stdout, logger)
	case "decompress":
		err = decompressCmd(ctx, args[1:], stdout, logger)
	case "inspect":
		err = inspectCmd(args[1:], stdout)
	case "help", "-h", "-help", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n", args[0])
		printUsage(stdout)
		return 1
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("failed")
		return 1
	}
	return 0
}

// interactive asks for the mode and the file path on stdin.
func interactive(ctx context.Context, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) int {
	scanner := bufio.NewScanner(stdin)

	fmt.Fprint(stdout, "compress (c) or decompress (d)? ")
	var mode string
	if scanner.Scan() {
		mode = strings.ToLower(strings.TrimSpace(scanner.Text()))
	}
	if mode != "c" && mode != "d" {
		fmt.Fprintf(stdout, "invalid mode %q, expected c or d\n", mode)
		return 1
	}

	fmt.Fprint(stdout, "file path: ")
	if !scanner.Scan() {
		fmt.Fprintln(stdout, "no file path given")
		return 1
	}
	path := strings.TrimSpace(scanner.Text())

	var err error
	if mode == "c" {
		err = compressFile(ctx, path, "", huffmanfs.AlgorithmHuffman, 0, stdout, logger)
	} else {
		err = decompressFile(ctx, path, "", stdout, logger)
	}
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("failed")
		return 1
	}
	return 0
}

func compressCmd(ctx context.Context, args []string, stdout io.Writer, logger zerolog.Logger) error {
	cmd := flag.NewFlagSet("compress", flag.ContinueOnError)
	cmd.SetOutput(stdout)
	algoName := cmd.String("algo", string(huffmanfs.AlgorithmHuffman), "Compression algorithm: huffman, gzip, zstd, lz4, brotli or snappy")
	level := cmd.Int("level", 0, "Compression level, 0 for the algorithm default (ignored by huffman)")
	out := cmd.String("o", "", "Output path (default derived from FILE)")

	if err := cmd.Parse(args); err != nil {
		return err
	}
	if cmd.NArg() != 1 {
		return errUsage
	}
	algo, err := huffmanfs.ParseAlgorithm(*algoName)
	if err != nil {
		return fmt.Errorf("%w: %q", err, *algoName)
	}
	return compressFile(ctx, cmd.Arg(0), *out, algo, *level, stdout, logger)
}

func decompressCmd(ctx context.Context, args []string, stdout io.Writer, logger zerolog.Logger) error {
	cmd := flag.NewFlagSet("decompress", flag.ContinueOnError)
	cmd.SetOutput(stdout)
	out := cmd.String("o", "", "Output path (default derived from FILE and its recorded extension)")

	if err := cmd.Parse(args); err != nil {
		return err
	}
	if cmd.NArg() != 1 {
		return errUsage
	}
	return decompressFile(ctx, cmd.Arg(0), *out, stdout, logger)
}

func inspectCmd(args []string, stdout io.Writer) error {
	cmd := flag.NewFlagSet("inspect", flag.ContinueOnError)
	cmd.SetOutput(stdout)

	if err := cmd.Parse(args); err != nil {
		return err
	}
	if cmd.NArg() != 1 {
		return errUsage
	}
	return inspectFile(cmd.Arg(0), stdout)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: huff [command [flags] FILE]")
	fmt.Fprintln(w, "\nWithout a command huff asks for the mode and the file path.")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  compress     Compress FILE")
	fmt.Fprintln(w, "    -algo string   huffman, gzip, zstd, lz4, brotli or snappy (default \"huffman\")")
	fmt.Fprintln(w, "    -level int     Compression level, 0 for the default")
	fmt.Fprintln(w, "    -o string      Output path")
	fmt.Fprintln(w, "  decompress   Decompress FILE, detecting the algorithm")
	fmt.Fprintln(w, "    -o string      Output path")
	fmt.Fprintln(w, "  inspect      Print the header and code table of a Huffman FILE")
	fmt.Fprintln(w, "\nEnvironment:")
	fmt.Fprintln(w, "  LOG_LEVEL    debug, info, warn, error or off (default info)")
}
