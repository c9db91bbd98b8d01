package huffmanfs

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/absfs/huffmanfs/huffman"
	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// createCompressor creates a compressor for the specified algorithm.
// ext is the original file extension; only Huffman records it.
func createCompressor(algo Algorithm, w io.Writer, level int, ext string) (io.WriteCloser, error) {
	switch algo {
	case AlgorithmHuffman:
		return huffman.NewWriter(w, ext), nil
	case AlgorithmGzip:
		return createGzipCompressor(w, level)
	case AlgorithmZstd:
		return createZstdCompressor(w, level)
	case AlgorithmLZ4:
		return createLZ4Compressor(w, level)
	case AlgorithmBrotli:
		return createBrotliCompressor(w, level)
	case AlgorithmSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// createDecompressor creates a decompressor for the specified algorithm
func createDecompressor(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case AlgorithmHuffman:
		hr, err := huffman.NewReader(r)
		if err != nil {
			return nil, err
		}
		return hr, nil
	case AlgorithmGzip:
		return gzip.NewReader(r)
	case AlgorithmZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case AlgorithmLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case AlgorithmBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case AlgorithmSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// validateLevel checks level against the range the algorithm accepts.
// Zero always selects the algorithm default.
func validateLevel(algo Algorithm, level int) error {
	var lo, hi int
	switch algo {
	case AlgorithmHuffman, AlgorithmSnappy:
		return nil
	case AlgorithmGzip:
		lo, hi = gzip.HuffmanOnly, gzip.BestCompression
	case AlgorithmZstd:
		lo, hi = 0, 22
	case AlgorithmLZ4:
		lo, hi = 0, len(lz4Levels)
	case AlgorithmBrotli:
		lo, hi = brotli.BestSpeed, brotli.BestCompression
	default:
		return ErrUnsupportedAlgorithm
	}
	if level < lo || level > hi {
		return fmt.Errorf("%w: %s accepts %d..%d, got %d", ErrInvalidLevel, algo, lo, hi, level)
	}
	return nil
}

func createGzipCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}

func createZstdCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	var opts []zstd.EOption
	if level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	enc, err := zstd.NewWriter(w, opts...)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

var lz4Levels = []lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func createLZ4Compressor(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if level > 0 {
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level-1])); err != nil {
			return nil, err
		}
	}
	return zw, nil
}

func createBrotliCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}
