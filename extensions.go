package huffmanfs

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/absfs/huffmanfs/huffman"
)

// Extension mapping
var extensionMap = map[Algorithm]string{
	AlgorithmHuffman: ".huff",
	AlgorithmGzip:    ".gz",
	AlgorithmZstd:    ".zst",
	AlgorithmLZ4:     ".lz4",
	AlgorithmBrotli:  ".br",
	AlgorithmSnappy:  ".sz",
}

// Reverse extension mapping (extension -> algorithm)
var reverseExtensionMap = map[string]Algorithm{
	".huff":   AlgorithmHuffman,
	".gz":     AlgorithmGzip,
	".gzip":   AlgorithmGzip,
	".zst":    AlgorithmZstd,
	".zstd":   AlgorithmZstd,
	".lz4":    AlgorithmLZ4,
	".br":     AlgorithmBrotli,
	".sz":     AlgorithmSnappy,
	".snappy": AlgorithmSnappy,
}

// Magic bytes for compression format detection, checked in this order
var magicBytes = []struct {
	algo  Algorithm
	magic []byte
}{
	{AlgorithmHuffman, []byte(huffman.Magic)},
	{AlgorithmGzip, []byte{0x1f, 0x8b}},
	{AlgorithmZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{AlgorithmLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{AlgorithmBrotli, []byte{0xce, 0xb2, 0xcf, 0x81}}, // partial, first frame only
	{AlgorithmSnappy, []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50}},
}

// magicPeekSize is enough bytes to match any entry of magicBytes
const magicPeekSize = 10

// GetExtension returns the file extension for an algorithm
func GetExtension(algo Algorithm) string {
	return extensionMap[algo]
}

// DetectAlgorithmFromExtension detects the algorithm from file extension
func DetectAlgorithmFromExtension(name string) (Algorithm, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	algo, ok := reverseExtensionMap[ext]
	return algo, ok
}

// DetectAlgorithm detects compression algorithm from magic bytes.
// It returns "" when r does not start with a known signature.
func DetectAlgorithm(r io.Reader) (Algorithm, error) {
	buf := make([]byte, magicPeekSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	algo, _ := IsCompressed(buf[:n])
	return algo, nil
}

// AddExtension adds the compression extension to a filename
func AddExtension(name string, algo Algorithm, preserveOriginal bool) string {
	ext := GetExtension(algo)
	if ext == "" {
		return name
	}

	if preserveOriginal {
		return name + ext
	}

	// Replace original extension
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ext
}

// StripExtension removes compression extension from filename
func StripExtension(name string) (string, Algorithm, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if algo, ok := reverseExtensionMap[ext]; ok {
		return name[:len(name)-len(ext)], algo, true
	}
	return name, "", false
}

// HasCompressionExtension checks if filename has a compression extension
func HasCompressionExtension(name string) bool {
	_, ok := DetectAlgorithmFromExtension(name)
	return ok
}

// IsCompressed checks if data appears to be compressed based on magic bytes
func IsCompressed(data []byte) (Algorithm, bool) {
	for _, m := range magicBytes {
		if bytes.HasPrefix(data, m.magic) {
			return m.algo, true
		}
	}
	return "", false
}

// originalExtension returns the extension Huffman records for name:
// the last extension without its dot.
func originalExtension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}
