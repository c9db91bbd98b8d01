package huffmanfs

import (
	"bytes"
	"io"

	"github.com/absfs/absfs"
)

// Preset configurations for common use cases

// commonSkipPatterns matches content that is already compressed
var commonSkipPatterns = []string{
	`\.(jpg|jpeg|png|gif|webp)$`,     // Images
	`\.(mp4|mkv|avi|mov|webm)$`,      // Videos
	`\.(mp3|flac|ogg|m4a|aac)$`,      // Audio
	`\.(zip|gz|bz2|xz|7z|rar|tar)$`,  // Archives
	`\.(huff|zst|lz4|br|sz|snappy)$`, // Compressed
}

// FastestConfig returns a configuration optimized for speed
func FastestConfig() *Config {
	return &Config{
		Algorithm:         AlgorithmLZ4,
		Level:             0,
		AutoDetect:        true,
		PreserveExtension: true,
		StripExtension:    true,
		BufferSize:        64 * 1024,
		MinSize:           0,
	}
}

// RecommendedConfig returns the recommended configuration for general use.
// Uses the Huffman codec, skipping small files and content that is
// already compressed, where a static byte code gains nothing.
func RecommendedConfig() *Config {
	return &Config{
		Algorithm:         AlgorithmHuffman,
		Level:             0,
		AutoDetect:        true,
		PreserveExtension: true,
		StripExtension:    true,
		BufferSize:        64 * 1024,
		MinSize:           512, // Skip very small files
		SkipPatterns:      commonSkipPatterns,
	}
}

// BestCompressionConfig returns a configuration optimized for maximum compression
// Use for static content or write-once/read-many scenarios
func BestCompressionConfig() *Config {
	return &Config{
		Algorithm:         AlgorithmBrotli,
		Level:             11,
		AutoDetect:        true,
		PreserveExtension: true,
		StripExtension:    true,
		BufferSize:        128 * 1024,
		MinSize:           1024, // Only compress files > 1KB
		SkipPatterns:      commonSkipPatterns,
	}
}

// CompatibleConfig returns a configuration using gzip for maximum compatibility
func CompatibleConfig() *Config {
	return &Config{
		Algorithm:         AlgorithmGzip,
		Level:             6,
		AutoDetect:        true,
		PreserveExtension: true,
		StripExtension:    true,
		BufferSize:        64 * 1024,
		MinSize:           512,
		SkipPatterns:      commonSkipPatterns,
	}
}

// LowCPUConfig returns a configuration optimized for low CPU usage
func LowCPUConfig() *Config {
	return &Config{
		Algorithm:         AlgorithmSnappy,
		Level:             0, // Snappy has no levels
		AutoDetect:        true,
		PreserveExtension: true,
		StripExtension:    true,
		BufferSize:        32 * 1024,
		MinSize:           1024,
		SkipPatterns:      commonSkipPatterns,
	}
}

// NewWithRecommendedConfig creates a new compressed filesystem with recommended settings
func NewWithRecommendedConfig(base absfs.Filer) (*FS, error) {
	return New(base, RecommendedConfig())
}

// NewWithFastestConfig creates a new compressed filesystem optimized for speed
func NewWithFastestConfig(base absfs.Filer) (*FS, error) {
	return New(base, FastestConfig())
}

// NewWithBestCompression creates a new compressed filesystem optimized for compression ratio
func NewWithBestCompression(base absfs.Filer) (*FS, error) {
	return New(base, BestCompressionConfig())
}

// CompressBytes compresses a byte slice using the specified algorithm and level.
// Huffman output records no original extension; use huffman.Encode for that.
func CompressBytes(data []byte, algo Algorithm, level int) ([]byte, error) {
	if err := validateLevel(algo, level); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	compressor, err := createCompressor(algo, &buf, level, "")
	if err != nil {
		return nil, err
	}

	if _, err := compressor.Write(data); err != nil {
		compressor.Close()
		return nil, err
	}

	if err := compressor.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecompressBytes decompresses a byte slice using the specified algorithm
func DecompressBytes(data []byte, algo Algorithm) ([]byte, error) {
	decompressor, err := createDecompressor(algo, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	return io.ReadAll(decompressor)
}

// DetectCompressionAlgorithm detects the compression algorithm from data
func DetectCompressionAlgorithm(data []byte) (Algorithm, bool) {
	return IsCompressed(data)
}

// GetCompressionRatio calculates the compression ratio for given original and compressed sizes
// Returns a value between 0 and 1, where lower is better
// E.g., 0.5 means the compressed size is 50% of the original
func GetCompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(compressedSize) / float64(originalSize)
}

// GetCompressionPercentage calculates the compression percentage
// Returns the percentage of space saved (0-100)
// E.g., 50 means 50% space savings
func GetCompressionPercentage(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return (1 - float64(compressedSize)/float64(originalSize)) * 100
}
