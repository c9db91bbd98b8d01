package huffmanfs

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/absfs/absfs"
	"github.com/rs/zerolog"
)

// Algorithm represents a compression algorithm
type Algorithm string

const (
	AlgorithmHuffman Algorithm = "huffman"
	AlgorithmGzip    Algorithm = "gzip"
	AlgorithmZstd    Algorithm = "zstd"
	AlgorithmLZ4     Algorithm = "lz4"
	AlgorithmBrotli  Algorithm = "brotli"
	AlgorithmSnappy  Algorithm = "snappy"
)

// Algorithms lists every supported algorithm, Huffman first.
var Algorithms = []Algorithm{
	AlgorithmHuffman,
	AlgorithmGzip,
	AlgorithmZstd,
	AlgorithmLZ4,
	AlgorithmBrotli,
	AlgorithmSnappy,
}

// ParseAlgorithm looks up an algorithm by name, case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, algo := range Algorithms {
		if strings.EqualFold(name, string(algo)) {
			return algo, nil
		}
	}
	return "", ErrUnsupportedAlgorithm
}

// Config holds compression filesystem configuration
type Config struct {
	// Algorithm to use for compression (default: huffman)
	Algorithm Algorithm

	// Compression level (algorithm-specific)
	// huffman: ignored (the code is derived from the data)
	// gzip: 1-9 (6 default)
	// zstd: 1-22 (3 default)
	// lz4: 1-9 (fast default)
	// brotli: 0-11 (6 default)
	// snappy: ignored (no levels)
	Level int

	// Skip patterns - regex patterns for files to skip compression
	// Examples: []string{`\.jpg$`, `\.png$`, `\.mp4$`, `\.zip$`}
	SkipPatterns []string

	// Auto-detect already compressed content by magic bytes
	AutoDetect bool // default: true

	// Preserve original extension (e.g., file.txt.huff vs file.huff).
	// Only Huffman honors false: its header records the original extension,
	// the other formats always keep it in the name.
	PreserveExtension bool // default: true

	// Strip compression extensions on reads (transparent)
	StripExtension bool // default: true

	// Buffer size for streaming (default: 64KB)
	BufferSize int

	// Minimum file size to compress (skip smaller files)
	MinSize int64 // default: 0 (compress all)

	// Logger receives debug events for compressed, skipped and
	// decompressed files. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Algorithm:         AlgorithmHuffman,
		Level:             0,
		SkipPatterns:      nil,
		AutoDetect:        true,
		PreserveExtension: true,
		StripExtension:    true,
		BufferSize:        64 * 1024, // 64KB
		MinSize:           0,
	}
}

// Stats holds compression statistics
type Stats struct {
	FilesCompressed   int64
	FilesDecompressed int64
	FilesSkipped      int64

	BytesRead         int64
	BytesWritten      int64
	BytesCompressed   int64
	BytesDecompressed int64

	AlgorithmCounts sync.Map // map[Algorithm]*int64
}

// GetAlgorithmCount returns the count for a specific algorithm
func (s *Stats) GetAlgorithmCount(algo Algorithm) int64 {
	if val, ok := s.AlgorithmCounts.Load(algo); ok {
		return atomic.LoadInt64(val.(*int64))
	}
	return 0
}

// IncrementAlgorithmCount increments the count for a specific algorithm
func (s *Stats) IncrementAlgorithmCount(algo Algorithm) {
	val, _ := s.AlgorithmCounts.LoadOrStore(algo, new(int64))
	atomic.AddInt64(val.(*int64), 1)
}

// TotalCompressionRatio returns the overall compression ratio
func (s *Stats) TotalCompressionRatio() float64 {
	if s.BytesWritten == 0 {
		return 0
	}
	return float64(s.BytesCompressed) / float64(s.BytesWritten)
}

// TotalDecompressionRatio returns the overall decompression ratio
func (s *Stats) TotalDecompressionRatio() float64 {
	if s.BytesDecompressed == 0 {
		return 0
	}
	return float64(s.BytesRead) / float64(s.BytesDecompressed)
}

var (
	ErrUnsupportedAlgorithm = errors.New("huffmanfs: unsupported compression algorithm")
	ErrInvalidLevel         = errors.New("huffmanfs: invalid compression level")
	ErrSeekNotSupported     = errors.New("huffmanfs: seek not supported for compressed files")
	ErrAlreadyCompressed    = errors.New("huffmanfs: file already compressed")
	ErrCorruptedData        = errors.New("huffmanfs: corrupted compressed data")
)

// FS wraps an absfs.Filer with compression capabilities. It is itself an
// absfs.Filer, so wrappers stack.
type FS struct {
	base   absfs.Filer
	config *Config
	skip   *regexp.Regexp // Compiled skip patterns
	stats  Stats
	mu     sync.RWMutex
}

// New creates a new compressed filesystem wrapper
func New(base absfs.Filer, config *Config) (*FS, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Algorithm == "" {
		config.Algorithm = AlgorithmHuffman
	}
	if err := validateLevel(config.Algorithm, config.Level); err != nil {
		return nil, err
	}

	// Compile skip patterns
	var skip *regexp.Regexp
	if len(config.SkipPatterns) > 0 {
		var err error
		skip, err = regexp.Compile("(?:" + strings.Join(config.SkipPatterns, "|") + ")")
		if err != nil {
			return nil, err
		}
	}

	return &FS{
		base:   base,
		config: config,
		skip:   skip,
	}, nil
}

// shouldSkip returns true if the file should not be compressed
func (cfs *FS) shouldSkip(name string) bool {
	if cfs.skip == nil {
		return false
	}
	return cfs.skip.MatchString(name)
}

// currentConfig returns a snapshot of the configuration
func (cfs *FS) currentConfig() Config {
	cfs.mu.RLock()
	defer cfs.mu.RUnlock()
	return *cfs.config
}

func (cfs *FS) logger() *zerolog.Logger {
	cfs.mu.RLock()
	defer cfs.mu.RUnlock()
	if cfs.config.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return cfs.config.Logger
}

// GetStats returns current statistics
func (cfs *FS) GetStats() *Stats {
	cfs.mu.RLock()
	defer cfs.mu.RUnlock()
	// Return a copy
	s := &Stats{
		FilesCompressed:   atomic.LoadInt64(&cfs.stats.FilesCompressed),
		FilesDecompressed: atomic.LoadInt64(&cfs.stats.FilesDecompressed),
		FilesSkipped:      atomic.LoadInt64(&cfs.stats.FilesSkipped),
		BytesRead:         atomic.LoadInt64(&cfs.stats.BytesRead),
		BytesWritten:      atomic.LoadInt64(&cfs.stats.BytesWritten),
		BytesCompressed:   atomic.LoadInt64(&cfs.stats.BytesCompressed),
		BytesDecompressed: atomic.LoadInt64(&cfs.stats.BytesDecompressed),
	}
	cfs.stats.AlgorithmCounts.Range(func(k, v any) bool {
		n := atomic.LoadInt64(v.(*int64))
		s.AlgorithmCounts.Store(k, &n)
		return true
	})
	return s
}

// ResetStats resets statistics to zero
func (cfs *FS) ResetStats() {
	cfs.mu.Lock()
	defer cfs.mu.Unlock()
	atomic.StoreInt64(&cfs.stats.FilesCompressed, 0)
	atomic.StoreInt64(&cfs.stats.FilesDecompressed, 0)
	atomic.StoreInt64(&cfs.stats.FilesSkipped, 0)
	atomic.StoreInt64(&cfs.stats.BytesRead, 0)
	atomic.StoreInt64(&cfs.stats.BytesWritten, 0)
	atomic.StoreInt64(&cfs.stats.BytesCompressed, 0)
	atomic.StoreInt64(&cfs.stats.BytesDecompressed, 0)
	cfs.stats.AlgorithmCounts.Range(func(k, _ any) bool {
		cfs.stats.AlgorithmCounts.Delete(k)
		return true
	})
}

// SetAlgorithm changes the compression algorithm
func (cfs *FS) SetAlgorithm(algo Algorithm) error {
	if _, err := ParseAlgorithm(string(algo)); err != nil {
		return err
	}
	cfs.mu.Lock()
	defer cfs.mu.Unlock()
	if err := validateLevel(algo, cfs.config.Level); err != nil {
		return err
	}
	cfs.config.Algorithm = algo
	return nil
}

// SetLevel changes the compression level
func (cfs *FS) SetLevel(level int) error {
	cfs.mu.Lock()
	defer cfs.mu.Unlock()
	if err := validateLevel(cfs.config.Algorithm, level); err != nil {
		return err
	}
	cfs.config.Level = level
	return nil
}
