package huffmanfs

import (
	"fmt"
	"io"
	"testing"
)

// Benchmark data generators
func generateTestData(size int) []byte {
	// Generate semi-compressible data (mix of patterns and random)
	data := make([]byte, size)
	for i := range data {
		if i%4 == 0 {
			data[i] = byte(i % 256)
		} else {
			data[i] = byte(i % 64) // More repetitive for better compression
		}
	}
	return data
}

func generateTextData(size int) []byte {
	// Skewed byte distribution, the case Huffman is built for
	data := make([]byte, size)
	pattern := []byte("The quick brown fox jumps over the lazy dog. ")
	for i := range data {
		data[i] = pattern[i%len(pattern)]
	}
	return data
}

func generateIncompressibleData(size int) []byte {
	// Generate pseudo-random data (hard to compress)
	data := make([]byte, size)
	seed := uint64(12345)
	for i := range data {
		seed = seed*1103515245 + 12345
		data[i] = byte(seed >> 16)
	}
	return data
}

// benchLevels holds a typical level per algorithm
var benchLevels = map[Algorithm]int{
	AlgorithmHuffman: 0,
	AlgorithmGzip:    6,
	AlgorithmZstd:    3,
	AlgorithmLZ4:     0,
	AlgorithmBrotli:  6,
	AlgorithmSnappy:  0,
}

var benchSizes = []int{4 * 1024, 256 * 1024, 1024 * 1024}

func newBenchFS(b *testing.B, algo Algorithm) *FS {
	cfs, err := New(NewMemFS(), &Config{
		Algorithm:         algo,
		Level:             benchLevels[algo],
		PreserveExtension: true,
		StripExtension:    true,
	})
	if err != nil {
		b.Fatal(err)
	}
	return cfs
}

func sizeName(size int) string {
	if size >= 1024*1024 {
		return fmt.Sprintf("%dMB", size/(1024*1024))
	}
	return fmt.Sprintf("%dKB", size/1024)
}

// Benchmark write operations
func BenchmarkWrite(b *testing.B) {
	for _, algo := range Algorithms {
		for _, size := range benchSizes {
			b.Run(string(algo)+"/"+sizeName(size), func(b *testing.B) {
				testData := generateTestData(size)
				b.SetBytes(int64(size))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					cfs := newBenchFS(b, algo)
					f, _ := cfs.Create("test.bin")
					f.Write(testData)
					f.Close()
				}
			})
		}
	}
}

// Benchmark read operations
func BenchmarkRead(b *testing.B) {
	for _, algo := range Algorithms {
		for _, size := range benchSizes {
			b.Run(string(algo)+"/"+sizeName(size), func(b *testing.B) {
				// Prepare compressed file once
				cfs := newBenchFS(b, algo)
				f, _ := cfs.Create("test.bin")
				f.Write(generateTestData(size))
				f.Close()

				b.SetBytes(int64(size))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					f, _ := cfs.Open("test.bin")
					io.ReadAll(f)
					f.Close()
				}
			})
		}
	}
}

// Benchmark different data types
func BenchmarkDataTypes(b *testing.B) {
	generators := []struct {
		name string
		gen  func(int) []byte
	}{
		{"text", generateTextData},
		{"incompressible", generateIncompressibleData},
	}

	for _, g := range generators {
		for _, algo := range []Algorithm{AlgorithmHuffman, AlgorithmZstd, AlgorithmGzip, AlgorithmLZ4} {
			b.Run(g.name+"/"+string(algo), func(b *testing.B) {
				testData := g.gen(1024 * 1024)
				b.SetBytes(int64(len(testData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := CompressBytes(testData, algo, benchLevels[algo]); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// Benchmark full round-trip (write + read)
func BenchmarkRoundTrip1MB(b *testing.B) {
	testData := generateTestData(1024 * 1024)

	for _, algo := range Algorithms {
		b.Run(string(algo), func(b *testing.B) {
			b.SetBytes(int64(len(testData) * 2)) // Count both write and read
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cfs := newBenchFS(b, algo)

				f, _ := cfs.Create("test.bin")
				f.Write(testData)
				f.Close()

				f, _ = cfs.Open("test.bin")
				io.ReadAll(f)
				f.Close()
			}
		})
	}
}
