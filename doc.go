// Package huffmanfs provides a transparent compression/decompression wrapper
// for any absfs.Filer implementation, with static Huffman coding as the
// default algorithm.
//
// It automatically compresses data when writing files and decompresses when
// reading. The Huffman codec itself lives in the huffman subpackage; the
// wrapper adds the general purpose algorithms next to it.
//
// # Features
//
//   - Transparent compression/decompression
//   - 6 compression algorithms: huffman, gzip, zstd, lz4, brotli, snappy
//   - Huffman files record the original file extension in their header
//   - Configurable compression levels
//   - Skip patterns for selective compression
//   - Automatic format detection by magic bytes
//   - Statistics tracking and debug logging through zerolog
//
// # Quick Start
//
//	import "github.com/absfs/huffmanfs"
//
//	// Wrap an in-memory filesystem with the default (Huffman) config
//	fs, _ := huffmanfs.New(huffmanfs.NewMemFS(), nil)
//
//	// Write file - automatically compressed as notes.txt.huff
//	f, _ := fs.Create("notes.txt")
//	f.Write([]byte("Hello, compressed world!"))
//	f.Close()
//
//	// Read file - automatically decompressed
//	f, _ = fs.Open("notes.txt")
//	data, _ := io.ReadAll(f)
//	f.Close()
//
// # Algorithm Selection Guide
//
//   - Skewed byte distributions (text, logs): Huffman
//   - General Purpose: Zstd (level 3)
//   - Maximum Speed: LZ4 or Snappy
//   - Maximum Compression: Brotli (level 9-11)
//   - Maximum Compatibility: Gzip
//
// Huffman buffers the whole file and codes each byte independently. Its
// payload is never larger than the input, so a file grows by at most the
// header (about 3 bytes per distinct byte value), and content that is
// already compressed gains nothing.
//
// # Configuration Options
//
// Extension Handling:
//   - PreserveExtension: true  → notes.txt becomes notes.txt.huff
//   - PreserveExtension: false → notes.txt becomes notes.huff; reads of
//     notes.txt find it through the extension recorded in the header
//   - StripExtension: true     → access via "notes.txt" (transparent)
//
// Selective Compression:
//   - SkipPatterns: Skip files matching regex patterns
//   - MinSize: Only compress files above threshold
//   - AutoDetect: Detect and handle pre-compressed files
package huffmanfs
