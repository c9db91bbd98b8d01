// Package naming derives output file names for the huff command.
//
// Compressing dir/report.txt writes dir/report_compressed.huff and records
// "txt" in the header; decompressing that file writes
// dir/report_decompressed.txt. A file without a recorded extension is
// restored with DefaultExtension.
package naming

import "strings"

const (
	CompressedSuffix   = "_compressed"
	DecompressedSuffix = "_decompressed"
	HuffExtension      = "huff"
	DefaultExtension   = "dat"
)

// Split breaks path into its directory (with trailing separator), the file
// name without extension, and the extension without the dot. Both '/' and
// '\' count as separators.
func Split(path string) (dir, stem, ext string) {
	name := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		dir, name = path[:i+1], path[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return dir, name[:i], name[i+1:]
	}
	return dir, name, ""
}

// Extension returns the extension of path without the dot.
func Extension(path string) string {
	_, _, ext := Split(path)
	return ext
}

// CompressedPath returns the output path for compressing input.
func CompressedPath(input string) string {
	dir, stem, _ := Split(input)
	return dir + stem + CompressedSuffix + "." + HuffExtension
}

// DecompressedPath returns the output path for decompressing input whose
// header recorded ext. A trailing CompressedSuffix on the input name is
// dropped so a compress/decompress cycle yields name_decompressed.ext.
func DecompressedPath(input, ext string) string {
	dir, stem, _ := Split(input)
	stem = strings.TrimSuffix(stem, CompressedSuffix)
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return dir + stem + DecompressedSuffix + "." + ext
}
