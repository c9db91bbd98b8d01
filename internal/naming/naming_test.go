package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		path           string
		dir, stem, ext string
	}{
		{"report.txt", "", "report", "txt"},
		{"/data/report.txt", "/data/", "report", "txt"},
		{`C:\data\report.txt`, `C:\data\`, "report", "txt"},
		{"archive.tar.gz", "", "archive.tar", "gz"},
		{"README", "", "README", ""},
		{"dir.d/README", "dir.d/", "README", ""},
		{".bashrc", "", "", "bashrc"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			dir, stem, ext := Split(tt.path)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestCompressedPath(t *testing.T) {
	assert.Equal(t, "/data/report_compressed.huff", CompressedPath("/data/report.txt"))
	assert.Equal(t, "README_compressed.huff", CompressedPath("README"))
	assert.Equal(t, `C:\x\a_compressed.huff`, CompressedPath(`C:\x\a.bin`))
}

func TestDecompressedPath(t *testing.T) {
	assert.Equal(t, "/data/report_decompressed.txt", DecompressedPath("/data/report_compressed.huff", "txt"))
	assert.Equal(t, "/data/blob_decompressed.dat", DecompressedPath("/data/blob.huff", ""))
	assert.Equal(t, "notes_decompressed.md", DecompressedPath("notes", "md"))
	assert.Equal(t, "notes_decompressed.txt", DecompressedPath("notes.huff", ".txt"))
	assert.Equal(t, "notes_decompressed.dat", DecompressedPath("notes.huff", "."))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension("a/b/c.txt"))
	assert.Equal(t, "", Extension("a/b.d/c"))
}
