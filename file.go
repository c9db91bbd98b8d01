package huffmanfs

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/absfs/absfs"
)

// compressedFile wraps a file with compression/decompression
type compressedFile struct {
	cfs  *FS
	base absfs.File
	flag int

	// Logical and stored names
	originalName   string
	compressedName string

	// Compression state (write mode)
	writeBuffer     *bytes.Buffer
	writeAlgo       Algorithm
	writeLevel      int
	minSize         int64
	compressedBytes int64

	// Decompression state (read mode)
	decompressor io.ReadCloser
	readAlgo     Algorithm

	// Metadata
	bytesRead    int64
	bytesWritten int64
	closed       bool
	mu           sync.Mutex
}

// newCompressedFile creates a new compressed file wrapper. algo is the
// algorithm implied by the stored name, "" for a plain name.
func newCompressedFile(cfs *FS, base absfs.File, originalName, compressedName string, flag int, algo Algorithm, config Config) (*compressedFile, error) {
	cf := &compressedFile{
		cfs:            cfs,
		base:           base,
		flag:           flag,
		originalName:   originalName,
		compressedName: compressedName,
		writeAlgo:      algo,
		readAlgo:       algo,
	}

	var isCreate = (flag & os.O_CREATE) != 0
	var isWrite = (flag & (os.O_WRONLY | os.O_RDWR | os.O_CREATE)) != 0
	var isReadOnly = (flag & (os.O_WRONLY | os.O_RDWR)) == 0

	// Setup for writing; the compressor runs at close time once the
	// whole content is known
	if isWrite && algo != "" {
		cf.writeBuffer = new(bytes.Buffer)
		cf.writeLevel = config.Level
		cf.minSize = config.MinSize
	}

	// Setup for reading (not on create operations)
	if isReadOnly && !isCreate {
		// Directories and empty files are passed through
		info, err := cf.base.Stat()
		if err == nil && (info.IsDir() || info.Size() == 0) {
			return cf, nil
		}
		if algo != "" || config.AutoDetect {
			if err := cf.setupDecompressor(algo); err != nil {
				return nil, err
			}
		}
	}

	return cf, nil
}

// setupDecompressor checks the magic bytes of the base file and, when
// they name an algorithm, puts a decompressor in front of it. extAlgo is
// the algorithm implied by the stored name.
func (cf *compressedFile) setupDecompressor(extAlgo Algorithm) error {
	detected, err := DetectAlgorithm(cf.base)
	if err != nil {
		return err
	}

	// Seek back to start for reading
	if _, err := cf.base.Seek(0, io.SeekStart); err != nil {
		return err
	}

	algo := detected
	if algo == "" {
		switch extAlgo {
		case AlgorithmBrotli:
			// No reliable magic bytes, trust the extension
			algo = extAlgo
		default:
			// Has magic bytes but didn't match: stored uncompressed
			// (MinSize skip) or not compressed at all
			return nil
		}
	}

	decompressor, err := createDecompressor(algo, cf.base)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorruptedData, cf.originalName, err)
	}
	cf.decompressor = decompressor
	cf.readAlgo = algo
	return nil
}

// Read reads from the file with decompression
func (cf *compressedFile) Read(p []byte) (n int, err error) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return 0, fs.ErrClosed
	}

	// If decompressor is set up, read from it
	if cf.decompressor != nil {
		n, err = cf.decompressor.Read(p)
		if n > 0 {
			cf.bytesRead += int64(n)
			cf.cfs.addBytes(&cf.cfs.stats.BytesRead, int64(n))
			// EOF is returned on the read after the last data
			if err == io.EOF {
				err = nil
			}
		}
		return n, err
	}

	// Otherwise read directly from base
	n, err = cf.base.Read(p)
	if n > 0 {
		cf.bytesRead += int64(n)
		cf.cfs.addBytes(&cf.cfs.stats.BytesRead, int64(n))
	}
	return n, err
}

// Write writes to the file with compression
func (cf *compressedFile) Write(p []byte) (n int, err error) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return 0, fs.ErrClosed
	}

	// If we should compress, write to buffer
	if cf.writeBuffer != nil {
		n, err = cf.writeBuffer.Write(p)
		if n > 0 {
			cf.bytesWritten += int64(n)
		}
		return n, err
	}

	// Otherwise write directly to base
	n, err = cf.base.Write(p)
	if n > 0 {
		cf.bytesWritten += int64(n)
		cf.cfs.addBytes(&cf.cfs.stats.BytesWritten, int64(n))
	}
	return n, err
}

// WriteString writes a string to the file
func (cf *compressedFile) WriteString(s string) (n int, err error) {
	return cf.Write([]byte(s))
}

// Close closes the file and flushes compression if needed
func (cf *compressedFile) Close() error {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return nil
	}
	cf.closed = true

	var err error

	// Flush compression on write
	if cf.writeBuffer != nil {
		bufLen := int64(cf.writeBuffer.Len())

		if bufLen > 0 && bufLen >= cf.minSize {
			if cerr := cf.compress(); cerr != nil {
				cf.base.Close()
				// Leave no partial file behind to be read back as data
				if rerr := cf.cfs.base.Remove(cf.compressedName); rerr != nil {
					cf.cfs.logger().Warn().Err(rerr).Str("file", cf.compressedName).Msg("removing failed output")
				}
				return cerr
			}
		} else if bufLen > 0 {
			// File too small, write uncompressed under the logical name
			return cf.storeUncompressed()
		}
		// If bufLen == 0, it's an empty file - just close without writing anything
	}

	// Close decompressor if present
	if cf.decompressor != nil {
		if cerr := cf.decompressor.Close(); cerr != nil && err == nil {
			err = cerr
		}
		cf.cfs.incrementStat(&cf.cfs.stats.FilesDecompressed)
		cf.cfs.addBytes(&cf.cfs.stats.BytesDecompressed, cf.bytesRead)
		cf.cfs.stats.IncrementAlgorithmCount(cf.readAlgo)
		cf.cfs.logger().Debug().
			Str("file", cf.originalName).
			Str("algorithm", string(cf.readAlgo)).
			Int64("bytes", cf.bytesRead).
			Msg("decompressed file")
	}

	// Close base file
	if cerr := cf.base.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

// compress runs the buffered content through the compressor into the base file
func (cf *compressedFile) compress() error {
	counter := &countingWriter{w: cf.base}
	compressor, err := createCompressor(cf.writeAlgo, counter, cf.writeLevel, originalExtension(cf.originalName))
	if err != nil {
		return err
	}

	if _, err := io.Copy(compressor, cf.writeBuffer); err != nil {
		compressor.Close()
		return err
	}
	if err := compressor.Close(); err != nil {
		return err
	}
	cf.compressedBytes = counter.n

	cf.cfs.incrementStat(&cf.cfs.stats.FilesCompressed)
	cf.cfs.addBytes(&cf.cfs.stats.BytesWritten, cf.bytesWritten)
	cf.cfs.addBytes(&cf.cfs.stats.BytesCompressed, counter.n)
	cf.cfs.stats.IncrementAlgorithmCount(cf.writeAlgo)
	cf.cfs.logger().Debug().
		Str("file", cf.originalName).
		Str("algorithm", string(cf.writeAlgo)).
		Int64("original", cf.bytesWritten).
		Int64("compressed", counter.n).
		Msg("compressed file")
	return nil
}

// storeUncompressed writes the buffer as is and renames the stored file
// back to the logical name, so reads don't try to decompress it.
func (cf *compressedFile) storeUncompressed() error {
	_, err := io.Copy(cf.base, cf.writeBuffer)
	cf.cfs.incrementStat(&cf.cfs.stats.FilesSkipped)
	cf.cfs.addBytes(&cf.cfs.stats.BytesWritten, cf.bytesWritten)
	cf.compressedBytes = cf.bytesWritten

	if cerr := cf.base.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	cf.cfs.logger().Debug().
		Str("file", cf.originalName).
		Int64("size", cf.bytesWritten).
		Msg("below minimum size, stored uncompressed")

	if cf.compressedName != cf.originalName {
		return cf.cfs.base.Rename(cf.compressedName, cf.originalName)
	}
	return nil
}

// Seek seeks in the file (limited support for compressed files)
func (cf *compressedFile) Seek(offset int64, whence int) (int64, error) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return 0, fs.ErrClosed
	}

	// Seeking is not supported in compressed mode
	if cf.decompressor != nil || cf.writeBuffer != nil {
		return 0, ErrSeekNotSupported
	}

	return cf.base.Seek(offset, whence)
}

// Stat returns file information of the stored file under the logical name
func (cf *compressedFile) Stat() (fs.FileInfo, error) {
	info, err := cf.base.Stat()
	if err != nil {
		return nil, err
	}
	return &renamedFileInfo{FileInfo: info, name: path.Base(cf.originalName)}, nil
}

// Sync syncs the file to disk
func (cf *compressedFile) Sync() error {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return fs.ErrClosed
	}

	return cf.base.Sync()
}

// Name returns the logical name of the file
func (cf *compressedFile) Name() string {
	return cf.originalName
}

// ReadAt reads at an offset of an uncompressed file
func (cf *compressedFile) ReadAt(b []byte, off int64) (n int, err error) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return 0, fs.ErrClosed
	}
	if cf.decompressor != nil {
		return 0, ErrSeekNotSupported
	}
	return cf.base.ReadAt(b, off)
}

// WriteAt writes at an offset of an uncompressed file
func (cf *compressedFile) WriteAt(b []byte, off int64) (n int, err error) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return 0, fs.ErrClosed
	}
	if cf.writeBuffer != nil {
		return 0, ErrSeekNotSupported
	}
	return cf.base.WriteAt(b, off)
}

// Truncate changes the size of an uncompressed file. A file being
// compressed can only be truncated to zero, which drops what was written.
func (cf *compressedFile) Truncate(size int64) error {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return fs.ErrClosed
	}
	if cf.writeBuffer != nil {
		if size != 0 {
			return ErrSeekNotSupported
		}
		cf.writeBuffer.Reset()
		cf.bytesWritten = 0
		return nil
	}
	if cf.decompressor != nil {
		return ErrSeekNotSupported
	}
	return cf.base.Truncate(size)
}

// Readdir lists a directory under the logical names of its files
func (cf *compressedFile) Readdir(n int) ([]os.FileInfo, error) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed {
		return nil, fs.ErrClosed
	}
	infos, err := cf.base.Readdir(n)
	return cf.cfs.logicalInfos(cf.compressedName, infos, cf.cfs.currentConfig()), err
}

// Readdirnames is Readdir returning only the names
func (cf *compressedFile) Readdirnames(n int) ([]string, error) {
	infos, err := cf.Readdir(n)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, err
}

// Algorithm returns the compression algorithm being used
func (cf *compressedFile) Algorithm() Algorithm {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.decompressor != nil {
		return cf.readAlgo
	}
	if cf.writeBuffer != nil {
		return cf.writeAlgo
	}
	return ""
}

// OriginalSize returns the uncompressed bytes read or written so far
func (cf *compressedFile) OriginalSize() int64 {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.decompressor != nil {
		return cf.bytesRead
	}
	return cf.bytesWritten
}

// CompressedSize returns the stored size. It is exact once a written
// file has been closed.
func (cf *compressedFile) CompressedSize() int64 {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	if cf.closed && cf.writeBuffer != nil {
		return cf.compressedBytes
	}
	info, err := cf.base.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

// countingWriter counts the bytes passed to w
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
