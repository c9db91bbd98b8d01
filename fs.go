package huffmanfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/absfs/absfs"
	"github.com/absfs/huffmanfs/huffman"
)

var _ absfs.Filer = (*FS)(nil)

// Open opens a file for reading
func (cfs *FS) Open(name string) (absfs.File, error) {
	return cfs.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile opens a file with specified flags and permissions
func (cfs *FS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	config := cfs.currentConfig()

	// Determine the actual filename to open
	actualName := name
	var detectedAlgo Algorithm
	var isCreate = (flag & os.O_CREATE) != 0
	var isWrite = (flag & (os.O_WRONLY | os.O_RDWR)) != 0

	if isCreate || isWrite {
		// For create/write operations, add compression extension if needed
		if !cfs.shouldSkip(name) && !HasCompressionExtension(name) {
			preserve := config.PreserveExtension || config.Algorithm != AlgorithmHuffman
			actualName = AddExtension(name, config.Algorithm, preserve)
			detectedAlgo = config.Algorithm
		}
	} else if stored, algo, ok := cfs.lookup(name, config); ok {
		// For read operations, find the compressed version
		actualName = stored
		detectedAlgo = algo
	}

	// Open the underlying file
	baseFile, err := cfs.base.OpenFile(actualName, flag, perm)
	if err != nil {
		return nil, err
	}

	// Wrap with compression/decompression
	cf, err := newCompressedFile(cfs, baseFile, name, actualName, flag, detectedAlgo, config)
	if err != nil {
		baseFile.Close()
		return nil, err
	}
	return cf, nil
}

// Create creates a new file for writing
func (cfs *FS) Create(name string) (absfs.File, error) {
	return cfs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

// Mkdir creates a directory
func (cfs *FS) Mkdir(name string, perm fs.FileMode) error {
	return cfs.base.Mkdir(name, perm)
}

// Remove removes a file or directory
func (cfs *FS) Remove(name string) error {
	return cfs.base.Remove(cfs.storedPath(name))
}

// Rename renames a file, carrying its compression extension along
func (cfs *FS) Rename(oldpath, newpath string) error {
	config := cfs.currentConfig()
	stored, algo, ok := cfs.lookup(oldpath, config)
	if !ok {
		return cfs.base.Rename(oldpath, newpath)
	}

	target := newpath + GetExtension(algo)
	if stored != oldpath+GetExtension(algo) {
		target = AddExtension(newpath, algo, false)
	}
	if algo != AlgorithmHuffman {
		return cfs.base.Rename(stored, target)
	}

	// The header records the original extension, so it follows the new name
	ext := originalExtension(newpath)
	if recorded, err := cfs.recordedExtension(stored); err != nil || recorded == ext {
		return cfs.base.Rename(stored, target)
	}
	return cfs.rewriteExtension(stored, target, ext)
}

// rewriteExtension re-encodes the header of the Huffman file stored as
// stored with ext, writes it to target and removes stored.
func (cfs *FS) rewriteExtension(stored, target, ext string) error {
	info, err := cfs.base.Stat(stored)
	if err != nil {
		return err
	}
	r, err := cfs.base.OpenFile(stored, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return err
	}

	f, err := huffman.ParseFile(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorruptedData, stored, err)
	}
	f.Extension = ext
	out, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	w, err := cfs.base.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	cfs.logger().Debug().
		Str("from", stored).
		Str("to", target).
		Str("extension", ext).
		Msg("rewrote recorded extension")

	if target != stored {
		return cfs.base.Remove(stored)
	}
	return nil
}

// Stat returns file information. For a compressed file the size is the
// stored (compressed) size and the name is the logical one.
func (cfs *FS) Stat(name string) (fs.FileInfo, error) {
	config := cfs.currentConfig()

	if stored, _, ok := cfs.lookup(name, config); ok {
		info, err := cfs.base.Stat(stored)
		if err != nil {
			return nil, err
		}
		return &renamedFileInfo{FileInfo: info, name: path.Base(name)}, nil
	}

	return cfs.base.Stat(name)
}

// Chmod changes the mode of the stored file
func (cfs *FS) Chmod(name string, mode os.FileMode) error {
	return cfs.base.Chmod(cfs.storedPath(name), mode)
}

// Chtimes changes the access and modification times of the stored file
func (cfs *FS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return cfs.base.Chtimes(cfs.storedPath(name), atime, mtime)
}

// Chown changes the owner of the stored file
func (cfs *FS) Chown(name string, uid, gid int) error {
	return cfs.base.Chown(cfs.storedPath(name), uid, gid)
}

// ReadDir reads directory contents, sorted by logical name
func (cfs *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	dir, err := cfs.base.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	infos, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	infos = cfs.logicalInfos(name, infos, cfs.currentConfig())

	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// logicalInfos renames the stored entries of dir to their logical names
// when extension stripping is on. Of entries sharing a logical name the
// first is kept.
func (cfs *FS) logicalInfos(dir string, infos []os.FileInfo, config Config) []os.FileInfo {
	if !config.StripExtension {
		return infos
	}

	result := make([]os.FileInfo, 0, len(infos))
	seen := make(map[string]bool)

	for _, info := range infos {
		name := info.Name()
		if stripped, algo, ok := StripExtension(name); ok && !info.IsDir() {
			// Huffman files stored without the original extension still
			// record it in their header
			if algo == AlgorithmHuffman && path.Ext(stripped) == "" {
				if ext, err := cfs.recordedExtension(path.Join(dir, name)); err == nil && ext != "" {
					stripped += "." + strings.TrimPrefix(ext, ".")
				}
			}
			info = &renamedFileInfo{FileInfo: info, name: stripped}
			name = stripped
		}

		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, info)
	}
	return result
}

// storedName is a candidate name under which a logical file may be stored
type storedName struct {
	name string
	algo Algorithm

	// checkExt requires the Huffman header to record the logical
	// file's extension
	checkExt bool
}

// storedNames lists the names a compressed version of name may be stored
// under, the configured algorithm first. Only Huffman files may be stored
// with the original extension replaced.
func storedNames(name string, config Config) []storedName {
	order := make([]Algorithm, 0, len(Algorithms))
	order = append(order, config.Algorithm)
	for _, algo := range Algorithms {
		if algo != config.Algorithm {
			order = append(order, algo)
		}
	}

	var names []storedName
	for _, algo := range order {
		names = append(names, storedName{name: name + GetExtension(algo), algo: algo})
		if algo != AlgorithmHuffman {
			continue
		}
		if replaced := AddExtension(name, algo, false); replaced != name+GetExtension(algo) {
			names = append(names, storedName{name: replaced, algo: algo, checkExt: true})
		}
	}
	return names
}

// lookup finds the compressed file backing name and the algorithm its
// extension names. It reports false when extension stripping is off or no
// compressed version exists.
func (cfs *FS) lookup(name string, config Config) (string, Algorithm, bool) {
	if !config.StripExtension {
		return "", "", false
	}
	for _, c := range storedNames(name, config) {
		if _, err := cfs.base.Stat(c.name); err != nil {
			continue
		}
		if c.checkExt {
			ext, err := cfs.recordedExtension(c.name)
			if err != nil || ext != originalExtension(name) {
				continue
			}
		}
		return c.name, c.algo, true
	}
	return "", "", false
}

// storedPath returns the compressed file backing name, or name itself
func (cfs *FS) storedPath(name string) string {
	if stored, _, ok := cfs.lookup(name, cfs.currentConfig()); ok {
		return stored
	}
	return name
}

// recordedExtension reads the original extension from the header of a
// stored Huffman file.
func (cfs *FS) recordedExtension(stored string) (string, error) {
	f, err := cfs.base.OpenFile(stored, os.O_RDONLY, 0)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return huffman.ReadExtension(f)
}

// renamedFileInfo wraps a FileInfo with a different name
type renamedFileInfo struct {
	fs.FileInfo
	name string
}

func (fi *renamedFileInfo) Name() string {
	return fi.name
}

// incrementStat atomically increments a stat counter
func (cfs *FS) incrementStat(counter *int64) {
	atomic.AddInt64(counter, 1)
}

// addBytes atomically adds to a byte counter
func (cfs *FS) addBytes(counter *int64, n int64) {
	atomic.AddInt64(counter, n)
}
