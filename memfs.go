package huffmanfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absfs/absfs"
)

// normalizePath normalizes a path for consistent storage/lookup
// It removes leading slashes and cleans the path
func normalizePath(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	// Remove leading slashes to normalize absolute and relative paths
	name = strings.TrimPrefix(name, "/")
	// Handle empty path (root directory)
	if name == "" {
		name = "."
	}
	return name
}

var errIsDir = errors.New("is a directory")

// memFS is a simple in-memory filesystem for tests and examples
type memFS struct {
	files map[string]*memNode
	dirs  map[string]*memNode
	mu    sync.RWMutex
}

// memNode is the content and metadata shared by every handle of a file
type memNode struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
	mu      sync.Mutex
}

var _ absfs.Filer = (*memFS)(nil)

// NewMemFS creates a new in-memory filesystem
func NewMemFS() absfs.Filer {
	return &memFS{
		files: make(map[string]*memNode),
		dirs: map[string]*memNode{
			".": {mode: fs.ModeDir | 0755, modTime: time.Now()},
		},
	}
}

func (mfs *memFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, isDir := mfs.dirs[name]; isDir {
		if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC) != 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: errIsDir}
		}
		return &memDir{mfs: mfs, name: name}, nil
	}

	node, exists := mfs.files[name]
	switch {
	case !exists && flag&os.O_CREATE == 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !exists:
		if _, ok := mfs.dirs[path.Dir(name)]; !ok {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		node = &memNode{mode: perm, modTime: time.Now()}
		mfs.files[name] = node
	case flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	}

	if flag&os.O_TRUNC != 0 {
		node.truncate(0)
	}

	return &memFile{
		name:   name,
		node:   node,
		append: flag&os.O_APPEND != 0,
	}, nil
}

func (mfs *memFS) Mkdir(name string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, exists := mfs.dirs[name]; exists {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if _, exists := mfs.files[name]; exists {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if _, ok := mfs.dirs[path.Dir(name)]; !ok {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrNotExist}
	}
	mfs.dirs[name] = &memNode{mode: fs.ModeDir | perm.Perm(), modTime: time.Now()}
	return nil
}

func (mfs *memFS) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, exists := mfs.files[name]; exists {
		delete(mfs.files, name)
		return nil
	}
	if _, exists := mfs.dirs[name]; exists && name != "." {
		if len(mfs.children(name)) > 0 {
			return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
		}
		delete(mfs.dirs, name)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// Rename renames a file
func (mfs *memFS) Rename(oldpath, newpath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	oldpath = normalizePath(oldpath)
	newpath = normalizePath(newpath)

	node, exists := mfs.files[oldpath]
	if !exists {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	if _, isDir := mfs.dirs[newpath]; isDir {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errIsDir}
	}
	if _, ok := mfs.dirs[path.Dir(newpath)]; !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}

	delete(mfs.files, oldpath)
	mfs.files[newpath] = node
	return nil
}

func (mfs *memFS) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	info, ok := mfs.stat(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return info, nil
}

// Chmod changes the permission bits of a file or directory
func (mfs *memFS) Chmod(name string, mode os.FileMode) error {
	node, err := mfs.node("chmod", name)
	if err != nil {
		return err
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	node.mode = node.mode&fs.ModeType | mode.Perm()
	return nil
}

// Chtimes changes the modification time; memFS keeps no access time
func (mfs *memFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	node, err := mfs.node("chtimes", name)
	if err != nil {
		return err
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	node.modTime = mtime
	return nil
}

// Chown only checks that name exists; memFS has no owners
func (mfs *memFS) Chown(name string, uid, gid int) error {
	_, err := mfs.node("chown", name)
	return err
}

func (mfs *memFS) node(op, name string) (*memNode, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	if node, ok := mfs.files[name]; ok {
		return node, nil
	}
	if node, ok := mfs.dirs[name]; ok {
		return node, nil
	}
	return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

// stat must be called with mfs.mu held
func (mfs *memFS) stat(name string) (*memFileInfo, bool) {
	if node, ok := mfs.dirs[name]; ok {
		return node.info(path.Base(name)), true
	}
	if node, ok := mfs.files[name]; ok {
		return node.info(path.Base(name)), true
	}
	return nil, false
}

// children lists the entries directly below dir, sorted by name.
// mfs.mu must be held.
func (mfs *memFS) children(dir string) []os.FileInfo {
	var infos []os.FileInfo
	add := func(p string) {
		if p == dir || path.Dir(p) != dir {
			return
		}
		if info, ok := mfs.stat(p); ok {
			infos = append(infos, info)
		}
	}
	for p := range mfs.dirs {
		add(p)
	}
	for p := range mfs.files {
		add(p)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
	return infos
}

func (n *memNode) info(name string) *memFileInfo {
	n.mu.Lock()
	defer n.mu.Unlock()
	return &memFileInfo{
		name:    name,
		size:    int64(len(n.data)),
		mode:    n.mode,
		modTime: n.modTime,
	}
}

func (n *memNode) size() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return int64(len(n.data))
}

func (n *memNode) readAt(p []byte, off int64) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if off >= int64(len(n.data)) {
		return 0, io.EOF
	}
	c := copy(p, n.data[off:])
	if c < len(p) {
		return c, io.EOF
	}
	return c, nil
}

// writeAt writes p at off, or at the end of the data when atEnd is set,
// and returns the offset after the write. Gaps are zero filled.
func (n *memNode) writeAt(p []byte, off int64, atEnd bool) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	if atEnd {
		off = int64(len(n.data))
	}
	if end := off + int64(len(p)); end > int64(len(n.data)) {
		n.data = append(n.data, make([]byte, end-int64(len(n.data)))...)
	}
	copy(n.data[off:], p)
	n.modTime = time.Now()
	return off + int64(len(p))
}

func (n *memNode) truncate(size int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if size <= int64(len(n.data)) {
		n.data = n.data[:size]
	} else {
		n.data = append(n.data, make([]byte, size-int64(len(n.data)))...)
	}
	n.modTime = time.Now()
}

// memFile is one open handle of a memFS file
type memFile struct {
	name   string
	node   *memNode
	pos    int64
	append bool
	closed bool
	mu     sync.Mutex
}

func (mf *memFile) Read(p []byte) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}

	n, err = mf.node.readAt(p, mf.pos)
	mf.pos += int64(n)
	if n > 0 && err == io.EOF {
		err = nil
	}
	return n, err
}

func (mf *memFile) Write(p []byte) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}

	mf.pos = mf.node.writeAt(p, mf.pos, mf.append)
	return len(p), nil
}

// ReadAt reads len(b) bytes from the File starting at byte offset off
func (mf *memFile) ReadAt(b []byte, off int64) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "readat", Path: mf.name, Err: errors.New("negative offset")}
	}
	return mf.node.readAt(b, off)
}

// WriteAt writes len(b) bytes to the File starting at byte offset off
func (mf *memFile) WriteAt(b []byte, off int64) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "writeat", Path: mf.name, Err: errors.New("negative offset")}
	}
	mf.node.writeAt(b, off, false)
	return len(b), nil
}

// WriteString writes a string to the file
func (mf *memFile) WriteString(s string) (n int, err error) {
	return mf.Write([]byte(s))
}

// Truncate changes the size of the file without moving the offset
func (mf *memFile) Truncate(size int64) error {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return fs.ErrClosed
	}
	if size < 0 {
		return &fs.PathError{Op: "truncate", Path: mf.name, Err: fs.ErrInvalid}
	}
	mf.node.truncate(size)
	return nil
}

func (mf *memFile) Close() error {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.closed = true
	return nil
}

func (mf *memFile) Seek(offset int64, whence int) (int64, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}

	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = mf.pos + offset
	case io.SeekEnd:
		newPos = mf.node.size() + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if newPos < 0 {
		return 0, errors.New("negative position")
	}

	mf.pos = newPos
	return newPos, nil
}

func (mf *memFile) Stat() (fs.FileInfo, error) {
	return mf.node.info(path.Base(mf.name)), nil
}

func (mf *memFile) Sync() error {
	return nil
}

// Name returns the name of the file
func (mf *memFile) Name() string {
	return mf.name
}

// Readdir fails, a memFile is never a directory
func (mf *memFile) Readdir(n int) ([]os.FileInfo, error) {
	return nil, &fs.PathError{Op: "readdir", Path: mf.name, Err: fs.ErrInvalid}
}

func (mf *memFile) Readdirnames(n int) ([]string, error) {
	return nil, &fs.PathError{Op: "readdirnames", Path: mf.name, Err: fs.ErrInvalid}
}

// memDir is an open directory of a memFS. Its listing is taken on the
// first Readdir call.
type memDir struct {
	mfs     *memFS
	name    string
	entries []os.FileInfo
	listed  bool
	offset  int
}

func (md *memDir) Readdir(n int) ([]os.FileInfo, error) {
	if !md.listed {
		md.mfs.mu.RLock()
		md.entries = md.mfs.children(md.name)
		md.mfs.mu.RUnlock()
		md.listed = true
	}

	rest := md.entries[md.offset:]
	if n <= 0 {
		md.offset = len(md.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	md.offset += n
	return rest[:n], nil
}

func (md *memDir) Readdirnames(n int) ([]string, error) {
	infos, err := md.Readdir(n)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, err
}

func (md *memDir) Stat() (fs.FileInfo, error) {
	info, err := md.mfs.Stat(md.name)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (md *memDir) Name() string { return md.name }
func (md *memDir) Close() error { return nil }
func (md *memDir) Sync() error  { return nil }

func (md *memDir) Read(p []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: md.name, Err: errIsDir}
}

func (md *memDir) Write(p []byte) (int, error) {
	return 0, &fs.PathError{Op: "write", Path: md.name, Err: errIsDir}
}

func (md *memDir) Seek(offset int64, whence int) (int64, error) {
	return 0, &fs.PathError{Op: "seek", Path: md.name, Err: errIsDir}
}

func (md *memDir) ReadAt(b []byte, off int64) (int, error) {
	return 0, &fs.PathError{Op: "readat", Path: md.name, Err: errIsDir}
}

func (md *memDir) WriteAt(b []byte, off int64) (int, error) {
	return 0, &fs.PathError{Op: "writeat", Path: md.name, Err: errIsDir}
}

func (md *memDir) WriteString(s string) (int, error) {
	return md.Write([]byte(s))
}

func (md *memDir) Truncate(size int64) error {
	return &fs.PathError{Op: "truncate", Path: md.name, Err: errIsDir}
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }
