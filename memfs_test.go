package huffmanfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"testing"
)

func TestMemFSReadWriteAt(t *testing.T) {
	mfs := NewMemFS()

	f, err := mfs.OpenFile("f.bin", os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	f.Write([]byte("hello world"))
	f.WriteAt([]byte("W"), 6)
	f.WriteAt([]byte("!"), 13)

	buf := make([]byte, 14)
	n, err := f.ReadAt(buf, 0)
	if n != 14 || (err != nil && err != io.EOF) {
		t.Fatalf("ReadAt: n=%d err=%v", n, err)
	}
	if string(buf) != "hello World\x00\x00!" {
		t.Errorf("Unexpected content %q", buf)
	}

	if err := f.Truncate(5); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}
	info, _ := f.Stat()
	if info.Size() != 5 {
		t.Errorf("Expected size 5, got %d", info.Size())
	}
	f.Close()
}

func TestMemFSHandlesShareContent(t *testing.T) {
	mfs := NewMemFS()

	w, _ := mfs.OpenFile("log.txt", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	w.Write([]byte("one\n"))

	a, _ := mfs.OpenFile("log.txt", os.O_WRONLY|os.O_APPEND, 0)
	a.Write([]byte("two\n"))
	w.Write([]byte("three\n"))
	a.Close()
	w.Close()

	r, _ := mfs.OpenFile("log.txt", os.O_RDONLY, 0)
	data, _ := io.ReadAll(r)
	r.Close()
	if string(data) != "one\ntwo\nthree\n" {
		t.Errorf("Unexpected content %q", data)
	}

	if _, err := mfs.OpenFile("log.txt", os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644); !errors.Is(err, fs.ErrExist) {
		t.Errorf("Expected ErrExist for O_EXCL, got %v", err)
	}
}

func TestMemFSDirectories(t *testing.T) {
	mfs := NewMemFS()

	if err := mfs.Mkdir("d", 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := mfs.Mkdir("d", 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("Expected ErrExist, got %v", err)
	}
	if err := mfs.Mkdir("x/y", 0755); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}

	for _, name := range []string{"d/b", "d/a", "d/c"} {
		f, err := mfs.OpenFile(name, os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
		f.Close()
	}

	if err := mfs.Remove("d"); err == nil {
		t.Error("Expected removing a non-empty directory to fail")
	}
	if _, err := mfs.OpenFile("d", os.O_RDWR, 0); err == nil {
		t.Error("Expected opening a directory for writing to fail")
	}

	dir, err := mfs.OpenFile("d", os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("Open directory failed: %v", err)
	}
	first, err := dir.Readdirnames(2)
	if err != nil || len(first) != 2 || first[0] != "a" || first[1] != "b" {
		t.Errorf("Expected [a b], got %v (%v)", first, err)
	}
	rest, err := dir.Readdirnames(2)
	if err != nil || len(rest) != 1 || rest[0] != "c" {
		t.Errorf("Expected [c], got %v (%v)", rest, err)
	}
	if _, err := dir.Readdirnames(2); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
	dir.Close()

	if err := mfs.Rename("d/a", "moved"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := mfs.Stat("moved"); err != nil {
		t.Errorf("Expected moved to exist: %v", err)
	}
	if err := mfs.Rename("d/a", "again"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}
