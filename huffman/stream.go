package huffman

import (
	"bytes"
	"errors"
	"io"
)

var errClosed = errors.New("huffman: use of closed stream")

// Writer buffers everything written to it and, on Close, writes one
// compressed file to the underlying writer. A static code needs the complete
// input before the first bit can be emitted, so nothing reaches the
// underlying writer before Close.
type Writer struct {
	w      io.Writer
	ext    string
	buf    bytes.Buffer
	closed bool
}

// NewWriter returns a Writer that records ext as the original extension.
func NewWriter(w io.Writer, ext string) *Writer {
	return &Writer{w: w, ext: ext}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	return w.buf.Write(p)
}

// Close compresses the buffered input and writes it out. Closing a Writer
// that received no data returns ErrEmptyInput and writes nothing.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	out, err := Encode(w.buf.Bytes(), w.ext)
	w.buf.Reset()
	if err != nil {
		return err
	}
	_, err = w.w.Write(out)
	return err
}

// Reader decodes one compressed file read in full from the underlying reader.
type Reader struct {
	r   *bytes.Reader
	ext string
}

// NewReader reads all of r and decodes it. Format errors are reported here
// rather than on the first Read.
func NewReader(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	out, ext, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return &Reader{r: bytes.NewReader(out), ext: ext}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Extension returns the extension recorded in the header.
func (r *Reader) Extension() string {
	return r.ext
}

// Size returns the decoded length.
func (r *Reader) Size() int64 {
	return r.r.Size()
}

func (r *Reader) Close() error {
	return nil
}
