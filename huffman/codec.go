package huffman

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Magic is the tag every compressed file starts with.
const Magic = "HUFTREE"

// File is a compressed file: the header fields and the packed payload.
type File struct {
	Extension    string // original file extension, conventionally without the dot
	Tree         []byte // serialized tree, see SerializeTree
	TotalSymbols uint32
	Payload      []byte
}

// Compress encodes data with a Huffman code built from its own symbol
// frequencies and records ext, byte for byte, as the original extension.
func Compress(data []byte, ext string) (*File, error) {
	ft, err := CountFrequencies(data)
	if err != nil {
		return nil, err
	}
	if len(ext) > math.MaxInt32 {
		return nil, ErrInputTooLarge
	}

	root, err := BuildTree(ft)
	if err != nil {
		return nil, err
	}
	codes := GenerateCodes(root)
	payload, err := Pack(codes, data)
	if err != nil {
		return nil, err
	}

	return &File{
		Extension:    ext,
		Tree:         SerializeTree(root),
		TotalSymbols: uint32(ft.Total),
		Payload:      payload,
	}, nil
}

// Encode is Compress followed by MarshalBinary.
func Encode(data []byte, ext string) ([]byte, error) {
	f, err := Compress(data, ext)
	if err != nil {
		return nil, err
	}
	return f.MarshalBinary()
}

// HeaderSize returns the number of bytes preceding the payload.
func (f *File) HeaderSize() int {
	return len(Magic) + 4 + len(f.Extension) + 4 + len(f.Tree) + 4
}

// MarshalBinary writes the header and payload in wire order. All integers
// are little-endian signed 32-bit values.
func (f *File) MarshalBinary() ([]byte, error) {
	if len(f.Extension) > math.MaxInt32 || len(f.Tree) > math.MaxInt32 || f.TotalSymbols > math.MaxInt32 {
		return nil, ErrInputTooLarge
	}

	buf := bytes.NewBuffer(make([]byte, 0, f.HeaderSize()+len(f.Payload)))
	buf.WriteString(Magic)
	writeInt32(buf, int32(len(f.Extension)))
	buf.WriteString(f.Extension)
	writeInt32(buf, int32(len(f.Tree)))
	buf.Write(f.Tree)
	writeInt32(buf, int32(f.TotalSymbols))
	buf.Write(f.Payload)
	return buf.Bytes(), nil
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

// headerReader reads header fields; every failure is a truncated or
// malformed header.
type headerReader struct {
	data []byte
	pos  int
}

func (r *headerReader) next(n int, field string) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, formatErrorf(ErrBadMagic, int64(r.pos), "header truncated reading %s", field)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *headerReader) length(field string) (int, error) {
	b, err := r.next(4, field)
	if err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(b))
	if v < 0 {
		return 0, formatErrorf(ErrBadMagic, int64(r.pos-4), "negative %s %d", field, v)
	}
	return int(v), nil
}

// ParseFile splits compressed data into its header fields and payload
// without decoding. The returned File aliases data.
func ParseFile(data []byte) (*File, error) {
	r := &headerReader{data: data}
	magic, err := r.next(len(Magic), "magic")
	if err != nil {
		return nil, err
	}
	if string(magic) != Magic {
		return nil, formatErrorf(ErrBadMagic, 0, "got %q", magic)
	}

	extLen, err := r.length("extension length")
	if err != nil {
		return nil, err
	}
	ext, err := r.next(extLen, "extension")
	if err != nil {
		return nil, err
	}
	treeLen, err := r.length("tree length")
	if err != nil {
		return nil, err
	}
	tree, err := r.next(treeLen, "tree")
	if err != nil {
		return nil, err
	}
	total, err := r.length("symbol count")
	if err != nil {
		return nil, err
	}

	return &File{
		Extension:    string(ext),
		Tree:         tree,
		TotalSymbols: uint32(total),
		Payload:      data[r.pos:],
	}, nil
}

// maxPeekExtension bounds the allocation ReadExtension makes for a header
// read from an untrusted stream.
const maxPeekExtension = 4096

// ReadExtension reads only the magic and extension fields from r and
// returns the recorded extension. Extensions longer than 4096 bytes are
// rejected as ErrBadMagic.
func ReadExtension(r io.Reader) (string, error) {
	var head [len(Magic) + 4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return "", formatErrorf(ErrBadMagic, 0, "header truncated: %v", err)
	}
	if string(head[:len(Magic)]) != Magic {
		return "", formatErrorf(ErrBadMagic, 0, "got %q", head[:len(Magic)])
	}
	n := int32(binary.LittleEndian.Uint32(head[len(Magic):]))
	if n < 0 || n > maxPeekExtension {
		return "", formatErrorf(ErrBadMagic, int64(len(Magic)), "implausible extension length %d", n)
	}
	ext := make([]byte, n)
	if _, err := io.ReadFull(r, ext); err != nil {
		return "", formatErrorf(ErrBadMagic, int64(len(head)), "header truncated: %v", err)
	}
	return string(ext), nil
}

// Decode rebuilds the tree and decodes TotalSymbols symbols from the payload.
func (f *File) Decode() ([]byte, error) {
	root, err := DeserializeTree(f.Tree)
	if err != nil {
		return nil, err
	}
	return Unpack(root, f.Payload, int(f.TotalSymbols))
}

// Decompress reverses Encode. It returns the original bytes and the recorded
// extension, which is empty when none was recorded; choosing a default is up
// to the caller.
func Decompress(data []byte) ([]byte, string, error) {
	f, err := ParseFile(data)
	if err != nil {
		return nil, "", err
	}
	out, err := f.Decode()
	if err != nil {
		return nil, "", err
	}
	return out, f.Extension, nil
}
