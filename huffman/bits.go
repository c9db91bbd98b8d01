package huffman

// bitWriter packs bits most-significant first into a byte slice. A partial
// final byte is zero-padded in its low-order bits by flush.
type bitWriter struct {
	out   []byte
	acc   byte
	nbits uint // bits held in acc, always < 8
}

func newBitWriter(sizeHint int) *bitWriter {
	return &bitWriter{out: make([]byte, 0, sizeHint)}
}

func (w *bitWriter) writeBit(bit byte) {
	w.acc = w.acc<<1 | bit&1
	w.nbits++
	if w.nbits == 8 {
		w.out = append(w.out, w.acc)
		w.acc = 0
		w.nbits = 0
	}
}

func (w *bitWriter) writeCode(c Code) {
	for i := 0; i < len(c); i++ {
		w.writeBit(c[i] - '0')
	}
}

// flush pads the pending bits with zeros and returns the packed bytes.
func (w *bitWriter) flush() []byte {
	if w.nbits > 0 {
		w.out = append(w.out, w.acc<<(8-w.nbits))
		w.acc = 0
		w.nbits = 0
	}
	return w.out
}

// bitReader yields the bits of a byte slice most-significant first.
type bitReader struct {
	data []byte
	pos  int // index of the next bit
}

func (r *bitReader) readBit() (byte, bool) {
	if r.pos >= len(r.data)*8 {
		return 0, false
	}
	b := r.data[r.pos>>3] >> (7 - uint(r.pos&7)) & 1
	r.pos++
	return b, true
}

// Pack concatenates the codes of every byte of data, in order, into an
// MSB-first bit stream. It returns ErrMissingCode if data holds a symbol the
// table has no code for.
func Pack(codes CodeTable, data []byte) ([]byte, error) {
	var lookup [256]Code
	var present [256]bool
	bits := 0
	for s, c := range codes {
		lookup[s] = c
		present[s] = true
	}
	for _, b := range data {
		if !present[b] {
			return nil, ErrMissingCode
		}
		bits += len(lookup[b])
	}

	w := newBitWriter((bits + 7) / 8)
	for _, b := range data {
		w.writeCode(lookup[b])
	}
	return w.flush(), nil
}

// Unpack decodes exactly count symbols from payload by walking the tree from
// the root, left on 0 and right on 1, and restarting at the root after each
// leaf. Bits left over after count symbols are padding and are ignored. If
// the payload runs out first, Unpack returns a *FormatError of kind
// ErrTruncatedStream.
//
// A tree that is a single leaf spends one bit per symbol, matching the "0"
// code GenerateCodes assigns it.
func Unpack(root *Node, payload []byte, count int) ([]byte, error) {
	if root == nil {
		return nil, formatErrorf(ErrCorruptTree, 0, "nil tree")
	}
	// Every symbol costs at least one bit.
	out := make([]byte, 0, min(count, len(payload)*8))
	r := &bitReader{data: payload}

	for len(out) < count {
		n := root
		if n.IsLeaf() {
			if _, ok := r.readBit(); !ok {
				return nil, truncated(r, len(out), count)
			}
		}
		for !n.IsLeaf() {
			bit, ok := r.readBit()
			if !ok {
				return nil, truncated(r, len(out), count)
			}
			if bit == 0 {
				n = n.Left
			} else {
				n = n.Right
			}
		}
		out = append(out, n.Symbol)
	}
	return out, nil
}

func truncated(r *bitReader, decoded, want int) *FormatError {
	return formatErrorf(ErrTruncatedStream, int64(len(r.data)),
		"payload exhausted after %d of %d symbols", decoded, want)
}
