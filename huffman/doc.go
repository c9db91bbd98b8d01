// Package huffman implements static Huffman compression of byte streams.
//
// Compression counts the byte frequencies of the whole input, builds a
// Huffman tree, derives a prefix code per symbol and packs the codes of the
// input, in order, into an MSB-first bit stream. The tree itself is stored in
// the header so the stream can be decoded without any side channel.
//
// # Format
//
// All integers are little-endian signed 32-bit values.
//
//	offset     field       size     meaning
//	0          magic       7        "HUFTREE"
//	7          extLen      4        length of the original extension
//	11         ext         extLen   extension as given, usually dotless
//	11+extLen  treeLen     4        length of the serialized tree
//	+4         tree        treeLen  preorder tree, see SerializeTree
//	+treeLen   totalChars  4        number of symbols to decode
//	+4         payload     rest     packed bits, zero-padded final byte
//
// Decoding stops after totalChars symbols, so the padding bits are never
// read as data.
//
// # Errors
//
// Compress fails with ErrEmptyInput on empty input. Decompress returns a
// *FormatError whose Kind is ErrBadMagic, ErrCorruptTree or
// ErrTruncatedStream; use errors.Is to test the kind.
package huffman
