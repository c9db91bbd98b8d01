package huffman

import (
	"sort"
	"strings"
)

// Code is a prefix code written as a string of '0' and '1' characters,
// first bit first.
type Code string

// CodeTable maps each symbol of a tree to its code.
type CodeTable map[byte]Code

// GenerateCodes walks the tree and records the root-to-leaf path of every
// leaf, '0' for a left step and '1' for a right step. A tree that is a lone
// leaf gets the code "0" because an empty code cannot be packed.
func GenerateCodes(root *Node) CodeTable {
	codes := make(CodeTable)
	if root == nil {
		return codes
	}
	if root.IsLeaf() {
		codes[root.Symbol] = "0"
		return codes
	}

	path := make([]byte, 0, 64)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			codes[n.Symbol] = Code(path)
			return
		}
		path = append(path, '0')
		walk(n.Left)
		path[len(path)-1] = '1'
		walk(n.Right)
		path = path[:len(path)-1]
	}
	walk(root)
	return codes
}

// Symbols returns the symbols of the table in ascending order.
func (ct CodeTable) Symbols() []byte {
	symbols := make([]byte, 0, len(ct))
	for s := range ct {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// PrefixFree reports whether no code in the table is a prefix of another.
func (ct CodeTable) PrefixFree() bool {
	codes := make([]string, 0, len(ct))
	for _, c := range ct {
		codes = append(codes, string(c))
	}
	// After sorting, a code that prefixes another sorts directly before
	// some code it prefixes.
	sort.Strings(codes)
	for i := 1; i < len(codes); i++ {
		if strings.HasPrefix(codes[i], codes[i-1]) {
			return false
		}
	}
	return true
}

// EncodedBits returns the number of payload bits needed to encode a stream
// with the given frequencies.
func (ct CodeTable) EncodedBits(ft *FrequencyTable) uint64 {
	var bits uint64
	for s, c := range ct {
		bits += ft.Counts[s] * uint64(len(c))
	}
	return bits
}
