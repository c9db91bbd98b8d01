package huffman

const (
	flagInternal = '0'
	flagLeaf     = '1'

	// maxTreeDepth is the depth of the deepest full binary tree with 256
	// leaves.
	maxTreeDepth = 255
)

// SerializeTree encodes the tree in preorder. An internal node is written as
// the flag byte '0' followed by its left and right subtrees; a leaf is the
// flag byte '1' followed by its symbol. The result is 3*L-1 bytes long for a
// tree of L leaves.
func SerializeTree(root *Node) []byte {
	if root == nil {
		return nil
	}
	out := make([]byte, 0, 3*root.Leaves()-1)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			out = append(out, flagLeaf, n.Symbol)
			return
		}
		out = append(out, flagInternal)
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	return out
}

// treeReader is a cursor over a serialized tree.
type treeReader struct {
	data []byte
	pos  int
	seen [256]bool
}

func (r *treeReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, formatErrorf(ErrCorruptTree, int64(r.pos), "unexpected end of tree data")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *treeReader) node(depth int) (*Node, error) {
	if depth > maxTreeDepth {
		return nil, formatErrorf(ErrCorruptTree, int64(r.pos), "tree deeper than %d", maxTreeDepth)
	}
	at := r.pos
	flag, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch flag {
	case flagLeaf:
		sym, err := r.readByte()
		if err != nil {
			return nil, err
		}
		if r.seen[sym] {
			return nil, formatErrorf(ErrCorruptTree, int64(at), "duplicate leaf symbol 0x%02x", sym)
		}
		r.seen[sym] = true
		return &Node{Symbol: sym}, nil
	case flagInternal:
		left, err := r.node(depth + 1)
		if err != nil {
			return nil, err
		}
		right, err := r.node(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Node{Left: left, Right: right}, nil
	default:
		return nil, formatErrorf(ErrCorruptTree, int64(at), "invalid node flag 0x%02x", flag)
	}
}

// DeserializeTree rebuilds a tree written by SerializeTree. The data must
// hold exactly one well-formed tree; anything else, including trailing
// bytes, is reported as a *FormatError of kind ErrCorruptTree. Frequencies of
// the rebuilt nodes are zero.
func DeserializeTree(data []byte) (*Node, error) {
	if len(data) == 0 {
		return nil, formatErrorf(ErrCorruptTree, 0, "empty tree data")
	}
	r := &treeReader{data: data}
	root, err := r.node(0)
	if err != nil {
		return nil, err
	}
	if r.pos != len(data) {
		return nil, formatErrorf(ErrCorruptTree, int64(r.pos), "%d trailing bytes", len(data)-r.pos)
	}
	return root, nil
}
