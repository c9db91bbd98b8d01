package huffman

import "container/heap"

// Node is a Huffman tree node. A leaf has no children and carries Symbol;
// an internal node always has both children.
type Node struct {
	Symbol byte
	Freq   uint64
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaves below and including n.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// heapItem pairs a node with its insertion sequence, the secondary
// ordering key among equal frequencies.
type heapItem struct {
	node *Node
	seq  int
}

type nodeHeap []heapItem

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Freq != h[j].node.Freq {
		return h[i].node.Freq < h[j].node.Freq
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(heapItem))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BuildTree builds a Huffman tree by repeatedly merging the two nodes of
// lowest frequency. The first node popped becomes the left child.
//
// Ties are broken by insertion sequence: leaves are inserted in ascending
// symbol order, and each merged node is sequenced after every node created
// before it. Among equal frequencies leaves therefore precede internal nodes,
// so the resulting codes are reproducible.
//
// A table with a single distinct symbol yields a lone leaf.
func BuildTree(ft *FrequencyTable) (*Node, error) {
	if ft == nil || ft.Total == 0 {
		return nil, ErrEmptyInput
	}

	h := make(nodeHeap, 0, 256)
	seq := 0
	for _, s := range ft.Symbols() {
		h = append(h, heapItem{node: &Node{Symbol: s, Freq: ft.Counts[s]}, seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(heapItem).node
		right := heap.Pop(&h).(heapItem).node
		heap.Push(&h, heapItem{
			node: &Node{Freq: left.Freq + right.Freq, Left: left, Right: right},
			seq:  seq,
		})
		seq++
	}
	return heap.Pop(&h).(heapItem).node, nil
}
