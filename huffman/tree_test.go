package huffman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freqTable(t *testing.T, counts map[byte]uint64) *FrequencyTable {
	t.Helper()
	ft := &FrequencyTable{}
	for s, c := range counts {
		ft.Counts[s] = c
		ft.Total += c
	}
	return ft
}

func TestCountFrequencies(t *testing.T) {
	ft, err := CountFrequencies([]byte("abracadabra"))
	require.NoError(t, err)

	assert.Equal(t, uint64(11), ft.Total)
	assert.Equal(t, uint64(5), ft.Counts['a'])
	assert.Equal(t, uint64(2), ft.Counts['b'])
	assert.Equal(t, uint64(2), ft.Counts['r'])
	assert.Equal(t, uint64(1), ft.Counts['c'])
	assert.Equal(t, uint64(1), ft.Counts['d'])
	assert.Equal(t, []byte("abcdr"), ft.Symbols())
	assert.Equal(t, 5, ft.Distinct())
}

func TestCountFrequenciesHighBytes(t *testing.T) {
	ft, err := CountFrequencies([]byte{0xff, 0x80, 0x00, 0xff})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x80, 0xff}, ft.Symbols())
	assert.Equal(t, uint64(2), ft.Counts[0xff])
}

func TestCountFrequenciesEmpty(t *testing.T) {
	ft, err := CountFrequencies(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, ft)

	_, err = CountFrequencies([]byte{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildTreeThreeSymbols(t *testing.T) {
	root, err := BuildTree(freqTable(t, map[byte]uint64{'A': 5, 'B': 2, 'C': 1}))
	require.NoError(t, err)

	assert.Equal(t, uint64(8), root.Freq)
	require.False(t, root.IsLeaf())

	// C and B merge first, then that subtree merges with A.
	merged := root.Left
	require.False(t, merged.IsLeaf())
	assert.Equal(t, uint64(3), merged.Freq)
	assert.Equal(t, byte('C'), merged.Left.Symbol)
	assert.Equal(t, byte('B'), merged.Right.Symbol)

	require.True(t, root.Right.IsLeaf())
	assert.Equal(t, byte('A'), root.Right.Symbol)
	assert.Equal(t, 3, root.Leaves())
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	root, err := BuildTree(freqTable(t, map[byte]uint64{'x': 42}))
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, byte('x'), root.Symbol)
	assert.Equal(t, uint64(42), root.Freq)
}

func TestBuildTreeEmpty(t *testing.T) {
	_, err := BuildTree(&FrequencyTable{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = BuildTree(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildTreeTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		counts map[byte]uint64
		want   CodeTable
	}{
		{
			name:   "equal leaves merge in symbol order",
			counts: map[byte]uint64{'d': 1, 'c': 1, 'b': 1, 'a': 1},
			want:   CodeTable{'a': "00", 'b': "01", 'c': "10", 'd': "11"},
		},
		{
			name:   "leaf precedes internal node of equal frequency",
			counts: map[byte]uint64{'x': 1, 'y': 1, 'z': 2},
			want:   CodeTable{'z': "0", 'x': "10", 'y': "11"},
		},
		{
			name:   "two symbols",
			counts: map[byte]uint64{0x00: 7, 0xff: 7},
			want:   CodeTable{0x00: "0", 0xff: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := freqTable(t, tt.counts)
			for i := 0; i < 5; i++ {
				root, err := BuildTree(ft)
				require.NoError(t, err)
				assert.Equal(t, tt.want, GenerateCodes(root))
			}
		})
	}
}

func TestBuildTreeIsFull(t *testing.T) {
	data := make([]byte, 0, 4096)
	for i := 0; i < 256; i++ {
		for j := 0; j <= i%17; j++ {
			data = append(data, byte(i))
		}
	}
	ft, err := CountFrequencies(data)
	require.NoError(t, err)
	root, err := BuildTree(ft)
	require.NoError(t, err)

	var check func(n *Node)
	check = func(n *Node) {
		if n.IsLeaf() {
			return
		}
		require.NotNil(t, n.Left)
		require.NotNil(t, n.Right)
		assert.Equal(t, n.Left.Freq+n.Right.Freq, n.Freq)
		check(n.Left)
		check(n.Right)
	}
	check(root)
	assert.Equal(t, 256, root.Leaves())
	assert.Equal(t, ft.Total, root.Freq)
}
