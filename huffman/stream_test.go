package huffman

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var compressed bytes.Buffer
	w := NewWriter(&compressed, "csv")

	chunks := []string{"id,name\n", "1,alpha\n", "2,beta\n", "3,gamma\n"}
	for _, c := range chunks {
		n, err := w.Write([]byte(c))
		require.NoError(t, err)
		assert.Equal(t, len(c), n)
	}
	assert.Zero(t, compressed.Len(), "nothing is written before Close")
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second Close is a no-op")

	r, err := NewReader(&compressed)
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,alpha\n2,beta\n3,gamma\n", string(got))
	assert.Equal(t, "csv", r.Extension())
	assert.Equal(t, int64(len(got)), r.Size())
}

func TestWriterEmpty(t *testing.T) {
	var compressed bytes.Buffer
	w := NewWriter(&compressed, "txt")
	assert.ErrorIs(t, w.Close(), ErrEmptyInput)
	assert.Zero(t, compressed.Len())
}

func TestWriterClosed(t *testing.T) {
	w := NewWriter(io.Discard, "")
	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("y"))
	assert.Error(t, err)
}

func TestNewReaderFormatError(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not huffman data")))
	assert.ErrorIs(t, err, ErrBadMagic)
}
