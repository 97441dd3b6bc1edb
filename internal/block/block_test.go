package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := encodeBlock(5, 0, suffixWithValue([]byte("foo"), []byte("bar")))

	b, err := Parse(raw, 5, uint32(len(raw)), DataBlock)
	require.NoError(t, err)
	require.Equal(t, uint64(5), b.Num)
	require.Equal(t, DataBlock, b.Type)
	require.True(t, b.IsLeaf())
	require.Equal(t, raw[HeaderSize:], b.Payload)
}

func TestParse_TooSmall(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3}, 1, 64, DataBlock)
	require.Error(t, err)
}

func TestParse_DeclaredSizeOutOfRange(t *testing.T) {
	raw := encodeBlock(1, 0, suffixWithValue([]byte("a"), []byte("b")))
	// Corrupt the declared byte size to exceed the buffer.
	raw[4] = 0xff
	raw[5] = 0xff

	_, err := Parse(raw, 1, uint32(len(raw)), DataBlock)
	require.Error(t, err)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "directory_tree", DirectoryTree.String())
	require.Equal(t, "index_block", IndexBlock.String())
	require.Equal(t, "data_block", DataBlock.String())
	require.Equal(t, "local_bitmap", LocalBitmap.String())
	require.Equal(t, "master_bitmap", MasterBitmap.String())
}

func TestInferChildType(t *testing.T) {
	require.Equal(t, DirectoryTree, InferChildType(DirectoryTree, 2))
	require.Equal(t, IndexBlock, InferChildType(DirectoryTree, 1))
	require.Equal(t, IndexBlock, InferChildType(IndexBlock, 2))
	require.Equal(t, DataBlock, InferChildType(IndexBlock, 1))
}
