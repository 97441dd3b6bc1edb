package lookup

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/gdsread/internal/blockio"
	"github.com/corvidlabs/gdsread/internal/header"
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

func encRecord(cmpc uint8, data []byte) []byte {
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(4+len(data)))
	buf[2] = cmpc
	copy(buf[4:], data)
	return buf
}

func encStar(ptr uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], 8)
	binary.LittleEndian.PutUint32(buf[4:8], ptr)
	return buf
}

func suffixPointer(suffix []byte, ptr uint32) []byte {
	buf := append([]byte{}, suffix...)
	buf = append(buf, 0, 0)
	ptrBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(ptrBytes, ptr)
	return append(buf, ptrBytes...)
}

func suffixValue(suffix, value []byte) []byte {
	buf := append([]byte{}, suffix...)
	buf = append(buf, 0, 0)
	return append(buf, value...)
}

func encBlock(level uint8, records ...[]byte) []byte {
	payload := make([]byte, 0)
	for _, r := range records {
		payload = append(payload, r...)
	}
	size := 16 + len(payload)
	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[0:2], 1)
	buf[3] = level
	binary.LittleEndian.PutUint32(buf[4:8], uint32(size))
	binary.LittleEndian.PutUint64(buf[8:16], 1)
	copy(buf[16:], payload)
	return buf
}

// newFixture builds a four-block fixture: block 1 is the directory tree
// root mapping the global "foo" directly to block 2 (level 1, per §4.6: a
// directory block's pointer leads straight into a global variable tree
// once its own level drops to 1), with its star/catch-all record routing
// to block 3; block 2 is "foo"'s own variable tree, a single data block
// (level 0) holding one value record; block 3 is a genuinely empty block
// (no records at all, not even a star), standing in for what the
// directory's catch-all points any unrecognized global at, so that a
// global with no real directory entry reaches step 2 of §4.5's lookup
// algorithm and fails there with GlobalNotFound rather than anywhere else.
func newFixture(t *testing.T) *Lookup {
	t.Helper()

	// Block 1 is the fixed directory tree root (directoryRootBlock); block
	// 2 holds "foo"'s own variable tree; block 3 is the empty catch-all
	// target. Block 0 is unused filler so the directory root lands at
	// logical block number 1.
	dirLeaf := encBlock(1,
		encRecord(0, suffixPointer([]byte("foo"), 2)),
		encStar(3),
	)
	gvtLeaf := encBlock(0,
		encRecord(0, suffixValue([]byte("foo"), []byte("bar"))),
		encStar(0),
	)
	emptyRoot := encBlock(1)

	// All blocks are padded to the same fixed block size.
	blkSize := len(dirLeaf)
	if len(gvtLeaf) > blkSize {
		blkSize = len(gvtLeaf)
	}
	if len(emptyRoot) > blkSize {
		blkSize = len(emptyRoot)
	}
	dirLeaf = append(dirLeaf, make([]byte, blkSize-len(dirLeaf))...)
	gvtLeaf = append(gvtLeaf, make([]byte, blkSize-len(gvtLeaf))...)
	emptyRoot = append(emptyRoot, make([]byte, blkSize-len(emptyRoot))...)
	filler := make([]byte, blkSize)

	buf := bytes.NewBuffer(nil)
	buf.Write(filler)
	buf.Write(dirLeaf)
	buf.Write(gvtLeaf)
	buf.Write(emptyRoot)

	reader, err := blockio.New(blockio.Config{
		File:   bytes.NewReader(buf.Bytes()),
		Header: header.Header{BlkSize: uint32(blkSize), StartVBN: 1},
	})
	require.NoError(t, err)

	return New(Config{Reader: reader})
}

func TestBuildKey(t *testing.T) {
	require.Equal(t, []byte("foo\x00\x00"), BuildKey("foo", nil))
	require.Equal(t, []byte("foo\x00\x00bar\x00\x00"), BuildKey("foo", []string{"bar"}))
	require.Equal(t, []byte("foo\x00\x00a\x00\x00b\x00\x00"), BuildKey("foo", []string{"a", "b"}))
}

func TestFindValue(t *testing.T) {
	l := newFixture(t)

	value, err := l.FindValue("foo", nil)
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), value)
}

func TestFindValue_GlobalNotFound(t *testing.T) {
	l := newFixture(t)

	// "nope" has no entry in the directory tree, so the scan falls through
	// to the star record, which routes to block 3 - a block with no
	// records of its own. Scanning that block for "nope"'s full key at
	// depth 0 finds nothing, which is exactly the GlobalNotFound case of
	// §4.5 step 2, not a malformed-block or subscript failure.
	_, err := l.FindValue("nope", nil)
	require.Error(t, err)

	lerr, ok := gdserrors.AsLookupError(err)
	require.True(t, ok, "expected a *gdserrors.LookupError, got %T: %v", err, err)
	require.Equal(t, gdserrors.ErrorCodeGlobalNotFound, lerr.Code())
}

func TestFindValue_SubscriptNotFound(t *testing.T) {
	l := newFixture(t)

	_, err := l.FindValue("foo", []string{"missing"})
	require.Error(t, err)
}

func TestFindBlock(t *testing.T) {
	l := newFixture(t)

	blk, err := l.FindBlock("foo", nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, blk.Num)
}
