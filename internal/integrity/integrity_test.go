package integrity

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/gdsread/internal/blockio"
	"github.com/corvidlabs/gdsread/internal/header"
)

const fixtureBlkSize = 144 // 16-byte block header + 128-byte local bitmap payload.

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
	buf := make([]byte, fixtureBlkSize)
	binary.LittleEndian.PutUint16(buf[0:2], 1)
	buf[3] = level
	binary.LittleEndian.PutUint32(buf[4:8], uint32(16+len(payload)))
	binary.LittleEndian.PutUint64(buf[8:16], 1)
	copy(buf[16:], payload)
	return buf
}

// localBitmap builds a 512-entry local bitmap block (block 0 of a group)
// marking every entry in busy as Busy (0b00) and every other entry as
// NeverUsed (0b01), matching internal/bitmap's encoding.
func localBitmap(busy ...int) []byte {
	buf := make([]byte, fixtureBlkSize)
	binary.LittleEndian.PutUint16(buf[0:2], 1)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(fixtureBlkSize))
	binary.LittleEndian.PutUint64(buf[8:16], 1)

	payload := buf[16:]
	for i := range payload {
		payload[i] = 0b01010101
	}
	for _, idx := range busy {
		byteIdx := idx / 4
		shift := uint((idx % 4) * 2)
		payload[byteIdx] &^= 0b11 << shift
	}
	return buf
}

// newReader builds a blockio.Reader over blocks laid out at consecutive
// logical block numbers starting at 0, padding every block to
// fixtureBlkSize.
func newReader(t *testing.T, blocks ...[]byte) *blockio.Reader {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	for _, b := range blocks {
		padded := append([]byte{}, b...)
		if len(padded) < fixtureBlkSize {
			padded = append(padded, make([]byte, fixtureBlkSize-len(padded))...)
		}
		buf.Write(padded)
	}

	reader, err := blockio.New(blockio.Config{
		File:   bytes.NewReader(buf.Bytes()),
		Header: header.Header{BlkSize: fixtureBlkSize, StartVBN: 1},
	})
	require.NoError(t, err)
	return reader
}

// newChecker wires a Checker directly over blocks, without going through
// the file-header reader, since the Checker does not read Header's fields.
func newChecker(reader *blockio.Reader) *Checker {
	return New(Config{Reader: reader, Header: header.Header{}, Threads: 2})
}

func TestRun_Clean(t *testing.T) {
	// Block 0: local bitmap marking 1 (directory root) and 2 (data leaf)
	// busy. Block 1: directory tree root, level 1, routes "foo" straight to
	// block 2. Block 2: data block holding "foo" -> "bar".
	bitmap := localBitmap(1, 2)
	dirRoot := encBlock(1,
		encRecord(0, suffixPointer([]byte("foo"), 2)),
		encStar(0),
	)
	dataLeaf := encBlock(0,
		encRecord(0, suffixValue([]byte("foo"), []byte("bar"))),
		encStar(0),
	)

	reader := newReader(t, bitmap, dirRoot, dataLeaf)
	report, err := newChecker(reader).Run(context.Background())
	require.NoError(t, err)

	require.True(t, report.Clean(), "report: %+v", report)
	require.Equal(t, 2, report.BlocksScanned)
	require.Equal(t, 2, report.ExpectedBusy)
}

func TestRun_IncorrectlyMarkedBusy(t *testing.T) {
	// Block 33 is marked busy in the local bitmap but nothing in the tree
	// ever points to it.
	bitmap := localBitmap(1, 2, 33)
	dirRoot := encBlock(1,
		encRecord(0, suffixPointer([]byte("foo"), 2)),
		encStar(0),
	)
	dataLeaf := encBlock(0,
		encRecord(0, suffixValue([]byte("foo"), []byte("bar"))),
		encStar(0),
	)

	reader := newReader(t, bitmap, dirRoot, dataLeaf)
	report, err := newChecker(reader).Run(context.Background())
	require.NoError(t, err)

	require.False(t, report.Clean())
	require.Equal(t, []uint64{33}, report.IncorrectlyMarkedBusy)
	require.Empty(t, report.IncorrectlyMarkedFree)
}

func TestRun_IncorrectlyMarkedFree(t *testing.T) {
	// Block 2 is reachable from the root but the local bitmap marks it
	// NeverUsed instead of Busy.
	bitmap := localBitmap(1)
	dirRoot := encBlock(1,
		encRecord(0, suffixPointer([]byte("foo"), 2)),
		encStar(0),
	)
	dataLeaf := encBlock(0,
		encRecord(0, suffixValue([]byte("foo"), []byte("bar"))),
		encStar(0),
	)

	reader := newReader(t, bitmap, dirRoot, dataLeaf)
	report, err := newChecker(reader).Run(context.Background())
	require.NoError(t, err)

	require.False(t, report.Clean())
	require.Equal(t, []uint64{2}, report.IncorrectlyMarkedFree)
}

func TestRun_ZeroCompressionCount(t *testing.T) {
	// The data block's second record claims zero compression, which is
	// only valid for a block's first record.
	bitmap := localBitmap(1, 2)
	dirRoot := encBlock(1,
		encRecord(0, suffixPointer([]byte("foo"), 2)),
		encStar(0),
	)
	dataLeaf := encBlock(0,
		encRecord(0, suffixValue([]byte("bar"), []byte("1"))),
		encRecord(0, suffixValue([]byte("zoo"), []byte("2"))),
		encStar(0),
	)

	reader := newReader(t, bitmap, dirRoot, dataLeaf)
	report, err := newChecker(reader).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.RecordErrors, 1)
}

func TestRun_IncorrectSort(t *testing.T) {
	// The data block's second record sorts before the first, violating
	// the strictly-increasing invariant.
	bitmap := localBitmap(1, 2)
	dirRoot := encBlock(1,
		encRecord(0, suffixPointer([]byte("foo"), 2)),
		encStar(0),
	)
	dataLeaf := encBlock(0,
		encRecord(0, suffixValue([]byte("zoo"), []byte("1"))),
		encRecord(1, suffixValue([]byte("bar"), []byte("2"))),
		encStar(0),
	)

	reader := newReader(t, bitmap, dirRoot, dataLeaf)
	report, err := newChecker(reader).Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, report.RecordErrors)
}
