// Package header decodes the fixed-layout file header and master bitmap
// that occupy the first bytes of a database file.
//
// The on-disk header is an opaque, producer-defined structure; the only
// fields this reader treats as meaningful are the ones the rest of the
// engine needs to navigate the file: the byte size of every block, the
// logical block number at which block-addressed space begins, and the
// declared length of the master bitmap. The header bytes that follow those
// fields are kept only as an opaque reserved region, matching
// the way external callers of a producer's own header import only the
// fields they use rather than the whole struct layout.
package header

import (
	"encoding/binary"
	"io"

	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// MasterBitmapSize is the fixed byte length of the master bitmap that
// immediately follows the file header.
const MasterBitmapSize = 253952

// Size is the fixed byte length of the file header region, before the
// master bitmap begins. Only the first few fields are decoded; the
// remainder is reserved space belonging to the producer's own struct
// layout.
const Size = 64

const (
	offsetBlkSize      = 8
	offsetStartVBN     = 12
	offsetMasterMapLen = 16
)

// PhysicalBlockSize is the fixed unit, in bytes, that start_vbn is
// expressed in.
const PhysicalBlockSize = 512

// Header holds the fields of the file header needed to navigate the
// database file. Reserved holds the header bytes after MasterMapLen
// verbatim, in case a caller needs to inspect producer-specific fields this
// reader does not interpret; the bytes before BlkSize are not kept.
type Header struct {
	// BlkSize is the byte size of every logical block in the file,
	// including its 16-byte block header.
	BlkSize uint32

	// StartVBN is the one-based physical block number, in
	// PhysicalBlockSize units, at which logical block 0 begins.
	StartVBN uint32

	// MasterMapLen is the producer's declared length of the master
	// bitmap, in bytes. It is expected to equal MasterBitmapSize.
	MasterMapLen uint32

	// Reserved holds the header bytes that follow MasterMapLen.
	Reserved []byte
}

// Database bundles the decoded header and master bitmap read from the
// start of a database file.
type Database struct {
	Header       Header
	MasterBitmap [MasterBitmapSize]byte
}

// Read decodes the file header and the master bitmap that immediately
// follows it from r, which must be positioned at the start of the
// database file.
func Read(r io.Reader) (*Database, error) {
	raw := make([]byte, Size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, gdserrors.NewHeaderReadError(err)
	}

	h := Header{
		BlkSize:      binary.LittleEndian.Uint32(raw[offsetBlkSize : offsetBlkSize+4]),
		StartVBN:     binary.LittleEndian.Uint32(raw[offsetStartVBN : offsetStartVBN+4]),
		MasterMapLen: binary.LittleEndian.Uint32(raw[offsetMasterMapLen : offsetMasterMapLen+4]),
	}
	h.Reserved = append([]byte(nil), raw[offsetMasterMapLen+4:]...)

	db := &Database{Header: h}
	if _, err := io.ReadFull(r, db.MasterBitmap[:]); err != nil {
		return nil, gdserrors.NewHeaderReadError(err).WithDetail("stage", "master_bitmap")
	}

	return db, nil
}

// BaseOffset returns the byte offset in the file at which block-addressed
// space begins, derived from StartVBN per the producer's physical/logical
// addressing split.
func (h Header) BaseOffset() int64 {
	return int64(h.StartVBN-1) * PhysicalBlockSize
}

// BlockOffset returns the byte offset in the file at which the given
// logical block number begins.
func (h Header) BlockOffset(blockNum uint64) int64 {
	return h.BaseOffset() + int64(blockNum)*int64(h.BlkSize)
}
