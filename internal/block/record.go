package block

import (
	"encoding/binary"
	"io"

	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// starRsiz is the fixed rsiz of a star (sentinel) record: a 4-byte record
// header followed by nothing but a 4-byte child block pointer.
const starRsiz = 8

// sentinelLen is the width of the 0x00 0x00 byte sequence that terminates
// a record's key suffix and separates it from the record's value or child
// pointer.
const sentinelLen = 2

// Record is one key-compressed record decoded from a block's payload.
//
// Data holds everything after the 4-byte record header: for an ordinary
// record this is the key suffix, the 0x00 0x00 terminator, and finally
// either a value (data block) or a 4-byte child block pointer (index or
// directory block). For a star record, Data is nothing but the 4-byte
// child pointer.
type Record struct {
	Rsiz uint16
	Cmpc uint8
	Filler uint8
	Data []byte
}

// IsStar reports whether this is the star (sentinel) record that
// terminates every index and directory block, and sorts after every real
// key in the block.
func (r *Record) IsStar() bool {
	return r.Rsiz == starRsiz
}

// sentinelIndex returns the index of the first byte of the 0x00 0x00
// sequence terminating the record's key suffix.
func (r *Record) sentinelIndex() (int, error) {
	i := 0
	for i+1 < len(r.Data) {
		if r.Data[i] == 0 && r.Data[i+1] == 0 {
			return i, nil
		}
		i++
	}
	return 0, gdserrors.NewNoTerminatingCharacterError(0, 0)
}

// Suffix returns the key suffix bytes preceding the 0x00 0x00 terminator.
// It returns an error for star records, which carry no suffix.
func (r *Record) Suffix() ([]byte, error) {
	if r.IsStar() {
		return nil, gdserrors.NewNoTerminatingCharacterError(0, 0).WithDetail("reason", "star record has no suffix")
	}
	i, err := r.sentinelIndex()
	if err != nil {
		return nil, err
	}
	return r.Data[:i], nil
}

// Value returns the bytes following the 0x00 0x00 terminator: the stored
// value for a data block record. It is not meaningful for index or
// directory records, whose trailing bytes are a child pointer instead.
func (r *Record) Value() ([]byte, error) {
	if r.IsStar() {
		return nil, gdserrors.NewNoTerminatingCharacterError(0, 0).WithDetail("reason", "star record has no value")
	}
	i, err := r.sentinelIndex()
	if err != nil {
		return nil, err
	}
	return r.Data[i+sentinelLen:], nil
}

// Pointer decodes the 4-byte child block pointer carried by an index,
// directory, or star record. For a star record the pointer is the last
// four bytes of Data; for every other record it is the four bytes
// immediately following the 0x00 0x00 terminator.
func (r *Record) Pointer() (uint64, error) {
	if r.IsStar() {
		if len(r.Data) < 4 {
			return 0, gdserrors.NewRecordTooSmallError(0, 0, len(r.Data))
		}
		return uint64(binary.LittleEndian.Uint32(r.Data[len(r.Data)-4:])), nil
	}

	i, err := r.sentinelIndex()
	if err != nil {
		return 0, err
	}
	rest := r.Data[i+sentinelLen:]
	if len(rest) < 4 {
		return 0, gdserrors.NewRecordTooSmallError(0, 0, len(rest))
	}
	return uint64(binary.LittleEndian.Uint32(rest[:4])), nil
}

// Cursor iterates the records packed into a block's payload, in on-disk
// order.
type Cursor struct {
	blockNum uint64
	payload  []byte
	offset   int
	index    int
}

// NewCursor returns a Cursor over b's payload.
func NewCursor(b *Block) *Cursor {
	return &Cursor{blockNum: b.Num, payload: b.Payload}
}

// Next decodes and returns the next record in the block. It returns
// io.EOF once every byte of the payload has been consumed.
func (c *Cursor) Next() (*Record, error) {
	if c.offset >= len(c.payload) {
		return nil, io.EOF
	}

	remaining := c.payload[c.offset:]
	if len(remaining) < 4 {
		return nil, gdserrors.NewRecordTooSmallError(c.blockNum, c.index, len(remaining))
	}

	rsiz := binary.LittleEndian.Uint16(remaining[0:2])
	if rsiz < 4 {
		return nil, gdserrors.NewRecordTooSmallError(c.blockNum, c.index, len(remaining)).WithRsiz(rsiz)
	}

	dataLen := int(rsiz) - 4
	if dataLen > len(remaining)-4 {
		return nil, gdserrors.NewRecordTooBigError(c.blockNum, c.index, rsiz, len(remaining)-4)
	}

	rec := &Record{
		Rsiz:   rsiz,
		Cmpc:   remaining[2],
		Filler: remaining[3],
		Data:   remaining[4 : 4+dataLen],
	}

	c.offset += int(rsiz)
	c.index++
	return rec, nil
}
