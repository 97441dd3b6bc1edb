package block

import "encoding/binary"

// encodeRecord builds the on-disk bytes for a single record: a 4-byte
// header (rsiz, cmpc, filler) followed by data.
func encodeRecord(cmpc uint8, data []byte) []byte {
	rsiz := uint16(4 + len(data))
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint16(buf[0:2], rsiz)
	buf[2] = cmpc
	buf[3] = 0
	copy(buf[4:], data)
	return buf
}

// encodeStar builds the on-disk bytes for a star (sentinel) record: an
// 8-byte record whose last four bytes are a child block pointer.
func encodeStar(ptr uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], 8)
	binary.LittleEndian.PutUint32(buf[4:8], ptr)
	return buf
}

// encodeBlock assembles a full block: a 16-byte block header followed by
// the concatenation of records.
func encodeBlock(blockNum uint64, level uint8, records ...[]byte) []byte {
	payload := make([]byte, 0)
	for _, r := range records {
		payload = append(payload, r...)
	}

	buf := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], 1) // version
	buf[2] = 0                                 // filler
	buf[3] = level
	binary.LittleEndian.PutUint32(buf[4:8], uint32(HeaderSize+len(payload)))
	binary.LittleEndian.PutUint64(buf[8:16], 1) // txn number
	copy(buf[HeaderSize:], payload)
	return buf
}

// suffixWithPointer builds a record's data portion for an index/directory
// record: suffix bytes, the 0x00 0x00 terminator, then a 4-byte pointer.
func suffixWithPointer(suffix []byte, ptr uint32) []byte {
	buf := make([]byte, 0, len(suffix)+2+4)
	buf = append(buf, suffix...)
	buf = append(buf, 0, 0)
	ptrBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(ptrBytes, ptr)
	buf = append(buf, ptrBytes...)
	return buf
}

// suffixWithValue builds a record's data portion for a data record:
// suffix bytes, the 0x00 0x00 terminator, then the stored value.
func suffixWithValue(suffix, value []byte) []byte {
	buf := make([]byte, 0, len(suffix)+2+len(value))
	buf = append(buf, suffix...)
	buf = append(buf, 0, 0)
	buf = append(buf, value...)
	return buf
}
