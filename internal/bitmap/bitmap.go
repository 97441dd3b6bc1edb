// Package bitmap decodes the two-bit allocation entries packed four to a
// byte that both the master bitmap and every local bitmap block use.
package bitmap

import (
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// Entry is one decoded two-bit allocation entry.
type Entry uint8

const (
	// Busy marks a block currently in use by the B-tree.
	Busy Entry = 0
	// NeverUsed marks a block that has never been allocated.
	NeverUsed Entry = 1
	// Free marks a block that was used and has since been released.
	Free Entry = 3
)

// BitsPerEntry is the width of a single allocation entry.
const BitsPerEntry = 2

// EntriesPerByte is how many allocation entries are packed into one byte.
const EntriesPerByte = 8 / BitsPerEntry

// Decode extracts the entry at the given zero-based index from a packed
// two-bit bitmap. It returns an error if the index falls outside data or if
// the decoded two bits carry no defined meaning.
func Decode(data []byte, index int) (Entry, error) {
	byteIndex := index / EntriesPerByte
	if index < 0 || byteIndex >= len(data) {
		return 0, gdserrors.NewInvalidBitmapEntryError(0, index, 0).WithDetail("reason", "index out of range")
	}

	shift := uint((index % EntriesPerByte) * BitsPerEntry)
	value := (data[byteIndex] >> shift) & 0b11

	switch Entry(value) {
	case Busy, NeverUsed, Free:
		return Entry(value), nil
	default:
		return 0, gdserrors.NewInvalidBitmapEntryError(0, index, value)
	}
}

// IsAllocated reports whether entry describes a block presently in use.
func IsAllocated(entry Entry) bool {
	return entry == Busy
}

// Count returns how many entries are packed into a bitmap of the given
// byte length.
func Count(data []byte) int {
	return len(data) * EntriesPerByte
}
