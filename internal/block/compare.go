package block

import (
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// Order classifies how a record's key compares to a goal key during a
// left-to-right scan of a block.
type Order int

const (
	// SortsBefore means the record's key is less than the goal; the scan
	// should continue to the next record.
	SortsBefore Order = iota
	// SortsEqual means the record's key matches the goal exactly.
	SortsEqual
	// SortsAfter means the record's key is greater than the goal; no
	// later record in the block can match, so the scan should stop.
	SortsAfter
)

func (o Order) String() string {
	switch o {
	case SortsBefore:
		return "sorts_before"
	case SortsEqual:
		return "sorts_equal"
	case SortsAfter:
		return "sorts_after"
	default:
		return "unknown"
	}
}

// ScanState tracks how many leading bytes of Goal have been confirmed to
// match the record scanned so far. It must be reset to a fresh zero value
// at the start of each block scan, since compression counts are only
// meaningful relative to the immediately preceding record in the same
// block.
type ScanState struct {
	// Goal is the key being searched for.
	Goal []byte
	// MatchedPrefixLen is the number of leading bytes of Goal confirmed
	// to match the records scanned so far in this block.
	MatchedPrefixLen int
}

// NewScanState returns a ScanState ready to scan a block in search of goal.
func NewScanState(goal []byte) *ScanState {
	return &ScanState{Goal: goal}
}

// Compare classifies rec against state's goal key, advancing
// state.MatchedPrefixLen as bytes are confirmed to match. Each call must
// be made in on-disk record order, since the result depends on compression
// counts being evaluated relative to the previous record's match.
//
// Only the record's key - its suffix plus the 0x00 0x00 terminator - takes
// part in the comparison; a data record's trailing value and an index
// record's trailing child pointer are never examined.
//
// The star (sentinel) record always sorts after every real key, by
// definition; it is never key-expanded or compression-checked.
func Compare(rec *Record, state *ScanState) (Order, error) {
	if rec.IsStar() {
		return SortsAfter, nil
	}

	cmpc := int(rec.Cmpc)
	switch {
	case cmpc < state.MatchedPrefixLen:
		return SortsAfter, nil
	case cmpc > state.MatchedPrefixLen:
		return SortsBefore, nil
	}

	suffix, err := rec.Suffix()
	if err != nil {
		return 0, err
	}
	data := append(append([]byte{}, suffix...), 0, 0)
	goal := state.Goal
	i := 0
	for i < len(data) && state.MatchedPrefixLen < len(goal) && data[i] == goal[state.MatchedPrefixLen] {
		state.MatchedPrefixLen++
		i++
	}

	switch {
	case i == len(data) && state.MatchedPrefixLen == len(goal):
		return SortsEqual, nil
	case i == len(data):
		// The record's key ran out before the goal did: its key is a
		// strict prefix of goal, so it sorts before.
		return SortsBefore, nil
	case state.MatchedPrefixLen == len(goal):
		// The goal ran out first: the record's key carries more bytes
		// than the goal, so it sorts after.
		return SortsAfter, nil
	case data[i] > goal[state.MatchedPrefixLen]:
		return SortsAfter, nil
	default:
		return SortsBefore, nil
	}
}

// ExpandKey reconstructs the full key for a non-star record by keeping the
// first rec.Cmpc bytes of prev (the previously expanded key in this block)
// and appending rec's own suffix, through and including its 0x00 0x00
// terminator.
//
// ExpandKey must not be called on star records: they carry no suffix, and
// their 4-byte payload is a raw child pointer that by chance could contain
// a 0x00 0x00 pair, which must not be mistaken for a subscript terminator.
func ExpandKey(rec *Record, prev []byte) ([]byte, error) {
	if rec.IsStar() {
		return nil, gdserrors.NewNoTerminatingCharacterError(0, 0).WithDetail("reason", "star record has no expandable key")
	}

	cmpc := int(rec.Cmpc)
	if cmpc > len(prev) {
		return nil, gdserrors.NewInvalidCompressionCountError(0, 0, rec.Cmpc, len(prev))
	}

	suffix, err := rec.Suffix()
	if err != nil {
		return nil, err
	}

	key := make([]byte, 0, cmpc+len(suffix)+sentinelLen)
	key = append(key, prev[:cmpc]...)
	key = append(key, suffix...)
	key = append(key, 0, 0)
	return key, nil
}
