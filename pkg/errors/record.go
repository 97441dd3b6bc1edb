package errors

// RecordError is a specialized error type for failures decoding a single
// record within a block's payload. It embeds baseError to inherit standard
// error functionality, then adds the context needed to locate the offending
// record inside its block.
type RecordError struct {
	*baseError
	blockNum uint64 // Which block the record belongs to.
	index    int    // Position of the record within the block, zero-based.
	rsiz     uint16 // The record's declared size, rsiz.
	cmpc     uint8  // The record's declared compression count, cmpc.
}

// NewRecordError creates a new record-specific error.
func NewRecordError(err error, code ErrorCode, msg string) *RecordError {
	return &RecordError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the RecordError type.
func (re *RecordError) WithMessage(msg string) *RecordError {
	re.baseError.WithMessage(msg)
	return re
}

// WithCode sets the error code while preserving the RecordError type.
func (re *RecordError) WithCode(code ErrorCode) *RecordError {
	re.baseError.WithCode(code)
	return re
}

// WithDetail adds contextual information while maintaining the RecordError type.
func (re *RecordError) WithDetail(key string, value any) *RecordError {
	re.baseError.WithDetail(key, value)
	return re
}

// WithBlockNum records which block the offending record belongs to.
func (re *RecordError) WithBlockNum(blockNum uint64) *RecordError {
	re.blockNum = blockNum
	return re
}

// WithIndex records the zero-based position of the record within its block.
func (re *RecordError) WithIndex(index int) *RecordError {
	re.index = index
	return re
}

// WithRsiz records the record's declared size field.
func (re *RecordError) WithRsiz(rsiz uint16) *RecordError {
	re.rsiz = rsiz
	return re
}

// WithCmpc records the record's declared compression count field.
func (re *RecordError) WithCmpc(cmpc uint8) *RecordError {
	re.cmpc = cmpc
	return re
}

// BlockNum returns the block the offending record belongs to.
func (re *RecordError) BlockNum() uint64 {
	return re.blockNum
}

// Index returns the zero-based position of the record within its block.
func (re *RecordError) Index() int {
	return re.index
}

// Rsiz returns the record's declared size field.
func (re *RecordError) Rsiz() uint16 {
	return re.rsiz
}

// Cmpc returns the record's declared compression count field.
func (re *RecordError) Cmpc() uint8 {
	return re.cmpc
}

// NewRecordTooSmallError reports that fewer bytes remain in the block
// payload than the record's header requires.
func NewRecordTooSmallError(blockNum uint64, index int, remaining int) *RecordError {
	return NewRecordError(nil, ErrorCodeRecordTooSmall, "not enough bytes remain in block for record header").
		WithBlockNum(blockNum).
		WithIndex(index).
		WithDetail("remainingBytes", remaining)
}

// NewRecordTooBigError reports that a record's declared rsiz extends past
// the end of the block payload.
func NewRecordTooBigError(blockNum uint64, index int, rsiz uint16, remaining int) *RecordError {
	return NewRecordError(nil, ErrorCodeRecordTooBig, "record size extends past end of block payload").
		WithBlockNum(blockNum).
		WithIndex(index).
		WithRsiz(rsiz).
		WithDetail("remainingBytes", remaining)
}

// NewNoTerminatingCharacterError reports that a record's key suffix ran out
// of bytes before a 0x00 0x00 subscript terminator was found.
func NewNoTerminatingCharacterError(blockNum uint64, index int) *RecordError {
	return NewRecordError(nil, ErrorCodeNoTerminatingCharacter, "record suffix has no terminating 0x00 0x00 sequence").
		WithBlockNum(blockNum).
		WithIndex(index)
}

// NewZeroCompressionCountError reports a record whose compression count is
// zero where the surrounding record sequence requires a shared prefix.
func NewZeroCompressionCountError(blockNum uint64, index int) *RecordError {
	return NewRecordError(nil, ErrorCodeZeroCompressionCount, "record has zero compression count").
		WithBlockNum(blockNum).
		WithIndex(index)
}

// NewInvalidCompressionCountError reports a record whose compression count
// exceeds the length of the key accumulated so far.
func NewInvalidCompressionCountError(blockNum uint64, index int, cmpc uint8, keyLen int) *RecordError {
	return NewRecordError(nil, ErrorCodeInvalidCompressionCount, "compression count exceeds accumulated key length").
		WithBlockNum(blockNum).
		WithIndex(index).
		WithCmpc(cmpc).
		WithDetail("accumulatedKeyLen", keyLen)
}

// NewIncorrectSortError reports two consecutive records in a block that are
// not in strictly increasing key order.
func NewIncorrectSortError(blockNum uint64, index int) *RecordError {
	return NewRecordError(nil, ErrorCodeIncorrectSort, "records are not in strictly increasing key order").
		WithBlockNum(blockNum).
		WithIndex(index)
}
