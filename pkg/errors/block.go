package errors

import (
	"os"
)

// BlockError is a specialized error type for failures reading or decoding a
// single fixed-size block, including the file header block. It embeds
// baseError to inherit standard error functionality, then adds block-level
// context that pinpoints exactly which block and byte range were involved.
type BlockError struct {
	*baseError
	blockNum uint64 // Which block number was being read when the error occurred.
	offset   int64  // Byte offset within the file where the block starts.
	declared uint32 // The byte size the block header declared for itself.
}

// NewBlockError creates a new block-specific error.
func NewBlockError(err error, code ErrorCode, msg string) *BlockError {
	return &BlockError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the BlockError type.
func (be *BlockError) WithMessage(msg string) *BlockError {
	be.baseError.WithMessage(msg)
	return be
}

// WithCode sets the error code while preserving the BlockError type.
func (be *BlockError) WithCode(code ErrorCode) *BlockError {
	be.baseError.WithCode(code)
	return be
}

// WithDetail adds contextual information while maintaining the BlockError type.
func (be *BlockError) WithDetail(key string, value any) *BlockError {
	be.baseError.WithDetail(key, value)
	return be
}

// WithBlockNum records which block number was involved in the error.
func (be *BlockError) WithBlockNum(blockNum uint64) *BlockError {
	be.blockNum = blockNum
	return be
}

// WithOffset records the byte offset in the file where the block starts.
func (be *BlockError) WithOffset(offset int64) *BlockError {
	be.offset = offset
	return be
}

// WithDeclaredSize records the byte size the block's own header claims.
func (be *BlockError) WithDeclaredSize(declared uint32) *BlockError {
	be.declared = declared
	return be
}

// BlockNum returns the block number involved in the error.
func (be *BlockError) BlockNum() uint64 {
	return be.blockNum
}

// Offset returns the byte offset within the file where the block starts.
func (be *BlockError) Offset() int64 {
	return be.offset
}

// DeclaredSize returns the byte size the block's header claimed for itself.
func (be *BlockError) DeclaredSize() uint32 {
	return be.declared
}

// NewHeaderReadError wraps a failure to decode the file header or master
// bitmap at the start of the database file.
func NewHeaderReadError(cause error) *BlockError {
	return NewBlockError(cause, ErrorCodeHeaderReadFailure, "failed to read database file header").
		WithDetail("stage", "header")
}

// NewMalformedBlockError reports a block whose header byte size disagrees
// with the block size declared in the file header, or whose contents break
// a structural rule such as a directory-tree block lacking its star record.
func NewMalformedBlockError(blockNum uint64, declared, expected uint32) *BlockError {
	return NewBlockError(nil, ErrorCodeMalformedBlock, "block header size does not match file header block size").
		WithBlockNum(blockNum).
		WithDeclaredSize(declared).
		WithDetail("expectedSize", expected)
}

// NewBlockIOError wraps an I/O failure encountered while reading a block at
// a known byte offset.
func NewBlockIOError(cause error, blockNum uint64, offset int64) *BlockError {
	return NewBlockError(cause, ErrorCodeIO, "failed to read block").
		WithBlockNum(blockNum).
		WithOffset(offset)
}

// ClassifyFileOpenError analyzes a failure to open the database file for
// reading and returns a BlockError carrying the specific reason, rather than
// a generic I/O error.
func ClassifyFileOpenError(err error, path string) error {
	if os.IsNotExist(err) {
		return NewBlockError(err, ErrorCodeInvalidInput, "database file does not exist").
			WithDetail("path", path)
	}
	if os.IsPermission(err) {
		return NewBlockError(err, ErrorCodeIO, "insufficient permissions to open database file").
			WithDetail("path", path).
			WithDetail("suggestion", "check file permissions")
	}
	return NewBlockError(err, ErrorCodeIO, "failed to open database file").
		WithDetail("path", path)
}
