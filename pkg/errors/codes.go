package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary. This includes opening the database file, seeking to a
	// block offset, and reading the bytes that make up a block.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints. This maps
	// to HTTP 400-series errors and indicates problems with the request
	// itself rather than system failures.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These are the equivalent of HTTP 500 errors and
	// indicate bugs, assertion failures, or other programming errors that
	// shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Block-layer error codes cover failures decoding the file header and the
// fixed-size blocks that make up the B-tree.
const (
	// ErrorCodeHeaderReadFailure occurs when the file header or master
	// bitmap cannot be decoded from the start of the database file.
	ErrorCodeHeaderReadFailure ErrorCode = "HEADER_READ_FAILURE"

	// ErrorCodeMalformedBlock indicates a block's header claims a byte size
	// that is inconsistent with the block size declared in the file header,
	// or a directory-tree block ends without a star record.
	ErrorCodeMalformedBlock ErrorCode = "MALFORMED_BLOCK"
)

// Record-layer error codes cover failures decoding the key-compressed
// records stored within a single block's payload.
const (
	// ErrorCodeRecordTooSmall indicates fewer bytes remain in the block
	// payload than a record's declared header requires.
	ErrorCodeRecordTooSmall ErrorCode = "RECORD_TOO_SMALL"

	// ErrorCodeRecordTooBig indicates a record's declared size extends
	// past the end of the block payload.
	ErrorCodeRecordTooBig ErrorCode = "RECORD_TOO_BIG"

	// ErrorCodeNoTerminatingCharacter indicates a record's key suffix was
	// scanned to the end of its data without finding the 0x00 0x00
	// subscript terminator.
	ErrorCodeNoTerminatingCharacter ErrorCode = "NO_TERMINATING_CHARACTER"

	// ErrorCodeZeroCompressionCount flags a record whose compression count
	// is zero where the surrounding context requires a shared prefix.
	ErrorCodeZeroCompressionCount ErrorCode = "ZERO_COMPRESSION_COUNT"

	// ErrorCodeInvalidCompressionCount indicates a record's compression
	// count exceeds the length of the key accumulated so far, so the
	// claimed shared prefix cannot exist.
	ErrorCodeInvalidCompressionCount ErrorCode = "INVALID_COMPRESSION_COUNT"

	// ErrorCodeIncorrectSort indicates two consecutive records in a block
	// are not in strictly increasing key order.
	ErrorCodeIncorrectSort ErrorCode = "INCORRECT_SORT"
)

// Lookup-layer error codes cover the outcome of descending the directory
// tree and a global variable tree in search of a specific key.
const (
	// ErrorCodeGlobalNotFound indicates the directory tree has no entry for
	// the requested global name.
	ErrorCodeGlobalNotFound ErrorCode = "GLOBAL_NOT_FOUND"

	// ErrorCodeSubscriptNotFound indicates the global exists but no record
	// in its tree matches the requested subscripts.
	ErrorCodeSubscriptNotFound ErrorCode = "SUBSCRIPT_NOT_FOUND"
)

// Integrity-layer error codes cover disagreements discovered while
// cross-checking the bitmaps against the blocks actually reachable from the
// tree roots.
const (
	// ErrorCodeBlockIncorrectlyMarkedFree indicates a block reachable from
	// a tree traversal is marked free in its local bitmap.
	ErrorCodeBlockIncorrectlyMarkedFree ErrorCode = "BLOCK_INCORRECTLY_MARKED_FREE"

	// ErrorCodeBlockIncorrectlyMarkedBusy indicates a block marked busy in
	// its local bitmap was never reached by any tree traversal.
	ErrorCodeBlockIncorrectlyMarkedBusy ErrorCode = "BLOCK_INCORRECTLY_MARKED_BUSY"

	// ErrorCodeInvalidBitmapEntry indicates a two-bit bitmap entry decoded
	// to a value that carries no defined meaning.
	ErrorCodeInvalidBitmapEntry ErrorCode = "INVALID_BITMAP_ENTRY"
)
