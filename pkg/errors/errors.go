// This package addresses the fundamental challenge that generic error handling presents in complex
// systems: when an error occurs, developers and operators need much more than just "something went wrong."
// They need to understand exactly what failed, why it failed, where it failed, and most importantly,
// what they can do about it. This package transforms error handling from reactive debugging into
// proactive problem resolution.
//
// Architecture and Design Philosophy:
//
// The error system is built around a hierarchical structure that starts with a foundational baseError
// and extends into domain-specific error types. This design provides several key advantages:
// it maintains consistency across all error types while allowing specialized context for different
// domains, enables rich error chaining that preserves the complete failure context, supports
// programmatic error handling through standardized error codes, and facilitates comprehensive
// logging and monitoring through structured error details.
//
// The system recognizes that different layers of a block-structured database reader fail in
// fundamentally different ways and require different types of contextual information for
// effective diagnosis. A validation error needs to know which field failed and what rule was
// violated. A block error needs to know which block number and byte offset were involved. A
// record error needs to know which record inside which block, and its declared rsiz/cmpc. A
// lookup error needs to know which global and subscripts were being searched for. An integrity
// error needs to know which block and bitmap group disagreed with which traversal. By capturing
// this domain-specific context at the point of failure, the system enables much more intelligent
// error handling throughout the application stack.
//
// Error Classification and Codes:
//
// Central to this system is a comprehensive error code taxonomy that provides standardized
// categorization of failures. These codes serve multiple purposes: they enable programmatic
// error handling that doesn't rely on parsing error messages, they provide consistent
// categorization for monitoring and alerting systems, they facilitate error recovery logic
// by identifying specific failure modes, and they support internationalization by separating
// error identification from error presentation.
package errors

import (
	stdErrors "errors"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsBlockError determines if an error is related to reading or decoding a
// block, including the file header.
func IsBlockError(err error) bool {
	var be *BlockError
	return stdErrors.As(err, &be)
}

// IsRecordError determines if an error is related to decoding a single
// record within a block's payload.
func IsRecordError(err error) bool {
	var re *RecordError
	return stdErrors.As(err, &re)
}

// IsLookupError determines if an error occurred while descending the
// directory tree or a global variable tree.
func IsLookupError(err error) bool {
	var le *LookupError
	return stdErrors.As(err, &le)
}

// IsIntegrityError determines if an error represents a disagreement found
// while cross-checking bitmaps against reachable blocks.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return stdErrors.As(err, &ie)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsBlockError safely extracts a BlockError from an error chain, providing
// access to the block number, file offset, and declared size involved.
func AsBlockError(err error) (*BlockError, bool) {
	var be *BlockError
	if stdErrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// AsRecordError safely extracts a RecordError from an error chain, providing
// access to the block, record index, rsiz, and cmpc involved.
func AsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if stdErrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// AsLookupError safely extracts a LookupError from an error chain, providing
// access to the global, subscript count, and descent depth involved.
func AsLookupError(err error) (*LookupError, bool) {
	var le *LookupError
	if stdErrors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// AsIntegrityError safely extracts an IntegrityError from an error chain,
// providing access to the block and bitmap group involved.
func AsIntegrityError(err error) (*IntegrityError, bool) {
	var ie *IntegrityError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't have specific codes.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if be, ok := AsBlockError(err); ok {
		return be.Code()
	}
	if re, ok := AsRecordError(err); ok {
		return re.Code()
	}
	if le, ok := AsLookupError(err); ok {
		return le.Code()
	}
	if ie, ok := AsIntegrityError(err); ok {
		return ie.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports
// them, returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if be, ok := AsBlockError(err); ok {
		if details := be.Details(); details != nil {
			return details
		}
	}
	if re, ok := AsRecordError(err); ok {
		if details := re.Details(); details != nil {
			return details
		}
	}
	if le, ok := AsLookupError(err); ok {
		if details := le.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIntegrityError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}
