package errors

// LookupError is a specialized error type for failures during tree descent
// while searching for a global or a fully-subscripted key. It embeds
// baseError to inherit standard error functionality, then adds lookup-level
// context such as the key being searched and how far the descent got.
type LookupError struct {
	*baseError
	global     string // The global name being searched for.
	subscripts int    // How many subscripts were supplied in the search key.
	depth      int    // How many index levels were descended before failing.
	blockNum   uint64 // The block at which the descent stopped.
}

// NewLookupError creates a new lookup-specific error.
func NewLookupError(err error, code ErrorCode, msg string) *LookupError {
	return &LookupError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the LookupError type.
func (le *LookupError) WithMessage(msg string) *LookupError {
	le.baseError.WithMessage(msg)
	return le
}

// WithCode sets the error code while preserving the LookupError type.
func (le *LookupError) WithCode(code ErrorCode) *LookupError {
	le.baseError.WithCode(code)
	return le
}

// WithDetail adds contextual information while maintaining the LookupError type.
func (le *LookupError) WithDetail(key string, value any) *LookupError {
	le.baseError.WithDetail(key, value)
	return le
}

// WithGlobal records the global name being searched for.
func (le *LookupError) WithGlobal(global string) *LookupError {
	le.global = global
	return le
}

// WithSubscripts records how many subscripts were supplied in the search key.
func (le *LookupError) WithSubscripts(n int) *LookupError {
	le.subscripts = n
	return le
}

// WithDepth records how many index levels were descended before failing.
func (le *LookupError) WithDepth(depth int) *LookupError {
	le.depth = depth
	return le
}

// WithBlockNum records the block at which the descent stopped.
func (le *LookupError) WithBlockNum(blockNum uint64) *LookupError {
	le.blockNum = blockNum
	return le
}

// Global returns the global name being searched for.
func (le *LookupError) Global() string {
	return le.global
}

// Subscripts returns how many subscripts were supplied in the search key.
func (le *LookupError) Subscripts() int {
	return le.subscripts
}

// Depth returns how many index levels were descended before failing.
func (le *LookupError) Depth() int {
	return le.depth
}

// BlockNum returns the block at which the descent stopped.
func (le *LookupError) BlockNum() uint64 {
	return le.blockNum
}

// NewGlobalNotFoundError reports that the directory tree has no entry for
// the requested global name.
func NewGlobalNotFoundError(global string) *LookupError {
	return NewLookupError(nil, ErrorCodeGlobalNotFound, "global not found in directory tree").
		WithGlobal(global)
}

// NewSubscriptNotFoundError reports that a global's tree exists but no
// record matches the requested subscripts.
func NewSubscriptNotFoundError(global string, subscripts int, blockNum uint64) *LookupError {
	return NewLookupError(nil, ErrorCodeSubscriptNotFound, "subscript not found in global variable tree").
		WithGlobal(global).
		WithSubscripts(subscripts).
		WithBlockNum(blockNum)
}
