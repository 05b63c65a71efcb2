package types

import "errors"

// Registry and record construction errors.
var (
	ErrUnknownKind  = errors.New("unknown record kind")
	ErrUnknownField = errors.New("unknown field")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrFieldCount   = errors.New("wrong number of field values")
	ErrKindMismatch = errors.New("record kind does not match table")
	ErrNoLink       = errors.New("record kinds are not linked")
)

// Save and load errors. Every failure of an export or import wraps exactly
// one of ErrIO or ErrFormat; ErrHeaderMismatch is always reported together
// with ErrFormat.
var (
	ErrIO             = errors.New("storage I/O failure")
	ErrFormat         = errors.New("format failure")
	ErrHeaderMismatch = errors.New("header does not match schema")
)
