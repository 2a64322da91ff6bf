package property

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes property errors.
type ErrorCode string

const (
	// ErrCodeTypeMismatch indicates a getter applied to the wrong variant.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeDataError indicates a value that does not fit its target type.
	ErrCodeDataError ErrorCode = "DATA_ERROR"

	// ErrCodeUnsupported indicates an operation not defined for the operands.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED"

	// ErrCodeMalformed indicates layout bytes that cannot be decoded.
	ErrCodeMalformed ErrorCode = "MALFORMED"
)

// Error is a recoverable property error.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

func newError(code ErrorCode, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

func mismatch(op, want string, got Property) *Error {
	return newError(ErrCodeTypeMismatch, op, "expected %s, got %s", want, Format(got))
}

// Code returns the code of the first property Error in err's chain.
func Code(err error) (ErrorCode, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return "", false
}

// IsDataError returns true if err is a DATA_ERROR.
func IsDataError(err error) bool {
	c, ok := Code(err)
	return ok && c == ErrCodeDataError
}

// IsUnsupported returns true if err is an UNSUPPORTED error.
func IsUnsupported(err error) bool {
	c, ok := Code(err)
	return ok && c == ErrCodeUnsupported
}

// IsMalformed returns true if err is a MALFORMED error.
func IsMalformed(err error) bool {
	c, ok := Code(err)
	return ok && c == ErrCodeMalformed
}
