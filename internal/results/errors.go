package results

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes conversion failures.
type ParseErrorCode string

const (
	// ErrCodeEmptyField indicates a oneof with no field set.
	ErrCodeEmptyField ParseErrorCode = "EMPTY_FIELD"

	// ErrCodeUnsupported indicates a value kind that cannot appear at that position.
	ErrCodeUnsupported ParseErrorCode = "UNSUPPORTED"

	// ErrCodeUnimplemented indicates a well-formed message that has no
	// runtime representation yet.
	ErrCodeUnimplemented ParseErrorCode = "UNIMPLEMENTED"

	// ErrCodeInvalid indicates a structurally invalid message.
	ErrCodeInvalid ParseErrorCode = "INVALID"
)

// ParseError reports a result message that cannot be converted.
type ParseError struct {
	Code    ParseErrorCode
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds a ParseError.
func Errorf(code ParseErrorCode, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the code of the first ParseError in err's chain.
func ErrorCode(err error) (ParseErrorCode, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return "", false
}

// IsUnimplemented returns true if err is an UNIMPLEMENTED parse error.
func IsUnimplemented(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == ErrCodeUnimplemented
}

// Validate checks that exactly one field of v is set.
func (v *Value) Validate() error {
	n := 0
	for _, set := range []bool{
		v.None, v.Bool != nil, v.I32 != nil, v.I64 != nil, v.U64 != nil, v.F64 != nil,
		v.Str != nil, v.Blob != nil, v.I32List != nil, v.I64List != nil, v.F64List != nil,
		v.StrList != nil,
	} {
		if set {
			n++
		}
	}
	switch n {
	case 0:
		return Errorf(ErrCodeEmptyField, "value has no field set")
	case 1:
		return nil
	default:
		return Errorf(ErrCodeInvalid, "value has %d fields set", n)
	}
}
