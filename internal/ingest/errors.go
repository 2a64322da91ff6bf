package ingest

import (
	"errors"
	"fmt"
)

// RowError reports an input row that was skipped. Column is 1-based; zero
// means the row as a whole.
type RowError struct {
	Line    int
	Column  int
	Field   string
	Message string
}

func (e *RowError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("line %d, column %d (%s): %s", e.Line, e.Column, e.Field, e.Message)
}

// AsRowError returns the RowError in err's chain, if any.
func AsRowError(err error) (*RowError, bool) {
	var re *RowError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
