package statement

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch means the configured column layout does not fit the text.
// Date and amount failures during assembly are both schema mismatches.
var ErrSchemaMismatch = errors.New("column schema does not match statement layout")

var (
	// ErrDateParse is returned for unreadable day-month dates.
	ErrDateParse = fmt.Errorf("%w: invalid date", ErrSchemaMismatch)
	// ErrAmountParse is returned for unreadable amounts.
	ErrAmountParse = fmt.Errorf("%w: invalid amount", ErrSchemaMismatch)
)

// RowError reports the ledger line that aborted a parse. Line indexes the
// located ledger (its sections joined in document order), not the document.
type RowError struct {
	Line  int    // 0-based index in the located ledger
	Text  string // line as realigned and decoded
	Raw   string // line as located, before realignment
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("ledger line %d, field %s: %v\n\t%q", e.Line, e.Field, e.Err, e.Text)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
