package statement

import (
	"unicode"
	"unicode/utf8"
)

// RowKind classifies a decoded ledger row.
type RowKind int

const (
	// ContinuationRow carries narration for the previous transaction.
	ContinuationRow RowKind = iota
	// NewTransactionRow starts a transaction and carries its date and amount.
	NewTransactionRow
)

func (k RowKind) String() string {
	if k == NewTransactionRow {
		return "new"
	}
	return "continuation"
}

// DecodedRow is one realigned line cut into schema fields.
type DecodedRow struct {
	Line   RawLine
	Kind   RowKind
	Fields map[string]string
}

// Field returns the trimmed value of the named column.
func (r DecodedRow) Field(name string) string {
	return r.Fields[name]
}

// Decode slices a realigned line by schema. It never fails: short lines are
// padded and the row kind comes from whether the line starts with a digit.
func Decode(line RawLine, schema ColumnSchema) DecodedRow {
	return DecodedRow{
		Line:   line,
		Kind:   classify(line.Text),
		Fields: schema.Slice(line.Text),
	}
}

// classify looks at position 0 only; realignment puts the leading date there
// and leaves continuation lines with leading blanks. A line whose first
// column is blank is a continuation even if a digit follows later.
func classify(line string) RowKind {
	r, _ := utf8.DecodeRuneInString(line)
	if r != utf8.RuneError && unicode.IsDigit(r) && r < utf8.RuneSelf {
		return NewTransactionRow
	}
	return ContinuationRow
}
