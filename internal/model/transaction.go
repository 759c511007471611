package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one ledger row recovered from a statement.
type Transaction struct {
	Date        time.Time
	PostingDate time.Time // equals Date for single-date ledgers
	Narration   string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	SourceLine  int             // 0-based line in the located ledger text
}

// HasDistinctPosting reports whether the posting date differs from the transaction date.
func (t Transaction) HasDistinctPosting() bool {
	return !t.PostingDate.IsZero() && !t.PostingDate.Equal(t.Date)
}
