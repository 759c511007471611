package model

import "time"

// StatementContext is the per-document metadata read from a statement header.
type StatementContext struct {
	Institution string
	Account     string
	Date        time.Time // statement or closing date
}

// HasDate reports whether a statement date was found.
func (c StatementContext) HasDate() bool {
	return !c.Date.IsZero()
}
