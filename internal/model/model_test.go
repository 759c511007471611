package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_HasDistinctPosting(t *testing.T) {
	d := time.Date(2022, 12, 15, 0, 0, 0, 0, time.UTC)

	assert.False(t, Transaction{Date: d, PostingDate: d}.HasDistinctPosting())
	assert.False(t, Transaction{Date: d}.HasDistinctPosting(), "missing posting date")
	assert.True(t, Transaction{Date: d, PostingDate: d.AddDate(0, 0, 1)}.HasDistinctPosting())
}

func TestStatementContext_HasDate(t *testing.T) {
	assert.False(t, StatementContext{Account: "4518-3545-1234-5678"}.HasDate())
	assert.True(t, StatementContext{Date: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)}.HasDate())
}
