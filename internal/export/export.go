// Package export writes parsed statement transactions as CSV or beancount.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/hkstmt/internal/model"
)

// Format is an output format.
type Format string

const (
	CSV       Format = "csv"
	Beancount Format = "beancount"
)

// ErrUnknownCurrency is returned for codes outside ISO 4217.
var ErrUnknownCurrency = errors.New("unknown currency")

// ParseFormat accepts "csv" or "beancount" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, Beancount:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv or beancount)", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Options carries the ledger settings for one statement.
type Options struct {
	Account  string // beancount posting account
	Currency string // ISO 4217 code
	Source   string // statement file name, recorded in beancount metadata
}

// Write exports txns to w in format f.
func Write(w io.Writer, f Format, txns []model.Transaction, opts Options) error {
	cur, err := lookupCurrency(opts.Currency)
	if err != nil {
		return err
	}
	switch f {
	case CSV:
		return writeCSV(w, txns, cur)
	case Beancount:
		return writeBeancount(w, txns, opts, cur)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// OutputPath names the export of input inside dir, keeping the base name.
func OutputPath(dir, input string, f Format) string {
	base := filepath.Base(input)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+f.Ext())
}

// Net sums txns in currency's minor units.
func Net(txns []model.Transaction, currency string) (*money.Money, error) {
	cur, err := lookupCurrency(currency)
	if err != nil {
		return nil, err
	}
	total := money.New(0, cur.Code)
	for _, txn := range txns {
		total, err = total.Add(money.New(minorUnits(txn.Amount, cur), cur.Code))
		if err != nil {
			return nil, fmt.Errorf("summing amounts: %w", err)
		}
	}
	return total, nil
}

func lookupCurrency(code string) (*money.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: currency is not set", ErrUnknownCurrency)
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return cur, nil
}

func minorUnits(amount decimal.Decimal, cur *money.Currency) int64 {
	return amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
}

// formatAmount renders amount with the currency's number of decimals.
func formatAmount(amount decimal.Decimal, cur *money.Currency) string {
	return amount.StringFixed(int32(cur.Fraction))
}
