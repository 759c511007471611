package statement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Boundary selects how rows are grouped into transactions.
type Boundary int

const (
	// BoundaryDateRow starts a transaction on every row beginning with a
	// digit and closes it when the next such row (or the end) arrives.
	BoundaryDateRow Boundary = iota
	// BoundaryAmountRow closes a transaction on the row whose amount columns
	// are filled. Dates are printed once per day and carry forward.
	BoundaryAmountRow
)

// Profile is everything the pipeline needs to know about one statement layout.
type Profile struct {
	Name         string
	Anchors      Anchors
	Denylist     []*regexp.Regexp
	LeadingWidth int
	Schema       ColumnSchema
	Amount       AmountConvention
	Boundary     Boundary

	DateField      string
	PostDateField  string // optional; empty for single-date ledgers
	NarrationField string
	AmountField    string // SuffixLetter and SuffixSign
	DepositField   string // ColumnPosition
	WithdrawField  string // ColumnPosition
}

// Validate checks that every field role names a schema column.
func (p Profile) Validate() error {
	var errs []error
	if p.Anchors.Start == nil {
		errs = append(errs, errors.New("start anchor is required"))
	}
	if len(p.Schema) == 0 {
		errs = append(errs, errors.New("column schema is empty"))
	}

	need := map[string]string{
		"date":      p.DateField,
		"narration": p.NarrationField,
	}
	if p.PostDateField != "" {
		need["post date"] = p.PostDateField
	}
	if p.Amount.Kind == ColumnPosition {
		need["deposit"] = p.DepositField
		need["withdraw"] = p.WithdrawField
	} else {
		need["amount"] = p.AmountField
	}
	for role, name := range need {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s field is not set", role))
			continue
		}
		if !p.Schema.Has(name) {
			errs = append(errs, fmt.Errorf("%s field %q not in schema [%s]", role, name, strings.Join(p.Schema.Names(), ",")))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("profile %s: %w", p.Name, errors.Join(errs...))
	}
	return nil
}

// WithFormat returns a copy of p whose column widths come from format.
func (p Profile) WithFormat(format string) (Profile, error) {
	schema, err := ParseFormat(format, p.Schema.Names()...)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	p.Schema = schema
	return p, nil
}

// denied reports whether a raw ledger line is boilerplate to drop.
func (p Profile) denied(line string) bool {
	for _, re := range p.Denylist {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
