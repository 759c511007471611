package statement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountKind selects how an institution marks credits.
type AmountKind int

const (
	// SuffixLetter: a trailing code such as "CR" marks a credit.
	SuffixLetter AmountKind = iota
	// SuffixSign: a trailing sign character marks a credit.
	SuffixSign
	// ColumnPosition: separate deposit and withdrawal columns.
	ColumnPosition
)

func (k AmountKind) String() string {
	switch k {
	case SuffixLetter:
		return "suffix-letter"
	case SuffixSign:
		return "suffix-sign"
	case ColumnPosition:
		return "column-position"
	default:
		return fmt.Sprintf("AmountKind(%d)", int(k))
	}
}

// AmountConvention is an AmountKind plus the markers that flag inflows.
// Markers are data so locale-specific glyphs can be configured per profile.
type AmountConvention struct {
	Kind    AmountKind
	Markers []string
}

// CreditSuffix is the DBS-style convention ("1,234.50CR").
func CreditSuffix() AmountConvention {
	return AmountConvention{Kind: SuffixLetter, Markers: []string{"CR"}}
}

// TrailingSign is the Hang Seng card convention ("4,333.56-").
func TrailingSign(markers ...string) AmountConvention {
	if len(markers) == 0 {
		markers = []string{"-"}
	}
	return AmountConvention{Kind: SuffixSign, Markers: markers}
}

// DepositWithdraw is the savings-account convention of two amount columns.
func DepositWithdraw() AmountConvention {
	return AmountConvention{Kind: ColumnPosition}
}

// NormalizeAmount parses a single amount column. A trailing marker makes the
// amount an inflow (positive); without one it is an outflow (negative).
func NormalizeAmount(text string, conv AmountConvention) (decimal.Decimal, error) {
	if conv.Kind == ColumnPosition {
		return decimal.Zero, fmt.Errorf("%w: column-position amounts need deposit and withdraw columns", ErrAmountParse)
	}

	clean := cleanAmount(text)
	credit := false
	for _, m := range conv.Markers {
		if m != "" && strings.HasSuffix(clean, m) {
			clean = strings.TrimSuffix(clean, m)
			credit = true
			break
		}
	}

	d, err := parseMagnitude(clean, text)
	if err != nil {
		return decimal.Zero, err
	}
	if credit {
		return d, nil
	}
	return d.Neg(), nil
}

// NormalizeColumns resolves a deposit/withdrawal pair. Exactly one side is
// expected to be filled; deposit wins if both are.
func NormalizeColumns(deposit, withdraw string) (decimal.Decimal, error) {
	deposit, withdraw = cleanAmount(deposit), cleanAmount(withdraw)
	switch {
	case deposit != "":
		return parseMagnitude(deposit, deposit)
	case withdraw != "":
		d, err := parseMagnitude(withdraw, withdraw)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: deposit and withdraw are both empty", ErrAmountParse)
	}
}

func cleanAmount(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.Join(strings.Fields(s), "")
}

func parseMagnitude(clean, original string) (decimal.Decimal, error) {
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrAmountParse)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrAmountParse, original)
	}
	return d, nil
}
