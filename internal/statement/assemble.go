package statement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/hkstmt/internal/model"
)

// pending accumulates one transaction while its rows are being read.
type pending struct {
	active      bool
	date        time.Time
	postingDate time.Time
	amount      decimal.Decimal
	line        int
	narration   []string
}

func (t *pending) addNarration(text string) {
	if text = strings.Join(strings.Fields(text), " "); text != "" {
		t.narration = append(t.narration, text)
	}
}

func (t *pending) finalize() model.Transaction {
	return model.Transaction{
		Date:        t.date,
		PostingDate: t.postingDate,
		Narration:   strings.Join(t.narration, " "),
		Amount:      t.amount,
		SourceLine:  t.line,
	}
}

// Assemble groups decoded rows into transactions using the profile's
// boundary rule. ref is the statement date used for year-less dates.
// The first unreadable date or amount aborts the whole document.
func Assemble(rows []DecodedRow, p Profile, ref time.Time) ([]model.Transaction, error) {
	if p.Boundary == BoundaryAmountRow {
		return assembleByAmount(rows, p, ref)
	}
	return assembleByDate(rows, p, ref)
}

func assembleByDate(rows []DecodedRow, p Profile, ref time.Time) ([]model.Transaction, error) {
	var txns []model.Transaction
	var cur pending

	for i, row := range rows {
		if row.Kind == NewTransactionRow {
			next, err := commitRow(row, p, ref)
			if err != nil {
				return nil, err
			}
			cur = next
			cur.addNarration(row.Field(p.NarrationField))
		} else {
			// Continuation rows contribute text only, never date or amount.
			cur.addNarration(row.Line.Text)
		}

		last := i == len(rows)-1
		if last || rows[i+1].Kind == NewTransactionRow {
			// Continuation rows before the first dated row have no owner.
			if cur.active {
				txns = append(txns, cur.finalize())
			}
			cur = pending{}
		}
	}
	return txns, nil
}

func assembleByAmount(rows []DecodedRow, p Profile, ref time.Time) ([]model.Transaction, error) {
	var txns []model.Transaction
	var cur pending
	var day time.Time

	for _, row := range rows {
		if raw := row.Field(p.DateField); raw != "" {
			d, err := ResolveDate(raw, ref)
			if err != nil {
				return nil, rowError(row, p.DateField, err)
			}
			day = d
		}
		cur.addNarration(row.Field(p.NarrationField))

		if !hasAmount(row, p) {
			continue
		}
		if day.IsZero() {
			return nil, rowError(row, p.DateField, ErrDateParse)
		}
		amount, err := rowAmount(row, p)
		if err != nil {
			return nil, err
		}
		cur.date, cur.postingDate = day, day
		cur.amount = amount
		cur.line = row.Line.Index
		txns = append(txns, cur.finalize())
		cur = pending{}
	}
	return txns, nil
}

// commitRow reads the authoritative date(s) and amount of a new transaction.
func commitRow(row DecodedRow, p Profile, ref time.Time) (pending, error) {
	date, err := ResolveDate(row.Field(p.DateField), ref)
	if err != nil {
		return pending{}, rowError(row, p.DateField, err)
	}

	posting := date
	if p.PostDateField != "" {
		posting, err = ResolveDate(row.Field(p.PostDateField), ref)
		if err != nil {
			return pending{}, rowError(row, p.PostDateField, err)
		}
	}

	amount, err := rowAmount(row, p)
	if err != nil {
		return pending{}, err
	}

	return pending{
		active:      true,
		date:        date,
		postingDate: posting,
		amount:      amount,
		line:        row.Line.Index,
	}, nil
}

func rowAmount(row DecodedRow, p Profile) (decimal.Decimal, error) {
	if p.Amount.Kind == ColumnPosition {
		d, err := NormalizeColumns(row.Field(p.DepositField), row.Field(p.WithdrawField))
		if err != nil {
			return decimal.Zero, rowError(row, p.DepositField+"/"+p.WithdrawField, err)
		}
		return d, nil
	}
	d, err := NormalizeAmount(row.Field(p.AmountField), p.Amount)
	if err != nil {
		return decimal.Zero, rowError(row, p.AmountField, err)
	}
	return d, nil
}

func hasAmount(row DecodedRow, p Profile) bool {
	if p.Amount.Kind == ColumnPosition {
		return row.Field(p.DepositField) != "" || row.Field(p.WithdrawField) != ""
	}
	return row.Field(p.AmountField) != ""
}

func rowError(row DecodedRow, field string, err error) error {
	return &RowError{Line: row.Line.Index, Text: row.Line.Text, Raw: row.Line.Raw, Field: field, Err: err}
}
