package export

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/gocarina/gocsv"

	"github.com/cleared-dev/hkstmt/internal/model"
)

const dateFormat = "2006-01-02"

// Row is one line of the CSV export.
type Row struct {
	Date        string `csv:"date"`
	PostingDate string `csv:"posting_date"`
	Title       string `csv:"title"`
	Amount      string `csv:"amount"`
	Currency    string `csv:"currency"`
}

func writeCSV(w io.Writer, txns []model.Transaction, cur *money.Currency) error {
	rows := make([]Row, len(txns))
	for i, txn := range txns {
		rows[i] = Row{
			Date:        txn.Date.Format(dateFormat),
			PostingDate: txn.PostingDate.Format(dateFormat),
			Title:       txn.Narration,
			Amount:      formatAmount(txn.Amount, cur),
			Currency:    cur.Code,
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// ReadCSV reads back a CSV export.
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}
