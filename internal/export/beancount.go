package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/cleared-dev/hkstmt/internal/model"
)

// BeancountHeader opens every beancount export.
const BeancountHeader = ";; -*- mode: beancount; coding: utf-8; -*-"

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// writeBeancount writes one cleared transaction per entry, dated by posting
// date. The transaction date is kept as metadata when it differs.
func writeBeancount(w io.Writer, txns []model.Transaction, opts Options, cur *money.Currency) error {
	if opts.Account == "" {
		return errors.New("beancount export needs an account")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, BeancountHeader)
	for _, txn := range txns {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "%s * \"%s\"\n", txn.PostingDate.Format(dateFormat), quoteEscaper.Replace(txn.Narration))
		if opts.Source != "" {
			fmt.Fprintf(bw, "  source: \"%s\"\n", quoteEscaper.Replace(opts.Source))
		}
		fmt.Fprintf(bw, "  source_line: \"%s\"\n", strconv.Itoa(txn.SourceLine))
		if txn.HasDistinctPosting() {
			fmt.Fprintf(bw, "  txn_date: %s\n", txn.Date.Format(dateFormat))
		}
		fmt.Fprintf(bw, "  %s  %s %s\n", opts.Account, formatAmount(txn.Amount, cur), cur.Code)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing beancount: %w", err)
	}
	return nil
}
