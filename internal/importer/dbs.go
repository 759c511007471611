package importer

import (
	"regexp"

	"github.com/cleared-dev/hkstmt/internal/model"
	"github.com/cleared-dev/hkstmt/internal/statement"
)

// DBSCard reads DBS Hong Kong credit card statements.
type DBSCard struct{}

var (
	dbsIdentify = regexp.MustCompile(`www\.dbs\.com`)
	dbsAccount  = regexp.MustCompile(`ACCOUNT NUMBER\s+([0-9]{4}-[0-9]{4}-[0-9]{4}-[0-9]{4})`)
	dbsDate     = regexp.MustCompile(`STATEMENT DATE.*?([0-9]{2} (?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) [0-9]{4})`)
)

// Name returns the registry key.
func (d *DBSCard) Name() string { return "dbs-card" }

// FilePrefix returns the archive name prefix.
func (d *DBSCard) FilePrefix() string { return "DBS" }

// Identify matches the bank's web address in the footer.
func (d *DBSCard) Identify(text string) bool {
	return dbsIdentify.MatchString(text)
}

// Context reads the card account number and statement date.
func (d *DBSCard) Context(text string) (model.StatementContext, error) {
	return headerContext(d.Name(), text, dbsAccount, dbsDate)
}

// Profile describes the card ledger. Rows after GRAND TOTAL belong to the
// next cycle and are cut off.
func (d *DBSCard) Profile(model.StatementContext) statement.Profile {
	return statement.Profile{
		Name: d.Name(),
		Anchors: statement.Anchors{
			Cutoff: regexp.MustCompile(`GRAND TOTAL`),
			Start:  regexp.MustCompile(`([a-zA-Z] [0-9]{4}-[0-9]{4}-[0-9]{4}-[0-9]{4}|TRANS DATE *POST DATE).*`),
			End:    regexp.MustCompile(`GRAND TOTAL|[0-9]{5,}/[0-9]{5,}`),
		},
		Denylist:     []*regexp.Regexp{regexp.MustCompile(`^\s*(SUBTOTAL|ODD CENTS|PREVIOUS BALANCE|BASIC CARD)`)},
		LeadingWidth: 36,
		Schema: statement.ColumnSchema{
			{Name: "txn_date", Width: 6},
			{Name: "post_date", Width: 9},
			{Name: "description", Width: 102},
			{Name: "amount", Width: 33},
		},
		Amount:         statement.CreditSuffix(),
		DateField:      "txn_date",
		PostDateField:  "post_date",
		NarrationField: "description",
		AmountField:    "amount",
	}
}
