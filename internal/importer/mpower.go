package importer

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/hkstmt/internal/model"
	"github.com/cleared-dev/hkstmt/internal/statement"
)

// MPowerCard reads Hang Seng M-Power MasterCard statements.
type MPowerCard struct{}

var (
	mpowerIdentify = regexp.MustCompile(`MPOWER`)
	mpowerAccount  = regexp.MustCompile(`ACCOUNT NO.*\n\s*([0-9]{4} [0-9]{4} [0-9]{4} [0-9]{4})`)
	mpowerDate     = regexp.MustCompile(`CLOSING DATE.*\n.*?([0-9]{2} (?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) [0-9]{4})`)

	// cardholder banner, e.g. "5408 0620 XXXX XXXXX     PETER JORDAN"
	mpowerBanner = regexp.MustCompile(`^\s*[0-9]{4} [0-9]{4} [0-9X]{4} [0-9X]{4,5}(\s|$)`)
)

// Name returns the registry key.
func (m *MPowerCard) Name() string { return "hangseng-mpower" }

// FilePrefix returns the archive name prefix.
func (m *MPowerCard) FilePrefix() string { return "MasterCard_MPower" }

// Identify matches the card product name.
func (m *MPowerCard) Identify(text string) bool {
	return mpowerIdentify.MatchString(text)
}

// Context reads the account number from the line below "ACCOUNT NO" and the
// closing date. The account is returned dash-separated.
func (m *MPowerCard) Context(text string) (model.StatementContext, error) {
	sc, err := headerContext(m.Name(), text, mpowerAccount, mpowerDate)
	sc.Account = strings.ReplaceAll(sc.Account, " ", "-")
	return sc, err
}

// Profile describes the card ledger. The banner line that opens each
// cardholder's section starts with the card number and is dropped.
func (m *MPowerCard) Profile(sc model.StatementContext) statement.Profile {
	deny := []*regexp.Regexp{
		regexp.MustCompile(`^\s*OPENING BALANCE`),
		mpowerBanner,
	}
	if sc.Account != "" {
		groups := strings.Split(sc.Account, "-")
		for i, g := range groups {
			groups[i] = regexp.QuoteMeta(g)
		}
		deny = append(deny, regexp.MustCompile(`^\s*`+strings.Join(groups, `\s+`)))
	}

	return statement.Profile{
		Name: m.Name(),
		Anchors: statement.Anchors{
			Start: regexp.MustCompile(`TRANS DATE +POST DATE.*\n.*`),
			End:   regexp.MustCompile(`SUMMARY|\*\*\*\*\* FINANCE`),
		},
		Denylist:     deny,
		LeadingWidth: 34,
		Schema: statement.ColumnSchema{
			{Name: "txn_date", Width: 11},
			{Name: "post_date", Width: 12},
			{Name: "activity", Width: 78},
			{Name: "amount", Width: 46},
		},
		Amount:         statement.TrailingSign(),
		DateField:      "txn_date",
		PostDateField:  "post_date",
		NarrationField: "activity",
		AmountField:    "amount",
	}
}
