package importer

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/hkstmt/internal/model"
	"github.com/cleared-dev/hkstmt/internal/statement"
)

// HangSengSavings reads Hang Seng Integrated Account savings statements.
// The bank name is only in the logo image, so identification uses the
// bank code printed in the header.
type HangSengSavings struct{}

var (
	hsSavingsIdentify = regexp.MustCompile(`Bank code +024`)
	hsSavingsAccount  = regexp.MustCompile(`Account Number +(.*)`)
	hsSavingsDate     = regexp.MustCompile(`Statement Date +([0-9]{1,2} [A-Za-z]{3} [0-9]{4})`)

	// carried balance rows: the whole title column reads "B/F BALANCE" or
	// "C/F BALANCE"; the title starts after the 11-rune date column
	hsSavingsBalance = regexp.MustCompile(`^.{11}[BC]/F BALANCE(\s{2,}|$)`)
)

// Name returns the registry key.
func (h *HangSengSavings) Name() string { return "hangseng-savings" }

// FilePrefix returns the archive name prefix.
func (h *HangSengSavings) FilePrefix() string { return "HangSeng" }

// Identify matches the bank code line.
func (h *HangSengSavings) Identify(text string) bool {
	return hsSavingsIdentify.MatchString(text)
}

// Context reads the account number and statement date. Both labels share
// their line with other header columns, so only the leading value is kept.
func (h *HangSengSavings) Context(text string) (model.StatementContext, error) {
	sc, err := headerContext(h.Name(), text, hsSavingsAccount, hsSavingsDate)
	if f := strings.Fields(sc.Account); len(f) > 0 {
		sc.Account = f[0]
	}
	return sc, err
}

// Profile describes the savings ledger. Each day's date is printed once and
// the amount sits on the last line of a multi-line title.
func (h *HangSengSavings) Profile(model.StatementContext) statement.Profile {
	return statement.Profile{
		Name: h.Name(),
		Anchors: statement.Anchors{
			Start: regexp.MustCompile(`Integrated Account Statement Savings\n.*\n.*\n\n`),
			End:   regexp.MustCompile(`\n\n|Transaction Summary|Credit Interest Accrued`),
		},
		Denylist: []*regexp.Regexp{hsSavingsBalance},
		Schema: statement.ColumnSchema{
			{Name: "post_date", Width: 11},
			{Name: "title", Width: 58},
			{Name: "deposit", Width: 35},
			{Name: "withdraw", Width: 25},
			{Name: "balance", Width: 24},
		},
		Amount:         statement.DepositWithdraw(),
		Boundary:       statement.BoundaryAmountRow,
		DateField:      "post_date",
		NarrationField: "title",
		DepositField:   "deposit",
		WithdrawField:  "withdraw",
	}
}
