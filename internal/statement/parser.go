package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/hkstmt/internal/model"
)

// Parser runs the statement pipeline. It holds no per-document state and
// may be shared between goroutines.
type Parser struct {
	logger *log.Logger
}

// NewParser creates a Parser. Debug-level logging on logger prints realigned
// lines and decoded fields for tuning column widths. A nil logger discards.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Parser{logger: logger}
}

// Parse extracts the transactions of one statement document.
// A document without a ledger section yields no transactions and no error.
func (p *Parser) Parse(text string, prof Profile, sc model.StatementContext) ([]model.Transaction, error) {
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	located := Locate(text, prof.Anchors)
	if len(located) == 0 {
		p.logger.Debug("no ledger section found", "profile", prof.Name)
		return nil, nil
	}

	kept := located[:0:0]
	for _, l := range located {
		if prof.denied(l.Text) {
			p.logger.Debug("skipping boilerplate", "line", l.Index, "text", l.Text)
			continue
		}
		kept = append(kept, l)
	}

	lines := RealignRaw(kept, prof.LeadingWidth)
	p.logger.Debug("realigned ledger", "profile", prof.Name, "lines", len(lines), "width", prof.Schema.Width())

	rows := make([]DecodedRow, len(lines))
	for i, l := range lines {
		rows[i] = Decode(l, prof.Schema)
		if p.logger.GetLevel() <= log.DebugLevel {
			p.logger.Debug(l.Text, "line", l.Index, "kind", rows[i].Kind, "fields", formatFields(prof.Schema, rows[i]))
		}
	}

	txns, err := Assemble(rows, prof, sc.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", prof.Name, err)
	}

	p.logger.Debug("assembled transactions", "profile", prof.Name, "count", len(txns))
	return txns, nil
}

func formatFields(schema ColumnSchema, row DecodedRow) string {
	var b strings.Builder
	for i, f := range schema {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(&b, "%s=%q", f.Name, row.Field(f.Name))
	}
	return b.String()
}
