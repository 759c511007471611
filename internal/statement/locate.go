package statement

import (
	"regexp"
	"strings"
)

// Anchors mark where ledger sections begin and end in a document.
type Anchors struct {
	// Cutoff, if set, drops everything after its last match. A document
	// without any cutoff match has no ledger.
	Cutoff *regexp.Regexp
	Start  *regexp.Regexp
	// End is searched from the end of each Start match and the nearest match
	// closes the section. A start with no end after it is not a section.
	// A nil End runs each section to the end of the document.
	End *regexp.Regexp
}

// RawLine is one line of ledger text and its 0-based index within the
// located ledger, i.e. the sections joined in document order, not the whole
// document. Raw keeps the line as located once Text has been realigned.
type RawLine struct {
	Index int
	Text  string
	Raw   string
}

// Locate extracts the ledger sections of text and returns them as lines.
// It returns nil when no start anchor matches.
func Locate(text string, a Anchors) []RawLine {
	section := LocateText(text, a)
	if section == "" {
		return nil
	}

	split := strings.Split(section, "\n")
	lines := make([]RawLine, len(split))
	for i, l := range split {
		lines[i] = RawLine{Index: i, Text: strings.TrimSuffix(l, "\r")}
	}
	return lines
}

// LocateText returns the concatenated ledger sections, joined by newlines in
// document order.
func LocateText(text string, a Anchors) string {
	if a.Start == nil {
		return ""
	}

	if a.Cutoff != nil {
		all := a.Cutoff.FindAllStringIndex(text, -1)
		if len(all) == 0 {
			return ""
		}
		text = text[:all[len(all)-1][1]]
	}

	var sections []string
	pos := 0
	for pos <= len(text) {
		loc := a.Start.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		begin := pos + loc[1]
		end := len(text)
		if a.End != nil {
			e := a.End.FindStringIndex(text[begin:])
			if e == nil {
				break
			}
			end = begin + e[0]
		}
		sections = append(sections, text[begin:end])

		if end == begin && loc[1] == loc[0] {
			// Empty start and empty section: step forward to avoid looping.
			end++
		}
		pos = end
	}
	return strings.Join(sections, "\n")
}
