package statement

import "strings"

// Realign collapses whitespace in the first leadingWidth runes of each line
// so the date columns land at position 0, keeps the rest of the line
// verbatim, right-trims it and drops blank lines.
func Realign(lines []string, leadingWidth int) []string {
	raw := make([]RawLine, len(lines))
	for i, l := range lines {
		raw[i] = RawLine{Index: i, Text: l}
	}

	realigned := RealignRaw(raw, leadingWidth)
	out := make([]string, len(realigned))
	for i, l := range realigned {
		out[i] = l.Text
	}
	return out
}

// RealignRaw is Realign for located lines; source indexes are preserved.
func RealignRaw(lines []RawLine, leadingWidth int) []RawLine {
	var out []RawLine
	for _, l := range lines {
		text := strings.TrimRight(realignLine(l.Text, leadingWidth), " \t\r")
		if text == "" {
			continue
		}
		raw := l.Raw
		if raw == "" {
			raw = l.Text
		}
		out = append(out, RawLine{Index: l.Index, Text: text, Raw: raw})
	}
	return out
}

func realignLine(line string, leadingWidth int) string {
	if leadingWidth <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= leadingWidth {
		return strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(strings.Fields(string(runes[:leadingWidth])), " ") + string(runes[leadingWidth:])
}
