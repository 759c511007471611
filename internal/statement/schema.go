// Package statement recovers transactions from layout-preserving statement text.
//
// The pipeline is Locate -> Realign -> Decode -> Assemble, parameterized by a
// Profile describing one institution's anchors, column widths and amount
// convention.
package statement

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field is a fixed-width column in a statement ledger.
type Field struct {
	Name  string
	Width int
}

// ColumnSchema is an ordered list of fixed-width fields.
type ColumnSchema []Field

// Width returns the padded line length the schema expects.
func (s ColumnSchema) Width() int {
	total := 0
	for _, f := range s {
		total += f.Width
	}
	return total
}

// Names returns the field names in order.
func (s ColumnSchema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the schema contains a field called name.
func (s ColumnSchema) Has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Format renders the schema as a width string like "11s58s35s25s24s".
func (s ColumnSchema) Format() string {
	var b strings.Builder
	for _, f := range s {
		b.WriteString(strconv.Itoa(f.Width))
		b.WriteByte('s')
	}
	return b.String()
}

// ParseFormat builds a schema from a width string like "6s9s102s33s" and one
// name per width.
func ParseFormat(format string, names ...string) (ColumnSchema, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimSpace(format), "s"), "s")
	if len(parts) != len(names) {
		return nil, fmt.Errorf("format %q has %d fields, want %d (%s)", format, len(parts), len(names), strings.Join(names, ","))
	}

	schema := make(ColumnSchema, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("format %q: parsing width %q: %w", format, p, err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("format %q: width of %s must be positive", format, names[i])
		}
		schema[i] = Field{Name: names[i], Width: w}
	}
	return schema, nil
}

// Slice pads line to the schema width and cuts it into trimmed fields.
// Widths count runes. Anything past the schema width is kept in the last field.
func (s ColumnSchema) Slice(line string) map[string]string {
	runes := []rune(line)
	if pad := s.Width() - len(runes); pad > 0 {
		runes = append(runes, []rune(strings.Repeat(" ", pad))...)
	}

	fields := make(map[string]string, len(s))
	pos := 0
	for i, f := range s {
		end := pos + f.Width
		if i == len(s)-1 {
			end = len(runes)
		}
		fields[f.Name] = strings.TrimSpace(string(runes[pos:end]))
		pos += f.Width
	}
	return fields
}

// Encode lays fields back out at their fixed widths. Values longer than
// their column are truncated. It is the inverse of Slice for values that
// fit: Slice(Encode(f)) returns f.
func (s ColumnSchema) Encode(fields map[string]string) string {
	var b strings.Builder
	for _, f := range s {
		v := fields[f.Name]
		if utf8.RuneCountInString(v) > f.Width {
			v = string([]rune(v)[:f.Width])
		}
		b.WriteString(v)
		b.WriteString(strings.Repeat(" ", f.Width-utf8.RuneCountInString(v)))
	}
	return strings.TrimRight(b.String(), " ")
}
