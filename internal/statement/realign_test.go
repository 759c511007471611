package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealign_CollapsesLeadingSegment(t *testing.T) {
	line := " 22   SEP       23   SEP       " + "     7-ELEVEN    SHATIN      13.50"
	got := Realign([]string{line}, 30)
	assert.Equal(t, []string{"22 SEP 23 SEP" + line[30:]}, got)
}

func TestRealign_ContinuationKeepsLeadingBlank(t *testing.T) {
	line := strings.Repeat(" ", 36) + "  OCTOPUS CARD: XXXXXXXX"
	got := Realign([]string{line}, 34)
	assert.Equal(t, []string{"    OCTOPUS CARD: XXXXXXXX"}, got)
}

func TestRealign_Idempotent(t *testing.T) {
	lines := []string{
		"18 MAY 2016 19 MAY 2016 OCTOPUS CARDS LTD     HONG KONG      250.00",
		"02 JUN 2016 02 JUN 2016 E-BANKING PYMT - THANK YOU        4,333.56-",
	}
	once := Realign(lines, 23)
	assert.Equal(t, lines, once)
	assert.Equal(t, once, Realign(once, 23))
}

func TestRealign_DropsBlankLinesAndTrailingSpace(t *testing.T) {
	got := Realign([]string{"", "   ", "01 JAN  TEA   ", "\t"}, 10)
	assert.Equal(t, []string{"01 JAN TEA"}, got)
}

func TestRealign_ZeroWidthKeepsLine(t *testing.T) {
	got := Realign([]string{"  01 MAY   SALARY   "}, 0)
	assert.Equal(t, []string{"  01 MAY   SALARY"}, got)
}

func TestRealignRaw_KeepsIndexes(t *testing.T) {
	got := RealignRaw([]RawLine{{Index: 0, Text: "a"}, {Index: 1, Text: ""}, {Index: 2, Text: "b"}}, 5)
	assert.Equal(t, []RawLine{{Index: 0, Text: "a", Raw: "a"}, {Index: 2, Text: "b", Raw: "b"}}, got)
}

func TestRealignRaw_KeepsLocatedText(t *testing.T) {
	got := RealignRaw([]RawLine{{Index: 3, Text: "  18 MAY   19 MAY   SHOP"}}, 17)
	require.Len(t, got, 1)
	assert.Equal(t, "18 MAY 19 MAY   SHOP", got[0].Text)
	assert.Equal(t, "  18 MAY   19 MAY   SHOP", got[0].Raw)

	again := RealignRaw(got, 17)
	assert.Equal(t, "  18 MAY   19 MAY   SHOP", again[0].Raw)
}

func TestDecode_Classify(t *testing.T) {
	schema := ColumnSchema{{"date", 6}, {"desc", 20}}
	tests := []struct {
		line string
		want RowKind
	}{
		{"22 SEP 7-ELEVEN", NewTransactionRow},
		{" 7-ELEVEN", ContinuationRow},
		{"      24 HOUR TOLL", ContinuationRow},
		{"OCTOPUS CARD", ContinuationRow},
		{"", ContinuationRow},
		{"٣ arabic digit", ContinuationRow},
	}
	for _, tt := range tests {
		row := Decode(RawLine{Text: tt.line}, schema)
		assert.Equal(t, tt.want, row.Kind, "line %q", tt.line)
	}
}

func TestDecode_Fields(t *testing.T) {
	schema := ColumnSchema{{"date", 7}, {"desc", 10}}
	row := Decode(RawLine{Index: 4, Text: "01 JAN TEA"}, schema)
	assert.Equal(t, "01 JAN", row.Field("date"))
	assert.Equal(t, "TEA", row.Field("desc"))
	assert.Equal(t, 4, row.Line.Index)
	assert.Equal(t, "new", row.Kind.String())
}
