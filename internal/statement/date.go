package statement

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthAbbrev = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DEC": time.December,
}

// ResolveDate turns "DD MON" or "DD MON YYYY" into a full date. Without a
// year, the year comes from ref, except that a December date on a January
// statement belongs to the previous year.
func ResolveDate(text string, ref time.Time) (time.Time, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q is not DD MON [YYYY]", ErrDateParse, text)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrDateParse, parts[0])
	}

	month, ok := monthAbbrev[strings.ToUpper(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: month %q", ErrDateParse, parts[1])
	}

	var year int
	if len(parts) == 3 {
		year, err = strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 4 {
			return time.Time{}, fmt.Errorf("%w: year %q", ErrDateParse, parts[2])
		}
	} else {
		if ref.IsZero() {
			return time.Time{}, fmt.Errorf("%w: %q has no year and the statement date is unknown", ErrDateParse, text)
		}
		year = ref.Year()
		if ref.Month() == time.January && month == time.December {
			year--
		}
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || d.Day() != day || d.Month() != month {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for %s %d", ErrDateParse, day, month, year)
	}
	return d, nil
}
