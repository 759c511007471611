// Package processlog records which statements were filed and where.
package processlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// LogFile is the statement log, relative to the archive directory.
const LogFile = "logs/statement-log.csv"

const (
	logDir = "logs"
	dayFmt = "2006-01-02"
)

// Entry is one row in the statement log.
type Entry struct {
	Timestamp     Stamp  `csv:"timestamp"`
	Institution   string `csv:"institution"`
	Account       string `csv:"account"`
	StatementDate Day    `csv:"statement_date"`
	Source        string `csv:"source"`
	ArchivedAs    string `csv:"archived_as"`
	Transactions  int    `csv:"transactions"`
}

// Stamp is a time written as RFC 3339.
type Stamp struct{ time.Time }

// MarshalCSV implements gocsv.TypeMarshaller.
func (s Stamp) MarshalCSV() (string, error) {
	return s.Format(time.RFC3339), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (s *Stamp) UnmarshalCSV(v string) error {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", v, err)
	}
	s.Time = t
	return nil
}

// Day is a calendar date; the zero value is written as an empty cell.
type Day struct{ time.Time }

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Day) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(dayFmt), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *Day) UnmarshalCSV(v string) error {
	if v == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dayFmt, v)
	if err != nil {
		return fmt.Errorf("parsing statement date %q: %w", v, err)
	}
	d.Time = t
	return nil
}

// Append writes entries to <dir>/logs/statement-log.csv, creating the file and header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(dir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dir, LogFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening statement log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		err = gocsv.Marshal(entries, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(entries, f)
	}
	if err != nil {
		return fmt.Errorf("writing statement log: %w", err)
	}
	return nil
}

// Read returns all entries from <dir>/logs/statement-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, LogFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening statement log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	if err := gocsv.Unmarshal(f, &entries); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statement log: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}

// Archived reports whether a file named name was already filed.
func Archived(entries []Entry, name string) bool {
	for _, e := range entries {
		if filepath.Base(e.ArchivedAs) == name {
			return true
		}
	}
	return false
}
