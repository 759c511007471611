// Package filing names and moves statements into the archive.
package filing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dateFormat = "20060102"

// ErrExists is returned when the archive already holds a file of that name.
var ErrExists = errors.New("archive file already exists")

// Name returns an archive file name like "DBS_4518-3545-1234-5678_20230110.pdf".
func Name(prefix, account string, date time.Time) (string, error) {
	account = strings.Join(strings.Fields(account), "-")
	account = strings.NewReplacer("/", "-", `\`, "-", "_", "-").Replace(account)
	switch {
	case prefix == "":
		return "", errors.New("file prefix is empty")
	case account == "":
		return "", errors.New("statement account is unknown")
	case date.IsZero():
		return "", errors.New("statement date is unknown")
	}
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, account, date.Format(dateFormat)), nil
}

// Parse splits an archive file name back into prefix, account and date.
// The prefix may itself contain underscores.
func Parse(name string) (prefix, account string, date time.Time, err error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return "", "", time.Time{}, fmt.Errorf("invalid archive name: %q", name)
	}

	n := len(parts)
	date, err = time.Parse(dateFormat, parts[n-1])
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("invalid date in archive name %q: %w", name, err)
	}
	return strings.Join(parts[:n-2], "_"), parts[n-2], date, nil
}

// Move moves src to dir/name, creating dir. An existing file is never
// overwritten.
func Move(src, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}

	dst := filepath.Join(dir, name)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, dst)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("moving %s to archive: %w", filepath.Base(src), err)
	}
	return dst, nil
}
