package filing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestName(t *testing.T) {
	tests := []struct {
		prefix, account string
		date            time.Time
		want            string
	}{
		{"DBS", "4518-3545-1234-5678", date(2023, 1, 10), "DBS_4518-3545-1234-5678_20230110.pdf"},
		{"HangSeng", "388-123456-001", date(2019, 6, 30), "HangSeng_388-123456-001_20190630.pdf"},
		{"MasterCard_MPower", "5408-0620-1234-5678", date(2016, 6, 10), "MasterCard_MPower_5408-0620-1234-5678_20160610.pdf"},
		{"DBS", " 4518 3545  1234 5678 ", date(2023, 1, 10), "DBS_4518-3545-1234-5678_20230110.pdf"},
		{"HangSeng", "388/123_456", date(2023, 1, 10), "HangSeng_388-123-456_20230110.pdf"},
	}
	for _, tt := range tests {
		got, err := Name(tt.prefix, tt.account, tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestName_Errors(t *testing.T) {
	_, err := Name("", "1", date(2023, 1, 1))
	assert.ErrorContains(t, err, "prefix")
	_, err = Name("DBS", "  ", date(2023, 1, 1))
	assert.ErrorContains(t, err, "account is unknown")
	_, err = Name("DBS", "1", time.Time{})
	assert.ErrorContains(t, err, "date is unknown")
}

func TestParse(t *testing.T) {
	prefix, account, d, err := Parse("archive/MasterCard_MPower_5408-0620-1234-5678_20160610.pdf")
	require.NoError(t, err)
	assert.Equal(t, "MasterCard_MPower", prefix)
	assert.Equal(t, "5408-0620-1234-5678", account)
	assert.Equal(t, date(2016, 6, 10), d)

	name, err := Name(prefix, account, d)
	require.NoError(t, err)
	assert.Equal(t, "MasterCard_MPower_5408-0620-1234-5678_20160610.pdf", name)
}

func TestParse_Errors(t *testing.T) {
	_, _, _, err := Parse("statement.pdf")
	assert.ErrorContains(t, err, "invalid archive name")

	_, _, _, err = Parse("DBS_4518_2023-01-10.pdf")
	assert.ErrorContains(t, err, "invalid date")
}

func TestMove(t *testing.T) {
	in := t.TempDir()
	archive := filepath.Join(t.TempDir(), "archive")
	src := filepath.Join(in, "eStatement.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0o644))

	dst, err := Move(src, archive, "DBS_1_20230110.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(archive, "DBS_1_20230110.pdf"), dst)
	assert.FileExists(t, dst)
	assert.NoFileExists(t, src)

	require.NoError(t, os.WriteFile(src, []byte("again"), 0o644))
	_, err = Move(src, archive, "DBS_1_20230110.pdf")
	assert.ErrorIs(t, err, ErrExists)
	assert.FileExists(t, src)
}
