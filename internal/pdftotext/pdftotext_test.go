package pdftotext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScript stands in for pdftotext: "-v" prints a banner, a path
// containing "broken" fails, "warn" succeeds with a stderr warning, "slow"
// sleeps, and anything else is echoed back.
const fakeScript = `#!/bin/sh
if [ "$1" = "-v" ]; then
  echo "pdftotext version 24.02.0" >&2
  echo "Copyright 2005-2024 The Poppler Developers" >&2
  exit 0
fi
case "$2" in
  *broken*) echo "Syntax Error: Couldn't find trailer dictionary" >&2; exit 1 ;;
  *warn*) echo "Syntax Warning: Invalid Font Weight" >&2; cat "$2" ;;
  *slow*) exec sleep 5 ;;
  *) cat "$2" ;;
esac
`

func fakeConverter(t *testing.T, timeout time.Duration) *Converter {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake pdftotext is a shell script")
	}
	bin := filepath.Join(t.TempDir(), "pdftotext")
	require.NoError(t, os.WriteFile(bin, []byte(fakeScript), 0o755))

	conv, err := Probe(context.Background(), Options{Path: bin, Timeout: timeout})
	require.NoError(t, err)
	return conv
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestProbe(t *testing.T) {
	conv := fakeConverter(t, 0)
	assert.Equal(t, "pdftotext version 24.02.0", conv.Version())
	assert.FileExists(t, conv.Path())
}

func TestProbe_Missing(t *testing.T) {
	_, err := Probe(context.Background(), Options{Path: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConvert(t *testing.T) {
	conv := fakeConverter(t, 0)
	pdf := writeFile(t, "statement.pdf", "  TRANS DATE  POST DATE\n")

	text, err := conv.Convert(context.Background(), pdf)
	require.NoError(t, err)
	assert.Equal(t, "  TRANS DATE  POST DATE\n", text)
}

func TestConvert_Failure(t *testing.T) {
	conv := fakeConverter(t, 0)
	pdf := writeFile(t, "broken.pdf", "x")

	_, err := conv.Convert(context.Background(), pdf)
	require.Error(t, err)

	var convErr *ConverterError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, pdf, convErr.Path)
	assert.Equal(t, "Syntax Error: Couldn't find trailer dictionary", convErr.Stderr)
	assert.Error(t, convErr.Err)
	assert.Contains(t, err.Error(), "trailer dictionary")
}

func TestConvert_StderrIsFailure(t *testing.T) {
	conv := fakeConverter(t, 0)
	pdf := writeFile(t, "warn.pdf", "text")

	_, err := conv.Convert(context.Background(), pdf)
	var convErr *ConverterError
	require.True(t, errors.As(err, &convErr))
	assert.NoError(t, convErr.Err)
	assert.Contains(t, convErr.Stderr, "Invalid Font Weight")
}

func TestConvert_Timeout(t *testing.T) {
	conv := fakeConverter(t, 100*time.Millisecond)
	pdf := writeFile(t, "slow.pdf", "x")

	_, err := conv.Convert(context.Background(), pdf)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadText(t *testing.T) {
	txt := writeFile(t, "statement.TXT", "layout text\n")
	text, err := ReadText(context.Background(), nil, txt)
	require.NoError(t, err)
	assert.Equal(t, "layout text\n", text)

	_, err = ReadText(context.Background(), nil, writeFile(t, "statement.pdf", "x"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ReadText(context.Background(), nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestReadText_Converts(t *testing.T) {
	conv := fakeConverter(t, 0)
	text, err := ReadText(context.Background(), conv, writeFile(t, "statement.pdf", "converted"))
	require.NoError(t, err)
	assert.Equal(t, "converted", text)
}
