// Package pdftotext runs the external pdftotext tool in layout mode.
package pdftotext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by Probe when no pdftotext binary can be run.
var ErrNotFound = errors.New("pdftotext not found")

// ConverterError reports a failed conversion. Anything pdftotext writes to
// stderr counts as a failure, even with a zero exit status.
type ConverterError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ConverterError) Error() string {
	msg := fmt.Sprintf("pdftotext %s", e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ConverterError) Unwrap() error {
	return e.Err
}

// Options configures Probe.
type Options struct {
	// Path to the binary. Empty means search PATH and well-known dirs.
	Path string
	// Timeout bounds each conversion. Zero means no limit beyond ctx.
	Timeout time.Duration
	Logger  *log.Logger
}

// Converter is a pdftotext binary that answered a version probe.
type Converter struct {
	bin     string
	version string
	timeout time.Duration
	logger  *log.Logger
}

// Probe locates pdftotext and checks that it runs.
func Probe(ctx context.Context, opts Options) (*Converter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bin := opts.Path
	if bin == "" {
		p, ok := findBinary("pdftotext")
		if !ok {
			return nil, ErrNotFound
		}
		bin = p
	}

	// pdftotext prints its version banner on stderr.
	out, err := exec.CommandContext(ctx, bin, "-v").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s -v: %v", ErrNotFound, bin, err)
	}
	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	logger.Debug("found pdftotext", "path", bin, "version", version)
	return &Converter{bin: bin, version: version, timeout: opts.Timeout, logger: logger}, nil
}

// Path returns the binary in use.
func (c *Converter) Path() string { return c.bin }

// Version returns the first line of the version banner.
func (c *Converter) Version() string { return c.version }

// Convert returns the layout-preserving text of the PDF at path.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.bin, "-layout", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil || stderr.Len() > 0 {
		return "", &ConverterError{Path: path, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	c.logger.Debug("converted", "path", path, "bytes", stdout.Len(), "took", time.Since(start))
	return stdout.String(), nil
}

// ReadText returns the layout text of a statement file. A .txt file is
// already layout text and is read as is; anything else goes through conv,
// which may be nil when pdftotext is unavailable.
func ReadText(ctx context.Context, conv *Converter, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	if conv == nil {
		return "", fmt.Errorf("converting %s: %w", path, ErrNotFound)
	}
	return conv.Convert(ctx, path)
}
