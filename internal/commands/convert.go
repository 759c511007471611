package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/hkstmt/internal/export"
	"github.com/cleared-dev/hkstmt/internal/importer"
)

type convertOptions struct {
	output      string
	directory   string
	format      string
	institution string
	currency    string
	account     string
	to          string
	inbox       string
	workers     int
}

func newConvertCommand(root *rootOptions) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Export statement transactions to CSV or beancount",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), s, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVarP(&opts.directory, "directory", "d", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", `column widths, e.g. "6s9s102s33s"`)
	cmd.Flags().StringVarP(&opts.institution, "institution", "i", "", "skip detection and use this importer")
	cmd.Flags().StringVarP(&opts.currency, "currency", "c", "", "currency code (default from config)")
	cmd.Flags().StringVar(&opts.account, "account", "", "beancount account (default from config)")
	cmd.Flags().StringVar(&opts.to, "to", "", "output format: csv or beancount (default from config)")
	cmd.Flags().StringVar(&opts.inbox, "inbox", "", "also convert every statement in this directory, then move it to processed/")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "documents converted at once (default from config)")

	return cmd
}

func runConvert(ctx context.Context, out io.Writer, s *session, args []string, opts convertOptions) error {
	files, err := inputs(args, opts.inbox)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no statements to convert")
	}
	if opts.output != "" && len(files) > 1 {
		return errors.New("--output needs exactly one input; use --directory for several")
	}

	to := opts.to
	if to == "" {
		to = s.cfg.Output.Format
	}
	f, err := export.ParseFormat(to)
	if err != nil {
		return err
	}
	dir := opts.directory
	if dir == "" {
		dir = s.cfg.Output.Directory
	}
	workers := opts.workers
	if workers <= 0 {
		workers = s.cfg.Workers
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			report, err := s.convertFile(ctx, path, f, dir, opts)
			if err != nil {
				s.logger.Error("conversion failed", "file", path, "err", err)
				return err
			}
			mu.Lock()
			fmt.Fprint(out, report)
			mu.Unlock()

			if opts.inbox != "" && filepath.Dir(path) == filepath.Clean(opts.inbox) {
				return importer.MarkProcessed(opts.inbox, filepath.Base(path))
			}
			return nil
		})
	}
	return g.Wait()
}

// convertFile exports one statement and returns the lines to print.
func (s *session) convertFile(ctx context.Context, path string, f export.Format, dir string, opts convertOptions) (string, error) {
	doc, err := s.load(ctx, path, loadOptions{institution: opts.institution, format: opts.format})
	if err != nil {
		return "", err
	}

	currency := doc.inst.Currency
	if opts.currency != "" {
		currency = opts.currency
	}
	account := doc.inst.Account
	if opts.account != "" {
		account = opts.account
	}

	dst := opts.output
	if dst == "" {
		dst = export.OutputPath(dir, path, f)
	}
	if err := writeExport(dst, f, doc, export.Options{
		Account:  account,
		Currency: currency,
		Source:   filepath.Base(path),
	}); err != nil {
		return "", err
	}

	net, err := export.Net(doc.txns, currency)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Processing: %s\n", path)
	fmt.Fprintf(&b, "Exporting to %s\n", dst)
	fmt.Fprintf(&b, "  %s %d transactions, net %s\n", doc.imp.Name(), len(doc.txns), net.Display())
	return b.String(), nil
}

// writeExport writes dst, removing it again if the export fails.
func writeExport(dst string, f export.Format, doc *document, opts export.Options) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	fh, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	werr := export.Write(fh, f, doc.txns, opts)
	cerr := fh.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("%s: %w", doc.path, err)
	}
	return nil
}
