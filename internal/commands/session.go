package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/hkstmt/internal/config"
	"github.com/cleared-dev/hkstmt/internal/filing"
	"github.com/cleared-dev/hkstmt/internal/importer"
	"github.com/cleared-dev/hkstmt/internal/model"
	"github.com/cleared-dev/hkstmt/internal/pdftotext"
	"github.com/cleared-dev/hkstmt/internal/statement"
)

var errUnrecognized = errors.New("no importer recognizes this statement")

// session is the loaded configuration plus the services built from it.
type session struct {
	cfg      *config.Config
	logger   *log.Logger
	registry *importer.Registry
	parser   *statement.Parser

	probeOnce sync.Once
	conv      *pdftotext.Converter
}

// open loads the config named by --config. An explicitly named file must
// exist; the default one may be absent.
func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	cfg, err := load(o.configPath)
	if err != nil {
		return nil, err
	}

	level := log.InfoLevel
	if o.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "hkstmt",
		Level:  level,
	})

	return &session{
		cfg:      cfg,
		logger:   logger,
		registry: importer.DefaultRegistry(),
		parser:   statement.NewParser(logger),
	}, nil
}

// converter probes for pdftotext on first use. It returns nil when the
// binary is unusable; .txt statements still work without it.
func (s *session) converter(ctx context.Context) *pdftotext.Converter {
	s.probeOnce.Do(func() {
		conv, err := pdftotext.Probe(ctx, pdftotext.Options{
			Path:    s.cfg.Converter.Path,
			Timeout: s.cfg.Converter.Timeout,
			Logger:  s.logger,
		})
		if err != nil {
			s.logger.Warn("pdftotext unavailable, only .txt statements can be read", "err", err)
			return
		}
		s.conv = conv
	})
	return s.conv
}

// document is one parsed statement.
type document struct {
	path string
	imp  importer.Importer
	inst config.InstitutionConfig
	sc   model.StatementContext
	txns []model.Transaction
}

// archiveName is the file name the statement is filed under. The source
// extension is kept so layout-text statements stay .txt.
func (d *document) archiveName() (string, error) {
	name, err := filing.Name(d.imp.FilePrefix(), d.sc.Account, d.sc.Date)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + strings.ToLower(filepath.Ext(d.path)), nil
}

// loadOptions force an importer or column widths instead of detecting them.
type loadOptions struct {
	institution string
	format      string
}

// load reads, identifies and parses the statement at path.
func (s *session) load(ctx context.Context, path string, lo loadOptions) (*document, error) {
	var conv *pdftotext.Converter
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		conv = s.converter(ctx)
	}
	text, err := pdftotext.ReadText(ctx, conv, path)
	if err != nil {
		return nil, err
	}

	imp, err := s.importerFor(text, lo.institution)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug("identified statement", "file", path, "institution", imp.Name())

	inst := s.cfg.Institution(imp.Name())
	format := inst.Format
	if lo.format != "" {
		format = lo.format
	}
	prof, sc, err := importer.Prepare(imp, text, importer.Overrides{
		Format:        format,
		CreditMarkers: inst.CreditMarkers,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	txns, err := s.parser.Parse(text, prof, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(txns) == 0 {
		s.logger.Warn("no transactions found", "file", path)
	}

	return &document{path: path, imp: imp, inst: inst, sc: sc, txns: txns}, nil
}

func (s *session) importerFor(text, name string) (importer.Importer, error) {
	if name != "" {
		imp := s.registry.Get(name)
		if imp == nil {
			if alt := s.registry.Suggest(name); len(alt) > 0 {
				return nil, fmt.Errorf("unknown institution %q (did you mean %s?)", name, strings.Join(alt, " or "))
			}
			return nil, fmt.Errorf("unknown institution %q (known: %s)", name, strings.Join(s.registry.Names(), ", "))
		}
		return imp, nil
	}
	imp, ok := s.registry.Identify(text)
	if !ok {
		return nil, errUnrecognized
	}
	return imp, nil
}

// inputs appends the statements found in inbox to files.
func inputs(files []string, inbox string) ([]string, error) {
	if inbox == "" {
		return files, nil
	}
	found, err := importer.Scan(inbox)
	if err != nil {
		return nil, err
	}
	for _, f := range found {
		files = append(files, f.Path)
	}
	return files, nil
}
