package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/cleared-dev/hkstmt/internal/model"
	"github.com/cleared-dev/hkstmt/internal/statement"
)

// Importer describes one institution's statement layout.
type Importer interface {
	// Name is the registry key, e.g. "dbs-card".
	Name() string
	// FilePrefix starts archive file names, e.g. "DBS".
	FilePrefix() string
	// Identify reports whether text is a statement from this institution.
	Identify(text string) bool
	// Context reads the account number and statement date from the header.
	Context(text string) (model.StatementContext, error)
	// Profile returns the parsing profile for one document.
	Profile(sc model.StatementContext) statement.Profile
}

// Registry holds named importers in registration order.
type Registry struct {
	importers map[string]Importer
	order     []string
}

// FileInfo describes a statement file in the inbox.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty importer registry.
func NewRegistry() *Registry {
	return &Registry{importers: make(map[string]Importer)}
}

// Register adds an importer. Panics on duplicate name.
func (r *Registry) Register(imp Importer) {
	key := strings.ToLower(imp.Name())
	if _, ok := r.importers[key]; ok {
		panic("duplicate importer name: " + key)
	}
	r.importers[key] = imp
	r.order = append(r.order, key)
}

// Get returns the importer called name, or nil.
func (r *Registry) Get(name string) Importer {
	return r.importers[strings.ToLower(name)]
}

// Names lists registered importers in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Suggest returns registered names containing the letters of name in
// order, closest first.
func (r *Registry) Suggest(name string) []string {
	ranks := fuzzy.RankFindFold(strings.TrimSpace(name), r.order)
	sort.Sort(ranks)
	names := make([]string, len(ranks))
	for i, rk := range ranks {
		names[i] = rk.Target
	}
	return names
}

// Identify returns the first importer that recognizes text.
func (r *Registry) Identify(text string) (Importer, bool) {
	for _, key := range r.order {
		if imp := r.importers[key]; imp.Identify(text) {
			return imp, true
		}
	}
	return nil, false
}

// DefaultRegistry returns a registry with all built-in importers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&HangSengSavings{})
	r.Register(&DBSCard{})
	r.Register(&MPowerCard{})
	return r
}

// Overrides adjusts a built-in profile from configuration.
type Overrides struct {
	Format        string   // column widths, e.g. "6s9s102s33s"
	CreditMarkers []string // single-column amount conventions only
}

// Prepare reads the document context and builds the profile for imp.
func Prepare(imp Importer, text string, o Overrides) (statement.Profile, model.StatementContext, error) {
	sc, err := imp.Context(text)
	if err != nil {
		return statement.Profile{}, model.StatementContext{}, err
	}
	prof := imp.Profile(sc)
	if o.Format != "" {
		prof, err = prof.WithFormat(o.Format)
		if err != nil {
			return statement.Profile{}, model.StatementContext{}, err
		}
	}
	if len(o.CreditMarkers) > 0 {
		if prof.Amount.Kind == statement.ColumnPosition {
			return statement.Profile{}, model.StatementContext{}, fmt.Errorf("profile %s: credit markers do not apply to deposit/withdraw columns", prof.Name)
		}
		prof.Amount.Markers = append([]string(nil), o.CreditMarkers...)
	}
	return prof, sc, nil
}

// headerContext extracts the first capture group of each regex. A missing
// account or date is left empty; a date that is present but unreadable is an error.
func headerContext(name, text string, account, date *regexp.Regexp) (model.StatementContext, error) {
	sc := model.StatementContext{Institution: name}
	if m := account.FindStringSubmatch(text); m != nil {
		sc.Account = strings.TrimSpace(m[1])
	}
	if m := date.FindStringSubmatch(text); m != nil {
		d, err := statement.ResolveDate(strings.TrimSpace(m[1]), sc.Date)
		if err != nil {
			return sc, fmt.Errorf("%s statement date: %w", name, err)
		}
		sc.Date = d
	}
	return sc, nil
}

var statementExts = map[string]bool{".pdf": true, ".txt": true}

// processedDir is the inbox subdirectory for handled statements.
const processedDir = "processed"

// Scan returns PDF and layout-text statements in dir.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !statementExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
