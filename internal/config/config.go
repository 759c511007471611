package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "hkstmt.yaml"

// DefaultCurrency is used for institutions without a configured currency.
const DefaultCurrency = "HKD"

// Config represents the top-level hkstmt.yaml configuration.
type Config struct {
	Converter    ConverterConfig              `yaml:"converter"`
	Output       OutputConfig                 `yaml:"output"`
	Archive      ArchiveConfig                `yaml:"archive"`
	Institutions map[string]InstitutionConfig `yaml:"institutions,omitempty"`
	Workers      int                          `yaml:"workers"`
}

// ConverterConfig locates the pdftotext binary.
type ConverterConfig struct {
	Path    string        `yaml:"path,omitempty"` // empty: search PATH
	Timeout time.Duration `yaml:"timeout"`
}

// OutputConfig controls where and how transactions are exported.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Format    string `yaml:"format"` // csv or beancount
}

// ArchiveConfig controls the file command.
type ArchiveConfig struct {
	Directory string    `yaml:"directory"`
	Git       GitConfig `yaml:"git"`
}

// GitConfig controls committing the archive after filing.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// InstitutionConfig holds per-institution ledger settings.
type InstitutionConfig struct {
	Account       string   `yaml:"account"`
	Currency      string   `yaml:"currency"`
	Format        string   `yaml:"format,omitempty"`         // column widths, e.g. "6s9s102s33s"
	CreditMarkers []string `yaml:"credit_markers,omitempty"` // trailing-sign statements only
}

// Load reads a hkstmt.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with an entry for every built-in institution.
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{
			Timeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Directory: ".",
			Format:    "csv",
		},
		Archive: ArchiveConfig{
			Directory: "archive",
			Git: GitConfig{
				AuthorName:  "hkstmt",
				AuthorEmail: "hkstmt@localhost",
			},
		},
		Institutions: map[string]InstitutionConfig{
			"hangseng-savings": {Account: "Assets:HK:HangSeng:Savings", Currency: DefaultCurrency},
			"dbs-card":         {Account: "Liabilities:HK:DBS", Currency: DefaultCurrency},
			"hangseng-mpower":  {Account: "Liabilities:HK:HangSeng:MPower", Currency: DefaultCurrency},
		},
		Workers: 4,
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Output.Format) {
	case "csv", "beancount":
	default:
		errs = append(errs, fmt.Errorf("output.format %q: want csv or beancount", c.Output.Format))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Converter.Timeout < 0 {
		errs = append(errs, fmt.Errorf("converter.timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Institution returns the settings for name with the currency defaulted.
func (c *Config) Institution(name string) InstitutionConfig {
	inst := c.Institutions[strings.ToLower(name)]
	if inst.Currency == "" {
		inst.Currency = DefaultCurrency
	}
	return inst
}
