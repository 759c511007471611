package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Converter.Path = "/opt/poppler/bin/pdftotext"
	cfg.Output.Format = "beancount"
	cfg.Institutions["dbs-card"] = InstitutionConfig{
		Account:  "Liabilities:HK:DBS:Black",
		Currency: "HKD",
		Format:   "6s9s100s35s",
	}
	cfg.Institutions["hangseng-mpower"] = InstitutionConfig{
		Account:       "Liabilities:HK:HangSeng:MPower",
		Currency:      "HKD",
		CreditMarkers: []string{"-", "CR"},
	}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Converter, got.Converter)
	assert.Equal(t, cfg.Output, got.Output)
	assert.Equal(t, cfg.Archive, got.Archive)
	assert.Equal(t, cfg.Workers, got.Workers)
	assert.Equal(t, "6s9s100s35s", got.Institutions["dbs-card"].Format)
	assert.Equal(t, []string{"-", "CR"}, got.Institutions["hangseng-mpower"].CreditMarkers)
	assert.Len(t, got.Institutions, 3)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 30*time.Second, cfg.Converter.Timeout)
	assert.Empty(t, cfg.Converter.Path)
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "archive", cfg.Archive.Directory)
	assert.False(t, cfg.Archive.Git.AutoCommit)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "Liabilities:HK:DBS", cfg.Institutions["dbs-card"].Account)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("converter:\n  timeout: 5s\nworkers: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Converter.Timeout)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "Liabilities:HK:DBS", cfg.Institution("dbs-card").Account)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: qif\nworkers: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `output.format "qif"`)
	assert.Contains(t, err.Error(), "workers must be at least 1")

	require.NoError(t, os.WriteFile(path, []byte("workers: [\n"), 0o644))
	_, err = LoadOrDefault(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestInstitution_DefaultCurrency(t *testing.T) {
	cfg := Default()
	cfg.Institutions["dbs-card"] = InstitutionConfig{Account: "Liabilities:DBS"}

	assert.Equal(t, "HKD", cfg.Institution("DBS-Card").Currency)
	assert.Equal(t, "HKD", cfg.Institution("unknown").Currency)
	assert.Empty(t, cfg.Institution("unknown").Account)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "timeout: 30s")
	assert.Contains(t, contents, "format: csv")
	assert.Contains(t, contents, "dbs-card:")
	assert.Contains(t, contents, "account: Liabilities:HK:DBS")
	assert.Contains(t, contents, "auto_commit: false")
	assert.NotContains(t, contents, "credit_markers")
}
