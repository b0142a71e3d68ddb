package testsupport

import (
	"path/filepath"
	"testing"

	"timetable/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test
// and a SQLite database inside them. The school year is pinned to 2025 so
// generation numbers are stable.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Database.DSN = filepath.Join(base, "data", "timetable.db")
	cfgVal.Ingest.SchoolYear = 2025

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithAdminName overrides the administrator account name.
func WithAdminName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ingest.AdminName = name
	}
}

// WithSchoolYear overrides the cohort reference year.
func WithSchoolYear(year int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ingest.SchoolYear = year
	}
}

// WithHeaderRows overrides how many leading rows the sheet reader skips.
func WithHeaderRows(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sheets.HeaderRows = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
