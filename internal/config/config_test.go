package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timetable/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TIMETABLE_DATABASE_DSN", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "timetable")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected driver: %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != filepath.Join(wantData, "timetable.db") {
		t.Fatalf("unexpected dsn: %q", cfg.Database.DSN)
	}
	if cfg.Ingest.EpochYear != 1983 || cfg.Ingest.PeriodStartCol != 2 {
		t.Fatalf("unexpected ingest defaults: %+v", cfg.Ingest)
	}
	if cfg.Ingest.UnknownTeacher != "Unknown" {
		t.Fatalf("unexpected placeholder teacher: %q", cfg.Ingest.UnknownTeacher)
	}
	if cfg.Sheets.HeaderRows != 1 {
		t.Fatalf("unexpected header rows: %d", cfg.Sheets.HeaderRows)
	}
	if cfg.LockPath() != filepath.Join(wantData, "ingest.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPathAndDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "timetable.toml")
	content := `
[paths]
data_dir = "` + filepath.ToSlash(filepath.Join(tempDir, "data")) + `"

[database]
driver = "postgres"

[sheets]
lecture_sheet = " 강의실 "
null_tokens = ["nan", " nan ", ""]

[ingest]
school_year = 2025
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	dsn := "postgres://timetable@localhost/timetable"
	if err := os.WriteFile(filepath.Join(tempDir, ".env"), []byte("TIMETABLE_DATABASE_DSN="+dsn+"\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("TIMETABLE_DATABASE_DSN") })

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Database.Driver != "pgx" {
		t.Fatalf("expected postgres alias to normalize to pgx, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != dsn {
		t.Fatalf("expected dsn from .env, got %q", cfg.Database.DSN)
	}
	if cfg.Sheets.LectureSheet != "강의실" {
		t.Fatalf("expected trimmed sheet name, got %q", cfg.Sheets.LectureSheet)
	}
	if len(cfg.Sheets.NullTokens) != 1 || cfg.Sheets.NullTokens[0] != "nan" {
		t.Fatalf("expected deduplicated null tokens, got %v", cfg.Sheets.NullTokens)
	}
	if got := cfg.SchoolYear(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)); got != 2025 {
		t.Fatalf("expected configured school year, got %d", got)
	}
	if cfg.Paths.LogDir != filepath.Join(tempDir, "data", "logs") {
		t.Fatalf("expected log dir under data dir, got %q", cfg.Paths.LogDir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "timetable.toml")
	if err := os.WriteFile(configPath, []byte("[ingest]\nepoch = 1983\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"driver", func(c *config.Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"pgx dsn", func(c *config.Config) { c.Database.Driver = "pgx"; c.Database.DSN = "" }, "database.dsn"},
		{"epoch", func(c *config.Config) { c.Ingest.EpochYear = 0 }, "ingest.epoch_year"},
		{"school year", func(c *config.Config) { c.Ingest.SchoolYear = 1980 }, "ingest.school_year"},
		{"header rows", func(c *config.Config) { c.Sheets.HeaderRows = -1 }, "sheets.header_rows"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Database.DSN = "file.db"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err)
			}
		})
	}
}

func TestSchoolYearDefaultsToNow(t *testing.T) {
	cfg := config.Default()
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := cfg.SchoolYear(now); got != 2026 {
		t.Fatalf("expected current year, got %d", got)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Ingest.AdminName != "administrator" {
		t.Fatalf("unexpected admin name: %q", cfg.Ingest.AdminName)
	}
}
