package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	c.normalizeSheets()
	c.normalizeIngest()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatabase() error {
	if value, ok := os.LookupEnv("TIMETABLE_DATABASE_DRIVER"); ok && strings.TrimSpace(value) != "" {
		c.Database.Driver = value
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "":
		c.Database.Driver = defaultDriver
	case "sqlite3":
		c.Database.Driver = "sqlite"
	case "postgres", "postgresql":
		c.Database.Driver = "pgx"
	}

	if c.Database.DSN == "" {
		if value, ok := os.LookupEnv("TIMETABLE_DATABASE_DSN"); ok {
			c.Database.DSN = value
		}
	}
	c.Database.DSN = strings.TrimSpace(c.Database.DSN)
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = filepath.Join(c.Paths.DataDir, defaultDatabaseFile)
	}
	if c.Database.Driver == "sqlite" && !strings.HasPrefix(c.Database.DSN, "file:") {
		expanded, err := expandPath(c.Database.DSN)
		if err != nil {
			return fmt.Errorf("database.dsn: %w", err)
		}
		c.Database.DSN = expanded
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaultBusyTimeoutMS
	}
	return nil
}

func (c *Config) normalizeSheets() {
	c.Sheets.EnrollmentSheet = strings.TrimSpace(c.Sheets.EnrollmentSheet)
	c.Sheets.LectureSheet = strings.TrimSpace(c.Sheets.LectureSheet)
	c.Sheets.PeriodSheet = strings.TrimSpace(c.Sheets.PeriodSheet)
	if c.Sheets.NullTokens == nil {
		c.Sheets.NullTokens = append([]string(nil), defaultNullTokens...)
		return
	}
	tokens := make([]string, 0, len(c.Sheets.NullTokens))
	seen := make(map[string]struct{}, len(c.Sheets.NullTokens))
	for _, token := range c.Sheets.NullTokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	c.Sheets.NullTokens = tokens
}

func (c *Config) normalizeIngest() {
	c.Ingest.UnknownTeacher = strings.TrimSpace(c.Ingest.UnknownTeacher)
	if c.Ingest.UnknownTeacher == "" {
		c.Ingest.UnknownTeacher = defaultUnknownTeacher
	}
	c.Ingest.AdminName = strings.TrimSpace(c.Ingest.AdminName)
	if c.Ingest.AdminName == "" {
		c.Ingest.AdminName = defaultAdminName
	}
	c.Ingest.LockFile = strings.TrimSpace(c.Ingest.LockFile)
	if c.Ingest.LockFile == "" {
		c.Ingest.LockFile = defaultLockFile
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
