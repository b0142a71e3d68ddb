package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSheets(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("database.driver must be sqlite or pgx, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn must be set when database.driver is pgx (or export TIMETABLE_DATABASE_DSN)")
	}
	if c.Database.BusyTimeoutMS < 0 {
		return errors.New("database.busy_timeout_ms must not be negative")
	}
	return nil
}

func (c *Config) validateSheets() error {
	if c.Sheets.HeaderRows < 0 {
		return errors.New("sheets.header_rows must not be negative")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.EpochYear <= 0 {
		return errors.New("ingest.epoch_year must be positive")
	}
	if c.Ingest.SchoolYear < 0 {
		return errors.New("ingest.school_year must not be negative (0 selects the current year)")
	}
	if c.Ingest.SchoolYear > 0 && c.Ingest.SchoolYear <= c.Ingest.EpochYear {
		return errors.New("ingest.school_year must be later than ingest.epoch_year")
	}
	if c.Ingest.PeriodStartCol < 0 {
		return errors.New("ingest.period_start_col must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}

// SchoolYear returns the configured cohort reference year, defaulting to now.
func (c *Config) SchoolYear(now time.Time) int {
	if c.Ingest.SchoolYear > 0 {
		return c.Ingest.SchoolYear
	}
	return now.Year()
}
