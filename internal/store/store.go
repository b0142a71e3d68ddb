package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"timetable/internal/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Store persists ingested entities in SQLite (default) or PostgreSQL.
type Store struct {
	db     *sqlx.DB
	driver string
	// path is the SQLite database file; empty for PostgreSQL.
	path string
}

// Open connects to the configured database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	var (
		dsn  string
		path string
	)
	switch cfg.Database.Driver {
	case DriverSQLite:
		path = sqlitePath(cfg.Database.DSN)
		dsn = sqliteDSN(cfg.Database.DSN, cfg.Database.BusyTimeoutMS)
	case DriverPostgres:
		dsn = cfg.Database.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := sqlx.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", cfg.Database.Driver, err)
	}

	store := &Store{db: db, driver: cfg.Database.Driver, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// sqliteDSN turns a file path into a modernc DSN carrying the connection
// pragmas, so every pooled connection gets them.
func sqliteDSN(dsn string, busyTimeoutMS int) string {
	if strings.HasPrefix(dsn, "file:") {
		return dsn
	}
	pragmas := url.Values{}
	pragmas.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	pragmas.Add("_pragma", "journal_mode(WAL)")
	pragmas.Add("_pragma", "foreign_keys(1)")
	return "file:" + dsn + "?" + pragmas.Encode()
}

func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	return path
}

// Driver returns the database/sql driver name in use.
func (s *Store) Driver() string { return s.driver }

// Location describes where the data lives without exposing credentials.
func (s *Store) Location() string {
	if s.path != "" {
		return s.path
	}
	return s.driver
}

// WithTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) error {
	ctx = ensureContext(ctx)
	var tx *sqlx.Tx
	if err := retryOnBusy(ctx, func() error {
		var beginErr error
		tx, beginErr = s.db.BeginTxx(ctx, nil)
		return beginErr
	}); err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
