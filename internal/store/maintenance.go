package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var expectedTables = []string{
	"schema_migrations",
	"user_infos",
	"subjects",
	"lectures",
	"classes",
	"periods",
	"enrollments",
	"identify_tokens",
}

// Stats returns row counts per entity kind, students and teachers counted by
// role.
func (s *Store) Stats(ctx context.Context) ([]TableCount, error) {
	queries := []struct {
		name  string
		query string
		args  []any
	}{
		{"students", "SELECT COUNT(1) FROM user_infos WHERE (role & ?) <> 0", []any{int(RoleStudent)}},
		{"teachers", "SELECT COUNT(1) FROM user_infos WHERE (role & ?) <> 0", []any{int(RoleTeacher)}},
		{"subjects", "SELECT COUNT(1) FROM subjects", nil},
		{"lectures", "SELECT COUNT(1) FROM lectures", nil},
		{"classes", "SELECT COUNT(1) FROM classes", nil},
		{"periods", "SELECT COUNT(1) FROM periods", nil},
		{"enrollments", "SELECT COUNT(1) FROM enrollments", nil},
		{"identify_tokens", "SELECT COUNT(1) FROM identify_tokens", nil},
	}
	counts := make([]TableCount, 0, len(queries))
	for _, q := range queries {
		var n int
		if err := s.db.GetContext(ctx, &n, s.db.Rebind(q.query), q.args...); err != nil {
			return nil, fmt.Errorf("count %s: %w", q.name, err)
		}
		counts = append(counts, TableCount{Name: q.name, Rows: n})
	}
	return counts, nil
}

// Tokens lists identify tokens with their owners, optionally filtered by
// owner name. Administrators sort first.
func (s *Store) Tokens(ctx context.Context, name string) ([]IdentifyToken, error) {
	query := `
		SELECT t.token, t.user_info_id, u.name, u.role
		FROM identify_tokens t
		JOIN user_infos u ON u.user_info_id = t.user_info_id`
	var args []any
	if name = strings.TrimSpace(name); name != "" {
		query += " WHERE u.name = ?"
		args = append(args, name)
	}
	query += " ORDER BY u.role DESC, u.name, t.token"

	var tokens []IdentifyToken
	if err := s.db.SelectContext(ctx, &tokens, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list identify tokens: %w", err)
	}
	return tokens, nil
}

// CheckHealth returns diagnostic information about the database.
func (s *Store) CheckHealth(ctx context.Context) (Health, error) {
	health := Health{
		Driver:        s.driver,
		Location:      s.Location(),
		SchemaVersion: latestMigration(),
	}

	if s.path != "" {
		info, err := os.Stat(s.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return health, nil
			}
			return health, fmt.Errorf("stat database: %w", err)
		}
		if info.IsDir() {
			return health, fmt.Errorf("database path %q is a directory", s.path)
		}
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping database: %w", err)
	}
	health.DatabaseReadable = true

	present, err := s.tableNames(connCtx)
	if err != nil {
		health.Error = err.Error()
		return health, err
	}
	for _, table := range expectedTables {
		if _, ok := present[table]; ok {
			health.TablesPresent = append(health.TablesPresent, table)
		} else {
			health.MissingTables = append(health.MissingTables, table)
		}
	}

	if s.driver != DriverSQLite {
		health.IntegrityCheck = true
		return health, nil
	}
	var integrityResult string
	if err := s.db.GetContext(connCtx, &integrityResult, "PRAGMA integrity_check"); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")
	return health, nil
}

func (s *Store) tableNames(ctx context.Context) (map[string]struct{}, error) {
	query := "SELECT name FROM sqlite_master WHERE type = 'table'"
	if s.driver == DriverPostgres {
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema()"
	}
	var names []string
	if err := s.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out, nil
}
