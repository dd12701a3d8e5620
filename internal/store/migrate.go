package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/mod/semver"
)

const schemaVersionKey = "schema_version"

type migration struct {
	version string
	stmts   []string
}

var migrations = []migration{
	{
		version: "v1.0.0",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS days (
				day TEXT PRIMARY KEY,
				updated_at TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS samples (
				day TEXT NOT NULL,
				metric TEXT NOT NULL,
				rating REAL NOT NULL,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (day, metric),
				FOREIGN KEY(day) REFERENCES days(day)
			);`,
		},
	},
	{
		version: "v1.1.0",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_samples_metric_day ON samples(metric, day);`,
		},
	},
}

// LatestSchemaVersion is the version Init migrates to.
func LatestSchemaVersion() string {
	latest := "v0.0.0"
	for _, m := range migrations {
		if semver.Compare(m.version, latest) > 0 {
			latest = m.version
		}
	}
	return latest
}

// Init creates the meta table and applies every migration newer than the
// recorded schema version, in semver order.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	pending := make([]migration, 0, len(migrations))
	for _, m := range migrations {
		if semver.Compare(current, m.version) < 0 {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return semver.Compare(pending[i].version, pending[j].version) < 0
	})

	for _, m := range pending {
		if err := s.apply(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) apply(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin migration %s: %w", m.version, err)
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migration %s: %w", m.version, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, schemaVersionKey, m.version); err != nil {
		return fmt.Errorf("store: record schema %s: %w", m.version, err)
	}
	return tx.Commit()
}

// SchemaVersion returns the recorded schema version, "v0.0.0" for a fresh DB.
func (s *Store) SchemaVersion(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, schemaVersionKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "v0.0.0", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: read schema version: %w", err)
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("store: invalid schema version %q", v)
	}
	return v, nil
}
