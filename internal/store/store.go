package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/core"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no record exists for the requested day.
var ErrNotFound = errors.New("store: day not found")

// Store persists daily rating records in SQLite. A day is identified by its
// date key; writing a day replaces everything previously stored for it.
type Store struct {
	db  *sql.DB
	now func() time.Time
	loc *time.Location
}

func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating DB dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening DB: %w", err)
	}
	if err := configureSQLiteConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: configure DB: %w", err)
	}

	store := NewStore(db)
	if err := store.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now, loc: time.Local}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores sample as the complete record for its day.
func (s *Store) Put(ctx context.Context, sample core.RawSample) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.putTx(ctx, tx, sample); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// Import writes samples in one transaction. Later samples for the same day
// replace earlier ones.
func (s *Store) Import(ctx context.Context, samples []core.RawSample) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, sample := range samples {
		if err := s.putTx(ctx, tx, sample); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return len(samples), nil
}

func (s *Store) putTx(ctx context.Context, tx *sql.Tx, sample core.RawSample) error {
	day := core.DateKey(sample.Date)
	for metric, v := range sample.Ratings {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("store: %s rating for %s is not a finite number", metric, day)
		}
		if strings.TrimSpace(string(metric)) == "" {
			return fmt.Errorf("store: empty metric name for %s", day)
		}
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx, `DELETE FROM samples WHERE day = ?`, day); err != nil {
		return fmt.Errorf("store: clear day %s: %w", day, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO days (day, updated_at) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET updated_at = excluded.updated_at
	`, day, now); err != nil {
		return fmt.Errorf("store: upsert day %s: %w", day, err)
	}
	for _, metric := range sample.Metrics() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO samples (day, metric, rating, recorded_at) VALUES (?, ?, ?, ?)`,
			day, string(metric), sample.Ratings[metric], now,
		); err != nil {
			return fmt.Errorf("store: insert %s for %s: %w", metric, day, err)
		}
	}
	return nil
}

// Get returns the record stored for day, or ErrNotFound.
func (s *Store) Get(ctx context.Context, day time.Time) (core.RawSample, error) {
	key := core.DateKey(day)
	samples, err := s.query(ctx, `
		SELECT d.day, s.metric, s.rating
		FROM days d LEFT JOIN samples s ON s.day = d.day
		WHERE d.day = ?
	`, key)
	if err != nil {
		return core.RawSample{}, err
	}
	sample, ok := samples[key]
	if !ok {
		return core.RawSample{}, ErrNotFound
	}
	return sample, nil
}

// Delete removes day entirely. Deleting an absent day is not an error.
func (s *Store) Delete(ctx context.Context, day time.Time) error {
	key := core.DateKey(day)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM samples WHERE day = ?`, key); err != nil {
		return fmt.Errorf("store: delete samples %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM days WHERE day = ?`, key); err != nil {
		return fmt.Errorf("store: delete day %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// LoadRange returns the records for every stored day in [from, to].
func (s *Store) LoadRange(ctx context.Context, from, to time.Time) (map[string]core.RawSample, error) {
	return s.query(ctx, `
		SELECT d.day, s.metric, s.rating
		FROM days d LEFT JOIN samples s ON s.day = d.day
		WHERE d.day BETWEEN ? AND ?
		ORDER BY d.day
	`, core.DateKey(from), core.DateKey(to))
}

// LoadWindow returns the records for the days-long window ending on today.
func (s *Store) LoadWindow(ctx context.Context, today time.Time, days int) (map[string]core.RawSample, error) {
	if days <= 0 {
		return map[string]core.RawSample{}, nil
	}
	return s.LoadRange(ctx, core.AddDays(today, -(days-1)), today)
}

// LoadAll returns every stored record.
func (s *Store) LoadAll(ctx context.Context) (map[string]core.RawSample, error) {
	return s.query(ctx, `
		SELECT d.day, s.metric, s.rating
		FROM days d LEFT JOIN samples s ON s.day = d.day
		ORDER BY d.day
	`)
}

type StoreStats struct {
	Days    int64
	Ratings int64
	First   string
	Last    string
}

func (s *Store) Stats(ctx context.Context) (StoreStats, error) {
	if s == nil || s.db == nil {
		return StoreStats{}, fmt.Errorf("store: not initialized")
	}
	var stats StoreStats
	var first, last sql.NullString
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), MIN(day), MAX(day) FROM days`).Scan(&stats.Days, &first, &last); err != nil {
		return StoreStats{}, fmt.Errorf("store: count days: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&stats.Ratings); err != nil {
		return StoreStats{}, fmt.Errorf("store: count samples: %w", err)
	}
	stats.First, stats.Last = first.String, last.String
	return stats, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) (map[string]core.RawSample, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query samples: %w", err)
	}
	defer rows.Close()

	out := make(map[string]core.RawSample)
	for rows.Next() {
		var (
			day    string
			metric sql.NullString
			rating sql.NullFloat64
		)
		if err := rows.Scan(&day, &metric, &rating); err != nil {
			return nil, fmt.Errorf("store: scan sample: %w", err)
		}
		sample, ok := out[day]
		if !ok {
			date, err := core.ParseDateKey(day, s.loc)
			if err != nil {
				return nil, fmt.Errorf("store: bad day key %q: %w", day, err)
			}
			sample = core.RawSample{Date: date, Ratings: map[core.MetricName]float64{}}
		}
		if metric.Valid && rating.Valid {
			sample.Ratings[core.MetricName(metric.String)] = rating.Float64
		}
		out[day] = sample
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate samples: %w", err)
	}
	return out, nil
}
