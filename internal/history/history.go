// Package history keeps a log of finished timer sessions in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Kind is the widget that produced an entry.
type Kind string

const (
	KindCountdown Kind = "countdown"
	KindStopwatch Kind = "stopwatch"
	KindPomodoro  Kind = "pomodoro"
	KindAlarm     Kind = "alarm"
)

// Entry is one logged session.
type Entry struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	Label     string        `json:"label,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	StoppedAt time.Time     `json:"stopped_at"`
	Duration  time.Duration `json:"duration"`
	Laps      int           `json:"laps,omitempty"`
	// Completed is true when a countdown reached zero or an alarm fired.
	Completed bool `json:"completed"`
}

// Recorder accepts finished sessions.
type Recorder interface {
	Add(ctx context.Context, e *Entry) error
}

// Store is the SQLite-backed Recorder.
type Store struct {
	db *sql.DB
}

// DefaultPath is $XDG_DATA_HOME/tempo/history.db or ~/.local/share/tempo/history.db.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "tempo", "history.db"), nil
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening history: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising history: %w", err)
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		stopped_at TEXT NOT NULL,
		duration INTEGER NOT NULL,
		laps INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0
	)
	`)
	return err
}

// Add inserts e, assigning an ID if it has none.
func (s *Store) Add(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	completed := 0
	if e.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, kind, label, started_at, stopped_at, duration, laps, completed) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID,
		string(e.Kind),
		e.Label,
		e.StartedAt.UTC().Format(timeLayout),
		e.StoppedAt.UTC().Format(timeLayout),
		int64(e.Duration),
		e.Laps,
		completed,
	)
	if err != nil {
		return fmt.Errorf("recording %s session: %w", e.Kind, err)
	}
	return nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := "SELECT id, kind, label, started_at, stopped_at, duration, laps, completed FROM sessions ORDER BY stopped_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, startedAt, stoppedAt string
		var duration int64
		var completed int
		if err := rows.Scan(&e.ID, &kind, &e.Label, &startedAt, &stoppedAt, &duration, &e.Laps, &completed); err != nil {
			return nil, fmt.Errorf("listing history: %w", err)
		}
		e.Kind = Kind(kind)
		e.StartedAt, _ = time.Parse(timeLayout, startedAt)
		e.StoppedAt, _ = time.Parse(timeLayout, stoppedAt)
		e.Duration = time.Duration(duration)
		e.Completed = completed == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
