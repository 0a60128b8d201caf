// Package history keeps a local record of finished games in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one finished game.
type Record struct {
	ID              string         `json:"id"`
	FinishedAt      time.Time      `json:"finishedAt"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	MinesPercentage float64        `json:"minesPercentage"`
	Seed            uint64         `json:"seed"`
	Outcome         engine.Outcome `json:"outcome"`
	Perfect         bool           `json:"perfect"`
	Tally           map[int]int    `json:"tally"`
}

// Summary aggregates every stored game.
type Summary struct {
	Played  int `json:"played"`
	Won     int `json:"won"`
	Perfect int `json:"perfect"`
}

// NewRecord builds a record from a finished session. It returns false while
// the session is still in progress.
func NewRecord(s *engine.Session, seed uint64) (Record, bool) {
	res := s.Results()
	if res == nil {
		return Record{}, false
	}
	cfg := s.Config()
	return Record{
		Width:           cfg.Width,
		Height:          cfg.Height,
		MinesPercentage: cfg.MinesPercentage,
		Seed:            seed,
		Outcome:         s.Outcome(),
		Perfect:         res.Perfect,
		Tally:           res.Tally,
	}, true
}

// Store implements results history on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" databases
	// shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema. It is safe to run repeatedly.
func (s *Store) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			finished_at TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			mines_percentage REAL NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			perfect INTEGER NOT NULL DEFAULT 0,
			tally_json TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games(finished_at DESC)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Record stores a finished game, filling in ID and FinishedAt when empty,
// and returns the stored record.
func (s *Store) Record(ctx context.Context, rec Record) (Record, error) {
	if !rec.Outcome.Terminal() {
		return Record{}, fmt.Errorf("cannot record game with outcome %s", rec.Outcome)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}
	rec.FinishedAt = rec.FinishedAt.UTC()

	tally, err := json.Marshal(rec.Tally)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode tally: %w", err)
	}

	perfect := 0
	if rec.Perfect {
		perfect = 1
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO games (
		id, finished_at, width, height, mines_percentage, seed, outcome, perfect, tally_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FinishedAt.Format(time.RFC3339Nano), rec.Width, rec.Height,
		rec.MinesPercentage, int64(rec.Seed), rec.Outcome.String(), perfect, string(tally),
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert game: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return []Record{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, finished_at, width, height, mines_percentage, seed, outcome, perfect, tally_json
		FROM games ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec        Record
			finishedAt string
			seed       int64
			outcome    string
			perfect    int
			tally      string
		)
		if err := rows.Scan(&rec.ID, &finishedAt, &rec.Width, &rec.Height,
			&rec.MinesPercentage, &seed, &outcome, &perfect, &tally); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("game %s: bad finished_at: %w", rec.ID, err)
		}
		if err := rec.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, fmt.Errorf("game %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(tally), &rec.Tally); err != nil {
			return nil, fmt.Errorf("game %s: bad tally: %w", rec.ID, err)
		}
		rec.Seed = uint64(seed)
		rec.Perfect = perfect != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary counts played, won and perfect games.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(perfect), 0)
		FROM games`, engine.Victory.String()).Scan(&sum.Played, &sum.Won, &sum.Perfect)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarise games: %w", err)
	}
	return sum, nil
}
