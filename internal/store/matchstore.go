// Package store persists the two durable tables the core never touches
// directly: historical matches and per-league calibration tables. Both
// use the same SQLite-with-WAL pattern used elsewhere in the codebase
// for small append-mostly stores.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charleschow/football-outrights/internal/core/rating"
	"github.com/charleschow/football-outrights/internal/telemetry"

	_ "modernc.org/sqlite"
)

// MatchStore persists historical matches for reuse across training
// runs, evicting the oldest rows once the table grows past maxRows.
type MatchStore struct {
	db      *sql.DB
	mu      sync.Mutex
	maxRows int
}

func OpenMatchStore(path string, maxRows int) (*MatchStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			league      TEXT NOT NULL,
			date        TEXT NOT NULL,
			home_id     TEXT NOT NULL,
			away_id     TEXT NOT NULL,
			home_goals  INTEGER NOT NULL,
			away_goals  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_league ON matches(league)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		db.Close()
		return nil, fmt.Errorf("read row count: %w", err)
	}
	telemetry.Infof("Started match store  path=%s  rows=%d", path, count)

	if maxRows <= 0 {
		maxRows = 2_000_000
	}
	return &MatchStore{db: db, maxRows: maxRows}, nil
}

// Insert appends one historical match, evicting the oldest rows if the
// table is at capacity.
func (s *MatchStore) Insert(m rating.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`INSERT INTO matches (league, date, home_id, away_id, home_goals, away_goals) VALUES (?,?,?,?,?,?)`,
		m.League, m.Date.UTC().Format(time.RFC3339), m.HomeID, m.AwayID, m.HomeGoals, m.AwayGoals,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return s.evictIfOverCapacity()
}

func (s *MatchStore) evictIfOverCapacity() error {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	if count <= int64(s.maxRows) {
		return nil
	}
	excess := count - int64(s.maxRows)
	_, err := s.db.Exec(
		`DELETE FROM matches WHERE id IN (SELECT id FROM matches ORDER BY id ASC LIMIT ?)`,
		excess,
	)
	return err
}

// ByLeague returns all matches for a league ordered by date ascending.
func (s *MatchStore) ByLeague(league string) ([]rating.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT league, date, home_id, away_id, home_goals, away_goals FROM matches WHERE league = ? ORDER BY date ASC, home_id ASC, away_id ASC`,
		league,
	)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []rating.Match
	for rows.Next() {
		var m rating.Match
		var dateStr string
		if err := rows.Scan(&m.League, &dateStr, &m.HomeID, &m.AwayID, &m.HomeGoals, &m.AwayGoals); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse match date: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *MatchStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
