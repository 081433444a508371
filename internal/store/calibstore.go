package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charleschow/football-outrights/internal/core/rating"
)

// CalibrationStore persists one CalibrationTable per (league, season),
// table-per-concern in whichever SQLite database the caller opens,
// each isotonic map's points serialized as JSON since the curve
// shape varies in length.
type CalibrationStore struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenCalibrationStore(db *sql.DB) (*CalibrationStore, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS calibration_tables (
		league     TEXT NOT NULL,
		season     TEXT NOT NULL,
		sample     INTEGER NOT NULL,
		home_x     TEXT NOT NULL,
		home_y     TEXT NOT NULL,
		draw_x     TEXT NOT NULL,
		draw_y     TEXT NOT NULL,
		away_x     TEXT NOT NULL,
		away_y     TEXT NOT NULL,
		PRIMARY KEY (league, season)
	)`); err != nil {
		return nil, fmt.Errorf("init calibration schema: %w", err)
	}
	return &CalibrationStore{db: db}, nil
}

// Put upserts the calibration table for a league+season.
func (s *CalibrationStore) Put(league, season string, table rating.CalibrationTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	homeX, homeY := table.Home.Points()
	drawX, drawY := table.Draw.Points()
	awayX, awayY := table.Away.Points()

	marshaled, err := marshalAll(homeX, homeY, drawX, drawY, awayX, awayY)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO calibration_tables (league, season, sample, home_x, home_y, draw_x, draw_y, away_x, away_y)
		 VALUES (?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(league, season) DO UPDATE SET
			sample=excluded.sample, home_x=excluded.home_x, home_y=excluded.home_y,
			draw_x=excluded.draw_x, draw_y=excluded.draw_y, away_x=excluded.away_x, away_y=excluded.away_y`,
		league, season, table.Sample,
		marshaled[0], marshaled[1], marshaled[2], marshaled[3], marshaled[4], marshaled[5],
	)
	return err
}

// Get returns the calibration table for a league+season, or nil if
// none has been fit yet — the C4 contract's "no table, pass through"
// rule.
func (s *CalibrationStore) Get(league, season string) (*rating.CalibrationTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sample int
	var homeXJSON, homeYJSON, drawXJSON, drawYJSON, awayXJSON, awayYJSON string
	err := s.db.QueryRow(
		`SELECT sample, home_x, home_y, draw_x, draw_y, away_x, away_y FROM calibration_tables WHERE league=? AND season=?`,
		league, season,
	).Scan(&sample, &homeXJSON, &homeYJSON, &drawXJSON, &drawYJSON, &awayXJSON, &awayYJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query calibration table: %w", err)
	}

	homeX, homeY, err := unmarshalPair(homeXJSON, homeYJSON)
	if err != nil {
		return nil, err
	}
	drawX, drawY, err := unmarshalPair(drawXJSON, drawYJSON)
	if err != nil {
		return nil, err
	}
	awayX, awayY, err := unmarshalPair(awayXJSON, awayYJSON)
	if err != nil {
		return nil, err
	}

	table := rating.NewCalibrationTable(
		league,
		rating.NewIsotonicMap(homeX, homeY),
		rating.NewIsotonicMap(drawX, drawY),
		rating.NewIsotonicMap(awayX, awayY),
		sample,
	)
	return &table, nil
}

func marshalAll(series ...[]float64) ([]string, error) {
	out := make([]string, len(series))
	for i, s := range series {
		b, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("marshal calibration series: %w", err)
		}
		out[i] = string(b)
	}
	return out, nil
}

func unmarshalPair(xJSON, yJSON string) ([]float64, []float64, error) {
	var x, y []float64
	if err := json.Unmarshal([]byte(xJSON), &x); err != nil {
		return nil, nil, fmt.Errorf("unmarshal calibration x: %w", err)
	}
	if err := json.Unmarshal([]byte(yJSON), &y); err != nil {
		return nil, nil, fmt.Errorf("unmarshal calibration y: %w", err)
	}
	return x, y, nil
}
