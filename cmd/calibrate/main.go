// Command calibrate runs C2 (fit) followed by C4 (holdout validation
// and per-league isotonic calibration) over a historical match CSV,
// printing the resulting metrics and persisting the fitted calibration
// tables to the calibration store.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/charleschow/football-outrights/internal/config"
	"github.com/charleschow/football-outrights/internal/core/rating"
	"github.com/charleschow/football-outrights/internal/store"
	"github.com/charleschow/football-outrights/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	matchesPath := flag.String("matches", "", "CSV of historical matches: date,league,home,away,home_goals,away_goals")
	season := flag.String("season", "current", "season label the resulting calibration tables are stored under")
	flag.Parse()

	if *matchesPath == "" {
		telemetry.Errorf("usage: calibrate -matches=FILE [-season=LABEL]")
		os.Exit(1)
	}

	matches, err := loadMatches(*matchesPath)
	if err != nil {
		telemetry.Errorf("load matches: %v", err)
		os.Exit(1)
	}
	telemetry.Infof("loaded %d matches across %d leagues", len(matches), countLeagues(matches))

	byLeague := map[string][]rating.Match{}
	for _, m := range matches {
		byLeague[m.League] = append(byLeague[m.League], m)
	}

	ratingCfg := rating.Config{
		XiDecayRate:             cfg.XiDecayRate,
		InitialHomeAdvantage:    cfg.InitialHomeAdvantage,
		InitialRho:              cfg.InitialRho,
		MaxIterations:           cfg.MaxIterations,
		ConvergenceTolerance:    cfg.ConvergenceTolerance,
		TestSplitFraction:       cfg.TestSplitFraction,
		HomeGoalsZeroStabilizer: cfg.HomeGoalsZeroStabilizer,
		HomeAdvantageMin:        cfg.HomeAdvantageMin,
		HomeAdvantageMax:        cfg.HomeAdvantageMax,
		RhoMin:                  cfg.RhoMin,
		RhoMax:                  cfg.RhoMax,
	}
	opt := rating.NewGoldenSectionOptimizer()

	db, err := sql.Open("sqlite", cfg.CalibrationStoreDBPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		telemetry.Errorf("open calibration db: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	calibStore, err := store.OpenCalibrationStore(db)
	if err != nil {
		telemetry.Errorf("open calibration store: %v", err)
		os.Exit(1)
	}

	for league, leagueMatches := range byLeague {
		telemetry.Infof("fitting %s (%d matches)", league, len(leagueMatches))

		artifact, metrics, warnings, err := rating.Fit(context.Background(), leagueMatches, ratingCfg, opt, nil)
		if err != nil {
			telemetry.Warnf("%s: fit failed, skipping calibration: %v", league, err)
			continue
		}
		for _, w := range warnings {
			telemetry.Warnf("%s: fit warning: %s: %s", league, w.Kind, w.Detail)
		}
		telemetry.Infof("%s: holdout brier=%.4f log_loss=%.4f accuracy=%.3f draw_accuracy=%.3f goals_rmse=%.3f (n=%d)",
			league, metrics.Brier, metrics.LogLoss, metrics.Accuracy, metrics.DrawAccuracy, metrics.GoalsRMSE, metrics.HoldoutSize)

		holdout := holdoutTail(leagueMatches, ratingCfg.TestSplitFraction)
		if len(holdout) < cfg.MinCalibrationSample {
			telemetry.Warnf("%s: holdout sample %d below minimum %d, no calibration table stored", league, len(holdout), cfg.MinCalibrationSample)
			continue
		}

		tables := rating.FitCalibration(artifact, holdout, cfg.MinCalibrationSample)
		table, ok := tables[league]
		if !ok {
			telemetry.Warnf("%s: no calibration table produced", league)
			continue
		}
		if err := calibStore.Put(league, *season, table); err != nil {
			telemetry.Errorf("%s: persist calibration table: %v", league, err)
			continue
		}
		telemetry.Infof("%s: stored calibration table (sample=%d, season=%s)", league, table.Sample, *season)
	}
}

// holdoutTail mirrors C2's own sort-then-split so the calibration
// sample matches exactly what Fit validated against.
func holdoutTail(matches []rating.Match, testFraction float64) []rating.Match {
	sorted := make([]rating.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.HomeID != b.HomeID {
			return a.HomeID < b.HomeID
		}
		return a.AwayID < b.AwayID
	})
	n := len(sorted)
	splitIdx := n
	if testFraction > 0 && testFraction < 1 {
		splitIdx = n - int(float64(n)*testFraction)
	}
	if splitIdx == 0 {
		return nil
	}
	return sorted[splitIdx:]
}

func countLeagues(matches []rating.Match) int {
	seen := map[string]bool{}
	for _, m := range matches {
		seen[m.League] = true
	}
	return len(seen)
}

func loadMatches(path string) ([]rating.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty matches file")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}

	var out []rating.Match
	for _, row := range rows[1:] {
		date, err := time.Parse("2006-01-02", cell(row, idx, "date"))
		if err != nil {
			continue
		}
		hg, err1 := strconv.Atoi(cell(row, idx, "home_goals"))
		ag, err2 := strconv.Atoi(cell(row, idx, "away_goals"))
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, rating.Match{
			League:    cell(row, idx, "league"),
			Date:      date,
			HomeID:    cell(row, idx, "home"),
			AwayID:    cell(row, idx, "away"),
			HomeGoals: hg,
			AwayGoals: ag,
		})
	}
	return out, nil
}

func readAll(r *csv.Reader) ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
