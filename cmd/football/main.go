// Command football is the CLI entry point wiring the three core calls
// (Fit, Predict, GenerateBundle) end to end: load historical matches and
// an upcoming slate from CSV, fit ratings, score each fixture, adjust
// and generate a ticket bundle, and print both to stdout. Data
// ingestion, persistence schema, and any HTTP surface are deliberately
// out of scope (spec.md §1) — this is the thin glue the core needs to
// run from a terminal.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charleschow/football-outrights/internal/config"
	"github.com/charleschow/football-outrights/internal/core/correlation"
	"github.com/charleschow/football-outrights/internal/core/drawadjust"
	"github.com/charleschow/football-outrights/internal/core/kernel"
	"github.com/charleschow/football-outrights/internal/core/rating"
	"github.com/charleschow/football-outrights/internal/core/ticket"
	"github.com/charleschow/football-outrights/internal/report"
	"github.com/charleschow/football-outrights/internal/teamresolver"
	"github.com/charleschow/football-outrights/internal/telemetry"
	"github.com/charleschow/football-outrights/internal/training"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	matchesPath := flag.String("matches", "", "CSV of historical matches: date,league,home,away,home_goals,away_goals")
	fixturesPath := flag.String("fixtures", "", "CSV of upcoming fixtures: league,home,away[,open_home,open_draw,open_away,close_home,close_draw,close_away]")
	league := flag.String("league", "", "league code to fit and predict for")
	numTickets := flag.Int("n", 10, "number of tickets to generate")
	roleNames := flag.String("roles", "A,B,C,D,E,F,G", "comma-separated role letters to cycle through ticket slots")
	rolePath := flag.String("role-config", "", "optional YAML file overriding the default role set")
	seed := flag.Int64("seed", 1, "pseudo-random seed for deterministic ticket generation")
	flag.Parse()

	if *matchesPath == "" || *fixturesPath == "" || *league == "" {
		telemetry.Errorf("usage: football -matches=FILE -fixtures=FILE -league=CODE")
		os.Exit(1)
	}

	telemetry.Infof("Starting football engine for league %s", *league)

	matches, err := loadMatches(*matchesPath, *league)
	if err != nil {
		telemetry.Errorf("load matches: %v", err)
		os.Exit(1)
	}
	telemetry.Metrics.MatchesLoaded.Add(int64(len(matches)))

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

	pub := rating.NewPublisher()
	job := training.NewJob("", *league, ratingCfg, rating.NewGoldenSectionOptimizer(), pub, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	artifact, metrics, warnings, err := job.Run(ctx, matches)
	if err != nil {
		telemetry.Errorf("fit: %v", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		telemetry.Warnf("fit warning: %s: %s", w.Kind, w.Detail)
	}
	telemetry.Infof("Fit complete: %d teams, home_adv=%.3f rho=%.3f holdout_brier=%.4f accuracy=%.3f",
		len(artifact.Teams), artifact.HomeAdvantage, artifact.Rho, metrics.Brier, metrics.Accuracy)

	fixtures, err := loadFixtures(*fixturesPath, *league)
	if err != nil {
		telemetry.Errorf("load fixtures: %v", err)
		os.Exit(1)
	}

	roles, err := config.LoadRoleSet(*rolePath)
	if err != nil {
		telemetry.Errorf("load role set: %v", err)
		os.Exit(1)
	}

	resolveFixtureTeams(fixtures, artifact, *league, cfg.TeamResolveThreshold)

	lines, views, shocks := scoreSlate(artifact, fixtures, cfg)

	weightsFor := func(string) correlation.Weights { return correlation.DefaultWeights() }
	signals := make([]correlation.FixtureSignal, len(lines))
	for i, l := range lines {
		signals[i] = correlation.FixtureSignal{
			League:      *league,
			KickoffDay:  0,
			KickoffHour: 12,
			LambdaTotal: l.Dist.LamHome + l.Dist.LamAway,
			DrawSignal:  l.Dist.PDraw,
		}
	}
	corrMatrix := correlation.Build(signals, weightsFor)

	registry := ticket.NewRoleRegistry()
	for name, spec := range roles {
		registry.Register(ticket.Role{
			Name: name, MinDraws: spec.MinDraws, MaxDraws: spec.MaxDraws,
			MaxFavorites: spec.MaxFavorites, MinUnderdogs: spec.MinUnderdogs,
			EntropyBandLow: spec.EntropyBand[0], EntropyBandHigh: spec.EntropyBand[1],
			HedgeShocks: spec.HedgeShocks,
		})
	}

	gen := ticket.NewGenerator(rand.New(rand.NewSource(*seed)))
	gen.Roles = registry
	bundle := gen.GenerateBundle(views, &corrMatrix, shocks, strings.Split(*roleNames, ","), *numTickets, *league)
	if bundle.Underpopulated {
		telemetry.Warnf("bundle underpopulated: %d/%d tickets accepted", bundle.AcceptedCount, bundle.RequestedCount)
	}
	telemetry.Metrics.BundlesGenerated.Inc()
	telemetry.Metrics.TicketsAccepted.Add(int64(bundle.AcceptedCount))

	report.Distributions(os.Stdout, lines)
	report.Bundle(os.Stdout, lines, bundle)
}

// resolveFixtureTeams canonicalizes fixture team names against the
// roster the rating fit actually knows about (spec.md §6's team name
// resolver collaborator), so a fixtures file that spells a team
// slightly differently from the historical matches file ("Man Utd" vs
// "Manchester United") still lands on the fitted strengths instead of
// silently falling through Predict's uncalibrated-team default. A
// fixture whose raw name doesn't resolve is left untouched and logged.
func resolveFixtureTeams(fixtures []fixtureRow, artifact *rating.FitArtifact, league string, threshold float64) {
	roster := make([]teamresolver.Team, 0, len(artifact.Teams))
	for name := range artifact.Teams {
		roster = append(roster, teamresolver.Team{ID: name, LeagueID: league, Canonical: name})
	}
	resolver := teamresolver.NewResolver(roster, threshold)

	for i := range fixtures {
		if t, ok := resolver.Resolve(fixtures[i].home, league); ok {
			fixtures[i].home = t.Canonical
		} else {
			telemetry.Warnf("team resolver: no match for home team %q in league %s", fixtures[i].home, league)
		}
		if t, ok := resolver.Resolve(fixtures[i].away, league); ok {
			fixtures[i].away = t.Canonical
		} else {
			telemetry.Warnf("team resolver: no match for away team %q in league %s", fixtures[i].away, league)
		}
	}
}

type fixtureRow struct {
	league                 string
	home, away             string
	openH, openD, openA    float64
	closeH, closeD, closeA float64
	hasOdds                bool
}

// scoreSlate runs C1 (+ neutral C3, since no structural-component
// providers are wired by default) for every fixture, then C5's
// late-shock detector where odds are present, preserving fixture
// order throughout per spec.md §5.
func scoreSlate(artifact *rating.FitArtifact, fixtures []fixtureRow, cfg *config.Config) ([]report.FixtureLine, []ticket.FixtureView, []correlation.LateShock) {
	lines := make([]report.FixtureLine, len(fixtures))
	views := make([]ticket.FixtureView, len(fixtures))
	shocks := make([]correlation.LateShock, len(fixtures))

	for i, fx := range fixtures {
		dist, err := rating.Predict(artifact, fx.home, fx.away, cfg.ScoreGridMaxK)
		if err != nil {
			telemetry.Warnf("predict %s vs %s: %v", fx.home, fx.away, err)
			dist = kernel.Distribution{PHome: 1.0 / 3, PDraw: 1.0 / 3, PAway: 1.0 / 3}
		}

		adjusted, err := drawadjust.Adjust(dist, drawadjust.Neutral())
		if err != nil {
			telemetry.Warnf("adjust %s vs %s: %v", fx.home, fx.away, err)
			adjusted = dist
		}

		label := fmt.Sprintf("%s vs %s", fx.home, fx.away)
		lines[i] = report.FixtureLine{Label: label, Dist: adjusted}
		views[i] = ticket.FixtureView{
			FixtureID:  label,
			LambdaHome: adjusted.LamHome,
			LambdaAway: adjusted.LamAway,
			PHome:      adjusted.PHome,
			PDraw:      adjusted.PDraw,
			PAway:      adjusted.PAway,
			DCActive:   kernel.DCRelevant(adjusted.LamHome, adjusted.LamAway, artifact.Rho),
		}
		if fx.hasOdds {
			views[i].DrawOdds = fx.closeD
			views[i].AwayOdds = fx.closeA
			if fx.closeA > 0 {
				views[i].MarketPAway = 1 / fx.closeA
			}
		}

		if fx.hasOdds {
			shocks[i] = correlation.Detect(
				correlation.OddsSnapshot{OpenHome: fx.openH, OpenDraw: fx.openD, OpenAway: fx.openA, CloseHome: fx.closeH, CloseDraw: fx.closeD, CloseAway: fx.closeA},
				correlation.ModelProbabilities{PHome: adjusted.PHome, PDraw: adjusted.PDraw, PAway: adjusted.PAway},
				correlation.DefaultThresholds(),
			)
		}
	}
	return lines, views, shocks
}

func loadMatches(path, league string) ([]rating.Match, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty matches file")
	}
	header := rows[0]
	idx := colIndex(header)

	var out []rating.Match
	for _, row := range rows[1:] {
		l := get(row, idx, "league")
		if league != "" && l != league {
			continue
		}
		date, err := time.Parse("2006-01-02", get(row, idx, "date"))
		if err != nil {
			telemetry.Metrics.MatchesSkipped.Inc()
			continue
		}
		hg, err1 := strconv.Atoi(get(row, idx, "home_goals"))
		ag, err2 := strconv.Atoi(get(row, idx, "away_goals"))
		if err1 != nil || err2 != nil {
			telemetry.Metrics.MatchesSkipped.Inc()
			continue
		}
		out = append(out, rating.Match{
			League:    l,
			Date:      date,
			HomeID:    get(row, idx, "home"),
			AwayID:    get(row, idx, "away"),
			HomeGoals: hg,
			AwayGoals: ag,
		})
	}
	return out, nil
}

func loadFixtures(path, league string) ([]fixtureRow, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty fixtures file")
	}
	header := rows[0]
	idx := colIndex(header)

	var out []fixtureRow
	for _, row := range rows[1:] {
		l := get(row, idx, "league")
		if league != "" && l != league {
			continue
		}
		fx := fixtureRow{league: l, home: get(row, idx, "home"), away: get(row, idx, "away")}
		if _, ok := idx["open_home"]; ok {
			fx.openH = getFloat(row, idx, "open_home")
			fx.openD = getFloat(row, idx, "open_draw")
			fx.openA = getFloat(row, idx, "open_away")
			fx.closeH = getFloat(row, idx, "close_home")
			fx.closeD = getFloat(row, idx, "close_draw")
			fx.closeA = getFloat(row, idx, "close_away")
			fx.hasOdds = fx.openH > 0 && fx.closeH > 0
		}
		out = append(out, fx)
	}
	return out, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func colIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return idx
}

func get(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func getFloat(row []string, idx map[string]int, name string) float64 {
	v, _ := strconv.ParseFloat(get(row, idx, name), 64)
	return v
}
