package rating

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/charleschow/football-outrights/internal/core/kernel"
	"github.com/charleschow/football-outrights/internal/safenum"
)

// Progress is emitted during Fit so orchestration can relay it to its
// own progress channel (spec.md §6's ProgressSink). The core never
// writes to a channel itself — it only calls onProgress, which may be
// nil.
type Progress struct {
	Phase    string
	Iter     int
	MaxDelta float64
	Fraction float64
}

// ErrCancelled is returned by Fit when ctx is cancelled between
// iterations. No artifact is published in that case.
var ErrCancelled = errors.New("rating: fit cancelled")

type teamAccum struct {
	scoredNum, scoredDen   float64
	concedeNum, concedeDen float64
}

// Fit implements C2: iterative proportional fitting of per-team
// attack/defense, home-advantage re-estimation, and rho MLE, followed
// by C4 holdout validation. matches need not be pre-sorted — Fit sorts
// them itself (the determinism contract in spec.md §4.2: sort before
// any split, weight, or fold).
func Fit(ctx context.Context, matches []Match, cfg Config, opt Optimizer, onProgress func(Progress)) (*FitArtifact, Metrics, []Warning, error) {
	if len(matches) == 0 {
		return nil, Metrics{}, nil, ErrEmptyInput{}
	}

	sorted := make([]Match, len(matches))
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

	teamSet := map[string]bool{}
	for _, m := range sorted {
		teamSet[m.HomeID] = true
		teamSet[m.AwayID] = true
	}
	if len(teamSet) < 2 {
		return nil, Metrics{}, nil, ErrDegenerate{TeamCount: len(teamSet)}
	}

	splitIdx := holdoutSplitIndex(len(sorted), cfg.TestSplitFraction)
	train := sorted[:splitIdx]
	holdout := sorted[splitIdx:]
	if len(train) == 0 {
		train = sorted
		holdout = nil
	}

	refDate := cfg.ReferenceDate
	if refDate.IsZero() {
		refDate = train[len(train)-1].Date
	}

	weights := make([]float64, len(train))
	for i, m := range train {
		days := refDate.Sub(m.Date).Hours() / 24
		weights[i] = math.Exp(-cfg.XiDecayRate * days)
	}

	teams := make([]string, 0, len(teamSet))
	for id := range teamSet {
		teams = append(teams, id)
	}
	sort.Strings(teams)

	attack := make(map[string]float64, len(teams))
	defense := make(map[string]float64, len(teams))
	matchCounts := make(map[string]int, len(teams))
	for _, id := range teams {
		attack[id] = 1
		defense[id] = 1
	}
	for _, m := range train {
		matchCounts[m.HomeID]++
		matchCounts[m.AwayID]++
	}

	homeAdv := cfg.InitialHomeAdvantage
	var warnings []Warning
	maxDelta := math.MaxFloat64
	iter := 0

	for ; iter < cfg.MaxIterations; iter++ {
		if err := checkCancel(ctx); err != nil {
			return nil, Metrics{}, warnings, err
		}

		accum := make(map[string]*teamAccum, len(teams))
		for _, id := range teams {
			accum[id] = &teamAccum{}
		}

		for i, m := range train {
			if err := checkCancel(ctx); err != nil {
				return nil, Metrics{}, warnings, err
			}
			w := weights[i]
			lamHome, lamAway := expectedGoals(attack, defense, homeAdv, m)

			ah, ah2 := accum[m.HomeID], accum[m.AwayID]
			ah.scoredNum += w * float64(m.HomeGoals)
			ah.scoredDen += w * lamHome
			ah.concedeNum += w * float64(m.AwayGoals)
			ah.concedeDen += w * lamAway

			ah2.scoredNum += w * float64(m.AwayGoals)
			ah2.scoredDen += w * lamAway
			ah2.concedeNum += w * float64(m.HomeGoals)
			ah2.concedeDen += w * lamHome
		}

		newAttack := make(map[string]float64, len(teams))
		newDefense := make(map[string]float64, len(teams))
		for _, id := range teams {
			a := accum[id]
			if matchCounts[id] == 0 {
				newAttack[id] = 1
				newDefense[id] = 1
				warnings = append(warnings, Warning{Kind: "uncalibrated_team", Detail: id})
				continue
			}
			newAttack[id] = ratio(a.scoredNum, a.scoredDen, attack[id])
			newDefense[id] = ratio(a.concedeNum, a.concedeDen, defense[id])
		}

		normalizeToMeanOne(newAttack)
		normalizeToMeanOne(newDefense)

		maxDelta = 0
		for _, id := range teams {
			if d := math.Abs(newAttack[id] - attack[id]); d > maxDelta {
				maxDelta = d
			}
			if d := math.Abs(newDefense[id] - defense[id]); d > maxDelta {
				maxDelta = d
			}
		}
		attack, defense = newAttack, newDefense

		homeAdv = reestimateHomeAdvantage(attack, defense, train, weights, cfg)

		if onProgress != nil {
			onProgress(Progress{Phase: "iterating", Iter: iter + 1, MaxDelta: maxDelta, Fraction: float64(iter+1) / float64(cfg.MaxIterations)})
		}

		if maxDelta < cfg.ConvergenceTolerance {
			iter++
			break
		}
	}

	rho, rhoMeta := fitRho(attack, defense, homeAdv, train, weights, cfg, opt)

	strengths := make(map[string]TeamStrength, len(teams))
	for _, id := range teams {
		strengths[id] = TeamStrength{Attack: attack[id], Defense: defense[id], Uncalibrated: matchCounts[id] == 0}
	}

	artifact := &FitArtifact{
		Teams:         strengths,
		HomeAdvantage: homeAdv,
		Rho:           rho,
		ReferenceDate: refDate,
		Xi:            cfg.XiDecayRate,
		Metadata: FitMetadata{
			Iterations:        iter,
			MaxDelta:          maxDelta,
			Normalization:     "post_iteration_mean",
			RhoOptimizerUsed:  rhoMeta.used,
			RhoFallbackReason: rhoMeta.fallbackReason,
		},
	}

	if onProgress != nil {
		onProgress(Progress{Phase: "validating", Fraction: 0.95})
	}

	metrics, valWarnings := Validate(artifact, holdout, cfg)
	warnings = append(warnings, valWarnings...)

	return artifact, metrics, warnings, nil
}

func checkCancel(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

func holdoutSplitIndex(n int, testFraction float64) int {
	if testFraction <= 0 || testFraction >= 1 {
		return n
	}
	idx := n - int(float64(n)*testFraction)
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}

func expectedGoals(attack, defense map[string]float64, homeAdv float64, m Match) (lamHome, lamAway float64) {
	lamHome, _ = safenum.SafeExp(attack[m.HomeID]-defense[m.AwayID]+homeAdv, 1e-6, 20)
	lamAway, _ = safenum.SafeExp(attack[m.AwayID]-defense[m.HomeID], 1e-6, 20)
	return
}

func ratio(num, den, fallback float64) float64 {
	if den <= 0 {
		return fallback
	}
	return num / den
}

func normalizeToMeanOne(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	sum := 0.0
	for _, v := range m {
		sum += v
	}
	mean := sum / float64(len(m))
	if mean <= 0 {
		return
	}
	for k, v := range m {
		m[k] = v / mean
	}
}

// reestimateHomeAdvantage implements spec.md §4.2 step 4: the weighted
// mean of log(goals_home / expected_home_without_h), substituting the
// configured stabilizer for goals_home=0 (see SPEC_FULL.md §9).
func reestimateHomeAdvantage(attack, defense map[string]float64, train []Match, weights []float64, cfg Config) float64 {
	var wsum, sum float64
	for i, m := range train {
		w := weights[i]
		expectedWithoutH, _ := safenum.SafeExp(attack[m.HomeID]-defense[m.AwayID], 1e-6, 20)
		if expectedWithoutH <= 0 {
			continue
		}
		numerator := float64(m.HomeGoals)
		if m.HomeGoals == 0 {
			numerator = cfg.HomeGoalsZeroStabilizer
		}
		sum += w * safenum.SafeLog(numerator/expectedWithoutH, cfg.HomeGoalsZeroStabilizer)
		wsum += w
	}
	if wsum <= 0 {
		return cfg.InitialHomeAdvantage
	}
	return safenum.Clamp(sum/wsum, cfg.HomeAdvantageMin, cfg.HomeAdvantageMax)
}

type rhoFitMeta struct {
	used           bool
	fallbackReason string
}

// fitRho minimizes the weighted Dixon-Coles negative log-likelihood over
// rho in [RhoMin, RhoMax] using the injected Optimizer.
func fitRho(attack, defense map[string]float64, homeAdv float64, train []Match, weights []float64, cfg Config, opt Optimizer) (float64, rhoFitMeta) {
	if opt == nil {
		return cfg.InitialRho, rhoFitMeta{used: false, fallbackReason: "no optimizer configured"}
	}

	nll := func(rho float64) float64 {
		total := 0.0
		for i, m := range train {
			lamHome, lamAway := expectedGoals(attack, defense, homeAdv, m)
			tau := dixonColesTau(m.HomeGoals, m.AwayGoals, lamHome, lamAway, rho)
			if tau < 1e-10 {
				tau = 1e-10
			}
			logPMF := safenum.PoissonLogPMF(m.HomeGoals, lamHome) + safenum.PoissonLogPMF(m.AwayGoals, lamAway) + math.Log(tau)
			total -= weights[i] * logPMF
		}
		return total
	}

	rho, ok := opt.Minimize(nll, cfg.RhoMin, cfg.RhoMax)
	if !ok {
		return cfg.InitialRho, rhoFitMeta{used: false, fallbackReason: "optimizer declined"}
	}
	return safenum.Clamp(rho, cfg.RhoMin, cfg.RhoMax), rhoFitMeta{used: true}
}

func dixonColesTau(homeGoals, awayGoals int, lamHome, lamAway, rho float64) float64 {
	switch {
	case homeGoals == 0 && awayGoals == 0:
		return 1 - lamHome*lamAway*rho
	case homeGoals == 0 && awayGoals == 1:
		return 1 + lamHome*rho
	case homeGoals == 1 && awayGoals == 0:
		return 1 + lamAway*rho
	case homeGoals == 1 && awayGoals == 1:
		return 1 - rho
	default:
		return 1
	}
}

// Predict runs C1 for a single fixture using a fitted artifact. It is a
// thin, read-only wrapper: the artifact is never mutated.
func Predict(artifact *FitArtifact, homeID, awayID string, maxK int) (kernel.Distribution, error) {
	home, ok := artifact.Teams[homeID]
	if !ok {
		home = TeamStrength{Attack: 1, Defense: 1, Uncalibrated: true}
	}
	away, ok := artifact.Teams[awayID]
	if !ok {
		away = TeamStrength{Attack: 1, Defense: 1, Uncalibrated: true}
	}
	return kernel.Score(kernel.Inputs{
		HomeAttack:  home.Attack,
		HomeDefense: home.Defense,
		AwayAttack:  away.Attack,
		AwayDefense: away.Defense,
		HomeAdv:     artifact.HomeAdvantage,
		Rho:         artifact.Rho,
		MaxK:        maxK,
	})
}
