package rating

import (
	"math"

	"github.com/charleschow/football-outrights/internal/core/kernel"
)

// Validate implements C4: it scores each holdout match against the
// fitted artifact and accumulates Brier score, log-loss, categorical
// accuracy, draw accuracy, and goals RMSE. Matches referencing a team
// absent from the artifact are skipped and counted, never treated as
// an error — holdout quality degrades gracefully rather than failing
// the whole fit.
func Validate(artifact *FitArtifact, holdout []Match, cfg Config) (Metrics, []Warning) {
	var metrics Metrics
	var warnings []Warning

	if len(holdout) == 0 {
		return metrics, warnings
	}

	var brierSum, logLossSum, sqErrSum float64
	var correct, correctDraws, actualDraws int
	scored := 0

	for _, m := range holdout {
		home, homeOK := artifact.Teams[m.HomeID]
		away, awayOK := artifact.Teams[m.AwayID]
		if !homeOK || !awayOK {
			metrics.SkippedMatches++
			warnings = append(warnings, Warning{Kind: "holdout_unknown_team", Detail: m.HomeID + " vs " + m.AwayID})
			continue
		}

		dist, err := kernel.Score(kernel.Inputs{
			HomeAttack:  home.Attack,
			HomeDefense: home.Defense,
			AwayAttack:  away.Attack,
			AwayDefense: away.Defense,
			HomeAdv:     artifact.HomeAdvantage,
			Rho:         artifact.Rho,
		})
		if err != nil {
			metrics.SkippedMatches++
			warnings = append(warnings, Warning{Kind: "holdout_scoring_failed", Detail: err.Error()})
			continue
		}

		scored++
		actualHome, actualDraw, actualAway := outcomeOneHot(m.HomeGoals, m.AwayGoals)
		brierSum += sq(dist.PHome-actualHome) + sq(dist.PDraw-actualDraw) + sq(dist.PAway-actualAway)

		pActual := dist.PHome*actualHome + dist.PDraw*actualDraw + dist.PAway*actualAway
		logLossSum += -math.Log(math.Max(pActual, 1e-12))

		predicted := argmaxOutcome(dist)
		actual := actualOutcome(m.HomeGoals, m.AwayGoals)
		if predicted == actual {
			correct++
		}
		if actual == outcomeDraw {
			actualDraws++
			if predicted == outcomeDraw {
				correctDraws++
			}
		}

		expHome := dist.LamHome
		expAway := dist.LamAway
		sqErrSum += sq(expHome-float64(m.HomeGoals)) + sq(expAway-float64(m.AwayGoals))
	}

	if scored == 0 {
		return metrics, warnings
	}

	metrics.HoldoutSize = scored
	metrics.Brier = brierSum / float64(scored)
	metrics.LogLoss = logLossSum / float64(scored)
	metrics.Accuracy = float64(correct) / float64(scored)
	metrics.GoalsRMSE = math.Sqrt(sqErrSum / float64(2*scored))
	if actualDraws > 0 {
		metrics.DrawAccuracy = float64(correctDraws) / float64(actualDraws)
	}
	return metrics, warnings
}

type outcome int

const (
	outcomeHome outcome = iota
	outcomeDraw
	outcomeAway
)

func outcomeOneHot(homeGoals, awayGoals int) (home, draw, away float64) {
	switch actualOutcome(homeGoals, awayGoals) {
	case outcomeHome:
		return 1, 0, 0
	case outcomeAway:
		return 0, 0, 1
	default:
		return 0, 1, 0
	}
}

func actualOutcome(homeGoals, awayGoals int) outcome {
	switch {
	case homeGoals > awayGoals:
		return outcomeHome
	case homeGoals < awayGoals:
		return outcomeAway
	default:
		return outcomeDraw
	}
}

func argmaxOutcome(d kernel.Distribution) outcome {
	best := outcomeHome
	bestP := d.PHome
	if d.PDraw > bestP {
		best, bestP = outcomeDraw, d.PDraw
	}
	if d.PAway > bestP {
		best = outcomeAway
	}
	return best
}

func sq(x float64) float64 { return x * x }
