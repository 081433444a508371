package correlation

import "math"

// OddsSnapshot is a fixture's opening and closing decimal 1×2 market
// odds. Implied probabilities are derived by inverting and
// overround-normalizing each side.
type OddsSnapshot struct {
	OpenHome, OpenDraw, OpenAway   float64
	CloseHome, CloseDraw, CloseAway float64
}

// ModelProbabilities is the model's final (post-C3/C4) distribution for
// the same fixture.
type ModelProbabilities struct {
	PHome, PDraw, PAway float64
}

// Thresholds bounds what counts as a late shock. Defaults are
// conservative: both drift and disagreement must clear their bar.
type Thresholds struct {
	DriftMagnitude        float64
	DisagreementMagnitude float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{DriftMagnitude: 0.05, DisagreementMagnitude: 0.08}
}

// LateShock is spec.md §3's per-fixture shock signal.
type LateShock struct {
	Triggered bool
	Score     float64
	Reasons   []string
}

// Detect implements C5's late-market-shock rule: implied-probability
// drift per outcome, agreement between drift direction and the model's
// lean, and magnitude of closing-vs-model disagreement.
func Detect(odds OddsSnapshot, model ModelProbabilities, th Thresholds) LateShock {
	openHome, openDraw, openAway := impliedProbabilities(odds.OpenHome, odds.OpenDraw, odds.OpenAway)
	closeHome, closeDraw, closeAway := impliedProbabilities(odds.CloseHome, odds.CloseDraw, odds.CloseAway)

	driftHome := closeHome - openHome
	driftDraw := closeDraw - openDraw
	driftAway := closeAway - openAway

	disagreeHome := model.PHome - closeHome
	disagreeDraw := model.PDraw - closeDraw
	disagreeAway := model.PAway - closeAway

	var reasons []string
	var maxScore float64

	if math.Abs(driftHome) >= th.DriftMagnitude && math.Abs(disagreeHome) >= th.DisagreementMagnitude {
		if driftHome > 0 {
			reasons = append(reasons, "home_drift_up")
		} else {
			reasons = append(reasons, "home_drift_down")
		}
		maxScore = math.Max(maxScore, math.Abs(driftHome)+math.Abs(disagreeHome))
	}
	if math.Abs(driftDraw) >= th.DriftMagnitude && math.Abs(disagreeDraw) >= th.DisagreementMagnitude {
		if driftDraw < 0 {
			reasons = append(reasons, "draw_collapse")
		} else {
			reasons = append(reasons, "draw_inflate")
		}
		maxScore = math.Max(maxScore, math.Abs(driftDraw)+math.Abs(disagreeDraw))
	}
	if math.Abs(driftAway) >= th.DriftMagnitude && math.Abs(disagreeAway) >= th.DisagreementMagnitude {
		if driftAway > 0 {
			reasons = append(reasons, "away_drift_up")
		} else {
			reasons = append(reasons, "away_drift_down")
		}
		maxScore = math.Max(maxScore, math.Abs(driftAway)+math.Abs(disagreeAway))
	}

	return LateShock{
		Triggered: len(reasons) > 0,
		Score:     maxScore,
		Reasons:   reasons,
	}
}

// impliedProbabilities inverts decimal odds and removes the overround
// by normalizing to sum 1. Zero or negative odds yield a neutral third
// each, since no market signal is usable.
func impliedProbabilities(home, draw, away float64) (float64, float64, float64) {
	if home <= 0 || draw <= 0 || away <= 0 {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	ih, id, ia := 1/home, 1/draw, 1/away
	sum := ih + id + ia
	return ih / sum, id / sum, ia / sum
}
