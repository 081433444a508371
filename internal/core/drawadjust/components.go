// Package drawadjust implements C3: eight bounded, composable structural
// multipliers applied to the draw probability, plus the proportional
// renormalization that keeps the result a valid PMF. Each component
// returns a (value, neutral) pair instead of throwing on missing
// inputs — SPEC_FULL.md §4's resolution of the "exception-driven
// control flow" design note.
package drawadjust

import "github.com/charleschow/football-outrights/internal/safenum"

// LeaguePriorInput is the league-prior component's required data.
type LeaguePriorInput struct {
	DrawRate     float64 // r
	SampleSize   int     // n
	TeamCount    int     // T, 0 if unknown
	RelegationZ  int     // R, 0 if unknown
	HasStructure bool
}

// LeaguePrior returns clip(r/0.26, 0.9, 1.2) combined with an optional
// structural adjustment, per spec.md §4.3's table row. Neutral (1.0) when
// the sample is too small.
func LeaguePrior(in LeaguePriorInput) (float64, bool) {
	if in.SampleSize < 10 {
		return 1.0, true
	}
	base := safenum.Clamp(in.DrawRate/0.26, 0.9, 1.2)
	if !in.HasStructure {
		return safenum.Clamp(base, 0.9, 1.2), false
	}
	structure := safenum.Clamp((1+float64(in.TeamCount-20)*0.005)*(1+float64(in.RelegationZ)/3*0.02), 0.95, 1.05)
	return safenum.Clamp(base*structure, 0.9, 1.2), false
}

// EloSymmetry returns exp(-|delta|/160), clipped to [0.8,1.2].
func EloSymmetry(homeElo, awayElo float64, present bool) (float64, bool) {
	if !present {
		return 1.0, true
	}
	delta := homeElo - awayElo
	if delta < 0 {
		delta = -delta
	}
	v := expNeg(delta / 160)
	return safenum.Clamp(v, 0.8, 1.2), false
}

// HeadToHead returns clip((draws/matches)/0.26, 0.9, 1.15) when at least
// 4 prior meetings exist, else neutral.
func HeadToHead(draws, matches int) (float64, bool) {
	if matches < 4 {
		return 1.0, true
	}
	v := (float64(draws) / float64(matches)) / 0.26
	return safenum.Clamp(v, 0.9, 1.15), false
}

// Weather passes the precomputed weather_draw_index through, clipped to
// [0.95,1.10]. Neutral when no index is available.
func Weather(index float64, present bool) (float64, bool) {
	if !present {
		return 1.0, true
	}
	return safenum.Clamp(index, 0.95, 1.10), false
}

// Fatigue returns 1 + max(0, 4-meanRestDays)*0.04, clipped to [0.9,1.12].
func Fatigue(meanRestDays float64, present bool) (float64, bool) {
	if !present {
		return 1.0, true
	}
	rest := 4 - meanRestDays
	if rest < 0 {
		rest = 0
	}
	v := 1 + rest*0.04
	return safenum.Clamp(v, 0.9, 1.12), false
}

// Referee returns 1 + (1/max(1,cards+penalties))*0.08, clipped to
// [0.95,1.10].
func Referee(avgCards, avgPenalties float64, present bool) (float64, bool) {
	if !present {
		return 1.0, true
	}
	denom := avgCards + avgPenalties
	if denom < 1 {
		denom = 1
	}
	v := 1 + (1/denom)*0.08
	return safenum.Clamp(v, 0.95, 1.10), false
}

// OddsDrift returns 1 + 0.15*delta where delta is (close-open) draw odds,
// clipped to [0.9,1.15].
func OddsDrift(delta float64, present bool) (float64, bool) {
	if !present {
		return 1.0, true
	}
	v := 1 + 0.15*delta
	return safenum.Clamp(v, 0.9, 1.15), false
}

// XG passes the precomputed xg_draw_index through, clipped to [0.8,1.2].
func XG(index float64, present bool) (float64, bool) {
	if !present {
		return 1.0, true
	}
	return safenum.Clamp(index, 0.8, 1.2), false
}

// expNeg is a tiny wrapper kept local so this file has no direct math
// import beyond what safenum already centralizes elsewhere in the core.
func expNeg(x float64) float64 {
	// e^-x via safenum.SafeExp, generously bounded since x >= 0 here.
	v, _ := safenum.SafeExp(-x, 0, 10)
	return v
}
