package rating

import (
	"sort"

	"github.com/charleschow/football-outrights/internal/core/kernel"
)

// CalibrationTable holds a per-league, per-outcome isotonic mapping
// from raw model probability to empirical frequency, fit on holdout
// residuals. A league with fewer than the configured minimum sample is
// left unpublished; Apply then passes probabilities through unchanged
// (spec.md §4.4's "pass-through when no table exists" rule).
type CalibrationTable struct {
	League string
	Home   isotonicMap
	Draw   isotonicMap
	Away   isotonicMap
	Sample int
}

// isotonicMap is a monotone step function built by pool-adjacent-violators
// over binned (predicted, empirical) pairs.
type isotonicMap struct {
	x []float64
	y []float64
}

// NewIsotonicMap rebuilds an isotonicMap from persisted (x, y) pairs,
// for a CalibrationStore to reconstruct a table without re-fitting.
func NewIsotonicMap(x, y []float64) isotonicMap {
	return isotonicMap{x: x, y: y}
}

// Points exposes the map's fitted (x, y) pairs for persistence.
func (m isotonicMap) Points() ([]float64, []float64) {
	return m.x, m.y
}

// NewCalibrationTable assembles a CalibrationTable from persisted
// per-outcome isotonic maps, for a CalibrationStore's Get.
func NewCalibrationTable(league string, home, draw, away isotonicMap, sample int) CalibrationTable {
	return CalibrationTable{League: league, Home: home, Draw: draw, Away: away, Sample: sample}
}

type outcomeSample struct {
	predicted float64
	actual    float64
}

// FitCalibration builds one CalibrationTable per league from scored
// holdout matches. A league with fewer than minSample scored holdout
// matches gets no table.
func FitCalibration(artifact *FitArtifact, holdout []Match, minSample int) map[string]CalibrationTable {
	grouped := map[string]struct {
		home, draw, away []outcomeSample
	}{}

	for _, m := range holdout {
		home, homeOK := artifact.Teams[m.HomeID]
		away, awayOK := artifact.Teams[m.AwayID]
		if !homeOK || !awayOK {
			continue
		}
		dist, err := predictDistribution(artifact, home, away)
		if err != nil {
			continue
		}
		ah, ad, aa := outcomeOneHot(m.HomeGoals, m.AwayGoals)

		g := grouped[m.League]
		g.home = append(g.home, outcomeSample{predicted: dist.PHome, actual: ah})
		g.draw = append(g.draw, outcomeSample{predicted: dist.PDraw, actual: ad})
		g.away = append(g.away, outcomeSample{predicted: dist.PAway, actual: aa})
		grouped[m.League] = g
	}

	tables := make(map[string]CalibrationTable, len(grouped))
	for league, g := range grouped {
		if len(g.home) < minSample {
			continue
		}
		tables[league] = CalibrationTable{
			League: league,
			Home:   fitIsotonic(g.home),
			Draw:   fitIsotonic(g.draw),
			Away:   fitIsotonic(g.away),
			Sample: len(g.home),
		}
	}
	return tables
}

// Apply calibrates a raw distribution using the table for its league,
// falling back to an identity pass-through when no table is published
// for that league, then renormalizes so the three outcomes still sum
// to one.
func Apply(tables map[string]CalibrationTable, league string, pHome, pDraw, pAway float64) (float64, float64, float64) {
	table, ok := tables[league]
	if !ok {
		return pHome, pDraw, pAway
	}
	h := table.Home.lookup(pHome)
	d := table.Draw.lookup(pDraw)
	a := table.Away.lookup(pAway)
	sum := h + d + a
	if sum <= 0 {
		return pHome, pDraw, pAway
	}
	return h / sum, d / sum, a / sum
}

func predictDistribution(artifact *FitArtifact, home, away TeamStrength) (kernel.Distribution, error) {
	return kernel.Score(kernel.Inputs{
		HomeAttack:  home.Attack,
		HomeDefense: home.Defense,
		AwayAttack:  away.Attack,
		AwayDefense: away.Defense,
		HomeAdv:     artifact.HomeAdvantage,
		Rho:         artifact.Rho,
	})
}

// fitIsotonic runs pool-adjacent-violators on samples sorted by
// predicted probability, producing a monotone non-decreasing step map.
func fitIsotonic(samples []outcomeSample) isotonicMap {
	sorted := make([]outcomeSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].predicted < sorted[j].predicted })

	type block struct {
		sumX, sumY float64
		count      float64
	}
	blocks := make([]block, 0, len(sorted))
	for _, s := range sorted {
		blocks = append(blocks, block{sumX: s.predicted, sumY: s.actual, count: 1})
		for len(blocks) > 1 && mean(blocks[len(blocks)-2]) > mean(blocks[len(blocks)-1]) {
			prev := blocks[len(blocks)-2]
			last := blocks[len(blocks)-1]
			merged := block{sumX: prev.sumX + last.sumX, sumY: prev.sumY + last.sumY, count: prev.count + last.count}
			blocks = append(blocks[:len(blocks)-2], merged)
		}
	}

	m := isotonicMap{x: make([]float64, len(blocks)), y: make([]float64, len(blocks))}
	for i, b := range blocks {
		m.x[i] = b.sumX / b.count
		m.y[i] = b.sumY / b.count
	}
	return m
}

func mean(b struct {
	sumX, sumY float64
	count      float64
}) float64 {
	return b.sumY / b.count
}

// lookup interpolates the isotonic map at p, clamping to the map's
// boundary values outside its fitted range.
func (m isotonicMap) lookup(p float64) float64 {
	if len(m.x) == 0 {
		return p
	}
	if p <= m.x[0] {
		return m.y[0]
	}
	if p >= m.x[len(m.x)-1] {
		return m.y[len(m.x)-1]
	}
	idx := sort.SearchFloat64s(m.x, p)
	if idx == 0 {
		return m.y[0]
	}
	x0, x1 := m.x[idx-1], m.x[idx]
	y0, y1 := m.y[idx-1], m.y[idx]
	if x1 == x0 {
		return y0
	}
	frac := (p - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
