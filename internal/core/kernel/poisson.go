// Package kernel implements C1: the Dixon-Coles bivariate Poisson
// scoring kernel. Given team strengths, home advantage and rho, it
// derives a full score-grid distribution and collapses it to a 1x2
// outcome distribution, expected goals and normalized entropy.
package kernel

import (
	"fmt"
	"math"

	"github.com/charleschow/football-outrights/internal/safenum"
)

// Inputs bundles the per-match parameters C1 consumes.
type Inputs struct {
	HomeAttack  float64
	HomeDefense float64
	AwayAttack  float64
	AwayDefense float64
	HomeAdv     float64
	Rho         float64
	// MaxK bounds the score grid; 0 selects the default (10), grown
	// automatically when expected goals run hot (spec.md §4.1 edge cases).
	MaxK int
}

// Distribution is spec.md §3's Distribution entity.
type Distribution struct {
	PHome   float64
	PDraw   float64
	PAway   float64
	LamHome float64
	LamAway float64
	Entropy float64
}

const (
	scoreEps        = 1e-12
	defaultMaxK     = 10
	tailMassBound   = 1e-6
	lamClampLow     = 1e-6
	lamClampHigh    = 20
	dcRelevanceFloor = 0.08
)

// ErrInvalidInput is returned when any kernel input is non-finite or a
// derived lambda is negative.
type ErrInvalidInput struct{ Reason string }

func (e ErrInvalidInput) Error() string { return "kernel: invalid input: " + e.Reason }

// Score runs C1: compute the full Dixon-Coles-corrected score grid and
// collapse it into a Distribution.
func Score(in Inputs) (Distribution, error) {
	if !safenum.AllFinite(in.HomeAttack, in.HomeDefense, in.AwayAttack, in.AwayDefense, in.HomeAdv, in.Rho) {
		return Distribution{}, ErrInvalidInput{Reason: "non-finite parameter"}
	}

	lamHome, _ := safenum.SafeExp(in.HomeAttack-in.AwayDefense+in.HomeAdv, lamClampLow, lamClampHigh)
	lamAway, _ := safenum.SafeExp(in.AwayAttack-in.HomeDefense, lamClampLow, lamClampHigh)
	if lamHome < 0 || lamAway < 0 {
		return Distribution{}, ErrInvalidInput{Reason: "negative expected goals"}
	}

	k := in.MaxK
	if k <= 0 {
		k = defaultMaxK
	}
	k = growGridForTailMass(k, lamHome, lamAway)

	grid := scoreGrid(lamHome, lamAway, in.Rho, k)

	var pHome, pDraw, pAway float64
	for i := 0; i <= k; i++ {
		for j := 0; j <= k; j++ {
			p := grid[i][j]
			switch {
			case i > j:
				pHome += p
			case i == j:
				pDraw += p
			default:
				pAway += p
			}
		}
	}

	dist := Distribution{
		PHome:   pHome,
		PDraw:   pDraw,
		PAway:   pAway,
		LamHome: lamHome,
		LamAway: lamAway,
		Entropy: Entropy(pHome, pDraw, pAway),
	}
	return dist, nil
}

// growGridForTailMass expands K until the Poisson tail mass beyond K is
// below the configured bound, per spec.md §4.1's edge case for hot
// lambdas (>6).
func growGridForTailMass(k int, lamHome, lamAway float64) int {
	maxLam := lamHome
	if lamAway > maxLam {
		maxLam = lamAway
	}
	if maxLam <= 6 {
		return k
	}
	for {
		tail := poissonTailMass(k, maxLam)
		if tail < tailMassBound || k > 200 {
			return k
		}
		k += 5
	}
}

// poissonTailMass approximates P(X > k) for a Poisson(lambda) via the
// complement of the partial CDF, summed in log-space.
func poissonTailMass(k int, lambda float64) float64 {
	cdf := 0.0
	for i := 0; i <= k; i++ {
		cdf += math.Exp(safenum.PoissonLogPMF(i, lambda))
	}
	return 1 - cdf
}

// scoreGrid builds the (K+1)x(K+1) Dixon-Coles-corrected, renormalized
// probability matrix.
func scoreGrid(lamHome, lamAway, rho float64, k int) [][]float64 {
	grid := make([][]float64, k+1)
	total := 0.0
	for i := 0; i <= k; i++ {
		grid[i] = make([]float64, k+1)
		for j := 0; j <= k; j++ {
			logP := safenum.PoissonLogPMF(i, lamHome) + safenum.PoissonLogPMF(j, lamAway)
			p := math.Exp(logP) * tau(i, j, lamHome, lamAway, rho)
			if p < scoreEps {
				p = scoreEps
			}
			grid[i][j] = p
			total += p
		}
	}
	if total <= 0 {
		total = 1
	}
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] /= total
		}
	}
	return grid
}

// DCRelevant reports whether the tau correction actually moves this
// fixture's outcome distribution: rho alone isn't enough, since a
// high-scoring fixture puts almost no mass on the four cells tau
// touches and the correction becomes a no-op in practice even though
// rho is nonzero.
func DCRelevant(lamHome, lamAway, rho float64) bool {
	if rho == 0 {
		return false
	}
	mass := math.Exp(safenum.PoissonLogPMF(0, lamHome)+safenum.PoissonLogPMF(0, lamAway)) +
		math.Exp(safenum.PoissonLogPMF(0, lamHome)+safenum.PoissonLogPMF(1, lamAway)) +
		math.Exp(safenum.PoissonLogPMF(1, lamHome)+safenum.PoissonLogPMF(0, lamAway)) +
		math.Exp(safenum.PoissonLogPMF(1, lamHome)+safenum.PoissonLogPMF(1, lamAway))
	return mass >= dcRelevanceFloor
}

// tau is the Dixon-Coles low-score dependency correction (spec.md §4.1).
func tau(i, j int, lamHome, lamAway, rho float64) float64 {
	switch {
	case i == 0 && j == 0:
		return 1 - lamHome*lamAway*rho
	case i == 0 && j == 1:
		return 1 + lamHome*rho
	case i == 1 && j == 0:
		return 1 + lamAway*rho
	case i == 1 && j == 1:
		return 1 - rho
	default:
		return 1
	}
}

// Entropy computes the normalized (log-base-3) entropy of a 1x2
// distribution, per SPEC_FULL.md §9's resolved convention: [0,1].
func Entropy(pHome, pDraw, pAway float64) float64 {
	h := 0.0
	for _, p := range []float64{pHome, pDraw, pAway} {
		if p <= 0 {
			continue
		}
		h -= p * math.Log(p)
	}
	return h / math.Log(3)
}

// Validate checks a Distribution against the PMF invariants of
// spec.md §8.
func Validate(d Distribution) error {
	sum := d.PHome + d.PDraw + d.PAway
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("kernel: distribution sums to %.9f, want 1±1e-6", sum)
	}
	for name, p := range map[string]float64{"home": d.PHome, "draw": d.PDraw, "away": d.PAway} {
		if p < 0 || p > 1 {
			return fmt.Errorf("kernel: p_%s=%.6f out of [0,1]", name, p)
		}
	}
	return nil
}
