package drawadjust

import (
	"fmt"
	"math"

	"github.com/charleschow/football-outrights/internal/core/kernel"
	"github.com/charleschow/football-outrights/internal/safenum"
)

// Components is spec.md §3's DrawComponents entity: the eight factors
// and their clipped product.
type Components struct {
	LeaguePrior  float64
	EloSymmetry  float64
	HeadToHead   float64
	Weather      float64
	Fatigue      float64
	Referee      float64
	OddsDrift    float64
	XG           float64
}

// Neutral returns a Components whose every factor is 1.0 — applying it
// is an identity transform (spec.md §8's round-trip property).
func Neutral() Components {
	return Components{1, 1, 1, 1, 1, 1, 1, 1}
}

// Multiplier is the product of all eight factors, clipped to [0.75,1.35]
// per spec.md §4.3.
func (c Components) Multiplier() float64 {
	product := c.LeaguePrior * c.EloSymmetry * c.HeadToHead * c.Weather * c.Fatigue * c.Referee * c.OddsDrift * c.XG
	return safenum.Clamp(product, 0.75, 1.35)
}

// ErrInvalidDistribution is returned when the input distribution does
// not sum to 1±1e-3.
type ErrInvalidDistribution struct{ Sum float64 }

func (e ErrInvalidDistribution) Error() string {
	return fmt.Sprintf("drawadjust: input distribution sums to %.6f, want 1±1e-3", e.Sum)
}

// Adjust applies C3 to a base distribution: scale the draw probability
// by the bounded multiplier, floor/ceiling it to [0.12,0.38], then
// proportionally renormalize home/away so the result stays a valid PMF.
// Only the draw is modified directly; home and away move only through
// this proportional renormalization.
func Adjust(base kernel.Distribution, comps Components) (kernel.Distribution, error) {
	sum := base.PHome + base.PDraw + base.PAway
	if math.Abs(sum-1) > 1e-3 {
		return kernel.Distribution{}, ErrInvalidDistribution{Sum: sum}
	}

	mult := comps.Multiplier()
	pDraw := safenum.Clamp(base.PDraw*mult, 0.12, 0.38)
	remainder := 1 - pDraw

	var pHome, pAway float64
	if base.PHome+base.PAway > 0 {
		scale := remainder / (base.PHome + base.PAway)
		pHome = base.PHome * scale
		pAway = base.PAway * scale
	} else {
		pHome = remainder / 2
		pAway = remainder / 2
	}

	// Absorb residual floating-point error by renormalizing the triple.
	total := pHome + pDraw + pAway
	pHome /= total
	pDraw /= total
	pAway /= total

	return kernel.Distribution{
		PHome:   pHome,
		PDraw:   pDraw,
		PAway:   pAway,
		LamHome: base.LamHome,
		LamAway: base.LamAway,
		Entropy: kernel.Entropy(pHome, pDraw, pAway),
	}, nil
}
