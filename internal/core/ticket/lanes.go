package ticket

import (
	"math"

	"github.com/charleschow/football-outrights/internal/core/correlation"
)

const strongFavoriteThreshold = 0.65
const favoritePickThreshold = 0.55

// lane is one ordered, named, bounded step of the repair loop (spec.md
// §4.6 steps 1-9), the same shape as the small composable guard checks
// used for order-placement gating elsewhere in the codebase: each lane
// inspects and may mutate the candidate, never more than the rule it
// owns.
type lane func(picks []Pick, fixtures []FixtureView, role Role, corr *correlation.Matrix, shocks []correlation.LateShock)

// seedFavorites implements step 1: argmax of each fixture's
// distribution.
func seedFavorites(fixtures []FixtureView) []Pick {
	picks := make([]Pick, len(fixtures))
	for i, f := range fixtures {
		picks[i] = f.Favorite()
	}
	return picks
}

// ensureMinDraws implements step 2.
func ensureMinDraws(picks []Pick, fixtures []FixtureView, role Role, _ *correlation.Matrix, _ []correlation.LateShock) {
	for countPicks(picks, PickDraw) < role.MinDraws {
		idx := -1
		best := -1.0
		for i, p := range picks {
			if p == PickDraw {
				continue
			}
			if fixtures[i].PDraw > best {
				best = fixtures[i].PDraw
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		picks[idx] = PickDraw
	}
}

// capMaxDraws implements step 3: flip the weakest draw back to the
// higher of home/away.
func capMaxDraws(picks []Pick, fixtures []FixtureView, role Role, _ *correlation.Matrix, _ []correlation.LateShock) {
	for countPicks(picks, PickDraw) > role.MaxDraws {
		idx := -1
		worst := math.MaxFloat64
		for i, p := range picks {
			if p != PickDraw {
				continue
			}
			if fixtures[i].PDraw < worst {
				worst = fixtures[i].PDraw
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		f := fixtures[idx]
		if f.PHome >= f.PAway {
			picks[idx] = PickHome
		} else {
			picks[idx] = PickAway
		}
	}
}

func isFavoritePick(f FixtureView, p Pick) bool {
	return p == f.Favorite() && f.MaxProb() >= favoritePickThreshold
}

func isUnderdogPick(f FixtureView, p Pick) bool {
	return p != f.Favorite() && f.ProbFor(p) == minOfThree(f.PHome, f.PDraw, f.PAway)
}

func minOfThree(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// capMaxFavorites implements step 4: convert the strongest favorite to
// X.
func capMaxFavorites(picks []Pick, fixtures []FixtureView, role Role, _ *correlation.Matrix, _ []correlation.LateShock) {
	for countFavorites(picks, fixtures) > role.MaxFavorites {
		idx := -1
		best := -1.0
		for i, p := range picks {
			if !isFavoritePick(fixtures[i], p) {
				continue
			}
			if fixtures[i].MaxProb() > best {
				best = fixtures[i].MaxProb()
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		picks[idx] = PickDraw
	}
}

// ensureMinUnderdogs implements step 5.
func ensureMinUnderdogs(picks []Pick, fixtures []FixtureView, role Role, _ *correlation.Matrix, _ []correlation.LateShock) {
	for countUnderdogs(picks, fixtures) < role.MinUnderdogs {
		idx := -1
		cheapest := math.MaxFloat64
		for i, f := range fixtures {
			if isUnderdogPick(f, picks[i]) {
				continue
			}
			underdogProb := minOfThree(f.PHome, f.PDraw, f.PAway)
			cost := f.ProbFor(picks[i]) - underdogProb
			if cost < cheapest {
				cheapest = cost
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		picks[idx] = underdogPickFor(fixtures[idx])
	}
}

func underdogPickFor(f FixtureView) Pick {
	if f.PHome <= f.PDraw && f.PHome <= f.PAway {
		return PickHome
	}
	if f.PAway <= f.PHome && f.PAway <= f.PDraw {
		return PickAway
	}
	return PickDraw
}

// hedgeShocks implements step 6: for a role that hedges shocks, force
// each triggered fixture's pick to X, or flip it if it is already X.
func hedgeShocks(picks []Pick, fixtures []FixtureView, role Role, _ *correlation.Matrix, shocks []correlation.LateShock) {
	if !role.HedgeShocks {
		return
	}
	for i, shock := range shocks {
		if i >= len(picks) || !shock.Triggered {
			continue
		}
		if picks[i] != PickDraw {
			picks[i] = PickDraw
			continue
		}
		f := fixtures[i]
		if f.PHome >= f.PAway {
			picks[i] = PickAway
		} else {
			picks[i] = PickHome
		}
	}
}

// breakCorrelations implements step 7: break any pairwise correlation
// above 0.7 where both picks are identical.
func breakCorrelations(picks []Pick, fixtures []FixtureView, _ Role, corr *correlation.Matrix, _ []correlation.LateShock) {
	if corr == nil {
		return
	}
	n := len(picks)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if corr.At(i, j) <= 0.7 || picks[i] != picks[j] {
				continue
			}
			f := fixtures[j]
			if f.PDraw > 0.25 {
				picks[j] = PickDraw
			} else if f.PHome >= f.PAway {
				picks[j] = PickHome
			} else {
				picks[j] = PickAway
			}
		}
	}
}

// adjustEntropy implements step 8: nudge normalized ticket entropy into
// the role's target band by adding or removing one draw.
func adjustEntropy(picks []Pick, fixtures []FixtureView, role Role, _ *correlation.Matrix, _ []correlation.LateShock) {
	entropy := ticketEntropy(picks)
	if entropy < role.EntropyBandLow {
		idx := -1
		best := -1.0
		for i, p := range picks {
			if p == PickDraw {
				continue
			}
			if fixtures[i].PDraw > best {
				best = fixtures[i].PDraw
				idx = i
			}
		}
		if idx >= 0 {
			picks[idx] = PickDraw
		}
		return
	}
	if entropy > role.EntropyBandHigh {
		idx := -1
		worst := math.MaxFloat64
		for i, p := range picks {
			if p != PickDraw {
				continue
			}
			if fixtures[i].PDraw < worst {
				worst = fixtures[i].PDraw
				idx = i
			}
		}
		if idx >= 0 {
			f := fixtures[idx]
			if f.PHome >= f.PAway {
				picks[idx] = PickHome
			} else {
				picks[idx] = PickAway
			}
		}
	}
}

// favoriteHedgeGuarantee implements step 9: at least one strong
// favorite (p_max >= 0.65) must not be taken on its favorite side.
func favoriteHedgeGuarantee(picks []Pick, fixtures []FixtureView, _ Role, _ *correlation.Matrix, _ []correlation.LateShock) {
	for i, f := range fixtures {
		if f.MaxProb() >= strongFavoriteThreshold && picks[i] != f.Favorite() {
			return
		}
	}
	idx := -1
	best := -1.0
	for i, f := range fixtures {
		if f.MaxProb() >= strongFavoriteThreshold && f.MaxProb() > best {
			best = f.MaxProb()
			idx = i
		}
	}
	if idx < 0 {
		return
	}
	f := fixtures[idx]
	if f.Favorite() == PickDraw {
		if f.PHome >= f.PAway {
			picks[idx] = PickHome
		} else {
			picks[idx] = PickAway
		}
		return
	}
	picks[idx] = PickDraw
}

func countPicks(picks []Pick, want Pick) int {
	n := 0
	for _, p := range picks {
		if p == want {
			n++
		}
	}
	return n
}

func countFavorites(picks []Pick, fixtures []FixtureView) int {
	n := 0
	for i, p := range picks {
		if isFavoritePick(fixtures[i], p) {
			n++
		}
	}
	return n
}

func countUnderdogs(picks []Pick, fixtures []FixtureView) int {
	n := 0
	for i, p := range picks {
		if isUnderdogPick(fixtures[i], p) {
			n++
		}
	}
	return n
}

// ticketEntropy is the normalized (log-base-3) entropy of the ticket's
// own pick distribution across {1,X,2}.
func ticketEntropy(picks []Pick) float64 {
	if len(picks) == 0 {
		return 0
	}
	counts := map[Pick]int{}
	for _, p := range picks {
		counts[p]++
	}
	n := float64(len(picks))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		if p <= 0 {
			continue
		}
		h -= p * math.Log(p)
	}
	return h / math.Log(3)
}

// repairLanes is the ordered pipeline run on every repair-loop attempt.
var repairLanes = []lane{
	ensureMinDraws,
	capMaxDraws,
	capMaxFavorites,
	ensureMinUnderdogs,
	hedgeShocks,
	breakCorrelations,
	adjustEntropy,
	favoriteHedgeGuarantee,
}
