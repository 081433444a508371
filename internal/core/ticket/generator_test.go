package ticket

import (
	"math/rand"
	"testing"

	"github.com/charleschow/football-outrights/internal/core/correlation"
)

func strongHomeFixtures(n int) []FixtureView {
	fixtures := make([]FixtureView, n)
	for i := range fixtures {
		fixtures[i] = FixtureView{
			FixtureID:  string(rune('a' + i)),
			LambdaHome: 1.8,
			LambdaAway: 0.9,
			PHome:      0.60,
			PDraw:      0.25,
			PAway:      0.15,
			DrawOdds:   3.6,
		}
	}
	return fixtures
}

func TestGenerateBundleTicketLengthMatchesSlateSize(t *testing.T) {
	fixtures := strongHomeFixtures(13)
	gen := NewGenerator(rand.New(rand.NewSource(1)))
	bundle := gen.GenerateBundle(fixtures, nil, make([]correlation.LateShock, len(fixtures)), []string{"A"}, 3, "EPL")

	for _, tk := range bundle.Tickets {
		if len(tk.Picks) != len(fixtures) {
			t.Errorf("ticket length=%d, want %d", len(tk.Picks), len(fixtures))
		}
		for _, p := range tk.Picks {
			if p != PickHome && p != PickDraw && p != PickAway {
				t.Errorf("pick %q out of alphabet", p)
			}
		}
	}
}

func TestGenerateBundleRoleADrawsWithinBound(t *testing.T) {
	fixtures := strongHomeFixtures(13)
	gen := NewGenerator(rand.New(rand.NewSource(2)))
	bundle := gen.GenerateBundle(fixtures, nil, make([]correlation.LateShock, len(fixtures)), []string{"A"}, 4, "EPL")

	for _, tk := range bundle.Tickets {
		if tk.DrawCount > 1 {
			t.Errorf("role A ticket has %d draws, want <= 1", tk.DrawCount)
		}
	}
}

func TestGenerateBundleNeverExceedsRequestedCount(t *testing.T) {
	fixtures := strongHomeFixtures(10)
	gen := NewGenerator(rand.New(rand.NewSource(3)))
	bundle := gen.GenerateBundle(fixtures, nil, make([]correlation.LateShock, len(fixtures)), []string{"A", "B", "C"}, 5, "EPL")

	if len(bundle.Tickets) > 5 {
		t.Errorf("bundle has %d tickets, want <= 5", len(bundle.Tickets))
	}
}

func TestGenerateBundleMarksUnderpopulatedWhenBelowN(t *testing.T) {
	fixtures := strongHomeFixtures(2)
	gen := NewGenerator(rand.New(rand.NewSource(4)))
	gen.Policy.MinEVScore = 0.99 // impossible to clear, forces under-population
	bundle := gen.GenerateBundle(fixtures, nil, make([]correlation.LateShock, len(fixtures)), []string{"A"}, 3, "EPL")

	if !bundle.Underpopulated {
		t.Error("expected bundle to be marked underpopulated")
	}
	if len(bundle.Tickets) >= 3 {
		t.Errorf("expected fewer than 3 accepted tickets, got %d", len(bundle.Tickets))
	}
}

func TestChooseArchetypeFavoriteLock(t *testing.T) {
	fixtures := strongHomeFixtures(13)
	if got := ChooseArchetype(fixtures); got != ArchetypeFavoriteLock {
		t.Errorf("archetype=%v, want FAVORITE_LOCK", got)
	}
}

func TestChooseArchetypeDrawSelective(t *testing.T) {
	fixtures := make([]FixtureView, 10)
	for i := range fixtures {
		fixtures[i] = FixtureView{LambdaHome: 1.4, LambdaAway: 1.3, PHome: 0.35, PDraw: 0.33, PAway: 0.32, DrawOdds: 3.1, DCActive: true}
	}
	if got := ChooseArchetype(fixtures); got != ArchetypeDrawSelective {
		t.Errorf("archetype=%v, want DRAW_SELECTIVE", got)
	}
}

func TestVetoDrawSelectiveRejectsTooFewDraws(t *testing.T) {
	fixtures := make([]FixtureView, 4)
	for i := range fixtures {
		fixtures[i] = FixtureView{LambdaHome: 1.3, LambdaAway: 1.25, PHome: 0.34, PDraw: 0.33, PAway: 0.33, DrawOdds: 3.0, DCActive: true}
	}
	picks := []Pick{PickDraw, PickHome, PickHome, PickHome}
	if !VetoArchetype(ArchetypeDrawSelective, fixtures, picks) {
		t.Error("expected veto for only 1 draw")
	}
}

func TestBreakCorrelationsFlipsDuplicatePicksAboveThreshold(t *testing.T) {
	fixtures := []FixtureView{
		{PHome: 0.5, PDraw: 0.3, PAway: 0.2},
		{PHome: 0.5, PDraw: 0.3, PAway: 0.2},
	}
	picks := []Pick{PickHome, PickHome}
	corr := correlation.Build([]correlation.FixtureSignal{
		{League: "EPL", KickoffDay: 1}, {League: "EPL", KickoffDay: 1},
	}, func(string) correlation.Weights {
		return correlation.Weights{SameLeague: 1, KickoffProximity: 1}
	})
	breakCorrelations(picks, fixtures, Role{}, &corr, nil)
	if picks[0] == picks[1] {
		t.Error("expected duplicate picks above threshold to be broken")
	}
}

func TestHedgeShocksForcesDrawOnTriggeredFixture(t *testing.T) {
	fixtures := []FixtureView{{PHome: 0.6, PDraw: 0.25, PAway: 0.15}}
	picks := []Pick{PickHome}
	shocks := []correlation.LateShock{{Triggered: true, Reasons: []string{"home_drift_up"}}}
	hedgeShocks(picks, fixtures, Role{HedgeShocks: true}, nil, shocks)
	if picks[0] != PickDraw {
		t.Errorf("expected hedge to force draw, got %v", picks[0])
	}
}

func TestDefaultEVScorerCountsContradictions(t *testing.T) {
	fixtures := []FixtureView{{PHome: 0.7, PDraw: 0.2, PAway: 0.1}}
	scorer := NewDefaultEVScorer()
	_, contradictions := scorer.Score([]Pick{PickAway}, fixtures)
	if contradictions != 1 {
		t.Errorf("contradictions=%d, want 1", contradictions)
	}
}
