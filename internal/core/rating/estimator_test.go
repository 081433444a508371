package rating

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func sampleMatches() []Match {
	teams := []string{"ARS", "CHE", "LIV", "MCI"}
	var matches []Match
	idx := 0
	for round := 0; round < 6; round++ {
		for i, home := range teams {
			away := teams[(i+1+round)%len(teams)]
			if home == away {
				continue
			}
			matches = append(matches, Match{
				League:    "EPL",
				Date:      day(idx),
				HomeID:    home,
				AwayID:    away,
				HomeGoals: (idx*7 + round) % 4,
				AwayGoals: (idx*3 + round) % 3,
			})
			idx++
		}
	}
	return matches
}

func TestFitRejectsEmptyInput(t *testing.T) {
	_, _, _, err := Fit(context.Background(), nil, DefaultConfig(), NewGoldenSectionOptimizer(), nil)
	require.Error(t, err)
	var empty ErrEmptyInput
	require.ErrorAs(t, err, &empty)
}

func TestFitRejectsDegenerateSingleTeamMatch(t *testing.T) {
	matches := []Match{{League: "EPL", Date: day(0), HomeID: "ARS", AwayID: "ARS", HomeGoals: 1, AwayGoals: 1}}
	_, _, _, err := Fit(context.Background(), matches, DefaultConfig(), NewGoldenSectionOptimizer(), nil)
	require.Error(t, err)
	var degenerate ErrDegenerate
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 1, degenerate.TeamCount)
}

func TestFitNeverPanicsOnZeroGoalMatches(t *testing.T) {
	matches := sampleMatches()
	assert.NotPanics(t, func() {
		_, _, _, err := Fit(context.Background(), matches, DefaultConfig(), NewGoldenSectionOptimizer(), nil)
		require.NoError(t, err)
	})
}

func TestFitNormalizesAttackAndDefenseToMeanOne(t *testing.T) {
	matches := sampleMatches()
	artifact, _, _, err := Fit(context.Background(), matches, DefaultConfig(), NewGoldenSectionOptimizer(), nil)
	require.NoError(t, err)

	var attackSum, defenseSum float64
	for _, ts := range artifact.Teams {
		attackSum += ts.Attack
		defenseSum += ts.Defense
	}
	n := float64(len(artifact.Teams))
	assert.InDelta(t, 1.0, attackSum/n, 1e-3)
	assert.InDelta(t, 1.0, defenseSum/n, 1e-3)
}

func TestFitHomeAdvantageAndRhoStayInBounds(t *testing.T) {
	cfg := DefaultConfig()
	matches := sampleMatches()
	artifact, _, _, err := Fit(context.Background(), matches, cfg, NewGoldenSectionOptimizer(), nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, artifact.HomeAdvantage, cfg.HomeAdvantageMin)
	assert.LessOrEqual(t, artifact.HomeAdvantage, cfg.HomeAdvantageMax)
	assert.GreaterOrEqual(t, artifact.Rho, cfg.RhoMin)
	assert.LessOrEqual(t, artifact.Rho, cfg.RhoMax)
}

func TestFitIsOrderIndependentGivenShuffledInput(t *testing.T) {
	matches := sampleMatches()
	shuffled := make([]Match, len(matches))
	copy(shuffled, matches)
	for i, j := 0, len(shuffled)-1; i < j; i, j = i+1, j-1 {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	cfg := DefaultConfig()
	cfg.ReferenceDate = day(1000)
	opt := NewGoldenSectionOptimizer()

	a1, _, _, err := Fit(context.Background(), matches, cfg, opt, nil)
	require.NoError(t, err)
	a2, _, _, err := Fit(context.Background(), shuffled, cfg, opt, nil)
	require.NoError(t, err)

	for id, ts := range a1.Teams {
		other, ok := a2.Teams[id]
		require.True(t, ok)
		assert.InDelta(t, ts.Attack, other.Attack, 1e-9)
		assert.InDelta(t, ts.Defense, other.Defense, 1e-9)
	}
	assert.InDelta(t, a1.HomeAdvantage, a2.HomeAdvantage, 1e-9)
}

func TestFitFlagsUncalibratedTeamsWithNoTrainingMatches(t *testing.T) {
	matches := sampleMatches()
	// NEW plays only the latest match, which the default split puts in
	// the holdout, so it has no training matches.
	matches = append(matches, Match{League: "EPL", Date: day(1000), HomeID: "ARS", AwayID: "NEW", HomeGoals: 0, AwayGoals: 0})
	cfg := DefaultConfig()
	artifact, _, warnings, err := Fit(context.Background(), matches, cfg, NewGoldenSectionOptimizer(), nil)
	require.NoError(t, err)
	require.Contains(t, artifact.Teams, "NEW")
	assert.True(t, artifact.Teams["NEW"].Uncalibrated)
	assert.False(t, artifact.Teams["ARS"].Uncalibrated)
	assert.Contains(t, warnings, Warning{Kind: "uncalibrated_team", Detail: "NEW"})
}

func TestFitRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := Fit(ctx, sampleMatches(), DefaultConfig(), NewGoldenSectionOptimizer(), nil)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestFitEmitsProgress(t *testing.T) {
	var calls int
	_, _, _, err := Fit(context.Background(), sampleMatches(), DefaultConfig(), NewGoldenSectionOptimizer(), func(p Progress) {
		calls++
		assert.False(t, math.IsNaN(p.MaxDelta))
	})
	require.NoError(t, err)
	assert.Greater(t, calls, 0)
}

func TestPredictFallsBackToNeutralForUnknownTeam(t *testing.T) {
	artifact := &FitArtifact{
		Teams:         map[string]TeamStrength{"ARS": {Attack: 1.1, Defense: 0.9}},
		HomeAdvantage: 0.3,
		Rho:           -0.1,
	}
	dist, err := Predict(artifact, "ARS", "UNKNOWN_TEAM", 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dist.PHome+dist.PDraw+dist.PAway, 1e-6)
}
