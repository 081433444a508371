package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureArtifact() *FitArtifact {
	return &FitArtifact{
		Teams: map[string]TeamStrength{
			"ARS": {Attack: 1.2, Defense: 0.8},
			"CHE": {Attack: 0.9, Defense: 1.1},
		},
		HomeAdvantage: 0.3,
		Rho:           -0.1,
	}
}

func TestValidateSkipsUnknownTeamsWithoutFailing(t *testing.T) {
	artifact := fixtureArtifact()
	holdout := []Match{
		{League: "EPL", Date: day(0), HomeID: "ARS", AwayID: "GHOST_FC", HomeGoals: 1, AwayGoals: 0},
		{League: "EPL", Date: day(1), HomeID: "ARS", AwayID: "CHE", HomeGoals: 2, AwayGoals: 1},
	}
	metrics, warnings := Validate(artifact, holdout, DefaultConfig())
	assert.Equal(t, 1, metrics.SkippedMatches)
	assert.Equal(t, 1, metrics.HoldoutSize)
	assert.NotEmpty(t, warnings)
}

func TestValidateReturnsZeroMetricsForEmptyHoldout(t *testing.T) {
	metrics, warnings := Validate(fixtureArtifact(), nil, DefaultConfig())
	assert.Equal(t, 0, metrics.HoldoutSize)
	assert.Empty(t, warnings)
}

func TestValidateAccumulatesBrierAndLogLossInRange(t *testing.T) {
	artifact := fixtureArtifact()
	holdout := []Match{
		{League: "EPL", Date: day(0), HomeID: "ARS", AwayID: "CHE", HomeGoals: 2, AwayGoals: 0},
		{League: "EPL", Date: day(1), HomeID: "CHE", AwayID: "ARS", HomeGoals: 0, AwayGoals: 0},
		{League: "EPL", Date: day(2), HomeID: "ARS", AwayID: "CHE", HomeGoals: 1, AwayGoals: 2},
	}
	metrics, _ := Validate(artifact, holdout, DefaultConfig())
	require.Equal(t, 3, metrics.HoldoutSize)
	assert.GreaterOrEqual(t, metrics.Brier, 0.0)
	assert.LessOrEqual(t, metrics.Brier, 2.0)
	assert.Greater(t, metrics.LogLoss, 0.0)
	assert.GreaterOrEqual(t, metrics.GoalsRMSE, 0.0)
}

func TestFitCalibrationSkipsLeaguesBelowMinSample(t *testing.T) {
	artifact := fixtureArtifact()
	holdout := []Match{
		{League: "EPL", Date: day(0), HomeID: "ARS", AwayID: "CHE", HomeGoals: 1, AwayGoals: 0},
	}
	tables := FitCalibration(artifact, holdout, 5)
	assert.Empty(t, tables)
}

func TestApplyPassesThroughWhenNoTablePublished(t *testing.T) {
	h, d, a := Apply(map[string]CalibrationTable{}, "EPL", 0.5, 0.3, 0.2)
	assert.Equal(t, 0.5, h)
	assert.Equal(t, 0.3, d)
	assert.Equal(t, 0.2, a)
}
