// Package rating implements C2 (the iterative attack/defense/home-advantage/rho
// estimator) and C4 (holdout validation and per-league calibration).
package rating

import "time"

// Match is spec.md §3's historical Match entity: the only input C2
// consumes. Read-only; the estimator never mutates a Match.
type Match struct {
	League    string
	Date      time.Time
	HomeID    string
	AwayID    string
	HomeGoals int
	AwayGoals int
}

// Config carries every C2/C4 tunable. The core accepts this typed
// record only — never a generic config map.
type Config struct {
	XiDecayRate             float64
	InitialHomeAdvantage    float64
	InitialRho              float64
	MaxIterations           int
	ConvergenceTolerance    float64
	TestSplitFraction       float64
	HomeGoalsZeroStabilizer float64
	HomeAdvantageMin        float64
	HomeAdvantageMax        float64
	RhoMin                  float64
	RhoMax                  float64
	ReferenceDate           time.Time // zero value means "use max training date"
}

// DefaultConfig returns the spec-documented defaults.
func DefaultConfig() Config {
	return Config{
		XiDecayRate:             0.00325,
		InitialHomeAdvantage:    0.25,
		InitialRho:              -0.05,
		MaxIterations:           200,
		ConvergenceTolerance:    1e-4,
		TestSplitFraction:       0.2,
		HomeGoalsZeroStabilizer: 0.5,
		HomeAdvantageMin:        0.1,
		HomeAdvantageMax:        0.6,
		RhoMin:                  -0.2,
		RhoMax:                  0,
	}
}

// TeamStrength is a single team's fitted attack/defense pair, plus
// whether it was calibrated from real matches or defaulted.
type TeamStrength struct {
	Attack       float64
	Defense      float64
	Uncalibrated bool
}

// FitArtifact is spec.md §3's FitArtifact entity: the estimator's sole
// output, immutable once produced, versioned and superseded atomically
// by NewPublisher (see publisher.go).
type FitArtifact struct {
	Version       int
	Teams         map[string]TeamStrength
	HomeAdvantage float64
	Rho           float64
	ReferenceDate time.Time
	Xi            float64
	Metadata      FitMetadata
}

// FitMetadata records how the fit converged, for observability and for
// the "fallback to configured rho" path (spec.md §4.2).
type FitMetadata struct {
	Iterations        int
	MaxDelta          float64
	Normalization     string // always "post_iteration_mean"
	RhoOptimizerUsed  bool
	RhoFallbackReason string
}

// Warning is a non-fatal per-match or per-team issue accumulated during
// a fit, per spec.md §4.2's failure semantics: the core never throws on
// a single bad match.
type Warning struct {
	Kind    string
	Detail  string
}

// Metrics is spec.md §4.2's validation output (C4).
type Metrics struct {
	Brier          float64
	LogLoss        float64
	Accuracy       float64
	DrawAccuracy   float64
	GoalsRMSE      float64
	HoldoutSize    int
	SkippedMatches int
}
