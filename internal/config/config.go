package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every tunable for the rating estimator, draw adjuster
// and ticket generator, plus the ambient concerns (storage paths, log
// level) that surround them. Values default to the spec's documented
// bounds; orchestration overrides via environment (.env supported).
type Config struct {
	// C2 rating estimator
	XiDecayRate              float64 // ξ, per-day exponential time decay
	InitialHomeAdvantage     float64
	InitialRho               float64
	MaxIterations            int
	ConvergenceTolerance     float64
	TestSplitFraction        float64
	HomeGoalsZeroStabilizer  float64 // stabilizer substituted for log(0) in home-advantage re-estimation; see SPEC_FULL.md §9
	HomeAdvantageMin         float64
	HomeAdvantageMax         float64
	RhoMin                   float64
	RhoMax                   float64

	// C1 kernel
	ScoreGridMaxK   int
	TailMassEpsilon float64

	// C5 correlation
	CorrelationBreakThreshold       float64
	LeagueCorrelationBreakOverrides map[string]float64

	// Team name resolution
	TeamResolveThreshold float64 // minimum LCS-ratio similarity for fuzzy team-name matching

	// Storage
	MatchStoreDBPath       string
	CalibrationStoreDBPath string

	// Calibration
	MinCalibrationSample int

	// Telemetry
	LogLevel string
}

// Load reads configuration from the environment (and a .env file, if
// present), falling back to the spec-documented defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		XiDecayRate:             envFloat("XI_DECAY_RATE", 0.00325),
		InitialHomeAdvantage:    envFloat("INITIAL_HOME_ADVANTAGE", 0.25),
		InitialRho:              envFloat("INITIAL_RHO", -0.05),
		MaxIterations:           envInt("MAX_ITERATIONS", 200),
		ConvergenceTolerance:    envFloat("CONVERGENCE_TOLERANCE", 1e-4),
		TestSplitFraction:       envFloat("TEST_SPLIT_FRACTION", 0.2),
		HomeGoalsZeroStabilizer: envFloat("HOME_GOALS_ZERO_STABILIZER", 0.5),
		HomeAdvantageMin:        envFloat("HOME_ADVANTAGE_MIN", 0.1),
		HomeAdvantageMax:        envFloat("HOME_ADVANTAGE_MAX", 0.6),
		RhoMin:                  envFloat("RHO_MIN", -0.2),
		RhoMax:                  envFloat("RHO_MAX", 0.0),

		ScoreGridMaxK:   envInt("SCORE_GRID_MAX_K", 10),
		TailMassEpsilon: envFloat("TAIL_MASS_EPSILON", 1e-6),

		CorrelationBreakThreshold:       envFloat("CORRELATION_BREAK_THRESHOLD", 0.7),
		LeagueCorrelationBreakOverrides: map[string]float64{},

		TeamResolveThreshold: envFloat("TEAM_RESOLVE_THRESHOLD", 0.82),

		MatchStoreDBPath:       envStr("MATCH_STORE_DB_PATH", "data/matches.db"),
		CalibrationStoreDBPath: envStr("CALIBRATION_STORE_DB_PATH", "data/calibration.db"),

		MinCalibrationSample: envInt("MIN_CALIBRATION_SAMPLE", 50),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

// CorrelationBreakThresholdFor returns the per-league override for the
// "break correlated picks" knob from C6 step 7, falling back to the
// global default when no override is configured. The ticket generator
// does not read it: its correlation-breaking lane uses a fixed 0.7.
func (c *Config) CorrelationBreakThresholdFor(league string) float64 {
	if v, ok := c.LeagueCorrelationBreakOverrides[league]; ok {
		return v
	}
	return c.CorrelationBreakThreshold
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
