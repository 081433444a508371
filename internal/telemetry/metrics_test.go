package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterAddAndInc(t *testing.T) {
	var c Counter
	c.Inc()
	c.Add(4)
	assert.Equal(t, int64(5), c.Value())
}

func TestGaugeSetIncDec(t *testing.T) {
	var g Gauge
	g.Set(10)
	g.Inc()
	g.Dec()
	g.Dec()
	assert.Equal(t, int64(9), g.Value())
}

func TestLatencyTracker_PercentilesAndEviction(t *testing.T) {
	lt := NewLatencyTracker(3)
	for _, ms := range []int{10, 20, 30, 40} {
		lt.Record(time.Duration(ms) * time.Millisecond)
	}
	// oldest sample (10ms) should have been evicted, leaving 20/30/40
	assert.Equal(t, 30*time.Millisecond, lt.P50())
	assert.Equal(t, 40*time.Millisecond, lt.P99())
}

func TestLatencyTracker_EmptyIsZero(t *testing.T) {
	lt := NewLatencyTracker(10)
	assert.Equal(t, time.Duration(0), lt.P50())
}

func TestGlobalMetricsRegistryIsUsable(t *testing.T) {
	Metrics.MatchesLoaded.Add(3)
	assert.GreaterOrEqual(t, Metrics.MatchesLoaded.Value(), int64(3))
	Metrics.FitLatency.Record(5 * time.Millisecond)
	assert.GreaterOrEqual(t, Metrics.FitLatency.P50(), time.Duration(0))
}
