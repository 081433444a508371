package correlation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShockTracker_NewPendingThenConfirmed(t *testing.T) {
	tr := NewShockTracker(10 * time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	shock := LateShock{Triggered: true, Reasons: []string{"draw_collapse"}}

	assert.Equal(t, "new_pending", tr.Check(shock, base))
	assert.True(t, tr.IsPending())

	assert.Equal(t, "pending", tr.Check(shock, base.Add(5*time.Minute)))
	assert.Equal(t, "confirmed", tr.Check(shock, base.Add(11*time.Minute)))
	assert.False(t, tr.IsPending())
}

func TestShockTracker_RejectsWhenDetectionReverses(t *testing.T) {
	tr := NewShockTracker(10 * time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	shock := LateShock{Triggered: true, Reasons: []string{"home_drift_up"}}

	tr.Check(shock, base)
	result := tr.Check(LateShock{Triggered: false}, base.Add(time.Minute))
	assert.Equal(t, "rejected", result)
	assert.Equal(t, []string{"home_drift_up"}, tr.RejectedReasons)
	assert.False(t, tr.IsPending())
}

func TestShockTracker_NoDetection_Accepts(t *testing.T) {
	tr := NewShockTracker(10 * time.Minute)
	assert.Equal(t, "accept", tr.Check(LateShock{Triggered: false}, time.Now()))
}

func TestShockTracker_ReasonChangeRestartsWindow(t *testing.T) {
	tr := NewShockTracker(10 * time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tr.Check(LateShock{Triggered: true, Reasons: []string{"away_drift_up"}}, base)
	result := tr.Check(LateShock{Triggered: true, Reasons: []string{"draw_inflate"}}, base.Add(time.Minute))
	assert.Equal(t, "pending", result)
	assert.True(t, tr.IsPending())
}
