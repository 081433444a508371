package correlation

import "time"

type shockRecord struct {
	firstSeen time.Time
	reasons   []string
}

// ShockTracker debounces repeated late-shock detections for a single
// fixture across successive odds polls, the same pending→confirmed or
// pending→rejected structure used for score-drop detection elsewhere in
// the codebase, generalized here from score deltas to odds-drift
// reasons: a single triggered detection is held as "pending" until the
// same reason set has persisted for ConfirmWindow, or it reverses and is
// rejected.
type ShockTracker struct {
	ConfirmWindow time.Duration

	pending bool
	data    *shockRecord

	RejectedReasons []string
}

// NewShockTracker returns a tracker that confirms a shock once the same
// reason set has been observed continuously for window.
func NewShockTracker(window time.Duration) *ShockTracker {
	return &ShockTracker{ConfirmWindow: window}
}

// Check feeds one poll's raw detection through the debounce state
// machine and returns one of "accept" (no shock, nothing pending),
// "new_pending", "pending", "confirmed", or "rejected".
func (t *ShockTracker) Check(raw LateShock, now time.Time) string {
	if !raw.Triggered {
		if t.pending {
			t.RejectedReasons = t.data.reasons
			t.clear()
			return "rejected"
		}
		return "accept"
	}

	if t.data != nil {
		if sameReasons(t.data.reasons, raw.Reasons) {
			if now.Sub(t.data.firstSeen) >= t.ConfirmWindow {
				t.clear()
				return "confirmed"
			}
			return "pending"
		}
		t.data = &shockRecord{firstSeen: now, reasons: raw.Reasons}
		t.pending = true
		return "pending"
	}

	t.data = &shockRecord{firstSeen: now, reasons: raw.Reasons}
	t.pending = true
	return "new_pending"
}

func (t *ShockTracker) clear() {
	t.pending = false
	t.data = nil
}

// IsPending reports whether a shock is currently awaiting confirmation.
func (t *ShockTracker) IsPending() bool {
	return t.pending
}

func sameReasons(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, r := range a {
		seen[r] = true
	}
	for _, r := range b {
		if !seen[r] {
			return false
		}
	}
	return true
}
