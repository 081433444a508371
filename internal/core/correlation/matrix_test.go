package correlation

import (
	"testing"
	"time"
)

func TestBuildMatrixDiagonalIsOne(t *testing.T) {
	signals := []FixtureSignal{
		{League: "EPL", KickoffDay: 1, LambdaTotal: 2.5, DrawSignal: 0.27},
		{League: "LIGA", KickoffDay: 1, LambdaTotal: 2.1, DrawSignal: 0.25},
	}
	m := Build(signals, func(string) Weights { return DefaultWeights() })
	for i := range signals {
		if m.At(i, i) != 1 {
			t.Errorf("diagonal[%d]=%.4f, want 1", i, m.At(i, i))
		}
	}
}

func TestBuildMatrixIsSymmetric(t *testing.T) {
	signals := []FixtureSignal{
		{League: "EPL", KickoffDay: 1, KickoffHour: 15, LambdaTotal: 2.5, DrawSignal: 0.27},
		{League: "EPL", KickoffDay: 1, KickoffHour: 17, LambdaTotal: 2.4, DrawSignal: 0.28},
		{League: "SERIE_A", KickoffDay: 2, KickoffHour: 20, LambdaTotal: 1.8, DrawSignal: 0.30},
	}
	m := Build(signals, func(string) Weights { return DefaultWeights() })
	for i := range signals {
		for j := range signals {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("matrix not symmetric at (%d,%d): %.4f vs %.4f", i, j, m.At(i, j), m.At(j, i))
			}
		}
	}
}

func TestBuildMatrixBumpsSameLeagueAndCloseKickoff(t *testing.T) {
	close := []FixtureSignal{
		{League: "EPL", KickoffDay: 1, KickoffHour: 15, LambdaTotal: 2.5, DrawSignal: 0.27},
		{League: "EPL", KickoffDay: 1, KickoffHour: 15.5, LambdaTotal: 2.48, DrawSignal: 0.27},
	}
	far := []FixtureSignal{
		{League: "EPL", KickoffDay: 1, KickoffHour: 15, LambdaTotal: 2.5, DrawSignal: 0.27},
		{League: "SERIE_A", KickoffDay: 9, KickoffHour: 20, LambdaTotal: 1.0, DrawSignal: 0.60},
	}
	closeM := Build(close, func(string) Weights { return DefaultWeights() })
	farM := Build(far, func(string) Weights { return DefaultWeights() })
	if closeM.At(0, 1) <= farM.At(0, 1) {
		t.Errorf("expected closer pair to score higher: close=%.4f far=%.4f", closeM.At(0, 1), farM.At(0, 1))
	}
}

func TestDetectLateShockRequiresBothDriftAndDisagreement(t *testing.T) {
	odds := OddsSnapshot{OpenHome: 2.0, OpenDraw: 3.3, OpenAway: 4.0, CloseHome: 1.7, CloseDraw: 3.5, CloseAway: 5.0}
	model := ModelProbabilities{PHome: 0.40, PDraw: 0.30, PAway: 0.30}
	shock := Detect(odds, model, DefaultThresholds())
	if !shock.Triggered {
		t.Fatal("expected shock to trigger on large drift + disagreement")
	}
	if len(shock.Reasons) == 0 {
		t.Error("expected at least one reason tag")
	}
}

func TestDetectLateShockNeutralOnStableOdds(t *testing.T) {
	odds := OddsSnapshot{OpenHome: 2.0, OpenDraw: 3.3, OpenAway: 4.0, CloseHome: 2.02, CloseDraw: 3.28, CloseAway: 3.98}
	model := ModelProbabilities{PHome: 1.0 / 2.0, PDraw: 1.0 / 3.3, PAway: 1.0 / 4.0}
	shock := Detect(odds, model, DefaultThresholds())
	if shock.Triggered {
		t.Errorf("expected no shock on stable odds, got reasons %v", shock.Reasons)
	}
}

func TestShockTrackerRequiresConfirmWindow(t *testing.T) {
	tracker := NewShockTracker(2 * time.Second)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	shock := LateShock{Triggered: true, Reasons: []string{"draw_collapse"}}

	if got := tracker.Check(shock, now); got != "new_pending" {
		t.Fatalf("first check = %q, want new_pending", got)
	}
	if got := tracker.Check(shock, now.Add(time.Second)); got != "pending" {
		t.Fatalf("second check within window = %q, want pending", got)
	}
	if got := tracker.Check(shock, now.Add(3*time.Second)); got != "confirmed" {
		t.Fatalf("check past window = %q, want confirmed", got)
	}
	if tracker.IsPending() {
		t.Error("tracker should not be pending after confirmation")
	}
}

func TestShockTrackerRejectsWhenTriggerReverses(t *testing.T) {
	tracker := NewShockTracker(5 * time.Second)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	shock := LateShock{Triggered: true, Reasons: []string{"home_drift_up"}}

	tracker.Check(shock, now)
	got := tracker.Check(LateShock{Triggered: false}, now.Add(time.Second))
	if got != "rejected" {
		t.Fatalf("reversal check = %q, want rejected", got)
	}
	if len(tracker.RejectedReasons) == 0 {
		t.Error("expected RejectedReasons to be populated")
	}
}
