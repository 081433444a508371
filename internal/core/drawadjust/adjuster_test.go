package drawadjust

import (
	"math"
	"testing"

	"github.com/charleschow/football-outrights/internal/core/kernel"
)

func dist(h, d, a float64) kernel.Distribution {
	return kernel.Distribution{PHome: h, PDraw: d, PAway: a}
}

func TestAdjustIdentityWithNeutralComponents(t *testing.T) {
	in := dist(0.45, 0.28, 0.27)
	out, err := Adjust(in, Neutral())
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if math.Abs(out.PHome-in.PHome) > 1e-6 || math.Abs(out.PDraw-in.PDraw) > 1e-6 || math.Abs(out.PAway-in.PAway) > 1e-6 {
		t.Errorf("neutral components should be identity, got %+v from %+v", out, in)
	}
}

func TestAdjustClampedMultiplier(t *testing.T) {
	in := dist(0.45, 0.28, 0.27)
	comps := Components{2, 2, 2, 2, 2, 2, 2, 2} // product saturates the 1.35 clip
	out, err := Adjust(in, comps)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if math.Abs(out.PDraw-0.378) > 1e-3 {
		t.Errorf("p_draw=%.6f, want ~0.378", out.PDraw)
	}
	if math.Abs(out.PHome-0.389) > 5e-3 {
		t.Errorf("p_home=%.6f, want ~0.389", out.PHome)
	}
	if math.Abs(out.PAway-0.233) > 5e-3 {
		t.Errorf("p_away=%.6f, want ~0.233", out.PAway)
	}
}

func TestAdjustDrawFloorWinsOverClipFloor(t *testing.T) {
	in := dist(0.5, 0.3, 0.2)
	comps := Components{0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3} // product saturates the 0.75 floor
	out, err := Adjust(in, comps)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if out.PDraw < 0.12-1e-9 {
		t.Errorf("p_draw=%.6f must not go below the 0.12 PMF floor", out.PDraw)
	}
}

func TestAdjustRejectsBadInputSum(t *testing.T) {
	_, err := Adjust(dist(0.5, 0.5, 0.5), Neutral())
	if err == nil {
		t.Fatal("expected ErrInvalidDistribution")
	}
}

func TestAdjustOutputAlwaysSumsToOne(t *testing.T) {
	in := dist(0.6, 0.2, 0.2)
	comps := Components{1.1, 0.9, 1.05, 1.0, 0.95, 1.02, 1.0, 1.1}
	out, err := Adjust(in, comps)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	sum := out.PHome + out.PDraw + out.PAway
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("output sums to %.9f, want 1±1e-6", sum)
	}
	if out.PHome < 0 || out.PAway < 0 {
		t.Errorf("home/away must stay non-negative, got h=%.6f a=%.6f", out.PHome, out.PAway)
	}
}
