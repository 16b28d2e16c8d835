package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
)

func TestTickIrritation_DecaysToZero(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Intensity: 10, Max: 100, DecayRate: 4}

	TickIrritation(&ir, 1.0)
	if !approxEq(ir.Intensity, 6) {
		t.Errorf("expected intensity 6 after decay, got %f", ir.Intensity)
	}

	TickIrritation(&ir, 10)
	if ir.Intensity != 0 {
		t.Errorf("intensity should floor at 0, got %f", ir.Intensity)
	}
}

func TestTouch_Saturates(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Intensity: 90, Max: 100}

	Touch(&ir, 50)
	if ir.Intensity != 100 {
		t.Errorf("touch should saturate at max, got %f", ir.Intensity)
	}
}

func TestTouchStatus_Buckets(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Max: 100}

	cases := []struct {
		intensity float32
		want      string
	}{
		{0, TouchStatusNone},
		{15, TouchStatusLight},
		{50, TouchStatusModerate},
		{70, TouchStatusFrequent},
		{100, TouchStatusFrequent},
	}
	for _, tc := range cases {
		ir.Intensity = tc.intensity
		if got := TouchStatus(&ir); got != tc.want {
			t.Errorf("status at %.0f: got %q, want %q", tc.intensity, got, tc.want)
		}
	}
}

func TestIrritationSystem_DecaysAllTrackers(t *testing.T) {
	ensureCache()
	w := newTestWorld()
	sys := NewIrritationSystem(w)
	mapper := ecs.NewMap1[components.Irritation](w)

	ir := components.Irritation{Intensity: 20, Max: 100, DecayRate: 5}
	e := mapper.NewEntity(&ir)

	sys.Update(2.0)

	if got := mapper.Get(e).Intensity; !approxEq(got, 10) {
		t.Errorf("expected intensity 10, got %f", got)
	}
}
