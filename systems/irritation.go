package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
)

// Touch status strings, bucketed by intensity.
const (
	TouchStatusNone     = "none"
	TouchStatusLight    = "light"
	TouchStatusModerate = "moderate"
	TouchStatusFrequent = "frequent"
)

// Intensity thresholds for TouchStatus, as fractions of max intensity.
const (
	touchLightCutoff    = 0.30
	touchModerateCutoff = 0.70
)

// NewIrritation creates a touch tracker starting at zero intensity.
func NewIrritation(likesTouch bool) components.Irritation {
	cfg := config.Cfg()
	return components.Irritation{
		Max:        float32(cfg.Touch.MaxIntensity),
		DecayRate:  float32(cfg.Touch.DecayRate),
		LikesTouch: likesTouch,
	}
}

// TickIrritation applies passive decay toward zero.
func TickIrritation(ir *components.Irritation, dt float32) {
	ir.Intensity -= ir.DecayRate * dt
	if ir.Intensity < 0 {
		ir.Intensity = 0
	}
}

// Touch adds intensity from a touch event, saturating at max. Plants without
// an irritation tracker are not touch-sensitive; callers skip them entirely.
func Touch(ir *components.Irritation, intensity float32) {
	ir.Intensity = clampFloat(ir.Intensity+intensity, 0, ir.Max)
}

// IrritationSystem applies passive decay to all touch trackers.
type IrritationSystem struct {
	filter *ecs.Filter1[components.Irritation]
}

// NewIrritationSystem creates the decay system.
func NewIrritationSystem(w *ecs.World) *IrritationSystem {
	return &IrritationSystem{filter: ecs.NewFilter1[components.Irritation](w)}
}

// Update decays one tick's worth of touch intensity from every tracker.
func (s *IrritationSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		TickIrritation(query.Get(), dt)
	}
}

// TouchStatus buckets the current intensity for diagnostics.
func TouchStatus(ir *components.Irritation) string {
	switch {
	case ir.Intensity <= 0:
		return TouchStatusNone
	case ir.Intensity < touchLightCutoff*ir.Max:
		return TouchStatusLight
	case ir.Intensity < touchModerateCutoff*ir.Max:
		return TouchStatusModerate
	default:
		return TouchStatusFrequent
	}
}
