package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
)

// Tracker status strings reported at the diagnostic boundary. They are
// human-readable only and never drive control decisions.
const (
	StatusNoSystem = "no system"

	StatusOptimal        = "optimal"
	StatusTooLow         = "too low"
	StatusTooHigh        = "too high"
	StatusCriticallyLow  = "critically low"
	StatusCriticallyHigh = "critically high"
)

// Optimal moisture bands per water type, as fractions of the level range.
var moistureBands = map[components.WaterType][2]float32{
	components.WaterDroughtResistant: {0.10, 0.40},
	components.WaterNormal:           {0.30, 0.70},
	components.WaterLoving:           {0.55, 0.85},
}

// NewMoisture creates a moisture tracker configured for the given water type.
// The level starts at the middle of the optimal band.
func NewMoisture(wt components.WaterType) components.Moisture {
	cfg := config.Cfg()
	m := components.Moisture{
		Min:      float32(cfg.Moisture.Min),
		Max:      float32(cfg.Moisture.Max),
		EvapRate: float32(cfg.Moisture.EvaporationRate),
	}
	SetWaterType(&m, wt)
	m.Level = (m.OptimalLow + m.OptimalHigh) / 2
	return m
}

// SetWaterType recomputes the optimal band from the lookup table.
// Idempotent; normally called once at initialization.
func SetWaterType(m *components.Moisture, wt components.WaterType) {
	band := moistureBands[wt]
	span := m.Max - m.Min
	m.WaterType = wt
	m.OptimalLow = m.Min + band[0]*span
	m.OptimalHigh = m.Min + band[1]*span
}

// TickMoisture applies passive evaporation.
func TickMoisture(m *components.Moisture, dt float32) {
	m.Level = clampFloat(m.Level-m.EvapRate*dt, m.Min, m.Max)
}

// AddWater adds water to the tracker. Out-of-range requests saturate;
// negative amounts drain.
func AddWater(m *components.Moisture, amount float32) {
	m.Level = clampFloat(m.Level+amount, m.Min, m.Max)
}

// SetWaterLevel sets the level directly, clamped to range.
func SetWaterLevel(m *components.Moisture, level float32) {
	m.Level = clampFloat(level, m.Min, m.Max)
}

// WaterStatus classifies the level against the optimal band. Levels past
// half the lower bound or one and a half times the upper bound are reported
// as critical.
func WaterStatus(m *components.Moisture) string {
	return bandStatus(m.Level, m.OptimalLow, m.OptimalHigh)
}

// MoistureSystem applies passive evaporation to all moisture trackers.
type MoistureSystem struct {
	filter *ecs.Filter1[components.Moisture]
}

// NewMoistureSystem creates the evaporation system.
func NewMoistureSystem(w *ecs.World) *MoistureSystem {
	return &MoistureSystem{filter: ecs.NewFilter1[components.Moisture](w)}
}

// Update evaporates one tick's worth of water from every tracker.
func (s *MoistureSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		TickMoisture(query.Get(), dt)
	}
}

// bandStatus is the shared ternary-with-severity classification used by the
// moisture and sunlight trackers.
func bandStatus(level, low, high float32) string {
	switch {
	case level < low*0.5:
		return StatusCriticallyLow
	case level < low:
		return StatusTooLow
	case level <= high:
		return StatusOptimal
	case level <= high*1.5:
		return StatusTooHigh
	default:
		return StatusCriticallyHigh
	}
}
