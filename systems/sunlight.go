package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
)

// Optimal sunlight bands per light type, as fractions of the level range.
var sunlightBands = map[components.LightType][2]float32{
	components.LightShade:      {0.10, 0.40},
	components.LightPartialSun: {0.30, 0.70},
	components.LightFullSun:    {0.60, 0.95},
}

// NewSunlight creates a sunlight tracker configured for the given light type.
// The level starts at the middle of the optimal band.
func NewSunlight(lt components.LightType) components.Sunlight {
	cfg := config.Cfg()
	s := components.Sunlight{
		Min: float32(cfg.Sunlight.Min),
		Max: float32(cfg.Sunlight.Max),
	}
	SetLightType(&s, lt)
	s.Level = (s.OptimalLow + s.OptimalHigh) / 2
	return s
}

// SetLightType recomputes the optimal band from the lookup table.
// Idempotent; normally called once at initialization.
func SetLightType(s *components.Sunlight, lt components.LightType) {
	band := sunlightBands[lt]
	span := s.Max - s.Min
	s.LightType = lt
	s.OptimalLow = s.Min + band[0]*span
	s.OptimalHigh = s.Min + band[1]*span
}

// ReceiveSunlight adds exposure to the tracker. Amounts may be negative to
// model ambient shade decay; the level saturates at the range bounds.
func ReceiveSunlight(s *components.Sunlight, amount float32) {
	s.Level = clampFloat(s.Level+amount, s.Min, s.Max)
}

// LightStatus classifies the level against the optimal band.
func LightStatus(s *components.Sunlight) string {
	return bandStatus(s.Level, s.OptimalLow, s.OptimalHigh)
}

// SunlightSystem distributes the clock's sun output to all plants with a
// sunlight tracker, applying the occlusion test per plant.
type SunlightSystem struct {
	filter *ecs.Filter2[components.Position, components.Sunlight]
	clock  *DayNightCycle
	field  *OcclusionField
}

// NewSunlightSystem creates a distribution system reading from the given
// clock and occlusion field. The field may be nil for an unshaded garden.
func NewSunlightSystem(w *ecs.World, clock *DayNightCycle, field *OcclusionField) *SunlightSystem {
	return &SunlightSystem{
		filter: ecs.NewFilter2[components.Position, components.Sunlight](w),
		clock:  clock,
		field:  field,
	}
}

// Update delivers one tick of exposure. A plant in shade, or any plant at
// night, receives the small negative ambient adjustment instead.
func (s *SunlightSystem) Update(dt float32) {
	intensity := s.clock.SunIntensity()

	query := s.filter.Query()
	for query.Next() {
		pos, sun := query.Get()

		light := intensity
		if s.field != nil {
			light *= s.field.SampleLight(pos.X, pos.Y)
		}

		if light > 0 {
			ReceiveSunlight(sun, light*cachedExposureRate*dt)
		} else {
			ReceiveSunlight(sun, -cachedShadeDecayRate*dt)
		}
	}
}
