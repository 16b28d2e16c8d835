package systems

import "github.com/pthm-cable/grove/config"

// Cached tuning values read on every tick. Reading config.Cfg() per entity
// per tick is measurable overhead, so hot-path values are cached here.
var (
	cacheInitialized bool

	cachedOptimalGain     float32
	cachedUnderPenalty    float32
	cachedOverPenalty     float32
	cachedAmbientDecay    float32
	cachedTouchComfortCap float32
	cachedTouchCalmCap    float32

	cachedGrowthHealthThreshold float32

	cachedExposureRate   float32
	cachedShadeDecayRate float32
)

// InitTuningCache loads hot-path tuning values from the global config.
// Must be called after config.Init and before the first tick.
func InitTuningCache() {
	cfg := config.Cfg()

	cachedOptimalGain = float32(cfg.Health.OptimalGain)
	cachedUnderPenalty = float32(cfg.Health.UnderPenalty)
	cachedOverPenalty = float32(cfg.Health.OverPenalty)
	cachedAmbientDecay = float32(cfg.Health.AmbientDecay)
	cachedTouchComfortCap = float32(cfg.Health.TouchComfortCap)
	cachedTouchCalmCap = float32(cfg.Health.TouchCalmCap)

	cachedGrowthHealthThreshold = float32(cfg.Growth.HealthThreshold)

	cachedExposureRate = float32(cfg.Sunlight.ExposureRate)
	cachedShadeDecayRate = float32(cfg.Sunlight.ShadeDecayRate)

	cacheInitialized = true
}
