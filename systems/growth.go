package systems

import (
	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
)

// GrowthPolicy decides how sustained good conditions turn into stage
// transitions. Two policies exist: the canonical staged gate and a legacy
// linear accumulation kept selectable via config.
type GrowthPolicy interface {
	// Advance updates the plant's growth bookkeeping for one tick.
	// healthGood is true when health clears the growth threshold; optimal
	// additionally requires every attached tracker inside its band.
	// Reports whether the stage advanced and whether max growth was reached.
	Advance(h *components.Health, healthGood, optimal bool, dt float32) (stageUp, reachedMax bool)

	// Progress reports combined fractional growth in [0,1].
	Progress(h *components.Health) float32
}

// NewGrowthPolicy builds the policy selected by the config.
func NewGrowthPolicy(cfg *config.Config) GrowthPolicy {
	if cfg.Growth.Policy == "linear" {
		return &LinearGrowth{Rate: float32(cfg.Growth.LinearRate)}
	}
	return &StagedGrowth{
		CheckInterval:       float32(cfg.Growth.CheckInterval),
		RequiredOptimalTime: float32(cfg.Growth.RequiredOptimalTime),
	}
}

// StagedGrowth is the canonical time-gated policy. The gate is evaluated on
// a fixed interval, decoupled from the tick rate: each passing evaluation
// accrues one interval of optimal time, and a single failing evaluation
// zeroes the accumulator.
type StagedGrowth struct {
	CheckInterval       float32
	RequiredOptimalTime float32
}

// Advance drains every interval accrued in dt, so evaluations keep pace
// with simulated time even when a single step spans several intervals.
func (p *StagedGrowth) Advance(h *components.Health, healthGood, optimal bool, dt float32) (stageUp, reachedMax bool) {
	if p.CheckInterval <= 0 {
		return false, false
	}

	h.SinceCheck += dt
	for h.SinceCheck >= p.CheckInterval {
		h.SinceCheck -= p.CheckInterval

		if !optimal {
			h.TimeInOptimal = 0
			continue
		}
		h.TimeInOptimal += p.CheckInterval

		if h.MaxGrowthReached || h.Stage >= h.MaxStage {
			continue
		}
		if h.TimeInOptimal < p.RequiredOptimalTime {
			continue
		}

		h.Stage++
		h.TimeInOptimal = 0
		stageUp = true
		if h.Stage >= h.MaxStage {
			h.MaxGrowthReached = true
			reachedMax = true
		}
	}
	return stageUp, reachedMax
}

// Progress combines completed stages with the accumulated fraction of the
// current one.
func (p *StagedGrowth) Progress(h *components.Health) float32 {
	if h.MaxGrowthReached {
		return 1
	}
	frac := float32(0)
	if p.RequiredOptimalTime > 0 {
		frac = clamp01(h.TimeInOptimal / p.RequiredOptimalTime)
	}
	return (float32(h.Stage-1) + frac) / float32(h.MaxStage)
}

// LinearGrowth is the legacy policy: growth accrues continuously whenever
// health clears the threshold, with no time gate and no reset on bad
// samples. Stages derive from the accumulated value.
type LinearGrowth struct {
	Rate float32 // stages per second while healthy
}

// Advance accrues growth and derives the stage.
func (p *LinearGrowth) Advance(h *components.Health, healthGood, optimal bool, dt float32) (bool, bool) {
	if !healthGood || h.MaxGrowthReached {
		return false, false
	}

	limit := float32(h.MaxStage - 1)
	h.Growth += p.Rate * dt
	if h.Growth > limit {
		h.Growth = limit
	}

	stage := uint8(1) + uint8(h.Growth)
	if stage > h.MaxStage {
		stage = h.MaxStage
	}
	if stage <= h.Stage {
		return false, false
	}

	h.Stage = stage
	if h.Stage >= h.MaxStage {
		h.MaxGrowthReached = true
		return true, true
	}
	return true, false
}

// Progress reports accumulated growth against the stage range.
func (p *LinearGrowth) Progress(h *components.Health) float32 {
	if h.MaxGrowthReached || h.MaxStage <= 1 {
		return 1
	}
	return clamp01(h.Growth / float32(h.MaxStage-1))
}
