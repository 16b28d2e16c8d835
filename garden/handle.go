package garden

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
	"github.com/pthm-cable/grove/systems"
	"github.com/pthm-cable/grove/telemetry"
)

// PlantHandle is the per-plant surface for the input and diagnostic
// boundaries. All calls are synchronous and expected from the tick context.
type PlantHandle struct {
	g       *Garden
	entity  ecs.Entity
	id      uint32
	species string
}

// ID returns the plant's identifier.
func (p *PlantHandle) ID() uint32 { return p.id }

// Species returns the plant's species name.
func (p *PlantHandle) Species() string { return p.species }

// AddWater injects a watering event. The amount saturates at the tracker
// range; plants without a moisture tracker ignore it.
func (p *PlantHandle) AddWater(amount float32) {
	if !p.g.moistMap.HasAll(p.entity) {
		return
	}
	systems.AddWater(p.g.moistMap.Get(p.entity), amount)
	p.g.collector.Record(telemetry.NewWateredEvent(p.g.tick, p.id, amount))
}

// Water waters the plant with the configured default amount.
func (p *PlantHandle) Water() {
	p.AddWater(float32(config.Cfg().Moisture.DefaultAmount))
}

// SetWaterLevel sets the moisture level directly, clamped to range.
func (p *PlantHandle) SetWaterLevel(level float32) {
	if !p.g.moistMap.HasAll(p.entity) {
		return
	}
	systems.SetWaterLevel(p.g.moistMap.Get(p.entity), level)
}

// Touch injects a touch event. Plants without an irritation tracker are not
// touch-sensitive and ignore it.
func (p *PlantHandle) Touch(intensity float32) {
	if !p.g.irritMap.HasAll(p.entity) {
		return
	}
	systems.Touch(p.g.irritMap.Get(p.entity), intensity)
	p.g.collector.Record(telemetry.NewTouchedEvent(p.g.tick, p.id, intensity))
}

// TouchDefault touches the plant with the configured default intensity.
func (p *PlantHandle) TouchDefault() {
	p.Touch(float32(config.Cfg().Touch.DefaultIntensity))
}

// ReceiveSunlight injects light exposure directly, bypassing the clock.
// Amounts may be negative.
func (p *PlantHandle) ReceiveSunlight(amount float32) {
	if !p.g.sunMap.HasAll(p.entity) {
		return
	}
	systems.ReceiveSunlight(p.g.sunMap.Get(p.entity), amount)
}

// Health returns the current health value.
func (p *PlantHandle) Health() float32 {
	return p.g.healthMap.Get(p.entity).Value
}

// Stage returns the current growth stage.
func (p *PlantHandle) Stage() uint8 {
	return p.g.healthMap.Get(p.entity).Stage
}

// Dead reports whether the plant has died.
func (p *PlantHandle) Dead() bool {
	return p.g.healthMap.Get(p.entity).Dead
}

// MaxGrowthReached reports whether the plant finished growing.
func (p *PlantHandle) MaxGrowthReached() bool {
	return p.g.healthMap.Get(p.entity).MaxGrowthReached
}

// GrowthProgress returns combined fractional growth in [0,1].
func (p *PlantHandle) GrowthProgress() float32 {
	return p.g.healthSys.Policy().Progress(p.g.healthMap.Get(p.entity))
}

// InOptimalConditions evaluates the growth gate predicate right now.
func (p *PlantHandle) InOptimalConditions() bool {
	return p.g.healthSys.InOptimalConditions(p.entity, p.g.healthMap.Get(p.entity))
}

// WaterStatus reports the moisture diagnostic string, or the no-system
// sentinel when the tracker is absent.
func (p *PlantHandle) WaterStatus() string {
	if !p.g.moistMap.HasAll(p.entity) {
		return systems.StatusNoSystem
	}
	return systems.WaterStatus(p.g.moistMap.Get(p.entity))
}

// LightStatus reports the sunlight diagnostic string.
func (p *PlantHandle) LightStatus() string {
	if !p.g.sunMap.HasAll(p.entity) {
		return systems.StatusNoSystem
	}
	return systems.LightStatus(p.g.sunMap.Get(p.entity))
}

// TouchStatus reports the touch diagnostic string.
func (p *PlantHandle) TouchStatus() string {
	if !p.g.irritMap.HasAll(p.entity) {
		return systems.StatusNoSystem
	}
	return systems.TouchStatus(p.g.irritMap.Get(p.entity))
}

// WaterLevel returns the current moisture level, or 0 without a tracker.
func (p *PlantHandle) WaterLevel() float32 {
	if !p.g.moistMap.HasAll(p.entity) {
		return 0
	}
	return p.g.moistMap.Get(p.entity).Level
}

// SunlightLevel returns the current exposure level, or 0 without a tracker.
func (p *PlantHandle) SunlightLevel() float32 {
	if !p.g.sunMap.HasAll(p.entity) {
		return 0
	}
	return p.g.sunMap.Get(p.entity).Level
}

// TouchIntensity returns the current touch intensity, or 0 without a tracker.
func (p *PlantHandle) TouchIntensity() float32 {
	if !p.g.irritMap.HasAll(p.entity) {
		return 0
	}
	return p.g.irritMap.Get(p.entity).Intensity
}

// Reset restores the plant's health state to its initial values, clearing
// the dead and max-growth flags, and re-announces stage 1 so the
// presentation layer swaps back to the seedling model. Tracker levels are
// left untouched. Callable at any time, including while dead.
func (p *PlantHandle) Reset() {
	h := p.g.healthMap.Get(p.entity)
	systems.ResetHealth(h)

	p.g.collector.Record(telemetry.NewResetEvent(p.g.tick, p.id))
	slog.Debug("plant reset", "plant", p.id)

	info := p.g.plantInfo(p.id, h.Stage)
	for _, o := range p.g.observers {
		o.OnGrowthStageChange(info)
	}
}

// LikesTouch reports whether the plant responds positively to touch.
// Plants without an irritation tracker report false.
func (p *PlantHandle) LikesTouch() bool {
	if !p.g.irritMap.HasAll(p.entity) {
		return false
	}
	return p.g.irritMap.Get(p.entity).LikesTouch
}

// Weights returns the plant's factor weights.
func (p *PlantHandle) Weights() components.FactorWeights {
	return p.g.healthMap.Get(p.entity).Weights
}
