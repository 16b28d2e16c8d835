package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
)

// TransitionKind identifies a lifecycle transition produced by a tick.
type TransitionKind uint8

const (
	TransitionStageChange TransitionKind = iota
	TransitionMaxGrowth
	TransitionDeath
)

// Transition records one lifecycle change. The host translates these into
// presentation side effects (model swap, audio, UI) and telemetry.
type Transition struct {
	Entity  ecs.Entity
	PlantID uint32
	Kind    TransitionKind
	Stage   uint8
}

// NewHealth creates a health state at full vitality, stage 1.
func NewHealth(w components.FactorWeights) components.Health {
	cfg := config.Cfg()
	h := components.Health{
		Min:      float32(cfg.Health.Min),
		Max:      float32(cfg.Health.Max),
		MaxStage: uint8(cfg.Growth.MaxStage),
		Weights:  w,
	}
	h.Value = h.Max
	h.Stage = 1
	return h
}

// ResetHealth restores all mutable health fields to their initial values,
// clearing the Dead and MaxGrowthReached flags. Callable at any time.
func ResetHealth(h *components.Health) {
	h.Value = h.Max
	h.Stage = 1
	h.TimeInOptimal = 0
	h.SinceCheck = 0
	h.Growth = 0
	h.Dead = false
	h.MaxGrowthReached = false
}

// WaterFactor computes the signed moisture contribution before weighting.
// A nil tracker contributes zero.
func WaterFactor(m *components.Moisture) float32 {
	if m == nil {
		return 0
	}
	return bandFactor(m.Level, m.OptimalLow, m.OptimalHigh, m.Max)
}

// LightFactor computes the signed sunlight contribution before weighting.
func LightFactor(s *components.Sunlight) float32 {
	if s == nil {
		return 0
	}
	return bandFactor(s.Level, s.OptimalLow, s.OptimalHigh, s.Max)
}

// bandFactor implements the three-zone policy: a fixed gain inside the
// band, a linear penalty below it, and a steeper linear penalty above it.
// Overshoot hurts more than undershoot; overwatering and scorching do more
// damage than mild deficiency.
func bandFactor(level, low, high, max float32) float32 {
	if level >= low && level <= high {
		return cachedOptimalGain
	}
	if level < low {
		severity := clamp01(1 - level/low)
		return -cachedUnderPenalty * severity
	}
	severity := clamp01((level - high) / (max - high))
	return -cachedOverPenalty * severity
}

// TouchFactor computes the signed touch contribution. Touch-loving plants
// gain up to the comfort cap, with diminishing returns turning negative
// toward max intensity; touch-averse plants read any intensity as stress.
func TouchFactor(ir *components.Irritation) float32 {
	if ir == nil || ir.Max <= 0 {
		return 0
	}
	ratio := ir.Intensity / ir.Max

	if !ir.LikesTouch {
		return -cachedUnderPenalty * ratio
	}
	if ratio <= cachedTouchComfortCap {
		return cachedOptimalGain * ratio / cachedTouchComfortCap
	}
	over := (ratio - cachedTouchComfortCap) / (1 - cachedTouchComfortCap)
	return cachedOptimalGain - over*(cachedOptimalGain+cachedUnderPenalty)
}

// WaterOptimal reports whether moisture sits inside its optimal band.
// An absent tracker never blocks growth.
func WaterOptimal(m *components.Moisture) bool {
	if m == nil {
		return true
	}
	return m.Level >= m.OptimalLow && m.Level <= m.OptimalHigh
}

// LightOptimal reports whether sunlight sits inside its optimal band.
func LightOptimal(s *components.Sunlight) bool {
	if s == nil {
		return true
	}
	return s.Level >= s.OptimalLow && s.Level <= s.OptimalHigh
}

// TouchOptimal reports whether touch intensity satisfies the growth gate:
// touch-loving plants need some attention below the comfort cap, touch-averse
// plants need near-zero intensity.
func TouchOptimal(ir *components.Irritation) bool {
	if ir == nil || ir.Max <= 0 {
		return true
	}
	if ir.LikesTouch {
		return ir.Intensity > 0 && ir.Intensity <= cachedTouchComfortCap*ir.Max
	}
	return ir.Intensity <= cachedTouchCalmCap*ir.Max
}

// HealthDelta aggregates the weighted factor contributions for one tick.
// Weights are normalized by their sum; with a zero sum, or no trackers
// attached at all, only the ambient decay applies so health never
// free-floats.
func HealthDelta(h *components.Health, m *components.Moisture, s *components.Sunlight, ir *components.Irritation, dt float32) float32 {
	sum := h.Weights.Sunlight + h.Weights.Water + h.Weights.Touch
	if sum <= 0 || (m == nil && s == nil && ir == nil) {
		return -cachedAmbientDecay * dt
	}

	var total float32
	if s != nil {
		total += h.Weights.Sunlight / sum * LightFactor(s)
	}
	if m != nil {
		total += h.Weights.Water / sum * WaterFactor(m)
	}
	if ir != nil {
		total += h.Weights.Touch / sum * TouchFactor(ir)
	}
	return total * dt
}

// HealthSystem aggregates tracker readings into health, drives growth
// gating through its policy, and reports lifecycle transitions.
//
// Trackers are optional components: the system reads them through mappers
// and a plant missing one simply has that factor contribute zero.
type HealthSystem struct {
	filter   *ecs.Filter2[components.Plant, components.Health]
	moistMap *ecs.Map1[components.Moisture]
	sunMap   *ecs.Map1[components.Sunlight]
	irritMap *ecs.Map1[components.Irritation]
	policy   GrowthPolicy

	transitions []Transition // reused across ticks
}

// NewHealthSystem creates the health system with the given growth policy.
func NewHealthSystem(w *ecs.World, policy GrowthPolicy) *HealthSystem {
	return &HealthSystem{
		filter:   ecs.NewFilter2[components.Plant, components.Health](w),
		moistMap: ecs.NewMap1[components.Moisture](w),
		sunMap:   ecs.NewMap1[components.Sunlight](w),
		irritMap: ecs.NewMap1[components.Irritation](w),
		policy:   policy,
	}
}

// Policy returns the active growth policy.
func (s *HealthSystem) Policy() GrowthPolicy {
	return s.policy
}

// Trackers returns the optional tracker components of an entity; absent
// trackers come back nil.
func (s *HealthSystem) Trackers(e ecs.Entity) (*components.Moisture, *components.Sunlight, *components.Irritation) {
	var m *components.Moisture
	var sun *components.Sunlight
	var ir *components.Irritation
	if s.moistMap.HasAll(e) {
		m = s.moistMap.Get(e)
	}
	if s.sunMap.HasAll(e) {
		sun = s.sunMap.Get(e)
	}
	if s.irritMap.HasAll(e) {
		ir = s.irritMap.Get(e)
	}
	return m, sun, ir
}

// InOptimalConditions evaluates the growth gate predicate for an entity.
func (s *HealthSystem) InOptimalConditions(e ecs.Entity, h *components.Health) bool {
	m, sun, ir := s.Trackers(e)
	healthGood := h.Value >= cachedGrowthHealthThreshold*h.Max
	return healthGood && WaterOptimal(m) && LightOptimal(sun) && TouchOptimal(ir)
}

// Update runs one health evaluation over all living plants. The returned
// slice is valid until the next call.
//
// Dead is absorbing: once set, a plant is skipped entirely until an
// explicit reset.
func (s *HealthSystem) Update(dt float32) []Transition {
	s.transitions = s.transitions[:0]

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		plant, h := query.Get()

		if h.Dead {
			continue
		}

		m, sun, ir := s.Trackers(entity)

		// Factor aggregation and health update
		delta := HealthDelta(h, m, sun, ir, dt)
		h.Value = clampFloat(h.Value+delta, h.Min, h.Max)

		// Growth gate
		healthGood := h.Value >= cachedGrowthHealthThreshold*h.Max
		optimal := healthGood && WaterOptimal(m) && LightOptimal(sun) && TouchOptimal(ir)
		stageUp, reachedMax := s.policy.Advance(h, healthGood, optimal, dt)
		if stageUp {
			s.transitions = append(s.transitions, Transition{
				Entity: entity, PlantID: plant.ID, Kind: TransitionStageChange, Stage: h.Stage,
			})
		}
		if reachedMax {
			s.transitions = append(s.transitions, Transition{
				Entity: entity, PlantID: plant.ID, Kind: TransitionMaxGrowth, Stage: h.Stage,
			})
		}

		// Death check
		if h.Value <= h.Min {
			h.Value = h.Min
			h.Dead = true
			s.transitions = append(s.transitions, Transition{
				Entity: entity, PlantID: plant.ID, Kind: TransitionDeath, Stage: h.Stage,
			})
		}
	}

	return s.transitions
}
