package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
)

// ensureCache makes sure config and the tuning cache are initialized.
// The package-level init() here handles it, but other test files guard
// with this call in case tests run in isolation.
func ensureCache() {
	if !cacheInitialized {
		config.MustInit("")
		InitTuningCache()
	}
}

func init() {
	ensureCache()
}

const testEps = 1e-5

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < testEps
}

// ---------- band factor ----------

func TestWaterFactor_NilTrackerContributesZero(t *testing.T) {
	ensureCache()
	if got := WaterFactor(nil); got != 0 {
		t.Errorf("nil tracker should contribute 0, got %f", got)
	}
	if got := LightFactor(nil); got != 0 {
		t.Errorf("nil tracker should contribute 0, got %f", got)
	}
	if got := TouchFactor(nil); got != 0 {
		t.Errorf("nil tracker should contribute 0, got %f", got)
	}
}

func TestWaterFactor_OptimalBandGain(t *testing.T) {
	ensureCache()
	m := components.Moisture{Level: 50, Max: 100, OptimalLow: 30, OptimalHigh: 70}
	if got := WaterFactor(&m); !approxEq(got, cachedOptimalGain) {
		t.Errorf("in-band factor should equal optimal gain %f, got %f", cachedOptimalGain, got)
	}
}

func TestWaterFactor_ContinuousAtBandEdges(t *testing.T) {
	ensureCache()
	m := components.Moisture{Max: 100, OptimalLow: 30, OptimalHigh: 70}

	// The band is inclusive; the edges belong to the optimal zone.
	m.Level = 30
	if got := WaterFactor(&m); !approxEq(got, cachedOptimalGain) {
		t.Errorf("factor at lower edge should be %f, got %f", cachedOptimalGain, got)
	}
	m.Level = 70
	if got := WaterFactor(&m); !approxEq(got, cachedOptimalGain) {
		t.Errorf("factor at upper edge should be %f, got %f", cachedOptimalGain, got)
	}
}

func TestWaterFactor_UndershootScalesWithSeverity(t *testing.T) {
	ensureCache()
	m := components.Moisture{Level: 10, Max: 100, OptimalLow: 30, OptimalHigh: 70}

	// severity = 1 - 10/30 = 2/3, factor = -0.4 * 2/3
	want := -cachedUnderPenalty * (1 - 10.0/30.0)
	if got := WaterFactor(&m); !approxEq(got, want) {
		t.Errorf("undershoot factor: got %f, want %f", got, want)
	}

	// Bone dry hits the full penalty
	m.Level = 0
	if got := WaterFactor(&m); !approxEq(got, -cachedUnderPenalty) {
		t.Errorf("dry factor should be %f, got %f", -cachedUnderPenalty, got)
	}
}

func TestWaterFactor_OvershootSteeperThanUndershoot(t *testing.T) {
	ensureCache()
	m := components.Moisture{Level: 85, Max: 100, OptimalLow: 30, OptimalHigh: 70}

	// severity = (85-70)/(100-70) = 0.5, factor = -0.6 * 0.5
	want := -cachedOverPenalty * 0.5
	got := WaterFactor(&m)
	if !approxEq(got, want) {
		t.Errorf("overshoot factor: got %f, want %f", got, want)
	}

	// Saturated overshoot exceeds the full undershoot penalty
	m.Level = 100
	if got := WaterFactor(&m); !approxEq(got, -cachedOverPenalty) {
		t.Errorf("saturated factor should be %f, got %f", -cachedOverPenalty, got)
	}
	if cachedOverPenalty <= cachedUnderPenalty {
		t.Error("overshoot penalty should exceed undershoot penalty")
	}
}

// ---------- touch factor ----------

func TestTouchFactor_AverseReadsStress(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Intensity: 50, Max: 100, LikesTouch: false}
	want := -cachedUnderPenalty * 0.5
	if got := TouchFactor(&ir); !approxEq(got, want) {
		t.Errorf("averse factor: got %f, want %f", got, want)
	}
}

func TestTouchFactor_LovingGainsUpToComfortCap(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Max: 100, LikesTouch: true}

	ir.Intensity = 0
	if got := TouchFactor(&ir); got != 0 {
		t.Errorf("untouched factor should be 0, got %f", got)
	}

	// Half the comfort cap yields half the gain
	ir.Intensity = cachedTouchComfortCap * 50
	if got := TouchFactor(&ir); !approxEq(got, cachedOptimalGain*0.5) {
		t.Errorf("half-cap factor: got %f, want %f", got, cachedOptimalGain*0.5)
	}

	// Exactly at the cap yields the full gain
	ir.Intensity = cachedTouchComfortCap * 100
	if got := TouchFactor(&ir); !approxEq(got, cachedOptimalGain) {
		t.Errorf("at-cap factor: got %f, want %f", got, cachedOptimalGain)
	}
}

func TestTouchFactor_OverhandlingTurnsNegative(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Intensity: 100, Max: 100, LikesTouch: true}
	want := -cachedUnderPenalty
	if got := TouchFactor(&ir); !approxEq(got, want) {
		t.Errorf("max-intensity factor: got %f, want %f", got, want)
	}
}

// ---------- optimal predicates ----------

func TestOptimalPredicates_AbsentTrackerNeverBlocks(t *testing.T) {
	ensureCache()
	if !WaterOptimal(nil) || !LightOptimal(nil) || !TouchOptimal(nil) {
		t.Error("absent trackers should satisfy the growth gate")
	}
}

func TestTouchOptimal_LovingNeedsAttention(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Max: 100, LikesTouch: true}

	if TouchOptimal(&ir) {
		t.Error("loving plant with zero touch should not be optimal")
	}
	ir.Intensity = 30
	if !TouchOptimal(&ir) {
		t.Error("loving plant below comfort cap should be optimal")
	}
	ir.Intensity = 90
	if TouchOptimal(&ir) {
		t.Error("loving plant above comfort cap should not be optimal")
	}
}

func TestTouchOptimal_AverseNeedsCalm(t *testing.T) {
	ensureCache()
	ir := components.Irritation{Max: 100, LikesTouch: false}

	if !TouchOptimal(&ir) {
		t.Error("untouched averse plant should be optimal")
	}
	ir.Intensity = cachedTouchCalmCap * 100
	if !TouchOptimal(&ir) {
		t.Error("averse plant at the calm cap should still be optimal")
	}
	ir.Intensity = 50
	if TouchOptimal(&ir) {
		t.Error("handled averse plant should not be optimal")
	}
}

// ---------- delta aggregation ----------

func TestHealthDelta_NormalizesWeights(t *testing.T) {
	ensureCache()
	dt := float32(1.0)
	h := components.Health{Weights: components.FactorWeights{Sunlight: 1, Water: 1, Touch: 1}}
	m := components.Moisture{Level: 50, Max: 100, OptimalLow: 30, OptimalHigh: 70}

	// Only the water tracker is attached; its weight share is 1/3.
	want := (1.0 / 3.0) * cachedOptimalGain * dt
	if got := HealthDelta(&h, &m, nil, nil, dt); !approxEq(got, want) {
		t.Errorf("delta: got %f, want %f", got, want)
	}
}

func TestHealthDelta_ZeroWeightSumFallsBackToAmbientDecay(t *testing.T) {
	ensureCache()
	dt := float32(2.0)
	h := components.Health{}
	m := components.Moisture{Level: 50, Max: 100, OptimalLow: 30, OptimalHigh: 70}

	want := -cachedAmbientDecay * dt
	if got := HealthDelta(&h, &m, nil, nil, dt); !approxEq(got, want) {
		t.Errorf("zero-weight delta: got %f, want %f", got, want)
	}
}

func TestHealthDelta_NoTrackersFallsBackToAmbientDecay(t *testing.T) {
	ensureCache()
	dt := float32(1.0)
	h := components.Health{Weights: components.FactorWeights{Sunlight: 1, Water: 1, Touch: 1}}

	want := -cachedAmbientDecay * dt
	if got := HealthDelta(&h, nil, nil, nil, dt); !approxEq(got, want) {
		t.Errorf("trackerless delta: got %f, want %f", got, want)
	}
}

func TestHealthDelta_MixedFactors(t *testing.T) {
	ensureCache()
	dt := float32(1.0)
	h := components.Health{Weights: components.FactorWeights{Sunlight: 1, Water: 1, Touch: 0}}

	m := components.Moisture{Level: 10, Max: 100, OptimalLow: 30, OptimalHigh: 70}
	s := components.Sunlight{Level: 50, Max: 100, OptimalLow: 30, OptimalHigh: 70}

	want := 0.5*cachedOptimalGain + 0.5*(-cachedUnderPenalty*(1-10.0/30.0))
	if got := HealthDelta(&h, &m, &s, nil, dt); !approxEq(got, want) {
		t.Errorf("mixed delta: got %f, want %f", got, want)
	}
}

// ---------- full system ----------

func newTestWorld() *ecs.World {
	return ecs.NewWorld()
}

func spawnTestPlant(w *ecs.World, id uint32, weights components.FactorWeights) ecs.Entity {
	mapper := ecs.NewMap2[components.Plant, components.Health](w)
	plant := components.Plant{ID: id}
	h := NewHealth(weights)
	return mapper.NewEntity(&plant, &h)
}

func TestHealthSystem_ClampsAtMax(t *testing.T) {
	ensureCache()
	w := newTestWorld()
	sys := NewHealthSystem(w, NewGrowthPolicy(config.Cfg()))
	healthMap := ecs.NewMap1[components.Health](w)
	moistMap := ecs.NewMap1[components.Moisture](w)

	e := spawnTestPlant(w, 1, components.FactorWeights{Water: 1})
	m := components.Moisture{Level: 50, Max: 100, OptimalLow: 30, OptimalHigh: 70}
	moistMap.Add(e, &m)

	sys.Update(1.0)

	h := healthMap.Get(e)
	if h.Value != h.Max {
		t.Errorf("healthy plant at full vitality should stay clamped at max, got %f", h.Value)
	}
}

func TestHealthSystem_DeclinesWhenDry(t *testing.T) {
	ensureCache()
	w := newTestWorld()
	sys := NewHealthSystem(w, NewGrowthPolicy(config.Cfg()))
	healthMap := ecs.NewMap1[components.Health](w)
	moistMap := ecs.NewMap1[components.Moisture](w)

	e := spawnTestPlant(w, 1, components.FactorWeights{Water: 1})
	m := components.Moisture{Level: 0, Max: 100, OptimalLow: 30, OptimalHigh: 70, EvapRate: 0}
	moistMap.Add(e, &m)

	sys.Update(1.0)

	h := healthMap.Get(e)
	want := h.Max - cachedUnderPenalty
	if !approxEq(h.Value, want) {
		t.Errorf("dry plant health after one second: got %f, want %f", h.Value, want)
	}
}

func TestHealthSystem_DeathFiresOnceAndAbsorbs(t *testing.T) {
	ensureCache()
	w := newTestWorld()
	sys := NewHealthSystem(w, NewGrowthPolicy(config.Cfg()))
	healthMap := ecs.NewMap1[components.Health](w)
	moistMap := ecs.NewMap1[components.Moisture](w)

	e := spawnTestPlant(w, 7, components.FactorWeights{Water: 1})
	m := components.Moisture{Level: 0, Max: 100, OptimalLow: 30, OptimalHigh: 70}
	moistMap.Add(e, &m)

	h := healthMap.Get(e)
	h.Value = h.Min + 0.01

	trs := sys.Update(1.0)
	var deaths int
	for _, tr := range trs {
		if tr.Kind == TransitionDeath {
			deaths++
			if tr.PlantID != 7 {
				t.Errorf("death transition plant ID: got %d, want 7", tr.PlantID)
			}
		}
	}
	if deaths != 1 {
		t.Fatalf("expected exactly one death transition, got %d", deaths)
	}
	if !h.Dead {
		t.Fatal("plant should be dead")
	}
	if h.Value != h.Min {
		t.Errorf("dead plant health should rest at min, got %f", h.Value)
	}

	// Dead is absorbing: further updates produce nothing and change nothing.
	before := *h
	if trs := sys.Update(1.0); len(trs) != 0 {
		t.Errorf("dead plant should produce no transitions, got %d", len(trs))
	}
	if *healthMap.Get(e) != before {
		t.Error("dead plant state should not change")
	}
}

func TestHealthSystem_InOptimalConditions(t *testing.T) {
	ensureCache()
	w := newTestWorld()
	sys := NewHealthSystem(w, NewGrowthPolicy(config.Cfg()))
	healthMap := ecs.NewMap1[components.Health](w)
	moistMap := ecs.NewMap1[components.Moisture](w)

	e := spawnTestPlant(w, 1, components.FactorWeights{Water: 1})
	m := components.Moisture{Level: 50, Max: 100, OptimalLow: 30, OptimalHigh: 70}
	moistMap.Add(e, &m)

	h := healthMap.Get(e)
	if !sys.InOptimalConditions(e, h) {
		t.Error("full health and in-band moisture should be optimal")
	}

	h.Value = cachedGrowthHealthThreshold*h.Max - 1
	if sys.InOptimalConditions(e, h) {
		t.Error("health below threshold should not be optimal")
	}

	h.Value = h.Max
	moistMap.Get(e).Level = 5
	if sys.InOptimalConditions(e, h) {
		t.Error("dry moisture should not be optimal")
	}
}

// ---------- reset ----------

func TestResetHealth_RestoresInitialState(t *testing.T) {
	ensureCache()
	h := NewHealth(components.FactorWeights{Sunlight: 1, Water: 1, Touch: 1})
	fresh := h

	h.Value = h.Min
	h.Stage = 3
	h.TimeInOptimal = 12
	h.SinceCheck = 0.4
	h.Growth = 1.7
	h.Dead = true
	h.MaxGrowthReached = true

	ResetHealth(&h)
	if h != fresh {
		t.Errorf("reset state should equal a fresh plant: got %+v, want %+v", h, fresh)
	}
}
