// Package garden assembles plant entities and runs the simulation loop:
// clock, sunlight distribution, tracker decay, and health evaluation in a
// fixed order, once per tick.
package garden

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grove/components"
	"github.com/pthm-cable/grove/config"
	"github.com/pthm-cable/grove/systems"
	"github.com/pthm-cable/grove/telemetry"
)

// Options configures a garden instance.
type Options struct {
	Seed           int64
	StatsWindowSec float64
	OutputDir      string
	LogStats       bool

	// OnWindow, when set, receives every flushed stats window.
	OnWindow func(telemetry.WindowStats)
}

// Garden owns the ECS world and the systems operating on it. All mutation
// happens on the goroutine calling Step; handles are ordinary synchronous
// calls from that same context.
type Garden struct {
	world *ecs.World
	rng   *rand.Rand

	clock         *systems.DayNightCycle
	occlusion     *systems.OcclusionField
	sunlightSys   *systems.SunlightSystem
	moistureSys   *systems.MoistureSystem
	irritationSys *systems.IrritationSystem
	healthSys     *systems.HealthSystem
	registry      *systems.SystemRegistry

	// Base components every plant carries
	plantMapper *ecs.Map3[components.Position, components.Plant, components.Health]
	plantFilter *ecs.Filter2[components.Plant, components.Health]

	// Individual component mappers for lookups and optional trackers
	posMap    *ecs.Map1[components.Position]
	healthMap *ecs.Map1[components.Health]
	moistMap  *ecs.Map1[components.Moisture]
	sunMap    *ecs.Map1[components.Sunlight]
	irritMap  *ecs.Map1[components.Irritation]

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	observers []PlantObserver
	onWindow  func(telemetry.WindowStats)

	handles map[uint32]*PlantHandle

	tick           int32
	nextID         uint32
	logStats       bool
	logIntervalSec float32
	sinceLog       float32
}

// New creates a garden from the global config and the given options.
func New(opts Options) (*Garden, error) {
	cfg := config.Cfg()

	g := &Garden{
		rng:      rand.New(rand.NewSource(opts.Seed)),
		handles:  make(map[uint32]*PlantHandle),
		nextID:   1,
		logStats: opts.LogStats,
		onWindow: opts.OnWindow,
	}
	g.world = ecs.NewWorld()

	g.plantMapper = ecs.NewMap3[components.Position, components.Plant, components.Health](g.world)
	g.plantFilter = ecs.NewFilter2[components.Plant, components.Health](g.world)
	g.posMap = ecs.NewMap1[components.Position](g.world)
	g.healthMap = ecs.NewMap1[components.Health](g.world)
	g.moistMap = ecs.NewMap1[components.Moisture](g.world)
	g.sunMap = ecs.NewMap1[components.Sunlight](g.world)
	g.irritMap = ecs.NewMap1[components.Irritation](g.world)

	g.clock = systems.NewDayNightCycle(
		float32(cfg.DayNight.DayDuration),
		float32(cfg.DayNight.StartTime),
	)
	g.occlusion = systems.NewOcclusionField(float32(cfg.Occlusion.ShadeFactor))
	g.sunlightSys = systems.NewSunlightSystem(g.world, g.clock, g.occlusion)
	g.moistureSys = systems.NewMoistureSystem(g.world)
	g.irritationSys = systems.NewIrritationSystem(g.world)
	g.healthSys = systems.NewHealthSystem(g.world, systems.NewGrowthPolicy(cfg))
	g.registry = systems.NewSystemRegistry()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)

	g.logIntervalSec = float32(cfg.Telemetry.LogInterval)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return g, nil
}

// Clock returns the shared environment clock.
func (g *Garden) Clock() *systems.DayNightCycle {
	return g.clock
}

// Occlusion returns the occluder field for host-side registration.
func (g *Garden) Occlusion() *systems.OcclusionField {
	return g.occlusion
}

// Tick returns the current simulation tick.
func (g *Garden) Tick() int32 {
	return g.tick
}

// Rand returns the garden's seeded random source. Hosts use it for care
// scheduling variation so runs stay reproducible from the seed.
func (g *Garden) Rand() *rand.Rand {
	return g.rng
}

// Systems returns diagnostic metadata for all systems in tick order.
func (g *Garden) Systems() []systems.SystemInfo {
	return g.registry.All()
}

// TrackerSet selects which optional trackers a plant is assembled with.
// Trackers are wired at construction time; a plant never discovers them
// dynamically.
type TrackerSet struct {
	Water bool
	Light bool
	Touch bool
}

// AllTrackers is the standard full assembly.
var AllTrackers = TrackerSet{Water: true, Light: true, Touch: true}

// SpawnPlant creates a fully assembled plant of the named species.
func (g *Garden) SpawnPlant(species string, x, y float32) (*PlantHandle, error) {
	return g.SpawnCustom(species, x, y, AllTrackers)
}

// SpawnCustom creates a plant with an explicit tracker assembly. Missing
// trackers degrade gracefully: their factor contributes zero and their
// status reads as absent.
func (g *Garden) SpawnCustom(species string, x, y float32, trackers TrackerSet) (*PlantHandle, error) {
	cfg := config.Cfg()

	idx, ok := cfg.Derived.SpeciesIndex[species]
	if !ok {
		return nil, fmt.Errorf("unknown species %q", species)
	}
	sp := &cfg.Species[idx]

	wt, err := components.ParseWaterType(sp.Water)
	if err != nil {
		return nil, fmt.Errorf("species %q: %w", species, err)
	}
	lt, err := components.ParseLightType(sp.Light)
	if err != nil {
		return nil, fmt.Errorf("species %q: %w", species, err)
	}

	id := g.nextID
	g.nextID++

	pos := components.Position{X: x, Y: y}
	plant := components.Plant{ID: id, SpeciesID: idx}
	health := systems.NewHealth(components.FactorWeights{
		Sunlight: float32(sp.Weights.Sunlight),
		Water:    float32(sp.Weights.Water),
		Touch:    float32(sp.Weights.Touch),
	})

	entity := g.plantMapper.NewEntity(&pos, &plant, &health)

	if trackers.Water {
		m := systems.NewMoisture(wt)
		g.moistMap.Add(entity, &m)
	}
	if trackers.Light {
		s := systems.NewSunlight(lt)
		g.sunMap.Add(entity, &s)
	}
	if trackers.Touch {
		ir := systems.NewIrritation(sp.LikesTouch)
		g.irritMap.Add(entity, &ir)
	}

	h := &PlantHandle{g: g, entity: entity, id: id, species: sp.Name}
	g.handles[id] = h

	slog.Debug("plant spawned", "id", id, "species", sp.Name, "x", x, "y", y)
	return h, nil
}

// Plants returns handles for all spawned plants.
func (g *Garden) Plants() []*PlantHandle {
	out := make([]*PlantHandle, 0, len(g.handles))
	for id := uint32(1); id < g.nextID; id++ {
		if h, ok := g.handles[id]; ok {
			out = append(out, h)
		}
	}
	return out
}

// Update advances the simulation by one configured tick.
func (g *Garden) Update() {
	g.Step(config.Cfg().Derived.DT32)
}

// Step advances the simulation by dt seconds in the fixed system order:
// clock, sunlight distribution, tracker decay, health evaluation.
func (g *Garden) Step(dt float32) {
	g.clock.Tick(dt)
	g.sunlightSys.Update(dt)
	g.moistureSys.Update(dt)
	g.irritationSys.Update(dt)

	transitions := g.healthSys.Update(dt)
	for _, tr := range transitions {
		g.applyTransition(tr)
	}

	g.tick++

	if g.collector.ShouldFlush(g.tick) {
		g.flushWindow()
	}
	g.maybeLogState(dt)
}

// applyTransition turns a health system transition into telemetry and
// observer notifications.
func (g *Garden) applyTransition(tr systems.Transition) {
	info := g.plantInfo(tr.PlantID, tr.Stage)

	switch tr.Kind {
	case systems.TransitionStageChange:
		g.collector.Record(telemetry.NewStageChangeEvent(g.tick, tr.PlantID, tr.Stage))
		slog.Info("growth stage change", "plant", tr.PlantID, "stage", tr.Stage)
		for _, o := range g.observers {
			o.OnGrowthStageChange(info)
		}
	case systems.TransitionMaxGrowth:
		g.collector.Record(telemetry.NewMaxGrowthEvent(g.tick, tr.PlantID, tr.Stage))
		slog.Info("max growth reached", "plant", tr.PlantID)
		for _, o := range g.observers {
			o.OnMaxGrowth(info)
		}
	case systems.TransitionDeath:
		g.collector.Record(telemetry.NewDeathEvent(g.tick, tr.PlantID))
		slog.Info("plant died", "plant", tr.PlantID, "stage", tr.Stage)
		for _, o := range g.observers {
			o.OnPlantDeath(info)
		}
	}
}

func (g *Garden) plantInfo(id uint32, stage uint8) PlantInfo {
	species := ""
	if h, ok := g.handles[id]; ok {
		species = h.species
	}
	return PlantInfo{ID: id, Species: species, Stage: stage}
}

// flushWindow samples the population and writes one stats window.
func (g *Garden) flushWindow() {
	var vitals []float64
	var progressSum float64
	var optimalCount, alive, dead int

	query := g.plantFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, h := query.Get()

		if h.Dead {
			dead++
			continue
		}
		alive++
		vitals = append(vitals, float64(h.Value))
		progressSum += float64(g.healthSys.Policy().Progress(h))
		if g.healthSys.InOptimalConditions(entity, h) {
			optimalCount++
		}
	}

	var progressMean, optimalShare float64
	if alive > 0 {
		progressMean = progressSum / float64(alive)
		optimalShare = float64(optimalCount) / float64(alive)
	}

	stats := g.collector.Flush(
		g.tick,
		float64(g.clock.TimeOfDay),
		alive, dead,
		vitals,
		progressMean,
		optimalShare,
	)

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
	if g.onWindow != nil {
		g.onWindow(stats)
	}
	if g.logStats {
		slog.Info("window stats",
			"tick", stats.WindowEndTick,
			"alive", stats.AliveCount,
			"dead", stats.DeadCount,
			"vitality_mean", stats.VitalityMean,
			"growth_progress", stats.GrowthProgressMean,
			"optimal_share", stats.OptimalShare,
		)
	}
}

// Close flushes telemetry output.
func (g *Garden) Close() error {
	return g.output.Close()
}
