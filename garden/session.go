package garden

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	sessionObject   = "garden"
	sessionProperty = "session"
)

// plantState is the serialized per-plant snapshot.
type plantState struct {
	Species string  `yaml:"species"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`

	Water bool `yaml:"water"`
	Light bool `yaml:"light"`
	Touch bool `yaml:"touch"`

	Health           float32 `yaml:"health"`
	Stage            uint8   `yaml:"stage"`
	TimeInOptimal    float32 `yaml:"timeInOptimal"`
	Growth           float32 `yaml:"growth"`
	Dead             bool    `yaml:"dead"`
	MaxGrowthReached bool    `yaml:"maxGrowthReached"`

	WaterLevel float32 `yaml:"waterLevel"`
	LightLevel float32 `yaml:"lightLevel"`
	TouchLevel float32 `yaml:"touchLevel"`
}

// sessionState is the serialized garden snapshot.
type sessionState struct {
	Tick      int32        `yaml:"tick"`
	TimeOfDay float32      `yaml:"timeOfDay"`
	Plants    []plantState `yaml:"plants"`
}

// SaveSession writes the current garden state through the gdata manager.
// A nil manager is a no-op so hosts can run without persistence.
func (g *Garden) SaveSession(m *gdata.Manager) error {
	if m == nil {
		return nil
	}

	state := sessionState{
		Tick:      g.tick,
		TimeOfDay: g.clock.TimeOfDay,
	}

	for _, h := range g.Plants() {
		pos := g.posMap.Get(h.entity)
		hp := g.healthMap.Get(h.entity)

		ps := plantState{
			Species:          h.species,
			X:                pos.X,
			Y:                pos.Y,
			Water:            g.moistMap.HasAll(h.entity),
			Light:            g.sunMap.HasAll(h.entity),
			Touch:            g.irritMap.HasAll(h.entity),
			Health:           hp.Value,
			Stage:            hp.Stage,
			TimeInOptimal:    hp.TimeInOptimal,
			Growth:           hp.Growth,
			Dead:             hp.Dead,
			MaxGrowthReached: hp.MaxGrowthReached,
		}
		if ps.Water {
			ps.WaterLevel = g.moistMap.Get(h.entity).Level
		}
		if ps.Light {
			ps.LightLevel = g.sunMap.Get(h.entity).Level
		}
		if ps.Touch {
			ps.TouchLevel = g.irritMap.Get(h.entity).Intensity
		}
		state.Plants = append(state.Plants, ps)
	}

	data, err := yaml.Marshal(&state)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := m.SaveObjectProp(sessionObject, sessionProperty, data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	slog.Debug("session saved", "tick", state.Tick, "plants", len(state.Plants))
	return nil
}

// LoadSession restores a previously saved garden state into this garden.
// The garden should be freshly created; loaded plants are spawned in saved
// order and receive new handles. Returns false when no session exists.
func (g *Garden) LoadSession(m *gdata.Manager) (bool, error) {
	if m == nil {
		return false, nil
	}
	if !m.ObjectPropExists(sessionObject, sessionProperty) {
		return false, nil
	}

	data, err := m.LoadObjectProp(sessionObject, sessionProperty)
	if err != nil {
		return false, fmt.Errorf("loading session: %w", err)
	}

	var state sessionState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return false, fmt.Errorf("unmarshaling session: %w", err)
	}

	g.tick = state.Tick
	g.clock.SetTimeOfDay(state.TimeOfDay)

	for i, ps := range state.Plants {
		h, err := g.SpawnCustom(ps.Species, ps.X, ps.Y, TrackerSet{
			Water: ps.Water,
			Light: ps.Light,
			Touch: ps.Touch,
		})
		if err != nil {
			return false, fmt.Errorf("restoring plant %d: %w", i, err)
		}

		hp := g.healthMap.Get(h.entity)
		hp.Value = ps.Health
		hp.Stage = ps.Stage
		hp.TimeInOptimal = ps.TimeInOptimal
		hp.Growth = ps.Growth
		hp.Dead = ps.Dead
		hp.MaxGrowthReached = ps.MaxGrowthReached

		if ps.Water {
			g.moistMap.Get(h.entity).Level = ps.WaterLevel
		}
		if ps.Light {
			g.sunMap.Get(h.entity).Level = ps.LightLevel
		}
		if ps.Touch {
			g.irritMap.Get(h.entity).Intensity = ps.TouchLevel
		}
	}

	slog.Info("session restored", "tick", state.Tick, "plants", len(state.Plants))
	return true, nil
}
