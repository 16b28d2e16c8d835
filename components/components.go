// Package components defines ECS components for the plant simulation.
package components

import "fmt"

// WaterType selects a plant's preferred moisture band.
type WaterType uint8

const (
	WaterNormal WaterType = iota
	WaterDroughtResistant
	WaterLoving
)

// ParseWaterType converts a config string to a WaterType.
func ParseWaterType(s string) (WaterType, error) {
	switch s {
	case "normal", "":
		return WaterNormal, nil
	case "drought_resistant":
		return WaterDroughtResistant, nil
	case "water_loving":
		return WaterLoving, nil
	}
	return WaterNormal, fmt.Errorf("unknown water type %q", s)
}

// LightType selects a plant's preferred sunlight band.
type LightType uint8

const (
	LightPartialSun LightType = iota
	LightShade
	LightFullSun
)

// ParseLightType converts a config string to a LightType.
func ParseLightType(s string) (LightType, error) {
	switch s {
	case "partial_sun", "":
		return LightPartialSun, nil
	case "shade":
		return LightShade, nil
	case "full_sun":
		return LightFullSun, nil
	}
	return LightPartialSun, fmt.Errorf("unknown light type %q", s)
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Plant bundles identity and species assignment.
type Plant struct {
	ID        uint32
	SpeciesID uint8
}

// Moisture tracks a plant's water level.
// Level stays within [Min, Max]; the optimal band comes from WaterType.
type Moisture struct {
	Level       float32
	Min, Max    float32
	OptimalLow  float32
	OptimalHigh float32
	EvapRate    float32 // level lost per second
	WaterType   WaterType
}

// Sunlight tracks accumulated light exposure.
type Sunlight struct {
	Level       float32
	Min, Max    float32
	OptimalLow  float32
	OptimalHigh float32
	LightType   LightType
}

// Irritation tracks touch intensity with passive decay.
type Irritation struct {
	Intensity  float32
	Max        float32
	DecayRate  float32 // intensity lost per second
	LikesTouch bool
}

// FactorWeights holds the relative weight of each environmental factor.
// Weights are normalized by their sum at evaluation time.
type FactorWeights struct {
	Sunlight float32
	Water    float32
	Touch    float32
}

// Health is the aggregated vitality state driven by the health system.
// Dead and MaxGrowthReached are one-way flags cleared only by an explicit reset.
type Health struct {
	Value    float32
	Min, Max float32

	Stage    uint8
	MaxStage uint8

	// Growth gate bookkeeping
	TimeInOptimal float32 // seconds accumulated at optimal conditions
	SinceCheck    float32 // seconds since the last gate evaluation
	Growth        float32 // continuous growth used by the linear policy

	Dead             bool
	MaxGrowthReached bool

	Weights FactorWeights
}
