// Package telemetry provides lifecycle event tracking, windowed stats, and
// CSV output for the garden simulation.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventWatered EventType = iota
	EventTouched
	EventStageChange
	EventMaxGrowth
	EventDeath
	EventReset
)

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int32
	PlantID uint32

	// Optional fields depending on event type
	Stage  uint8   // for stage change events
	Amount float32 // water added or touch intensity
}

// NewWateredEvent creates a watering event.
func NewWateredEvent(tick int32, plantID uint32, amount float32) Event {
	return Event{Type: EventWatered, Tick: tick, PlantID: plantID, Amount: amount}
}

// NewTouchedEvent creates a touch event.
func NewTouchedEvent(tick int32, plantID uint32, intensity float32) Event {
	return Event{Type: EventTouched, Tick: tick, PlantID: plantID, Amount: intensity}
}

// NewStageChangeEvent creates a growth stage transition event.
func NewStageChangeEvent(tick int32, plantID uint32, stage uint8) Event {
	return Event{Type: EventStageChange, Tick: tick, PlantID: plantID, Stage: stage}
}

// NewMaxGrowthEvent creates a max growth event (fires once per lifecycle).
func NewMaxGrowthEvent(tick int32, plantID uint32, stage uint8) Event {
	return Event{Type: EventMaxGrowth, Tick: tick, PlantID: plantID, Stage: stage}
}

// NewDeathEvent creates a death event (fires once per lifecycle).
func NewDeathEvent(tick int32, plantID uint32) Event {
	return Event{Type: EventDeath, Tick: tick, PlantID: plantID}
}

// NewResetEvent creates a plant reset event.
func NewResetEvent(tick int32, plantID uint32) Event {
	return Event{Type: EventReset, Tick: tick, PlantID: plantID}
}
