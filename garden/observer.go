package garden

// PlantInfo identifies a plant in observer notifications. Consumers swap
// models, play audio, or update UI; no payload beyond the reference is
// needed.
type PlantInfo struct {
	ID      uint32
	Species string
	Stage   uint8
}

// PlantObserver receives fire-once-per-transition lifecycle notifications.
// Observers run synchronously inside the tick; they must not mutate the
// garden.
type PlantObserver interface {
	OnGrowthStageChange(PlantInfo)
	OnMaxGrowth(PlantInfo)
	OnPlantDeath(PlantInfo)
}

// AddObserver registers a lifecycle observer.
func (g *Garden) AddObserver(o PlantObserver) {
	g.observers = append(g.observers, o)
}
