package systems

// SystemInfo describes a simulation system for diagnostics.
type SystemInfo struct {
	ID          string // Internal identifier (used for log labels)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "environment", "lifecycle")
}

// SystemRegistry holds metadata about all systems in tick order.
// This centralizes system naming so diagnostics stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in their tick order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "dayNight", Name: "Day/Night", Description: "Advances the light cycle", Category: "environment"})
	r.Register(SystemInfo{ID: "sunlight", Name: "Sunlight", Description: "Distributes sun exposure with occlusion", Category: "environment"})
	r.Register(SystemInfo{ID: "moisture", Name: "Moisture", Description: "Evaporates water levels", Category: "lifecycle"})
	r.Register(SystemInfo{ID: "irritation", Name: "Irritation", Description: "Decays touch intensity", Category: "lifecycle"})
	r.Register(SystemInfo{ID: "health", Name: "Health", Description: "Aggregates factors, gates growth, checks death", Category: "lifecycle"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems in tick order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
