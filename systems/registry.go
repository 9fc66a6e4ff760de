package systems

// System identifiers shared by the frame loop, perf tracking and the UI.
const (
	SystemMovement   = "movement"
	SystemPursuit    = "pursuit"
	SystemSpawn      = "spawn"
	SystemDifficulty = "difficulty"
	SystemHealth     = "health"
	SystemPhysics    = "physics"
	SystemTelemetry  = "telemetry"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "ai")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems, in frame order.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: SystemPhysics, Name: "Physics", Description: "Integrates bodies and reports contacts", Category: "physics"})
	r.Register(SystemInfo{ID: SystemMovement, Name: "Movement", Description: "Applies player input and camera follow", Category: "core"})
	r.Register(SystemInfo{ID: SystemPursuit, Name: "Pursuit", Description: "Steers hostiles toward the player", Category: "ai"})
	r.Register(SystemInfo{ID: SystemSpawn, Name: "Spawn", Description: "Creates hostiles outside the viewport", Category: "core"})
	r.Register(SystemInfo{ID: SystemDifficulty, Name: "Difficulty", Description: "Raises the size variance over time", Category: "core"})
	r.Register(SystemInfo{ID: SystemHealth, Name: "Health", Description: "Applies contacts to player health", Category: "core"})
	r.Register(SystemInfo{ID: SystemTelemetry, Name: "Telemetry", Description: "Records window and life statistics", Category: "internal"})
}

// Register adds a system to the registry. Re-registering an ID replaces its info.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; ok {
		for i := range r.systems {
			if r.systems[i].ID == info.ID {
				r.systems[i] = info
			}
		}
	} else {
		r.systems = append(r.systems, info)
	}
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

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
