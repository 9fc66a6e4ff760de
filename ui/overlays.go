package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayColliders  OverlayID = "colliders"
	OverlayVelocities OverlayID = "velocities"
	OverlayGrid       OverlayID = "grid"
	OverlayPerf       OverlayID = "perf"
	OverlayStats      OverlayID = "stats"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "C", "V")
	Category    string      // Grouping (e.g., "debug", "panels")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
	Default     bool        // Enabled at startup
}

// OverlayRegistry holds the overlays in display order with their on/off state.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the built-in overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "World-anchored background grid",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "visual",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayColliders,
		Name:        "Colliders",
		Description: "Outline every collision circle",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayVelocities,
		Name:        "Velocities",
		Description: "Draw velocity vectors",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-system frame timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayStats},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayStats,
		Name:        "Run Stats",
		Description: "Current life and best life",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayPerf},
	})
}

// Register appends an overlay in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = desc.Default
}

// Toggle flips an overlay and returns its new state.
// Turning one on turns off everything it excludes.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	for _, desc := range r.descriptors {
		if desc.ID != id {
			continue
		}
		on := !r.enabled[id]
		r.enabled[id] = on
		if on {
			for _, other := range desc.Exclusive {
				r.enabled[other] = false
			}
		}
		return on
	}
	return false
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns the overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns the overlays in one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			out = append(out, desc)
		}
	}
	return out
}

// Categories returns the categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, desc := range r.descriptors {
		if !slices.Contains(cats, desc.Category) {
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Reports the overlay, its new state, and whether any overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
