// Package ui draws the heads-up display and the debug panels.
// Panels are described by field descriptors so the stats shown can change
// alongside the game without touching the layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for numeric text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	HeartFull     rl.Color
	HeartEmpty    rl.Color
	MessageColor  rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.LightGray,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},
		HeartFull:     rl.Color{R: 230, G: 40, B: 60, A: 255},
		HeartEmpty:    rl.Color{R: 70, G: 70, B: 80, A: 255},
		MessageColor:  rl.White,

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
