package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/escape/systems"
	"github.com/pthm-cable/escape/telemetry"
)

// ControlsPanel renders the overlay toggles with their keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}

// StatsData is what the run stats panel displays.
type StatsData struct {
	Current    telemetry.LifeStats
	Best       telemetry.LifeStats
	HasBest    bool
	Lives      int
	Difficulty int
	Drawn      int // hostiles left after culling
}

// statsSections describes the run stats panel.
var statsSections = []SectionDescriptor{
	{
		ID:    "life",
		Title: "This Life",
		Fields: []FieldDescriptor{
			{ID: "life", Label: "Life", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Lives) }},
			{ID: "survival", Label: "Survived", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%.1fs", d.(StatsData).Current.SurvivalSec) }},
			{ID: "peak", Label: "Peak enemies", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Current.PeakHostiles) }},
			{ID: "damage", Label: "Hits taken", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Current.Damage) }},
			{ID: "rare", Label: "Rare seen", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Current.RareSeen) }},
			{ID: "difficulty", Label: "Difficulty", Widget: WidgetBar,
				Range:  FieldRange{Min: 0, Max: systems.MaxDifficultyLevel},
				Getter: func(d any) float32 { return float32(d.(StatsData).Difficulty) }},
			{ID: "drawn", Label: "On screen", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Drawn) }},
		},
	},
	{
		ID:      "best",
		Title:   "Best Life",
		Visible: func(d any) bool { return d.(StatsData).HasBest },
		Fields: []FieldDescriptor{
			{ID: "best_life", Label: "Life", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Best.Life) }},
			{ID: "best_survival", Label: "Survived", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%.1fs", d.(StatsData).Best.SurvivalSec) }},
			{ID: "best_peak", Label: "Peak enemies", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float32 { return float32(d.(StatsData).Best.PeakHostiles) }},
		},
	},
}

// StatsPanel renders the current and best life.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel.
func (s *StatsPanel) Draw(data StatsData) {
	r := s.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range statsSections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(s.x, s.y, s.width, height)

	y := s.y + padding
	for _, sd := range statsSections {
		y = r.DrawSection(s.x+padding, y, sd, data, s.width-padding*2)
	}
}
