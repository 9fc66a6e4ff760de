package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationMilestone BookmarkType = "population_milestone"
	BookmarkPopulationCapped    BookmarkType = "population_capped"
	BookmarkMaxDifficulty       BookmarkType = "max_difficulty"
	BookmarkCloseCall           BookmarkType = "close_call"
	BookmarkLongestLife         BookmarkType = "longest_life"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	RunID       string       `csv:"run_id" json:"run_id"`
	Type        BookmarkType `csv:"type" json:"type"`
	Time        float64      `csv:"time" json:"time"`
	Life        int          `csv:"life" json:"life"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"time", b.Time,
		"life", b.Life,
		"description", b.Description,
	)
}

// FrameState is the per-frame input to the bookmark detector.
type FrameState struct {
	Time        float64
	Life        int
	Hostiles    int
	MaxHostiles int
	Difficulty  int
	MaxLevel    int
	Health      int
	MaxHealth   int
}

// BookmarkDetector detects interesting moments in a life.
// Each bookmark type fires at most once per threshold per life, except close calls.
type BookmarkDetector struct {
	milestones []int

	// Per-life state
	nextMilestone int
	capped        bool
	maxDifficulty bool
	atOneHealth   bool
	life          int
}

// NewBookmarkDetector creates a detector with ascending population milestones.
func NewBookmarkDetector(milestones []int) *BookmarkDetector {
	return &BookmarkDetector{milestones: append([]int(nil), milestones...)}
}

// Check analyzes the frame and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(s FrameState) []Bookmark {
	if s.Life != bd.life {
		bd.resetLife(s.Life)
	}

	var bookmarks []Bookmark
	add := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			Type:        t,
			Time:        s.Time,
			Life:        s.Life,
			Description: fmt.Sprintf(format, args...),
		})
	}

	for bd.nextMilestone < len(bd.milestones) && s.Hostiles >= bd.milestones[bd.nextMilestone] {
		add(BookmarkPopulationMilestone, "%d hostiles alive", bd.milestones[bd.nextMilestone])
		bd.nextMilestone++
	}

	if !bd.capped && s.MaxHostiles > 0 && s.Hostiles >= s.MaxHostiles {
		bd.capped = true
		add(BookmarkPopulationCapped, "population reached cap of %d", s.MaxHostiles)
	}

	if !bd.maxDifficulty && s.MaxLevel > 0 && s.Difficulty >= s.MaxLevel {
		bd.maxDifficulty = true
		add(BookmarkMaxDifficulty, "difficulty saturated at %d", s.Difficulty)
	}

	// Close call: down to one health point, then all the way back
	switch {
	case s.Health == 1:
		bd.atOneHealth = true
	case s.Health == s.MaxHealth && bd.atOneHealth:
		bd.atOneHealth = false
		add(BookmarkCloseCall, "recovered to full health from 1")
	case s.Health == 0:
		bd.atOneHealth = false
	}

	return bookmarks
}

func (bd *BookmarkDetector) resetLife(life int) {
	bd.life = life
	bd.nextMilestone = 0
	bd.capped = false
	bd.maxDifficulty = false
	bd.atOneHealth = false
}
