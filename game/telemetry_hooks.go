package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/systems"
	"github.com/pthm-cable/escape/telemetry"
)

// record forwards an event to the window collector and the current life.
func (g *Game) record(ev telemetry.Event) {
	g.collector.Record(ev)
	g.lives.Record(ev)
}

// observe runs the end-of-frame telemetry: life tracking, bookmarks and window flushes.
func (g *Game) observe(now float64) {
	g.lives.Observe(g.population.Current, g.difficulty.Level())

	_, _, _, _, player := g.playerMapper.Get(g.player)
	g.emitBookmarks(g.bookmarks.Check(telemetry.FrameState{
		Time:        now,
		Life:        g.lives.Count(),
		Hostiles:    g.population.Current,
		MaxHostiles: g.population.Max,
		Difficulty:  g.difficulty.Level(),
		MaxLevel:    systems.MaxDifficultyLevel,
		Health:      player.Health,
		MaxHealth:   components.MaxHealth,
	}))

	if g.collector.ShouldFlush(now) {
		g.flushTelemetry(now)
	}
}

// flushTelemetry closes the stats window and writes it out.
func (g *Game) flushTelemetry(now float64) {
	stats := g.collector.Flush(now, g.sampleWindow())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, now); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleWindow collects the end-of-window state.
func (g *Game) sampleWindow() telemetry.WindowSample {
	pos, _, _, _, player := g.playerMapper.Get(g.player)
	sample := telemetry.WindowSample{
		Frames:     g.clock.Frame(),
		Hostiles:   g.population.Current,
		Difficulty: g.difficulty.Level(),
		Health:     player.Health,
		Lives:      g.lives.Count(),
	}

	query := g.hostileFilter.Query()
	for query.Next() {
		_, vel, _, _ := query.Get()
		sample.Speeds = append(sample.Speeds, r2.Norm(vel.Vec()))
	}
	if d, ok := g.pursuit.Nearest(pos.Vec()); ok {
		sample.NearestHostile = d
	}
	return sample
}

// emitBookmarks logs and persists triggered bookmarks, with a snapshot for each.
func (g *Game) emitBookmarks(bookmarks []telemetry.Bookmark) {
	for _, bm := range bookmarks {
		bm.RunID = g.output.RunID()
		if bm.Type == telemetry.BookmarkCloseCall {
			g.lives.RecordCloseCall()
		}

		if g.logStats {
			bm.LogBookmark()
		}

		if g.output == nil {
			continue
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		g.saveSnapshot(&bm)
	}
}

// endLife archives the finished life and checks it against the hall of fame.
func (g *Game) endLife(now float64) {
	life, ok := g.lives.End(now)
	if !ok {
		return
	}

	if g.logStats {
		slog.Info("life_ended", "life", life)
	}
	if err := g.output.WriteLife(life); err != nil {
		slog.Error("failed to write life", "error", err)
	}

	if !g.hallOfFame.Consider(life) {
		return
	}
	// A new record only counts once there was something to beat
	if best, _ := g.hallOfFame.Best(); best.Life == life.Life && life.Life > 1 {
		g.emitBookmarks([]telemetry.Bookmark{{
			Type:        telemetry.BookmarkLongestLife,
			Time:        now,
			Life:        life.Life,
			Description: "new longest life",
		}})
	}
}

// saveSnapshot writes the arena state at a bookmark.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	path, err := g.output.WriteSnapshot(g.Snapshot(bm))
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "time", g.clock.Elapsed())
}

// Snapshot captures the arena state, optionally tagged with a bookmark.
func (g *Game) Snapshot(bm *telemetry.Bookmark) *telemetry.Snapshot {
	pos, vel, body, _, player := g.playerMapper.Get(g.player)
	snap := &telemetry.Snapshot{
		Seed:       g.rng.Seed(),
		Time:       g.clock.Elapsed(),
		State:      g.state.String(),
		Health:     player.Health,
		Difficulty: g.difficulty.Level(),
		Player: telemetry.EntityState{
			X: pos.X, Y: pos.Y,
			VelX: vel.X, VelY: vel.Y,
			Radius: body.Radius,
		},
		Bookmark: bm,
	}

	g.EachHostile(func(h HostileView) {
		snap.Hostiles = append(snap.Hostiles, telemetry.EntityState{
			ID: h.ID,
			X:  h.X, Y: h.Y,
			VelX: h.VelX, VelY: h.VelY,
			Radius: h.Radius,
			Scale:  h.Scale,
			Rare:   h.Variant == components.VariantRare,
		})
	})
	return snap
}
