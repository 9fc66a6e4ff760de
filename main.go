package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/escape/bot"
	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/driver"
	"github.com/pthm-cable/escape/frontend"
	"github.com/pthm-cable/escape/game"
	"github.com/pthm-cable/escape/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the evader bot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	useBot := flag.Bool("bot", false, "Let the evader bot play in graphical mode")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *headless, *useBot, *logStats, *statsWindow, *outputDir, *seed, *maxTicks); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, headless, useBot, logStats bool, statsWindow float64, outputDir string, seed int64, maxTicks int) error {
	if err := config.Init(configPath); err != nil {
		return err
	}
	cfg := config.Cfg()

	rngSeed := seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	if output != nil {
		if err := output.WriteConfig(cfg); err != nil {
			output.Close()
			return err
		}
	}

	r := driver.New(cfg, game.Options{
		Seed:        rngSeed,
		Output:      output,
		LogStats:    logStats,
		StatsWindow: statsWindow,
	})
	defer func() {
		if err := r.Close(); err != nil {
			slog.Error("closing output", "error", err)
		}
	}()

	if headless {
		slog.Info("starting headless run",
			"seed", rngSeed,
			"stats_window", statsWindow,
			"max_ticks", maxTicks,
		)
		if maxTicks <= 0 && !logStats && output == nil {
			slog.Warn("headless run has no tick limit and no output")
		}
		r.RunHeadless(maxTicks, bot.NewEvader(cfg.Bot), nil)
		slog.Info("headless run finished",
			"ticks", r.Ticks(),
			"lives", r.Game.Lives().Count(),
			"mean_survival", r.Game.Lives().MeanSurvival(),
		)
		return nil
	}

	w := frontend.Open(r)
	defer w.Close()
	if useBot {
		w.SetController(bot.NewEvader(cfg.Bot))
	}
	w.Run(maxTicks)
	return nil
}
