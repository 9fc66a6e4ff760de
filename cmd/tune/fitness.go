package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/escape/bot"
	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/driver"
	"github.com/pthm-cable/escape/game"
	"github.com/pthm-cable/escape/telemetry"
)

// FitnessEvaluator runs headless bot games and scores how close the
// average survival time lands to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config
	target     float64 // desired mean survival in seconds

	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastSurvival   float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		target:      target,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastSurvival returns the mean survival from the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	survival   float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runGame(x, s)
		}(i, seed)
	}
	wg.Wait()

	survivals := make([]float64, len(results))
	best := results[0]
	for i, r := range results {
		survivals[i] = r.survival
		if math.Abs(r.survival-fe.target) < math.Abs(best.survival-fe.target) {
			best = r
		}
	}
	mean := stat.Mean(survivals, nil)
	fitness := survivalError(mean, fe.target)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestHallOfFame = best.hallOfFame
	}
	fe.lastSurvival = mean
	fe.mu.Unlock()

	return fitness
}

// runGame plays one seed with the evader bot and returns its mean survival.
func (fe *FitnessEvaluator) runGame(x []float64, seed int64) seedResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Bot.AutoRestart = true

	r := driver.New(cfg, game.Options{Seed: seed})
	defer r.Close()

	r.RunHeadless(fe.maxTicks, bot.NewEvader(cfg.Bot), nil)

	return seedResult{
		survival:   meanSurvival(r.Game),
		hallOfFame: r.Game.HallOfFame(),
	}
}

// meanSurvival averages the completed lives, counting the life in progress
// only when no life has ended yet.
func meanSurvival(g *game.Game) float64 {
	lives := g.Lives()
	if len(lives.Completed()) == 0 {
		return g.View().LifeSeconds
	}
	return lives.MeanSurvival()
}

// survivalError is the squared distance between the mean survival and the target.
func survivalError(mean, target float64) float64 {
	d := mean - target
	return d * d
}
