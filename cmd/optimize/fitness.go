package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/game"
	"github.com/pthm-cable/dots/telemetry"
)

// FitnessEvaluator runs headless evolutions and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastReached    float64 // mean best-ever reached fraction from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastReached returns the mean best-ever reached fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastReached() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastReached
}

// scoredTail is the share of final generations averaged into a run's score.
const scoredTail = 0.25

// runResult holds the results from a single evolution run.
type runResult struct {
	maxFitness  []float64 // per generation
	reachedFrac float64   // best-ever reached / population
	hallOfFame  *telemetry.HallOfFame
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean max fitness over the last quarter of generations.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runEvolution(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total, reached float64
	bestSeed := math.Inf(1)
	var bestHoF *telemetry.HallOfFame

	for _, r := range results {
		if r.err != nil {
			// Invalid configs rank last
			return math.Inf(1)
		}
		f := computeFitness(r.maxFitness)
		total += f
		reached += r.reachedFrac
		if f < bestSeed {
			bestSeed = f
			bestHoF = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avg := total / n

	fe.mu.Lock()
	if avg < fe.bestFitness {
		fe.bestFitness = avg
		fe.bestHallOfFame = bestHoF
	}
	fe.lastReached = reached / n
	fe.mu.Unlock()

	return avg
}

// runEvolution runs one seeded evolution for the configured number of generations.
func (fe *FitnessEvaluator) runEvolution(x []float64, seed int64) runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	hof := telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize)
	ctrl, err := game.New(cfg, rand.New(rand.NewSource(seed)), game.WithHallOfFame(hof))
	if err != nil {
		return runResult{err: err}
	}

	result := runResult{
		maxFitness: make([]float64, 0, fe.generations),
		hallOfFame: hof,
	}
	var rec game.GenerationRecord
	for i := 0; i < fe.generations; i++ {
		rec = ctrl.RunGeneration()
		result.maxFitness = append(result.maxFitness, rec.MaxFitness)
	}
	result.reachedFrac = float64(rec.BestEverReachedGoal) / float64(rec.Population)
	return result
}

// computeFitness scores one run (lower = better).
func computeFitness(maxFitness []float64) float64 {
	if len(maxFitness) == 0 {
		return 0
	}
	n := max(int(math.Ceil(float64(len(maxFitness))*scoredTail)), 1)
	tail := maxFitness[len(maxFitness)-n:]
	return -floats.Sum(tail) / float64(n)
}
