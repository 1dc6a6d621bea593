// Package telemetry provides generation statistics, milestones, and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one completed generation.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Population int     `csv:"population"`
	Ticks      int     `csv:"ticks"`
	SimTimeSec float64 `csv:"sim_time"`

	Dead                int `csv:"dead"`
	ReachedGoal         int `csv:"reached_goal"`
	BestEverReachedGoal int `csv:"best_ever_reached_goal"`
	BestSteps           int `csv:"best_steps"` // fewest steps among reachers, 0 if none

	// Fitness distribution
	FitnessSum  float64 `csv:"fitness_sum"`
	FitnessMax  float64 `csv:"fitness_max"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Mean distance to goal at death for agents that missed it
	MissDistanceMean float64 `csv:"miss_distance_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FitnessSummary describes a fitness distribution.
type FitnessSummary struct {
	Sum, Max, Mean, Std float64
	P10, P50, P90       float64
}

// SummarizeFitness calculates sum, max, mean, population std, and percentiles.
func SummarizeFitness(values []float64) FitnessSummary {
	if len(values) == 0 {
		return FitnessSummary{}
	}

	var s FitnessSummary
	s.Sum = floats.Sum(values)
	s.Max = floats.Max(values)
	s.Mean, s.Std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	return s
}

// ApplyFitness copies a fitness summary into the stats record.
func (s *GenerationStats) ApplyFitness(f FitnessSummary) {
	s.FitnessSum = f.Sum
	s.FitnessMax = f.Max
	s.FitnessMean = f.Mean
	s.FitnessStd = f.Std
	s.FitnessP10 = f.P10
	s.FitnessP50 = f.P50
	s.FitnessP90 = f.P90
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("ticks", s.Ticks),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("dead", s.Dead),
		slog.Int("reached_goal", s.ReachedGoal),
		slog.Int("best_ever_reached_goal", s.BestEverReachedGoal),
		slog.Int("best_steps", s.BestSteps),
		slog.Float64("fitness_sum", s.FitnessSum),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("miss_distance_mean", s.MissDistanceMean),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
