package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/agent"
	"github.com/pthm-cable/dots/telemetry"
)

// AgentView is the read-only state of one agent for presentation.
type AgentView struct {
	X, Y     float64
	Heading  float64 // degrees
	Steps    int     // instructions consumed
	Category agent.Category
}

// Snapshot is an immutable view of the population after a tick.
type Snapshot struct {
	Generation int
	Tick       int // ticks into the current generation
	SimTime    float64

	Dead                int
	ReachedGoal         int
	BestEverReachedGoal int
	MaxFitness          float64 // of the last completed generation

	Population int
	Agents     []AgentView // population order

	Goal  agent.Goal
	World r2.Vec // X is width, Y is height
}

// Nearest returns the index of the agent closest to (x, y) within radius.
func (s *Snapshot) Nearest(x, y, radius float64) (int, bool) {
	p := r2.Vec{X: x, Y: y}
	best, bestDist := -1, radius*radius
	for i, a := range s.Agents {
		if d := r2.Norm2(r2.Sub(r2.Vec{X: a.X, Y: a.Y}, p)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// GenerationRecord summarizes one completed generation.
type GenerationRecord struct {
	Generation int // index of the completed generation
	Population int
	Ticks      int
	SimTime    float64

	Dead                int
	ReachedGoal         int
	BestEverReachedGoal int

	FitnessSum float64
	MaxFitness float64
	BestIndex  int
	BestSteps  int // fewest steps among reachers, 0 if none reached
	Elites     int

	MissDistanceMean float64 // mean distance to goal of agents that missed it

	Fitness []float64 // population order
}

// Stats converts the record to a telemetry row.
func (r GenerationRecord) Stats() telemetry.GenerationStats {
	s := telemetry.GenerationStats{
		Generation:          r.Generation,
		Population:          r.Population,
		Ticks:               r.Ticks,
		SimTimeSec:          r.SimTime,
		Dead:                r.Dead,
		ReachedGoal:         r.ReachedGoal,
		BestEverReachedGoal: r.BestEverReachedGoal,
		BestSteps:           r.BestSteps,
		MissDistanceMean:    r.MissDistanceMean,
	}
	s.ApplyFitness(telemetry.SummarizeFitness(r.Fitness))
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Int("ticks", r.Ticks),
		slog.Int("reached_goal", r.ReachedGoal),
		slog.Int("best_ever_reached_goal", r.BestEverReachedGoal),
		slog.Int("best_index", r.BestIndex),
		slog.Int("best_steps", r.BestSteps),
		slog.Float64("fitness_sum", r.FitnessSum),
		slog.Float64("max_fitness", r.MaxFitness),
	)
}
