// Package agent implements the per-agent rules: movement, termination, and fitness.
//
// An Agent is a view over one entity's components. It can be bound to
// components stored in an ECS world or to freshly allocated ones.
package agent

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/components"
	"github.com/pthm-cable/dots/genome"
)

// Fitness constants for goal-reaching agents.
const (
	reachedFloor = 1.0 / 16.0
	reachedScale = 10000.0
)

// Category is the display status of an agent.
type Category uint8

const (
	CategoryAlive Category = iota
	CategoryDead
	CategoryReachedGoal
	CategoryBest
)

func (c Category) String() string {
	switch c {
	case CategoryAlive:
		return "alive"
	case CategoryDead:
		return "dead"
	case CategoryReachedGoal:
		return "reached_goal"
	case CategoryBest:
		return "best"
	}
	return "unknown"
}

// Direction returns the unit vector for a heading in degrees.
// Positive headings turn counter-clockwise as seen on screen, so with yDown
// the y component is negated.
func Direction(heading float64, yDown bool) r2.Vec {
	rad := heading * math.Pi / 180
	d := r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
	if yDown {
		d.Y = -d.Y
	}
	return d
}

// Agent is a view over one agent's components.
type Agent struct {
	Kin    *components.Kinematics
	Status *components.Status
	Steer  *components.Steering
}

// New spawns an agent at the start position that steers by g.
func New(p Params, g *genome.Genome) Agent {
	return Agent{
		Kin: &components.Kinematics{
			Pos:     p.Start,
			Heading: p.StartHeading,
			Speed:   p.Speed,
		},
		Status: &components.Status{},
		Steer:  &components.Steering{Genome: g},
	}
}

// Bind returns a view over existing components.
func Bind(kin *components.Kinematics, status *components.Status, steer *components.Steering) Agent {
	return Agent{Kin: kin, Status: status, Steer: steer}
}

// Tick advances the agent by elapsed seconds. Dead agents do nothing.
func (a Agent) Tick(p Params, elapsed float64) {
	if a.Status.Dead {
		return
	}

	step := r2.Scale(a.Kin.Speed*elapsed, Direction(a.Kin.Heading, p.YDown))
	a.Kin.Pos = r2.Add(a.Kin.Pos, step)

	if !p.InBounds(a.Kin.Pos) {
		a.Status.Dead = true
		return
	}

	if p.Goal.Contains(a.Kin.Pos) {
		a.Status.Dead = true
		a.Status.ReachedGoal = true
		return
	}

	a.Steer.SinceTurn += elapsed
	if a.Steer.SinceTurn < p.TurnInterval {
		return
	}
	a.Steer.SinceTurn -= p.TurnInterval

	turn, ok := a.Steer.Genome.Next()
	if !ok {
		// Running out of instructions is fatal
		a.Status.Dead = true
		return
	}
	a.Kin.Heading += float64(turn)
}

// Steps returns the number of genome instructions consumed.
func (a Agent) Steps() int {
	return a.Steer.Genome.Steps()
}

// DistanceToGoal returns the distance from the agent to the goal center.
func (a Agent) DistanceToGoal(p Params) float64 {
	return r2.Norm(r2.Sub(a.Kin.Pos, p.Goal.Center))
}

// CalculateFitness scores the agent from its final state and stores the result.
// Reachers score by path length, others by inverse squared distance to the goal.
func (a Agent) CalculateFitness(p Params) float64 {
	var fitness float64
	if a.Status.ReachedGoal {
		steps := float64(max(a.Steps(), 1))
		fitness = reachedFloor + reachedScale/(steps*steps)
	} else {
		d2 := r2.Norm2(r2.Sub(a.Kin.Pos, p.Goal.Center))
		if d2 == 0 {
			fitness = 1
		} else {
			fitness = 1 / d2
		}
	}
	a.Status.Fitness = fitness
	return fitness
}

// Clone returns a fresh agent at the spawn point with a copy of this genome.
func (a Agent) Clone(p Params) Agent {
	return New(p, a.Steer.Genome.Clone())
}

// Mutate mutates the owned genome.
func (a Agent) Mutate(rng *rand.Rand, rate float64) {
	a.Steer.Genome.Mutate(rng, rate)
}

// Category returns the display status. Best outranks reached, reached outranks dead.
func (a Agent) Category() Category {
	switch {
	case a.Status.IsBest:
		return CategoryBest
	case a.Status.ReachedGoal:
		return CategoryReachedGoal
	case a.Status.Dead:
		return CategoryDead
	}
	return CategoryAlive
}
