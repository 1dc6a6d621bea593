// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/genome"
)

// Kinematics holds an agent's position and motion.
type Kinematics struct {
	Pos     r2.Vec
	Heading float64 // degrees, unbounded accumulator
	Speed   float64 // world units per second
}

// Status holds lifecycle flags and the fitness score.
type Status struct {
	Dead        bool
	ReachedGoal bool
	IsBest      bool
	Fitness     float64
}

// Steering owns the genome and the direction-change timer.
type Steering struct {
	Genome    *genome.Genome
	SinceTurn float64 // seconds since the last heading change
}
