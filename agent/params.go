package agent

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/config"
)

// Goal is the circular target region.
type Goal struct {
	Center r2.Vec
	Radius float64
}

// Contains reports whether p is close enough to count as arrival.
// The radius is treated as a diameter: arrival needs distance < Radius/2.
func (g Goal) Contains(p r2.Vec) bool {
	return r2.Norm(r2.Sub(p, g.Center)) < g.Radius/2
}

// Params holds the fixed world rules every agent ticks against.
type Params struct {
	Width, Height float64 // world is [0, Width) x [0, Height)
	YDown         bool    // screen coordinates: positive heading moves up, y decreases

	Start        r2.Vec
	StartHeading float64 // degrees
	Speed        float64

	Goal         Goal
	TurnInterval float64 // seconds between genome instructions
}

// ParamsFromConfig builds agent params from loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Width:        cfg.Derived.WorldW,
		Height:       cfg.Derived.WorldH,
		YDown:        cfg.World.YDown,
		Start:        r2.Vec{X: cfg.Derived.StartX, Y: cfg.Derived.StartY},
		StartHeading: cfg.Agent.StartHeading,
		Speed:        cfg.Agent.Speed,
		Goal: Goal{
			Center: r2.Vec{X: cfg.Derived.GoalX, Y: cfg.Derived.GoalY},
			Radius: cfg.Goal.Radius,
		},
		TurnInterval: cfg.Derived.TurnInterval,
	}
}

// InBounds reports whether p lies inside the world.
func (p Params) InBounds(pos r2.Vec) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < p.Width && pos.Y < p.Height
}
