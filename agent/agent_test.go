package agent

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/components"
	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/genome"
)

// testParams returns a 200x200 world with the goal at (100, 100), radius 30,
// and a turn interval long enough that no instruction is consumed in one tick.
func testParams() Params {
	return Params{
		Width:        200,
		Height:       200,
		YDown:        true,
		Start:        r2.Vec{X: 100, Y: 180},
		StartHeading: 90,
		Speed:        10,
		Goal:         Goal{Center: r2.Vec{X: 100, Y: 100}, Radius: 30},
		TurnInterval: 100,
	}
}

func spawnAt(p Params, pos r2.Vec, heading float64, turns []int) Agent {
	a := New(p, genome.FromInstructions(turns, 60))
	a.Kin.Pos = pos
	a.Kin.Heading = heading
	return a
}

func TestTickMovesWithHeading(t *testing.T) {
	p := testParams()

	tests := []struct {
		name    string
		yDown   bool
		heading float64
		want    r2.Vec
	}{
		{"right", true, 0, r2.Vec{X: 60, Y: 50}},
		{"up screen", true, 90, r2.Vec{X: 50, Y: 40}},
		{"up cartesian", false, 90, r2.Vec{X: 50, Y: 60}},
		{"left", true, 180, r2.Vec{X: 40, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.YDown = tt.yDown
			a := spawnAt(p, r2.Vec{X: 50, Y: 50}, tt.heading, []int{0})
			a.Tick(p, 1)

			if d := r2.Norm(r2.Sub(a.Kin.Pos, tt.want)); d > 1e-9 {
				t.Errorf("pos = %v, want %v", a.Kin.Pos, tt.want)
			}
			if a.Status.Dead {
				t.Error("agent should still be alive")
			}
		})
	}
}

func TestTickDiesAtWorldEdge(t *testing.T) {
	p := testParams()
	a := spawnAt(p, r2.Vec{X: 190, Y: 50}, 0, []int{0})

	a.Tick(p, 1)

	if a.Kin.Pos.X != 200 {
		t.Fatalf("x = %v, want exactly 200", a.Kin.Pos.X)
	}
	if !a.Status.Dead {
		t.Error("agent at x == width should be dead")
	}
	if a.Status.ReachedGoal {
		t.Error("boundary death should not count as reaching the goal")
	}
}

func TestTickDiesBelowZero(t *testing.T) {
	p := testParams()
	a := spawnAt(p, r2.Vec{X: 5, Y: 50}, 180, []int{0})

	a.Tick(p, 1)

	if !a.Status.Dead {
		t.Errorf("agent at x = %v should be dead", a.Kin.Pos.X)
	}
}

func TestTickGoalRadius(t *testing.T) {
	p := testParams()

	tests := []struct {
		name    string
		startX  float64
		reached bool
	}{
		{"distance 10 reaches", 80, true},
		{"distance 16 does not", 74, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := spawnAt(p, r2.Vec{X: tt.startX, Y: 100}, 0, []int{0})
			a.Tick(p, 1)

			if a.Status.ReachedGoal != tt.reached {
				t.Errorf("ReachedGoal = %v, want %v (distance %v)", a.Status.ReachedGoal, tt.reached, a.DistanceToGoal(p))
			}
			if a.Status.Dead != tt.reached {
				t.Errorf("Dead = %v, want %v", a.Status.Dead, tt.reached)
			}
		})
	}
}

func TestTickExhaustionKills(t *testing.T) {
	p := testParams()
	p.TurnInterval = 0.1

	a := spawnAt(p, r2.Vec{X: 20, Y: 20}, 0, nil)
	a.Tick(p, 0.1)

	if !a.Status.Dead {
		t.Error("agent with exhausted genome should die at the scheduled change")
	}
	if a.Status.ReachedGoal {
		t.Error("exhaustion must not count as reaching the goal")
	}
}

func TestTickConsumesOnCadence(t *testing.T) {
	p := testParams()
	p.TurnInterval = 0.125
	p.Speed = 1

	a := spawnAt(p, r2.Vec{X: 20, Y: 150}, 90, []int{10, -20, 5})

	// Five ticks of 62.5ms: changes due at 125ms and 250ms
	for i := 0; i < 5; i++ {
		a.Tick(p, 0.0625)
	}

	if a.Steps() != 2 {
		t.Errorf("Steps() = %d, want 2", a.Steps())
	}
	if a.Kin.Heading != 80 {
		t.Errorf("Heading = %v, want 80", a.Kin.Heading)
	}
	if a.Status.Dead {
		t.Error("agent should still be alive")
	}
}

func TestDeadAgentIsFrozen(t *testing.T) {
	p := testParams()
	a := spawnAt(p, r2.Vec{X: 50, Y: 50}, 0, []int{1, 2, 3})
	a.Status.Dead = true

	a.Tick(p, 1)

	if a.Kin.Pos != (r2.Vec{X: 50, Y: 50}) {
		t.Errorf("dead agent moved to %v", a.Kin.Pos)
	}
	if a.Steps() != 0 {
		t.Errorf("dead agent consumed %d instructions", a.Steps())
	}
}

func TestCalculateFitness(t *testing.T) {
	p := testParams()

	tests := []struct {
		name    string
		pos     r2.Vec
		reached bool
		steps   int
		want    float64
	}{
		{"reached in 4 steps", r2.Vec{X: 100, Y: 95}, true, 4, 1.0/16 + 10000.0/16},
		{"reached in 100 steps", r2.Vec{X: 100, Y: 95}, true, 100, 1.0/16 + 1},
		{"reached with no steps", r2.Vec{X: 100, Y: 95}, true, 0, 1.0/16 + 10000},
		{"distance 10", r2.Vec{X: 110, Y: 100}, false, 3, 0.01},
		{"zero distance clamps", r2.Vec{X: 100, Y: 100}, false, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turns := make([]int, 200)
			a := spawnAt(p, tt.pos, 0, turns)
			for i := 0; i < tt.steps; i++ {
				a.Steer.Genome.Next()
			}
			a.Status.Dead = true
			a.Status.ReachedGoal = tt.reached

			got := a.CalculateFitness(p)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CalculateFitness() = %v, want %v", got, tt.want)
			}
			if a.Status.Fitness != got {
				t.Errorf("Status.Fitness = %v, want %v", a.Status.Fitness, got)
			}
		})
	}
}

func TestFitnessAlwaysPositive(t *testing.T) {
	cfg := config.Default()
	p := ParamsFromConfig(cfg)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a := New(p, genome.New(rng, cfg.Genome.Length, cfg.Genome.MaxTurn))
		for !a.Status.Dead {
			a.Tick(p, cfg.Simulation.DT)
		}
		if f := a.CalculateFitness(p); !(f > 0) {
			t.Fatalf("agent %d fitness = %v, want > 0", i, f)
		}
	}
}

func TestCloneResetsState(t *testing.T) {
	p := testParams()
	a := spawnAt(p, r2.Vec{X: 10, Y: 10}, 45, []int{4, 5, 6})
	a.Steer.Genome.Next()
	a.Status.Dead = true
	a.Status.ReachedGoal = true
	a.Status.IsBest = true
	a.Status.Fitness = 3

	c := a.Clone(p)

	if c.Kin.Pos != p.Start || c.Kin.Heading != p.StartHeading || c.Kin.Speed != p.Speed {
		t.Errorf("clone kinematics = %+v, want spawn state", *c.Kin)
	}
	if *c.Status != (components.Status{}) {
		t.Errorf("clone status = %+v, want zero", *c.Status)
	}
	if c.Steps() != 0 {
		t.Errorf("clone Steps() = %d, want 0", c.Steps())
	}
	if !slices.Equal(c.Steer.Genome.Instructions(), []int{4, 5, 6}) {
		t.Errorf("clone genome = %v", c.Steer.Genome.Instructions())
	}
	if c.Steer.Genome == a.Steer.Genome {
		t.Error("clone shares genome with source")
	}
}

func TestCategoryPrecedence(t *testing.T) {
	p := testParams()
	a := New(p, genome.FromInstructions(nil, 60))

	if got := a.Category(); got != CategoryAlive {
		t.Errorf("Category() = %v, want alive", got)
	}
	a.Status.Dead = true
	if got := a.Category(); got != CategoryDead {
		t.Errorf("Category() = %v, want dead", got)
	}
	a.Status.ReachedGoal = true
	if got := a.Category(); got != CategoryReachedGoal {
		t.Errorf("Category() = %v, want reached_goal", got)
	}
	a.Status.IsBest = true
	if got := a.Category(); got != CategoryBest {
		t.Errorf("Category() = %v, want best", got)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		heading float64
		yDown   bool
		want    r2.Vec
	}{
		{0, true, r2.Vec{X: 1, Y: 0}},
		{90, true, r2.Vec{X: 0, Y: -1}},
		{90, false, r2.Vec{X: 0, Y: 1}},
		{180, false, r2.Vec{X: -1, Y: 0}},
		{-90, true, r2.Vec{X: 0, Y: 1}},
		{450, true, r2.Vec{X: 0, Y: -1}},
	}

	for _, tt := range tests {
		got := Direction(tt.heading, tt.yDown)
		if r2.Norm(r2.Sub(got, tt.want)) > 1e-9 {
			t.Errorf("Direction(%v, %v) = %v, want %v", tt.heading, tt.yDown, got, tt.want)
		}
	}
}
