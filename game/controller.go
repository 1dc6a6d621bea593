// Package game runs the population: ticking agents, detecting the end of a
// generation, and breeding the next one.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/agent"
	"github.com/pthm-cable/dots/components"
	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/genome"
	"github.com/pthm-cable/dots/telemetry"
)

// Controller owns the population and drives generations.
// It is not safe for concurrent use, except for Snapshot.
type Controller struct {
	cfg    *config.Config
	params agent.Params
	rng    *rand.Rand
	opts   options

	world  *ecs.World
	mapper *ecs.Map3[components.Kinematics, components.Status, components.Steering]
	filter *ecs.Filter3[components.Kinematics, components.Status, components.Steering]
	order  []ecs.Entity // population order

	// State
	generation      int
	tick            int
	simTime         float64
	dead            int
	reached         int
	bestEverReached int
	lastMaxFitness  float64
	record          GenerationRecord

	snapshot atomic.Pointer[Snapshot]
}

// New creates a controller and spawns generation 0.
// cfg is validated first; rng is the only source of randomness.
func New(cfg *config.Config, rng *rand.Rand, opts ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("game: config is required")
	}
	if rng == nil {
		return nil, errors.New("game: random source is required")
	}

	cfg = cfg.Clone()
	cfg.ComputeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	world := ecs.NewWorld()
	c := &Controller{
		cfg:    cfg,
		params: agent.ParamsFromConfig(cfg),
		rng:    rng,
		world:  world,
		mapper: ecs.NewMap3[components.Kinematics, components.Status, components.Steering](world),
		filter: ecs.NewFilter3[components.Kinematics, components.Status, components.Steering](world),
		order:  make([]ecs.Entity, 0, cfg.Population.Size),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	if c.opts.logger == nil {
		c.opts.logger = slog.Default()
	}

	genomes := make([]*genome.Genome, cfg.Population.Size)
	for i := range genomes {
		if c.opts.genomes != nil {
			genomes[i] = c.opts.genomes(rng)
		} else {
			genomes[i] = genome.New(rng, cfg.Genome.Length, cfg.Genome.MaxTurn)
		}
	}
	c.spawn(genomes)
	c.publish()

	return c, nil
}

// spawn creates one entity per genome, in order.
func (c *Controller) spawn(genomes []*genome.Genome) {
	for _, g := range genomes {
		a := agent.New(c.params, g)
		e := c.mapper.NewEntity(a.Kin, a.Status, a.Steer)
		c.order = append(c.order, e)
	}
}

// view returns the agent bound to an entity's components.
func (c *Controller) view(e ecs.Entity) agent.Agent {
	return agent.Bind(c.mapper.Get(e))
}

// Tick advances every living agent by elapsed seconds and publishes a snapshot.
// Returns true once every agent is dead.
func (c *Controller) Tick(elapsed float64) bool {
	dead, reached := 0, 0

	query := c.filter.Query()
	for query.Next() {
		a := agent.Bind(query.Get())
		a.Tick(c.params, elapsed)
		if a.Status.Dead {
			dead++
		}
		if a.Status.ReachedGoal {
			reached++
		}
	}

	c.dead = dead
	c.reached = reached
	c.tick++
	c.simTime += elapsed

	snap := c.publish()
	if c.opts.onTick != nil {
		c.opts.onTick(snap)
	}

	return c.dead >= len(c.order)
}

// RunGeneration ticks with the configured step until every agent is dead,
// then advances to the next generation.
func (c *Controller) RunGeneration() GenerationRecord {
	dt := c.cfg.Simulation.DT
	for !c.Tick(dt) {
		if c.opts.pacer != nil {
			c.opts.pacer()
		}
	}
	return c.Advance()
}

// Run runs generations until ctx is done or maxGenerations have completed.
// maxGenerations <= 0 runs until cancelled. ctx is only checked between generations.
func (c *Controller) Run(ctx context.Context, maxGenerations int) error {
	for n := 0; maxGenerations <= 0 || n < maxGenerations; n++ {
		c.RunGeneration()
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Advance scores the current generation, breeds the next one, and replaces
// the population. Returns the record of the generation that just ended.
func (c *Controller) Advance() GenerationRecord {
	agents := c.Agents()
	rec := c.score(agents)

	// Final view of the ending generation with the best agent flagged
	c.lastMaxFitness = rec.MaxFitness
	c.publish()

	if rec.ReachedGoal > 0 {
		best := agents[rec.BestIndex]
		c.opts.hof.Consider(telemetry.HallEntry{
			Generation: rec.Generation,
			Steps:      best.Steps(),
			Fitness:    rec.MaxFitness,
			Turns:      best.Steer.Genome.Instructions(),
		})
	}

	c.replace(c.breed(agents, rec.Fitness, rec.FitnessSum))

	c.generation++
	c.tick = 0
	c.simTime = 0
	c.dead = 0
	c.reached = 0
	c.record = rec

	c.publish()
	c.opts.logger.Debug("generation complete", "record", rec)
	if c.opts.onGeneration != nil {
		c.opts.onGeneration(rec)
	}

	return rec
}

// score computes every agent's fitness, flags the first fittest agent as
// best, and updates the best-ever reached count.
func (c *Controller) score(agents []agent.Agent) GenerationRecord {
	rec := GenerationRecord{
		Generation: c.generation,
		Population: len(agents),
		Ticks:      c.tick,
		SimTime:    c.simTime,
		Fitness:    make([]float64, len(agents)),
	}

	var missSum float64
	misses := 0
	for i, a := range agents {
		rec.Fitness[i] = a.CalculateFitness(c.params)
		if a.Status.Dead {
			rec.Dead++
		}
		if a.Status.ReachedGoal {
			rec.ReachedGoal++
			if s := a.Steps(); rec.ReachedGoal == 1 || s < rec.BestSteps {
				rec.BestSteps = s
			}
		} else {
			missSum += a.DistanceToGoal(c.params)
			misses++
		}
	}
	if misses > 0 {
		rec.MissDistanceMean = missSum / float64(misses)
	}

	c.dead = rec.Dead
	c.reached = rec.ReachedGoal
	c.bestEverReached = max(c.bestEverReached, rec.ReachedGoal)
	rec.BestEverReachedGoal = c.bestEverReached
	rec.Elites = rec.ReachedGoal

	rec.FitnessSum = floats.Sum(rec.Fitness)
	rec.BestIndex = floats.MaxIdx(rec.Fitness)
	rec.MaxFitness = rec.Fitness[rec.BestIndex]
	agents[rec.BestIndex].Status.IsBest = true

	return rec
}

// breed builds the next generation's genomes: one clone per goal reacher in
// population order, then roulette picks until the population is full.
// All selection draws happen before any mutation.
func (c *Controller) breed(agents []agent.Agent, fitness []float64, sum float64) []*genome.Genome {
	pop := len(agents)
	next := make([]*genome.Genome, 0, pop)

	for _, a := range agents {
		if a.Status.ReachedGoal {
			next = append(next, a.Steer.Genome.Clone())
		}
	}
	elites := len(next)

	for len(next) < pop {
		parent := selectParent(c.rng, fitness, sum)
		next = append(next, agents[parent].Steer.Genome.Clone())
	}
	next = next[:pop]

	rate := c.cfg.Evolution.MutationRate
	for i, g := range next {
		if i < elites && c.cfg.Evolution.PreserveElites {
			continue
		}
		g.Mutate(c.rng, rate)
	}

	return next
}

// replace removes the current entities and spawns the given genomes.
func (c *Controller) replace(genomes []*genome.Genome) {
	for _, e := range c.order {
		c.world.RemoveEntity(e)
	}
	c.order = c.order[:0]
	c.spawn(genomes)
}

// publish builds and stores a snapshot of the current state.
func (c *Controller) publish() *Snapshot {
	views := make([]AgentView, len(c.order))
	for i, e := range c.order {
		a := c.view(e)
		views[i] = AgentView{
			X:        a.Kin.Pos.X,
			Y:        a.Kin.Pos.Y,
			Heading:  a.Kin.Heading,
			Steps:    a.Steps(),
			Category: a.Category(),
		}
	}

	snap := &Snapshot{
		Generation:          c.generation,
		Tick:                c.tick,
		SimTime:             c.simTime,
		Dead:                c.dead,
		ReachedGoal:         c.reached,
		BestEverReachedGoal: c.bestEverReached,
		MaxFitness:          c.lastMaxFitness,
		Population:          len(c.order),
		Agents:              views,
		Goal:                c.params.Goal,
		World:               r2.Vec{X: c.params.Width, Y: c.params.Height},
	}
	c.snapshot.Store(snap)
	return snap
}

// Snapshot returns the latest published snapshot. Safe to call from any goroutine.
func (c *Controller) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Generation returns the current generation index.
func (c *Controller) Generation() int { return c.generation }

// Population returns the number of agents.
func (c *Controller) Population() int { return len(c.order) }

// Record returns the record of the last completed generation.
func (c *Controller) Record() GenerationRecord { return c.record }

// Params returns the agent rules in use.
func (c *Controller) Params() agent.Params { return c.params }

// Agents returns views over the live population in population order.
// The views alias controller state and are invalidated by the next Advance.
func (c *Controller) Agents() []agent.Agent {
	out := make([]agent.Agent, len(c.order))
	for i, e := range c.order {
		out[i] = c.view(e)
	}
	return out
}
