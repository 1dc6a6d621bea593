package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/dots/genome"
	"github.com/pthm-cable/dots/telemetry"
)

// TickFunc is called after every tick with the snapshot just published.
type TickFunc func(*Snapshot)

// GenerationFunc is called when a new generation has started.
type GenerationFunc func(GenerationRecord)

// GenomeSource creates a genome for one generation-0 agent.
type GenomeSource func(rng *rand.Rand) *genome.Genome

// Option configures a Controller.
type Option func(*options)

type options struct {
	onTick       TickFunc
	onGeneration GenerationFunc
	pacer        func()
	genomes      GenomeSource
	hof          *telemetry.HallOfFame
	logger       *slog.Logger
}

// WithTickCallback registers a callback fired after every tick.
// It runs on the simulation goroutine and must not block.
func WithTickCallback(fn TickFunc) Option {
	return func(o *options) { o.onTick = fn }
}

// WithGenerationCallback registers a callback fired after each generation boundary.
// It runs on the simulation goroutine and must not block.
func WithGenerationCallback(fn GenerationFunc) Option {
	return func(o *options) { o.onGeneration = fn }
}

// WithPacer sets a function RunGeneration calls between ticks, e.g. to sleep to real time.
func WithPacer(fn func()) Option {
	return func(o *options) { o.pacer = fn }
}

// WithGenomeSource replaces random genome creation for generation 0.
func WithGenomeSource(src GenomeSource) Option {
	return func(o *options) { o.genomes = src }
}

// WithHallOfFame records the best goal-reaching genome of each generation.
func WithHallOfFame(hof *telemetry.HallOfFame) Option {
	return func(o *options) { o.hof = hof }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
