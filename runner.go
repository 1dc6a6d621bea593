package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/game"
	"github.com/pthm-cable/dots/telemetry"
)

// runner drives a controller on its own goroutine at real-time pace.
// The window reads snapshots and receives generation records over gens.
type runner struct {
	cfg            *config.Config
	seed           int64
	maxGenerations int
	ticksPerFrame  int

	paused   atomic.Bool
	gens     chan game.GenerationRecord
	restarts int

	ctrl    *game.Controller
	hof     *telemetry.HallOfFame
	cancel  context.CancelFunc
	done    chan struct{}
	started time.Time
}

func newRunner(cfg *config.Config, seed int64, maxGenerations, ticksPerFrame int) *runner {
	return &runner{
		cfg:            cfg,
		seed:           seed,
		maxGenerations: maxGenerations,
		ticksPerFrame:  max(ticksPerFrame, 1),
		gens:           make(chan game.GenerationRecord, 64),
	}
}

// start creates a fresh controller and runs it in the background.
// Each restart gets its own seed so runs differ but stay reproducible.
func (r *runner) start() error {
	ctx, cancel := context.WithCancel(context.Background())
	seed := r.seed + int64(r.restarts)
	r.hof = telemetry.NewHallOfFame(r.cfg.Telemetry.HallOfFameSize)

	ctrl, err := game.New(r.cfg, rand.New(rand.NewSource(seed)),
		game.WithPacer(r.pacer(ctx)),
		game.WithGenerationCallback(r.publish),
		game.WithHallOfFame(r.hof),
	)
	if err != nil {
		cancel()
		return err
	}

	r.ctrl = ctrl
	r.cancel = cancel
	r.done = make(chan struct{})
	r.started = time.Now()

	slog.Info("run started", "seed", seed, "run", r.restarts, "population", ctrl.Population())

	go func(done chan struct{}) {
		defer close(done)
		err := ctrl.Run(ctx, r.maxGenerations)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("run failed", "error", err)
		}
	}(r.done)
	return nil
}

// stop cancels the run and waits for the in-flight generation to finish.
func (r *runner) stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil

	if r.hof.Len() > 0 {
		slog.Info("run finished", "run", r.restarts, "generations", r.ctrl.Generation(), "hall_of_fame", r.hof)
	}
}

// restart stops the current run and starts a new one with the next seed.
func (r *runner) restart() error {
	r.stop()
	r.restarts++
	r.paused.Store(false)
	return r.start()
}

// publish hands a record to the window without blocking the simulation.
func (r *runner) publish(rec game.GenerationRecord) {
	select {
	case r.gens <- rec:
	default:
		slog.Warn("generation record dropped", "generation", rec.Generation)
	}
}

// pacer sleeps so each tick of dt seconds takes dt/ticksPerFrame of wall time.
// It blocks while paused and returns immediately once ctx is cancelled.
func (r *runner) pacer(ctx context.Context) func() {
	step := time.Duration(r.cfg.Simulation.DT / float64(r.ticksPerFrame) * float64(time.Second))
	next := time.Now()

	return func() {
		for r.paused.Load() && ctx.Err() == nil {
			time.Sleep(10 * time.Millisecond)
			next = time.Now()
		}
		if ctx.Err() != nil {
			return
		}

		next = next.Add(step)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		} else {
			next = time.Now()
		}
	}
}

// snapshot returns the latest published state.
func (r *runner) snapshot() *game.Snapshot {
	return r.ctrl.Snapshot()
}

// elapsed returns wall time since the current run started.
func (r *runner) elapsed() time.Duration {
	return time.Since(r.started)
}
