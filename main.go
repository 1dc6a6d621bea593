package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/camera"
	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/game"
	"github.com/pthm-cable/dots/inspector"
	"github.com/pthm-cable/dots/renderer"
	"github.com/pthm-cable/dots/telemetry"
	"github.com/pthm-cable/dots/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	ticksPerFrame := flag.Int("ticks-per-frame", 0, "Simulation speed-up in windowed mode (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if out != nil {
		defer out.Close()
		if err := out.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	sess := newSession(out, perf, cfg.Telemetry.StallGenerations, *logStats)

	if *headless {
		runHeadless(cfg, rngSeed, *maxGenerations, sess)
		return
	}

	tpf := cfg.Simulation.TicksPerFrame
	if *ticksPerFrame > 0 {
		tpf = *ticksPerFrame
	}
	runWindowed(cfg, newRunner(cfg, rngSeed, *maxGenerations, tpf), sess)
}

// runHeadless ticks the controller on the main goroutine as fast as possible.
func runHeadless(cfg *config.Config, seed int64, maxGenerations int, sess *session) {
	hof := telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize)
	ctrl, err := game.New(cfg, rand.New(rand.NewSource(seed)), game.WithHallOfFame(hof))
	if err != nil {
		slog.Error("failed to create controller", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless simulation",
		"seed", seed,
		"population", ctrl.Population(),
		"max_generations", maxGenerations,
	)

	dt := cfg.Simulation.DT
	for maxGenerations <= 0 || ctrl.Generation() < maxGenerations {
		sess.perf.StartTick()
		sess.perf.StartPhase(telemetry.PhaseSimulate)
		allDead := ctrl.Tick(dt)
		if allDead {
			sess.perf.StartPhase(telemetry.PhaseTelemetry)
			sess.onGeneration(ctrl.Advance())
		}
		sess.perf.EndTick()
	}

	slog.Info("max generations reached",
		"generation", ctrl.Generation(),
		"shortest_path", sess.shortest,
		"hall_of_fame", hof,
	)
}

// runWindowed shows the population while a runner evolves it in the background.
func runWindowed(cfg *config.Config, r *runner, sess *session) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dots")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height),
		float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH), cfg.World.YDown)
	viewer := renderer.NewViewer(cam, float32(cfg.Agent.Radius))
	hud := ui.NewHUD()
	insp := inspector.NewInspector(cam, float32(cfg.Agent.Radius)*2)

	if err := r.start(); err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer r.stop()

	for !rl.WindowShouldClose() {
		sess.perf.StartTick()

		sess.perf.StartPhase(telemetry.PhaseTelemetry)
		drainGenerations(r, sess)

		if rl.IsWindowResized() {
			cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
			insp.Layout(int32(rl.GetScreenWidth()))
		}
		handleCamera(cam)

		sess.perf.StartPhase(telemetry.PhaseDraw)
		snap := r.snapshot()
		insp.HandleInput(snap)

		rl.BeginDrawing()
		viewer.Draw(snap)
		insp.Draw(snap)
		action := hud.Draw(ui.HUDData{
			Generation:          snap.Generation,
			Dead:                snap.Dead,
			Population:          snap.Population,
			ReachedGoal:         snap.ReachedGoal,
			BestEverReachedGoal: snap.BestEverReachedGoal,
			MaxFitness:          snap.MaxFitness,
			Elapsed:             r.elapsed(),
			FPS:                 float64(rl.GetFPS()),
			HallBestSteps:       sess.shortest,
			Paused:              r.paused.Load(),
			ShowHeadings:        viewer.ShowHeadings,
		})
		hud.DrawControls(int32(rl.GetScreenHeight()))
		rl.EndDrawing()

		sess.perf.EndTick()
		sess.perf.RecordFrame()

		if action == ui.ActionNone {
			action = ui.HandleKeys()
		}
		switch action {
		case ui.ActionPause:
			r.paused.Store(!r.paused.Load())
		case ui.ActionToggleHeadings:
			viewer.ShowHeadings = !viewer.ShowHeadings
		case ui.ActionRestart:
			r.stop()
			drainGenerations(r, sess)
			sess.reset()
			if err := r.restart(); err != nil {
				slog.Error("failed to restart simulation", "error", err)
				return
			}
		}
	}
}

// drainGenerations feeds every pending generation record to the session.
func drainGenerations(r *runner, sess *session) {
	for {
		select {
		case rec := <-r.gens:
			sess.onGeneration(rec)
		default:
			return
		}
	}
}

// handleCamera applies wheel zoom, right-drag pan and the reset key.
func handleCamera(cam *camera.Camera) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + 0.1*wheel)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		cam.Reset()
	}
}
