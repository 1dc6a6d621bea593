package main

import (
	"log/slog"

	"github.com/pthm-cable/dots/game"
	"github.com/pthm-cable/dots/telemetry"
)

// session turns generation records into logs, CSV rows and milestones.
// It is only used from the host's main goroutine.
type session struct {
	out        *telemetry.OutputManager
	milestones *telemetry.MilestoneDetector
	perf       *telemetry.PerfCollector
	logStats   bool
	stall      int

	shortest int // fewest steps to the goal so far, 0 if never reached
}

func newSession(out *telemetry.OutputManager, perf *telemetry.PerfCollector, stall int, logStats bool) *session {
	return &session{
		out:        out,
		milestones: telemetry.NewMilestoneDetector(stall),
		perf:       perf,
		logStats:   logStats,
		stall:      stall,
	}
}

// reset forgets per-run state after a restart. Output files stay open.
func (s *session) reset() {
	s.milestones = telemetry.NewMilestoneDetector(s.stall)
	s.shortest = 0
}

func (s *session) onGeneration(rec game.GenerationRecord) {
	stats := rec.Stats()
	if rec.ReachedGoal > 0 && (s.shortest == 0 || rec.BestSteps < s.shortest) {
		s.shortest = rec.BestSteps
	}

	if s.logStats {
		stats.LogStats()
	}
	if s.out != nil {
		if err := s.out.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation", "error", err)
		}
	}

	for _, m := range s.milestones.Check(stats) {
		m.LogMilestone()
		if s.out != nil {
			if err := s.out.WriteMilestone(m); err != nil {
				slog.Error("failed to write milestone", "error", err)
			}
		}
	}

	perfStats := s.perf.Stats()
	if s.logStats {
		perfStats.LogStats()
	}
	if s.out != nil {
		if err := s.out.WritePerf(perfStats, rec.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
