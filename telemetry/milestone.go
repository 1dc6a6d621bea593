package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneFirstArrival MilestoneType = "first_arrival"
	MilestoneShorterPath  MilestoneType = "shorter_path"
	MilestoneAllArrived   MilestoneType = "all_arrived"
	MilestoneStall        MilestoneType = "stall"
)

// Milestone is a notable moment in a run.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Generation  int           `csv:"generation"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"generation", m.Generation,
		"description", m.Description,
	)
}

// MilestoneDetector watches generation stats for notable changes.
type MilestoneDetector struct {
	stallGenerations int

	arrived     bool
	allArrived  bool
	bestSteps   int     // fewest steps seen, 0 before first arrival
	bestFitness float64 // highest max fitness seen
	sinceBest   int     // generations without a new best fitness
}

// NewMilestoneDetector creates a detector. stallGenerations <= 0 disables stall detection.
func NewMilestoneDetector(stallGenerations int) *MilestoneDetector {
	return &MilestoneDetector{stallGenerations: stallGenerations}
}

// Check analyzes one generation's stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats GenerationStats) []Milestone {
	var out []Milestone

	if stats.ReachedGoal > 0 {
		switch {
		case !md.arrived:
			md.arrived = true
			md.bestSteps = stats.BestSteps
			out = append(out, Milestone{
				Type:       MilestoneFirstArrival,
				Generation: stats.Generation,
				Description: fmt.Sprintf("%d of %d agents reached the goal, best path %d steps",
					stats.ReachedGoal, stats.Population, stats.BestSteps),
			})
		case stats.BestSteps > 0 && stats.BestSteps < md.bestSteps:
			out = append(out, Milestone{
				Type:        MilestoneShorterPath,
				Generation:  stats.Generation,
				Description: fmt.Sprintf("best path shortened from %d to %d steps", md.bestSteps, stats.BestSteps),
			})
			md.bestSteps = stats.BestSteps
		}
	}

	if !md.allArrived && stats.Population > 0 && stats.ReachedGoal == stats.Population {
		md.allArrived = true
		out = append(out, Milestone{
			Type:        MilestoneAllArrived,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("all %d agents reached the goal", stats.Population),
		})
	}

	if stats.FitnessMax > md.bestFitness {
		md.bestFitness = stats.FitnessMax
		md.sinceBest = 0
	} else {
		md.sinceBest++
		if md.stallGenerations > 0 && md.sinceBest == md.stallGenerations {
			out = append(out, Milestone{
				Type:        MilestoneStall,
				Generation:  stats.Generation,
				Description: fmt.Sprintf("max fitness %.4g unchanged for %d generations", md.bestFitness, md.sinceBest),
			})
		}
	}

	return out
}
