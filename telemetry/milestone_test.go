package telemetry

import "testing"

func milestoneTypes(ms []Milestone) []MilestoneType {
	out := make([]MilestoneType, len(ms))
	for i, m := range ms {
		out[i] = m.Type
	}
	return out
}

func hasType(ms []Milestone, typ MilestoneType) bool {
	for _, m := range ms {
		if m.Type == typ {
			return true
		}
	}
	return false
}

func TestMilestoneArrivals(t *testing.T) {
	md := NewMilestoneDetector(0)

	tests := []struct {
		name    string
		stats   GenerationStats
		want    MilestoneType
		trigger bool
	}{
		{"nobody arrives", GenerationStats{Generation: 0, Population: 10, FitnessMax: 0.1}, MilestoneFirstArrival, false},
		{"first arrival", GenerationStats{Generation: 1, Population: 10, ReachedGoal: 2, BestSteps: 40, FitnessMax: 6}, MilestoneFirstArrival, true},
		{"second arrival is not first", GenerationStats{Generation: 2, Population: 10, ReachedGoal: 3, BestSteps: 40, FitnessMax: 6}, MilestoneFirstArrival, false},
		{"shorter path", GenerationStats{Generation: 3, Population: 10, ReachedGoal: 3, BestSteps: 35, FitnessMax: 8}, MilestoneShorterPath, true},
		{"longer path ignored", GenerationStats{Generation: 4, Population: 10, ReachedGoal: 3, BestSteps: 50, FitnessMax: 4}, MilestoneShorterPath, false},
		{"all arrived", GenerationStats{Generation: 5, Population: 10, ReachedGoal: 10, BestSteps: 35, FitnessMax: 8}, MilestoneAllArrived, true},
		{"all arrived once", GenerationStats{Generation: 6, Population: 10, ReachedGoal: 10, BestSteps: 35, FitnessMax: 8}, MilestoneAllArrived, false},
	}

	for _, tt := range tests {
		got := md.Check(tt.stats)
		if hasType(got, tt.want) != tt.trigger {
			t.Errorf("%s: milestones = %v, want %s triggered = %v", tt.name, milestoneTypes(got), tt.want, tt.trigger)
		}
	}
}

func TestMilestoneStall(t *testing.T) {
	md := NewMilestoneDetector(3)

	md.Check(GenerationStats{Generation: 0, FitnessMax: 1})
	for gen := 1; gen <= 2; gen++ {
		if got := md.Check(GenerationStats{Generation: gen, FitnessMax: 0.5}); hasType(got, MilestoneStall) {
			t.Fatalf("stall triggered early at generation %d", gen)
		}
	}

	got := md.Check(GenerationStats{Generation: 3, FitnessMax: 1})
	if !hasType(got, MilestoneStall) {
		t.Fatalf("milestones = %v, want stall at generation 3", milestoneTypes(got))
	}

	// Fires once per streak
	if got := md.Check(GenerationStats{Generation: 4, FitnessMax: 1}); hasType(got, MilestoneStall) {
		t.Error("stall triggered twice in one streak")
	}

	// Improvement resets the streak
	md.Check(GenerationStats{Generation: 5, FitnessMax: 2})
	for gen := 6; gen <= 7; gen++ {
		md.Check(GenerationStats{Generation: gen, FitnessMax: 2})
	}
	if got := md.Check(GenerationStats{Generation: 8, FitnessMax: 2}); !hasType(got, MilestoneStall) {
		t.Errorf("milestones = %v, want stall after reset", milestoneTypes(got))
	}
}
