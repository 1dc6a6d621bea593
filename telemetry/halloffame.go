package telemetry

import (
	"log/slog"
	"slices"
	"sort"
)

// HallEntry records a genome that steered an agent to the goal.
type HallEntry struct {
	Generation int
	Steps      int
	Fitness    float64
	Turns      []int
}

// HallOfFame keeps the fittest goal-reaching genomes seen so far, in memory only.
// Entries are sorted by descending fitness.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall that holds at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers an entry to the hall. Returns true if it was kept.
// Ties keep the earlier entry first.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if hof == nil {
		return false
	}

	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})

	// Full and would land past the end
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	entry.Turns = slices.Clone(entry.Turns)
	hof.entries = slices.Insert(hof.entries, idx, entry)
	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Best returns the fittest entry.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if hof == nil || len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Entries returns a copy of the entries, fittest first.
func (hof *HallOfFame) Entries() []HallEntry {
	if hof == nil {
		return nil
	}
	return slices.Clone(hof.entries)
}

// Len returns the number of entries.
func (hof *HallOfFame) Len() int {
	if hof == nil {
		return 0
	}
	return len(hof.entries)
}

// LogValue implements slog.LogValuer for structured logging.
func (hof *HallOfFame) LogValue() slog.Value {
	best, ok := hof.Best()
	if !ok {
		return slog.GroupValue(slog.Int("size", 0))
	}
	return slog.GroupValue(
		slog.Int("size", hof.Len()),
		slog.Int("best_generation", best.Generation),
		slog.Int("best_steps", best.Steps),
		slog.Float64("best_fitness", best.Fitness),
	)
}
