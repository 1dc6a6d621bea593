package telemetry

import "testing"

func TestHallOfFameOrdering(t *testing.T) {
	hof := NewHallOfFame(3)

	for i, f := range []float64{1, 5, 3, 4} {
		hof.Consider(HallEntry{Generation: i, Fitness: f})
	}

	if hof.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", hof.Len())
	}

	want := []float64{5, 4, 3}
	for i, e := range hof.Entries() {
		if e.Fitness != want[i] {
			t.Errorf("entry %d fitness = %v, want %v", i, e.Fitness, want[i])
		}
	}
}

func TestHallOfFameRejectsWhenFull(t *testing.T) {
	hof := NewHallOfFame(2)
	hof.Consider(HallEntry{Fitness: 10})
	hof.Consider(HallEntry{Fitness: 8})

	if hof.Consider(HallEntry{Fitness: 2}) {
		t.Error("Consider() accepted an entry below a full hall")
	}
	if !hof.Consider(HallEntry{Fitness: 9}) {
		t.Error("Consider() rejected an entry that beats the tail")
	}

	best, ok := hof.Best()
	if !ok || best.Fitness != 10 {
		t.Errorf("Best() = %+v, %v, want fitness 10", best, ok)
	}
}

func TestHallOfFameTiesKeepEarlier(t *testing.T) {
	hof := NewHallOfFame(5)
	hof.Consider(HallEntry{Generation: 1, Fitness: 2})
	hof.Consider(HallEntry{Generation: 2, Fitness: 2})

	if got := hof.Entries()[0].Generation; got != 1 {
		t.Errorf("first entry generation = %d, want 1", got)
	}
}

func TestHallOfFameCopiesTurns(t *testing.T) {
	hof := NewHallOfFame(1)
	turns := []int{1, 2, 3}
	hof.Consider(HallEntry{Fitness: 1, Turns: turns})
	turns[0] = 99

	best, _ := hof.Best()
	if best.Turns[0] != 1 {
		t.Errorf("stored turns changed with caller slice: %v", best.Turns)
	}
}

func TestHallOfFameNil(t *testing.T) {
	var hof *HallOfFame

	if hof.Consider(HallEntry{Fitness: 1}) {
		t.Error("nil hall accepted an entry")
	}
	if hof.Len() != 0 {
		t.Error("nil hall has entries")
	}
	if _, ok := hof.Best(); ok {
		t.Error("nil hall returned a best entry")
	}
}
