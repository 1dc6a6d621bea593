package genome

import (
	"math/rand"
	"slices"
	"testing"
)

func TestNewRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := New(rng, 5000, 60)

	if g.Len() != 5000 {
		t.Fatalf("Len() = %d, want 5000", g.Len())
	}

	seenMin, seenMax := false, false
	for i, v := range g.Instructions() {
		if v < -30 || v > 29 {
			t.Fatalf("instruction %d = %d, want in [-30, 29]", i, v)
		}
		seenMin = seenMin || v == -30
		seenMax = seenMax || v == 29
	}
	if !seenMin || !seenMax {
		t.Errorf("range ends not drawn in 5000 samples (min %v, max %v)", seenMin, seenMax)
	}
}

func TestNextExhaustion(t *testing.T) {
	g := FromInstructions([]int{3, -7}, 60)

	for i, want := range []int{3, -7} {
		got, ok := g.Next()
		if !ok || got != want {
			t.Fatalf("Next() #%d = (%d, %v), want (%d, true)", i, got, ok, want)
		}
	}
	if _, ok := g.Next(); ok {
		t.Error("Next() after last instruction should report exhaustion")
	}
	if _, ok := g.Next(); ok {
		t.Error("exhaustion should be terminal")
	}
	if g.Steps() != 2 {
		t.Errorf("Steps() = %d, want 2", g.Steps())
	}
}

func TestEmptyGenomeIsExhausted(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)), 0, 60)
	if _, ok := g.Next(); ok {
		t.Error("zero-length genome should be exhausted immediately")
	}
}

func TestCloneResetsCursorAndSharesNothing(t *testing.T) {
	src := FromInstructions([]int{1, 2, 3}, 60)
	src.Next()
	src.Next()

	clone := src.Clone()
	if clone.Steps() != 0 {
		t.Errorf("clone Steps() = %d, want 0", clone.Steps())
	}
	if !slices.Equal(clone.Instructions(), src.Instructions()) {
		t.Errorf("clone = %v, want %v", clone.Instructions(), src.Instructions())
	}

	clone.Mutate(rand.New(rand.NewSource(7)), 1)
	if !slices.Equal(src.Instructions(), []int{1, 2, 3}) {
		t.Errorf("mutating clone changed source: %v", src.Instructions())
	}
}

func TestMutateRateZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := New(rng, 100, 60)

	clone := src.Clone()
	clone.Mutate(rng, 0)

	if !slices.Equal(clone.Instructions(), src.Instructions()) {
		t.Error("rate 0 mutation changed the clone")
	}
}

func TestMutateRateOneIsReproducible(t *testing.T) {
	src := New(rand.New(rand.NewSource(42)), 100, 60)

	run := func() []int {
		c := src.Clone()
		c.Mutate(rand.New(rand.NewSource(99)), 1)
		return c.Instructions()
	}

	first, second := run(), run()
	if !slices.Equal(first, second) {
		t.Error("rate 1 mutation with the same seed should be identical across runs")
	}
	if slices.Equal(first, src.Instructions()) {
		t.Error("rate 1 mutation left every instruction unchanged")
	}
}

func TestMutateRateIsApproximate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := New(rng, 10000, 1<<20)

	c := src.Clone()
	c.Mutate(rng, 0.01)

	changed := 0
	a, b := src.Instructions(), c.Instructions()
	for i := range a {
		if a[i] != b[i] {
			changed++
		}
	}
	// ~100 expected; wide bounds keep this stable
	if changed < 50 || changed > 160 {
		t.Errorf("changed %d of 10000 at rate 0.01, want roughly 100", changed)
	}
}
