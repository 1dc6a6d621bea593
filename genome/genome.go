// Package genome holds the fixed-length heading-change sequence that steers an agent.
package genome

import "math/rand"

// Genome is an ordered sequence of heading changes in degrees, read front to back.
// Values lie in [-maxTurn/2, maxTurn/2-1].
type Genome struct {
	turns   []int
	maxTurn int
	cursor  int
}

// New draws length instructions uniformly from the genome range.
func New(rng *rand.Rand, length, maxTurn int) *Genome {
	g := &Genome{
		turns:   make([]int, length),
		maxTurn: maxTurn,
	}
	for i := range g.turns {
		g.turns[i] = g.draw(rng)
	}
	return g
}

// FromInstructions builds a genome over a copy of turns.
func FromInstructions(turns []int, maxTurn int) *Genome {
	cp := make([]int, len(turns))
	copy(cp, turns)
	return &Genome{turns: cp, maxTurn: maxTurn}
}

func (g *Genome) draw(rng *rand.Rand) int {
	return rng.Intn(g.maxTurn) - g.maxTurn/2
}

// Next returns the instruction at the cursor and advances it.
// ok is false once every instruction has been consumed.
func (g *Genome) Next() (turn int, ok bool) {
	if g.cursor >= len(g.turns) {
		return 0, false
	}
	turn = g.turns[g.cursor]
	g.cursor++
	return turn, true
}

// Clone returns a deep copy with the cursor rewound.
func (g *Genome) Clone() *Genome {
	return FromInstructions(g.turns, g.maxTurn)
}

// Mutate redraws each instruction independently with probability rate.
// A zero rate consumes no randomness.
func (g *Genome) Mutate(rng *rand.Rand, rate float64) {
	if rate <= 0 {
		return
	}
	for i := range g.turns {
		if rng.Float64() >= rate {
			continue
		}
		g.turns[i] = g.draw(rng)
	}
}

// Len returns the number of instructions.
func (g *Genome) Len() int { return len(g.turns) }

// Steps returns how many instructions have been consumed.
func (g *Genome) Steps() int { return g.cursor }

// MaxTurn returns the instruction magnitude bound.
func (g *Genome) MaxTurn() int { return g.maxTurn }

// Instructions returns a copy of the sequence.
func (g *Genome) Instructions() []int {
	cp := make([]int, len(g.turns))
	copy(cp, g.turns)
	return cp
}
