package game

import (
	"math"
	"math/rand"
)

// spinWheel returns the first index whose cumulative fitness exceeds draw.
// draw is expected in [0, sum). If rounding leaves nothing selected the last index wins.
func spinWheel(fitness []float64, draw float64) int {
	var cum float64
	for i, f := range fitness {
		cum += f
		if cum > draw {
			return i
		}
	}
	return len(fitness) - 1
}

// selectParent picks an index with probability proportional to its fitness.
// A non-positive or non-finite sum falls back to a uniform pick.
func selectParent(rng *rand.Rand, fitness []float64, sum float64) int {
	if !(sum > 0) || math.IsInf(sum, 0) {
		return rng.Intn(len(fitness))
	}
	return spinWheel(fitness, rng.Float64()*sum)
}
