package game

import (
	"math/rand"
	"time"
)

// RandomSource is the only source of non-determinism in the simulation.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a seeded source. A zero seed uses the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func choose(rng RandomSource, values ...float64) float64 {
	return values[rng.Intn(len(values))]
}
