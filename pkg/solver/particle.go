package solver

import "math"

// Particle is one candidate assignment tracked by the swarm, together
// with the best assignment its lineage has produced so far.
type Particle struct {
	Current Assignment
	Fitness float64

	// Best is the assignment that produced BestFitness, the minimum
	// fitness ever observed for this particle.
	Best        Assignment
	BestFitness float64
}

// newParticle builds an empty particle sized for numVMs. Randomness is
// supplied by the caller only when the initial population is seeded,
// never during copying.
func newParticle(numVMs int) *Particle {
	return &Particle{
		Current:     make(Assignment, numVMs),
		Fitness:     math.MaxFloat64,
		Best:        make(Assignment, numVMs),
		BestFitness: math.MaxFloat64,
	}
}
