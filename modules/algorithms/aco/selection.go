package aco

import (
	"math"
	"math/rand"

	"tsp_aco/modules/utilities"
)

// cityWeights fills weights[s] = tau(current,s)^alpha * eta(current,s)^beta
// for every allowed s, zero elsewhere. It returns the weight total, the
// number of allowed cities and the last allowed one.
func (aco *ACO) cityWeights(current int, allowed []bool, weights []float64) (total float64, candidates, last int) {
	for s := 0; s < aco.dimension; s++ {
		if !allowed[s] {
			weights[s] = 0
			continue
		}

		pheromone := utilities.FastPow(aco.pheromones.At(current, s), aco.config.Alpha)
		weights[s] = pheromone * aco.desirabilities.At(current, s)
		total += weights[s]
		candidates++
		last = s
	}

	return total, candidates, last
}

// Weights that sum to zero or overflow cannot be normalized; selection
// then falls back to a uniform distribution over the allowed cities.
func normalizable(total float64) bool {
	return total > 0 && !math.IsInf(total, 0) && !math.IsNaN(total)
}

// probabilities fills out with the selection distribution over all cities
// from current, zero for cities no longer allowed. It returns the number
// of allowed cities and the last allowed one.
func (aco *ACO) probabilities(current int, allowed []bool, out []float64) (candidates, last int) {
	total, candidates, last := aco.cityWeights(current, allowed, out)

	for s := range out {
		switch {
		case !allowed[s]:
			out[s] = 0
		case normalizable(total):
			out[s] /= total
		default:
			out[s] = 1 / float64(candidates)
		}
	}

	return candidates, last
}

// Function to select the next city for an ant. The chosen city is marked
// as no longer allowed. At least one city must still be allowed.
func (aco *ACO) selectNextCity(current int, allowed []bool, probabilities []float64, rng *rand.Rand) int {
	candidates, last := aco.probabilities(current, allowed, probabilities)

	selected := last
	if candidates > 1 {
		selected = rouletteWheel(allowed, probabilities, last, rng.Float64())
	}

	allowed[selected] = false

	return selected
}

// rouletteWheel walks allowed cities in ascending order and picks the first
// whose cumulative probability reaches r. If rounding keeps the sum below
// r the walk ends without a match and fallback, the last city walked, is used.
func rouletteWheel(allowed []bool, probabilities []float64, fallback int, r float64) int {
	cumulativeProbability := 0.0

	for s, ok := range allowed {
		if !ok || probabilities[s] == 0 {
			continue
		}

		cumulativeProbability += probabilities[s]
		if cumulativeProbability >= r {
			return s
		}
	}

	return fallback
}
