package aco

import "gonum.org/v1/gonum/mat"

func newUniformMatrix(dimension int, value float64) *mat.SymDense {
	data := make([]float64, dimension*dimension)
	for i := range data {
		data[i] = value
	}

	return mat.NewSymDense(dimension, data)
}

// depositPheromone adds q/length to every edge of the closed tour. SetSym
// writes (i,j) and (j,i) together, and ants sharing an edge accumulate.
func depositPheromone(deltaPheromones *mat.SymDense, tour []int, length, q float64) {
	n := len(tour)
	if n < 2 || !(length > 0) {
		return
	}

	deposit := q / length

	for k := 0; k < n; k++ {
		from, to := tour[k], tour[(k+1)%n]
		deltaPheromones.SetSym(from, to, deltaPheromones.At(from, to)+deposit)
	}
}

// updatePheromones evaporates and merges the iteration's deposits:
// tau = (1-rho)*tau + delta.
func updatePheromones(pheromones, deltaPheromones *mat.SymDense, rho float64) {
	pheromones.ScaleSym(1-rho, pheromones)
	pheromones.AddSym(pheromones, deltaPheromones)
}
