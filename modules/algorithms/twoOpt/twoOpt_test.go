package twoOpt

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tsp_aco/modules/utilities"
)

func euclidean(xs, ys []float64) *mat.SymDense {
	n := len(xs)
	distances := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distances.SetSym(i, j, math.Hypot(xs[i]-xs[j], ys[i]-ys[j]))
		}
	}

	return distances
}

func TestRunUncrossesSquare(t *testing.T) {
	distances := euclidean([]float64{0, 0, 1, 1}, []float64{0, 1, 1, 0})
	tour := []int{0, 2, 1, 3}

	moves := NewTwoOpt(distances, 3).Run(tour)

	assert.Equal(t, 1, moves)
	assert.InDelta(t, 4.0, utilities.TourLength(tour, distances), 1e-12)
}

func TestRunSmallToursUntouched(t *testing.T) {
	distances := euclidean([]float64{0, 3, 1}, []float64{0, 0, 2})
	tour := []int{2, 0, 1}

	assert.Zero(t, NewTwoOpt(distances, 5).Run(tour))
	assert.Equal(t, []int{2, 0, 1}, tour)
}

func TestRunNeverWorsensAndKeepsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		n := 5 + rng.Intn(40)
		xs, ys := make([]float64, n), make([]float64, n)
		for i := range xs {
			xs[i], ys[i] = rng.Float64()*100, rng.Float64()*100
		}

		distances := euclidean(xs, ys)
		tour := rng.Perm(n)
		before := utilities.TourLength(tour, distances)

		NewTwoOpt(distances, 8).Run(tour)

		after := utilities.TourLength(tour, distances)
		assert.LessOrEqual(t, after, before+1e-9)

		sorted := slices.Clone(tour)
		slices.Sort(sorted)
		for i, v := range sorted {
			require.Equal(t, i, v)
		}
	}
}
