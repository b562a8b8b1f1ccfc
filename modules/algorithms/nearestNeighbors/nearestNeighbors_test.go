package nearestNeighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestBuildNearestNeighborsLists(t *testing.T) {
	// Cities on a line at x = 0, 1, 3, 7.
	distances := mat.NewSymDense(4, []float64{
		0, 1, 3, 7,
		1, 0, 2, 6,
		3, 2, 0, 4,
		7, 6, 4, 0,
	})

	lists := BuildNearestNeighborsLists(distances, 2)

	assert.Equal(t, [][]int{
		{1, 2},
		{0, 2},
		{1, 0},
		{2, 1},
	}, lists)
}

func TestBuildNearestNeighborsListsClampsK(t *testing.T) {
	distances := mat.NewSymDense(3, []float64{
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	})

	lists := BuildNearestNeighborsLists(distances, 25)

	assert.Equal(t, [][]int{{1, 2}, {0, 2}, {0, 1}}, lists)
}
