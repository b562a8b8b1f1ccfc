package aco

import (
	"context"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsp_aco/modules/geometry"
	"tsp_aco/modules/models"
	"tsp_aco/modules/utilities"
)

func unitSquare() []models.Point {
	return []models.Point{
		{Index: 1, X: 0, Y: 0},
		{Index: 2, X: 0, Y: 1},
		{Index: 3, X: 1, Y: 1},
		{Index: 4, X: 1, Y: 0},
	}
}

func randomPoints(n int, seed int64) []models.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]models.Point, n)
	for i := range points {
		points[i] = models.Point{Index: i + 1, X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}

	return points
}

func smallConfig() Config {
	config := DefaultConfig()
	config.Ants = 8
	config.Iterations = 40
	config.Seed = 42

	return config
}

func newTestACO(t *testing.T, points []models.Point, config Config) *ACO {
	t.Helper()

	graph, err := geometry.NewGraph(points, 0)
	require.NoError(t, err)

	aco, err := NewACO(graph, config)
	require.NoError(t, err)

	return aco
}

func cityTourLength(t *testing.T, points []models.Point, tour []int) float64 {
	t.Helper()

	graph, err := geometry.NewGraph(points, 0)
	require.NoError(t, err)

	length := 0.0
	for i := range tour {
		d, err := graph.Distance(tour[i], tour[(i+1)%len(tour)])
		require.NoError(t, err)
		length += d
	}

	return length
}

func TestRunUnitSquareFindsPerimeter(t *testing.T) {
	points := unitSquare()

	result, err := Solve(context.Background(), points, smallConfig())
	require.NoError(t, err)

	assert.InDelta(t, 4.0, result.Length, 1e-9)
	assert.True(t, models.IsPermutation(result.Tour, models.Indices(points)), "tour %v", result.Tour)
	assert.InDelta(t, result.Length, cityTourLength(t, points, result.Tour), 1e-9)
}

func TestRunBestTourIsValidPermutation(t *testing.T) {
	points := randomPoints(25, 3)
	// Sparse, unordered indices must be preserved.
	for i := range points {
		points[i].Index = 100 - 3*i
	}

	result, err := Solve(context.Background(), points, smallConfig())
	require.NoError(t, err)

	assert.True(t, models.IsPermutation(result.Tour, models.Indices(points)), "tour %v", result.Tour)
	assert.InDelta(t, result.Length, cityTourLength(t, points, result.Tour), 1e-9)
}

func TestRunBestLengthNonIncreasing(t *testing.T) {
	config := smallConfig()
	result, err := Solve(context.Background(), randomPoints(20, 5), config)
	require.NoError(t, err)

	require.Len(t, result.BestPerIteration, config.Iterations)
	for i := 1; i < len(result.BestPerIteration); i++ {
		assert.LessOrEqual(t, result.BestPerIteration[i], result.BestPerIteration[i-1])
	}

	assert.Equal(t, result.Length, result.BestPerIteration[config.Iterations-1])
	assert.Equal(t, result.Length, result.BestPerIteration[result.BestAtIteration])
	if result.BestAtIteration > 0 {
		assert.Greater(t, result.BestPerIteration[result.BestAtIteration-1], result.Length)
	}
}

func TestRunDeterministic(t *testing.T) {
	points := randomPoints(18, 11)
	config := smallConfig()

	first, err := Solve(context.Background(), points, config)
	require.NoError(t, err)

	second, err := Solve(context.Background(), points, config)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed, different results (-first +second):\n%s", diff)
	}

	config.Workers = 4
	parallel, err := Solve(context.Background(), points, config)
	require.NoError(t, err)

	if diff := cmp.Diff(first, parallel); diff != "" {
		t.Errorf("worker count changed the result (-sequential +parallel):\n%s", diff)
	}
}

func TestRunSingleAntSingleIteration(t *testing.T) {
	points := randomPoints(9, 21)
	config := smallConfig()
	config.Ants = 1
	config.Iterations = 1

	result, err := Solve(context.Background(), points, config)
	require.NoError(t, err)

	// Rebuild the only ant's tour from the same stream.
	aco := newTestACO(t, points, config)
	a := ant{
		allowed:       make([]bool, aco.dimension),
		probabilities: make([]float64, aco.dimension),
		rng:           rand.New(rand.NewSource(deriveSeed(aco.seed, 0))),
	}
	aco.constructTour(&a)

	assert.Equal(t, aco.graph.CityTour(a.tour), result.Tour)
	assert.Equal(t, a.length, result.Length)
	assert.Zero(t, result.BestAtIteration)
}

func TestRunPheromonesStayNonNegative(t *testing.T) {
	for _, rho := range []float64{0, 0.3, 0.7, 1} {
		config := smallConfig()
		config.Rho = rho
		config.Iterations = 10

		aco := newTestACO(t, randomPoints(12, 8), config)
		_, err := aco.Run(context.Background())
		require.NoError(t, err)

		pheromones := aco.Pheromones()
		for i := 0; i < aco.dimension; i++ {
			for j := 0; j < aco.dimension; j++ {
				v := pheromones.At(i, j)
				assert.False(t, v < 0 || math.IsNaN(v), "rho=%v tau[%d][%d]=%v", rho, i, j, v)
			}
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, randomPoints(6, 1), smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWithLocalSearch(t *testing.T) {
	points := randomPoints(30, 13)
	config := smallConfig()
	config.LocalSearch = true
	config.Workers = 3

	result, err := Solve(context.Background(), points, config)
	require.NoError(t, err)

	assert.True(t, models.IsPermutation(result.Tour, models.Indices(points)))
	assert.InDelta(t, result.Length, cityTourLength(t, points, result.Tour), 1e-9)
}

func TestSolveEdgeCases(t *testing.T) {
	t.Run("single city", func(t *testing.T) {
		result, err := Solve(context.Background(), []models.Point{{Index: 9, X: 3, Y: 4}}, smallConfig())
		require.NoError(t, err)
		assert.Equal(t, []int{9}, result.Tour)
		assert.Zero(t, result.Length)
	})

	t.Run("no cities", func(t *testing.T) {
		_, err := Solve(context.Background(), nil, smallConfig())
		assert.ErrorIs(t, err, geometry.ErrEmptyInput)
	})

	t.Run("duplicate coordinates", func(t *testing.T) {
		points := append(unitSquare(), models.Point{Index: 5, X: 1, Y: 1})
		_, err := Solve(context.Background(), points, smallConfig())
		assert.ErrorIs(t, err, geometry.ErrDegenerateInput)
	})

	t.Run("distances overflow", func(t *testing.T) {
		points := []models.Point{{Index: 1, X: 1e308, Y: 0}, {Index: 2, X: -1e308, Y: 0}, {Index: 3, X: 0, Y: 1}}
		result, err := Solve(context.Background(), points, smallConfig())
		assert.ErrorIs(t, err, geometry.ErrDistanceOverflow)
		assert.Empty(t, result.Tour)
	})

	t.Run("too many cities", func(t *testing.T) {
		config := smallConfig()
		config.MaxCities = 3
		_, err := Solve(context.Background(), unitSquare(), config)
		assert.ErrorIs(t, err, geometry.ErrCapacityExceeded)
	})

	t.Run("two cities", func(t *testing.T) {
		points := []models.Point{{Index: 1, X: 0, Y: 0}, {Index: 2, X: 3, Y: 4}}
		result, err := Solve(context.Background(), points, smallConfig())
		require.NoError(t, err)
		assert.InDelta(t, 10.0, result.Length, 1e-12)
		assert.ElementsMatch(t, []int{1, 2}, result.Tour)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no ants", func(c *Config) { c.Ants = 0 }},
		{"no iterations", func(c *Config) { c.Iterations = 0 }},
		{"negative alpha", func(c *Config) { c.Alpha = -1 }},
		{"negative beta", func(c *Config) { c.Beta = -0.5 }},
		{"rho above one", func(c *Config) { c.Rho = 1.1 }},
		{"rho nan", func(c *Config) { c.Rho = math.NaN() }},
		{"zero q", func(c *Config) { c.Q = 0 }},
		{"zero initial pheromone", func(c *Config) { c.InitialPheromone = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"negative neighbor list", func(c *Config) { c.NeighborListSize = -1 }},
		{"negative max cities", func(c *Config) { c.MaxCities = -1 }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConstructTourIsPermutation(t *testing.T) {
	aco := newTestACO(t, randomPoints(15, 2), smallConfig())

	for seed := int64(1); seed <= 20; seed++ {
		a := ant{
			allowed:       make([]bool, aco.dimension),
			probabilities: make([]float64, aco.dimension),
			rng:           rand.New(rand.NewSource(seed)),
		}
		aco.constructTour(&a)

		sorted := slices.Sorted(slices.Values(a.tour))
		for i, v := range sorted {
			require.Equal(t, i, v, "seed %d tour %v", seed, a.tour)
		}
		assert.InDelta(t, utilities.TourLength(a.tour, aco.graph.Distances), a.length, 1e-9)
	}
}
