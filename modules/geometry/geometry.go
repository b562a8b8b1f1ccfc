// Package geometry turns planar city coordinates into the symmetric
// distance and heuristic (inverse distance) matrices the colony reads.
package geometry

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"tsp_aco/modules/models"
)

var (
	ErrEmptyInput       = errors.New("no cities to visit")
	ErrDegenerateInput  = errors.New("distinct cities share coordinates")
	ErrInvalidIndex     = errors.New("city index must be positive")
	ErrDuplicateIndex   = errors.New("duplicate city index")
	ErrInvalidCoord     = errors.New("city coordinate is not finite")
	ErrDistanceOverflow = errors.New("distances between cities overflow")
	ErrCapacityExceeded = errors.New("city count exceeds the configured maximum")
)

// Graph is the read-only geometry shared by every ant. Matrices are
// addressed by position; Indices maps a position back to the city's own
// index and is sorted ascending, so scanning positions in order scans
// cities in ascending index order.
type Graph struct {
	Points     []models.Point
	Indices    []int
	Distances  *mat.SymDense
	Heuristics *mat.SymDense

	positions map[int]int
}

// NewGraph validates points and builds the distance and heuristic
// matrices. maxCities <= 0 means no limit.
func NewGraph(points []models.Point, maxCities int) (*Graph, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}

	if maxCities > 0 && len(points) > maxCities {
		return nil, fmt.Errorf("%w: %d cities, maximum is %d", ErrCapacityExceeded, len(points), maxCities)
	}

	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b models.Point) int {
		return cmp.Compare(a.Index, b.Index)
	})

	dimension := len(sorted)
	positions := make(map[int]int, dimension)
	indices := make([]int, dimension)

	for i, p := range sorted {
		if p.Index <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, p.Index)
		}

		if _, seen := positions[p.Index]; seen {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, p.Index)
		}

		if !isFinite(p.X) || !isFinite(p.Y) {
			return nil, fmt.Errorf("%w: city %d at (%v, %v)", ErrInvalidCoord, p.Index, p.X, p.Y)
		}

		positions[p.Index] = i
		indices[i] = p.Index
	}

	distances := mat.NewSymDense(dimension, nil)
	heuristics := mat.NewSymDense(dimension, nil)

	// Diagonal stays zero: a city is never reselected.
	longest := 0.0
	for i := 0; i < dimension; i++ {
		for j := i + 1; j < dimension; j++ {
			p, q := sorted[i], sorted[j]
			distance := math.Hypot(p.X-q.X, p.Y-q.Y)
			heuristic := 1.0 / distance

			if math.IsInf(distance, 0) {
				return nil, fmt.Errorf("%w: cities %d and %d are %v apart", ErrDistanceOverflow, p.Index, q.Index, distance)
			}

			if distance == 0 || math.IsInf(heuristic, 0) {
				return nil, fmt.Errorf("%w: cities %d and %d at (%v, %v)", ErrDegenerateInput, p.Index, q.Index, p.X, p.Y)
			}

			distances.SetSym(i, j, distance)
			heuristics.SetSym(i, j, heuristic)
			longest = max(longest, distance)
		}
	}

	// Every tour is at most dimension times the longest edge, so this
	// bound keeps all tour lengths finite.
	if math.IsInf(longest*float64(dimension), 0) {
		return nil, fmt.Errorf("%w: %d cities with edges up to %v", ErrDistanceOverflow, dimension, longest)
	}

	return &Graph{
		Points:     sorted,
		Indices:    indices,
		Distances:  distances,
		Heuristics: heuristics,
		positions:  positions,
	}, nil
}

func (g *Graph) Dimension() int {
	return len(g.Indices)
}

// Position returns the matrix position of the city with the given index.
func (g *Graph) Position(index int) (int, bool) {
	position, ok := g.positions[index]
	return position, ok
}

// CityTour translates a tour of matrix positions into city indices.
func (g *Graph) CityTour(positions []int) []int {
	tour := make([]int, len(positions))
	for i, position := range positions {
		tour[i] = g.Indices[position]
	}

	return tour
}

// Distance between two cities given by their own indices.
func (g *Graph) Distance(from, to int) (float64, error) {
	i, ok := g.Position(from)
	if !ok {
		return 0, fmt.Errorf("unknown city %d", from)
	}

	j, ok := g.Position(to)
	if !ok {
		return 0, fmt.Errorf("unknown city %d", to)
	}

	return g.Distances.At(i, j), nil
}

// RoundedTourLength scores a closed tour of city indices with TSPLIB EUC_2D
// distances, each edge rounded to the nearest integer. Published TSPLIB
// optima are measured this way.
func RoundedTourLength(points []models.Point, tour []int) (float64, error) {
	byIndex := make(map[int]models.Point, len(points))
	for _, p := range points {
		byIndex[p.Index] = p
	}

	length := 0.0
	for _, edge := range models.ConvertTourToEdges(tour) {
		p, ok := byIndex[edge.From]
		if !ok {
			return 0, fmt.Errorf("unknown city %d", edge.From)
		}

		q, ok := byIndex[edge.To]
		if !ok {
			return 0, fmt.Errorf("unknown city %d", edge.To)
		}

		length += math.Floor(math.Hypot(p.X-q.X, p.Y-q.Y) + 0.5)
	}

	return length, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
