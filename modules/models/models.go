package models

// Point is a city as supplied by the input collaborator. Index is the
// city's own identity (1-based, unique), not its position in the input.
type Point struct {
	Index int
	X, Y  float64
}

type Edge struct {
	From, To int
}

// Tour of city indices, implicitly closed: the last city connects back to the first.
type Tour []int

func ConvertTourToEdges(tour []int) []Edge {
	n := len(tour)
	if n == 0 {
		return nil
	}

	tourEdges := make([]Edge, n)

	for i := 0; i < n-1; i++ {
		tourEdges[i] = Edge{From: tour[i], To: tour[i+1]}
	}
	last, first := tour[n-1], tour[0]
	tourEdges[n-1] = Edge{From: last, To: first}

	return tourEdges
}

// Indices returns the city indices of points in input order.
func Indices(points []Point) []int {
	indices := make([]int, len(points))
	for i, p := range points {
		indices[i] = p.Index
	}

	return indices
}

// IsPermutation reports whether tour visits every index in indices exactly once.
func IsPermutation(tour []int, indices []int) bool {
	if len(tour) != len(indices) {
		return false
	}

	remaining := make(map[int]int, len(indices))
	for _, index := range indices {
		remaining[index]++
	}

	for _, city := range tour {
		if remaining[city] == 0 {
			return false
		}
		remaining[city]--
	}

	return true
}
