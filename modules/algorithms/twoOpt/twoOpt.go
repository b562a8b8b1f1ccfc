package twoOpt

import (
	"tsp_aco/modules/algorithms/nearestNeighbors"

	"gonum.org/v1/gonum/mat"
)

// Moves must shorten the tour by more than this to be applied.
const minGain = 1e-10

type TwoOpt struct {
	distances      mat.Symmetric
	neighborsLists [][]int
}

func NewTwoOpt(distances mat.Symmetric, k int) *TwoOpt {
	return &TwoOpt{
		distances:      distances,
		neighborsLists: nearestNeighbors.BuildNearestNeighborsLists(distances, k),
	}
}

// First-improvement 2-opt over the candidate lists, using don't-look bits.
// A move replaces edges (a,b) and (c,d) with (a,c) and (b,d), where b and d
// are the successors of a and c, by reversing the segment between them.
// Input `tour` holds matrix positions and is changed in-place; the number
// of applied moves is returned.
func (twoOpt *TwoOpt) Run(tour []int) int {
	n := len(tour)
	if n < 4 {
		return 0
	}

	dontLookBits := make([]bool, n)
	positions := make([]int, n)
	setPositions(positions, tour)

	moves := 0
	improves := true

	for improves {
		improves = false

		for i := 0; i < n; i++ {
			a := tour[i]
			if dontLookBits[a] {
				continue
			}

			applied := false
			b := tour[(i+1)%n]
			distAB := twoOpt.distances.At(a, b)

			for _, c := range twoOpt.neighborsLists[a] {
				distAC := twoOpt.distances.At(a, c)

				// Lists are sorted, no later neighbor can pay for the new edge.
				if distAC >= distAB {
					break
				}

				j := positions[c]
				d := tour[(j+1)%n]
				if c == b || d == a {
					continue
				}

				gain := distAB + twoOpt.distances.At(c, d) - distAC - twoOpt.distances.At(b, d)
				if gain <= minGain {
					continue
				}

				if i < j {
					reverse(tour, positions, i+1, j)
				} else {
					reverse(tour, positions, j+1, i)
				}

				dontLookBits[a] = false
				dontLookBits[b] = false
				dontLookBits[c] = false
				dontLookBits[d] = false

				moves++
				applied = true
				improves = true
				break
			}

			if !applied {
				dontLookBits[a] = true
			}
		}
	}

	return moves
}

func setPositions(positions, tour []int) {
	for i, v := range tour {
		positions[v] = i
	}
}

// reverse flips tour[lo..hi] (inclusive, lo <= hi) and keeps positions in sync.
func reverse(tour, positions []int, lo, hi int) {
	for lo < hi {
		tour[lo], tour[hi] = tour[hi], tour[lo]
		positions[tour[lo]] = lo
		positions[tour[hi]] = hi
		lo++
		hi--
	}
}
