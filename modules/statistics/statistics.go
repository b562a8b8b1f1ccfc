package statistics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type GraphStats struct {
	MinWeight, MaxWeight, AvgWeight, StdDevWeight, Skewness, Kurtosis float64
}

// CalculateMatrixStats describes the off-diagonal entries of a symmetric
// matrix, each unordered pair counted once.
func CalculateMatrixStats(matrix mat.Symmetric) (stats GraphStats) {
	n := matrix.SymmetricDim()

	var totalWeight float64
	var count int
	minWeight := math.MaxFloat64
	maxWeight := -math.MaxFloat64

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			weight := matrix.At(i, j)
			totalWeight += weight

			minWeight = min(minWeight, weight)
			maxWeight = max(maxWeight, weight)

			count++
		}
	}

	if count == 0 {
		return GraphStats{}
	}

	avgWeight := totalWeight / float64(count)

	var sumOfSquares, sumOfCubes, sumOfFourthPowers float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			diff := matrix.At(i, j) - avgWeight
			square := diff * diff
			cube := square * diff
			fourthPower := cube * diff

			sumOfSquares += square
			sumOfCubes += cube
			sumOfFourthPowers += fourthPower
		}
	}

	c := float64(count)
	stdDevWeight := math.Sqrt(sumOfSquares / c)

	var skewness, kurtosis float64
	if stdDevWeight > 0 {
		skewness = (sumOfCubes / c) / math.Pow(stdDevWeight, 3)
		kurtosis = (sumOfFourthPowers/c)/math.Pow(stdDevWeight, 4) - 3
	}

	return GraphStats{
		MinWeight:    minWeight,
		MaxWeight:    maxWeight,
		AvgWeight:    avgWeight,
		StdDevWeight: stdDevWeight,
		Skewness:     skewness,
		Kurtosis:     kurtosis,
	}
}
