package utilities

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"runtime/pprof"
	"strconv"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// FastPow avoids math.Pow for the quarter-step exponents commonly used for alpha and beta.
func FastPow(base, exp float64) float64 {
	switch exp {
	case 0:
		return 1
	case 0.25:
		return math.Sqrt(math.Sqrt(base))
	case 0.5:
		return math.Sqrt(base)
	case 0.75:
		return math.Sqrt(base) * math.Sqrt(math.Sqrt(base))
	case 1:
		return base
	case 1.5:
		return base * math.Sqrt(base)
	case 2:
		return base * base
	case 2.5:
		return base * base * math.Sqrt(base)
	case 3:
		return base * base * base
	case 3.5:
		return base * base * base * math.Sqrt(base)
	case 4:
		return base * base * base * base
	case 5:
		return base * base * base * base * base
	default:
		return math.Pow(base, exp)
	}
}

var numberPattern = regexp.MustCompile(`\d+`)

// ExtractNumber returns the first run of digits in input, e.g. the city
// count in TSPLIB file names like "eil51.tsp".
func ExtractNumber(input string) (int, error) {
	match := numberPattern.FindString(input)

	if match == "" {
		return 0, fmt.Errorf("no number found in %q", input)
	}

	return strconv.Atoi(match)
}

func FilterStrings(strings []string, condition func(string) bool) []string {
	result := []string{}

	for _, str := range strings {
		if condition(str) {
			result = append(result, str)
		}
	}

	return result
}

// GenerateRange returns start, start+step, ... up to and including end.
// Values are computed as start+k*step so float steps do not drift past end.
func GenerateRange[T constraints.Integer | constraints.Float](start, end, step T) []T {
	if step <= 0 || end <= start {
		return []T{start}
	}

	count := int(math.Floor(float64(end-start)/float64(step)+1e-9)) + 1
	rangeSlice := make([]T, count)

	for k := range count {
		rangeSlice[k] = start + T(k)*step
	}

	return rangeSlice
}

// TourLength sums consecutive edge weights of tour, including the closing
// edge from the last city back to the first. tour holds matrix positions.
func TourLength(tour []int, distances mat.Symmetric) float64 {
	sum := 0.0
	p := len(tour)

	for i := 0; i < p-1; i++ {
		start, end := tour[i], tour[i+1]
		sum += distances.At(start, end)
	}

	if p > 1 {
		last, first := tour[p-1], tour[0]
		sum += distances.At(last, first)
	}

	return sum
}

// StartProfiling writes a CPU profile to path until the returned stop function is called.
func StartProfiling(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
