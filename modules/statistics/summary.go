package statistics

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"tsp_aco/modules/experiments"
)

// summaryNamespace scopes the name-based IDs of summary rows.
var summaryNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("tsp-aco/statistics/summary"))

// parametersID names a parameter set, so repeated sweeps write the same
// ID for the same row.
func parametersID(p experiments.Parameters) uuid.UUID {
	name := fmt.Sprintf("alpha=%g beta=%g rho=%g ants_fraction=%g ants=%d iterations=%d local_search=%t",
		p.Alpha, p.Beta, p.Rho, p.AntsFraction, p.AntsNumber, p.Iterations, p.LocalSearch)

	return uuid.NewSHA1(summaryNamespace, []byte(name))
}

// A run counts as a success when it is within this relative distance of the reference length.
const successTolerance = 1e-6

type Summary struct {
	ID uuid.UUID
	experiments.Parameters
	AverageBestLength, BestLength                float64
	AverageBestAtIteration, AverageBestDeviation float64
	SuccessRate                                  float64
	AverageComputationTime                       time.Duration
}

// Calculate reduces every parameter set to one Summary. Deviations are in
// percent of reference, the instance's known optimum, or when that is
// unknown the shortest length any run found. Summaries are ordered best
// first: lower average deviation, then higher success rate.
func Calculate(data []experiments.Data, knownOptimal float64) []Summary {
	reference := knownOptimal
	if reference <= 0 {
		reference = shortestLength(data)
	}

	summaries := make([]Summary, 0, len(data))
	for _, d := range data {
		if len(d.Results) == 0 {
			continue
		}

		summary := Summary{
			ID:         parametersID(d.Parameters),
			Parameters: d.Parameters,
			BestLength: math.Inf(1),
		}

		successCounter := 0.0
		var totalComputationTime time.Duration

		for _, result := range d.Results {
			deviation := 100 * (result.BestLength - reference) / reference

			summary.AverageBestLength += result.BestLength
			summary.AverageBestAtIteration += float64(result.BestAtIteration)
			summary.AverageBestDeviation += deviation
			summary.BestLength = min(summary.BestLength, result.BestLength)
			totalComputationTime += result.ComputationTime

			if deviation <= 100*successTolerance {
				successCounter++
			}
		}

		resultsLen := float64(len(d.Results))

		summary.AverageBestLength /= resultsLen
		summary.AverageBestAtIteration /= resultsLen
		summary.AverageBestDeviation /= resultsLen
		summary.SuccessRate = 100.0 * successCounter / resultsLen
		summary.AverageComputationTime = totalComputationTime / time.Duration(len(d.Results))

		summaries = append(summaries, summary)
	}

	slices.SortStableFunc(summaries, func(a, b Summary) int {
		return cmp.Or(
			cmp.Compare(a.AverageBestDeviation, b.AverageBestDeviation),
			cmp.Compare(b.SuccessRate, a.SuccessRate),
		)
	})

	return summaries
}

func shortestLength(data []experiments.Data) float64 {
	shortest := math.Inf(1)
	for _, d := range data {
		for _, result := range d.Results {
			shortest = min(shortest, result.BestLength)
		}
	}

	return shortest
}

var header = []string{
	"ID",
	"Alpha",
	"Beta",
	"Rho",
	"Ants fraction",
	"Ants number",
	"Iterations",
	"Local search",
	"Avg best length",
	"Best length",
	"Avg best at iteration",
	"Avg best deviation",
	"Success rate [%]",
	"Avg computation time [ms]",
}

func WriteCSV(w io.Writer, summaries []Summary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return err
	}

	floatFormat := "%.2f"
	for _, summary := range summaries {
		record := []string{
			summary.ID.String(),
			fmt.Sprintf(floatFormat, summary.Alpha),
			fmt.Sprintf(floatFormat, summary.Beta),
			fmt.Sprintf(floatFormat, summary.Rho),
			fmt.Sprintf(floatFormat, summary.AntsFraction),
			strconv.Itoa(summary.AntsNumber),
			strconv.Itoa(summary.Iterations),
			strconv.FormatBool(summary.LocalSearch),
			fmt.Sprintf(floatFormat, summary.AverageBestLength),
			fmt.Sprintf(floatFormat, summary.BestLength),
			fmt.Sprintf(floatFormat, summary.AverageBestAtIteration),
			fmt.Sprintf(floatFormat, summary.AverageBestDeviation),
			fmt.Sprintf(floatFormat, summary.SuccessRate),
			strconv.FormatInt(summary.AverageComputationTime.Milliseconds(), 10),
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func SaveCSV(path string, summaries []Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, summaries); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
