package experiments

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"tsp_aco/modules/algorithms/aco"
	"tsp_aco/modules/config"
	"tsp_aco/modules/geometry"
	"tsp_aco/modules/models"
)

type Instance struct {
	Name         string
	Points       []models.Point
	KnownOptimal float64 // 0 when unknown
	// RoundedDistances scores tours with TSPLIB nint distances, the metric
	// TSPLIB optima are published in. The colony itself always optimizes
	// unrounded lengths.
	RoundedDistances bool
}

type Parameters struct {
	LocalSearch                    bool
	Alpha, Beta, Rho, AntsFraction float64
	AntsNumber, Iterations         int
}

type Result struct {
	Seed            int64
	BestLength      float64 // in the instance's scoring metric
	BestAtIteration int
	BestTour        []int
	ComputationTime time.Duration
}

type Data struct {
	Parameters
	Results []Result
}

// SetDimensionDependantParameters sizes the colony from the instance:
// a total budget of dimension*t_max tours, with t_max = 100 below 50
// cities, 500 below 100 and 1000 above, split over AntsFraction*dimension
// ants per iteration.
func SetDimensionDependantParameters(dimension int, parameters *Parameters) {
	var iterations int

	switch {
	case dimension < 50:
		iterations = 100
	case dimension < 100:
		iterations = 500
	default:
		iterations = 1000
	}

	totalIterations := dimension * iterations

	parameters.AntsNumber = max(1, int(math.Ceil(float64(dimension)*parameters.AntsFraction)))
	parameters.Iterations = max(1, totalIterations/parameters.AntsNumber)
}

// GenerateParameters expands the bench grid into one Parameters per combination.
func GenerateParameters(bench config.Bench, localSearch bool) []Parameters {
	parameters := make([]Parameters, 0)

	for _, alpha := range bench.Alpha.Values() {
		for _, beta := range bench.Beta.Values() {
			for _, rho := range bench.Rho.Values() {
				for _, antsFraction := range bench.AntsFraction.Values() {
					parameters = append(parameters, Parameters{
						LocalSearch:  localSearch,
						Alpha:        alpha,
						Beta:         beta,
						Rho:          rho,
						AntsFraction: antsFraction,
					})
				}
			}
		}
	}

	return parameters
}

// Runner repeats seeded colony runs for every parameter set of an instance.
type Runner struct {
	Base    aco.Config // Q, initial pheromone and neighbor list size come from here
	Runs    int
	Workers int // concurrent runs, <= 1 is sequential
	Logger  *log.Logger
}

func (r *Runner) Run(ctx context.Context, instance Instance, parameters []Parameters) ([]Data, error) {
	data := make([]Data, len(parameters))
	for i, p := range parameters {
		SetDimensionDependantParameters(len(instance.Points), &p)
		data[i] = Data{Parameters: p, Results: make([]Result, r.Runs)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))

	for i := range data {
		for run := 0; run < r.Runs; run++ {
			g.Go(func() error {
				result, err := r.runOnce(gctx, instance, data[i].Parameters, int64(run+1))
				if err != nil {
					return fmt.Errorf("%s run %d: %w", instance.Name, run+1, err)
				}

				data[i].Results[run] = result
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func (r *Runner) runOnce(ctx context.Context, instance Instance, parameters Parameters, seed int64) (Result, error) {
	config := r.Base
	config.Alpha = parameters.Alpha
	config.Beta = parameters.Beta
	config.Rho = parameters.Rho
	config.Ants = parameters.AntsNumber
	config.Iterations = parameters.Iterations
	config.LocalSearch = parameters.LocalSearch
	config.Seed = seed
	config.Workers = 1

	start := time.Now()
	result, err := aco.Solve(ctx, instance.Points, config)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	length := result.Length
	if instance.RoundedDistances {
		if length, err = geometry.RoundedTourLength(instance.Points, result.Tour); err != nil {
			return Result{}, err
		}
	}

	if r.Logger != nil {
		r.Logger.Debug("run finished",
			"instance", instance.Name,
			"seed", seed,
			"alpha", parameters.Alpha,
			"beta", parameters.Beta,
			"rho", parameters.Rho,
			"ants", parameters.AntsNumber,
			"length", length,
			"elapsed", elapsed.Round(time.Millisecond))
	}

	return Result{
		Seed:            seed,
		BestLength:      length,
		BestAtIteration: result.BestAtIteration,
		BestTour:        result.Tour,
		ComputationTime: elapsed,
	}, nil
}
