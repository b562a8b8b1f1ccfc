package aco

import (
	"context"
	"io"
	"math"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"tsp_aco/modules/algorithms/twoOpt"
	"tsp_aco/modules/geometry"
	"tsp_aco/modules/utilities"
)

type ACO struct {
	config    Config
	seed      int64
	dimension int
	graph     *geometry.Graph

	desirabilities  *mat.SymDense // heuristic^beta, fixed for the run
	pheromones      *mat.SymDense
	deltaPheromones *mat.SymDense

	twoOpt *twoOpt.TwoOpt
	logger *log.Logger

	bestPositions    []int
	BestLength       float64
	BestAtIteration  int
	BestPerIteration []float64
}

// Result is the best tour of a run, in the cities' own indices.
type Result struct {
	Tour             []int
	Length           float64
	BestAtIteration  int
	BestPerIteration []float64
}

type Option func(*ACO)

func WithLogger(logger *log.Logger) Option {
	return func(aco *ACO) {
		if logger != nil {
			aco.logger = logger
		}
	}
}

// ant owns the buffers of one tour construction. They are reused across
// iterations so building a tour does not allocate.
type ant struct {
	tour          []int
	allowed       []bool
	probabilities []float64
	length        float64
	rng           *rand.Rand
}

func NewACO(graph *geometry.Graph, config Config, opts ...Option) (*ACO, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dimension := graph.Dimension()
	desirabilities := mat.NewSymDense(dimension, nil)

	for i := 0; i < dimension; i++ {
		for j := i + 1; j < dimension; j++ {
			desirabilities.SetSym(i, j, utilities.FastPow(graph.Heuristics.At(i, j), config.Beta))
		}
	}

	aco := &ACO{
		config:           config,
		seed:             effectiveSeed(config.Seed),
		dimension:        dimension,
		graph:            graph,
		desirabilities:   desirabilities,
		pheromones:       newUniformMatrix(dimension, config.InitialPheromone),
		deltaPheromones:  mat.NewSymDense(dimension, nil),
		logger:           log.New(io.Discard),
		BestLength:       math.Inf(1),
		BestPerIteration: make([]float64, config.Iterations),
	}

	if config.LocalSearch {
		k := config.NeighborListSize
		if k == 0 {
			k = defaultNeighborListSize
		}
		aco.twoOpt = twoOpt.NewTwoOpt(graph.Distances, k)
	}

	for _, opt := range opts {
		opt(aco)
	}

	return aco, nil
}

// Main loop: every iteration runs all ants, merges their deposits and
// updates the pheromones once. The full iteration count always runs
// unless ctx is cancelled between iterations.
func (aco *ACO) Run(ctx context.Context) (Result, error) {
	ants := make([]ant, aco.config.Ants)
	for i := range ants {
		ants[i] = ant{
			tour:          make([]int, 0, aco.dimension),
			allowed:       make([]bool, aco.dimension),
			probabilities: make([]float64, aco.dimension),
			rng:           rand.New(rand.NewSource(aco.seed)),
		}
	}

	aco.logger.Debug("colony started",
		"cities", aco.dimension,
		"ants", aco.config.Ants,
		"iterations", aco.config.Iterations,
		"workers", aco.config.Workers,
		"seed", aco.seed)

	for iteration := 0; iteration < aco.config.Iterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		aco.deltaPheromones.Zero()

		if err := aco.constructTours(ctx, iteration, ants); err != nil {
			return Result{}, err
		}

		// Applied in ant order after the barrier so results do not depend
		// on which goroutine finished first.
		for i := range ants {
			depositPheromone(aco.deltaPheromones, ants[i].tour, ants[i].length, aco.config.Q)

			if ants[i].length < aco.BestLength {
				aco.BestLength = ants[i].length
				aco.bestPositions = slices.Clone(ants[i].tour)
				aco.BestAtIteration = iteration

				aco.logger.Debug("new best tour", "iteration", iteration, "ant", i, "length", aco.BestLength)
			}
		}

		updatePheromones(aco.pheromones, aco.deltaPheromones, aco.config.Rho)

		aco.BestPerIteration[iteration] = aco.BestLength
	}

	aco.logger.Debug("colony finished", "length", aco.BestLength, "found_at", aco.BestAtIteration)

	return aco.Result(), nil
}

func (aco *ACO) Result() Result {
	return Result{
		Tour:             aco.graph.CityTour(aco.bestPositions),
		Length:           aco.BestLength,
		BestAtIteration:  aco.BestAtIteration,
		BestPerIteration: slices.Clone(aco.BestPerIteration),
	}
}

// Pheromones exposes the current pheromone matrix for inspection.
func (aco *ACO) Pheromones() mat.Symmetric {
	return aco.pheromones
}

func (aco *ACO) constructTours(ctx context.Context, iteration int, ants []ant) error {
	for i := range ants {
		stream := uint64(iteration)*uint64(len(ants)) + uint64(i)
		ants[i].rng.Seed(deriveSeed(aco.seed, stream))
	}

	if aco.config.Workers <= 1 {
		for i := range ants {
			aco.constructTour(&ants[i])
		}

		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aco.config.Workers)

	for i := range ants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			aco.constructTour(&ants[i])
			return nil
		})
	}

	return g.Wait()
}

// Function to construct tour for each ant, from a uniformly drawn start city.
func (aco *ACO) constructTour(a *ant) {
	for i := range a.allowed {
		a.allowed[i] = true
	}

	start := a.rng.Intn(aco.dimension)
	a.tour = append(a.tour[:0], start)
	a.allowed[start] = false
	a.length = 0

	current := start
	for len(a.tour) < aco.dimension {
		next := aco.selectNextCity(current, a.allowed, a.probabilities, a.rng)

		a.tour = append(a.tour, next)
		a.length += aco.graph.Distances.At(current, next)

		current = next
	}

	a.length += aco.graph.Distances.At(current, start)

	if aco.twoOpt != nil && aco.twoOpt.Run(a.tour) > 0 {
		a.length = utilities.TourLength(a.tour, aco.graph.Distances)
	}
}
