package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tsp_aco/modules/algorithms/aco"
	"tsp_aco/modules/config"
	"tsp_aco/modules/geometry"
	"tsp_aco/modules/models"
	"tsp_aco/modules/parsing"
	"tsp_aco/modules/render"
	"tsp_aco/modules/statistics"
	"tsp_aco/modules/utilities"
)

// solveOpts holds the flags of the solve command. colony receives flag
// values; only flags the user set override the config file.
type solveOpts struct {
	configPath string
	colony     aco.Config
	randomSeed bool
	svgPath    string
	dotPath    string
	plotPath   string
	cpuProfile string
}

func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{colony: aco.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Find a short tour through the cities of a point or TSPLIB file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colony, err := resolveColony(cmd, opts.configPath, opts.colony)
			if err != nil {
				return err
			}

			if opts.randomSeed {
				colony.Seed = time.Now().UnixNano()
			}

			return c.runSolve(cmd.Context(), args[0], colony, &opts)
		},
	}

	addColonyFlags(cmd, &opts.colony)
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file, flags override its [colony] table")
	cmd.Flags().BoolVar(&opts.randomSeed, "random-seed", false, "seed from the clock instead of --seed")
	cmd.Flags().StringVar(&opts.svgPath, "svg", "", "write the best tour as SVG")
	cmd.Flags().StringVar(&opts.dotPath, "dot", "", "write the best tour as Graphviz DOT")
	cmd.Flags().StringVar(&opts.plotPath, "plot", "", "write the convergence plot (format from extension, e.g. .png)")
	cmd.Flags().StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile")

	return cmd
}

func addColonyFlags(cmd *cobra.Command, colony *aco.Config) {
	f := cmd.Flags()
	f.IntVar(&colony.Ants, "ants", colony.Ants, "ants per iteration")
	f.IntVar(&colony.Iterations, "iterations", colony.Iterations, "iterations")
	f.Float64Var(&colony.Alpha, "alpha", colony.Alpha, "pheromone importance")
	f.Float64Var(&colony.Beta, "beta", colony.Beta, "heuristic importance")
	f.Float64Var(&colony.Rho, "rho", colony.Rho, "evaporation rate in [0,1]")
	f.Float64Var(&colony.Q, "q", colony.Q, "pheromone deposit constant")
	f.Float64Var(&colony.InitialPheromone, "initial-pheromone", colony.InitialPheromone, "uniform starting pheromone")
	f.Int64Var(&colony.Seed, "seed", colony.Seed, "random seed, 0 uses the fixed default")
	f.IntVar(&colony.Workers, "workers", colony.Workers, "ants built concurrently")
	f.BoolVar(&colony.LocalSearch, "local-search", colony.LocalSearch, "refine every tour with 2-opt")
	f.IntVar(&colony.NeighborListSize, "neighbors", colony.NeighborListSize, "candidate list size for 2-opt")
	f.IntVar(&colony.MaxCities, "max-cities", colony.MaxCities, "reject inputs with more cities, 0 is unlimited")
}

// resolveColony starts from the defaults or the config file and applies
// every colony flag the user set explicitly.
func resolveColony(cmd *cobra.Command, configPath string, flags aco.Config) (aco.Config, error) {
	colony := aco.DefaultConfig()
	if configPath != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return aco.Config{}, err
		}
		colony = file.Colony
	}

	overrides := map[string]func(){
		"ants":              func() { colony.Ants = flags.Ants },
		"iterations":        func() { colony.Iterations = flags.Iterations },
		"alpha":             func() { colony.Alpha = flags.Alpha },
		"beta":              func() { colony.Beta = flags.Beta },
		"rho":               func() { colony.Rho = flags.Rho },
		"q":                 func() { colony.Q = flags.Q },
		"initial-pheromone": func() { colony.InitialPheromone = flags.InitialPheromone },
		"seed":              func() { colony.Seed = flags.Seed },
		"workers":           func() { colony.Workers = flags.Workers },
		"local-search":      func() { colony.LocalSearch = flags.LocalSearch },
		"neighbors":         func() { colony.NeighborListSize = flags.NeighborListSize },
		"max-cities":        func() { colony.MaxCities = flags.MaxCities },
	}

	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	return colony, colony.Validate()
}

func (c *CLI) runSolve(ctx context.Context, path string, colony aco.Config, opts *solveOpts) error {
	logger := c.Logger

	if opts.cpuProfile != "" {
		stop, err := utilities.StartProfiling(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		defer stop()
	}

	name, points, knownOptimal, err := parsing.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Info("Loaded instance", "name", name, "cities", len(points))

	if logger.GetLevel() <= log.DebugLevel {
		logDistanceStats(logger, points, colony.MaxCities)
	}

	prog := newProgress(logger)
	result, err := aco.Solve(ctx, points, colony, aco.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("solve %s: %w", name, err)
	}
	prog.done("Solved " + name)

	printTitle(c.Out, name)
	printKeyValue(c.Out, "cities", fmt.Sprint(len(points)))
	printKeyValue(c.Out, "seed", fmt.Sprint(colony.Seed))
	printKeyValue(c.Out, "length", formatLength(result.Length))
	if knownOptimal > 0 {
		printKeyValue(c.Out, "known optimum", formatLength(knownOptimal))
	}
	printKeyValue(c.Out, "found at", fmt.Sprintf("iteration %d", result.BestAtIteration))
	printKeyValue(c.Out, "tour", formatTour(result.Tour))

	return c.writeOutputs(ctx, name, points, result, opts)
}

func logDistanceStats(logger *log.Logger, points []models.Point, maxCities int) {
	graph, err := geometry.NewGraph(points, maxCities)
	if err != nil || graph.Dimension() < 2 {
		return
	}

	stats := statistics.CalculateMatrixStats(graph.Distances)
	logger.Debug("distances",
		"min", stats.MinWeight,
		"max", stats.MaxWeight,
		"mean", stats.AvgWeight,
		"stddev", stats.StdDevWeight,
		"skewness", stats.Skewness)
}

func (c *CLI) writeOutputs(ctx context.Context, name string, points []models.Point, result aco.Result, opts *solveOpts) error {
	if opts.dotPath == "" && opts.svgPath == "" && opts.plotPath == "" {
		return nil
	}

	dot := render.ToDOT(points, result.Tour, render.DefaultOptions())

	if opts.dotPath != "" {
		if err := os.WriteFile(opts.dotPath, []byte(dot), 0o644); err != nil {
			return err
		}
		printFile(c.Out, opts.dotPath)
	}

	if opts.svgPath != "" {
		svg, err := render.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svgPath, svg, 0o644); err != nil {
			return err
		}
		printFile(c.Out, opts.svgPath)
	}

	if opts.plotPath != "" {
		if len(result.BestPerIteration) == 0 {
			printWarning(c.Out, "no iterations ran, skipping %s", opts.plotPath)
			return nil
		}
		if err := render.SaveConvergence(opts.plotPath, result.BestPerIteration, name); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		printFile(c.Out, opts.plotPath)
	}

	return nil
}
