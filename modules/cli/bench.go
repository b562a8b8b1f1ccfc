package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"tsp_aco/modules/config"
	"tsp_aco/modules/experiments"
	"tsp_aco/modules/parsing"
	"tsp_aco/modules/statistics"
	"tsp_aco/modules/utilities"
)

// sweep is one pass over the grid; its summaries go to name+suffix+".csv".
type sweep struct {
	suffix      string
	localSearch bool
}

type benchOpts struct {
	configPath  string
	runs        int
	maxSize     int
	outDir      string
	localSearch bool
	workers     int
}

func (c *CLI) benchCommand() *cobra.Command {
	defaults := config.Default()
	opts := benchOpts{
		runs:    defaults.Bench.Runs,
		maxSize: defaults.Bench.MaxSize,
		outDir:  "results",
		workers: runtime.NumCPU(),
	}

	cmd := &cobra.Command{
		Use:   "bench [glob]",
		Short: "Sweep a parameter grid over instances and write CSV summaries",
		Long: `bench runs every parameter combination of the [bench] table several times
per instance, with seeds 1..runs, and writes one CSV summary per instance
to the output directory, best parameter set first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := config.Default()
			if opts.configPath != "" {
				var err error
				if file, err = config.Load(opts.configPath); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("runs") {
				file.Bench.Runs = opts.runs
			}
			if cmd.Flags().Changed("max-size") {
				file.Bench.MaxSize = opts.maxSize
			}
			if file.Bench.Runs < 1 {
				return fmt.Errorf("runs must be at least 1, got %d", file.Bench.Runs)
			}

			return c.runBench(cmd.Context(), args[0], file, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file with [colony] and [bench] tables")
	cmd.Flags().IntVar(&opts.runs, "runs", opts.runs, "seeded runs per parameter set")
	cmd.Flags().IntVar(&opts.maxSize, "max-size", opts.maxSize, "skip files whose name carries a larger number, 0 keeps all")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", opts.outDir, "directory for CSV summaries")
	cmd.Flags().BoolVar(&opts.localSearch, "local-search", false, "also sweep the grid with 2-opt enabled")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "concurrent runs")

	return cmd
}

// benchPaths expands pattern and drops files whose name carries a number
// above maxSize, e.g. "kroA200.tsp" for maxSize 100.
func benchPaths(pattern string, maxSize int) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	if maxSize <= 0 {
		return paths, nil
	}

	return utilities.FilterStrings(paths, func(path string) bool {
		size, err := utilities.ExtractNumber(filepath.Base(path))
		return err != nil || size <= maxSize
	}), nil
}

func (c *CLI) runBench(ctx context.Context, pattern string, file config.File, opts *benchOpts) error {
	logger := c.Logger

	paths, err := benchPaths(pattern, file.Bench.MaxSize)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no instances match %q", pattern)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}

	runner := &experiments.Runner{
		Base:    file.Colony,
		Runs:    file.Bench.Runs,
		Workers: opts.workers,
		Logger:  logger,
	}

	sweeps := []sweep{{}}
	if opts.localSearch {
		sweeps = append(sweeps, sweep{suffix: "+2opt", localSearch: true})
	}

	for _, path := range paths {
		name, points, knownOptimal, err := parsing.ParseFile(path)
		if err != nil {
			return err
		}
		instance := experiments.Instance{
			Name:             name,
			Points:           points,
			KnownOptimal:     knownOptimal,
			RoundedDistances: parsing.IsTSPLIB(path),
		}

		for _, pass := range sweeps {
			parameters := experiments.GenerateParameters(file.Bench, pass.localSearch)
			logger.Info("Started processing", "instance", name+pass.suffix, "cities", len(points), "parameter_sets", len(parameters), "runs", file.Bench.Runs)

			prog := newProgress(logger)
			data, err := runner.Run(ctx, instance, parameters)
			if err != nil {
				return err
			}
			prog.done("Experiments on " + name + pass.suffix)

			summaries := statistics.Calculate(data, knownOptimal)
			out := filepath.Join(opts.outDir, name+pass.suffix+".csv")
			if err := statistics.SaveCSV(out, summaries); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}

			if len(summaries) > 0 {
				best := summaries[0]
				printSuccess(c.Out, "%s: best %s, avg deviation %.2f%%, success %.0f%%",
					name+pass.suffix, formatLength(best.BestLength), best.AverageBestDeviation, best.SuccessRate)
			}
			printFile(c.Out, out)
		}
	}

	return nil
}
