// Package cli implements the tsp-aco command-line interface.
//
// # Commands
//
//   - solve: run the colony on one point file and print the best tour
//   - bench: sweep a parameter grid over many instances and write CSV summaries
//
// All commands support --verbose (-v) for debug-level logging, which
// includes the colony's own progress messages.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "tsp-aco"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version,
// usually injected through ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // results; logs go to the logger's writer
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Ant colony optimization for the symmetric Euclidean TSP",
		Long:         `tsp-aco searches for short closed tours through 2-D cities with an Ant System colony, optionally refined by 2-opt, and benchmarks parameter grids over TSPLIB instances.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.benchCommand())

	return root
}
