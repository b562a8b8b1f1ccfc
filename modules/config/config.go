// Package config loads colony and benchmark settings from TOML files.
//
// A file may set any subset of keys; missing keys keep their defaults:
//
//	[colony]
//	ants = 32
//	iterations = 800
//	alpha = 1.0
//	beta = 3.8
//	rho = 0.7
//	q = 400.0
//	seed = 7
//
//	[bench]
//	runs = 20
//	alpha = { start = 1.0, end = 1.0, step = 0.25 }
//	ants_fraction = { start = 0.1, end = 1.0, step = 0.1 }
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"tsp_aco/modules/algorithms/aco"
	"tsp_aco/modules/utilities"
)

type File struct {
	Colony aco.Config `toml:"colony"`
	Bench  Bench      `toml:"bench"`
}

// Bench describes a parameter grid; every combination is run Runs times.
type Bench struct {
	Runs         int   `toml:"runs"`
	MaxSize      int   `toml:"max_size"` // skip instances whose name carries a larger number, 0 keeps all
	Alpha        Range `toml:"alpha"`
	Beta         Range `toml:"beta"`
	Rho          Range `toml:"rho"`
	AntsFraction Range `toml:"ants_fraction"` // ants per iteration as a fraction of the city count
}

type Range struct {
	Start float64 `toml:"start"`
	End   float64 `toml:"end"`
	Step  float64 `toml:"step"`
}

func Fixed(v float64) Range {
	return Range{Start: v, End: v, Step: 1}
}

func (r Range) Values() []float64 {
	return utilities.GenerateRange(r.Start, r.End, r.Step)
}

func Default() File {
	colony := aco.DefaultConfig()

	return File{
		Colony: colony,
		Bench: Bench{
			Runs:         10,
			MaxSize:      100,
			Alpha:        Fixed(colony.Alpha),
			Beta:         Fixed(colony.Beta),
			Rho:          Fixed(colony.Rho),
			AntsFraction: Range{Start: 0.25, End: 1.0, Step: 0.25},
		},
	}
}

// Load decodes path over the defaults. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func Load(path string) (File, error) {
	file := Default()

	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return File{}, fmt.Errorf("decode %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := file.Colony.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	if file.Bench.Runs < 1 {
		return File{}, fmt.Errorf("%s: bench runs must be at least 1, got %d", path, file.Bench.Runs)
	}

	return file, nil
}
