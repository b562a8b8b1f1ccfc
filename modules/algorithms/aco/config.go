package aco

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid colony configuration")

const defaultNeighborListSize = 10

// Config is the colony's parameter surface. Field names double as TOML keys.
type Config struct {
	Ants             int     `toml:"ants"`
	Iterations       int     `toml:"iterations"`
	Alpha            float64 `toml:"alpha"`             // pheromone importance
	Beta             float64 `toml:"beta"`              // heuristic importance
	Rho              float64 `toml:"rho"`               // evaporation rate
	Q                float64 `toml:"q"`                 // pheromone deposit constant
	InitialPheromone float64 `toml:"initial_pheromone"` // uniform starting intensity
	Seed             int64   `toml:"seed"`              // 0 selects a fixed default seed
	Workers          int     `toml:"workers"`           // ants built concurrently per iteration, <= 1 is sequential
	LocalSearch      bool    `toml:"local_search"`
	NeighborListSize int     `toml:"neighbor_list_size"`
	MaxCities        int     `toml:"max_cities"` // 0 is unlimited
}

func DefaultConfig() Config {
	return Config{
		Ants:             32,
		Iterations:       800,
		Alpha:            1,
		Beta:             3.8,
		Rho:              0.7,
		Q:                400,
		InitialPheromone: 1,
		Workers:          1,
		NeighborListSize: defaultNeighborListSize,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Ants < 1:
		return fmt.Errorf("%w: ants must be at least 1, got %d", ErrInvalidConfig, c.Ants)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	case c.Alpha < 0:
		return fmt.Errorf("%w: alpha must be non-negative, got %v", ErrInvalidConfig, c.Alpha)
	case c.Beta < 0:
		return fmt.Errorf("%w: beta must be non-negative, got %v", ErrInvalidConfig, c.Beta)
	case !(c.Rho >= 0 && c.Rho <= 1):
		return fmt.Errorf("%w: rho must be in [0,1], got %v", ErrInvalidConfig, c.Rho)
	case !(c.Q > 0):
		return fmt.Errorf("%w: q must be positive, got %v", ErrInvalidConfig, c.Q)
	case !(c.InitialPheromone > 0):
		return fmt.Errorf("%w: initial pheromone must be positive, got %v", ErrInvalidConfig, c.InitialPheromone)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	case c.NeighborListSize < 0:
		return fmt.Errorf("%w: neighbor list size must be non-negative, got %d", ErrInvalidConfig, c.NeighborListSize)
	case c.MaxCities < 0:
		return fmt.Errorf("%w: max cities must be non-negative, got %d", ErrInvalidConfig, c.MaxCities)
	}

	return nil
}
