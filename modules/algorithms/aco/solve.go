package aco

import (
	"context"

	"tsp_aco/modules/geometry"
	"tsp_aco/modules/models"
)

// Solve runs the pre-flight checks on points and config, then the colony.
// Zero cities is an error (geometry.ErrEmptyInput); a single city is a
// zero-length tour returned without iterating.
func Solve(ctx context.Context, points []models.Point, config Config, opts ...Option) (Result, error) {
	if err := config.Validate(); err != nil {
		return Result{}, err
	}

	graph, err := geometry.NewGraph(points, config.MaxCities)
	if err != nil {
		return Result{}, err
	}

	if graph.Dimension() == 1 {
		return Result{Tour: []int{graph.Indices[0]}}, nil
	}

	aco, err := NewACO(graph, config, opts...)
	if err != nil {
		return Result{}, err
	}

	return aco.Run(ctx)
}
