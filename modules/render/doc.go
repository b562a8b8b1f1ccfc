// Package render draws solver output: the best tour as a Graphviz graph
// with every city pinned at its coordinates, and the convergence of the
// best tour length over iterations as a line plot.
package render
