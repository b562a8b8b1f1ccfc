package render

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var errNoHistory = errors.New("no iterations to plot")

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// ConvergencePlot draws the best tour length after each iteration.
func ConvergencePlot(history []float64, title string) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, errNoHistory
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Best tour length"

	points := make(plotter.XYs, len(history))
	for i, length := range history {
		points[i].X = float64(i + 1)
		points[i].Y = length
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("convergence line: %w", err)
	}

	p.Add(line, plotter.NewGrid())

	return p, nil
}

// WriteConvergence encodes the plot in format ("png", "svg", "pdf", ...).
func WriteConvergence(w io.Writer, history []float64, title, format string) error {
	p, err := ConvergencePlot(history, title)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}

	_, err = wt.WriteTo(w)
	return err
}

// SaveConvergence writes the plot to path, the format taken from its extension.
func SaveConvergence(path string, history []float64, title string) error {
	p, err := ConvergencePlot(history, title)
	if err != nil {
		return err
	}

	return p.Save(plotWidth, plotHeight, path)
}
