// Package chart renders the discrepancy/discomfort time series as a line chart.
package chart

import (
	"fmt"
	"image/color"

	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// #region layout
const (
	Title  = "Cognitive Discrepancies and Olfactory Discomfort Over Time"
	XLabel = "Time (s)"
	YLabel = "Discrepancy / Discomfort"

	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

// Line describes one plotted column.
type Line struct {
	Key   string
	Label string
	Color color.RGBA
}

// Lines are the plotted columns, in legend order.
var Lines = []Line{
	{Key: "visual_language_discrepancy", Label: "Visual-Language Discrepancy", Color: color.RGBA{B: 255, A: 255}},
	{Key: "auditory_language_discrepancy", Label: "Auditory-Language Discrepancy", Color: color.RGBA{R: 255, A: 255}},
	{Key: "olfactory_discomfort", Label: "Olfactory Discomfort", Color: color.RGBA{G: 128, A: 255}},
}

// #endregion layout

// #region points

// Points returns the (time, value) pairs for one column.
func Points(s *feedback.Series, key string) plotter.XYs {
	times := s.Column("time")
	values := s.Column(key)
	pts := make(plotter.XYs, len(values))
	for i := range values {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}
	return pts
}

// #endregion points

// #region render

// Build assembles the plot without writing it.
func Build(s *feedback.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if s.Len() == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}
	for _, ln := range Lines {
		l, err := plotter.NewLine(Points(s, ln.Key))
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", ln.Key, err)
		}
		l.Color = ln.Color
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(ln.Label, l)
	}
	return p, nil
}

// Render writes the chart to path. The extension picks the format
// (.png, .svg, .pdf, ...).
func Render(path string, s *feedback.Series) error {
	p, err := Build(s)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// #endregion render
