// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/steinwurf/benchplot/benchagg"
)

// LineOptions controls Lines.
type LineOptions struct {
	// LogY plots the Y axis on a log scale with one-decimal tick
	// labels. Non-positive values are dropped.
	LogY bool

	// If YMax > YMin, the Y axis is fixed to [YMin, YMax].
	YMin, YMax float64
}

// Lines plots each column of w as a line with points, against the
// rows of w. Numeric row keys are plotted at their value; other row
// keys are plotted as nominal positions.
func Lines(title, xlabel, ylabel string, w *benchagg.Wide, opt LineOptions) (*plot.Plot, error) {
	p := newPlot(title, xlabel, ylabel)
	xs := xValues(p, w)

	n := 0
	for j, col := range w.Cols {
		pts := series(xs, w, j, opt.LogY)
		if len(pts) == 0 {
			continue
		}
		l, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRender, col, err)
		}
		l.Color = plotutil.Color(j)
		s.Color = plotutil.Color(j)
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(2)
		p.Add(l, s)
		p.Legend.Add(col, l, s)
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, title)
	}

	if opt.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = logTicks{}
	}
	if opt.YMax > opt.YMin {
		p.Y.Min, p.Y.Max = opt.YMin, opt.YMax
	}
	return p, nil
}

// scatterGlyphs cycles through distinct marker shapes, one per series.
var scatterGlyphs = []draw.GlyphDrawer{
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.TriangleGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
	draw.CrossGlyph{},
	draw.CircleGlyph{},
	draw.SquareGlyph{},
}

// Scatter plots each column of w as unconnected points with its own
// marker shape.
func Scatter(title, xlabel, ylabel string, w *benchagg.Wide) (*plot.Plot, error) {
	p := newPlot(title, xlabel, ylabel)
	xs := xValues(p, w)

	n := 0
	for j, col := range w.Cols {
		pts := series(xs, w, j, false)
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRender, col, err)
		}
		s.Color = fade(plotutil.Color(j), 0.75)
		s.Shape = scatterGlyphs[j%len(scatterGlyphs)]
		s.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(col, s)
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, title)
	}
	return p, nil
}

// Bars plots w as a grouped bar chart. Each row of w is a nominal X
// position holding one bar per column. NaN cells are drawn as zero.
func Bars(title, ylabel string, w *benchagg.Wide) (*plot.Plot, error) {
	p := newPlot(title, "", ylabel)
	if len(w.Rows) == 0 || len(w.Cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, title)
	}
	p.NominalX(w.RowLabels()...)

	const barWidth = 8
	width := vg.Points(barWidth)
	n := len(w.Cols)
	for j, col := range w.Cols {
		vals := make(plotter.Values, len(w.Rows))
		for i := range vals {
			v := w.Cells[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			vals[i] = v
		}
		b, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRender, col, err)
		}
		b.Color = plotutil.Color(j)
		b.LineStyle.Width = vg.Length(0)
		b.Offset = (vg.Length(j) - vg.Length(n-1)/2) * width
		p.Add(b)
		p.Legend.Add(col, b)
	}
	p.Legend.Top = true
	return p, nil
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// xValues returns the X coordinate of each row of w. Non-numeric row
// keys are placed at 0, 1, ... and labeled on p.
func xValues(p *plot.Plot, w *benchagg.Wide) []float64 {
	if xs, ok := w.RowValues(); ok {
		return xs
	}
	xs := make([]float64, len(w.Rows))
	for i := range xs {
		xs[i] = float64(i)
	}
	p.NominalX(w.RowLabels()...)
	return xs
}

// series returns the finite points of column j of w.
func series(xs []float64, w *benchagg.Wide, j int, positive bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i, x := range xs {
		y := w.Cells[i][j]
		if math.IsNaN(y) || math.IsInf(y, 0) || (positive && y <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(alpha * 0xff)}
}

// logTicks labels the ticks of a log axis with one decimal.
type logTicks struct{}

func (logTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.LogTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf("%.1f", ticks[i].Value)
		}
	}
	return ticks
}
