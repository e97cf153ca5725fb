// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders aggregated benchmark tables as charts.
package benchchart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrRender is the class of errors that prevent a figure from being
// written.
var ErrRender = errors.New("render failed")

// ErrNoData is returned when a chart has no finite values to draw.
var ErrNoData = fmt.Errorf("%w: no finite values to plot", ErrRender)

// Formats lists the supported figure formats, by file extension.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Format normalizes a figure extension such as ".PNG" and reports
// whether it is supported.
func Format(ext string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported format %q (want one of %s)", ErrRender, ext, strings.Join(Formats, ", "))
}

// A Figure is one output image made of a grid of plots.
type Figure struct {
	Name          string
	Width, Height vg.Length

	// Plots[row][col]. Every row has the same length.
	Plots [][]*plot.Plot
}

// NewFigure returns a figure holding the single plot p.
func NewFigure(name string, p *plot.Plot) *Figure {
	return &Figure{name, 6 * vg.Inch, 4 * vg.Inch, [][]*plot.Plot{{p}}}
}

// Grid returns a figure that tiles plots. Nil entries are left blank.
func Grid(name string, plots [][]*plot.Plot) *Figure {
	rows := len(plots)
	cols := 0
	for _, row := range plots {
		if len(row) > cols {
			cols = len(row)
		}
	}
	tiles := make([][]*plot.Plot, rows)
	for i, row := range plots {
		tiles[i] = make([]*plot.Plot, cols)
		copy(tiles[i], row)
	}
	return &Figure{name, vg.Length(cols) * 5 * vg.Inch, vg.Length(rows) * 3.5 * vg.Inch, tiles}
}

// WriteTo renders f in the given format to w.
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	format, err := Format(format)
	if err != nil {
		return 0, err
	}
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRender, err)
	}
	dc := draw.New(c)

	if len(f.Plots) == 1 && len(f.Plots[0]) == 1 {
		if p := f.Plots[0][0]; p != nil {
			p.Draw(dc)
		}
	} else if len(f.Plots) > 0 {
		tiles := draw.Tiles{
			Rows:      len(f.Plots),
			Cols:      len(f.Plots[0]),
			PadX:      vg.Millimeter,
			PadY:      vg.Millimeter,
			PadTop:    vg.Points(2),
			PadBottom: vg.Points(2),
			PadLeft:   vg.Points(2),
			PadRight:  vg.Points(2),
		}
		plots := make([][]*plot.Plot, len(f.Plots))
		for i, row := range f.Plots {
			plots[i] = make([]*plot.Plot, len(row))
			for j, p := range row {
				if p == nil {
					p = plot.New()
					p.HideAxes()
				}
				plots[i][j] = p
			}
		}
		canvases := plot.Align(plots, tiles, dc)
		for i, row := range f.Plots {
			for j, p := range row {
				if p != nil {
					p.Draw(canvases[i][j])
				}
			}
		}
	}

	n, err := c.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("%w: %s: %v", ErrRender, f.Name, err)
	}
	return n, nil
}

// Name builds a figure file name from parts joined with "_". Strings
// are lower-cased. Floats are written the way the benchmark plotting
// scripts wrote them, with the decimal point removed, so an erasure
// rate of 0.5 becomes "05" and 1 becomes "10".
func Name(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		switch p := p.(type) {
		case string:
			s[i] = strings.ToLower(strings.Map(func(r rune) rune {
				if r == '/' || r == ' ' || r == '\\' {
					return '-'
				}
				return r
			}, p))
		case float64:
			s[i] = strings.Replace(floatString(p), ".", "", 1)
		default:
			s[i] = fmt.Sprint(p)
		}
	}
	return strings.Join(s, "_")
}

// floatString formats x with the shortest representation that keeps
// a decimal point for integral values.
func floatString(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !math.IsInf(x, 0) && !math.IsNaN(x) && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
