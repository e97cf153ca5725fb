// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/sirupsen/logrus"

	"github.com/steinwurf/benchplot/benchagg"
	"github.com/steinwurf/benchplot/benchchart"
	"github.com/steinwurf/benchplot/internal/blob"
	"github.com/steinwurf/benchplot/report"
)

// save writes fig to --out_dir and returns its file name.
func (e *env) save(ctx context.Context, fig *benchchart.Figure) (string, error) {
	file := fig.Name + "." + e.format
	name := blob.Join(e.cfg.GetString("out_dir"), file)
	e.log.WithField("file", name).Debug("Saving")

	w, err := e.store.Create(ctx, name)
	if err != nil {
		return "", err
	}
	if _, err := fig.WriteTo(w, e.format); err != nil {
		w.Close()
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return file, nil
}

// show prints t under title and adds it to the report next to figure
// file. The data warnings logged since the last call go with it.
func (e *env) show(title, file string, t *table.Table) error {
	formats := tableFormats(t)
	if !e.cfg.GetBool("quiet") {
		if _, err := fmt.Fprintln(e.stdout, title); err != nil {
			return err
		}
		if err := table.Fprint(e.stdout, t, formats...); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(e.stdout); err != nil {
			return err
		}
	}
	if e.report != nil {
		s := report.TableSection(title, file, t, formats...)
		s.Warnings = e.warnings
		e.report.Add(s)
	}
	e.warnings = nil
	return nil
}

// tableFormats formats float columns of t with four significant
// digits and every other column with %v.
func tableFormats(t *table.Table) []string {
	formats := make([]string, len(t.Columns()))
	for i, col := range t.Columns() {
		formats[i] = "%v"
		if _, ok := t.Column(col).([]float64); ok {
			formats[i] = "%.4g"
		}
	}
	return formats
}

// project returns the columns cols of t.
func project(t *table.Table, cols ...string) *table.Table {
	var b table.Builder
	for _, col := range cols {
		b.Add(col, t.MustColumn(col))
	}
	return b.Done()
}

// pivot is benchagg.Pivot with its duplicate warnings logged.
func (e *env) pivot(t *table.Table, rowKey, colKey, value string) (*benchagg.Wide, error) {
	w, err := benchagg.Pivot(t, rowKey, colKey, value)
	if err != nil {
		return nil, err
	}
	for _, werr := range w.Warnings {
		e.warn(werr)
	}
	return w, nil
}

// plotted reports whether a plot was made. A plot with nothing to
// draw is logged and skipped rather than failing the command.
func (e *env) plotted(title string, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, benchchart.ErrNoData) {
		e.log.WithField("plot", title).Warn("nothing to plot")
		e.warnings = append(e.warnings, err.Error())
		return false, nil
	}
	return false, err
}

// group returns a log entry for partition g.
func (e *env) group(g benchagg.Group) *logrus.Entry {
	return e.log.WithFields(logrus.Fields{"group": g.String(), "rows": g.Table.Len()})
}
