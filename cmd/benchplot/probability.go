// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"github.com/steinwurf/benchplot/benchagg"
	"github.com/steinwurf/benchplot/benchchart"
	"github.com/steinwurf/benchplot/benchtable"
)

func (e *env) probabilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probability",
		Short: "Plot decoding probability against extra symbols received",
		Long: `Probability computes, for every test and configuration, the
cumulative fraction of runs that decoded after receiving each number
of extra symbols, and draws one figure per generation size, symbol
size and erasure rate with one line per test.

Runs that needed --window or more extra symbols fall outside the plot
and are reported as warnings.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.probability(cmd.Context())
		},
	}
	cmd.Flags().Int("window", benchagg.DefaultWindow, "plot up to `n` extra symbols (0 sizes the window to the data)")
	return cmd
}

func (e *env) rankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Plot linearly dependent symbols received at each decoder rank",
		Long: `Rank reads the "rank 0" through "rank N-1" columns, each counting the
symbols a decoder received while it had that rank, and plots the
mean number of linearly dependent symbols per rank, one line per test.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.rank(cmd.Context())
		},
	}
}

// testLabel adds the "test" column that names plot series, such as
// "FullRLNC.Binary8" or "SparseFullRLNC.Binary density 0.5".
func testLabel(t *table.Table) (*table.Table, error) {
	return benchtable.Label(t, "test",
		benchtable.LabelPart{Column: "testcase"},
		benchtable.LabelPart{Prefix: ".", Column: "benchmark"},
		benchtable.LabelPart{Prefix: " density ", Column: "density", Optional: true})
}

var configCols = []string{"symbols", "symbol_size", "erasure"}

func configTitle(g benchagg.Group) string {
	return fmt.Sprintf("symbols=%v, symbol size=%v, erasures=%g", g.Key[0], g.Key[1], g.Key[2])
}

func (e *env) probability(ctx context.Context) error {
	t, err := e.load(ctx, benchtable.Probability)
	if err != nil {
		return err
	}
	if t, err = testLabel(t); err != nil {
		return err
	}

	window := e.cfg.GetInt("window")
	if window < 0 {
		return usagef("--window %d: must not be negative", window)
	}
	if window == 0 {
		if window, err = benchagg.Window(t, "used", "symbols"); err != nil {
			return err
		}
		e.log.WithField("window", window).Debug("sized window to data")
	}

	cdf := benchagg.OverheadCDF("used", "symbols", window, e.warn)
	return e.perConfig(ctx, t, cdf, benchagg.CDFColumn, "overhead", func(g benchagg.Group, w *benchagg.Wide) (*benchchart.Figure, error) {
		title := configTitle(g)
		p, err := benchchart.Lines(title, "Extra symbols", "Decoding probability", w,
			benchchart.LineOptions{YMin: 0, YMax: 1})
		if err != nil {
			return nil, err
		}
		return benchchart.NewFigure(benchchart.Name("decoding_probability", g.Key[0], g.Key[1], g.Key[2]), p), nil
	})
}

func (e *env) rank(ctx context.Context) error {
	t, err := e.load(ctx, benchtable.RankProbability)
	if err != nil {
		return err
	}
	if t, err = testLabel(t); err != nil {
		return err
	}
	dep := benchagg.RankDependency("symbols", "rank ", e.warn)
	return e.perConfig(ctx, t, dep, benchagg.DependencyColumn, "rank", func(g benchagg.Group, w *benchagg.Wide) (*benchchart.Figure, error) {
		title := configTitle(g)
		p, err := benchchart.Lines(title, "Rank", "Linearly dependent symbols", w, benchchart.LineOptions{})
		if err != nil {
			return nil, err
		}
		return benchchart.NewFigure(benchchart.Name("linear_dependency", g.Key[0], g.Key[1], g.Key[2]), p), nil
	})
}

// perConfig partitions t by configuration, aggregates the runs of
// each test in a partition with agg, explodes the vector column col that agg adds
// into rows indexed by index, and pivots the result into one series
// per test for plot. Each partition is aggregated on its own so its
// data warnings are shown with its table.
func (e *env) perConfig(ctx context.Context, t *table.Table, agg benchagg.Aggregator, col, index string, plot func(benchagg.Group, *benchagg.Wide) (*benchchart.Figure, error)) error {
	groups, err := benchagg.Partition(t, configCols...)
	if err != nil {
		return err
	}
	for _, g := range groups {
		e.group(g).Debug("plotting")
		tests, err := benchagg.Aggregate(g.Table, append([]string{"test"}, configCols...), agg)
		if err != nil {
			return err
		}
		long, err := benchagg.Explode(tests, col, index)
		if err != nil {
			return err
		}
		w, err := e.pivot(long, index, "test", col)
		if err != nil {
			return err
		}
		title := configTitle(g)
		fig, err := plot(g, w)
		ok, err := e.plotted(title, err)
		if err != nil {
			return err
		}
		file := ""
		if ok {
			if file, err = e.save(ctx, fig); err != nil {
				return err
			}
		}
		if err := e.show(title, file, w.Table()); err != nil {
			return err
		}
	}
	return nil
}
