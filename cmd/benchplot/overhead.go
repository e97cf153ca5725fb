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

func (e *env) overheadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overhead",
		Short: "Plot coding overhead against generation size",
		Long: `Overhead selects the results of one testcase and symbol size and
plots, per benchmark, the percentage of symbols received beyond the
coded ones:

	100 * (sum(used) - sum(coded)) / sum(coded)

against the generation size.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.overhead(cmd.Context())
		},
	}
	fs := cmd.Flags()
	fs.String("testcase", "FullRLNCUnsystematic", "plot the results of `testcase`")
	fs.Int("symbol_size", 1500, "plot the results with symbol size `bytes`")
	fs.String("out_file", "", "figure `name` without extension (default overhead_<testcase>_<symbol_size>)")
	fs.Bool("log", true, "use a log scale for the overhead axis")
	return cmd
}

func (e *env) overhead(ctx context.Context) error {
	t, err := e.load(ctx, benchtable.Overhead)
	if err != nil {
		return err
	}
	testcase := e.cfg.GetString("testcase")
	symbolSize := e.cfg.GetInt("symbol_size")
	t = table.Flatten(table.FilterEq(table.FilterEq(t, "testcase", testcase), "symbol_size", symbolSize))
	if t.Len() == 0 {
		return fmt.Errorf("no results with testcase %q and symbol_size %d: %w", testcase, symbolSize, benchtable.ErrInput)
	}

	agg, err := benchagg.Aggregate(t, []string{"benchmark", "symbols"},
		benchagg.OverheadRatio("used", "coded", e.warn))
	if err != nil {
		return err
	}
	w, err := e.pivot(agg, "symbols", "benchmark", benchagg.OverheadColumn)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("overhead testcase=%s symbol_size=%d", testcase, symbolSize)
	p, err := benchchart.Lines("overhead", "Symbols", "Overhead [%]", w,
		benchchart.LineOptions{LogY: e.cfg.GetBool("log")})
	ok, err := e.plotted(title, err)
	if err != nil {
		return err
	}
	file := ""
	if ok {
		name := e.cfg.GetString("out_file")
		if name == "" {
			name = benchchart.Name("overhead", testcase, symbolSize)
		}
		if file, err = e.save(ctx, benchchart.NewFigure(name, p)); err != nil {
			return err
		}
	}
	return e.show(title, file, w.Table())
}
