// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steinwurf/benchplot/benchagg"
	"github.com/steinwurf/benchplot/benchchart"
	"github.com/steinwurf/benchplot/benchtable"
)

func (e *env) symbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "Plot extra symbols needed for decoding in each test run",
		Long: `Symbols draws one scatter plot per testcase and configuration with
the number of extra symbols each run needed to decode, one marker
shape per benchmark.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.symbols(cmd.Context())
		},
	}
}

func (e *env) symbols(ctx context.Context) error {
	t, err := e.load(ctx, benchtable.SymbolsNeeded)
	if err != nil {
		return err
	}
	if t, err = benchagg.Extra(t, "used", "symbols", "extra"); err != nil {
		return err
	}
	groups, err := benchagg.Partition(t, "testcase", "symbol_size", "symbols", "erasure")
	if err != nil {
		return err
	}
	for _, g := range groups {
		e.group(g).Debug("plotting")
		testcase, symbolSize, symbols, erasure := g.Key[0], g.Key[1], g.Key[2], g.Key[3]

		w, err := e.pivot(g.Table, "runs", "benchmark", "extra")
		if err != nil {
			return err
		}
		title := fmt.Sprintf("Extra symbols needed for decoding %v", testcase)
		p, err := benchchart.Scatter(title, "Test run", "Extra symbols needed for decoding", w)
		ok, err := e.plotted(title, err)
		if err != nil {
			return err
		}
		file := ""
		if ok {
			fig := benchchart.NewFigure(benchchart.Name("decoding_scatter", testcase, symbols, symbolSize, erasure), p)
			if file, err = e.save(ctx, fig); err != nil {
				return err
			}
		}
		if err := e.show(g.String(), file, w.Table()); err != nil {
			return err
		}
	}
	return nil
}
