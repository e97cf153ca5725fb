// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/steinwurf/benchplot/benchagg"
	"github.com/steinwurf/benchplot/benchchart"
	"github.com/steinwurf/benchplot/benchtable"
)

func (e *env) throughputCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "throughput",
		Short: "Plot mean and standard deviation of encoder and decoder throughput",
		Long: `Throughput groups the results by testcase and symbol size and draws
one figure per group: bar charts of the mean and standard deviation
of the throughput of each benchmark, per generation size, for the
encoder (top) and decoder (bottom).`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.throughput(cmd.Context())
		},
	}
}

var coderTypes = []struct{ typ, title string }{
	{"encoder", "Encoder"},
	{"decoder", "Decoder"},
}

var throughputStats = []struct{ col, title string }{
	{"mean throughput", "Mean"},
	{"std throughput", "Std"},
}

func (e *env) throughput(ctx context.Context) error {
	t, err := e.load(ctx, benchtable.Throughput)
	if err != nil {
		return err
	}
	agg, err := benchagg.Aggregate(t,
		[]string{"testcase", "symbol_size", "benchmark", "symbols", "type"},
		benchagg.Mean("throughput"), benchagg.StdDev("throughput"))
	if err != nil {
		return err
	}
	groups, err := benchagg.Partition(agg, "testcase", "symbol_size")
	if err != nil {
		return err
	}

	for _, g := range groups {
		e.group(g).Debug("plotting")
		testcase, symbolSize := g.Key[0], g.Key[1]

		plots := make([][]*plot.Plot, len(coderTypes))
		tables := make([]*table.Table, len(coderTypes))
		// warnings[i] holds the data warnings for tables[i].
		warnings := make([][]string, len(coderTypes))
		for i, ct := range coderTypes {
			plots[i] = make([]*plot.Plot, len(throughputStats))
			side := table.Flatten(table.FilterEq(g.Table, "type", ct.typ))
			if side.Len() == 0 {
				e.warn(&benchagg.DataError{Group: g.String(), Column: "type", Msg: "no " + ct.typ + " results"})
				warnings[i], e.warnings = e.warnings, nil
				continue
			}
			tables[i] = project(side, "benchmark", "symbols", "mean throughput", "std throughput")

			for j, st := range throughputStats {
				w, err := e.pivot(side, "symbols", "benchmark", st.col)
				if err != nil {
					return err
				}
				title := ct.title + " " + st.title
				p, err := benchchart.Bars(title, "Throughput [MB/s]", w)
				ok, err := e.plotted(title, err)
				if err != nil {
					return err
				}
				if ok {
					plots[i][j] = p
				}
			}
			warnings[i], e.warnings = e.warnings, nil
		}

		if tables[0] == nil && tables[1] == nil {
			continue
		}
		// A side without results has no table; its warning goes
		// with the other side.
		if tables[0] == nil {
			warnings[1] = append(warnings[0], warnings[1]...)
		}
		if tables[1] == nil {
			warnings[0] = append(warnings[0], warnings[1]...)
		}
		fig := benchchart.Grid(benchchart.Name("throughput", testcase, symbolSize), plots)
		file, err := e.save(ctx, fig)
		if err != nil {
			return err
		}
		for i, ct := range coderTypes {
			if tables[i] == nil {
				continue
			}
			title := fmt.Sprintf("%s testcase=%v symbol_size=%v", ct.typ, testcase, symbolSize)
			e.warnings = warnings[i]
			if err := e.show(title, file, tables[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
