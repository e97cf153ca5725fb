// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/steinwurf/benchplot/benchtable"
)

// Mean adds column "mean <col>" with the mean of col. The result has
// the type of col.
func Mean(col string) Aggregator {
	return Aggregator{[]string{col}, ggstat.AggMean(col)}
}

// Sum adds column "sum <col>" with the sum of col.
func Sum(col string) Aggregator {
	return Aggregator{[]string{col}, ggstat.AggSum(col)}
}

// Count adds column "count" with the number of rows in each group.
func Count() Aggregator {
	return Aggregator{nil, ggstat.AggCount("")}
}

// StdDev adds column "std <col>" with the sample standard deviation
// of col. Groups with fewer than two rows have a standard deviation
// of NaN.
func StdDev(col string) Aggregator {
	return Aggregator{
		Inputs: []string{col},
		Fn: func(input table.Grouping, b *table.Builder) {
			out := make([]float64, 0, len(input.Tables()))
			var xs []float64
			for _, gid := range input.Tables() {
				slice.Convert(&xs, input.Table(gid).MustColumn(col))
				if len(xs) < 2 {
					out = append(out, math.NaN())
					continue
				}
				out = append(out, stats.StdDev(xs))
			}
			b.Add("std "+col, out)
		},
	}
}

// OverheadColumn is the column added by OverheadRatio.
const OverheadColumn = "overhead"

// OverheadRatio adds column "overhead" with the coding overhead of
// each group in percent:
//
//	100 * (sum(used) - sum(coded)) / sum(coded)
//
// Groups where coded sums to zero have an overhead of NaN and are
// reported to warn.
func OverheadRatio(used, coded string, warn func(error)) Aggregator {
	return Aggregator{
		Inputs: []string{used, coded},
		Fn: func(input table.Grouping, b *table.Builder) {
			out := make([]float64, 0, len(input.Tables()))
			var us, cs []float64
			for _, gid := range input.Tables() {
				t := input.Table(gid)
				slice.Convert(&us, t.MustColumn(used))
				u := vec.Sum(us)
				slice.Convert(&cs, t.MustColumn(coded))
				c := vec.Sum(cs)
				if c == 0 {
					report(warn, &DataError{gid.String(), coded, "sums to zero"})
					out = append(out, math.NaN())
					continue
				}
				out = append(out, 100*(u-c)/c)
			}
			b.Add(OverheadColumn, out)
		},
	}
}

// DependencyColumn is the column added by RankDependency.
const DependencyColumn = "linear dependency"

// RankDependency adds column "linear dependency" with the mean number
// of linearly dependent symbols received at each decoder rank. Each
// group must have a single value of symbols, K. The column holds a
// []float64 of length K per group, where element i is the mean of
// column prefix+i minus one.
//
// Groups with more than one value of symbols are reported to warn and
// use the smallest value. Missing rank columns yield NaN and are
// reported to warn.
func RankDependency(symbols, prefix string, warn func(error)) Aggregator {
	return Aggregator{
		Inputs: []string{symbols},
		Fn: func(input table.Grouping, b *table.Builder) {
			out := make([][]float64, 0, len(input.Tables()))
			var ks, xs []int
			var rank []float64
			for _, gid := range input.Tables() {
				t := input.Table(gid)
				slice.Convert(&ks, t.MustColumn(symbols))
				xs = append(xs[:0], ks...)
				sort.Ints(xs)
				k := xs[0]
				if k < 0 {
					k = 0
				}
				if xs[len(xs)-1] != xs[0] {
					report(warn, &DataError{gid.String(), symbols, fmt.Sprintf("has %v values; using %d", slice.Nub(xs), k)})
				}

				dep := make([]float64, k)
				missing := 0
				for i := range dep {
					col := t.Column(prefix + strconv.Itoa(i))
					if col == nil {
						dep[i] = math.NaN()
						missing++
						continue
					}
					slice.Convert(&rank, col)
					dep[i] = stats.Mean(rank) - 1
				}
				if missing > 0 {
					report(warn, &DataError{gid.String(), prefix + "*", fmt.Sprintf("%d of %d rank columns missing", missing, k)})
				}
				out = append(out, dep)
			}
			b.Add(DependencyColumn, out)
		},
	}
}

// Extra returns t with a new Int column out holding used - symbols
// for each row: the number of symbols beyond the generation size a
// decoder needed.
func Extra(t *table.Table, used, symbols, out string) (*table.Table, error) {
	if err := benchtable.Require(t, used, symbols); err != nil {
		return nil, err
	}
	var us, ks []int
	slice.Convert(&us, t.MustColumn(used))
	slice.Convert(&ks, t.MustColumn(symbols))
	extra := make([]int, len(us))
	for i := range extra {
		extra[i] = us[i] - ks[i]
	}
	return table.NewBuilder(t).Add(out, extra).Done(), nil
}
