// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/steinwurf/benchplot/benchtable"
)

// DefaultWindow is the default number of overhead values covered by
// a decoding probability distribution: 0 through 14 extra symbols.
const DefaultWindow = 15

// A Dist is the distribution of decoding overhead, the number of
// symbols beyond the generation size a decoder used, over a window of
// overhead values [0, len(Counts)).
type Dist struct {
	// Counts[o] is the number of runs with overhead o.
	Counts []int
	// PMF[o] is Counts[o] / Total.
	PMF []float64
	// CDF[o] is the probability of decoding with at most o
	// extra symbols. CDF[len-1] is 1 - (Truncated+Negative)/Total.
	CDF []float64

	// Total is the number of runs, including those outside the
	// window.
	Total int
	// Truncated is the number of runs with overhead at or beyond
	// the window.
	Truncated int
	// Negative is the number of runs that used fewer symbols than
	// the generation size. They are counted in Total but not in
	// any bin.
	Negative int
}

// Distribution computes the distribution of overheads over the
// window [0, window). If there are no overheads, PMF and CDF are
// all zero.
func Distribution(overheads []int, window int) Dist {
	if window < 0 {
		window = 0
	}
	d := Dist{
		Counts: make([]int, window),
		PMF:    make([]float64, window),
		CDF:    make([]float64, window),
		Total:  len(overheads),
	}
	for _, o := range overheads {
		switch {
		case o < 0:
			d.Negative++
		case o >= window:
			d.Truncated++
		default:
			d.Counts[o]++
		}
	}
	if d.Total == 0 {
		return d
	}
	cum := 0
	for o, n := range d.Counts {
		cum += n
		d.PMF[o] = float64(n) / float64(d.Total)
		d.CDF[o] = float64(cum) / float64(d.Total)
	}
	return d
}

// Columns added by OverheadCDF.
const (
	CountsColumn    = "counts"
	PMFColumn       = "pmf"
	CDFColumn       = "cdf"
	TruncatedColumn = "truncated"
	NegativeColumn  = "negative"
)

// OverheadCDF computes the Distribution of used - symbols in each
// group over [0, window). It adds columns "counts" ([]int), "pmf" and
// "cdf" ([]float64), and "truncated" and "negative" (int).
//
// Groups with runs outside the window are reported to warn.
func OverheadCDF(used, symbols string, window int, warn func(error)) Aggregator {
	return Aggregator{
		Inputs: []string{used, symbols},
		Fn: func(input table.Grouping, b *table.Builder) {
			n := len(input.Tables())
			counts := make([][]int, 0, n)
			pmfs := make([][]float64, 0, n)
			cdfs := make([][]float64, 0, n)
			truncated := make([]int, 0, n)
			negative := make([]int, 0, n)
			for _, gid := range input.Tables() {
				d := Distribution(overheads(input.Table(gid), used, symbols), window)
				if d.Negative > 0 {
					report(warn, &DataError{gid.String(), used,
						fmt.Sprintf("%d of %d runs used fewer than %s symbols", d.Negative, d.Total, symbols)})
				}
				if d.Truncated > 0 {
					report(warn, &DataError{gid.String(), used,
						fmt.Sprintf("%d of %d runs needed %d or more extra symbols", d.Truncated, d.Total, window)})
				}
				counts = append(counts, d.Counts)
				pmfs = append(pmfs, d.PMF)
				cdfs = append(cdfs, d.CDF)
				truncated = append(truncated, d.Truncated)
				negative = append(negative, d.Negative)
			}
			b.Add(CountsColumn, counts).
				Add(PMFColumn, pmfs).
				Add(CDFColumn, cdfs).
				Add(TruncatedColumn, truncated).
				Add(NegativeColumn, negative)
		},
	}
}

func overheads(t *table.Table, used, symbols string) []int {
	var us, ks []int
	slice.Convert(&us, t.MustColumn(used))
	slice.Convert(&ks, t.MustColumn(symbols))
	out := make([]int, len(us))
	for i := range out {
		out[i] = us[i] - ks[i]
	}
	return out
}

// Window returns the smallest window that covers every overhead in
// t, which is at least 1.
func Window(t *table.Table, used, symbols string) (int, error) {
	if err := benchtable.Require(t, used, symbols); err != nil {
		return 0, err
	}
	w := 1
	for _, o := range overheads(t, used, symbols) {
		if o+1 > w {
			w = o + 1
		}
	}
	return w, nil
}
