// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"math"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"
)

func TestPivotSparse(t *testing.T) {
	in := new(table.Builder).
		Add("runs", []int{1, 0, 1}).
		Add("benchmark", []string{"y", "x", "x"}).
		Add("extra", []int{2, 1, 3}).
		Done()
	w, err := Pivot(in, "runs", "benchmark", "extra")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]interface{}{0, 1}, w.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, w.Cols); diff != "" {
		t.Errorf("cols (-want +got):\n%s", diff)
	}
	want := [][]float64{{1, math.NaN()}, {3, 2}}
	if diff := cmp.Diff(want, w.Cells, approx); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
	if len(w.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", w.Warnings)
	}

	y, ok := w.Column("y")
	if !ok {
		t.Fatalf("no column y")
	}
	if diff := cmp.Diff([]float64{math.NaN(), 2}, y, approx); diff != "" {
		t.Errorf("column y (-want +got):\n%s", diff)
	}
	if _, ok := w.Column("z"); ok {
		t.Errorf("found nonexistent column z")
	}

	tab := w.Table()
	if diff := cmp.Diff([]string{"runs", "x", "y"}, tab.Columns()); diff != "" {
		t.Errorf("table columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, tab.Column("runs")); diff != "" {
		t.Errorf("table rows (-want +got):\n%s", diff)
	}
}

func TestPivotNumericColumns(t *testing.T) {
	in := new(table.Builder).
		Add("test", []string{"A", "A", "A"}).
		Add("symbols", []int{16, 8, 128}).
		Add("overhead", []float64{3, 1, 9}).
		Done()
	w, err := Pivot(in, "symbols", "test", "overhead")
	if err != nil {
		t.Fatal(err)
	}
	xs, ok := w.RowValues()
	if !ok {
		t.Fatalf("symbols rows are not numeric")
	}
	if diff := cmp.Diff([]float64{8, 16, 128}, xs); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"8", "16", "128"}, w.RowLabels()); diff != "" {
		t.Errorf("row labels (-want +got):\n%s", diff)
	}

	w, err = Pivot(in, "test", "symbols", "overhead")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"8", "16", "128"}, w.Cols); diff != "" {
		t.Errorf("cols (-want +got):\n%s", diff)
	}
	if _, ok := w.RowValues(); ok {
		t.Errorf("string rows reported as numeric")
	}
}

func TestPivotDuplicate(t *testing.T) {
	in := new(table.Builder).
		Add("r", []int{0, 0}).
		Add("c", []string{"x", "x"}).
		Add("v", []float64{1, 2}).
		Done()
	w, err := Pivot(in, "r", "c", "v")
	if err != nil {
		t.Fatal(err)
	}
	if w.Cells[0][0] != 1 {
		t.Errorf("cell = %v, want first value 1", w.Cells[0][0])
	}
	if len(w.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(w.Warnings))
	}
}

func TestPivotNaNKey(t *testing.T) {
	in := new(table.Builder).
		Add("erasure", []float64{math.NaN(), math.NaN(), 0.5}).
		Add("symbols", []int{4, 8, 4}).
		Add("used", []float64{5, 9, 6}).
		Done()
	w, err := Pivot(in, "erasure", "symbols", "used")
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", w.Warnings)
	}
	want := [][]float64{{6, math.NaN()}, {5, 9}}
	if diff := cmp.Diff(want, w.Cells, approx); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
	if len(w.Rows) != 2 {
		t.Errorf("rows = %v, want [0.5 NaN]", w.Rows)
	}
}

func TestExplode(t *testing.T) {
	in := new(table.Builder).
		Add("test", []string{"A", "B"}).
		Add("cdf", [][]float64{{0.5, 1}, {0.25, 0.75}}).
		Add("counts", [][]int{{1, 1}, {1, 2}}).
		Done()
	got, err := Explode(in, "cdf", "overhead")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"test", "overhead", "cdf"}, got.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "A", "B", "B"}, got.Column("test")); diff != "" {
		t.Errorf("test (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 0, 1}, got.Column("overhead")); diff != "" {
		t.Errorf("overhead (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.5, 1, 0.25, 0.75}, got.Column("cdf")); diff != "" {
		t.Errorf("cdf (-want +got):\n%s", diff)
	}

	if _, err := Explode(in, "test", "i"); err == nil {
		t.Errorf("exploding a scalar column succeeded")
	}
}
