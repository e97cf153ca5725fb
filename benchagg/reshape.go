// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/steinwurf/benchplot/benchtable"
)

// Explode converts vector column col of t to long form. Each row of
// t becomes one row per element of its col vector, with the element
// in column col and its position in a new Int column index. Other
// scalar columns are repeated. Other vector columns are dropped.
func Explode(t *table.Table, col, index string) (*table.Table, error) {
	if err := benchtable.Require(t, col); err != nil {
		return nil, err
	}
	vecs := reflect.ValueOf(t.MustColumn(col))
	if vecs.Type().Elem().Kind() != reflect.Slice {
		return nil, fmt.Errorf("column %q has type %s, want a vector column", col, vecs.Type())
	}

	// rows[j] is the input row of output row j.
	var rows, pos []int
	for i := 0; i < vecs.Len(); i++ {
		for j := 0; j < vecs.Index(i).Len(); j++ {
			rows = append(rows, i)
			pos = append(pos, j)
		}
	}
	elems := reflect.MakeSlice(vecs.Type().Elem(), 0, len(rows))
	for i := 0; i < vecs.Len(); i++ {
		elems = reflect.AppendSlice(elems, vecs.Index(i))
	}

	var b table.Builder
	for _, name := range t.Columns() {
		if name == col {
			b.Add(index, pos)
			b.Add(col, elems.Interface())
			continue
		}
		if name == index {
			continue
		}
		if cv, ok := t.Const(name); ok {
			b.AddConst(name, cv)
			continue
		}
		c := t.MustColumn(name)
		if reflect.TypeOf(c).Elem().Kind() == reflect.Slice {
			continue
		}
		b.Add(name, slice.Select(c, rows))
	}
	return b.Done(), nil
}

// A Wide table is the result of pivoting a long table: one row per
// distinct value of a row key and one column per distinct value of a
// column key.
type Wide struct {
	RowKey, ColKey, Value string

	// Rows holds the distinct row key values, sorted.
	Rows []interface{}
	// Cols holds the string form of the distinct column key
	// values, sorted by value.
	Cols []string
	// Cells[i][j] is the value for Rows[i] and Cols[j], or NaN if
	// the input has no such pair.
	Cells [][]float64

	// Warnings reports duplicate (row, column) pairs. The first
	// value of a duplicate pair is kept.
	Warnings []error
}

// Pivot reshapes t so that each distinct value of rowKey is a row,
// each distinct value of colKey is a column, and each cell holds
// value.
func Pivot(t *table.Table, rowKey, colKey, value string) (*Wide, error) {
	if err := benchtable.Require(t, rowKey, colKey, value); err != nil {
		return nil, err
	}
	var vals []float64
	slice.Convert(&vals, t.MustColumn(value))
	rv := reflect.ValueOf(t.MustColumn(rowKey))
	cv := reflect.ValueOf(t.MustColumn(colKey))

	w := &Wide{RowKey: rowKey, ColKey: colKey, Value: value}
	rowIdx := make(map[interface{}]int)
	colIdx := make(map[interface{}]int)
	var cols []interface{}
	for i := 0; i < t.Len(); i++ {
		r := rv.Index(i).Interface()
		if _, ok := rowIdx[mapKey(r)]; !ok {
			rowIdx[mapKey(r)] = len(w.Rows)
			w.Rows = append(w.Rows, r)
		}
		c := cv.Index(i).Interface()
		if _, ok := colIdx[mapKey(c)]; !ok {
			colIdx[mapKey(c)] = len(cols)
			cols = append(cols, c)
		}
	}
	sort.SliceStable(w.Rows, func(i, j int) bool { return compareValues(w.Rows[i], w.Rows[j]) < 0 })
	sort.SliceStable(cols, func(i, j int) bool { return compareValues(cols[i], cols[j]) < 0 })
	for i, r := range w.Rows {
		rowIdx[mapKey(r)] = i
	}
	w.Cols = make([]string, len(cols))
	for j, c := range cols {
		colIdx[mapKey(c)] = j
		w.Cols[j] = fmt.Sprint(c)
	}

	w.Cells = make([][]float64, len(w.Rows))
	set := make([][]bool, len(w.Rows))
	for i := range w.Cells {
		w.Cells[i] = make([]float64, len(cols))
		for j := range w.Cells[i] {
			w.Cells[i][j] = math.NaN()
		}
		set[i] = make([]bool, len(cols))
	}
	for k := 0; k < t.Len(); k++ {
		r, c := rv.Index(k).Interface(), cv.Index(k).Interface()
		i, j := rowIdx[mapKey(r)], colIdx[mapKey(c)]
		if set[i][j] {
			w.Warnings = append(w.Warnings, &DataError{
				Group:  fmt.Sprintf("%s=%v %s=%v", rowKey, r, colKey, c),
				Column: value,
				Msg:    fmt.Sprintf("duplicate value %v; keeping %v", vals[k], w.Cells[i][j]),
			})
			continue
		}
		w.Cells[i][j] = vals[k]
		set[i][j] = true
	}
	return w, nil
}

// Column returns the series for column label, indexed like Rows.
func (w *Wide) Column(label string) ([]float64, bool) {
	for j, c := range w.Cols {
		if c == label {
			out := make([]float64, len(w.Rows))
			for i := range out {
				out[i] = w.Cells[i][j]
			}
			return out, true
		}
	}
	return nil, false
}

// RowLabels returns the string form of each row key.
func (w *Wide) RowLabels() []string {
	out := make([]string, len(w.Rows))
	for i, r := range w.Rows {
		out[i] = fmt.Sprint(r)
	}
	return out
}

// RowValues returns the row keys as float64s, or false if the row key
// is not numeric.
func (w *Wide) RowValues() ([]float64, bool) {
	out := make([]float64, len(w.Rows))
	for i, r := range w.Rows {
		x, ok := number(r)
		if !ok {
			return nil, false
		}
		out[i] = x
	}
	return out, true
}

// Table returns w as a table with the row key column followed by a
// []float64 column per column label.
func (w *Wide) Table() *table.Table {
	var b table.Builder
	if len(w.Rows) == 0 {
		return b.Done()
	}
	rows := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(w.Rows[0])), len(w.Rows), len(w.Rows))
	for i, r := range w.Rows {
		rows.Index(i).Set(reflect.ValueOf(r))
	}
	b.Add(w.RowKey, rows.Interface())
	for _, label := range w.Cols {
		col, _ := w.Column(label)
		b.Add(label, col)
	}
	return b.Done()
}
