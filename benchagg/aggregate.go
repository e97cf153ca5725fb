// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg groups benchmark result tables, aggregates each
// group and reshapes the results for plotting.
//
// Every analysis follows the same pipeline: partition the rows of a
// table by a grouping key (a tuple of column values), reduce each
// group to one output row with one or more Aggregators, and pivot the
// result into a wide table with one row key and one column key.
//
// Aggregation never fails because of the data itself. Values that
// violate an expected property, like a decoder that used fewer
// symbols than the generation size, are reported as *DataError
// values through a warn function and the affected outputs are NaN or
// excluded as documented on each Aggregator.
package benchagg

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/steinwurf/benchplot/benchtable"
)

// An Aggregator reduces each group of a table to one output row.
type Aggregator struct {
	// Inputs are the columns Fn reads. Aggregate checks that
	// they exist before grouping.
	Inputs []string

	// Fn adds the output columns for every group in its input.
	Fn ggstat.Aggregator
}

// Aggregate partitions t into groups of rows with equal values in
// the groupBy columns and applies aggs to each group.
//
// The result has one row per distinct grouping key, sorted by key.
// Its columns are the groupBy columns, followed by the columns added
// by aggs, followed by any column of t that is constant within every
// group. If groupBy is empty, the whole table is one group. NaN
// values of a Float key column group together. The groupBy columns
// are not float64 inside the groups passed to aggs, so aggregators
// must not read them.
func Aggregate(t *table.Table, groupBy []string, aggs ...Aggregator) (*table.Table, error) {
	if err := benchtable.Require(t, groupBy...); err != nil {
		return nil, err
	}
	fns := make([]ggstat.Aggregator, 0, len(aggs))
	for _, agg := range aggs {
		if err := benchtable.Require(t, agg.Inputs...); err != nil {
			return nil, err
		}
		fns = append(fns, agg.Fn)
	}

	out := table.Flatten(ggstat.Agg(groupBy...)(fns...).F(encodeKeys(t, groupBy)))
	return sortRows(decodeKeys(out), groupBy), nil
}

// sortRows sorts the rows of t by the tuple of cols using
// compareValues. table.SortBy is not used because it skips key
// columns that are sorted on their own.
func sortRows(t *table.Table, cols []string) *table.Table {
	if t.Len() == 0 {
		return t
	}
	keys := make([]reflect.Value, 0, len(cols))
	for _, c := range cols {
		if _, ok := t.Const(c); ok {
			continue
		}
		keys = append(keys, reflect.ValueOf(t.MustColumn(c)))
	}
	if len(keys) == 0 {
		return t
	}
	perm := make([]int, t.Len())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		for _, k := range keys {
			if c := compareValues(k.Index(perm[i]).Interface(), k.Index(perm[j]).Interface()); c != 0 {
				return c < 0
			}
		}
		return false
	})

	var nt table.Builder
	for _, name := range t.Columns() {
		if cv, ok := t.Const(name); ok {
			nt.AddConst(name, cv)
			continue
		}
		nt.Add(name, slice.Select(t.Column(name), perm))
	}
	return nt.Done()
}

// A Group is one partition of a table.
type Group struct {
	// Cols are the names of the key columns.
	Cols []string
	// Key holds the value of each key column in this group.
	Key []interface{}
	// Table holds the rows of this group. Key columns are
	// constant columns of Table.
	Table *table.Table
}

// String returns the group key as space-separated col=value pairs.
func (g Group) String() string {
	var buf strings.Builder
	for i, c := range g.Cols {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s=%v", c, g.Key[i])
	}
	return buf.String()
}

// Partition splits t into groups of rows with equal values in cols,
// sorted by key. Row order within a group is preserved. NaN values
// of a Float key column form one group.
func Partition(t *table.Table, cols ...string) ([]Group, error) {
	if err := benchtable.Require(t, cols...); err != nil {
		return nil, err
	}
	g := table.GroupBy(encodeKeys(t, cols), cols...)
	groups := make([]Group, 0, len(g.Tables()))
	for _, gid := range g.Tables() {
		key := make([]interface{}, len(cols))
		p := gid
		for i := len(cols) - 1; i >= 0; i-- {
			key[i] = p.Label()
			if k, ok := key[i].(floatKey); ok {
				key[i] = k.value()
			}
			p = p.Parent()
		}
		groups = append(groups, Group{cols, key, decodeKeys(g.Table(gid))})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return compareKeys(groups[i].Key, groups[j].Key) < 0
	})
	return groups, nil
}

func compareKeys(a, b []interface{}) int {
	for i := range a {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareValues orders column values. Numbers sort numerically with
// NaNs last, strings sort bytewise, and numbers sort before strings.
func compareValues(a, b interface{}) int {
	af, aok := number(a)
	bf, bok := number(b)
	switch {
	case aok && bok:
		switch {
		case af < bf || (!math.IsNaN(af) && math.IsNaN(bf)):
			return -1
		case af > bf || (math.IsNaN(af) && !math.IsNaN(bf)):
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
