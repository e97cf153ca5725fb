// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"math"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// A floatKey stands in for a float64 grouping key. Unlike float64,
// every NaN floatKey equals every other, so rows with an empty Float
// key cell fall into one group.
type floatKey uint64

var nanKey = floatKey(math.Float64bits(math.NaN()))

func keyOf(x float64) floatKey {
	switch {
	case math.IsNaN(x):
		return nanKey
	case x == 0:
		// -0 groups with 0.
		return 0
	}
	return floatKey(math.Float64bits(x))
}

func (k floatKey) value() float64 { return math.Float64frombits(uint64(k)) }

// String formats k as its float64, so group IDs print as usual.
func (k floatKey) String() string { return strconv.FormatFloat(k.value(), 'g', -1, 64) }

// mapKey returns v in a form usable as a map key for grouping.
func mapKey(v interface{}) interface{} {
	if x, ok := v.(float64); ok {
		return keyOf(x)
	}
	return v
}

// encodeKeys returns t with each float64 column among cols replaced
// by its floatKeys.
func encodeKeys(t *table.Table, cols []string) *table.Table {
	enc := make(map[string]bool)
	for _, c := range cols {
		if cv, ok := t.Const(c); ok {
			_, enc[c] = cv.(float64)
			continue
		}
		_, enc[c] = t.Column(c).([]float64)
	}

	b := table.NewBuilder(t)
	for name, ok := range enc {
		if !ok {
			continue
		}
		if cv, ok := t.Const(name); ok {
			b.AddConst(name, keyOf(cv.(float64)))
			continue
		}
		xs := t.Column(name).([]float64)
		ks := make([]floatKey, len(xs))
		for i, x := range xs {
			ks[i] = keyOf(x)
		}
		b.Add(name, ks)
	}
	return b.Done()
}

// decodeKeys undoes encodeKeys on every column of t.
func decodeKeys(t *table.Table) *table.Table {
	b := table.NewBuilder(t)
	for _, name := range t.Columns() {
		if cv, ok := t.Const(name); ok {
			if k, ok := cv.(floatKey); ok {
				b.AddConst(name, k.value())
			}
			continue
		}
		if ks, ok := t.Column(name).([]floatKey); ok {
			xs := make([]float64, len(ks))
			for i, k := range ks {
				xs[i] = k.value()
			}
			b.Add(name, xs)
		}
	}
	return b.Done()
}
