// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtable loads benchmark result tables and validates
// them against a declared schema.
//
// The benchmark tool writes one CSV row per measurement. Which columns
// appear depends on the benchmark, so each analysis declares the
// columns it needs in a Schema. Decoding fails fast with a typed input
// error when a required column is missing or a value does not parse,
// rather than failing deep inside an aggregation.
//
// Decoded tables are go-gg tables (github.com/aclements/go-gg/table).
// String columns are []string, Int columns are []int and Float
// columns are []float64. Columns present in the input but not
// declared in the Schema are kept as []string.
package benchtable

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// A Kind is the type of a column.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Column declares a column of a Schema.
type Column struct {
	Name string
	Kind Kind

	// Optional columns may be absent from the input. Absent
	// optional columns are absent from the decoded table as well.
	Optional bool
}

// A Schema declares the columns an analysis reads.
type Schema struct {
	Columns []Column

	// Prefixes declares families of columns. Any header that
	// starts with a prefix's Name is decoded with that prefix's
	// Kind. This is used for the per-rank columns "rank 0",
	// "rank 1", and so on. If a prefix is not Optional, at least
	// one header must match it.
	Prefixes []Column
}

// ErrInput is the class of all errors caused by malformed input.
// Every input error returned by this package satisfies
// errors.Is(err, ErrInput).
var ErrInput = errors.New("malformed input")

// ErrEmpty is returned when the input has no header or no data rows.
var ErrEmpty = fmt.Errorf("%w: no data", ErrInput)

// A MissingColumnError reports that a required column is absent.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Name)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrInput }

// A ParseError reports a value that does not parse as its column's Kind.
type ParseError struct {
	Line   int // 1-based, counting the header line
	Column string
	Value  string
	Kind   Kind
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse %q as %s", e.Line, e.Column, e.Value, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInput }

// lookup returns the declared kind of header h.
func (s Schema) lookup(h string) (Kind, bool) {
	for _, c := range s.Columns {
		if c.Name == h {
			return c.Kind, true
		}
	}
	for _, p := range s.Prefixes {
		if strings.HasPrefix(h, p.Name) {
			return p.Kind, true
		}
	}
	return String, false
}

// Check reports the first required column of s that is missing from
// header.
func (s Schema) Check(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	for _, c := range s.Columns {
		if !c.Optional && !have[c.Name] {
			return &MissingColumnError{c.Name}
		}
	}
	for _, p := range s.Prefixes {
		if p.Optional {
			continue
		}
		found := false
		for _, h := range header {
			if strings.HasPrefix(h, p.Name) {
				found = true
				break
			}
		}
		if !found {
			return &MissingColumnError{p.Name + "*"}
		}
	}
	return nil
}

// Decode converts a header and string rows into a Table. Rows
// shorter than the header are a parse fault. Empty cells in Float
// columns decode as NaN; empty cells in Int columns are rejected.
func (s Schema) Decode(header []string, rows [][]string) (*table.Table, error) {
	if len(header) == 0 || len(rows) == 0 {
		return nil, ErrEmpty
	}
	if err := s.Check(header); err != nil {
		return nil, err
	}

	var b table.Builder
	for ci, name := range header {
		kind, _ := s.lookup(name)
		switch kind {
		case String:
			col := make([]string, len(rows))
			for ri, row := range rows {
				v, err := cell(row, ci, ri, name, kind)
				if err != nil {
					return nil, err
				}
				col[ri] = v
			}
			b.Add(name, col)

		case Int:
			col := make([]int, len(rows))
			for ri, row := range rows {
				v, err := cell(row, ci, ri, name, kind)
				if err != nil {
					return nil, err
				}
				x, err := strconv.ParseInt(strings.TrimSpace(v), 10, 0)
				if err != nil {
					// The benchmark tool sometimes prints integral
					// counts as "16.0".
					f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64)
					if ferr != nil || f != math.Trunc(f) {
						return nil, &ParseError{ri + 2, name, v, kind, err}
					}
					if f < math.MinInt || f >= -math.MinInt {
						return nil, &ParseError{ri + 2, name, v, kind, strconv.ErrRange}
					}
					x = int64(f)
				}
				col[ri] = int(x)
			}
			b.Add(name, col)

		case Float:
			col := make([]float64, len(rows))
			for ri, row := range rows {
				v, err := cell(row, ci, ri, name, kind)
				if err != nil {
					return nil, err
				}
				v = strings.TrimSpace(v)
				if v == "" {
					col[ri] = math.NaN()
					continue
				}
				x, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, &ParseError{ri + 2, name, v, kind, err}
				}
				col[ri] = x
			}
			b.Add(name, col)
		}
	}
	return b.Done(), nil
}

func cell(row []string, ci, ri int, name string, kind Kind) (string, error) {
	if ci >= len(row) {
		return "", &ParseError{ri + 2, name, "", kind, errors.New("short row")}
	}
	return row[ci], nil
}

// Require reports the first of cols that t does not have.
func Require(t *table.Table, cols ...string) error {
	for _, c := range cols {
		if _, ok := t.Const(c); ok {
			continue
		}
		if t.Column(c) == nil {
			return &MissingColumnError{c}
		}
	}
	return nil
}
