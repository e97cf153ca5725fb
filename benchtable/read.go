// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// ReadRecords reads a CSV stream with a header row and returns the
// header and data rows. Blank trailing fields that the benchmark tool
// writes are kept; rows with a different field count than the header
// are accepted, and Decode reports short rows.
func ReadRecords(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	header, err = cr.Read()
	if err == io.EOF {
		return nil, nil, ErrEmpty
	} else if err != nil {
		return nil, nil, csvError(err)
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, csvError(err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %v", ErrInput, perr)
	}
	return err
}

// Read reads a CSV table from r and decodes it with schema s.
func Read(r io.Reader, s Schema) (*table.Table, error) {
	header, rows, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	return s.Decode(header, rows)
}

// Label returns t with a new string column name whose value in each
// row concatenates each part's prefix and column value. Float columns that
// are NaN in a row are skipped, so the optional "density" column
// only labels rows that have a density.
//
// The benchmark scripts label plot series with "testcase.benchmark"
// and, for sparse codes, " density D".
func Label(t *table.Table, name string, parts ...LabelPart) (*table.Table, error) {
	for _, p := range parts {
		if p.Optional && t.Column(p.Column) == nil {
			continue
		}
		if err := Require(t, p.Column); err != nil {
			return nil, err
		}
	}

	labels := make([]string, t.Len())
	for _, p := range parts {
		col := t.Column(p.Column)
		if col == nil {
			continue
		}
		for i := range labels {
			var v string
			switch c := col.(type) {
			case []string:
				v = c[i]
			case []int:
				v = fmt.Sprint(c[i])
			case []float64:
				if math.IsNaN(c[i]) {
					continue
				}
				v = floatString(c[i])
			default:
				return nil, fmt.Errorf("column %q: cannot label with %T", p.Column, col)
			}
			labels[i] += p.Prefix + v
		}
	}
	return table.NewBuilder(t).Add(name, labels).Done(), nil
}

// floatString formats x as the benchmark scripts print floats: an
// integral value keeps a ".0" suffix.
func floatString(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		s += ".0"
	}
	return s
}

// A LabelPart is one component of a label built by Label.
type LabelPart struct {
	// Prefix is written before the column value.
	Prefix string
	Column string
	// Optional parts are skipped when the column is absent.
	Optional bool
}
