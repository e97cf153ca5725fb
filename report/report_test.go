// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"
)

func TestTableSection(t *testing.T) {
	tab := new(table.Builder).
		Add("symbols", []int{8, 16}).
		Add("Binary", []float64{1.23456, math.NaN()}).
		Done()
	s := TableSection("overhead", "overhead.png", tab, "%v", "%.2f")
	want := Section{
		Title:  "overhead",
		Figure: "overhead.png",
		Header: []string{"symbols", "Binary"},
		Rows:   [][]string{{"8", "1.23"}, {"16", ""}},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWrite(t *testing.T) {
	r := &Report{Title: "benchplot <probability>"}
	r.Add(Section{
		Title:    "symbols=16",
		Figure:   "decoding_probability_16_1600_05.png",
		Header:   []string{"overhead", "A.B"},
		Rows:     [][]string{{"0", "0.5"}},
		Warnings: []string{"3 of 10 runs needed 15 or more extra symbols"},
	})
	var buf strings.Builder
	if err := r.Write(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>benchplot &lt;probability&gt;</title>",
		`<img src="decoding_probability_16_1600_05.png"`,
		"<th>A.B</th>",
		"<td>0.5</td>",
		`<p class="warning">3 of 10 runs`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
