// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes an HTML page that collects the figures and
// aggregated tables of one benchplot run.
package report

import (
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/aclements/go-gg/table"
	"github.com/google/safehtml/template"
)

// A Report is an HTML page of sections.
type Report struct {
	Title    string
	Sections []Section
}

// A Section is one figure with the table it was drawn from.
type Section struct {
	Title string
	// Figure is the figure's file name relative to the report.
	Figure   string
	Header   []string
	Rows     [][]string
	Warnings []string
}

// Add appends s to r.
func (r *Report) Add(s Section) {
	r.Sections = append(r.Sections, s)
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
table.benchplot td { padding: 0 0.5em; text-align: right; }
table.benchplot th { padding: 0 0.5em; }
.warning { color: #a00; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Sections}}
<h2>{{.Title}}</h2>
{{- if .Figure}}
<img src="{{.Figure}}" alt="{{.Title}}">
{{- end}}
{{- if .Header}}
<table class="benchplot">
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}
{{- range .Warnings}}
<p class="warning">{{.}}</p>
{{- end}}
{{- end}}
</body>
</html>
`))

// Write renders r as HTML to w.
func (r *Report) Write(w io.Writer) error {
	return htmlTemplate.Execute(w, r)
}

// TableSection returns a section for figure showing table t.
// formats[i] is the fmt verb for column i, as for table.Fprint;
// columns without a format use %v. NaN cells are left blank.
func TableSection(title, figure string, t *table.Table, formats ...string) Section {
	s := Section{Title: title, Figure: figure, Header: t.Columns()}
	s.Rows = make([][]string, t.Len())
	for i := range s.Rows {
		s.Rows[i] = make([]string, len(s.Header))
	}
	for j, col := range s.Header {
		format := "%v"
		if j < len(formats) {
			format = formats[j]
		}
		seq := reflect.ValueOf(t.MustColumn(col))
		for i := 0; i < seq.Len(); i++ {
			v := seq.Index(i).Interface()
			if f, ok := v.(float64); ok && math.IsNaN(f) {
				continue
			}
			s.Rows[i][j] = fmt.Sprintf(format, v)
		}
	}
	return s
}
