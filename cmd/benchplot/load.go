// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/sirupsen/logrus"

	"github.com/steinwurf/benchplot/archive"
	"github.com/steinwurf/benchplot/benchtable"
)

// load reads the input table of a plotting command and decodes it
// with schema s.
func (e *env) load(ctx context.Context, s benchtable.Schema) (*table.Table, error) {
	src, header, rows, err := e.records(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.Decode(header, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	e.log.WithFields(logrus.Fields{"source": src, "rows": t.Len()}).Debug("loaded")
	return t, nil
}

// records returns the raw header and rows of the input, either from
// the archive named by --db or from --csv_file, with a description
// of where they came from.
func (e *env) records(ctx context.Context) (src string, header []string, rows [][]string, err error) {
	if spec := e.cfg.GetString("db"); spec != "" {
		return e.archiveRecords(ctx, spec)
	}

	name := e.cfg.GetString("csv_file")
	r, err := e.store.Open(ctx, name)
	if err != nil {
		return "", nil, nil, err
	}
	defer r.Close()
	header, rows, err = benchtable.ReadRecords(r)
	if err != nil {
		return "", nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return name, header, rows, nil
}

func (e *env) archiveRecords(ctx context.Context, spec string) (src string, header []string, rows [][]string, err error) {
	match, err := parseWhere(e.cfg.GetStringSlice("where"))
	if err != nil {
		return "", nil, nil, err
	}
	db, err := archive.Open(spec)
	if err != nil {
		return "", nil, nil, err
	}
	defer db.Close()

	id := e.cfg.GetInt64("upload")
	if id == 0 {
		id, err = db.Latest(ctx)
		if errors.Is(err, archive.ErrNotFound) {
			return "", nil, nil, fmt.Errorf("%s: archive has no uploads: %w", spec, benchtable.ErrEmpty)
		}
		if err != nil {
			return "", nil, nil, err
		}
	}
	header, rows, err = db.Load(ctx, id, match)
	if err != nil {
		return "", nil, nil, fmt.Errorf("upload %d: %w", id, err)
	}
	return fmt.Sprintf("upload %d", id), header, rows, nil
}

// parseWhere parses --where key=value arguments.
func parseWhere(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, usagef("--where %q: want key=value", arg)
		}
		m[k] = v
	}
	return m, nil
}
