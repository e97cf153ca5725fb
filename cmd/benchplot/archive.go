// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/steinwurf/benchplot/archive"
	"github.com/steinwurf/benchplot/benchtable"
)

func (e *env) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Store a CSV result file in a result archive",
		Long: `Import reads --csv_file and stores it as a new upload in the
archive named by --db. Plotting commands given the same --db read the
latest upload, or the one selected by --upload.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.importCSV(cmd.Context())
		},
	}
}

func (e *env) uploadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "List the uploads of a result archive",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.uploads(cmd.Context())
		},
	}
	cmd.Flags().Int64("delete", 0, "delete upload `id` before listing")
	return cmd
}

func (e *env) openArchive() (*archive.DB, error) {
	spec := e.cfg.GetString("db")
	if spec == "" {
		return nil, usagef("no archive given; set --db driver:dsn")
	}
	return archive.Open(spec)
}

func (e *env) importCSV(ctx context.Context) error {
	db, err := e.openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	name := e.cfg.GetString("csv_file")
	r, err := e.store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer r.Close()
	header, rows, err := benchtable.ReadRecords(r)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(header) == 0 {
		return fmt.Errorf("%s: %w", name, benchtable.ErrEmpty)
	}

	info, err := db.Import(ctx, path.Base(strings.ReplaceAll(name, "\\", "/")), header, rows)
	if err != nil {
		return fmt.Errorf("importing %s: %w", name, err)
	}
	e.log.WithFields(logrus.Fields{"upload": info.ID, "file": name}).Debug("imported")
	_, err = fmt.Fprintf(e.stdout, "upload %d: %d records\n", info.ID, info.Records)
	return err
}

func (e *env) uploads(ctx context.Context) error {
	db, err := e.openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	if id := e.cfg.GetInt64("delete"); id != 0 {
		if err := db.DeleteUpload(ctx, id); err != nil {
			return fmt.Errorf("deleting upload %d: %w", id, err)
		}
		e.log.WithField("upload", id).Info("deleted")
	}

	list, err := db.ListUploads(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(e.stdout, "no uploads")
		return err
	}
	var (
		ids     = make([]int64, len(list))
		names   = make([]string, len(list))
		records = make([]int, len(list))
		columns = make([]string, len(list))
	)
	for i, u := range list {
		ids[i], names[i], records[i] = u.ID, u.Name, u.Records
		columns[i] = strings.Join(u.Header, ",")
	}
	t := new(table.Builder).
		Add("upload", ids).
		Add("name", names).
		Add("records", records).
		Add("columns", columns).
		Done()
	return table.Fprint(e.stdout, t)
}
