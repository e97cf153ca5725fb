// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/steinwurf/benchplot/archive"
	"github.com/steinwurf/benchplot/archive/archivetest"
)

var (
	header = []string{"testcase", "benchmark", "symbols", "used"}
	rows   = [][]string{
		{"FullRLNC", "Binary", "16", "17"},
		{"FullRLNC", "Binary8", "16", "16"},
		{"Sparse", "Binary", "32", "35"},
		{"FullRLNC", "Binary", "32", "33,5"},
	}
)

func TestImportLoad(t *testing.T) {
	ctx := context.Background()
	db := archivetest.New(t)

	if _, err := db.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest on empty archive: got %v, want ErrNotFound", err)
	}

	info, err := db.Import(ctx, "out.csv", header, rows)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if info.Records != len(rows) {
		t.Errorf("Import stored %d records, want %d", info.Records, len(rows))
	}

	latest, err := db.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest != info.ID {
		t.Errorf("Latest = %d, want %d", latest, info.ID)
	}

	check := func(match map[string]string, want [][]string) {
		t.Helper()
		h, got, err := db.Load(ctx, info.ID, match)
		if err != nil {
			t.Fatalf("Load(%v): %v", match, err)
		}
		if diff := cmp.Diff(header, h); diff != "" {
			t.Errorf("Load(%v) header (-want +got):\n%s", match, diff)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Load(%v) rows (-want +got):\n%s", match, diff)
		}
	}
	check(nil, rows)
	check(map[string]string{"testcase": "FullRLNC"}, [][]string{rows[0], rows[1], rows[3]})
	check(map[string]string{"testcase": "FullRLNC", "symbols": "32"}, [][]string{rows[3]})
	check(map[string]string{"testcase": "nope"}, nil)

	if _, _, err := db.Load(ctx, info.ID+1, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of unknown upload: got %v, want ErrNotFound", err)
	}
}

func TestListUploads(t *testing.T) {
	ctx := context.Background()
	db := archivetest.New(t)

	a := archivetest.Import(t, db, "a.csv", header, rows)
	b := archivetest.Import(t, db, "b.csv", header[:2], nil)

	got, err := db.ListUploads(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []UploadInfo{
		{ID: a.ID, Name: "a.csv", Header: header, Records: 4},
		{ID: b.ID, Name: "b.csv", Header: header[:2], Records: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListUploads (-want +got):\n%s", diff)
	}

	if err := db.DeleteUpload(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if n, err := db.CountUploads(ctx); err != nil || n != 1 {
		t.Errorf("CountUploads after delete = %d, %v; want 1", n, err)
	}
	if err := db.DeleteUpload(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestImportLongRow(t *testing.T) {
	db := archivetest.New(t)

	if _, err := db.Import(context.Background(), "bad.csv", header[:1], rows); err == nil {
		t.Errorf("Import of rows longer than the header succeeded")
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open("results.db"); err == nil {
		t.Errorf("Open without a driver succeeded")
	}
	db, err := Open("sqlite3::memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.Close()
}
