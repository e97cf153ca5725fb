// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestJoin(t *testing.T) {
	for _, test := range []struct {
		dir, name, want string
	}{
		{"gs://bucket", "a.png", "gs://bucket/a.png"},
		{"gs://bucket/plots/", "a.png", "gs://bucket/plots/a.png"},
		{"out", "a.png", filepath.Join("out", "a.png")},
		{".", "a.png", "a.png"},
	} {
		if got := Join(test.dir, test.name); got != test.want {
			t.Errorf("Join(%q, %q) = %q, want %q", test.dir, test.name, got, test.want)
		}
	}
}

func TestSplitGS(t *testing.T) {
	bucket, object, err := splitGS("gs://b/x/y.csv")
	if err != nil || bucket != "b" || object != "x/y.csv" {
		t.Errorf("splitGS = %q, %q, %v; want b, x/y.csv", bucket, object, err)
	}
	for _, bad := range []string{"gs://", "gs://b", "gs://b/", "gs:///x"} {
		if _, _, err := splitGS(bad); err == nil {
			t.Errorf("splitGS(%q) succeeded", bad)
		}
	}
}

func TestLocal(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	name := filepath.Join(t.TempDir(), "a", "b", "out.csv")
	w, err := s.Create(ctx, name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "x,y\n1,2\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := s.Open(ctx, name)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "x,y\n1,2\n"; got != want {
		t.Errorf("read %q, want %q", got, want)
	}

	if _, err := s.Open(ctx, filepath.Join(t.TempDir(), "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("open missing file: got %v, want fs.ErrNotExist", err)
	}
	// No Cloud Storage client was needed.
	if s.client != nil {
		t.Errorf("local access created a Cloud Storage client")
	}
}
