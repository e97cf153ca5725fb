// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares golden test output.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a unified diff from want to got, with the sides
// labeled wantName and gotName, or "" if they are equal. It uses the
// system diff command; if that is unavailable, it quotes both inputs.
func Diff(wantName string, want []byte, gotName string, got []byte) string {
	if bytes.Equal(want, got) {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("diff command unavailable\n%s: %q\n%s: %q", wantName, want, gotName, got)
	}

	dir, err := os.MkdirTemp("", "benchplot-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	wantPath, gotPath := filepath.Join(dir, "want"), filepath.Join(dir, "got")
	if err := os.WriteFile(wantPath, want, 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		return err.Error()
	}

	data, err := exec.Command("diff", "-u", "--label", wantName, "--label", gotName, wantPath, gotPath).CombinedOutput()
	if len(data) > 0 {
		// diff exits with status 1 when the files differ.
		err = nil
	}
	if err != nil {
		data = append(data, err.Error()...)
	}
	if len(data) == 0 {
		return "inputs differ"
	}
	return string(data)
}
