// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"os/exec"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	if d := Diff("want", []byte("a\n"), "got", []byte("a\n")); d != "" {
		t.Errorf("equal inputs: got diff %q", d)
	}
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("no diff command")
	}
	d := Diff("x.stdout", []byte("a\nb\n"), "x.got-stdout", []byte("a\nc\n"))
	for _, want := range []string{"--- x.stdout", "+++ x.got-stdout", "-b", "+c"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}
}
