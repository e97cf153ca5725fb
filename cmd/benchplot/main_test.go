// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steinwurf/benchplot/benchtable"
	"github.com/steinwurf/benchplot/internal/diff"
)

func TestOverhead(t *testing.T) {
	dir := golden(t, "overhead", "overhead", "--csv_file", "overhead.csv")
	checkFile(t, dir, "overhead_fullrlncunsystematic_1500.png")

	// --out_file names the figure; --saveas picks its format.
	dir = t.TempDir()
	run(t, "overhead", "--csv_file", "overhead.csv", "--out_dir", dir, "--out_file", "o", "--saveas", "svg", "--log=false", "--quiet")
	checkFile(t, dir, "o.svg")
}

func TestProbability(t *testing.T) {
	golden(t, "probability", "probability", "--csv_file", "probability.csv", "--window", "3")
	_, stderr := run(t, "probability", "--csv_file", "probability.csv", "--window", "3", "--out_dir", t.TempDir())
	if want := "1 of 4 runs needed 3 or more extra symbols"; !strings.Contains(stderr, want) {
		t.Errorf("stderr missing %q:\n%s", want, stderr)
	}
}

func TestRank(t *testing.T) {
	dir := golden(t, "rank", "rank", "--csv_file", "rank.csv")
	checkFile(t, dir, "linear_dependency_3_100_00.png")
}

func TestSymbols(t *testing.T) {
	dir := golden(t, "symbols", "symbols", "--csv_file", "symbols.csv")
	checkFile(t, dir, "decoding_scatter_fullrlnc_16_1600_05.png")
}

func TestThroughput(t *testing.T) {
	dir := golden(t, "throughput", "throughput", "--csv_file", "throughput.csv")
	checkFile(t, dir, "throughput_fullrlnc_1600.png")
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	run(t, "probability", "--csv_file", "probability.csv", "--window", "3", "--out_dir", dir, "--html", "index.html")
	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<img src="decoding_probability_4_100_05.png"`,
		"<th>FullRLNC.Binary8</th>",
		"1 of 4 runs needed 3 or more extra symbols",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestReportSections(t *testing.T) {
	dir := t.TempDir()
	out, _ := run(t, "probability", "--csv_file", "report.csv", "--window", "3", "--out_dir", dir, "--html", "index.html")
	// Runs without an erasure rate form one configuration.
	if n := strings.Count(out, "erasures=NaN"); n != 1 {
		t.Errorf("printed %d erasures=NaN configurations, want 1:\n%s", n, out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	// Only symbols=8 has a run outside the window.
	warning := strings.Index(html, "1 of 2 runs needed 3 or more extra symbols")
	section := strings.Index(html, "<h2>symbols=8, symbol size=100, erasures=0.5</h2>")
	if warning < 0 || section < 0 || warning < section {
		t.Errorf("warning at %d, symbols=8 section at %d; want the warning in that section:\n%s", warning, section, html)
	}
	if n := strings.Count(html, "runs needed"); n != 1 {
		t.Errorf("report has %d window warnings, want 1", n)
	}
}

func TestArchive(t *testing.T) {
	db := "sqlite3:" + filepath.Join(t.TempDir(), "results.db")

	out, _ := run(t, "import", "--db", db, "--csv_file", "overhead.csv")
	if want := "upload 1: 7 records\n"; out != want {
		t.Errorf("import printed %q, want %q", out, want)
	}

	// Plotting from the archive matches plotting from the file.
	want, _ := run(t, "overhead", "--csv_file", "overhead.csv", "--out_dir", t.TempDir())
	got, _ := run(t, "overhead", "--db", db, "--out_dir", t.TempDir())
	if got != want {
		t.Errorf("overhead from archive:\n%s\nwant:\n%s", got, want)
	}
	got, _ = run(t, "overhead", "--db", db, "--upload", "1", "--where", "benchmark=Binary8", "--out_dir", t.TempDir())
	if strings.Contains(got, "Binary ") || !strings.Contains(got, "Binary8") {
		t.Errorf("--where benchmark=Binary8 printed:\n%s", got)
	}

	out, _ = run(t, "uploads", "--db", db)
	if !strings.Contains(out, "overhead.csv") {
		t.Errorf("uploads does not list overhead.csv:\n%s", out)
	}
	out, _ = run(t, "uploads", "--db", db, "--delete", "1")
	if want := "no uploads\n"; out != want {
		t.Errorf("uploads after delete printed %q, want %q", out, want)
	}
}

func TestErrors(t *testing.T) {
	inTestdata(t)
	for _, test := range []struct {
		name  string
		args  []string
		usage bool
		is    error
	}{
		{"unknown flag", []string{"overhead", "--nope"}, true, nil},
		{"unknown command", []string{"nope"}, true, nil},
		{"arguments", []string{"overhead", "overhead.csv"}, true, nil},
		{"format", []string{"overhead", "--csv_file", "overhead.csv", "--saveas", "bmp"}, true, nil},
		{"where", []string{"overhead", "--db", "sqlite3::memory:", "--where", "benchmark"}, true, nil},
		{"no db", []string{"uploads"}, true, nil},
		{"missing file", []string{"overhead", "--csv_file", "nope.csv"}, false, fs.ErrNotExist},
		{"wrong schema", []string{"overhead", "--csv_file", "probability.csv"}, false, benchtable.ErrInput},
		{"no rows", []string{"overhead", "--csv_file", "overhead.csv", "--symbol_size", "1"}, false, benchtable.ErrInput},
		{"empty archive", []string{"overhead", "--db", "sqlite3::memory:"}, false, benchtable.ErrEmpty},
	} {
		t.Run(test.name, func(t *testing.T) {
			args := append(test.args, "--out_dir", t.TempDir())
			var stdout, stderr bytes.Buffer
			err := benchplot(&stdout, &stderr, args)
			if err == nil {
				t.Fatalf("benchplot %s succeeded", strings.Join(args, " "))
			}
			var uerr *usageError
			if got := errors.As(err, &uerr); got != test.usage {
				t.Errorf("usage error = %v, want %v: %v", got, test.usage, err)
			}
			if test.is != nil && !errors.Is(err, test.is) {
				t.Errorf("got %v, want %v", err, test.is)
			}
		})
	}
}

func TestExitStatus(t *testing.T) {
	type exitCode int
	defer func(f func(int), args []string, stderr *os.File) {
		exit, os.Args, os.Stderr = f, args, stderr
	}(exit, os.Args, os.Stderr)
	exit = func(code int) { panic(exitCode(code)) }
	var err error
	if os.Stderr, err = os.Create(filepath.Join(t.TempDir(), "stderr")); err != nil {
		t.Fatal(err)
	}
	defer os.Stderr.Close()

	status := func(args ...string) (code int) {
		defer func() {
			r := recover()
			c, ok := r.(exitCode)
			if r != nil && !ok {
				panic(r)
			}
			code = int(c)
		}()
		os.Args = append([]string{"benchplot"}, args...)
		main()
		return 0
	}
	for _, test := range []struct {
		args []string
		want int
	}{
		{[]string{"nope"}, 2},
		{[]string{"overhead", "extra"}, 2},
		{[]string{"overhead", "--csv_file", filepath.Join(t.TempDir(), "nope.csv")}, 1},
	} {
		if got := status(test.args...); got != test.want {
			t.Errorf("benchplot %s: exit status %d, want %d", strings.Join(test.args, " "), got, test.want)
		}
	}
}

func TestEnv(t *testing.T) {
	inTestdata(t)
	t.Setenv("BENCHPLOT_CSV_FILE", "overhead.csv")
	t.Setenv("BENCHPLOT_QUIET", "true")
	var stdout, stderr bytes.Buffer
	if err := benchplot(&stdout, &stderr, []string{"overhead", "--out_dir", t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("BENCHPLOT_QUIET=true printed:\n%s", stdout.String())
	}
}

// inTestdata runs the rest of the test in the testdata directory.
func inTestdata(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

// run runs benchplot in testdata and returns its output.
func run(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	if filepath.Base(mustGetwd(t)) != "testdata" {
		inTestdata(t)
	}
	var out, errOut bytes.Buffer
	t.Logf("benchplot %s", strings.Join(args, " "))
	if err := benchplot(&out, &errOut, args); err != nil {
		t.Fatalf("unexpected error: %s\n%s", err, errOut.String())
	}
	return out.String(), errOut.String()
}

func mustGetwd(t *testing.T) string {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}

// golden runs benchplot with figures written to a temporary directory,
// compares its standard output with testdata/name.stdout, and returns
// the directory.
func golden(t *testing.T, name string, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	got, _ := run(t, append(args, "--out_dir", dir)...)
	compare(t, name, "stdout", []byte(got))
	return dir
}

func checkFile(t *testing.T, dir, name string) {
	t.Helper()
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		t.Error(err)
		return
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", name)
	}
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()

	wantPath := name + "." + sub
	want, err := os.ReadFile(wantPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}

	gotPath := name + ".got-" + sub
	d := diff.Diff(wantPath, want, gotPath, got)
	if d == "" {
		return
	}
	t.Errorf("output differs:\n%s", d)

	// Write a "got" file for reference.
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}
