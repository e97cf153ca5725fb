// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot aggregates the CSV results of the erasure code benchmarks
// and plots them.
//
// Usage:
//
//	benchplot <command> [flags]
//
// The commands are:
//
//	throughput   mean and standard deviation of encoder and decoder throughput
//	probability  decoding probability as a function of extra symbols received
//	rank         linearly dependent symbols received at each decoder rank
//	symbols      extra symbols needed for decoding, per test run
//	overhead     coding overhead per generation size
//	import       store a CSV result file in a result archive
//	uploads      list the uploads of a result archive
//
// Each plotting command reads the file named by --csv_file (default
// out.csv; "-" is standard input and gs://bucket/object names a Cloud
// Storage object), writes one figure per configuration to --out_dir in
// the format given by --saveas, and prints the aggregated tables to
// standard output.
//
// With --db driver:dsn, plotting commands read an upload from a result
// archive instead of a CSV file. --upload selects the upload (default
// the latest) and --where key=value, which may be repeated, selects
// its rows by column value. Supported drivers are sqlite3 and mysql;
// a mysql DSN may reach a Cloud SQL instance directly, as in
// "mysql:user:password@cloudsql(project:region:instance)/results".
//
// With --html name, benchplot also writes an HTML report that shows
// every figure next to its table.
//
// Every flag can also be set with an environment variable named
// BENCHPLOT_ followed by the upper-cased flag name, or in a config
// file given by --config.
//
// Data problems that do not prevent plotting, such as runs that
// needed more extra symbols than the probability window covers, are
// logged as warnings on standard error. Benchplot exits with status 1
// if the input cannot be read or a figure cannot be written, and with
// status 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"

	_ "github.com/steinwurf/benchplot/archive/sqlite3"
)

var exit = os.Exit // replaced by TestExitStatus

func main() {
	if err := benchplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "benchplot: %v\n", err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "Run 'benchplot --help' for usage.\n")
			exit(2)
		}
		exit(1)
	}
}
