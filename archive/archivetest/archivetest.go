// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archivetest provides empty archives and seeded uploads for
// tests.
//
// By default each archive is an in-memory SQLite database. Passing
// -archive with a MySQL server, such as
//
//	go test ./archive/... -archive 'mysql:root@cloudsql(project:region:instance)/'
//
// runs the same tests against a fresh database on that server, which
// is dropped when the test ends.
package archivetest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"strings"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"

	"github.com/steinwurf/benchplot/archive"
	_ "github.com/steinwurf/benchplot/archive/sqlite3"
)

var server = flag.String("archive", "", "run archive tests in fresh databases on the MySQL server `mysql:dsn`, which must end in /")

// New returns an empty archive that is closed, and dropped from the
// -archive server, when t ends.
func New(t testing.TB) *archive.DB {
	t.Helper()
	spec := "sqlite3::memory:"
	if *server != "" {
		spec = createDatabase(t, *server)
	}
	db, err := archive.Open(spec)
	if err != nil {
		t.Fatalf("opening %s: %v", spec, err)
	}
	t.Cleanup(func() { db.Close() })

	n, err := db.CountUploads(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("new archive has %d upload(s), want 0", n)
	}
	return db
}

// createDatabase creates a database on the MySQL server named by spec
// and returns the spec of the new database.
func createDatabase(t testing.TB, spec string) string {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok || driver != "mysql" || !strings.HasSuffix(dsn, "/") {
		t.Fatalf("-archive %q: want mysql:dsn ending in /", spec)
	}
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "benchplot_test_" + hex.EncodeToString(buf)

	srv, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := srv.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		srv.Close()
		t.Fatal(err)
	}
	t.Logf("using database %s", name)
	// Cleanups run last-added first, so the archive closes before
	// the drop.
	t.Cleanup(func() {
		if _, err := srv.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		srv.Close()
	})
	return spec + name
}

// Import stores rows under header as upload name in db, failing t on
// error.
func Import(t testing.TB, db *archive.DB, name string, header []string, rows [][]string) *archive.UploadInfo {
	t.Helper()
	info, err := db.Import(context.Background(), name, header, rows)
	if err != nil {
		t.Fatalf("importing %s: %v", name, err)
	}
	return info
}
