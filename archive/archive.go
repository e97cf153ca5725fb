// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive stores benchmark result tables in a SQL database so
// that charts can be regenerated without the original CSV files.
//
// Each imported table is an upload. Every row of an upload is stored
// as a record holding the CSV-encoded row, and every cell of the row
// is also stored as a (column, value) label so that records can be
// selected by column value.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"
)

// ErrNotFound is returned when an upload does not exist.
var ErrNotFound = errors.New("upload not found")

// DB is a benchmark result archive backed by a SQL database. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
}

// Open opens an archive named by "driver:dsn", for example
// "sqlite3:results.db" or "mysql:user@tcp(host)/bench".
func Open(spec string) (*DB, error) {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok || driver == "" {
		return nil, fmt.Errorf("malformed database %q: want driver:dsn", spec)
	}
	return OpenSQL(driver, dsn)
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(255),
	Header TEXT
);
CREATE TABLE IF NOT EXISTS Records (
	UploadID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Content BLOB,
	PRIMARY KEY (UploadID, RecordID),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS RecordLabels (
	UploadID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value VARCHAR(8192),
{{if not .sqlite3}}
	Index (Name(100), Value(100)),
{{end}}
	FOREIGN KEY (UploadID, RecordID) REFERENCES Records(UploadID, RecordID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RecordLabelsNameValue ON RecordLabels(Name, Value);
{{end}}
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// UploadInfo describes one upload.
type UploadInfo struct {
	ID      int64
	Name    string
	Header  []string
	Records int
}

// Import stores a table as a new upload in a single transaction.
// Rows must not be longer than header.
func (db *DB) Import(ctx context.Context, name string, header []string, rows [][]string) (info *UploadInfo, err error) {
	enc, err := encodeRow(header)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(header))
		}
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx, "INSERT INTO Uploads(Name, Header) VALUES (?, ?)", name, enc)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	insertRecord, err := tx.PrepareContext(ctx, "INSERT INTO Records(UploadID, RecordID, Content) VALUES (?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer insertRecord.Close()

	for rid, row := range rows {
		content, err := encodeRow(row)
		if err != nil {
			return nil, err
		}
		if _, err := insertRecord.ExecContext(ctx, id, rid, content); err != nil {
			return nil, err
		}
		var args []interface{}
		for i, v := range row {
			args = append(args, id, rid, header[i], v)
		}
		if len(args) > 0 {
			query := "INSERT INTO RecordLabels VALUES " + strings.Repeat("(?, ?, ?, ?), ", len(args)/4)
			query = strings.TrimSuffix(query, ", ")
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return nil, err
			}
		}
	}
	return &UploadInfo{ID: id, Name: name, Header: header, Records: len(rows)}, nil
}

// Load returns the header and rows of upload id. If match is
// non-empty, only rows whose column values equal every entry of match
// are returned. Rows are returned in import order.
func (db *DB) Load(ctx context.Context, id int64, match map[string]string) (header []string, rows [][]string, err error) {
	var enc []byte
	err = db.sql.QueryRowContext(ctx, "SELECT Header FROM Uploads WHERE UploadID = ?", id).Scan(&enc)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("upload %d: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, nil, err
	}
	if header, err = decodeRow(enc); err != nil {
		return nil, nil, fmt.Errorf("upload %d: header: %v", id, err)
	}

	query := "SELECT Content FROM Records WHERE UploadID = ?"
	args := []interface{}{id}
	for _, k := range sortedKeys(match) {
		query += " AND RecordID IN (SELECT RecordID FROM RecordLabels WHERE UploadID = ? AND Name = ? AND Value = ?)"
		args = append(args, id, k, match[k])
	}
	query += " ORDER BY RecordID"

	res, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer res.Close()
	for res.Next() {
		var content []byte
		if err := res.Scan(&content); err != nil {
			return nil, nil, err
		}
		row, err := decodeRow(content)
		if err != nil {
			return nil, nil, fmt.Errorf("upload %d: record %d: %v", id, len(rows), err)
		}
		rows = append(rows, row)
	}
	return header, rows, res.Err()
}

// Latest returns the ID of the most recent upload.
func (db *DB) Latest(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	if err := db.sql.QueryRowContext(ctx, "SELECT MAX(UploadID) FROM Uploads").Scan(&id); err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, ErrNotFound
	}
	return id.Int64, nil
}

// ListUploads returns every upload, oldest first.
func (db *DB) ListUploads(ctx context.Context) ([]UploadInfo, error) {
	res, err := db.sql.QueryContext(ctx, `
SELECT u.UploadID, u.Name, u.Header, COUNT(r.RecordID)
FROM Uploads u LEFT JOIN Records r ON r.UploadID = u.UploadID
GROUP BY u.UploadID, u.Name, u.Header
ORDER BY u.UploadID`)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	var out []UploadInfo
	for res.Next() {
		var info UploadInfo
		var enc []byte
		if err := res.Scan(&info.ID, &info.Name, &enc, &info.Records); err != nil {
			return nil, err
		}
		if info.Header, err = decodeRow(enc); err != nil {
			return nil, fmt.Errorf("upload %d: header: %v", info.ID, err)
		}
		out = append(out, info)
	}
	return out, res.Err()
}

// CountUploads returns the number of uploads in the archive.
func (db *DB) CountUploads(ctx context.Context) (int, error) {
	var count int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Uploads").Scan(&count)
	return count, err
}

// DeleteUpload removes upload id and all of its records.
func (db *DB) DeleteUpload(ctx context.Context, id int64) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	for _, q := range []string{
		"DELETE FROM RecordLabels WHERE UploadID = ?",
		"DELETE FROM Records WHERE UploadID = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM Uploads WHERE UploadID = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("upload %d: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	return db.sql.Close()
}

func encodeRow(row []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decodeRow(content []byte) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	row, err := r.Read()
	if err == io.EOF {
		// A row with a single empty field encodes as an empty line.
		return []string{""}, nil
	}
	return row, err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
