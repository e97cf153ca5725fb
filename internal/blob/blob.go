// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blob opens and creates named byte streams that may live on
// the local file system, on standard input and output, or in Google
// Cloud Storage.
//
// Names are interpreted as follows:
//
//	-                    standard input (Open) or standard output (Create)
//	gs://bucket/object   a Cloud Storage object
//	anything else        a local file path
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gsPrefix = "gs://"

// A Store opens and creates blobs. The Cloud Storage client is
// created on first use, so a Store that only touches local files
// needs no credentials.
type Store struct {
	opts []option.ClientOption

	mu     sync.Mutex
	client *storage.Client
}

// New returns a Store whose Cloud Storage client, if one is needed,
// is created with opts.
func New(opts ...option.ClientOption) *Store {
	return &Store{opts: opts}
}

// IsRemote reports whether name refers to a Cloud Storage object.
func IsRemote(name string) bool {
	return strings.HasPrefix(name, gsPrefix)
}

// Join joins a directory and a file name. If dir is a Cloud Storage
// location, the result is too.
func Join(dir, name string) string {
	if IsRemote(dir) {
		rest := strings.TrimPrefix(dir, gsPrefix)
		return gsPrefix + path.Join(rest, name)
	}
	return filepath.Join(dir, name)
}

func splitGS(name string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(name, gsPrefix)
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed Cloud Storage name %q: want gs://bucket/object", name)
	}
	return bucket, object, nil
}

func (s *Store) gcs(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		c, err := storage.NewClient(ctx, s.opts...)
		if err != nil {
			return nil, fmt.Errorf("creating Cloud Storage client: %w", err)
		}
		s.client = c
	}
	return s.client, nil
}

// Open opens the named blob for reading. If the blob does not exist,
// the error satisfies errors.Is(err, fs.ErrNotExist).
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	switch {
	case name == "-":
		return io.NopCloser(os.Stdin), nil
	case IsRemote(name):
		bucket, object, err := splitGS(name)
		if err != nil {
			return nil, err
		}
		c, err := s.gcs(ctx)
		if err != nil {
			return nil, err
		}
		r, err := c.Bucket(bucket).Object(object).NewReader(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		} else if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		return r, nil
	}
	return os.Open(name)
}

// Create creates or truncates the named blob for writing. Local parent
// directories are created as needed. For Cloud Storage objects the
// object is only written when the returned writer is closed without
// error.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	switch {
	case name == "-":
		return nopWriteCloser{os.Stdout}, nil
	case IsRemote(name):
		bucket, object, err := splitGS(name)
		if err != nil {
			return nil, err
		}
		c, err := s.gcs(ctx)
		if err != nil {
			return nil, err
		}
		w := c.Bucket(bucket).Object(object).NewWriter(ctx)
		if t := mime.TypeByExtension(path.Ext(object)); t != "" {
			w.ContentType = t
		}
		return w, nil
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, err
		}
	}
	return os.Create(name)
}

// Close releases the Cloud Storage client, if one was created.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
