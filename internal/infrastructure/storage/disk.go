// Package storage holds the profile photo stores: a local directory served
// under /uploads, and an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// UploadsPrefix is the URL path under which DiskStore files are served.
const UploadsPrefix = "/uploads"

// DiskStore keeps photos in a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory photos are written to.
func (s *DiskStore) Dir() string { return s.dir }

// Save writes data under name and returns its /uploads reference.
func (s *DiskStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	name = path.Base(name)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return UploadsPrefix + "/" + name, nil
}

// Delete removes the file a reference points at. A file that is already gone
// is not an error.
func (s *DiskStore) Delete(_ context.Context, ref string) error {
	name := path.Base(ref)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}
