package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File is a Store that keeps one JSON file per plan in a directory.
// Suitable for single-instance deployments and the CLI's serve command.
type File struct {
	dir string
}

// NewFile creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Save stores a token under a fresh id.
func (f *File) Save(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	rec := &Record{ID: NewID(), Token: token, CreatedAt: time.Now().UTC()}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if err := os.WriteFile(f.path(rec.ID), data, 0o644); err != nil {
		return nil, fmt.Errorf("write record: %w", err)
	}
	return rec, nil
}

// Get retrieves a record by id.
func (f *File) Get(ctx context.Context, id string) (*Record, error) {
	data, err := os.ReadFile(f.path(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt entry is indistinguishable from a missing one for
		// callers; drop it so it does not fail every future lookup.
		_ = os.Remove(f.path(id))
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Delete removes a record.
func (f *File) Delete(ctx context.Context, id string) error {
	err := os.Remove(f.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (f *File) Close() error { return nil }

// path maps an id to its file. Ids are uuids, but the replacement guards
// against a hand-crafted id escaping the store directory.
func (f *File) path(id string) string {
	safe := strings.ReplaceAll(strings.ReplaceAll(id, "/", "_"), "\\", "_")
	return filepath.Join(f.dir, safe+".json")
}

// Ensure File implements Store.
var _ Store = (*File)(nil)
