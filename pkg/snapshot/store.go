package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/vango-dev/uishka/internal/config"
)

// ErrNotFound is returned by Store.Get for a missing key.
var ErrNotFound = errors.New("snapshot: object not found")

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores body under key, replacing any previous object.
	Put(ctx context.Context, key, contentType string, body []byte) error

	// Get returns the object stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Location describes where key is stored, for display.
	Location(key string) string
}

// Open returns the store cfg selects: S3 when a bucket is set, the local
// directory otherwise.
func Open(cfg config.SnapshotConfig) (Store, error) {
	if cfg.Bucket != "" {
		return NewS3Store(NewS3Client(cfg), cfg.Bucket, cfg.Prefix), nil
	}
	return NewDiskStore(cfg.Dir)
}

// DiskStore stores snapshots in a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Put writes body to dir/key.
func (s *DiskStore) Put(_ context.Context, key, _ string, body []byte) error {
	return os.WriteFile(filepath.Join(s.dir, key), body, 0644)
}

// Get reads dir/key.
func (s *DiskStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Location returns the file path of key.
func (s *DiskStore) Location(key string) string {
	return filepath.Join(s.dir, key)
}
