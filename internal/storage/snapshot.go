// Package storage reads and writes the index snapshot file.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/intern"
)

// Load decodes the snapshot at path into a store backed by pool. A missing
// file is not an error: it yields an empty store, the first-run case. A
// malformed snapshot is: the caller must not start with a partial index.
func Load(path string, pool *intern.Pool) (*index.Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return index.NewStore(pool), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", path, err)
	}
	store, err := index.Decode(data, pool)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", path, err)
	}
	return store, nil
}

// Save encodes the store and replaces the snapshot at path. The bytes go to
// a temporary file first and are renamed into place, so a crash mid-write
// never leaves a truncated snapshot behind.
func Save(path string, store *index.Store) error {
	data, err := index.Encode(store)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// SizeBytes returns the snapshot's on-disk size, or 0 when it does not
// exist yet.
func SizeBytes(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
