package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
	"github.com/xvierd/timerdeck/internal/ports"
)

// diskvKV implements ports.KVStore with one file per key.
type diskvKV struct {
	d *diskv.Diskv
}

// Ensure diskvKV implements ports.KVStore.
var _ ports.KVStore = (*diskvKV)(nil)

// OpenDiskv opens a file-per-key store rooted at dir.
func OpenDiskv(dir string) (ports.KVStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &diskvKV{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

// NewDiskv creates diskv-backed storage rooted at dir.
func NewDiskv(dir string) (ports.Storage, error) {
	kv, err := OpenDiskv(dir)
	if err != nil {
		return nil, err
	}
	return NewDocuments(kv), nil
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key + ".json"}
}

func pathToKey(pk *diskv.PathKey) string {
	name := pk.FileName
	if len(name) > len(".json") {
		name = name[:len(name)-len(".json")]
	}
	return name
}

func (s *diskvKV) Get(_ context.Context, key string) ([]byte, error) {
	value, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *diskvKV) Set(_ context.Context, key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *diskvKV) Delete(_ context.Context, key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *diskvKV) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for k := range s.d.Keys(ctx.Done()) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *diskvKV) Close() error {
	return nil
}
