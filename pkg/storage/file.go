package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const slotExt = ".json"

// File keeps one file per key inside a directory. Writes go through a temp
// file and rename so a crash never leaves a half-written slot behind.
type File struct {
	mu    sync.Mutex
	dir   string
	quota int
}

var _ Store = (*File)(nil)

// NewFile returns a store rooted at dir. The directory is created lazily on
// the first write.
func NewFile(dir string, opts ...Option) (*File, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: directory is required")
	}
	cfg := resolveOptions(opts)
	return &File{dir: dir, quota: cfg.quota}, nil
}

// Dir reports the backing directory.
func (f *File) Dir() string {
	return f.dir
}

// Get reads the slot for key.
func (f *File) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return data, nil
}

// Set replaces the slot for key.
func (f *File) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	used, err := f.usage(key)
	if err != nil {
		return err
	}
	if err := checkQuota(f.quota, used, key, value); err != nil {
		return err
	}

	if err := os.MkdirAll(f.dir, 0o750); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}

	target := f.path(key)
	tmp, err := os.CreateTemp(f.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: close %q: %w", key, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: rename %q: %w", key, err)
	}
	return nil
}

// Remove deletes the slot for key. Removing a missing key is not an error.
func (f *File) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %q: %w", key, err)
	}
	return nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+slotExt)
}

// usage sums the key and value sizes of every slot except skip.
func (f *File) usage(skip string) (int, error) {
	if f.quota <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("storage: list dir: %w", err)
	}
	used := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, slotExt) {
			continue
		}
		key := strings.TrimSuffix(name, slotExt)
		if key == skip {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		used += len(key) + int(info.Size())
	}
	return used, nil
}
