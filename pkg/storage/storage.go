// Package storage provides the persistent key-value slots the draft store
// writes to. Store mirrors the small surface of a browser's localStorage:
// string keys, opaque values, a byte quota shared by every entry.
package storage

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultQuota matches the per-origin budget browsers grant localStorage.
const DefaultQuota = 5 << 20

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned when a write would grow the store past its
	// quota. The previous value, if any, is left in place.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	// ErrInvalidKey is returned for keys that cannot be mapped to a slot.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store persists values under string keys.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Option configures a Store implementation.
type Option func(*options)

type options struct {
	quota int
}

// WithQuota caps the combined size of keys and values. Non-positive values
// disable the cap.
func WithQuota(bytes int) Option {
	return func(o *options) {
		o.quota = bytes
	}
}

func resolveOptions(opts []Option) options {
	cfg := options{quota: DefaultQuota}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func checkQuota(quota, used int, key string, value []byte) error {
	if quota <= 0 {
		return nil
	}
	if used+len(key)+len(value) > quota {
		return fmt.Errorf("%w: writing %q needs %d bytes, %d of %d in use", ErrQuotaExceeded, key, len(key)+len(value), used, quota)
	}
	return nil
}
