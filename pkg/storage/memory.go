package storage

import "sync"

// Memory keeps values in process memory. It backs tests and sessions that opt
// out of persistence.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	cfg := resolveOptions(opts)
	return &Memory{
		values: make(map[string][]byte),
		quota:  cfg.quota,
	}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	used := 0
	for k, v := range m.values {
		if k == key {
			continue
		}
		used += len(k) + len(v)
	}
	if err := checkQuota(m.quota, used, key, value); err != nil {
		return err
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (m *Memory) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len reports how many keys hold values.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
