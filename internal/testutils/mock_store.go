package testutils

import (
	"errors"
	"sync"
)

// ErrInjected is the error returned by FailingStore writes.
var ErrInjected = errors.New("injected storage failure")

// FailingStore is an in-memory KeyValueStore whose writes can be switched to fail.
// It records every attempted write so tests can count persistence calls.
type FailingStore struct {
	mu         sync.Mutex
	items      map[string]string
	failWrites bool
	failReads  bool
	writes     []string
}

// NewFailingStore returns a store with writes enabled.
func NewFailingStore() *FailingStore {
	return &FailingStore{items: make(map[string]string)}
}

// FailWrites toggles write failures.
func (f *FailingStore) FailWrites(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = fail
}

// FailReads toggles read failures.
func (f *FailingStore) FailReads(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads = fail
}

// Seed stores value without counting it as a write.
func (f *FailingStore) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
}

// GetItem implements chattypes.KeyValueStore.
func (f *FailingStore) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failReads {
		return "", false, ErrInjected
	}
	value, ok := f.items[key]
	return value, ok, nil
}

// SetItem implements chattypes.KeyValueStore.
func (f *FailingStore) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.writes = append(f.writes, key)
	if f.failWrites {
		return ErrInjected
	}
	f.items[key] = value
	return nil
}

// RemoveItem implements chattypes.KeyValueStore.
func (f *FailingStore) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrites {
		return ErrInjected
	}
	delete(f.items, key)
	return nil
}

// Close implements chattypes.KeyValueStore.
func (f *FailingStore) Close() error {
	return nil
}

// Writes returns the number of attempted writes to key.
func (f *FailingStore) Writes(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, k := range f.writes {
		if k == key {
			n++
		}
	}
	return n
}

// Value returns the stored value for key, or "" when absent.
func (f *FailingStore) Value(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[key]
}
