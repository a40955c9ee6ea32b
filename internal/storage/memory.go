package storage

import "sync"

// MemoryStore keeps items in a map. A positive quota caps the total size of
// keys plus values in bytes, the way a browser caps local storage.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]string
	quota  int
	closed bool
}

// NewMemoryStore returns an empty store; quota <= 0 means unlimited.
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]string),
		quota: quota,
	}
}

// GetItem returns the value stored under key.
func (m *MemoryStore) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrClosed
	}
	value, ok := m.items[key]
	return value, ok, nil
}

// SetItem stores value under key, failing with ErrQuotaExceeded when the
// store would grow past its quota. A failed write leaves the old value in place.
func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.quota > 0 {
		size := m.sizeLocked()
		if old, ok := m.items[key]; ok {
			size -= len(key) + len(old)
		}
		if size+len(key)+len(value) > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.items[key] = value
	return nil
}

// RemoveItem deletes key; removing an absent key is not an error.
func (m *MemoryStore) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) sizeLocked() int {
	total := 0
	for k, v := range m.items {
		total += len(k) + len(v)
	}
	return total
}
