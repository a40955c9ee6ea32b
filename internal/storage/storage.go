// Package storage provides the durable key-value backends that hold the
// conversation record and the theme preference.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"arthurchat/pkg/chattypes"
)

var (
	// ErrQuotaExceeded is returned when a write would exceed the backend's capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("storage closed")
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendBolt, BackendSQLite}
}

// Open creates the named backend rooted at dir.
// dir is ignored by the memory backend.
func Open(backend, dir string) (chattypes.KeyValueStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory, "":
		return NewMemoryStore(0), nil
	case BackendFile:
		return NewFileStore(filepath.Join(dir, "store"))
	case BackendBolt:
		return OpenBoltStore(filepath.Join(dir, "arthur.bolt"))
	case BackendSQLite:
		return OpenSQLiteStore(filepath.Join(dir, "arthur.db"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
