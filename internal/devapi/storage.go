package devapi

import (
	"fmt"
	"path/filepath"
)

// Object is one stored resource: its id and its data without the id.
type Object struct {
	ID   int64
	Data map[string]any
}

// Storage keeps objects grouped by kind. Ids are assigned by the storage and
// never reused.
type Storage interface {
	// List returns every object of kind ordered by id.
	List(kind string) ([]Object, error)

	// Get returns one object, or ok=false if it does not exist.
	Get(kind string, id int64) (obj Object, ok bool, err error)

	// Create stores data under a fresh id.
	Create(kind string, data map[string]any) (int64, error)

	// Replace overwrites the data of an existing object. It reports false if
	// the object does not exist.
	Replace(kind string, id int64, data map[string]any) (bool, error)

	// Delete removes an object. It reports false if it did not exist.
	Delete(kind string, id int64) (bool, error)

	Close() error
}

// NewStorage creates a Storage by backend name.
//
// Supported backends:
//
//	"memory" - in-memory, lost on exit (default)
//	"sqlite" - SQLite database at dataDir/devapi.db
func NewStorage(backend, dataDir string) (Storage, error) {
	switch backend {
	case "memory", "":
		return NewMemoryStorage(), nil
	case "sqlite":
		return NewSqliteStorage(filepath.Join(dataDir, "devapi.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (supported: memory, sqlite)", backend)
	}
}
