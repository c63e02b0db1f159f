package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/codevault/internal/service"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open returns the snapshot store for the named backend.
func Open(ctx context.Context, backend, path string) (service.SnapshotStore, error) {
	switch backend {
	case "", BackendSQLite:
		store, err := OpenSQLiteStorage(ctx, path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendFile:
		store, err := NewFileStorage(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
