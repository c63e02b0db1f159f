// Package service defines the interfaces for all application services.
package service

import (
	"context"
)

// Snapshot keys. Each collection is persisted as one complete serialized
// snapshot under its own fixed key.
const (
	CodesKey      = "codevault_v6_final"
	CategoriesKey = "codevault_cats_v6_final"
)

// SnapshotStore defines the contract for our persistence layer.
type SnapshotStore interface {
	// Load returns the snapshot stored under key, or common.ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save writes every snapshot in one atomic step: either all keys are
	// replaced or none are.
	Save(ctx context.Context, snapshots map[string][]byte) error
	// Clear removes every stored snapshot.
	Clear(ctx context.Context) error
	Close() error
}

// Copier places a code value somewhere the user can paste it from.
type Copier interface {
	Copy(value string) error
}
