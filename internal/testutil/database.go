// Package testutil provides test utilities for the codevault project: an
// instrumented in-memory snapshot store and helpers that build seeded vaults.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/service"
	"github.com/Veraticus/codevault/internal/storage"
	"github.com/Veraticus/codevault/internal/vault"
)

// MemoryStore is a SnapshotStore held in a map. It counts calls and can be
// told to fail, so tests can assert when the vault writes.
type MemoryStore struct {
	LoadErr    error
	SaveErr    error
	ClearErr   error
	data       map[string][]byte
	SaveCalls  int
	ClearCalls int
	mu         sync.Mutex
}

var _ service.SnapshotStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load implements service.SnapshotStore.
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("snapshot %q: %w", key, common.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Save implements service.SnapshotStore.
func (m *MemoryStore) Save(_ context.Context, snapshots map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for key, data := range snapshots {
		m.data[key] = append([]byte(nil), data...)
	}
	return nil
}

// Clear implements service.SnapshotStore.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.data = make(map[string][]byte)
	return nil
}

// Close implements service.SnapshotStore.
func (m *MemoryStore) Close() error {
	return nil
}

// Put stores raw bytes under key without counting a Save.
func (m *MemoryStore) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
}

// Raw returns the bytes stored under key.
func (m *MemoryStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok
}

// StoredCodes decodes the persisted codes snapshot or fails the test.
func (m *MemoryStore) StoredCodes(t *testing.T) []model.Code {
	t.Helper()
	data, ok := m.Raw(service.CodesKey)
	if !ok {
		t.Fatalf("no codes snapshot stored")
	}
	var codes []model.Code
	if err := json.Unmarshal(data, &codes); err != nil {
		t.Fatalf("failed to decode codes snapshot: %v", err)
	}
	return codes
}

// StoredCategories decodes the persisted categories snapshot or fails the test.
func (m *MemoryStore) StoredCategories(t *testing.T) []string {
	t.Helper()
	data, ok := m.Raw(service.CategoriesKey)
	if !ok {
		t.Fatalf("no categories snapshot stored")
	}
	var cats []string
	if err := json.Unmarshal(data, &cats); err != nil {
		t.Fatalf("failed to decode categories snapshot: %v", err)
	}
	return cats
}

// TestVault is a loaded vault plus the store behind it.
type TestVault struct {
	Vault *vault.Vault
	Store *MemoryStore
}

// SetupTestVault seeds a MemoryStore with codes (and categories, when
// given) and returns a vault loaded from it. Seeding does not count as a
// Save, so Store.SaveCalls starts at zero.
//
// Example:
//
//	tv := testutil.SetupTestVault(t, fixtures.NewBuilder().
//		WithCodes("General", 3).
//		Build(), nil)
func SetupTestVault(t *testing.T, codes []model.Code, categories []string, opts ...vault.Option) *TestVault {
	t.Helper()

	store := NewMemoryStore()
	if codes != nil {
		store.Put(service.CodesKey, mustJSON(t, codes))
	}
	if categories != nil {
		store.Put(service.CategoriesKey, mustJSON(t, categories))
	}

	v := vault.New(store, opts...)
	v.Load(context.Background())

	return &TestVault{Vault: v, Store: store}
}

// SetupSQLiteVault returns an empty vault backed by an in-memory SQLite
// database. The database is closed when the test ends.
func SetupSQLiteVault(t *testing.T, opts ...vault.Option) (*vault.Vault, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.OpenSQLiteStorage(context.Background(), storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	v := vault.New(store, opts...)
	v.Load(context.Background())
	return v, store
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode seed data: %v", err)
	}
	return data
}
