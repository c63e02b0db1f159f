package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/service"
)

// FileStorage keeps every snapshot in a single JSON document. Writes
// replace the document atomically (temp file, fsync, rename, dir fsync), so
// a multi-key Save is all-or-nothing.
//
// Payloads must be valid JSON.
type FileStorage struct {
	path string
}

var _ service.SnapshotStore = (*FileStorage)(nil)

// NewFileStorage creates a file-backed store at path. The file is created on
// first Save.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{path: path}, nil
}

// Path returns the backing file location.
func (f *FileStorage) Path() string {
	return f.path
}

// Load returns the snapshot stored under key.
func (f *FileStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	payload, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("snapshot %q: %w", key, common.ErrNotFound)
	}
	return payload, nil
}

// Save merges snapshots into the document and rewrites it.
func (f *FileStorage) Save(ctx context.Context, snapshots map[string][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshots(snapshots); err != nil {
		return err
	}

	doc, err := f.read()
	if errors.Is(err, ErrInvalidFormat) {
		slog.Warn("replacing unreadable snapshot file", "path", f.path, "error", err)
		doc = map[string]json.RawMessage{}
	} else if err != nil {
		return err
	}

	for key, payload := range snapshots {
		if !json.Valid(payload) {
			return fmt.Errorf("%w: %q is not JSON", ErrInvalidFormat, key)
		}
		doc[key] = json.RawMessage(payload)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshots: %w", err)
	}
	if err := writeFileAtomic(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	return nil
}

// Clear removes the snapshot file.
func (f *FileStorage) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	slog.Info("cleared snapshot file", "path", f.path)
	return nil
}

// Close is a no-op; FileStorage holds no open handles between calls.
func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
