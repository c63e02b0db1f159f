// Package storage provides the data persistence layer for the vault.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidFormat = errors.New("invalid snapshot payload")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSnapshots checks a batch of snapshots before it is written.
func validateSnapshots(snapshots map[string][]byte) error {
	if snapshots == nil {
		return fmt.Errorf("%w: snapshots", ErrNilParameter)
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("%w: snapshots", ErrEmptySlice)
	}
	for key, payload := range snapshots {
		if err := validateString(key, "key"); err != nil {
			return err
		}
		if payload == nil {
			return fmt.Errorf("%w: payload for %q", ErrNilParameter, key)
		}
	}
	return nil
}

func sortedKeys(snapshots map[string][]byte) []string {
	keys := make([]string, 0, len(snapshots))
	for key := range snapshots {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
