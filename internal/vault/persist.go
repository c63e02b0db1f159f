package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/service"
)

// changeSet marks which collections a mutation touched.
type changeSet uint8

const (
	codesChanged changeSet = 1 << iota
	categoriesChanged
)

// LoadReport describes what Load found in storage.
type LoadReport struct {
	Codes              int
	Categories         int
	Orphaned           int
	// RestoredCategories lists labels that codes were filed under but the
	// category set lacked. They are appended to the set in first-seen order.
	RestoredCategories []string
	CodesFallback      bool
	CategoriesFallback bool
}

// Degraded reports whether any stored collection was unreadable and
// replaced by its default.
func (r LoadReport) Degraded() bool {
	return r.CodesFallback || r.CategoriesFallback
}

// Load rehydrates the vault from storage. Absent collections start from
// their defaults; unreadable or malformed ones do too, with a warning. Load
// never fails.
func (v *Vault) Load(ctx context.Context) LoadReport {
	v.mu.Lock()
	defer v.mu.Unlock()

	var report LoadReport

	codes, err := v.loadCodes(ctx)
	if err != nil {
		v.logger.Warn("stored codes unreadable, starting empty", "error", err)
		codes = []model.Code{}
		report.CodesFallback = true
	}

	categories, err := v.loadCategories(ctx)
	if err != nil {
		v.logger.Warn("stored categories unreadable, using defaults", "error", err)
		categories = v.defaultCategories()
		report.CategoriesFallback = true
	}

	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c] = struct{}{}
	}
	for _, c := range codes {
		if _, ok := known[c.Category]; ok {
			continue
		}
		report.Orphaned++
		if indexOf(report.RestoredCategories, c.Category) < 0 {
			report.RestoredCategories = append(report.RestoredCategories, c.Category)
		}
	}
	if report.Orphaned > 0 {
		categories = append(categories, report.RestoredCategories...)
		v.logger.Warn("restored categories for codes filed under missing labels",
			"codes", report.Orphaned, "categories", report.RestoredCategories)
	}

	v.codes = codes
	v.categories = categories
	report.Codes = len(codes)
	report.Categories = len(categories)

	v.logger.Debug("vault loaded", "codes", report.Codes, "categories", report.Categories)
	return report
}

func (v *Vault) loadCodes(ctx context.Context) ([]model.Code, error) {
	data, err := v.store.Load(ctx, service.CodesKey)
	if errors.Is(err, common.ErrNotFound) {
		return []model.Code{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCodes(data)
}

func (v *Vault) loadCategories(ctx context.Context) ([]string, error) {
	data, err := v.store.Load(ctx, service.CategoriesKey)
	if errors.Is(err, common.ErrNotFound) {
		return v.defaultCategories(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCategories(data)
}

// apply persists the changed collections of next and, only if that
// succeeds, swaps them in. Callers hold v.mu.
func (v *Vault) apply(ctx context.Context, codes []model.Code, categories []string, changed changeSet) error {
	snapshots := make(map[string][]byte, 2)

	if changed&codesChanged != 0 {
		data, err := encodeCodes(codes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		snapshots[service.CodesKey] = data
	}
	if changed&categoriesChanged != 0 {
		data, err := encodeCategories(categories)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		snapshots[service.CategoriesKey] = data
	}

	if err := v.store.Save(ctx, snapshots); err != nil {
		v.logger.Error("failed to save vault", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if changed&codesChanged != 0 {
		v.codes = codes
	}
	if changed&categoriesChanged != 0 {
		v.categories = categories
	}
	return nil
}

func encodeCodes(codes []model.Code) ([]byte, error) {
	if codes == nil {
		codes = []model.Code{}
	}
	return json.Marshal(codes)
}

func encodeCategories(categories []string) ([]byte, error) {
	if categories == nil {
		categories = []string{}
	}
	return json.Marshal(categories)
}

func decodeCodes(data []byte) ([]model.Code, error) {
	var codes []model.Code
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabaseCorrupted, err)
	}
	if codes == nil {
		return nil, fmt.Errorf("%w: codes snapshot is null", common.ErrDatabaseCorrupted)
	}

	ids := make(map[string]struct{}, len(codes))
	values := make(map[string]struct{}, len(codes))
	for i, c := range codes {
		if c.ID == "" || c.Value == "" {
			return nil, fmt.Errorf("%w: code at index %d missing id or value", common.ErrDatabaseCorrupted, i)
		}
		codes[i].Prefix = model.PrefixOf(c.Value)
		if _, dup := ids[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", common.ErrDatabaseCorrupted, c.ID)
		}
		if _, dup := values[c.Value]; dup {
			return nil, fmt.Errorf("%w: duplicate value at index %d", common.ErrDatabaseCorrupted, i)
		}
		ids[c.ID] = struct{}{}
		values[c.Value] = struct{}{}
	}
	return codes, nil
}

func decodeCategories(data []byte) ([]string, error) {
	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabaseCorrupted, err)
	}
	if categories == nil {
		return nil, fmt.Errorf("%w: categories snapshot is null", common.ErrDatabaseCorrupted)
	}

	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%w: blank category label", common.ErrDatabaseCorrupted)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", common.ErrDatabaseCorrupted, c)
		}
		seen[c] = struct{}{}
	}
	return categories, nil
}
