package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/service"
)

// AddResult reports the outcome of merging a batch.
type AddResult struct {
	// Extracted is the number of candidates found in the pasted text. Only
	// Import sets it.
	Extracted  int
	Added      int
	Duplicates int
}

// NothingNew reports whether the batch added no codes.
func (r AddResult) NothingNew() bool {
	return r.Added == 0
}

// RenameOutcome is the result of a category rename.
type RenameOutcome int

// Rename outcomes.
const (
	RenameOK RenameOutcome = iota
	RenameCancelled
	RenameExists
	RenameUnknown
)

func (o RenameOutcome) String() string {
	switch o {
	case RenameOK:
		return "ok"
	case RenameCancelled:
		return "cancelled"
	case RenameExists:
		return "exists"
	case RenameUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("RenameOutcome(%d)", int(o))
	}
}

// Import extracts codes from text into category and merges them.
func (v *Vault) Import(ctx context.Context, text, category string) (AddResult, error) {
	if !v.HasCategory(category) {
		return AddResult{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	candidates := v.extractor.Extract(text, category)
	result, err := v.AddBatch(ctx, candidates)
	result.Extracted = len(candidates)
	return result, err
}

// AddBatch appends every candidate whose value is not already tracked.
// Nothing is written when no candidate is new.
func (v *Vault) AddBatch(ctx context.Context, candidates []model.Code) (AddResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(candidates) == 0 {
		return AddResult{}, nil
	}

	for i, c := range candidates {
		if c.ID == "" || c.Value == "" {
			return AddResult{}, fmt.Errorf("%w: candidate %d missing id or value", ErrInvalidCode, i)
		}
		if indexOf(v.categories, c.Category) < 0 {
			return AddResult{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c.Category)
		}
	}

	seen := make(map[string]struct{}, len(v.codes)+len(candidates))
	for _, c := range v.codes {
		seen[c.Value] = struct{}{}
	}

	fresh := make([]model.Code, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Value]; ok {
			continue
		}
		seen[c.Value] = struct{}{}
		fresh = append(fresh, c)
	}

	result := AddResult{
		Added:      len(fresh),
		Duplicates: len(candidates) - len(fresh),
	}
	if len(fresh) == 0 {
		v.logger.Debug("batch contained no new codes", "candidates", len(candidates))
		return result, nil
	}

	next := append(cloneCodes(v.codes), fresh...)
	if err := v.apply(ctx, next, nil, codesChanged); err != nil {
		return AddResult{}, err
	}

	v.logger.Info("added codes", "added", result.Added, "duplicates", result.Duplicates)
	return result, nil
}

// ToggleUsed flips the used flag of the code with id. It reports false when
// no such code exists.
func (v *Vault) ToggleUsed(ctx context.Context, id string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.codeIndex(id)
	if i < 0 {
		return false, nil
	}

	next := cloneCodes(v.codes)
	next[i].IsUsed = !next[i].IsUsed
	if err := v.apply(ctx, next, nil, codesChanged); err != nil {
		return false, err
	}
	return true, nil
}

// MarkUsed marks the code with id as used. Marking an already used code is
// a no-op and writes nothing.
func (v *Vault) MarkUsed(ctx context.Context, id string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.codeIndex(id)
	if i < 0 {
		return false, nil
	}
	if v.codes[i].IsUsed {
		return true, nil
	}

	next := cloneCodes(v.codes)
	next[i].IsUsed = true
	if err := v.apply(ctx, next, nil, codesChanged); err != nil {
		return false, err
	}
	return true, nil
}

// Use hands the code's value to copier and, once that succeeds, marks the
// code used. A copy failure leaves the vault untouched.
func (v *Vault) Use(ctx context.Context, id string, copier service.Copier) (model.Code, error) {
	code, ok := v.Find(id)
	if !ok {
		return model.Code{}, fmt.Errorf("code %q: %w", id, common.ErrNotFound)
	}

	if err := copier.Copy(code.Value); err != nil {
		return model.Code{}, fmt.Errorf("failed to copy code: %w", err)
	}

	if _, err := v.MarkUsed(ctx, id); err != nil {
		return model.Code{}, err
	}
	code.IsUsed = true
	return code, nil
}

// DeleteOne removes the code with id. It reports false when no such code
// exists.
func (v *Vault) DeleteOne(ctx context.Context, id string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.codeIndex(id)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Code, 0, len(v.codes)-1)
	next = append(next, v.codes[:i]...)
	next = append(next, v.codes[i+1:]...)
	if err := v.apply(ctx, next, nil, codesChanged); err != nil {
		return false, err
	}

	v.logger.Debug("deleted code", "id", id)
	return true, nil
}

// ClearUsedInCategory removes every used code in category and returns how
// many were removed. Nothing is written when there is nothing to clear.
func (v *Vault) ClearUsedInCategory(ctx context.Context, category string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := make([]model.Code, 0, len(v.codes))
	for _, c := range v.codes {
		if c.Category == category && c.IsUsed {
			continue
		}
		next = append(next, c)
	}

	removed := len(v.codes) - len(next)
	if removed == 0 {
		return 0, nil
	}

	if err := v.apply(ctx, next, nil, codesChanged); err != nil {
		return 0, err
	}

	v.logger.Info("cleared used codes", "category", category, "count", removed)
	return removed, nil
}

// RenameCategory relabels oldName to newName in the category set and on
// every code filed under it, persisting both collections together.
// Surrounding whitespace in newName is ignored. The outcome is only
// meaningful when err is nil.
func (v *Vault) RenameCategory(ctx context.Context, oldName, newName string) (RenameOutcome, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return RenameCancelled, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if indexOf(v.categories, newName) >= 0 {
		return RenameExists, nil
	}
	pos := indexOf(v.categories, oldName)
	if pos < 0 {
		return RenameUnknown, nil
	}

	categories := append([]string{}, v.categories...)
	categories[pos] = newName

	codes := cloneCodes(v.codes)
	relabeled := 0
	for i := range codes {
		if codes[i].Category == oldName {
			codes[i].Category = newName
			relabeled++
		}
	}

	if err := v.apply(ctx, codes, categories, codesChanged|categoriesChanged); err != nil {
		return RenameOK, err
	}

	v.logger.Info("renamed category", "from", oldName, "to", newName, "codes", relabeled)
	return RenameOK, nil
}

// ResetAll erases all persisted state and returns the vault to an empty
// code set with the default categories. Confirmation is the caller's job.
func (v *Vault) ResetAll(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.Clear(ctx); err != nil {
		v.logger.Error("failed to clear storage", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	v.codes = []model.Code{}
	v.categories = v.defaultCategories()
	v.logger.Info("vault reset")
	return nil
}
