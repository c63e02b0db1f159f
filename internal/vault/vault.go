// Package vault owns the tracked code collection and the category set. It
// is the only writer of either; every mutation is computed on a copy,
// persisted, and only then made visible.
package vault

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/extract"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/query"
	"github.com/Veraticus/codevault/internal/service"
)

// Vault errors.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidCode     = errors.New("invalid code")
	ErrPersist         = errors.New("failed to persist vault")
)

// Vault is the repository of tracked codes.
type Vault struct {
	store      service.SnapshotStore
	extractor  *extract.Extractor
	logger     *slog.Logger
	defaults   []string
	codes      []model.Code
	categories []string
	mu         sync.Mutex
}

// Option configures a Vault.
type Option func(*Vault)

// WithLogger sets the logger used for vault events.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) {
		v.logger = logger
	}
}

// WithExtractor sets the extractor used by Import.
func WithExtractor(e *extract.Extractor) Option {
	return func(v *Vault) {
		v.extractor = e
	}
}

// WithDefaultCategories sets the category set used when none is stored and
// after ResetAll.
func WithDefaultCategories(categories []string) Option {
	return func(v *Vault) {
		v.defaults = append([]string(nil), categories...)
	}
}

// New creates a vault backed by store. It starts empty with the default
// categories; call Load to rehydrate persisted state.
func New(store service.SnapshotStore, opts ...Option) *Vault {
	v := &Vault{
		store:     store,
		extractor: extract.New(),
		logger:    slog.Default(),
		defaults:  model.CopyDefaultCategories(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.codes = []model.Code{}
	v.categories = v.defaultCategories()
	return v
}

func (v *Vault) defaultCategories() []string {
	return append([]string{}, v.defaults...)
}

// Codes returns a copy of every tracked code in insertion order.
func (v *Vault) Codes() []model.Code {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneCodes(v.codes)
}

// Categories returns a copy of the category labels in display order.
func (v *Vault) Categories() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string{}, v.categories...)
}

// HasCategory reports whether name is a current category label.
func (v *Vault) HasCategory(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return indexOf(v.categories, name) >= 0
}

// Len returns the number of tracked codes.
func (v *Vault) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.codes)
}

// Find returns the code with the given id.
func (v *Vault) Find(id string) (model.Code, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.codeIndex(id); i >= 0 {
		return v.codes[i], true
	}
	return model.Code{}, false
}

// Resolve finds a code by exact id or by a unique id prefix.
func (v *Vault) Resolve(ref string) (model.Code, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Code{}, fmt.Errorf("code %q: %w", ref, common.ErrNotFound)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if i := v.codeIndex(ref); i >= 0 {
		return v.codes[i], nil
	}

	var (
		match model.Code
		count int
	)
	for _, c := range v.codes {
		if strings.HasPrefix(c.ID, ref) {
			match = c
			count++
		}
	}
	switch count {
	case 0:
		return model.Code{}, fmt.Errorf("code %q: %w", ref, common.ErrNotFound)
	case 1:
		return match, nil
	default:
		return model.Code{}, fmt.Errorf("code %q matches %d codes: %w", ref, count, common.ErrAmbiguousID)
	}
}

// View returns the codes of one category grouped by prefix.
func (v *Vault) View(category string) []model.CodeGroup {
	v.mu.Lock()
	defer v.mu.Unlock()
	return query.CategoryView(v.codes, category)
}

// Stats returns per-category counts in category order.
func (v *Vault) Stats() []model.CategoryStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return query.StatsByCategory(v.codes, v.categories)
}

func (v *Vault) codeIndex(id string) int {
	for i, c := range v.codes {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func indexOf(labels []string, name string) int {
	for i, l := range labels {
		if l == name {
			return i
		}
	}
	return -1
}

func cloneCodes(codes []model.Code) []model.Code {
	out := make([]model.Code, len(codes))
	copy(out, codes)
	return out
}
