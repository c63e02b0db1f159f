package vault_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/extract"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/service"
	"github.com/Veraticus/codevault/internal/testutil"
	"github.com/Veraticus/codevault/internal/testutil/fixtures"
	"github.com/Veraticus/codevault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

func quietLogger() vault.Option {
	return vault.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sequentialIDs() vault.Option {
	n := 0
	return vault.WithExtractor(extract.New(
		extract.WithClock(func() time.Time { return time.UnixMilli(5000) }),
		extract.WithIDGenerator(func() string {
			n++
			return "new-" + strings.Repeat("x", n)
		}),
	))
}

type recordingCopier struct {
	err    error
	copied []string
}

func (c *recordingCopier) Copy(value string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, value)
	return nil
}

func TestNew_StartsEmptyWithDefaults(t *testing.T) {
	v := vault.New(testutil.NewMemoryStore(), quietLogger())

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, model.DefaultCategories, v.Categories())
}

func TestLoad_AbsentStorageUsesDefaults(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger())

	assert.Equal(t, 0, tv.Vault.Len())
	assert.Equal(t, model.DefaultCategories, tv.Vault.Categories())
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestLoad_RestoresPersistedState(t *testing.T) {
	seed := fixtures.NewBuilder().
		WithCodes("Work", 2).
		WithUsedCodes("Home", 1).
		Build()

	tv := testutil.SetupTestVault(t, seed, []string{"Work", "Home"}, quietLogger())

	assert.Equal(t, seed, tv.Vault.Codes())
	assert.Equal(t, []string{"Work", "Home"}, tv.Vault.Categories())
}

func TestLoad_Fallbacks(t *testing.T) {
	tests := []struct {
		name           string
		codes          string
		categories     string
		wantCodes      bool
		wantCategories bool
	}{
		{
			name:      "codes not json",
			codes:     `{not json`,
			wantCodes: true,
		},
		{
			name:      "codes null",
			codes:     `null`,
			wantCodes: true,
		},
		{
			name:      "codes missing value",
			codes:     `[{"id":"a","category":"General"}]`,
			wantCodes: true,
		},
		{
			name:      "codes duplicate id",
			codes:     `[{"id":"a","value":"X"},{"id":"a","value":"Y"}]`,
			wantCodes: true,
		},
		{
			name:      "codes duplicate value",
			codes:     `[{"id":"a","value":"X"},{"id":"b","value":"X"}]`,
			wantCodes: true,
		},
		{
			name:           "categories duplicate label",
			categories:     `["A","A"]`,
			wantCategories: true,
		},
		{
			name:           "categories blank label",
			categories:     `["A","  "]`,
			wantCategories: true,
		},
		{
			name:           "categories wrong type",
			categories:     `{"A":1}`,
			wantCategories: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemoryStore()
			if tt.codes != "" {
				store.Put(service.CodesKey, []byte(tt.codes))
			}
			if tt.categories != "" {
				store.Put(service.CategoriesKey, []byte(tt.categories))
			}

			v := vault.New(store, quietLogger())
			report := v.Load(context.Background())

			assert.Equal(t, tt.wantCodes, report.CodesFallback)
			assert.Equal(t, tt.wantCategories, report.CategoriesFallback)
			assert.True(t, report.Degraded())
			if tt.wantCodes {
				assert.Equal(t, 0, v.Len())
			}
			if tt.wantCategories {
				assert.Equal(t, model.DefaultCategories, v.Categories())
			}
			assert.Equal(t, 0, store.SaveCalls)
		})
	}
}

func TestLoad_StoreErrorFallsBack(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.LoadErr = errDiskFull

	v := vault.New(store, quietLogger())
	report := v.Load(context.Background())

	assert.True(t, report.CodesFallback)
	assert.True(t, report.CategoriesFallback)
	assert.Equal(t, model.DefaultCategories, v.Categories())
}

func TestLoad_CountsOrphans(t *testing.T) {
	seed := fixtures.NewBuilder().
		WithCodes("General", 1).
		WithCodes("Gone", 2).
		Build()

	tv := testutil.SetupTestVault(t, seed, []string{"General"}, quietLogger())

	report := tv.Vault.Load(context.Background())
	assert.Equal(t, 2, report.Orphaned)
	assert.Equal(t, []string{"Gone"}, report.RestoredCategories)
	assert.Equal(t, 2, report.Categories)
	assert.False(t, report.Degraded())
	assert.Equal(t, 3, tv.Vault.Len())
	assert.Equal(t, []string{"General", "Gone"}, tv.Vault.Categories())
	assert.True(t, tv.Vault.HasCategory("Gone"))
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestLoad_CorruptCategoriesKeepsCodesReachable(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Put(service.CodesKey, []byte(`[{"id":"a","value":"ABCD1234EFGH5678IJKL","category":"Games"}]`))
	store.Put(service.CategoriesKey, []byte(`{not json`))

	v := vault.New(store, quietLogger())
	report := v.Load(context.Background())

	assert.True(t, report.CategoriesFallback)
	assert.Equal(t, []string{"Games"}, report.RestoredCategories)
	assert.Equal(t, append(append([]string{}, model.DefaultCategories...), "Games"), v.Categories())
	assert.True(t, v.HasCategory("Games"))

	groups := v.View("Games")
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Codes, 1)
	assert.Equal(t, "a", groups[0].Codes[0].ID)

	outcome, err := v.RenameCategory(context.Background(), "Games", "Consoles")
	require.NoError(t, err)
	assert.Equal(t, vault.RenameOK, outcome)
	assert.Equal(t, "Consoles", v.Codes()[0].Category)
}

func TestLoad_RecomputesPrefix(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.Put(service.CodesKey, []byte(`[{"id":"a","value":"ABCD1234EFGH5678IJKL","prefix":"zz","category":"General"}]`))

	v := vault.New(store, quietLogger())
	report := v.Load(context.Background())

	require.False(t, report.Degraded())
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "ABCD", v.Codes()[0].Prefix)

	groups := v.View("General")
	require.Len(t, groups, 1)
	assert.Equal(t, "ABCD", groups[0].Prefix)
}

func TestImport_AddsExtractedCodes(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger(), sequentialIDs())
	ctx := context.Background()

	text := "first ABCD1234EFGH5678IJKL then WXYZ9876WXYZ9876WXYZ and ABCD1234EFGH5678IJKL again"
	result, err := tv.Vault.Import(ctx, text, "General")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Extracted)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Duplicates)
	assert.Equal(t, 1, tv.Store.SaveCalls)

	codes := tv.Vault.Codes()
	require.Len(t, codes, 2)
	assert.Equal(t, "ABCD1234EFGH5678IJKL", codes[0].Value)
	assert.Equal(t, "ABCD", codes[0].Prefix)
	assert.Equal(t, "General", codes[0].Category)
	assert.Equal(t, int64(5000), codes[0].CreatedAt)
	assert.Equal(t, int64(5001), codes[1].CreatedAt)

	assert.Equal(t, codes, tv.Store.StoredCodes(t))
}

func TestImport_DuplicateAgainstExisting(t *testing.T) {
	seed := fixtures.NewBuilder().WithCode("General", "ABCD1234EFGH5678IJKL").Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger(), sequentialIDs())

	result, err := tv.Vault.Import(context.Background(),
		"ABCD1234EFGH5678IJKL ZZZZ1234EFGH5678IJKL", "General")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Extracted)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 2, tv.Vault.Len())
}

func TestImport_NothingExtracted(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger())

	result, err := tv.Vault.Import(context.Background(), "too short, ABC-123", "General")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Extracted)
	assert.True(t, result.NothingNew())
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestImport_UnknownCategory(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger())

	_, err := tv.Vault.Import(context.Background(), "ABCD1234EFGH5678IJKL", "Nope")
	require.ErrorIs(t, err, vault.ErrUnknownCategory)
	assert.Equal(t, 0, tv.Vault.Len())
}

func TestAddBatch_AllDuplicatesWritesNothing(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 2).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

	again := fixtures.NewBuilder().WithCodes("General", 2).Build()
	for i := range again {
		again[i].ID = again[i].ID + "-again"
	}

	result, err := tv.Vault.AddBatch(context.Background(), again)
	require.NoError(t, err)

	assert.True(t, result.NothingNew())
	assert.Equal(t, 2, result.Duplicates)
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestAddBatch_DedupsWithinBatch(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger())

	batch := []model.Code{
		{ID: "a", Value: "SAMEVALUE00000000000001", Category: "General"},
		{ID: "b", Value: "SAMEVALUE00000000000001", Category: "General"},
	}
	result, err := tv.Vault.AddBatch(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, "a", tv.Vault.Codes()[0].ID)
}

func TestAddBatch_RejectsInvalidCandidates(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger())
	ctx := context.Background()

	_, err := tv.Vault.AddBatch(ctx, []model.Code{{ID: "", Value: "X", Category: "General"}})
	require.ErrorIs(t, err, vault.ErrInvalidCode)

	_, err = tv.Vault.AddBatch(ctx, []model.Code{{ID: "a", Value: "X", Category: "Missing"}})
	require.ErrorIs(t, err, vault.ErrUnknownCategory)

	assert.Equal(t, 0, tv.Vault.Len())
}

func TestToggleUsed(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 1).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
	ctx := context.Background()

	found, err := tv.Vault.ToggleUsed(ctx, "code-1")
	require.NoError(t, err)
	require.True(t, found)
	code, _ := tv.Vault.Find("code-1")
	assert.True(t, code.IsUsed)

	found, err = tv.Vault.ToggleUsed(ctx, "code-1")
	require.NoError(t, err)
	require.True(t, found)
	code, _ = tv.Vault.Find("code-1")
	assert.False(t, code.IsUsed)

	assert.Equal(t, 2, tv.Store.SaveCalls)
}

func TestToggleUsed_UnknownID(t *testing.T) {
	tv := testutil.SetupTestVault(t, fixtures.NewBuilder().WithCodes("General", 1).Build(), nil, quietLogger())

	found, err := tv.Vault.ToggleUsed(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestMarkUsed_IsIdempotent(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 1).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		found, err := tv.Vault.MarkUsed(ctx, "code-1")
		require.NoError(t, err)
		require.True(t, found)
	}

	code, _ := tv.Vault.Find("code-1")
	assert.True(t, code.IsUsed)
	assert.Equal(t, 1, tv.Store.SaveCalls)
}

func TestUse(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 1).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
	copier := &recordingCopier{}

	code, err := tv.Vault.Use(context.Background(), "code-1", copier)
	require.NoError(t, err)

	assert.True(t, code.IsUsed)
	assert.Equal(t, []string{seed[0].Value}, copier.copied)
	stored, _ := tv.Vault.Find("code-1")
	assert.True(t, stored.IsUsed)
}

func TestUse_CopyFailureLeavesCodeUnused(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 1).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
	copier := &recordingCopier{err: errors.New("no clipboard")}

	_, err := tv.Vault.Use(context.Background(), "code-1", copier)
	require.Error(t, err)

	stored, _ := tv.Vault.Find("code-1")
	assert.False(t, stored.IsUsed)
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestUse_UnknownID(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, nil, quietLogger())

	_, err := tv.Vault.Use(context.Background(), "missing", &recordingCopier{})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteOne(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 3).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
	ctx := context.Background()

	found, err := tv.Vault.DeleteOne(ctx, "code-2")
	require.NoError(t, err)
	require.True(t, found)

	codes := tv.Vault.Codes()
	require.Len(t, codes, 2)
	assert.Equal(t, "code-1", codes[0].ID)
	assert.Equal(t, "code-3", codes[1].ID)

	found, err = tv.Vault.DeleteOne(ctx, "code-2")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, tv.Store.SaveCalls)
}

func TestClearUsedInCategory(t *testing.T) {
	seed := fixtures.NewBuilder().
		WithCodes("General", 1).
		WithUsedCodes("General", 2).
		WithUsedCodes("Apple", 1).
		Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

	removed, err := tv.Vault.ClearUsedInCategory(context.Background(), "General")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	codes := tv.Vault.Codes()
	require.Len(t, codes, 2)
	assert.Equal(t, "code-1", codes[0].ID)
	assert.Equal(t, "Apple", codes[1].Category)
}

func TestClearUsedInCategory_NothingToClear(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 2).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

	removed, err := tv.Vault.ClearUsedInCategory(context.Background(), "General")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 0, tv.Store.SaveCalls)
}

func TestRenameCategory(t *testing.T) {
	seed := fixtures.NewBuilder().
		WithCodes("Apple", 2).
		WithCodes("General", 1).
		Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

	outcome, err := tv.Vault.RenameCategory(context.Background(), "Apple", "  iOS  ")
	require.NoError(t, err)
	assert.Equal(t, vault.RenameOK, outcome)

	assert.Equal(t, []string{"iOS", "Android", "General", "Other"}, tv.Vault.Categories())
	for _, c := range tv.Vault.Codes()[:2] {
		assert.Equal(t, "iOS", c.Category)
	}
	assert.Equal(t, "General", tv.Vault.Codes()[2].Category)

	assert.Equal(t, 1, tv.Store.SaveCalls)
	assert.Equal(t, tv.Vault.Categories(), tv.Store.StoredCategories(t))
	assert.Equal(t, tv.Vault.Codes(), tv.Store.StoredCodes(t))
}

func TestRenameCategory_NoMutationOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		oldName string
		newName string
		want    vault.RenameOutcome
	}{
		{name: "blank", oldName: "Apple", newName: "   ", want: vault.RenameCancelled},
		{name: "same", oldName: "Apple", newName: "Apple", want: vault.RenameCancelled},
		{name: "exists", oldName: "Apple", newName: "General", want: vault.RenameExists},
		{name: "unknown", oldName: "Nope", newName: "Fresh", want: vault.RenameUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := fixtures.NewBuilder().WithCodes("Apple", 1).Build()
			tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

			outcome, err := tv.Vault.RenameCategory(context.Background(), tt.oldName, tt.newName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			assert.Equal(t, tt.want.String(), outcome.String())

			assert.Equal(t, model.DefaultCategories, tv.Vault.Categories())
			assert.Equal(t, seed, tv.Vault.Codes())
			assert.Equal(t, 0, tv.Store.SaveCalls)
		})
	}
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	seed := fixtures.NewBuilder().
		WithCodes("Apple", 1).
		WithUsedCodes("General", 1).
		Build()

	mutations := map[string]func(context.Context, *vault.Vault) error{
		"import": func(ctx context.Context, v *vault.Vault) error {
			_, err := v.Import(ctx, "NEWCODE1234567890ABCDEF", "General")
			return err
		},
		"toggle": func(ctx context.Context, v *vault.Vault) error {
			_, err := v.ToggleUsed(ctx, "code-1")
			return err
		},
		"mark used": func(ctx context.Context, v *vault.Vault) error {
			_, err := v.MarkUsed(ctx, "code-1")
			return err
		},
		"delete": func(ctx context.Context, v *vault.Vault) error {
			_, err := v.DeleteOne(ctx, "code-1")
			return err
		},
		"clear used": func(ctx context.Context, v *vault.Vault) error {
			_, err := v.ClearUsedInCategory(ctx, "General")
			return err
		},
		"rename": func(ctx context.Context, v *vault.Vault) error {
			_, err := v.RenameCategory(ctx, "Apple", "iOS")
			return err
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
			tv.Store.SaveErr = errDiskFull

			err := mutate(context.Background(), tv.Vault)
			require.ErrorIs(t, err, vault.ErrPersist)
			require.ErrorIs(t, err, errDiskFull)

			assert.Equal(t, seed, tv.Vault.Codes())
			assert.Equal(t, model.DefaultCategories, tv.Vault.Categories())
		})
	}
}

func TestResetAll(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("Work", 3).Build()
	tv := testutil.SetupTestVault(t, seed, []string{"Work"}, quietLogger())

	require.NoError(t, tv.Vault.ResetAll(context.Background()))

	assert.Equal(t, 0, tv.Vault.Len())
	assert.Equal(t, model.DefaultCategories, tv.Vault.Categories())
	assert.Equal(t, 1, tv.Store.ClearCalls)
	_, ok := tv.Store.Raw(service.CodesKey)
	assert.False(t, ok)
}

func TestResetAll_ClearFailure(t *testing.T) {
	seed := fixtures.NewBuilder().WithCodes("General", 1).Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())
	tv.Store.ClearErr = errDiskFull

	err := tv.Vault.ResetAll(context.Background())
	require.ErrorIs(t, err, vault.ErrPersist)
	assert.Equal(t, 1, tv.Vault.Len())
}

func TestResetAll_CustomDefaults(t *testing.T) {
	tv := testutil.SetupTestVault(t, nil, []string{"A"}, quietLogger(),
		vault.WithDefaultCategories([]string{"Games", "Gifts"}))

	require.NoError(t, tv.Vault.ResetAll(context.Background()))
	assert.Equal(t, []string{"Games", "Gifts"}, tv.Vault.Categories())
}

func TestResolve(t *testing.T) {
	seed := []model.Code{
		{ID: "3f2a91c0", Value: "AAAA00000000000000000001", Prefix: "AAAA", Category: "General"},
		{ID: "3f2b0000", Value: "AAAA00000000000000000002", Prefix: "AAAA", Category: "General"},
		{ID: "9c", Value: "AAAA00000000000000000003", Prefix: "AAAA", Category: "General"},
	}
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

	code, err := tv.Vault.Resolve("3f2a")
	require.NoError(t, err)
	assert.Equal(t, "3f2a91c0", code.ID)

	code, err = tv.Vault.Resolve(" 9c ")
	require.NoError(t, err)
	assert.Equal(t, "9c", code.ID)

	_, err = tv.Vault.Resolve("3f2")
	require.ErrorIs(t, err, common.ErrAmbiguousID)

	_, err = tv.Vault.Resolve("ffff")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = tv.Vault.Resolve("")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestViewAndStats(t *testing.T) {
	seed := fixtures.NewBuilder().
		WithCode("General", "ZZZZ00000000000000000001").
		WithCode("General", "AAAA00000000000000000001").
		WithCode("General", "ZZZZ00000000000000000002").
		WithUsedCodes("Apple", 1).
		Build()
	tv := testutil.SetupTestVault(t, seed, nil, quietLogger())

	groups := tv.Vault.View("General")
	require.Len(t, groups, 2)
	assert.Equal(t, "AAAA", groups[0].Prefix)
	assert.Equal(t, "ZZZZ", groups[1].Prefix)
	require.Len(t, groups[1].Codes, 2)
	assert.Equal(t, "code-1", groups[1].Codes[0].ID)

	stats := tv.Vault.Stats()
	require.Len(t, stats, 4)
	assert.Equal(t, model.CategoryStats{Category: "Apple", Total: 1, Unused: 0}, stats[0])
	assert.Equal(t, model.CategoryStats{Category: "Android"}, stats[1])
	assert.Equal(t, model.CategoryStats{Category: "General", Total: 3, Unused: 3}, stats[2])
}

func TestSQLiteBackedVault(t *testing.T) {
	v, store := testutil.SetupSQLiteVault(t, quietLogger(), sequentialIDs())
	ctx := context.Background()

	_, err := v.Import(ctx, "ABCD1234EFGH5678IJKL", "Other")
	require.NoError(t, err)
	_, err = v.RenameCategory(ctx, "Other", "Misc")
	require.NoError(t, err)

	reloaded := vault.New(store, quietLogger())
	report := reloaded.Load(ctx)

	assert.False(t, report.Degraded())
	assert.Equal(t, v.Codes(), reloaded.Codes())
	assert.Equal(t, []string{"Apple", "Android", "General", "Misc"}, reloaded.Categories())
	assert.Equal(t, "Misc", reloaded.Codes()[0].Category)
}
