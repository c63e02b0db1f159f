package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/config"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/service"
	"github.com/Veraticus/codevault/internal/storage"
	"github.com/Veraticus/codevault/internal/vault"
	"github.com/spf13/viper"
)

// openVault loads configuration, opens the configured store and loads the
// vault from it. The returned close function releases the store.
func openVault(ctx context.Context, errOut io.Writer) (*vault.Vault, func(), error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, common.NewUserError("invalid configuration", err)
	}

	store, err := storage.Open(ctx, cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("failed to open vault at %s", cfg.Storage.Path), err)
	}

	v := vault.New(store,
		vault.WithLogger(slog.Default()),
		vault.WithDefaultCategories(cfg.Categories),
	)

	report := v.Load(ctx)
	if report.Degraded() {
		fmt.Fprintln(errOut, cli.FormatWarning("Stored vault data was unreadable; starting from defaults"))
	}
	if report.Orphaned > 0 {
		fmt.Fprintln(errOut, cli.FormatWarning(fmt.Sprintf("%d codes were filed under missing categories; restored: %s",
			report.Orphaned, strings.Join(report.RestoredCategories, ", "))))
	}

	closeFn := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("failed to close storage", "error", closeErr)
		}
	}
	return v, closeFn, nil
}

// resolveCode maps a user-typed id or id prefix to a code.
func resolveCode(v *vault.Vault, ref string) (model.Code, error) {
	code, err := v.Resolve(ref)
	switch {
	case err == nil:
		return code, nil
	case errors.Is(err, common.ErrAmbiguousID):
		return model.Code{}, common.NewUserError(fmt.Sprintf("id %q matches more than one code; type more of it", ref), err)
	case errors.Is(err, common.ErrNotFound):
		return model.Code{}, common.NewUserError(fmt.Sprintf("no code with id %q", ref), err)
	default:
		return model.Code{}, err
	}
}

// pickCategory returns the requested category, or the first one when none
// was requested.
func pickCategory(v *vault.Vault, requested string) (string, error) {
	categories := v.Categories()
	if len(categories) == 0 {
		return "", common.NewUserError("the vault has no categories", vault.ErrUnknownCategory)
	}
	if requested == "" {
		return categories[0], nil
	}
	if !v.HasCategory(requested) {
		return "", common.NewUserError(
			fmt.Sprintf("unknown category %q (have: %s)", requested, strings.Join(categories, ", ")),
			vault.ErrUnknownCategory)
	}
	return requested, nil
}

// shortID is the display form of a code id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// copierFor picks the clipboard, or stdout when asked or when no clipboard
// exists.
func copierFor(out io.Writer, printOnly bool) service.Copier {
	stdout := cli.StdoutCopier{Print: func(s string) { fmt.Fprintln(out, s) }}
	if printOnly {
		return stdout
	}
	return fallbackCopier{primary: cli.ClipboardCopier{}, fallback: stdout}
}

type fallbackCopier struct {
	primary  service.Copier
	fallback service.Copier
}

func (c fallbackCopier) Copy(value string) error {
	err := c.primary.Copy(value)
	if errors.Is(err, cli.ErrClipboardUnavailable) {
		return c.fallback.Copy(value)
	}
	return err
}
