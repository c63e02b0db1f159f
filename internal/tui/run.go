package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/codevault/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, v *vault.Vault, opts ...Option) error {
	if v == nil {
		return fmt.Errorf("vault is required")
	}

	p := tea.NewProgram(New(ctx, v, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
