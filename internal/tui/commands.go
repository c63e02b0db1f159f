package tui

import (
	"errors"
	"fmt"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// statusCopier treats a missing clipboard as a successful copy and records
// it, so the value can be shown in the status line.
type statusCopier struct {
	next        service.Copier
	unavailable bool
}

func (c *statusCopier) Copy(value string) error {
	err := c.next.Copy(value)
	if errors.Is(err, cli.ErrClipboardUnavailable) {
		c.unavailable = true
		return nil
	}
	return err
}

func (m Model) copyCode(code model.Code) tea.Cmd {
	return func() tea.Msg {
		copier := &statusCopier{next: m.config.Copier}
		if _, err := m.vault.Use(m.ctx, code.ID, copier); err != nil {
			return errorMsg{err: err, context: "copy"}
		}
		if copier.unavailable {
			return actionDoneMsg{status: fmt.Sprintf("No clipboard available, code: %s", code.Value)}
		}
		return actionDoneMsg{status: fmt.Sprintf("Copied %s", code.Value)}
	}
}

func (m Model) toggleCode(code model.Code) tea.Cmd {
	return func() tea.Msg {
		found, err := m.vault.ToggleUsed(m.ctx, code.ID)
		if err != nil {
			return errorMsg{err: err, context: "toggle"}
		}
		if !found {
			return actionDoneMsg{status: "Code no longer exists"}
		}
		state := "used"
		if code.IsUsed {
			state = "unused"
		}
		return actionDoneMsg{status: fmt.Sprintf("Marked %s %s", code.Value, state)}
	}
}

func (m Model) deleteCode(code model.Code) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.vault.DeleteOne(m.ctx, code.ID); err != nil {
			return errorMsg{err: err, context: "delete"}
		}
		return actionDoneMsg{status: fmt.Sprintf("Deleted %s", code.Value)}
	}
}

func (m Model) clearUsed(category string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.vault.ClearUsedInCategory(m.ctx, category)
		if err != nil {
			return errorMsg{err: err, context: "clear used"}
		}
		if removed == 0 {
			return actionDoneMsg{status: fmt.Sprintf("No used codes in %s", category)}
		}
		return actionDoneMsg{status: fmt.Sprintf("Cleared %d used codes from %s", removed, category)}
	}
}
