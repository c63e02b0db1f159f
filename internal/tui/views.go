package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(cli.VaultIcon + " Code Vault"),
		m.renderTabs(),
		m.renderCodes(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	if len(m.categories) == 0 {
		return m.theme.Muted.Render("No categories")
	}

	tabs := make([]string, len(m.stats))
	for i, s := range m.stats {
		label := fmt.Sprintf("%s %s (%d/%d)", themes.GetCategoryIcon(s.Category), s.Category, s.Unused, s.Total)
		if i == m.tab {
			tabs[i] = m.theme.ActiveTab.Render(label)
		} else {
			tabs[i] = m.theme.Tab.Render(label)
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	rule := lipgloss.NewStyle().
		Foreground(m.theme.Border).
		Render(strings.Repeat("─", max(lipgloss.Width(row), 1)))
	return row + "\n" + rule
}

func (m Model) renderCodes() string {
	if len(m.categories) == 0 {
		return ""
	}
	if len(m.rows) == 0 {
		return m.theme.Muted.Render("No codes in " + m.categories[m.tab] + ". Add some with 'vault add'.")
	}

	var b strings.Builder
	index := 0
	for _, g := range m.groups {
		b.WriteString(m.theme.GroupHeader.Render(fmt.Sprintf("%s (%d)", g.Prefix, len(g.Codes))))
		b.WriteString("\n")
		for _, c := range g.Codes {
			marker := cli.UnusedIcon
			value := m.theme.Normal.Render(c.Value)
			if c.IsUsed {
				marker = cli.UsedIcon
				value = m.theme.Used.Render(c.Value)
			}
			line := fmt.Sprintf("  %s %s", marker, value)
			if index == m.cursor {
				line = m.theme.Selected.Render(fmt.Sprintf("> %s %s", marker, c.Value))
			}
			b.WriteString(line)
			b.WriteString("\n")
			index++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatus() string {
	switch {
	case m.state == StateConfirmClear:
		return m.theme.Confirmation.Render(m.status)
	case m.lastError != nil:
		return m.theme.StatusError.Render(fmt.Sprintf("%s: %s", m.status, common.UserMessage(m.lastError)))
	case m.status != "":
		return m.theme.StatusInfo.Render(m.status)
	default:
		return ""
	}
}
