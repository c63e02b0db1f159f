package tui

import (
	"github.com/Veraticus/codevault/internal/service"
	"github.com/Veraticus/codevault/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Copier   service.Copier
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithCopier sets where copied codes go.
func WithCopier(copier service.Copier) Option {
	return func(c *Config) {
		c.Copier = copier
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFullHelp starts with the full help panel open.
func WithFullHelp() Option {
	return func(c *Config) {
		c.ShowHelp = true
	}
}
