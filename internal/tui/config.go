package tui

import (
	"context"

	"github.com/bassam-st/bassam-customs-ai/internal/answer"
	"github.com/bassam-st/bassam-customs-ai/internal/tui/themes"
)

// Answerer answers one free-text customs query.
type Answerer interface {
	Answer(ctx context.Context, query string) (answer.Result, error)
}

// ReloadEvent reports a catalog reload triggered outside the chat.
type ReloadEvent struct {
	Err   error
	Items int
}

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Answerer   Answerer
	Reloads    <-chan ReloadEvent
	Width      int
	Height     int
	MaxHistory int
	ShowHelp   bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Width:      80,
		Height:     24,
		MaxHistory: 50,
		ShowHelp:   true,
	}
}

// WithAnswerer sets the query engine.
func WithAnswerer(a Answerer) Option {
	return func(c *Config) {
		c.Answerer = a
	}
}

// WithReloads subscribes the chat to catalog reload notifications.
func WithReloads(ch <-chan ReloadEvent) Option {
	return func(c *Config) {
		c.Reloads = ch
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMaxHistory bounds how many exchanges the chat keeps.
func WithMaxHistory(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxHistory = n
		}
	}
}
