package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the chat and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts ...Option) error {
	m := New(ctx, opts...)
	if m.config.Answerer == nil {
		return fmt.Errorf("answerer is required")
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
