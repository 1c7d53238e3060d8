package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// answerTimeout bounds one engine call.
const answerTimeout = 10 * time.Second

// askCmd answers query off the update loop.
func (m Model) askCmd(query string, seq int) tea.Cmd {
	answerer := m.config.Answerer
	parent := m.ctx
	return func() tea.Msg {
		if answerer == nil {
			return answerMsg{query: query, seq: seq, err: fmt.Errorf("no engine configured")}
		}

		ctx, cancel := context.WithTimeout(parent, answerTimeout)
		defer cancel()

		result, err := answerer.Answer(ctx, query)
		return answerMsg{query: query, seq: seq, result: result, err: err}
	}
}

// waitForReload blocks until the next reload notification.
func waitForReload(ch <-chan ReloadEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return reloadsClosedMsg{}
		}
		return reloadMsg{event: event}
	}
}
