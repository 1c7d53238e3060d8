package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bassam-st/bassam-customs-ai/internal/answer"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
)

// View renders the chat.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	body := lastLines(m.renderHistory(), bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.CustomsIcon + " Customs assistant")
	if m.status == "" {
		return title
	}
	style := m.theme.StatusPending
	if m.statusErr {
		style = m.theme.StatusError
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", style.Render(m.status))
}

func (m Model) renderFooter() string {
	parts := []string{m.input.View()}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return m.theme.Subtitle.Render("اكتب سؤالك عن الرسوم أو السعر أو البند الجمركي.")
	}

	blocks := make([]string, 0, len(m.history))
	for _, ex := range m.history {
		blocks = append(blocks, m.renderExchange(ex))
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderExchange(ex exchange) string {
	query := m.theme.Query.Render("› " + ex.query)

	if ex.err != nil {
		msg := "Error: " + ex.err.Error()
		if errors.Is(ex.err, common.ErrCatalogUnavailable) {
			msg = "Catalog unavailable. Run `customs sync` or `customs import` first."
		}
		return lipgloss.JoinVertical(lipgloss.Left, query, m.theme.StatusError.Render(msg))
	}

	titleStyle := m.theme.StatusWarning
	if ex.result.Kind == answer.KindDutyResult {
		titleStyle = m.theme.StatusSuccess
	}
	box := m.theme.RoundedBox.
		Width(max(m.width-2, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(cli.KindTitle(ex.result.Kind)),
			m.theme.Normal.Render(answer.Render(ex.result)),
		))
	return lipgloss.JoinVertical(lipgloss.Left, query, box)
}

// lastLines keeps the bottom n lines of s.
func lastLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
