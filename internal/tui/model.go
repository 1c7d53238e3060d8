package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bassam-st/bassam-customs-ai/internal/answer"
	"github.com/bassam-st/bassam-customs-ai/internal/tui/themes"
)

// exchange is one query and its reply. seq is the submission order.
type exchange struct {
	err    error
	query  string
	result answer.Result
	seq    int
}

// Model holds the chat state.
type Model struct {
	ctx       context.Context
	theme     themes.Theme
	status    string
	statusErr bool
	help      help.Model
	input     textinput.Model
	config    Config
	keymap    KeyMap
	history   []exchange
	queries   []string
	recallIdx int
	seq       int
	pending   int
	width     int
	height    int
	showHelp  bool
	quitting  bool
}

// New creates a chat model. ctx bounds every query the chat sends.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(ctx, cfg)
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "كم جمارك مودم 300 دولار"
	input.Prompt = "› "
	input.CharLimit = 500
	input.Width = max(cfg.Width-4, 10)
	input.Focus()

	return Model{
		ctx:      ctx,
		config:   cfg,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		width:    cfg.Width,
		height:   cfg.Height,
		showHelp: cfg.ShowHelp,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForReload(m.config.Reloads))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		m.help.Width = msg.Width

	case answerMsg:
		m.pending--
		m.addExchange(exchange{query: msg.query, result: msg.result, err: msg.err, seq: msg.seq})
		if over := len(m.history) - m.config.MaxHistory; over > 0 {
			m.history = m.history[over:]
		}
		if m.pending == 0 {
			m.status = ""
		}
		return m, nil

	case reloadMsg:
		if msg.event.Err != nil {
			m.status = "Reload failed: " + msg.event.Err.Error()
			m.statusErr = true
		} else {
			m.status = "Catalog reloaded"
			m.statusErr = false
		}
		return m, waitForReload(m.config.Reloads)

	case reloadsClosedMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// addExchange inserts e in submission order. Replies can arrive out of order
// when several queries are in flight.
func (m *Model) addExchange(e exchange) {
	i := len(m.history)
	for i > 0 && m.history[i-1].seq > e.seq {
		i--
	}
	m.history = slices.Insert(m.history, i, e)
}

// handleKeys processes chat-level keys. Unhandled keys go to the input.
func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.ClearScreen):
		m.history = nil
		m.status = ""
		return nil, true

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.PrevQuery):
		m.recall(-1)
		return nil, true

	case key.Matches(msg, m.keymap.NextQuery):
		m.recall(1)
		return nil, true

	case key.Matches(msg, m.keymap.Submit):
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return nil, true
		}
		m.input.Reset()
		m.queries = append(m.queries, query)
		m.recallIdx = len(m.queries)
		m.seq++
		m.pending++
		m.status = "…"
		m.statusErr = false
		return m.askCmd(query, m.seq), true
	}
	return nil, false
}

// recall steps through previously submitted queries.
func (m *Model) recall(step int) {
	if len(m.queries) == 0 {
		return
	}
	m.recallIdx = min(max(m.recallIdx+step, 0), len(m.queries))
	if m.recallIdx == len(m.queries) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.queries[m.recallIdx])
	m.input.CursorEnd()
}
