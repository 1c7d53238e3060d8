package tui

import (
	"github.com/bassam-st/bassam-customs-ai/internal/answer"
)

// answerMsg carries the engine's reply to one query.
type answerMsg struct {
	err    error
	query  string
	result answer.Result
	seq    int
}

// reloadMsg reports that the catalog was reloaded in the background.
type reloadMsg struct {
	event ReloadEvent
}

// reloadsClosedMsg is sent once the reload channel closes.
type reloadsClosedMsg struct{}
