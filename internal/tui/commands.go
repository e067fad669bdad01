package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pindrop/internal/review"
)

// Messages emitted by async commands

type fetchDoneMsg struct{ err error }

type commitDoneMsg struct {
	err      error
	hideRest bool
}

// RefetchedMsg is sent from outside the event loop when the session's
// delayed post-commit refetch completes (wired up in main via Program.Send).
type RefetchedMsg struct{ Err error }

// fetchCmd accumulates the next page off the event loop
func (m *Model) fetchCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return fetchDoneMsg{err: session.FetchNext(context.Background())}
	}
}

// commitCmd runs the commit batch off the event loop
func (m *Model) commitCmd(hideRest bool) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		err := session.Commit(context.Background(), review.CommitOptions{HideRest: hideRest})
		return commitDoneMsg{err: err, hideRest: hideRest}
	}
}
