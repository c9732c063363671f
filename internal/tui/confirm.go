package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmRequest struct {
	prompt string
	reply  chan bool
}

// promptConfirmer asks delete confirmations through the running program.
// Confirm blocks the calling command until the screen answers.
type promptConfirmer struct {
	requests chan confirmRequest
}

func newPromptConfirmer() *promptConfirmer {
	return &promptConfirmer{requests: make(chan confirmRequest)}
}

// Confirm implements crud.Confirmer
func (c *promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	req := confirmRequest{prompt: prompt, reply: make(chan bool, 1)}

	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// wait delivers the next confirmation request as a message
func (c *promptConfirmer) wait() tea.Cmd {
	return func() tea.Msg {
		return confirmRequestMsg{req: <-c.requests}
	}
}
