package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"shelfmark/internal/adapters/tui/views"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// Sender is the part of *tea.Program the bridge needs
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge lets goroutines outside the bubbletea program (the reconciliation
// loop, gateway calls running as commands) reach the screen. Everything it
// does becomes a message processed by App.Update.
type Bridge struct {
	mu     sync.Mutex
	sender Sender
}

// Ensure Bridge implements the presentation ports
var (
	_ ports.Renderer  = (*Bridge)(nil)
	_ ports.Notifier  = (*Bridge)(nil)
	_ ports.Confirmer = (*Bridge)(nil)
)

// NewBridge creates a bridge; messages are dropped until Attach is called
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach connects the bridge to a running program
func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = s
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.Lock()
	s := b.sender
	b.mu.Unlock()
	if s == nil {
		return false
	}
	s.Send(msg)
	return true
}

// Render hands a projection to the dashboard
func (b *Bridge) Render(p *domain.Projection, collapsed domain.CollapsedSet) {
	b.send(views.RenderMsg{Projection: p, Collapsed: collapsed})
}

// Notify shows a message on the dashboard
func (b *Bridge) Notify(message string, isErr bool) {
	b.send(views.NoticeMsg{Text: message, IsErr: isErr})
}

// Confirm shows prompt and blocks until the user answers or ctx is done.
// Without an attached program the answer is no.
func (b *Bridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)
	if !b.send(views.ConfirmRequestMsg{Prompt: prompt, Reply: reply}) {
		return false, nil
	}
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
