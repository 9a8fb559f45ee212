package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shelfmark/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmRequestMsg asks the user a yes/no question. The answer is sent on
// Reply exactly once.
type ConfirmRequestMsg struct {
	Prompt string
	Reply  chan<- bool
}

// ConfirmAnsweredMsg reports that the pending question was answered
type ConfirmAnsweredMsg struct {
	Confirmed bool
}

// ConfirmationModel shows a pending destructive operation and collects the answer
type ConfirmationModel struct {
	ViewState
	Keys  ConfirmKeyMap
	req   *ConfirmRequestMsg
	queue []ConfirmRequestMsg
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() *ConfirmationModel {
	return &ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Ask shows req, or queues it behind the question already on screen
func (m *ConfirmationModel) Ask(req ConfirmRequestMsg) {
	if m.req != nil {
		m.queue = append(m.queue, req)
		return
	}
	m.req = &req
}

// Pending reports whether a question is waiting for an answer
func (m *ConfirmationModel) Pending() bool {
	return m.req != nil
}

// Prompt returns the question on screen
func (m *ConfirmationModel) Prompt() string {
	if m.req == nil {
		return ""
	}
	return m.req.Prompt
}

// Answer replies to the question on screen and moves on to the next queued one
func (m *ConfirmationModel) Answer(ok bool) {
	if m.req == nil {
		return
	}
	m.req.Reply <- ok
	m.req = nil
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.req = &next
	}
}

// CancelAll declines every outstanding question, e.g. on quit
func (m *ConfirmationModel) CancelAll() {
	for m.req != nil {
		m.Answer(false)
	}
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Confirm):
			m.Answer(true)
			return m, answered(true)
		case key.Matches(msg, m.Keys.Cancel):
			m.Answer(false)
			return m, answered(false)
		}
	}
	return m, nil
}

func answered(ok bool) tea.Cmd {
	return func() tea.Msg { return ConfirmAnsweredMsg{Confirmed: ok} }
}

// Init initializes the confirmation view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// View renders the confirmation view
func (m *ConfirmationModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")
	b.WriteString(m.Prompt())
	b.WriteString("\n\n")
	b.WriteString(RenderConfirmPrompt("Proceed?"))

	return styles.App.Render(b.String())
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
