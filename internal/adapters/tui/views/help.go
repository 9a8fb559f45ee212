package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shelfmark/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, emit(SwitchToDashboardMsg{})
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("Shelfmark Help").
		Subtitle("Folders from the Bookmarks Menu and Toolbar, one card each")

	v.Section("Navigation")
	v.Raw(helpLine("j / k / ↑ / ↓", "Move up/down"))
	v.Raw(helpLine("pgup / pgdn", "Scroll a page"))
	v.Raw(helpLine("space / enter", "Collapse or expand folder"))
	v.BlankLine()

	v.Section("Bookmarks")
	v.Raw(helpLine("a", "Add bookmark to the folder under the cursor"))
	v.Raw(helpLine("y", "Copy URL"))
	v.Raw(helpLine("o", "Open in browser"))
	v.BlankLine()

	v.Section("Folders")
	v.Raw(helpLine("n", "New folder"))
	v.Raw(helpLine("r", "Rename folder"))
	v.Raw(helpLine("d", "Delete folder or bookmark"))
	v.BlankLine()

	v.Section("Moving")
	v.Raw(helpLine("m", "Pick up folder or bookmark"))
	v.Raw(helpLine("enter / p", "Drop into the folder under the cursor"))
	v.Raw(helpLine("esc", "Put it back"))
	v.BlankLine()

	v.Section("General")
	v.Raw(helpLine("g", "Reload from the bookmark store"))
	v.Raw(helpLine("?", "Toggle help"))
	v.Raw(helpLine("q / Ctrl+C", "Quit"))
	v.BlankLine()

	v.Raw(styles.HelpDesc.Render("Press "))
	v.Raw(styles.HelpKey.Render("esc"))
	v.Raw(styles.HelpDesc.Render(" or "))
	v.Raw(styles.HelpKey.Render("?"))
	v.Raw(styles.HelpDesc.Render(" to close"))

	return v.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 16)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
