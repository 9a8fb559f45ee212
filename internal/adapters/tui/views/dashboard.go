package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shelfmark/internal/adapters/tui/styles"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// DashboardKeyMap defines key bindings for the dashboard view
type DashboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Toggle    key.Binding
	Grab      key.Binding
	Drop      key.Binding
	Cancel    key.Binding
	Rename    key.Binding
	NewFolder key.Binding
	Add       key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Open      key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "collapse"),
	),
	Grab: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Drop: key.NewBinding(
		key.WithKeys("enter", "p"),
		key.WithHelp("enter/p", "drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new folder"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add bookmark"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy URL"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Reconciler is the part of the reconciliation loop the dashboard drives
type Reconciler interface {
	Trigger(ctx context.Context)
	SetCollapsed(id string, collapsed bool)
}

// DashboardOptions wires the dashboard to the rest of the application
type DashboardOptions struct {
	Gateway   *commands.Gateway
	Loop      Reconciler
	Opener    ports.URLOpener
	Clipboard func(text string) error
	HideEmpty bool
}

// DashboardModel is the model for the bookmark dashboard. It only displays
// what the reconciliation loop hands it; gestures go to the gateway.
type DashboardModel struct {
	ViewState
	gw        *commands.Gateway
	drag      *commands.DragDrop
	loop      Reconciler
	opener    ports.URLOpener
	copy      func(string) error
	hideEmpty bool

	projection *domain.Projection
	collapsed  domain.CollapsedSet
	rows       []Row
	pager      *Paginator
	loaded     bool
	focusID    string

	dropTarget string
	dropOK     bool
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(opts DashboardOptions) *DashboardModel {
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	return &DashboardModel{
		gw:        opts.Gateway,
		drag:      commands.NewDragDrop(opts.Gateway),
		loop:      opts.Loop,
		opener:    opts.Opener,
		copy:      copyFn,
		hideEmpty: opts.HideEmpty,
		collapsed: make(domain.CollapsedSet),
		pager:     NewPaginator(20),
	}
}

// RenderMsg carries a freshly reconciled projection into the program
type RenderMsg struct {
	Projection *domain.Projection
	Collapsed  domain.CollapsedSet
}

// NoticeMsg carries a notification into the program
type NoticeMsg struct {
	Text  string
	IsErr bool
}

// OperationDoneMsg reports the outcome of a gateway call. FocusID names a
// node to select once it appears on the dashboard.
type OperationDoneMsg struct {
	Message string
	Err     error
	FocusID string
}

// OpenFormMsg asks the app to show the input form
type OpenFormMsg struct {
	Mode        FormMode
	TargetID    string
	TargetTitle string
}

// SwitchToHelpMsg asks the app to show the help view
type SwitchToHelpMsg struct{}

// SwitchToDashboardMsg asks the app to return to the dashboard
type SwitchToDashboardMsg struct{}

type dropHintMsg struct {
	target string
	ok     bool
}

// Init initializes the dashboard
func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// SetProjection replaces the displayed dashboard, keeping the selection on
// the same node when it is still present. The collapsed snapshot is only
// adopted on the first render: afterwards the dashboard's own set, which
// every toggle updates first, wins over a snapshot taken before a toggle.
func (m *DashboardModel) SetProjection(p *domain.Projection, collapsed domain.CollapsedSet) {
	selected := m.Selected().NodeID()
	if !m.loaded {
		m.collapsed = collapsed.Clone()
	}
	m.collapsed.Prune(p)
	m.projection = p
	m.loaded = true

	if m.drag.Active() && !projectionContains(p, m.drag.Source()) {
		m.drag.Cancel()
		m.SetStatus("Moved item no longer exists", true)
	}

	m.rebuild()
	switch {
	case m.focusID != "" && FindRow(m.rows, m.focusID) >= 0:
		m.pager.SetCursor(FindRow(m.rows, m.focusID))
		m.focusID = ""
	case FindRow(m.rows, selected) >= 0:
		m.pager.SetCursor(FindRow(m.rows, selected))
	}
}

func (m *DashboardModel) rebuild() {
	m.rows = BuildRows(m.projection, m.collapsed, m.hideEmpty)
	m.pager.SetTotal(len(m.rows))
}

func projectionContains(p *domain.Projection, id string) bool {
	if p.Has(id) {
		return true
	}
	for _, f := range p.Folders {
		for _, it := range f.Items {
			if it.ID == id {
				return true
			}
		}
	}
	for _, it := range p.Uncategorized {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Rows returns the lines currently laid out
func (m *DashboardModel) Rows() []Row {
	return m.rows
}

// Selected returns the row under the cursor
func (m *DashboardModel) Selected() Row {
	i := m.pager.Cursor()
	if i >= 0 && i < len(m.rows) {
		return m.rows[i]
	}
	return Row{Kind: RowEmpty}
}

// Select moves the cursor to the row standing for id
func (m *DashboardModel) Select(id string) bool {
	i := FindRow(m.rows, id)
	if i < 0 {
		return false
	}
	m.pager.SetCursor(i)
	return true
}

// Grabbing reports whether a move gesture is in progress
func (m *DashboardModel) Grabbing() bool {
	return m.drag.Active()
}

// FocusOnNext selects id after the render that first shows it
func (m *DashboardModel) FocusOnNext(id string) {
	if id != "" && !m.Select(id) {
		m.focusID = id
	}
}

// dropTargetID returns the node a drop on the selected row is aimed at.
// Folder rows and a folder's "(empty)" placeholder stand for the folder and
// bookmark rows for the bookmark itself, which the gateway refuses. Only the
// Uncategorized header and its placeholder resolve to the default container.
func (m *DashboardModel) dropTargetID() string {
	r := m.Selected()
	switch r.Kind {
	case RowFolder:
		return r.FolderID
	case RowItem:
		return r.Item.ID
	case RowEmpty:
		if r.FolderID != "" {
			return r.FolderID
		}
	}
	return m.gw.DefaultParent()
}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case RenderMsg:
		m.SetProjection(msg.Projection, msg.Collapsed)
		if m.drag.Active() {
			return m, m.hint()
		}
		return m, nil

	case NoticeMsg:
		m.Notify(msg)
		return m, nil

	case dropHintMsg:
		m.dropTarget = msg.target
		m.dropOK = msg.ok
		return m, nil

	case tea.KeyMsg:
		if m.drag.Active() {
			return m, m.updateGrab(msg)
		}
		return m, m.updateBrowse(msg)
	}

	return m, nil
}

func (m *DashboardModel) updateGrab(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, DashboardKeys.Cancel):
		m.drag.Cancel()
		m.SetStatus("Move cancelled", false)
		return nil

	case key.Matches(msg, DashboardKeys.Drop):
		return m.drop()

	case key.Matches(msg, DashboardKeys.Up):
		m.pager.CursorUp()
		return m.hint()

	case key.Matches(msg, DashboardKeys.Down):
		m.pager.CursorDown()
		return m.hint()

	case key.Matches(msg, DashboardKeys.PageUp):
		m.pager.PageUp()
		return m.hint()

	case key.Matches(msg, DashboardKeys.PageDown):
		m.pager.PageDown()
		return m.hint()

	case key.Matches(msg, DashboardKeys.Quit):
		return tea.Quit
	}
	return nil
}

func (m *DashboardModel) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	m.ClearStatus()
	row := m.Selected()

	switch {
	case key.Matches(msg, DashboardKeys.Quit):
		return tea.Quit

	case key.Matches(msg, DashboardKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, DashboardKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, DashboardKeys.PageUp):
		m.pager.PageUp()

	case key.Matches(msg, DashboardKeys.PageDown):
		m.pager.PageDown()

	case key.Matches(msg, DashboardKeys.Toggle):
		m.toggle(row)

	case key.Matches(msg, DashboardKeys.Grab):
		return m.grab(row)

	case key.Matches(msg, DashboardKeys.Rename):
		if row.Kind != RowFolder {
			m.SetStatus("Select a folder to rename", true)
			return nil
		}
		return emit(OpenFormMsg{Mode: FormRename, TargetID: row.FolderID, TargetTitle: row.Title})

	case key.Matches(msg, DashboardKeys.NewFolder):
		return emit(OpenFormMsg{Mode: FormNewFolder})

	case key.Matches(msg, DashboardKeys.Add):
		return emit(OpenFormMsg{Mode: FormAddBookmark, TargetID: row.FolderID, TargetTitle: m.folderTitle(row.FolderID)})

	case key.Matches(msg, DashboardKeys.Delete):
		return m.remove(row)

	case key.Matches(msg, DashboardKeys.Copy):
		if row.Kind != RowItem {
			return nil
		}
		if err := m.copy(row.Item.URL); err != nil {
			m.SetStatus(fmt.Sprintf("Copy failed: %v", err), true)
			return nil
		}
		m.SetStatus("Copied "+row.Item.URL, false)

	case key.Matches(msg, DashboardKeys.Open):
		if row.Kind != RowItem || m.opener == nil {
			return nil
		}
		return m.open(row.Item.URL)

	case key.Matches(msg, DashboardKeys.Refresh):
		m.loop.Trigger(context.Background())
		m.SetStatus("Refreshing…", false)

	case key.Matches(msg, DashboardKeys.Help):
		return emit(SwitchToHelpMsg{})
	}
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *DashboardModel) folderTitle(id string) string {
	if id == "" {
		return "Uncategorized (" + containerTitle(m.gw.DefaultParent()) + ")"
	}
	if f, ok := m.projection.Folder(id); ok {
		return f.Title
	}
	return ""
}

func containerTitle(id string) string {
	for _, b := range domain.BuiltinContainers {
		if b.ID == id {
			return b.Title
		}
	}
	return id
}

// toggle collapses or expands the folder the row belongs to
func (m *DashboardModel) toggle(row Row) {
	if row.FolderID == "" {
		return
	}
	id := row.FolderID
	if m.collapsed.Has(id) {
		delete(m.collapsed, id)
	} else {
		m.collapsed[id] = true
	}
	m.loop.SetCollapsed(id, m.collapsed.Has(id))
	m.rebuild()
	m.Select(id)
}

func (m *DashboardModel) grab(row Row) tea.Cmd {
	id := row.NodeID()
	if id == "" {
		return nil
	}
	if err := m.drag.Start(id); err != nil {
		m.SetStatus(err.Error(), true)
		return nil
	}
	m.dropTarget = ""
	m.dropOK = false
	return m.hint()
}

// hint evaluates the drop target under the cursor without touching the store
func (m *DashboardModel) hint() tea.Cmd {
	gesture, target := m.drag.Detach(), m.dropTargetID()
	return func() tea.Msg {
		return dropHintMsg{target: target, ok: gesture.Over(context.Background(), target)}
	}
}

func (m *DashboardModel) drop() tea.Cmd {
	gesture, target := m.drag.Detach(), m.dropTargetID()
	source := gesture.Source()
	m.drag.Cancel()
	m.dropTarget = ""
	m.focusID = source
	return func() tea.Msg {
		res, err := gesture.Drop(context.Background(), target)
		if err != nil {
			return OperationDoneMsg{Err: err}
		}
		return OperationDoneMsg{Message: res.Message, FocusID: source}
	}
}

func (m *DashboardModel) remove(row Row) tea.Cmd {
	id := row.NodeID()
	if id == "" {
		return nil
	}
	gw := m.gw
	return func() tea.Msg {
		res, err := gw.Remove(context.Background(), id)
		if err != nil {
			return OperationDoneMsg{Err: err}
		}
		return OperationDoneMsg{Message: res.Message}
	}
}

func (m *DashboardModel) open(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return NoticeMsg{Text: fmt.Sprintf("Open failed: %v", err), IsErr: true}
		}
		return NoticeMsg{Text: "Opened " + url}
	}
}

// SetSize updates the view dimensions and the visible window
func (m *DashboardModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// Title, subtitle, status, message and help lines plus padding
	m.pager.SetPageSize(height - 10)
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading...")
	}

	v := NewViewBuilder()
	v.Line(styles.Title.Render("Shelfmark"))
	v.Subtitle(fmt.Sprintf("%d folders • %d bookmarks", len(m.projection.Folders), m.projection.ItemCount()))

	if m.drag.Active() {
		v.Line(styles.Grabbed.Render("Moving " + m.sourceTitle() + ": pick a folder and press enter, esc to cancel"))
		v.BlankLine()
	}

	start, end := m.pager.VisibleRange()
	if start > 0 {
		v.Muted(fmt.Sprintf("  ↑ %d more", start))
	}
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.rows[i], i == m.pager.Cursor()))
	}
	if end < len(m.rows) {
		v.Muted(fmt.Sprintf("  ↓ %d more", len(m.rows)-end))
	}
	v.BlankLine()

	v.Status(m.Status)

	if m.drag.Active() {
		v.Help(DashboardKeys.Up, DashboardKeys.Down, DashboardKeys.Drop, DashboardKeys.Cancel)
	} else {
		v.Help(DashboardKeys.Toggle, DashboardKeys.Grab, DashboardKeys.Add, DashboardKeys.NewFolder,
			DashboardKeys.Rename, DashboardKeys.Delete, DashboardKeys.Help, DashboardKeys.Quit)
	}
	return v.String()
}

func (m *DashboardModel) sourceTitle() string {
	i := FindRow(m.rows, m.drag.Source())
	if i < 0 {
		return m.drag.Source()
	}
	return m.rows[i].Title
}

func (m *DashboardModel) renderRow(row Row, selected bool) string {
	var prefix, text string
	switch row.Kind {
	case RowFolder:
		prefix = styles.Expanded
		if m.collapsed.Has(row.FolderID) {
			prefix = styles.Collapsed
		}
		text = row.Title
	case RowUncategorized:
		prefix = styles.Leaf
		text = row.Title
	case RowItem:
		prefix = "    "
		text = row.Title
	case RowEmpty:
		prefix = "    "
		text = "(empty)"
	}

	if m.drag.Active() && row.NodeID() == m.drag.Source() {
		text = "✥ " + text
	}

	var styled string
	switch {
	case selected && m.drag.Active():
		if m.dropTarget == m.dropTargetID() && m.dropOK {
			styled = styles.DropAllowed.Render(text)
		} else {
			styled = styles.DropRefused.Render(text)
		}
	case selected:
		styled = styles.Selected.Render(text)
	case row.Kind == RowFolder:
		styled = styles.FolderHeader.Render(text)
	case row.Kind == RowUncategorized:
		styled = styles.UncategorizedHeader.Render(text)
	case row.Kind == RowEmpty:
		styled = styles.Empty.Render(text)
	default:
		styled = styles.Item.Render(text)
	}

	var suffix []string
	switch row.Kind {
	case RowFolder, RowUncategorized:
		suffix = append(suffix, styles.MutedText.Render(fmt.Sprintf("(%d)", row.Count)))
		if row.Path != "" {
			suffix = append(suffix, styles.FolderPath.Render("in "+row.Path))
		}
	case RowItem:
		width := 60
		if m.Width > 0 {
			width = max(m.Width-len([]rune(row.Title))-12, 10)
		}
		suffix = append(suffix, styles.ItemURL.Render(Truncate(row.Item.URL, width)))
	}

	line := styles.Indicator.Render(prefix) + styled
	if len(suffix) > 0 {
		line += " " + strings.Join(suffix, " ")
	}
	return line
}
