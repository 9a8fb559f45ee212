package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"shelfmark/internal/application/commands"
)

// FormMode selects what the form collects and which gateway call it makes
type FormMode int

const (
	FormNewFolder FormMode = iota
	FormRename
	FormAddBookmark
)

func (m FormMode) title() string {
	switch m {
	case FormRename:
		return "Rename Folder"
	case FormAddBookmark:
		return "Add Bookmark"
	default:
		return "New Folder"
	}
}

func (m FormMode) submitText() string {
	switch m {
	case FormRename:
		return "rename"
	case FormAddBookmark:
		return "add"
	default:
		return "create"
	}
}

// FormModel collects text for rename, new-folder and add-bookmark gestures
type FormModel struct {
	ViewState
	gw          *commands.Gateway
	mode        FormMode
	targetID    string
	targetTitle string
	form        *InputForm
}

// NewFormModel creates a form bound to the mutation gateway
func NewFormModel(gw *commands.Gateway) *FormModel {
	return &FormModel{gw: gw}
}

// Open prepares the form. targetID is the parent folder for new folders and
// bookmarks (empty for the default container) and the folder being renamed
// for renames.
func (m *FormModel) Open(mode FormMode, targetID, targetTitle string) tea.Cmd {
	m.mode = mode
	m.targetID = targetID
	m.targetTitle = targetTitle
	m.ClearStatus()

	switch mode {
	case FormAddBookmark:
		m.form = NewInputForm(
			NewInputField("URL", "https://", 2048),
			NewInputField("Title", "optional, defaults to the URL", 200),
		)
	case FormRename:
		m.form = NewInputForm(NewInputField("Name", "Folder name", 200))
		m.form.SetValue(0, targetTitle)
		m.form.Fields[0].Input.CursorEnd()
	default:
		m.form = NewInputForm(NewInputField("Name", "Folder name", 200))
	}
	return m.form.Init()
}

// Mode returns the current form mode
func (m *FormModel) Mode() FormMode {
	return m.mode
}

// Init initializes the form view
func (m *FormModel) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update handles messages for the form view
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}
	if m.form == nil {
		return m, nil
	}

	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		return m, func() tea.Msg { return SwitchToDashboardMsg{} }
	case FormSubmit:
		return m, m.submit()
	}
	return m, cmd
}

func (m *FormModel) submit() tea.Cmd {
	mode, target := m.mode, m.targetID
	first, second := m.form.Value(0), m.form.Value(1)
	gw := m.gw

	return func() tea.Msg {
		ctx := context.Background()
		switch mode {
		case FormRename:
			res, err := gw.RenameFolder(ctx, target, first)
			if err != nil {
				return OperationDoneMsg{Err: err}
			}
			return OperationDoneMsg{Message: res.Message}
		case FormAddBookmark:
			res, err := gw.AddItem(ctx, target, first, second)
			if err != nil {
				return OperationDoneMsg{Err: err}
			}
			return OperationDoneMsg{Message: res.Message, FocusID: res.Item.ID}
		default:
			res, err := gw.CreateFolder(ctx, first, target)
			if err != nil {
				return OperationDoneMsg{Err: err}
			}
			return OperationDoneMsg{Message: res.Message, FocusID: res.Folder.ID}
		}
	}
}

// View renders the form view
func (m *FormModel) View() string {
	v := NewViewBuilder().Title(m.mode.title())
	if m.targetTitle != "" {
		label := "In"
		if m.mode == FormRename {
			label = "Folder"
		}
		v.Line(RenderLabelValue(label, m.targetTitle)).BlankLine()
	}
	if m.form != nil {
		for i := range m.form.Fields {
			v.Line(m.form.RenderField(i))
		}
		v.BlankLine()
	}
	v.Status(m.Status)
	if m.form != nil {
		v.Raw(m.form.RenderHelp(m.mode.submitText()))
	}
	return v.String()
}
