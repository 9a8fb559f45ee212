package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"shelfmark/internal/adapters/tui/views"
	"shelfmark/internal/application"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewForm
	ViewHelp
	ViewConfirm
)

// App is the main TUI application model
type App struct {
	state     ViewState
	dashboard *views.DashboardModel
	form      *views.FormModel
	help      *views.HelpModel
	confirm   *views.ConfirmationModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(opts views.DashboardOptions) *App {
	return &App{
		state:     ViewDashboard,
		dashboard: views.NewDashboardModel(opts),
		form:      views.NewFormModel(opts.Gateway),
		help:      views.NewHelpModel(),
		confirm:   views.NewConfirmationModel(),
	}
}

// State returns the view on screen
func (a *App) State() ViewState {
	return a.state
}

// Dashboard returns the dashboard view model
func (a *App) Dashboard() *views.DashboardModel {
	return a.dashboard
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		return a, nil

	// The dashboard keeps receiving renders and notices behind other views
	case views.RenderMsg, views.NoticeMsg:
		_, cmd := a.dashboard.Update(msg)
		return a, cmd

	case views.ConfirmRequestMsg:
		a.confirm.Ask(msg)
		a.state = ViewConfirm
		return a, nil

	case views.ConfirmAnsweredMsg:
		if !a.confirm.Pending() {
			a.state = ViewDashboard
		}
		return a, nil

	case views.OpenFormMsg:
		a.state = ViewForm
		return a, a.form.Open(msg.Mode, msg.TargetID, msg.TargetTitle)

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		return a, nil

	case views.OperationDoneMsg:
		return a, a.operationDone(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		a.confirm.CancelAll()
		return a, tea.Quit
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	}

	return a, cmd
}

// operationDone reports a gateway outcome. Validation failures keep the
// form open so the user can correct the input.
func (a *App) operationDone(msg views.OperationDoneMsg) tea.Cmd {
	var verr *application.ValidationError
	switch {
	case msg.Err == nil:
		a.dashboard.SetStatus(msg.Message, false)
		a.dashboard.FocusOnNext(msg.FocusID)
	case errors.Is(msg.Err, application.ErrCancelled):
		a.dashboard.SetStatus("Cancelled", false)
	case a.state == ViewForm && errors.As(msg.Err, &verr):
		a.form.SetStatus(msg.Err.Error(), true)
		return nil
	default:
		a.dashboard.SetStatus(msg.Err.Error(), true)
	}

	if a.state == ViewForm {
		a.state = ViewDashboard
	}
	return nil
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewForm:
		return a.form.View()
	case ViewHelp:
		return a.help.View()
	case ViewConfirm:
		return a.confirm.View()
	default:
		return a.dashboard.View()
	}
}
