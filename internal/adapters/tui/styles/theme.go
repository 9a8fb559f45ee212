package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Link      = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Dashboard row styles
	FolderHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	FolderPath = lipgloss.NewStyle().
			Foreground(Muted)

	UncategorizedHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(Warning)

	Item = lipgloss.NewStyle()

	ItemURL = lipgloss.NewStyle().
		Foreground(Link)

	Empty = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Drag and drop
	Grabbed = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	DropAllowed = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(Black).
			Bold(true)

	DropRefused = lipgloss.NewStyle().
			Background(Error).
			Foreground(White)

	// Folder indicators
	Indicator = lipgloss.NewStyle().Foreground(Muted)
	Expanded  = "▼ "
	Collapsed = "▶ "
	Leaf      = "  "

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)
