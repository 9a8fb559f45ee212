package views

// StatusKind says how a status line is styled
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusError
)

// Status is the one-line outcome shown under a view: a notice from the
// reconciliation loop, a gateway result, or a gesture hint.
type Status struct {
	Text string
	Kind StatusKind
}

// ViewState is embedded by every view model for its size and status line
type ViewState struct {
	Width  int
	Height int
	Status Status
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetStatus replaces the status line
func (s *ViewState) SetStatus(text string, isErr bool) {
	kind := StatusInfo
	if isErr {
		kind = StatusError
	}
	if text == "" {
		kind = StatusNone
	}
	s.Status = Status{Text: text, Kind: kind}
}

// Notify shows a notice delivered to the program
func (s *ViewState) Notify(n NoticeMsg) {
	s.SetStatus(n.Text, n.IsErr)
}

// ClearStatus empties the status line
func (s *ViewState) ClearStatus() {
	s.Status = Status{}
}

// StatusErr reports whether the status line shows a failure
func (s *ViewState) StatusErr() bool {
	return s.Status.Kind == StatusError
}
