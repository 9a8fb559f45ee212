package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"shelfmark/internal/adapters/tui/styles"
)

// RenderHelpLine renders key bindings as "key desc • key desc"
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderStatus styles a status line; empty statuses render as nothing
func RenderStatus(s Status) string {
	switch s.Kind {
	case StatusError:
		return styles.ErrorMsg.Render(s.Text)
	case StatusInfo:
		return styles.Success.Render(s.Text)
	}
	return ""
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s", styles.InputLabel.Render(label+":"), value)
}

// Truncate shortens s to at most width runes, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// ViewBuilder assembles a screen line by line inside the app frame
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the screen title and a blank line
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.Line(styles.Title.Render(title)).BlankLine()
}

// Subtitle adds a subtitle and a blank line
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.Line(styles.Subtitle.Render(subtitle)).BlankLine()
}

// Section adds a labelled block heading
func (v *ViewBuilder) Section(label string) *ViewBuilder {
	return v.Line(styles.InputLabel.Render(label))
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteByte('\n')
	return v
}

// BlankLine adds an empty line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteByte('\n')
	return v
}

// Muted adds a line of secondary text
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Status adds the status line followed by a blank line, if there is one
func (v *ViewBuilder) Status(s Status) *ViewBuilder {
	if s.Kind == StatusNone {
		return v
	}
	return v.Line(RenderStatus(s)).BlankLine()
}

// Help adds the key binding line
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds text as is
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the screen wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
