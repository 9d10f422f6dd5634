package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wavecount-dev/wavecount/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders import errors with terminal styling and a
// source excerpt. Styling is dropped when stderr is not a terminal.
type ErrorRenderer struct {
	formatter *errors.TextFormatter
	styled    bool
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{
		formatter: errors.NewTextFormatter(errors.WithSource(source)),
		styled:    stderrIsTerminal(),
	}
}

// Render formats a single error, with excerpt and caret when the error
// carries a source position.
func (r *ErrorRenderer) Render(err error) string {
	if !r.styled {
		return r.formatter.Format(err)
	}
	return r.formatter.FormatStyled(err, &errors.StyleSet{
		Message: func(s string) string { return errorStyle.Render(s) },
		Context: func(s string) string { return errContextStyle.Render(s) },
		Caret:   func(s string) string { return errCaretStyle.Render(s) },
	})
}
