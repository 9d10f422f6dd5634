// Package errors provides the presentation layer for import errors.
// Parsing and validation errors are structured values carrying source
// positions; this package renders them for different consumers without
// the domain packages knowing anything about formatting.
//
// Two implementations are provided:
//   - TextFormatter: message plus a source excerpt with a caret under
//     the offending cell, for command-line output
//   - JSONFormatter: structured JSON for scripted consumers
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wavecount-dev/wavecount/wave"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string
}

// TextFormatter formats errors with optional source context.
type TextFormatter struct {
	source []byte
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the export source so errors can be rendered with an
// excerpt and caret. Without it only the message is printed.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Errors carrying a source position are
// rendered with a source excerpt when the formatter has the source.
func (tf *TextFormatter) Format(err error) string {
	e, ok := err.(interface {
		GetPosition() wave.Position
		Error() string
	})
	if !ok || tf.source == nil {
		return err.Error()
	}
	return formatWithSourceContext(e.GetPosition(), e.Error(), tf.source, nil)
}

// StyleSet carries the styling hooks the excerpt renderer accepts; all
// fields are optional.
type StyleSet struct {
	Message func(string) string
	Context func(string) string
	Caret   func(string) string
}

// FormatStyled is Format with styling hooks, used by the CLI renderer.
func (tf *TextFormatter) FormatStyled(err error, styles *StyleSet) string {
	e, ok := err.(interface {
		GetPosition() wave.Position
		Error() string
	})
	if !ok || tf.source == nil {
		if styles != nil && styles.Message != nil {
			return styles.Message(err.Error())
		}
		return err.Error()
	}
	return formatWithSourceContext(e.GetPosition(), e.Error(), tf.source, styles)
}

// formatWithSourceContext renders the message, two lines of leading
// context, the offending line, a caret under the error column, and one
// line of trailing context.
func formatWithSourceContext(pos wave.Position, message string, source []byte, styles *StyleSet) string {
	identity := func(s string) string { return s }
	styleMessage, styleContext, styleCaret := identity, identity, identity
	if styles != nil {
		if styles.Message != nil {
			styleMessage = styles.Message
		}
		if styles.Context != nil {
			styleContext = styles.Context
		}
		if styles.Caret != nil {
			styleCaret = styles.Caret
		}
	}

	var buf strings.Builder
	buf.WriteString(styleMessage(message))
	buf.WriteString("\n\n")

	lines := bytes.Split(source, []byte("\n"))

	startLine := pos.Line - 3
	endLine := pos.Line + 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		line := strings.TrimSuffix(string(lines[i]), "\r")
		buf.WriteString("   ")
		buf.WriteString(styleContext(line))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", caretColumn(line, pos.Column)))
			buf.WriteString(styleCaret("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// caretColumn converts a byte column into a display column, so the
// caret lines up under lines containing multi-byte or wide characters.
func caretColumn(line string, column int) int {
	prefix := column - 1
	if prefix > len(line) {
		prefix = len(line)
	}
	return runewidth.StringWidth(line[:prefix])
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON represents a source position in JSON format.
type PositionJSON struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]string),
	}

	if e, ok := err.(interface{ GetPosition() wave.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Offset: pos.Offset,
			Line:   pos.Line,
			Column: pos.Column,
		}
	}

	if e, ok := err.(interface{ GetAccount() string }); ok {
		errJSON.Details["account"] = e.GetAccount()
	}
	if e, ok := err.(interface{ GetDate() time.Time }); ok {
		errJSON.Details["date"] = e.GetDate().Format("2006-01-02")
	}
	if len(errJSON.Details) == 0 {
		errJSON.Details = nil
	}

	return errJSON
}
