package wave

import "fmt"

// Position represents a location in the export source.
type Position struct {
	Offset int // Byte offset
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Span represents a byte range in the export source.
// Attached to cells and errors so diagnostics can point at the exact input.
type Span struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Text extracts the source text for this span (zero-copy slice).
// Returns empty string if the span is invalid.
func (s Span) Text(source []byte) string {
	if s.Start < 0 || s.End < s.Start || s.End > len(source) {
		return ""
	}
	return string(source[s.Start:s.End])
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
