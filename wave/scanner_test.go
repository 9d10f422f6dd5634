package wave

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestScannerUnquotedCells(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", "hello", "hello"},
		{"Empty", "", ""},
		{"StopsAtComma", "a,b", "a"},
		{"StopsAtNewline", "a\nb", "a"},
		{"StopsAtCarriageReturn", "a\r\nb", "a"},
		{"Spaces", "Cash on Hand", "Cash on Hand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner([]byte(tt.input))
			cell, err := s.Cell()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cell.Text)
			assert.False(t, cell.Quoted)
		})
	}
}

func TestScannerQuotedCells(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", `"hello"`, "hello"},
		{"EmbeddedComma", `"a,b"`, "a,b"},
		{"EmbeddedNewline", "\"a\nb\"", "a\nb"},
		{"EscapedQuote", `"say ""hi"""`, `say "hi"`},
		{"Empty", `""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner([]byte(tt.input))
			cell, err := s.Cell()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cell.Text)
			assert.True(t, cell.Quoted)
		})
	}
}

func TestScannerUnterminatedQuote(t *testing.T) {
	s := NewScanner([]byte(`"never closed`))
	_, err := s.Cell()

	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 0, syntaxErr.Pos.Offset)
	assert.Equal(t, "end of input", syntaxErr.Found)
}

func TestScannerTrailingBytesAfterQuote(t *testing.T) {
	s := NewScanner([]byte(`"a"b`))
	_, err := s.Cell()

	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 3, syntaxErr.Pos.Offset)
}

func TestScannerSpans(t *testing.T) {
	source := []byte(`a,"b,c"`)
	s := NewScanner(source)

	first, err := s.Cell()
	assert.NoError(t, err)
	assert.Equal(t, Span{Start: 0, End: 1}, first.Span)

	assert.NoError(t, s.Comma())

	second, err := s.Cell()
	assert.NoError(t, err)
	// The span covers the raw cell including quotes.
	assert.Equal(t, Span{Start: 2, End: 7}, second.Span)
	assert.Equal(t, `"b,c"`, second.Span.Text(source))
}

func TestScannerRowEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"LineFeed", "a\n"},
		{"CarriageReturnLineFeed", "a\r\n"},
		{"EndOfInput", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner([]byte(tt.input))
			_, err := s.Cell()
			assert.NoError(t, err)
			assert.NoError(t, s.RowEnd())
			assert.True(t, s.EOF())
		})
	}
}

func TestScannerBareCarriageReturnIsNotARowEnd(t *testing.T) {
	s := NewScanner([]byte("a\rb"))
	_, err := s.Cell()
	assert.NoError(t, err)
	assert.Error(t, s.RowEnd())
}

func TestScannerPositionTracking(t *testing.T) {
	s := NewScanner([]byte("ab\ncd"))
	_, err := s.Cell()
	assert.NoError(t, err)
	assert.NoError(t, s.RowEnd())

	pos := s.Pos()
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
	assert.Equal(t, 3, pos.Offset)
}
