package wave

// Scanner implements the CSV cell tokenizer for Wave ledger exports.
//
// It recognizes exactly two things: one cell (quoted or unquoted) and one
// row terminator. It has no knowledge of ledger semantics; the row grammars
// in header.go and account.go are built on top of it.
//
// Cells store their decoded text together with the byte span they were
// scanned from, so every later error can point back at the source.

// Scanner tokenizes one export buffer. The whole input is held in memory;
// the scanner is a cursor over it.
type Scanner struct {
	source []byte
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
}

// NewScanner creates a scanner over the given source buffer.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Cell is one decoded CSV cell. Text carries the unescaped content;
// Span covers the raw cell including any surrounding quotes.
type Cell struct {
	Text   string
	Quoted bool
	Span   Span
	Pos    Position
}

// IsEmpty reports whether the cell decoded to the empty string.
// Both a zero-width cell and an explicit "" are empty.
func (c Cell) IsEmpty() bool {
	return c.Text == ""
}

// Pos returns the current source position of the scanner.
func (s *Scanner) Pos() Position {
	return Position{Offset: s.pos, Line: s.line, Column: s.column}
}

// EOF reports whether the scanner has consumed all input.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.source)
}

// Source returns the underlying buffer. Used by diagnostics to render
// the span of an error.
func (s *Scanner) Source() []byte {
	return s.source
}

// Cell scans one cell. The delimiter after the cell (comma or row end)
// is not consumed; a cell is terminated by peeking at it.
func (s *Scanner) Cell() (Cell, error) {
	if s.peek() == '"' {
		return s.quotedCell()
	}
	return s.unquotedCell(), nil
}

// unquotedCell scans a run of bytes excluding comma and line breaks.
// A zero-length run is a valid (empty) cell.
func (s *Scanner) unquotedCell() Cell {
	start := s.Pos()
	for !s.EOF() {
		ch := s.peek()
		if ch == ',' || ch == '\r' || ch == '\n' {
			break
		}
		s.advance()
	}
	span := Span{Start: start.Offset, End: s.pos}
	return Cell{
		Text: string(s.source[span.Start:span.End]),
		Span: span,
		Pos:  start,
	}
}

// quotedCell scans a double-quoted cell. An embedded quote is encoded as
// "" and the content may contain commas and line breaks verbatim.
func (s *Scanner) quotedCell() (Cell, error) {
	start := s.Pos()
	s.advance() // opening quote

	var text []byte
	for {
		if s.EOF() {
			return Cell{}, &SyntaxError{
				Pos:      start,
				Span:     Span{Start: start.Offset, End: s.pos},
				Expected: `closing '"'`,
				Found:    "end of input",
			}
		}
		ch := s.advance()
		if ch != '"' {
			text = append(text, ch)
			continue
		}
		if s.peek() == '"' {
			s.advance()
			text = append(text, '"')
			continue
		}
		break // closing quote
	}

	// The cell must be immediately followed by a delimiter; trailing bytes
	// after the closing quote are malformed quoting.
	if !s.EOF() {
		if ch := s.peek(); ch != ',' && ch != '\r' && ch != '\n' {
			return Cell{}, &SyntaxError{
				Pos:      s.Pos(),
				Span:     Span{Start: s.pos, End: s.pos + 1},
				Expected: "cell delimiter after closing quote",
				Found:    quoteByte(ch),
			}
		}
	}

	span := Span{Start: start.Offset, End: s.pos}
	return Cell{
		Text:   string(text),
		Quoted: true,
		Span:   span,
		Pos:    start,
	}, nil
}

// Comma consumes a single comma separator.
func (s *Scanner) Comma() error {
	if s.EOF() || s.peek() != ',' {
		return s.expectError("','")
	}
	s.advance()
	return nil
}

// RowEnd consumes a row terminator: \n, \r\n, or end of input.
func (s *Scanner) RowEnd() error {
	if s.EOF() {
		return nil
	}
	switch s.peek() {
	case '\n':
		s.advance()
		return nil
	case '\r':
		if s.pos+1 < len(s.source) && s.source[s.pos+1] == '\n' {
			s.advance()
			s.advance()
			return nil
		}
	}
	return s.expectError("end of row")
}

// Line consumes the remainder of the current line up to and including its
// terminator, returning the raw text without the terminator. Used for the
// free-text preamble lines, which are not cell-structured.
func (s *Scanner) Line() (string, Position) {
	start := s.Pos()
	for !s.EOF() && s.peek() != '\n' && s.peek() != '\r' {
		s.advance()
	}
	text := string(s.source[start.Offset:s.pos])
	_ = s.RowEnd()
	return text, start
}

// expectError builds a syntax error at the current position.
func (s *Scanner) expectError(expected string) error {
	found := "end of input"
	span := Span{Start: s.pos, End: s.pos}
	if !s.EOF() {
		found = quoteByte(s.peek())
		span.End = s.pos + 1
	}
	return &SyntaxError{
		Pos:      s.Pos(),
		Span:     span,
		Expected: expected,
		Found:    found,
	}
}

func (s *Scanner) peek() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	return s.source[s.pos]
}

func (s *Scanner) advance() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

func quoteByte(ch byte) string {
	switch ch {
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	}
	return "'" + string(ch) + "'"
}
