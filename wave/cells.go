package wave

import (
	"time"
)

// Typed cell parsers. Each reads exactly one cell from the scanner and
// converts it to a typed value, or a typed "empty" for optional cells.
// They know nothing about row shapes; the row grammars compose them.

// anyCell reads one cell with arbitrary content.
func anyCell(s *Scanner) (Cell, error) {
	return s.Cell()
}

// emptyCell reads one cell and requires it to be empty.
func emptyCell(s *Scanner) error {
	return cellTag(s, "")
}

// cellTag reads one cell and requires its decoded text to equal expected
// exactly. Used for fixed labels like "Starting Balance".
func cellTag(s *Scanner, expected string) error {
	cell, err := s.Cell()
	if err != nil {
		return err
	}
	if cell.Text != expected {
		want := `"` + expected + `"`
		if expected == "" {
			want = "empty cell"
		}
		return &SyntaxError{
			Pos:      cell.Pos,
			Span:     cell.Span,
			Expected: want,
			Found:    quoteCellText(cell.Text),
		}
	}
	return nil
}

// amountCell reads one cell and parses it as a monetary amount.
func amountCell(s *Scanner) (Amount, Cell, error) {
	cell, err := s.Cell()
	if err != nil {
		return Amount{}, cell, err
	}
	amount, err := parseAmount(cell)
	return amount, cell, err
}

// amountCellOpt is amountCell but accepts an empty cell as absent. Used
// for the debit/credit columns, exactly one of which is populated per row.
func amountCellOpt(s *Scanner) (*Amount, Cell, error) {
	cell, err := s.Cell()
	if err != nil {
		return nil, cell, err
	}
	if cell.IsEmpty() {
		return nil, cell, nil
	}
	amount, err := parseAmount(cell)
	if err != nil {
		return nil, cell, err
	}
	return &amount, cell, nil
}

// dateCell reads one cell and parses it as a strict YYYY-MM-DD date.
func dateCell(s *Scanner) (time.Time, error) {
	cell, err := s.Cell()
	if err != nil {
		return time.Time{}, err
	}
	date, ok := parseDate(cell.Text)
	if !ok {
		return time.Time{}, &SyntaxError{
			Pos:      cell.Pos,
			Span:     cell.Span,
			Expected: "date (YYYY-MM-DD)",
			Found:    quoteCellText(cell.Text),
		}
	}
	return date, nil
}

// parseDate parses a date with exactly 4-2-2 digits. time.Parse alone is
// too lenient: it accepts unpadded fields like "1980-5-14", which the
// export never produces, so the shape is checked first. Calendar validity
// (e.g. rejecting Feb 29 outside leap years) is left to time.Parse.
func parseDate(text string) (time.Time, bool) {
	if len(text) != 10 || text[4] != '-' || text[7] != '-' {
		return time.Time{}, false
	}
	for _, i := range [...]int{0, 1, 2, 3, 5, 6, 8, 9} {
		if text[i] < '0' || text[i] > '9' {
			return time.Time{}, false
		}
	}
	date, err := time.Parse("2006-01-02", text)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
