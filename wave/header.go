package wave

import (
	"strings"
	"time"
)

// ColumnSchema selects which of the two known export layouts the
// document uses. It is determined once, from the column header row, and
// every subsequent row is parsed according to it.
type ColumnSchema int

const (
	// GlobalLedgerCurrency: no currency columns; every amount is in the
	// ledger currency.
	GlobalLedgerCurrency ColumnSchema = iota

	// PerAccountCurrency: each monetary column is reported twice, once
	// in the ledger currency and once in the account's own currency,
	// with explicit currency code columns.
	PerAccountCurrency
)

func (c ColumnSchema) String() string {
	if c == PerAccountCurrency {
		return "per-account currency"
	}
	return "global ledger currency"
}

// Header is the parsed export preamble.
type Header struct {
	LedgerName string
	StartDate  time.Time
	EndDate    time.Time
	Schema     ColumnSchema
}

const (
	titleLine      = "Account Transactions"
	reportTypeLine = "Report Type: Accrual (Paid & Unpaid)"
	dateRangeTag   = "Date Range: "
)

// headerColumns is the column header row shared by both schemas.
var headerColumns = []string{
	"ACCOUNT NUMBER",
	"DATE",
	"DESCRIPTION",
	"DEBIT (In Business Currency)",
	"CREDIT (In Business Currency)",
	"BALANCE (In Business Currency)",
}

// headerColumnsPerAccount extends headerColumns for the dual-currency
// layout. The empty string is a genuinely empty column in the export.
var headerColumnsPerAccount = append(headerColumns[:len(headerColumns):len(headerColumns)],
	"Business Currency",
	"",
	"DEBIT (In Account Currency)",
	"CREDIT (In Account Currency)",
	"BALANCE (In Account Currency)",
	"Account Currency",
)

// parseHeader consumes the fixed preamble: title, ledger name, date
// range, report type, and the column header row that determines the
// schema for the rest of the document.
func parseHeader(s *Scanner) (*Header, error) {
	if err := lineTag(s, titleLine); err != nil {
		return nil, err
	}

	name, _ := s.Line()

	rangeLine, rangePos := s.Line()
	start, end, ok := parseDateRange(rangeLine)
	if !ok {
		return nil, &SyntaxError{
			Pos:      rangePos,
			Span:     Span{Start: rangePos.Offset, End: rangePos.Offset + len(rangeLine)},
			Expected: `"Date Range: <YYYY-MM-DD> to <YYYY-MM-DD>"`,
			Found:    quoteCellText(rangeLine),
		}
	}

	if err := lineTag(s, reportTypeLine); err != nil {
		return nil, err
	}

	schema, err := parseHeaderRow(s)
	if err != nil {
		return nil, err
	}

	return &Header{
		LedgerName: name,
		StartDate:  start,
		EndDate:    end,
		Schema:     schema,
	}, nil
}

// parseHeaderRow reads the column header row as plain cells and matches
// the sequence against the two known layouts. This is the single point
// of schema dispatch; no schema information is re-derived from later rows.
func parseHeaderRow(s *Scanner) (ColumnSchema, error) {
	pos := s.Pos()
	cells, err := rowCells(s)
	if err != nil {
		return 0, err
	}
	if equalStrings(cells, headerColumns) {
		return GlobalLedgerCurrency, nil
	}
	if equalStrings(cells, headerColumnsPerAccount) {
		return PerAccountCurrency, nil
	}
	return 0, &SchemaError{Pos: pos, Header: cells}
}

// rowCells reads all cells of the current row including its terminator.
func rowCells(s *Scanner) ([]string, error) {
	var cells []string
	for {
		cell, err := s.Cell()
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell.Text)
		if s.EOF() || s.peek() == '\n' || s.peek() == '\r' {
			if err := s.RowEnd(); err != nil {
				return nil, err
			}
			return cells, nil
		}
		if err := s.Comma(); err != nil {
			return nil, err
		}
	}
}

// lineTag consumes one full line and requires it to equal expected.
func lineTag(s *Scanner, expected string) error {
	line, pos := s.Line()
	if line != expected {
		return &SyntaxError{
			Pos:      pos,
			Span:     Span{Start: pos.Offset, End: pos.Offset + len(line)},
			Expected: `"` + expected + `"`,
			Found:    quoteCellText(line),
		}
	}
	return nil
}

// parseDateRange parses "Date Range: <date> to <date>".
func parseDateRange(line string) (start, end time.Time, ok bool) {
	rest, found := strings.CutPrefix(line, dateRangeTag)
	if !found {
		return time.Time{}, time.Time{}, false
	}
	from, to, found := strings.Cut(rest, " to ")
	if !found {
		return time.Time{}, time.Time{}, false
	}
	start, ok = parseDate(from)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok = parseDate(to)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
