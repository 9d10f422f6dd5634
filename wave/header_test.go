package wave

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const globalHeader = `Account Transactions
Personal
Date Range: 2021-01-01 to 2021-12-31
Report Type: Accrual (Paid & Unpaid)
ACCOUNT NUMBER,DATE,DESCRIPTION,DEBIT (In Business Currency),CREDIT (In Business Currency),BALANCE (In Business Currency)
`

const perAccountHeader = `Account Transactions
Personal
Date Range: 2021-01-01 to 2021-12-31
Report Type: Accrual (Paid & Unpaid)
ACCOUNT NUMBER,DATE,DESCRIPTION,DEBIT (In Business Currency),CREDIT (In Business Currency),BALANCE (In Business Currency),Business Currency,,DEBIT (In Account Currency),CREDIT (In Account Currency),BALANCE (In Account Currency),Account Currency
`

func TestParseHeaderGlobalSchema(t *testing.T) {
	s := NewScanner([]byte(globalHeader))
	header, err := parseHeader(s)
	assert.NoError(t, err)

	assert.Equal(t, "Personal", header.LedgerName)
	assert.Equal(t, "2021-01-01", header.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2021-12-31", header.EndDate.Format("2006-01-02"))
	assert.Equal(t, GlobalLedgerCurrency, header.Schema)
}

func TestParseHeaderPerAccountSchema(t *testing.T) {
	s := NewScanner([]byte(perAccountHeader))
	header, err := parseHeader(s)
	assert.NoError(t, err)
	assert.Equal(t, PerAccountCurrency, header.Schema)
}

func TestParseHeaderWrongTitle(t *testing.T) {
	input := strings.Replace(globalHeader, "Account Transactions", "Account Balances", 1)
	s := NewScanner([]byte(input))
	_, err := parseHeader(s)

	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Pos.Line)
}

func TestParseHeaderMalformedDateRange(t *testing.T) {
	tests := []struct {
		name  string
		line  string
	}{
		{"MissingPrefix", "2021-01-01 to 2021-12-31"},
		{"MissingTo", "Date Range: 2021-01-01 until 2021-12-31"},
		{"BadStartDate", "Date Range: 2021-1-01 to 2021-12-31"},
		{"BadEndDate", "Date Range: 2021-01-01 to 2021-02-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Replace(globalHeader, "Date Range: 2021-01-01 to 2021-12-31", tt.line, 1)
			s := NewScanner([]byte(input))
			_, err := parseHeader(s)

			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, 3, syntaxErr.Pos.Line)
		})
	}
}

func TestParseHeaderWrongReportType(t *testing.T) {
	input := strings.Replace(globalHeader, "Report Type: Accrual (Paid & Unpaid)", "Report Type: Cash Basis (Paid)", 1)
	s := NewScanner([]byte(input))
	_, err := parseHeader(s)
	assert.Error(t, err)
}

func TestParseHeaderUnknownColumnLayout(t *testing.T) {
	input := strings.Replace(globalHeader, "ACCOUNT NUMBER,DATE", "ACCOUNT,DATE", 1)
	s := NewScanner([]byte(input))
	_, err := parseHeader(s)

	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, 5, schemaErr.Pos.Line)
	assert.Equal(t, "ACCOUNT", schemaErr.Header[0])
}

func TestParseDateRange(t *testing.T) {
	start, end, ok := parseDateRange("Date Range: 2019-06-01 to 2019-06-30")
	assert.True(t, ok)
	assert.Equal(t, "2019-06-01", start.Format("2006-01-02"))
	assert.Equal(t, "2019-06-30", end.Format("2006-01-02"))
}
