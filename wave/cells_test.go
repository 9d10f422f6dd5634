package wave

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDateCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"Valid", "2021-05-14", "2021-05-14", true},
		{"EndOfFebruary", "2021-02-28", "2021-02-28", true},
		{"LeapDay", "2020-02-29", "2020-02-29", true},
		{"LeapDayNonLeapYear", "2021-02-29", "", false},
		{"Day30OfFebruary", "2021-02-30", "", false},
		{"Month13", "2021-13-01", "", false},
		{"UnpaddedMonth", "1980-5-14", "", false},
		{"UnpaddedDay", "1980-05-4", "", false},
		{"TwoDigitYear", "80-05-14", "", false},
		{"SlashSeparators", "2021/05/14", "", false},
		{"Empty", "", "", false},
		{"Text", "yesterday", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner([]byte(tt.input))
			date, err := dateCell(s)
			if !tt.valid {
				var syntaxErr *SyntaxError
				assert.True(t, errors.As(err, &syntaxErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, date.Format("2006-01-02"))
		})
	}
}

func TestCellTag(t *testing.T) {
	s := NewScanner([]byte("Starting Balance"))
	assert.NoError(t, cellTag(s, "Starting Balance"))

	s = NewScanner([]byte("Starting balance"))
	err := cellTag(s, "Starting Balance")
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, `"Starting Balance"`, syntaxErr.Expected)
	assert.Equal(t, `"Starting balance"`, syntaxErr.Found)
}

func TestEmptyCell(t *testing.T) {
	s := NewScanner([]byte(",x"))
	assert.NoError(t, emptyCell(s))

	s = NewScanner([]byte("x"))
	assert.Error(t, emptyCell(s))
}

func TestAmountCellOpt(t *testing.T) {
	s := NewScanner([]byte("$1.23"))
	amount, _, err := amountCellOpt(s)
	assert.NoError(t, err)
	assert.NotZero(t, amount)

	s = NewScanner([]byte(",next"))
	amount, cell, err := amountCellOpt(s)
	assert.NoError(t, err)
	assert.Zero(t, amount)
	assert.True(t, cell.IsEmpty())

	s = NewScanner([]byte("garbage"))
	_, _, err = amountCellOpt(s)
	assert.Error(t, err)
}

func TestQuotedAmountCell(t *testing.T) {
	// Amounts with thousand separators are quoted in the export.
	s := NewScanner([]byte(`"$1,234.56"`))
	amount, _, err := amountCell(s)
	assert.NoError(t, err)
	assert.Equal(t, "1234.56", amount.Value.String())
}
