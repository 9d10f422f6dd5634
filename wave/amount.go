package wave

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is one monetary cell: a signed decimal plus the currency symbol
// it was written with. The sign may appear before or after the symbol
// ("-$123.45" and "$-123.45" both occur in the wild, depending on the
// export generation); both are accepted.
type Amount struct {
	Value  decimal.Decimal
	Symbol string
}

// Currency returns the currency code for the amount's symbol.
func (a Amount) Currency() string {
	return currencySymbols[a.Symbol]
}

// DualAmount is a monetary figure reported on two currency axes: the
// report's ledger currency and the owning account's currency. Under the
// GlobalLedgerCurrency schema the two axes are identical. When the
// account currency equals the ledger currency the two figures must be
// equal; otherwise they are two independently reported figures for the
// same economic event.
type DualAmount struct {
	Ledger  decimal.Decimal
	Account decimal.Decimal
}

// Single builds a DualAmount whose axes coincide.
func Single(v decimal.Decimal) DualAmount {
	return DualAmount{Ledger: v, Account: v}
}

// Dual builds a DualAmount from two independently reported figures.
func Dual(ledger, account decimal.Decimal) DualAmount {
	return DualAmount{Ledger: ledger, Account: account}
}

func (a DualAmount) Add(b DualAmount) DualAmount {
	return DualAmount{Ledger: a.Ledger.Add(b.Ledger), Account: a.Account.Add(b.Account)}
}

func (a DualAmount) Sub(b DualAmount) DualAmount {
	return DualAmount{Ledger: a.Ledger.Sub(b.Ledger), Account: a.Account.Sub(b.Account)}
}

func (a DualAmount) Neg() DualAmount {
	return DualAmount{Ledger: a.Ledger.Neg(), Account: a.Account.Neg()}
}

func (a DualAmount) IsZero() bool {
	return a.Ledger.IsZero() && a.Account.IsZero()
}

func (a DualAmount) Equal(b DualAmount) bool {
	return a.Ledger.Equal(b.Ledger) && a.Account.Equal(b.Account)
}

// Zero is the DualAmount with both axes zero.
var Zero = DualAmount{Ledger: decimal.Zero, Account: decimal.Zero}

// parseAmount decodes a monetary cell: optional sign, one currency
// symbol from the closed table, digits with optional thousands grouping
// and optional fraction. Thousands separators are stripped before
// numeric parsing.
func parseAmount(cell Cell) (Amount, error) {
	text := cell.Text
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}

	symbol, _, ok := matchSymbol(text)
	if !ok {
		return Amount{}, &SyntaxError{
			Pos:      cell.Pos,
			Span:     cell.Span,
			Expected: "currency symbol",
			Found:    quoteCellText(cell.Text),
		}
	}
	text = text[len(symbol):]

	// Schema-dependent negative form: sign after the symbol.
	if strings.HasPrefix(text, "-") {
		if neg {
			return Amount{}, &SyntaxError{
				Pos:      cell.Pos,
				Span:     cell.Span,
				Expected: "amount with a single sign",
				Found:    quoteCellText(cell.Text),
			}
		}
		neg = true
		text = text[1:]
	}

	digits := strings.ReplaceAll(text, ",", "")
	if !validAmountDigits(digits) {
		return Amount{}, &SyntaxError{
			Pos:      cell.Pos,
			Span:     cell.Span,
			Expected: "amount",
			Found:    quoteCellText(cell.Text),
		}
	}

	value, err := decimal.NewFromString(digits)
	if err != nil {
		return Amount{}, &SyntaxError{
			Pos:      cell.Pos,
			Span:     cell.Span,
			Expected: "amount",
			Found:    quoteCellText(cell.Text),
		}
	}
	if neg {
		value = value.Neg()
	}
	return Amount{Value: value, Symbol: symbol}, nil
}

// validAmountDigits accepts digit runs with at most one decimal point.
// decimal.NewFromString alone is too lenient (exponents, leading signs).
func validAmountDigits(s string) bool {
	if s == "" || s == "." {
		return false
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quoteCellText(text string) string {
	if text == "" {
		return "empty cell"
	}
	return `"` + text + `"`
}
