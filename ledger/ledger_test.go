package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/wavecount-dev/wavecount/wave"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return date
}

func dual(s string) wave.DualAmount {
	return wave.Single(d(s))
}

func debitRow(date, description, amount string) wave.PostingRow {
	a := dual(amount)
	return wave.PostingRow{Date: day(date), Description: description, Debit: &a}
}

func creditRow(date, description, amount string) wave.PostingRow {
	a := dual(amount)
	return wave.PostingRow{Date: day(date), Description: description, Credit: &a}
}

func testHeader() *wave.Header {
	return &wave.Header{
		LedgerName: "Test Business",
		StartDate:  day("2021-01-01"),
		EndDate:    day("2021-12-31"),
	}
}

func TestAssemble(t *testing.T) {
	doc := &wave.Document{
		Header: testHeader(),
		Accounts: []*wave.AccountBlock{
			{
				Name:            "Cash on Hand",
				Currency:        "USD",
				Type:            wave.DebitNormal,
				StartingBalance: dual("123.45"),
				Postings: []wave.PostingRow{
					debitRow("2021-03-01", "Coffee", "1.23"),
					creditRow("2021-03-02", "Refund", "0.50"),
				},
				Totals: wave.EndingTotals{EndingBalance: dual("124.18")},
			},
			{
				Name:            "Owner Investment",
				Currency:        "USD",
				Type:            wave.CreditNormal,
				StartingBalance: dual("123.45"),
				Totals:          wave.EndingTotals{EndingBalance: dual("123.45")},
			},
		},
	}

	l, err := Assemble(doc)
	assert.NoError(t, err)

	assert.Equal(t, "Test Business", l.Name)
	assert.Equal(t, day("2021-01-01"), l.StartDate)
	assert.Equal(t, day("2021-12-31"), l.EndDate)

	// Debit-normal balances keep their sign.
	cash := l.Accounts["Cash on Hand"]
	assert.True(t, cash.Start.Ledger.Equal(d("123.45")))
	assert.True(t, cash.End.Ledger.Equal(d("124.18")))
	assert.Equal(t, "USD", cash.Currency)

	// Credit-normal balances are negated into the debit-positive convention.
	investment := l.Accounts["Owner Investment"]
	assert.True(t, investment.Start.Ledger.Equal(d("-123.45")))
	assert.True(t, investment.End.Ledger.Equal(d("-123.45")))

	// One single-posting transaction per row, in document order, with the
	// debit − credit amount.
	assert.Equal(t, 2, len(l.Transactions))
	assert.Equal(t, "Coffee", l.Transactions[0].Description)
	assert.True(t, l.Transactions[0].Postings[0].Amount.Ledger.Equal(d("1.23")))
	assert.Equal(t, "Refund", l.Transactions[1].Description)
	assert.True(t, l.Transactions[1].Postings[0].Amount.Ledger.Equal(d("-0.50")))
}

func TestAssembleZeroActivityUntypedAccount(t *testing.T) {
	doc := &wave.Document{
		Header: testHeader(),
		Accounts: []*wave.AccountBlock{
			{
				Name:            "Dormant",
				Currency:        "USD",
				Type:            wave.Unresolved,
				StartingBalance: wave.Zero,
				Totals:          wave.EndingTotals{EndingBalance: wave.Zero},
			},
		},
	}

	l, err := Assemble(doc)
	assert.NoError(t, err)
	assert.True(t, l.Accounts["Dormant"].Start.IsZero())
	assert.Equal(t, 0, len(l.Transactions))
}

func TestAssembleUntypedAccountWithBalance(t *testing.T) {
	doc := &wave.Document{
		Header: testHeader(),
		Accounts: []*wave.AccountBlock{
			{
				Name:            "Mystery",
				Currency:        "USD",
				Type:            wave.Unresolved,
				StartingBalance: dual("10.00"),
				Totals:          wave.EndingTotals{EndingBalance: dual("10.00")},
			},
		},
	}

	_, err := Assemble(doc)
	var untypedErr *UntypedAccountError
	assert.True(t, errors.As(err, &untypedErr))
	assert.Equal(t, "Mystery", untypedErr.Account)
}

func TestAccountNames(t *testing.T) {
	l := &Ledger{
		Accounts: map[string]AccountBalance{
			"Savings":      {},
			"Cash on Hand": {},
			"Checking":     {},
		},
	}
	assert.Equal(t, []string{"Cash on Hand", "Checking", "Savings"}, l.AccountNames())
}

func TestSortByDateIsStable(t *testing.T) {
	l := &Ledger{
		Transactions: []*Transaction{
			{Date: day("2021-03-02"), Description: "b"},
			{Date: day("2021-03-01"), Description: "a"},
			{Date: day("2021-03-02"), Description: "c"},
		},
	}
	l.SortByDate()

	var descriptions []string
	for _, txn := range l.Transactions {
		descriptions = append(descriptions, txn.Description)
	}
	assert.Equal(t, []string{"a", "b", "c"}, descriptions)
}

func TestTransactionIsBalanced(t *testing.T) {
	balanced := &Transaction{
		Postings: []Posting{
			{Account: "A", Amount: dual("12.34")},
			{Account: "B", Amount: dual("-12.34")},
		},
	}
	assert.True(t, balanced.IsBalanced())

	unbalanced := &Transaction{
		Postings: []Posting{
			{Account: "A", Amount: dual("12.34")},
		},
	}
	assert.False(t, unbalanced.IsBalanced())
}
