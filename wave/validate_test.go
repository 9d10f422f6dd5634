package wave

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDay(s string) time.Time {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return date
}

// debitBlock builds a consistent debit-normal block: starting balance
// 100, one debit of 30 (balance 130), one credit of 10 (balance 120).
func debitBlock() *AccountBlock {
	debit := Single(dec("30"))
	credit := Single(dec("10"))
	return &AccountBlock{
		Name:            "Cash",
		Currency:        LedgerCurrency,
		StartingBalance: Single(dec("100")),
		Postings: []PostingRow{
			{Date: testDay("2021-01-02"), Description: "in", Debit: &debit, Balance: Single(dec("130"))},
			{Date: testDay("2021-01-03"), Description: "out", Credit: &credit, Balance: Single(dec("120"))},
		},
		Totals: EndingTotals{
			TotalDebit:    Single(dec("30")),
			TotalCredit:   Single(dec("10")),
			EndingBalance: Single(dec("120")),
		},
		BalanceChange: Single(dec("20")),
	}
}

// creditBlock mirrors debitBlock under the credit-normal update rule.
func creditBlock() *AccountBlock {
	debit := Single(dec("30"))
	credit := Single(dec("10"))
	return &AccountBlock{
		Name:            "Income",
		Currency:        LedgerCurrency,
		StartingBalance: Single(dec("100")),
		Postings: []PostingRow{
			{Date: testDay("2021-01-02"), Description: "in", Debit: &debit, Balance: Single(dec("70"))},
			{Date: testDay("2021-01-03"), Description: "out", Credit: &credit, Balance: Single(dec("80"))},
		},
		Totals: EndingTotals{
			TotalDebit:    Single(dec("30")),
			TotalCredit:   Single(dec("10")),
			EndingBalance: Single(dec("80")),
		},
		BalanceChange: Single(dec("-20")),
	}
}

func TestValidateInfersDebitNormal(t *testing.T) {
	accountType, err := debitBlock().Validate()
	assert.NoError(t, err)
	assert.Equal(t, DebitNormal, accountType)
}

func TestValidateInfersCreditNormal(t *testing.T) {
	accountType, err := creditBlock().Validate()
	assert.NoError(t, err)
	assert.Equal(t, CreditNormal, accountType)
}

func TestValidateZeroActivityIsUnresolved(t *testing.T) {
	block := &AccountBlock{
		Name:            "Dormant",
		Currency:        LedgerCurrency,
		StartingBalance: Zero,
		Totals: EndingTotals{
			TotalDebit:    Zero,
			TotalCredit:   Zero,
			EndingBalance: Zero,
		},
		BalanceChange: Zero,
	}
	accountType, err := block.Validate()
	assert.NoError(t, err)
	assert.Equal(t, Unresolved, accountType)
}

func TestValidateRejectsMutatedPostingBalance(t *testing.T) {
	// Corrupting any single posting balance must fail the whole block,
	// never silently switch hypotheses.
	for i := 0; i < 2; i++ {
		block := debitBlock()
		block.Postings[i].Balance = Single(dec("999"))

		_, err := block.Validate()
		var invariantErr *AccountInvariantError
		assert.True(t, errors.As(err, &invariantErr))
		assert.Equal(t, PostingBalanceMismatch, invariantErr.Kind)
	}
}

func TestValidateContradictionAfterConfirmedHypothesis(t *testing.T) {
	// The first posting confirms debit-normal; the second only satisfies
	// the credit-normal rule. That is a hard failure, not a fallback.
	block := debitBlock()
	block.Postings[1].Balance = Single(dec("140"))
	block.Totals.EndingBalance = Single(dec("140"))
	block.BalanceChange = Single(dec("40"))

	_, err := block.Validate()
	var invariantErr *AccountInvariantError
	assert.True(t, errors.As(err, &invariantErr))
	assert.Equal(t, PostingBalanceMismatch, invariantErr.Kind)
}

func TestValidateTotalsMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AccountBlock)
		kind   InvariantKind
	}{
		{
			"TotalDebit",
			func(b *AccountBlock) { b.Totals.TotalDebit = Single(dec("31")) },
			TotalDebitMismatch,
		},
		{
			"TotalCredit",
			func(b *AccountBlock) { b.Totals.TotalCredit = Single(dec("11")) },
			TotalCreditMismatch,
		},
		{
			"BalanceChange",
			func(b *AccountBlock) { b.BalanceChange = Single(dec("21")) },
			BalanceChangeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := debitBlock()
			tt.mutate(block)

			_, err := block.Validate()
			var invariantErr *AccountInvariantError
			assert.True(t, errors.As(err, &invariantErr))
			assert.Equal(t, tt.kind, invariantErr.Kind)
			assert.Equal(t, "Cash", invariantErr.Account)
		})
	}
}

func TestValidateEndingBalanceMismatch(t *testing.T) {
	// Keep start + change == end consistent so only the posting fold
	// disagrees with the stated ending balance.
	block := debitBlock()
	block.Totals.EndingBalance = Single(dec("121"))
	block.BalanceChange = Single(dec("21"))

	_, err := block.Validate()
	var invariantErr *AccountInvariantError
	assert.True(t, errors.As(err, &invariantErr))
	assert.Equal(t, EndingBalanceMismatch, invariantErr.Kind)
}

func TestValidateChecksBothCurrencyAxes(t *testing.T) {
	// Ledger axis is consistent; the account axis balance fold is not.
	debit := Dual(dec("10"), dec("9"))
	block := &AccountBlock{
		Name:            "Euro",
		Currency:        "EUR",
		StartingBalance: Dual(dec("100"), dec("90")),
		Postings: []PostingRow{
			{Date: testDay("2021-01-02"), Description: "in", Debit: &debit, Balance: Dual(dec("110"), dec("98"))},
		},
		Totals: EndingTotals{
			TotalDebit:    Dual(dec("10"), dec("9")),
			TotalCredit:   Zero,
			EndingBalance: Dual(dec("110"), dec("98")),
		},
		BalanceChange: Dual(dec("10"), dec("8")),
	}

	_, err := block.Validate()
	var invariantErr *AccountInvariantError
	assert.True(t, errors.As(err, &invariantErr))
	assert.Equal(t, AccountAxis, invariantErr.Axis)
	assert.Equal(t, PostingBalanceMismatch, invariantErr.Kind)
}

func TestValidateSinglePostingFromZeroIsUnresolvedType(t *testing.T) {
	// From a zero starting balance a lone debit that lands on its own
	// value satisfies only the debit rule; but a zero debit satisfies
	// both rules and stays unresolved.
	zero := Single(dec("0"))
	block := &AccountBlock{
		Name:            "Zeroes",
		Currency:        LedgerCurrency,
		StartingBalance: Zero,
		Postings: []PostingRow{
			{Date: testDay("2021-01-02"), Description: "noop", Debit: &zero, Balance: Zero},
		},
		Totals: EndingTotals{
			TotalDebit:    Zero,
			TotalCredit:   Zero,
			EndingBalance: Zero,
		},
		BalanceChange: Zero,
	}

	accountType, err := block.Validate()
	assert.NoError(t, err)
	assert.Equal(t, Unresolved, accountType)
}
