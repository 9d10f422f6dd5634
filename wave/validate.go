package wave

import (
	"github.com/shopspring/decimal"
)

// AccountType is the debit/credit orientation inferred for an account
// from its running balances.
type AccountType int

const (
	// Unresolved: the block's postings are consistent with both
	// orientations (typically a zero-activity account). Downstream
	// consumers must not rely on a sign convention for such accounts.
	Unresolved AccountType = iota
	// DebitNormal: balances grow with debits (assets, expenses).
	DebitNormal
	// CreditNormal: balances grow with credits (liabilities, income,
	// equity).
	CreditNormal
)

var accountTypeNames = map[AccountType]string{
	Unresolved:   "unresolved",
	DebitNormal:  "debit-normal",
	CreditNormal: "credit-normal",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Validate checks every redundant figure the block carries and infers
// the account's debit/credit orientation.
//
// Orientation is inferred by simulating the full posting sequence twice:
// once under the debit-normal update rule (balance' = balance + debit −
// credit) and once under the credit-normal rule (balance' = balance −
// debit + credit). An account whose sequence replays cleanly under
// exactly one rule has that orientation; failing both is a corrupt
// block; passing both leaves the orientation Unresolved. The whole
// procedure runs independently on both currency axes and the axes must
// agree.
func (b *AccountBlock) Validate() (AccountType, error) {
	ledgerType, err := b.validateAxis(LedgerAxis)
	if err != nil {
		return Unresolved, err
	}
	accountType, err := b.validateAxis(AccountAxis)
	if err != nil {
		return Unresolved, err
	}

	switch {
	case ledgerType == accountType:
		return ledgerType, nil
	case ledgerType == Unresolved:
		return accountType, nil
	case accountType == Unresolved:
		return ledgerType, nil
	}
	return Unresolved, &AccountInvariantError{
		Pos:     b.Pos,
		Account: b.Name,
		Kind:    AxisDisagreement,
	}
}

// validateAxis runs both simulations and the totals checks on one
// currency axis.
func (b *AccountBlock) validateAxis(axis Axis) (AccountType, error) {
	debit := b.simulate(axis, DebitNormal)
	credit := b.simulate(axis, CreditNormal)

	var accountType AccountType
	switch {
	case debit.ok && credit.ok:
		accountType = Unresolved
	case debit.ok:
		accountType = DebitNormal
	case credit.ok:
		accountType = CreditNormal
	default:
		// Both replays failed. Report the one that got further; it has
		// seen more of the block and points closer to the corruption.
		failed := debit
		if credit.failIndex > debit.failIndex {
			failed = credit
		}
		row := &b.Postings[failed.failIndex]
		return Unresolved, &AccountInvariantError{
			Pos:     row.Pos,
			Account: b.Name,
			Kind:    PostingBalanceMismatch,
			Axis:    axis,
			Want:    failed.want,
			Got:     row.Balance.on(axis),
		}
	}

	// The two replays only differ in the running balance; the sums and
	// the final stated balance are rule-independent.
	final := debit
	if !debit.ok {
		final = credit
	}

	if !final.totalDebit.Equal(b.Totals.TotalDebit.on(axis)) {
		return Unresolved, &AccountInvariantError{
			Pos:     b.Pos,
			Account: b.Name,
			Kind:    TotalDebitMismatch,
			Axis:    axis,
			Want:    final.totalDebit,
			Got:     b.Totals.TotalDebit.on(axis),
		}
	}
	if !final.totalCredit.Equal(b.Totals.TotalCredit.on(axis)) {
		return Unresolved, &AccountInvariantError{
			Pos:     b.Pos,
			Account: b.Name,
			Kind:    TotalCreditMismatch,
			Axis:    axis,
			Want:    final.totalCredit,
			Got:     b.Totals.TotalCredit.on(axis),
		}
	}
	if !final.balance.Equal(b.Totals.EndingBalance.on(axis)) {
		return Unresolved, &AccountInvariantError{
			Pos:     b.Pos,
			Account: b.Name,
			Kind:    EndingBalanceMismatch,
			Axis:    axis,
			Want:    final.balance,
			Got:     b.Totals.EndingBalance.on(axis),
		}
	}
	want := b.StartingBalance.on(axis).Add(b.BalanceChange.on(axis))
	if !want.Equal(b.Totals.EndingBalance.on(axis)) {
		return Unresolved, &AccountInvariantError{
			Pos:     b.Pos,
			Account: b.Name,
			Kind:    BalanceChangeMismatch,
			Axis:    axis,
			Want:    want,
			Got:     b.Totals.EndingBalance.on(axis),
		}
	}

	return accountType, nil
}

type simulation struct {
	ok          bool
	failIndex   int             // index of the first posting whose stated balance disagrees
	want        decimal.Decimal // expected balance at failIndex
	balance     decimal.Decimal // final running balance when ok
	totalDebit  decimal.Decimal
	totalCredit decimal.Decimal
}

// simulate replays the posting sequence on one axis under one update
// rule and compares each stated running balance against the computed one.
func (b *AccountBlock) simulate(axis Axis, rule AccountType) simulation {
	sim := simulation{
		balance:     b.StartingBalance.on(axis),
		totalDebit:  decimal.Zero,
		totalCredit: decimal.Zero,
	}
	for i := range b.Postings {
		row := &b.Postings[i]
		d := row.DebitOrZero().on(axis)
		c := row.CreditOrZero().on(axis)
		sim.totalDebit = sim.totalDebit.Add(d)
		sim.totalCredit = sim.totalCredit.Add(c)

		next := sim.balance.Add(d).Sub(c)
		if rule == CreditNormal {
			next = sim.balance.Sub(d).Add(c)
		}
		if !row.Balance.on(axis).Equal(next) {
			sim.failIndex = i
			sim.want = next
			return sim
		}
		sim.balance = next
	}
	sim.ok = true
	return sim
}

// on projects one axis of a dual-currency figure.
func (a DualAmount) on(axis Axis) decimal.Decimal {
	if axis == AccountAxis {
		return a.Account
	}
	return a.Ledger
}
