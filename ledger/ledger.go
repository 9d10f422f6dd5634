// Package ledger holds the intermediate representation an export is
// assembled into, plus the passes that operate on it: assembly from a
// parsed document, double-entry reconciliation, chronological sorting,
// and the final per-date balance check.
//
// The IR is independent of both the input CSV dialect and any output
// accounting syntax. Values are constructed once and treated as
// immutable; passes that change the transaction list return a new
// Ledger so the pre- and post-merge states stay independently
// inspectable.
package ledger

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/wavecount-dev/wavecount/wave"
)

// Ledger is the assembled intermediate representation of one export.
type Ledger struct {
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	Accounts     map[string]AccountBalance
	Transactions []*Transaction
}

// AccountBalance is the opening and closing balance of one account,
// normalized to the debit-positive sign convention: a credit-normal
// account's balances are negated so that every balance in the IR grows
// with debits.
type AccountBalance struct {
	Start    wave.DualAmount
	End      wave.DualAmount
	Currency string
}

// Assemble folds a parsed document into the IR. Each posting row
// becomes a one-posting transaction carrying the debit − credit amount;
// the second leg of each real-world transaction is implicit in the
// export and is recovered later by Reconcile. The transformation is
// order-preserving and performs no numeric checks of its own; those
// happened during parsing.
//
// Balance sign normalization is the one place assembly can still fail:
// a credit-normal account's balances are negated, and an account whose
// orientation could not be inferred but whose balances are nonzero has
// no defensible sign, so it is rejected.
func Assemble(doc *wave.Document) (*Ledger, error) {
	ledger := &Ledger{
		Name:      doc.Header.LedgerName,
		StartDate: doc.Header.StartDate,
		EndDate:   doc.Header.EndDate,
		Accounts:  make(map[string]AccountBalance, len(doc.Accounts)),
	}

	for _, account := range doc.Accounts {
		balance, err := normalizeBalance(account)
		if err != nil {
			return nil, err
		}
		ledger.Accounts[account.Name] = balance

		for i := range account.Postings {
			row := &account.Postings[i]
			ledger.Transactions = append(ledger.Transactions, &Transaction{
				Date:        row.Date,
				Description: row.Description,
				Postings: []Posting{
					{Account: account.Name, Amount: row.Amount()},
				},
			})
		}
	}

	return ledger, nil
}

func normalizeBalance(account *wave.AccountBlock) (AccountBalance, error) {
	start := account.StartingBalance
	end := account.Totals.EndingBalance

	switch account.Type {
	case wave.DebitNormal:
	case wave.CreditNormal:
		start = start.Neg()
		end = end.Neg()
	default:
		if !start.IsZero() || !end.IsZero() {
			return AccountBalance{}, &UntypedAccountError{
				Pos:     account.Pos,
				Account: account.Name,
			}
		}
	}

	return AccountBalance{
		Start:    start,
		End:      end,
		Currency: account.Currency,
	}, nil
}

// AccountNames returns the account names in sorted order.
func (l *Ledger) AccountNames() []string {
	names := make([]string, 0, len(l.Accounts))
	for name := range l.Accounts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SortByDate stably sorts the transaction list chronologically.
// Transactions on the same date keep their relative order.
func (l *Ledger) SortByDate() {
	slices.SortStableFunc(l.Transactions, func(a, b *Transaction) int {
		return a.Date.Compare(b.Date)
	})
}
