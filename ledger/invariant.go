package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"golang.org/x/exp/slices"
)

// CheckBalanced asserts that the ledger-currency amounts of all
// postings sum to exactly zero on every calendar date. The property
// holds both before and after reconciliation, so this runs as an
// independent last line of defense against a parsing or inference bug
// producing an unbalanced ledger.
//
// Dates are checked in chronological order and the first violation is
// returned, naming the date, the offending postings, and their sum.
func (l *Ledger) CheckBalanced() error {
	type dateSum struct {
		sum      decimal.Decimal
		postings []Posting
	}
	var dates []time.Time
	byDate := make(map[time.Time]*dateSum)

	for _, txn := range l.Transactions {
		ds := byDate[txn.Date]
		if ds == nil {
			ds = &dateSum{sum: decimal.Zero}
			byDate[txn.Date] = ds
			dates = append(dates, txn.Date)
		}
		for _, p := range txn.Postings {
			ds.sum = ds.sum.Add(p.Amount.Ledger)
			ds.postings = append(ds.postings, p)
		}
	}

	slices.SortFunc(dates, func(a, b time.Time) int {
		return a.Compare(b)
	})

	for _, date := range dates {
		ds := byDate[date]
		if !ds.sum.IsZero() {
			return &UnbalancedDateError{
				Date:     date,
				Postings: ds.postings,
				Sum:      ds.sum,
			}
		}
	}
	return nil
}
