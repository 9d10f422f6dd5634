package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"golang.org/x/exp/slices"
)

// Reconcile recovers double-entry structure from the single-entry
// transaction list. One-posting transactions are grouped by (date,
// description); within a group, a posting of amount a is merged with
// the posting of amount −a into one two-posting transaction, but only
// when each amount occurs exactly once in the group. Any other case is
// ambiguous and the postings stay as individual transactions; no merge
// is ever guessed.
//
// The input ledger is not modified. Groups are processed in document
// order and amounts within a group largest-first, so the output is
// deterministic.
func (l *Ledger) Reconcile() *Ledger {
	merged := &Ledger{
		Name:      l.Name,
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Accounts:  l.Accounts,
	}

	type groupKey struct {
		date        time.Time
		description string
	}
	var order []groupKey
	groups := make(map[groupKey][]Posting)

	for _, txn := range l.Transactions {
		if len(txn.Postings) != 1 {
			// Already multi-legged; nothing to recover.
			merged.Transactions = append(merged.Transactions, txn)
			continue
		}
		key := groupKey{txn.Date, txn.Description}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], txn.Postings[0])
	}

	for _, key := range order {
		for _, txn := range pairPostings(groups[key]) {
			txn.Date = key.date
			txn.Description = key.description
			merged.Transactions = append(merged.Transactions, txn)
		}
	}

	return merged
}

// bucket collects the postings of one group that share a
// ledger-currency amount.
type bucket struct {
	amount   decimal.Decimal
	postings []Posting
	consumed bool
}

// pairPostings buckets one group's postings by signed amount and merges
// each a/−a bucket pair that holds exactly one posting on each side.
func pairPostings(postings []Posting) []*Transaction {
	var buckets []*bucket
	find := func(amount decimal.Decimal) *bucket {
		for _, b := range buckets {
			if b.amount.Equal(amount) {
				return b
			}
		}
		return nil
	}
	for _, p := range postings {
		b := find(p.Amount.Ledger)
		if b == nil {
			b = &bucket{amount: p.Amount.Ledger}
			buckets = append(buckets, b)
		}
		b.postings = append(b.postings, p)
	}

	slices.SortFunc(buckets, func(a, b *bucket) int {
		return b.amount.Cmp(a.amount)
	})

	var result []*Transaction
	single := func(postings ...Posting) {
		for _, p := range postings {
			result = append(result, &Transaction{Postings: []Posting{p}})
		}
	}

	for _, b := range buckets {
		if b.consumed {
			continue
		}
		b.consumed = true

		// A zero posting has no opposite to pair with.
		if b.amount.IsZero() {
			single(b.postings...)
			continue
		}

		opposite := find(b.amount.Neg())
		if opposite == nil {
			single(b.postings...)
			continue
		}
		opposite.consumed = true

		if len(b.postings) == 1 && len(opposite.postings) == 1 {
			result = append(result, &Transaction{
				Postings: []Posting{b.postings[0], opposite.postings[0]},
			})
		} else {
			single(b.postings...)
			single(opposite.postings...)
		}
	}

	return result
}
