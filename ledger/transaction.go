package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wavecount-dev/wavecount/wave"
)

// Transaction is one economic event. Straight out of Assemble it has a
// single posting; Reconcile pairs opposite postings into two-posting
// balanced transactions where the evidence is unambiguous.
type Transaction struct {
	Date        time.Time
	Description string
	Postings    []Posting
}

// Posting is one signed amount against one account. The amount is the
// row's debit − credit, so a positive value increases a debit-normal
// balance regardless of the account's orientation.
type Posting struct {
	Account string
	Amount  wave.DualAmount
}

// IsBalanced reports whether the postings' ledger-currency amounts sum
// to zero.
func (t *Transaction) IsBalanced() bool {
	sum := decimal.Zero
	for _, p := range t.Postings {
		sum = sum.Add(p.Amount.Ledger)
	}
	return sum.IsZero()
}
