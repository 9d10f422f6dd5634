package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wavecount-dev/wavecount/wave"
)

// Structured errors for the assembly and invariant passes. Like the
// parsing errors in the wave package, these expose their fields so
// tests and formatters never have to match message strings.

// UntypedAccountError is returned by Assemble for an account whose
// debit/credit orientation could not be inferred but whose balances are
// nonzero. Without an orientation the balances have no defensible sign
// in the IR.
type UntypedAccountError struct {
	Pos     wave.Position
	Account string
}

func (e *UntypedAccountError) Error() string {
	return fmt.Sprintf("%s: cannot determine debit/credit type of account %q with nonzero balances", e.Pos, e.Account)
}

func (e *UntypedAccountError) GetPosition() wave.Position { return e.Pos }
func (e *UntypedAccountError) GetAccount() string         { return e.Account }

// UnbalancedDateError is returned by CheckBalanced when the postings of
// one calendar date do not sum to zero in the ledger currency.
type UnbalancedDateError struct {
	Date     time.Time
	Postings []Posting
	Sum      decimal.Decimal
}

func (e *UnbalancedDateError) Error() string {
	var parts []string
	for _, p := range e.Postings {
		parts = append(parts, fmt.Sprintf("%s %s", p.Account, p.Amount.Ledger))
	}
	return fmt.Sprintf("postings on %s sum to %s, not zero: %s",
		e.Date.Format("2006-01-02"), e.Sum, strings.Join(parts, ", "))
}

func (e *UnbalancedDateError) GetDate() time.Time { return e.Date }
