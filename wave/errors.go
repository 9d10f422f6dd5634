package wave

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Structured errors for export parsing. Every error carries a source
// position; tests inspect fields rather than message strings. Rendering
// with source excerpts lives in the errors and cli packages.

// SyntaxError is returned when the input does not match the expected
// token at the current position: malformed quoting, a wrong tag cell,
// a missing comma, an invalid amount or date cell.
type SyntaxError struct {
	Pos      Position
	Span     Span
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

func (e *SyntaxError) GetPosition() Position { return e.Pos }

// SchemaError is returned when the column header row matches neither of
// the two known export layouts.
type SchemaError struct {
	Pos    Position
	Header []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: unrecognized column header row: %s", e.Pos, strings.Join(e.Header, ","))
}

func (e *SchemaError) GetPosition() Position { return e.Pos }

// Axis identifies which currency axis of a dual-currency figure a check
// was performed on.
type Axis int

const (
	LedgerAxis Axis = iota
	AccountAxis
)

func (a Axis) String() string {
	if a == AccountAxis {
		return "account currency"
	}
	return "ledger currency"
}

// CurrencyError is returned when the redundant currency information in a
// row disagrees with itself: a wrong currency code cell, an amount whose
// symbol does not match the declared currency, mismatched figures when
// both axes carry the same currency, or a debit/credit present on one
// axis but not the other.
type CurrencyError struct {
	Pos     Position
	Account string
	Field   string // e.g. "ledger currency", "account currency", "debit", "balance"
	Want    string
	Got     string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("%s: account %q: %s: want %s, got %s", e.Pos, e.Account, e.Field, e.Want, e.Got)
}

func (e *CurrencyError) GetPosition() Position { return e.Pos }
func (e *CurrencyError) GetAccount() string    { return e.Account }

// InvariantKind classifies which redundant figure of an account block
// failed verification.
type InvariantKind int

const (
	// PostingBalanceMismatch: a posting's running balance satisfies
	// neither the debit-normal nor the credit-normal update rule, or
	// contradicts the rule confirmed by earlier postings.
	PostingBalanceMismatch InvariantKind = iota
	// TotalDebitMismatch: the accumulated debits differ from the
	// reported total debit.
	TotalDebitMismatch
	// TotalCreditMismatch: the accumulated credits differ from the
	// reported total credit.
	TotalCreditMismatch
	// EndingBalanceMismatch: folding all postings from the starting
	// balance does not reach the reported ending balance.
	EndingBalanceMismatch
	// BalanceChangeMismatch: starting balance + balance change does not
	// equal the ending balance.
	BalanceChangeMismatch
	// AxisDisagreement: the ledger-currency and account-currency figures
	// confirm different debit/credit interpretations.
	AxisDisagreement
)

var invariantNames = map[InvariantKind]string{
	PostingBalanceMismatch: "posting balance mismatch",
	TotalDebitMismatch:     "total debit mismatch",
	TotalCreditMismatch:    "total credit mismatch",
	EndingBalanceMismatch:  "ending balance mismatch",
	BalanceChangeMismatch:  "balance change mismatch",
	AxisDisagreement:       "currency axes disagree on account type",
}

func (k InvariantKind) String() string {
	if name, ok := invariantNames[k]; ok {
		return name
	}
	return "unknown invariant"
}

// AccountInvariantError is returned when an account block parses cleanly
// but its redundant balance figures are not self-consistent.
type AccountInvariantError struct {
	Pos     Position
	Account string
	Kind    InvariantKind
	Axis    Axis
	Want    decimal.Decimal
	Got     decimal.Decimal
}

func (e *AccountInvariantError) Error() string {
	switch e.Kind {
	case PostingBalanceMismatch, AxisDisagreement:
		return fmt.Sprintf("%s: account %q: %s", e.Pos, e.Account, e.Kind)
	}
	return fmt.Sprintf("%s: account %q: %s (%s): want %s, got %s",
		e.Pos, e.Account, e.Kind, e.Axis, e.Want, e.Got)
}

func (e *AccountInvariantError) GetPosition() Position { return e.Pos }
func (e *AccountInvariantError) GetAccount() string    { return e.Account }
