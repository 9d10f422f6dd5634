package wave

import (
	"time"
)

// Account block grammar. Each block is a fixed sequence of five row
// shapes, every shape parameterized by the document's ColumnSchema:
//
//	,<name>,,,,[,,,,,,]
//	Starting Balance,,,,,<amount>[,<CUR>,,,,<amount>,<CUR>]
//	[,<date>,<description>,<debit|>,<credit|>,<balance>[,<CUR>,,<debit|>,<credit|>,<balance>,<CUR>]]*
//	Totals and Ending Balance,,,<td>,<tc>,<eb>[,<CUR>,,<td>,<tc>,<eb>,<CUR>]
//	Balance Change,,,<amount>,,[,<CUR>,,<amount>,,,<CUR>]
//
// Under PerAccountCurrency every monetary figure is reported on two
// currency axes and the redundant pair is cross-checked cell by cell.

const (
	startingBalanceTag = "Starting Balance"
	totalsTag          = "Totals and Ending Balance"
	balanceChangeTag   = "Balance Change"
)

// AccountBlock is one parsed and validated per-account section.
type AccountBlock struct {
	Pos             Position
	Name            string
	Currency        string      // account currency code; LedgerCurrency under the global schema
	Type            AccountType // inferred by Validate during parsing
	StartingBalance DualAmount
	Postings        []PostingRow
	Totals          EndingTotals
	BalanceChange   DualAmount
}

// EndingTotals is the "Totals and Ending Balance" row.
type EndingTotals struct {
	TotalDebit    DualAmount
	TotalCredit   DualAmount
	EndingBalance DualAmount
}

// PostingRow is one transaction row of an account block. Exactly one of
// Debit and Credit is set.
type PostingRow struct {
	Pos         Position
	Date        time.Time
	Description string
	Debit       *DualAmount
	Credit      *DualAmount
	Balance     DualAmount
}

// DebitOrZero returns the debit figure, or zero when the row is a credit.
func (p *PostingRow) DebitOrZero() DualAmount {
	if p.Debit == nil {
		return Zero
	}
	return *p.Debit
}

// CreditOrZero returns the credit figure, or zero when the row is a debit.
func (p *PostingRow) CreditOrZero() DualAmount {
	if p.Credit == nil {
		return Zero
	}
	return *p.Credit
}

// Amount returns debit − credit: the sign convention the assembled
// ledger uses, independent of the account's inferred type.
func (p *PostingRow) Amount() DualAmount {
	return p.DebitOrZero().Sub(p.CreditOrZero())
}

// parseAccount consumes one account block and validates its redundant
// balance figures before returning it.
func parseAccount(s *Scanner, schema ColumnSchema) (*AccountBlock, error) {
	pos := s.Pos()
	name, err := parseAccountHeaderRow(s, schema)
	if err != nil {
		return nil, err
	}

	startingBalance, currency, err := parseStartingBalanceRow(s, schema, name)
	if err != nil {
		return nil, err
	}

	var postings []PostingRow
	for {
		mark := *s
		cell, err := s.Cell()
		if err != nil {
			return nil, err
		}
		*s = mark
		if cell.Text == totalsTag {
			break
		}
		posting, err := parsePostingRow(s, schema, name, currency)
		if err != nil {
			return nil, err
		}
		postings = append(postings, posting)
	}

	totals, err := parseTotalsRow(s, schema, name, currency)
	if err != nil {
		return nil, err
	}

	balanceChange, err := parseBalanceChangeRow(s, schema, name, currency)
	if err != nil {
		return nil, err
	}

	block := &AccountBlock{
		Pos:             pos,
		Name:            name,
		Currency:        currency,
		StartingBalance: startingBalance,
		Postings:        postings,
		Totals:          totals,
		BalanceChange:   balanceChange,
	}

	accountType, err := block.Validate()
	if err != nil {
		return nil, err
	}
	block.Type = accountType

	return block, nil
}

// parseAccountHeaderRow: an empty cell, the account name, then a
// schema-dependent run of empty cells.
func parseAccountHeaderRow(s *Scanner, schema ColumnSchema) (string, error) {
	if err := emptyCell(s); err != nil {
		return "", err
	}
	if err := s.Comma(); err != nil {
		return "", err
	}
	name, err := anyCell(s)
	if err != nil {
		return "", err
	}

	trailing := 4
	if schema == PerAccountCurrency {
		trailing = 10
	}
	if err := emptyCells(s, trailing); err != nil {
		return "", err
	}
	if err := s.RowEnd(); err != nil {
		return "", err
	}
	return name.Text, nil
}

// parseStartingBalanceRow returns the starting balance and, under
// PerAccountCurrency, the account currency code the row declares. The
// block's later rows must keep using the same code.
func parseStartingBalanceRow(s *Scanner, schema ColumnSchema, account string) (DualAmount, string, error) {
	if err := cellTag(s, startingBalanceTag); err != nil {
		return Zero, "", err
	}
	if err := emptyCells(s, 4); err != nil {
		return Zero, "", err
	}
	if err := s.Comma(); err != nil {
		return Zero, "", err
	}
	amount, cell, err := amountCell(s)
	if err != nil {
		return Zero, "", err
	}
	if err := checkLedgerSymbol(account, amount, cell, "starting balance"); err != nil {
		return Zero, "", err
	}

	if schema == GlobalLedgerCurrency {
		if err := s.RowEnd(); err != nil {
			return Zero, "", err
		}
		return Single(amount.Value), LedgerCurrency, nil
	}

	if err := s.Comma(); err != nil {
		return Zero, "", err
	}
	if err := ledgerCurrencyCode(s, account); err != nil {
		return Zero, "", err
	}
	if err := emptyCells(s, 3); err != nil {
		return Zero, "", err
	}
	if err := s.Comma(); err != nil {
		return Zero, "", err
	}
	accountAmount, accountCell, err := amountCell(s)
	if err != nil {
		return Zero, "", err
	}
	if err := s.Comma(); err != nil {
		return Zero, "", err
	}
	currencyCell, err := anyCell(s)
	if err != nil {
		return Zero, "", err
	}
	if err := s.RowEnd(); err != nil {
		return Zero, "", err
	}

	currency := currencyCell.Text
	if !knownCurrency(currency) {
		return Zero, "", &CurrencyError{
			Pos:     currencyCell.Pos,
			Account: account,
			Field:   "account currency",
			Want:    "a known currency code",
			Got:     quoteCellText(currency),
		}
	}
	if err := checkAccountSymbol(account, currency, accountAmount, accountCell, "starting balance"); err != nil {
		return Zero, "", err
	}
	if err := checkEqualWhenSameCurrency(account, currency, amount, accountAmount, accountCell, "starting balance"); err != nil {
		return Zero, "", err
	}

	return Dual(amount.Value, accountAmount.Value), currency, nil
}

// parsePostingRow parses one transaction row. The account-currency
// variant of debit/credit must be present exactly when the
// ledger-currency variant is, and the figures must match whenever the
// two currencies coincide.
func parsePostingRow(s *Scanner, schema ColumnSchema, account, currency string) (PostingRow, error) {
	pos := s.Pos()
	if err := emptyCell(s); err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	date, err := dateCell(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	description, err := anyCell(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	debit, debitCell, err := amountCellOpt(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	credit, creditCell, err := amountCellOpt(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	balance, balanceCell, err := amountCell(s)
	if err != nil {
		return PostingRow{}, err
	}

	if (debit == nil) == (credit == nil) {
		return PostingRow{}, &SyntaxError{
			Pos:      pos,
			Span:     Span{Start: debitCell.Span.Start, End: creditCell.Span.End},
			Expected: "exactly one of debit and credit",
			Found:    describePresence(debit, credit),
		}
	}
	if debit != nil {
		if err := checkLedgerSymbol(account, *debit, debitCell, "debit"); err != nil {
			return PostingRow{}, err
		}
	}
	if credit != nil {
		if err := checkLedgerSymbol(account, *credit, creditCell, "credit"); err != nil {
			return PostingRow{}, err
		}
	}
	if err := checkLedgerSymbol(account, balance, balanceCell, "balance"); err != nil {
		return PostingRow{}, err
	}

	row := PostingRow{
		Pos:         pos,
		Date:        date,
		Description: description.Text,
	}

	if schema == GlobalLedgerCurrency {
		if err := s.RowEnd(); err != nil {
			return PostingRow{}, err
		}
		if debit != nil {
			d := Single(debit.Value)
			row.Debit = &d
		}
		if credit != nil {
			c := Single(credit.Value)
			row.Credit = &c
		}
		row.Balance = Single(balance.Value)
		return row, nil
	}

	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	if err := ledgerCurrencyCode(s, account); err != nil {
		return PostingRow{}, err
	}
	if err := emptyCells(s, 1); err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	accountDebit, accountDebitCell, err := amountCellOpt(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	accountCredit, accountCreditCell, err := amountCellOpt(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	accountBalance, accountBalanceCell, err := amountCell(s)
	if err != nil {
		return PostingRow{}, err
	}
	if err := s.Comma(); err != nil {
		return PostingRow{}, err
	}
	if err := accountCurrencyCode(s, account, currency); err != nil {
		return PostingRow{}, err
	}
	if err := s.RowEnd(); err != nil {
		return PostingRow{}, err
	}

	if (accountDebit == nil) != (debit == nil) {
		return PostingRow{}, &CurrencyError{
			Pos:     accountDebitCell.Pos,
			Account: account,
			Field:   "debit",
			Want:    describePresence(debit, nil) + " on both currency axes",
			Got:     describePresence(accountDebit, nil),
		}
	}
	if (accountCredit == nil) != (credit == nil) {
		return PostingRow{}, &CurrencyError{
			Pos:     accountCreditCell.Pos,
			Account: account,
			Field:   "credit",
			Want:    describePresence(credit, nil) + " on both currency axes",
			Got:     describePresence(accountCredit, nil),
		}
	}

	if debit != nil {
		if err := checkAccountSymbol(account, currency, *accountDebit, accountDebitCell, "debit"); err != nil {
			return PostingRow{}, err
		}
		if err := checkEqualWhenSameCurrency(account, currency, *debit, *accountDebit, accountDebitCell, "debit"); err != nil {
			return PostingRow{}, err
		}
		d := Dual(debit.Value, accountDebit.Value)
		row.Debit = &d
	}
	if credit != nil {
		if err := checkAccountSymbol(account, currency, *accountCredit, accountCreditCell, "credit"); err != nil {
			return PostingRow{}, err
		}
		if err := checkEqualWhenSameCurrency(account, currency, *credit, *accountCredit, accountCreditCell, "credit"); err != nil {
			return PostingRow{}, err
		}
		c := Dual(credit.Value, accountCredit.Value)
		row.Credit = &c
	}
	if err := checkAccountSymbol(account, currency, accountBalance, accountBalanceCell, "balance"); err != nil {
		return PostingRow{}, err
	}
	if err := checkEqualWhenSameCurrency(account, currency, balance, accountBalance, accountBalanceCell, "balance"); err != nil {
		return PostingRow{}, err
	}
	row.Balance = Dual(balance.Value, accountBalance.Value)

	return row, nil
}

// parseTotalsRow parses the "Totals and Ending Balance" row.
func parseTotalsRow(s *Scanner, schema ColumnSchema, account, currency string) (EndingTotals, error) {
	if err := cellTag(s, totalsTag); err != nil {
		return EndingTotals{}, err
	}
	if err := emptyCells(s, 2); err != nil {
		return EndingTotals{}, err
	}
	if err := s.Comma(); err != nil {
		return EndingTotals{}, err
	}

	var amounts [3]Amount
	var cells [3]Cell
	fields := [3]string{"total debit", "total credit", "ending balance"}
	for i := 0; i < 3; i++ {
		if i > 0 {
			if err := s.Comma(); err != nil {
				return EndingTotals{}, err
			}
		}
		amount, cell, err := amountCell(s)
		if err != nil {
			return EndingTotals{}, err
		}
		if err := checkLedgerSymbol(account, amount, cell, fields[i]); err != nil {
			return EndingTotals{}, err
		}
		amounts[i], cells[i] = amount, cell
	}

	if schema == GlobalLedgerCurrency {
		if err := s.RowEnd(); err != nil {
			return EndingTotals{}, err
		}
		return EndingTotals{
			TotalDebit:    Single(amounts[0].Value),
			TotalCredit:   Single(amounts[1].Value),
			EndingBalance: Single(amounts[2].Value),
		}, nil
	}

	if err := s.Comma(); err != nil {
		return EndingTotals{}, err
	}
	if err := ledgerCurrencyCode(s, account); err != nil {
		return EndingTotals{}, err
	}
	if err := emptyCells(s, 1); err != nil {
		return EndingTotals{}, err
	}

	var accountAmounts [3]Amount
	for i := 0; i < 3; i++ {
		if err := s.Comma(); err != nil {
			return EndingTotals{}, err
		}
		amount, cell, err := amountCell(s)
		if err != nil {
			return EndingTotals{}, err
		}
		if err := checkAccountSymbol(account, currency, amount, cell, fields[i]); err != nil {
			return EndingTotals{}, err
		}
		if err := checkEqualWhenSameCurrency(account, currency, amounts[i], amount, cell, fields[i]); err != nil {
			return EndingTotals{}, err
		}
		accountAmounts[i] = amount
	}
	if err := s.Comma(); err != nil {
		return EndingTotals{}, err
	}
	if err := accountCurrencyCode(s, account, currency); err != nil {
		return EndingTotals{}, err
	}
	if err := s.RowEnd(); err != nil {
		return EndingTotals{}, err
	}

	return EndingTotals{
		TotalDebit:    Dual(amounts[0].Value, accountAmounts[0].Value),
		TotalCredit:   Dual(amounts[1].Value, accountAmounts[1].Value),
		EndingBalance: Dual(amounts[2].Value, accountAmounts[2].Value),
	}, nil
}

// parseBalanceChangeRow parses the final "Balance Change" row of a block.
func parseBalanceChangeRow(s *Scanner, schema ColumnSchema, account, currency string) (DualAmount, error) {
	if err := cellTag(s, balanceChangeTag); err != nil {
		return Zero, err
	}
	if err := emptyCells(s, 2); err != nil {
		return Zero, err
	}
	if err := s.Comma(); err != nil {
		return Zero, err
	}
	amount, cell, err := amountCell(s)
	if err != nil {
		return Zero, err
	}
	if err := checkLedgerSymbol(account, amount, cell, "balance change"); err != nil {
		return Zero, err
	}
	if err := emptyCells(s, 2); err != nil {
		return Zero, err
	}

	if schema == GlobalLedgerCurrency {
		if err := s.RowEnd(); err != nil {
			return Zero, err
		}
		return Single(amount.Value), nil
	}

	if err := s.Comma(); err != nil {
		return Zero, err
	}
	if err := ledgerCurrencyCode(s, account); err != nil {
		return Zero, err
	}
	if err := emptyCells(s, 1); err != nil {
		return Zero, err
	}
	if err := s.Comma(); err != nil {
		return Zero, err
	}
	accountAmount, accountCell, err := amountCell(s)
	if err != nil {
		return Zero, err
	}
	if err := checkAccountSymbol(account, currency, accountAmount, accountCell, "balance change"); err != nil {
		return Zero, err
	}
	if err := checkEqualWhenSameCurrency(account, currency, amount, accountAmount, accountCell, "balance change"); err != nil {
		return Zero, err
	}
	if err := emptyCells(s, 2); err != nil {
		return Zero, err
	}
	if err := s.Comma(); err != nil {
		return Zero, err
	}
	if err := accountCurrencyCode(s, account, currency); err != nil {
		return Zero, err
	}
	if err := s.RowEnd(); err != nil {
		return Zero, err
	}

	return Dual(amount.Value, accountAmount.Value), nil
}

// emptyCells consumes n repetitions of (comma, empty cell).
func emptyCells(s *Scanner, n int) error {
	for i := 0; i < n; i++ {
		if err := s.Comma(); err != nil {
			return err
		}
		if err := emptyCell(s); err != nil {
			return err
		}
	}
	return nil
}

// ledgerCurrencyCode consumes a currency code cell that must literally
// equal the document's ledger currency.
func ledgerCurrencyCode(s *Scanner, account string) error {
	cell, err := anyCell(s)
	if err != nil {
		return err
	}
	if cell.Text != LedgerCurrency {
		return &CurrencyError{
			Pos:     cell.Pos,
			Account: account,
			Field:   "ledger currency",
			Want:    LedgerCurrency,
			Got:     quoteCellText(cell.Text),
		}
	}
	return nil
}

// accountCurrencyCode consumes a currency code cell that must equal the
// account currency declared by the block's starting balance row. A later
// row silently switching codes is an error.
func accountCurrencyCode(s *Scanner, account, currency string) error {
	cell, err := anyCell(s)
	if err != nil {
		return err
	}
	if cell.Text != currency {
		return &CurrencyError{
			Pos:     cell.Pos,
			Account: account,
			Field:   "account currency",
			Want:    currency,
			Got:     quoteCellText(cell.Text),
		}
	}
	return nil
}

// checkLedgerSymbol verifies an amount on the ledger axis was written
// with the ledger currency's symbol.
func checkLedgerSymbol(account string, amount Amount, cell Cell, field string) error {
	if amount.Currency() != LedgerCurrency {
		return &CurrencyError{
			Pos:     cell.Pos,
			Account: account,
			Field:   field,
			Want:    "amount in " + LedgerCurrency,
			Got:     "amount in " + amount.Currency(),
		}
	}
	return nil
}

// checkAccountSymbol verifies an amount on the account axis was written
// with the symbol of the account's declared currency.
func checkAccountSymbol(account, currency string, amount Amount, cell Cell, field string) error {
	if amount.Currency() != currency {
		return &CurrencyError{
			Pos:     cell.Pos,
			Account: account,
			Field:   field,
			Want:    "amount in " + currency,
			Got:     "amount in " + amount.Currency(),
		}
	}
	return nil
}

// checkEqualWhenSameCurrency enforces that the two axes report the same
// figure whenever the account currency equals the ledger currency. When
// they differ the two figures are independent and no comparison is made.
func checkEqualWhenSameCurrency(account, currency string, ledger, accountAmount Amount, cell Cell, field string) error {
	if currency != LedgerCurrency {
		return nil
	}
	if !ledger.Value.Equal(accountAmount.Value) {
		return &CurrencyError{
			Pos:     cell.Pos,
			Account: account,
			Field:   field,
			Want:    ledger.Value.String(),
			Got:     accountAmount.Value.String(),
		}
	}
	return nil
}

func describePresence(a, b *Amount) string {
	switch {
	case a != nil && b != nil:
		return "both present"
	case a != nil:
		return "present"
	case b != nil:
		return "both empty"
	default:
		return "empty"
	}
}
