// Package ledger implements a double-entry bookkeeping core: a chart of
// accounts, balanced immutable transactions, as-of balance computation and
// derived financial statements (trial balance, balance sheet, income
// statement). Persistence is injected through the Storage interface; the
// package itself holds no backend and no presentation concerns.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khatabase/khata/internal/meta"
)

// Side represents the accounting position of an entry.
type Side string

const (
	// SideDebit records a value on the debit side of an account.
	SideDebit Side = "debit"
	// SideCredit records a value on the credit side of an account.
	SideCredit Side = "credit"
)

// AccountType enumerates the broad classification of an account in the
// chart of accounts.
type AccountType string

const (
	// AccountTypeAsset increases on the debit side and holds resources owned by the entity.
	AccountTypeAsset AccountType = "asset"
	// AccountTypeLiability increases on the credit side and tracks obligations.
	AccountTypeLiability AccountType = "liability"
	// AccountTypeEquity captures the owner's residual interest in the entity.
	AccountTypeEquity AccountType = "equity"
	// AccountTypeIncome represents inflows that increase equity.
	AccountTypeIncome AccountType = "income"
	// AccountTypeExpense represents outflows that decrease equity.
	AccountTypeExpense AccountType = "expense"
)

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// NormalSide returns the side on which balances of this account type are
// conventionally positive: debit for assets and expenses, credit for
// liabilities, equity and income.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Account is one row of the chart of accounts. ID and Type are fixed at
// creation; Name, ParentID and Metadata may be edited through
// Ledger.UpdateAccount.
type Account struct {
	ID   string
	Name string
	Type AccountType
	// ParentID optionally points at another account for hierarchical charts.
	// Empty means top-level.
	ParentID string
	// Metadata holds additional key-value attributes for the account.
	Metadata meta.Metadata
}

// Entry is a single debit or credit line within a transaction. Amounts are
// exact decimals and must be strictly positive.
type Entry struct {
	AccountID string
	Side      Side
	Amount    decimal.Decimal
	// Memo is free text with no semantic effect.
	Memo string
}

// Transaction is a balanced set of entries dated at day granularity. Build
// one through TransactionBuilder; once recorded it is never mutated or
// deleted, only offset by recording its Reversed counterpart.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Entries     []Entry
	// Metadata holds additional key-value attributes for the transaction
	// (invoice numbers, references and the like).
	Metadata meta.Metadata
}

// Day truncates t to its calendar date at UTC midnight. All dates inside the
// ledger carry no time-of-day semantics; "as of" queries are inclusive of
// the given day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TotalDebits sums the amounts of all debit entries.
func (t Transaction) TotalDebits() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range t.Entries {
		if e.Side == SideDebit {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// TotalCredits sums the amounts of all credit entries.
func (t Transaction) TotalCredits() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range t.Entries {
		if e.Side == SideCredit {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// Validate enforces the double-entry invariants: an id and description, at
// least two entries with both sides present, strictly positive amounts, and
// an exact decimal match between total debits and total credits. It is run
// by Build and re-run by Ledger.RecordTransaction before anything is
// persisted.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction: %w", ErrEmptyID)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction %q: %w", t.ID, ErrEmptyDescription)
	}
	if len(t.Entries) < 2 {
		return fmt.Errorf("%w: got %d entries", ErrEmptyTransaction, len(t.Entries))
	}
	hasDebit, hasCredit := false, false
	for i, e := range t.Entries {
		switch e.Side {
		case SideDebit:
			hasDebit = true
		case SideCredit:
			hasCredit = true
		default:
			return fmt.Errorf("entry %d: side %q: %w", i, e.Side, ErrInvalidSide)
		}
	}
	if !hasDebit {
		return ErrNoDebit
	}
	if !hasCredit {
		return ErrNoCredit
	}
	for i, e := range t.Entries {
		if !e.Amount.IsPositive() {
			return fmt.Errorf("entry %d (%s): amount %s: %w", i, e.AccountID, e.Amount, ErrNonPositiveAmount)
		}
	}
	debits, credits := t.TotalDebits(), t.TotalCredits()
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debits, credits)
	}
	return nil
}

// Reversed returns a new transaction that offsets t: every entry keeps its
// amount but switches side. Recording it restores all balances to their
// state before t, which is how posted transactions are amended.
func (t Transaction) Reversed(id string, date time.Time, description string) Transaction {
	entries := make([]Entry, len(t.Entries))
	for i, e := range t.Entries {
		r := e
		if e.Side == SideDebit {
			r.Side = SideCredit
		} else {
			r.Side = SideDebit
		}
		entries[i] = r
	}
	return Transaction{ID: id, Date: Day(date), Description: description, Entries: entries}
}
