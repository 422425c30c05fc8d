package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khatabase/khata/internal/meta"
)

// TransactionBuilder accumulates entries and freezes them into an immutable
// Transaction through a single validating Build call. The builder is
// storage-agnostic and pure: account existence is checked later by
// Ledger.RecordTransaction, which has registry access.
type TransactionBuilder struct {
	id          string
	date        time.Time
	description string
	metadata    meta.Metadata
	entries     []Entry
}

// NewTransaction starts a builder for a transaction with the given id, date
// (day granularity) and description.
func NewTransaction(id string, date time.Time, description string) *TransactionBuilder {
	return &TransactionBuilder{id: id, date: date, description: description}
}

// Debit stages a debit entry against accountID. memo may be empty.
func (b *TransactionBuilder) Debit(accountID string, amount decimal.Decimal, memo string) *TransactionBuilder {
	b.entries = append(b.entries, Entry{AccountID: accountID, Side: SideDebit, Amount: amount, Memo: memo})
	return b
}

// Credit stages a credit entry against accountID. memo may be empty.
func (b *TransactionBuilder) Credit(accountID string, amount decimal.Decimal, memo string) *TransactionBuilder {
	b.entries = append(b.entries, Entry{AccountID: accountID, Side: SideCredit, Amount: amount, Memo: memo})
	return b
}

// Meta attaches a metadata key-value pair to the transaction under
// construction.
func (b *TransactionBuilder) Meta(key, value string) *TransactionBuilder {
	if b.metadata == nil {
		b.metadata = meta.New(nil)
	}
	b.metadata.Set(key, value)
	return b
}

// Build validates the staged entries and returns the frozen transaction.
// Checks run in order: at least two entries (ErrEmptyTransaction), both
// sides present (ErrNoDebit/ErrNoCredit), strictly positive amounts
// (ErrNonPositiveAmount), exact decimal balance (ErrUnbalanced). The builder
// holds no shared state and should be discarded afterwards.
func (b *TransactionBuilder) Build() (Transaction, error) {
	tx := Transaction{
		ID:          b.id,
		Date:        Day(b.date),
		Description: b.description,
		Entries:     append([]Entry(nil), b.entries...),
		Metadata:    b.metadata.Clone(),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
