package ledger

import (
	"context"
	"time"
)

// Storage is the persistence capability consumed by the Ledger. The core
// calls exactly these six operations and treats any reported failure as
// fatal to the in-progress call; it never retries and never partially
// applies its own state changes. Retry policy, if any, belongs to the
// backend or the caller.
//
// storage/memory and storage/postgres provide ready-made implementations.
type Storage interface {
	// SaveAccount persists a new or edited account (upsert by ID). Uniqueness
	// of new IDs is enforced by the Ledger before this call.
	SaveAccount(ctx context.Context, a Account) error

	// LoadAccount returns ErrNotFound when no account has the id.
	LoadAccount(ctx context.Context, id string) (Account, error)

	// ListAccounts returns every account in insertion order.
	ListAccounts(ctx context.Context) ([]Account, error)

	// SaveTransaction persists the transaction and all of its entries
	// atomically: a partially written entry set must never become visible.
	SaveTransaction(ctx context.Context, tx Transaction) error

	// LoadTransaction returns ErrNotFound when no transaction has the id.
	LoadTransaction(ctx context.Context, id string) (Transaction, error)

	// ListTransactions returns transactions whose date falls within the
	// inclusive [from, to] day range, ordered by (date, insertion). A nil
	// bound leaves that side open.
	ListTransactions(ctx context.Context, from, to *time.Time) ([]Transaction, error)
}
