package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger coordinates the account registry and the transaction log over an
// injected Storage. Mutating calls are serialized through an internal mutex:
// the engine assumes a single logical writer per ledger instance, so a
// lookup-then-persist sequence can never interleave with another writer and
// double-count a balance. Reads replay the persisted log and take the same
// lock unless the backend offers snapshot isolation of its own.
type Ledger struct {
	mu    sync.Mutex
	store Storage
}

// New returns a Ledger over the given storage backend.
func New(store Storage) *Ledger {
	return &Ledger{store: store}
}

// RecordTransaction validates tx end to end and persists it. The balance
// invariant is re-checked even for transactions produced by Build, every
// entry's account must resolve through the registry, and the id must be
// unused. Nothing is persisted when any step fails.
func (l *Ledger) RecordTransaction(ctx context.Context, tx Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := tx.Validate(); err != nil {
		return err
	}
	for i, e := range tx.Entries {
		if _, err := l.store.LoadAccount(ctx, e.AccountID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("entry %d: %q: %w", i, e.AccountID, ErrUnknownAccount)
			}
			return fmt.Errorf("load account %q: %w", e.AccountID, err)
		}
	}
	if _, err := l.store.LoadTransaction(ctx, tx.ID); err == nil {
		return fmt.Errorf("%q: %w", tx.ID, ErrDuplicateTransaction)
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("load transaction %q: %w", tx.ID, err)
	}
	tx.Date = Day(tx.Date)
	if err := l.store.SaveTransaction(ctx, tx); err != nil {
		return fmt.Errorf("save transaction %q: %w", tx.ID, err)
	}
	return nil
}

// Transaction returns a recorded transaction by id.
func (l *Ledger) Transaction(ctx context.Context, id string) (Transaction, error) {
	tx, err := l.store.LoadTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
		}
		return Transaction{}, fmt.Errorf("load transaction %q: %w", id, err)
	}
	return tx, nil
}

// Transactions returns all transactions within the inclusive [from, to] day
// range, ordered by (date, insertion). Nil bounds leave that side open.
func (l *Ledger) Transactions(ctx context.Context, from, to *time.Time) ([]Transaction, error) {
	txs, err := l.store.ListTransactions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// AccountTransactions returns the transactions that touch accountID within
// the inclusive [from, to] day range.
func (l *Ledger) AccountTransactions(ctx context.Context, accountID string, from, to *time.Time) ([]Transaction, error) {
	if _, err := l.store.LoadAccount(ctx, accountID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%q: %w", accountID, ErrUnknownAccount)
		}
		return nil, fmt.Errorf("load account %q: %w", accountID, err)
	}
	txs, err := l.store.ListTransactions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		for _, e := range tx.Entries {
			if e.AccountID == accountID {
				out = append(out, tx)
				break
			}
		}
	}
	return out, nil
}

// AccountBalance replays the transaction log up to asOf (inclusive) and
// returns the account's balance signed on its normal side: debits positive
// for asset and expense accounts, credits positive for the rest. Replaying
// from an empty balance always reproduces the same value, which is what
// keeps the ledger auditable.
func (l *Ledger) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	acc, err := l.store.LoadAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%q: %w", accountID, ErrUnknownAccount)
		}
		return decimal.Zero, fmt.Errorf("load account %q: %w", accountID, err)
	}
	to := Day(asOf)
	flows, err := l.flows(ctx, nil, &to)
	if err != nil {
		return decimal.Zero, err
	}
	f := flows[accountID]
	net := f.debits.Sub(f.credits)
	if acc.Type.NormalSide() == SideCredit {
		net = net.Neg()
	}
	return net, nil
}

// accountFlow accumulates the raw debit and credit totals posted to one
// account over a replay window.
type accountFlow struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// flows replays the transaction log over [from, to] and returns per-account
// debit/credit totals. Missing accounts simply have a zero flow.
func (l *Ledger) flows(ctx context.Context, from, to *time.Time) (map[string]accountFlow, error) {
	txs, err := l.store.ListTransactions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make(map[string]accountFlow)
	for _, tx := range txs {
		for _, e := range tx.Entries {
			f, ok := out[e.AccountID]
			if !ok {
				f = accountFlow{debits: decimal.Zero, credits: decimal.Zero}
			}
			switch e.Side {
			case SideDebit:
				f.debits = f.debits.Add(e.Amount)
			case SideCredit:
				f.credits = f.credits.Add(e.Amount)
			}
			out[e.AccountID] = f
		}
	}
	return out, nil
}

// normalBalance returns the flow's net amount signed on the account type's
// normal side.
func (f accountFlow) normalBalance(t AccountType) decimal.Decimal {
	net := f.debits.Sub(f.credits)
	if t.NormalSide() == SideCredit {
		return net.Neg()
	}
	return net
}
