package ledger

// Account registry operations: creation, lookup, listing and metadata edits
// over the chart of accounts. Type is fixed at creation and accounts are
// never deleted here; deactivation, if needed, is a storage-layer concern.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CreateAccount validates and persists a new account. It fails with
// ErrDuplicateAccount when the id is taken, ErrUnknownParent when parentID
// is given but absent, and ErrInvalidName for an empty name.
func (l *Ledger) CreateAccount(ctx context.Context, id, name string, typ AccountType, parentID string) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == "" {
		return Account{}, fmt.Errorf("account: %w", ErrEmptyID)
	}
	if strings.TrimSpace(name) == "" {
		return Account{}, fmt.Errorf("account %q: %w", id, ErrInvalidName)
	}
	if !typ.Valid() {
		return Account{}, fmt.Errorf("account %q: type %q: %w", id, typ, ErrInvalidType)
	}
	if _, err := l.store.LoadAccount(ctx, id); err == nil {
		return Account{}, fmt.Errorf("%q: %w", id, ErrDuplicateAccount)
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, fmt.Errorf("load account %q: %w", id, err)
	}
	if parentID != "" {
		if _, err := l.store.LoadAccount(ctx, parentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return Account{}, fmt.Errorf("%q: %w", parentID, ErrUnknownParent)
			}
			return Account{}, fmt.Errorf("load parent %q: %w", parentID, err)
		}
	}
	a := Account{ID: id, Name: name, Type: typ, ParentID: parentID}
	if err := l.store.SaveAccount(ctx, a); err != nil {
		return Account{}, fmt.Errorf("save account %q: %w", id, err)
	}
	return a, nil
}

// GetAccount returns the account with the given id or ErrNotFound.
func (l *Ledger) GetAccount(ctx context.Context, id string) (Account, error) {
	a, err := l.store.LoadAccount(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
		}
		return Account{}, fmt.Errorf("load account %q: %w", id, err)
	}
	return a, nil
}

// ListAccounts returns accounts in insertion order, optionally filtered to
// the given types.
func (l *Ledger) ListAccounts(ctx context.Context, types ...AccountType) ([]Account, error) {
	accounts, err := l.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if len(types) == 0 {
		return accounts, nil
	}
	want := make(map[AccountType]struct{}, len(types))
	for _, t := range types {
		want[t] = struct{}{}
	}
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := want[a.Type]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateAccount applies metadata edits (name, parent, metadata) to an
// existing account. The id and type are immutable; a type change fails with
// ErrImmutableType. Reparenting is checked against the ancestor chain so an
// account can never become its own ancestor.
func (l *Ledger) UpdateAccount(ctx context.Context, a Account) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.store.LoadAccount(ctx, a.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, fmt.Errorf("account %q: %w", a.ID, ErrNotFound)
		}
		return Account{}, fmt.Errorf("load account %q: %w", a.ID, err)
	}
	if a.Type != current.Type {
		return Account{}, fmt.Errorf("account %q: %q -> %q: %w", a.ID, current.Type, a.Type, ErrImmutableType)
	}
	if strings.TrimSpace(a.Name) == "" {
		return Account{}, fmt.Errorf("account %q: %w", a.ID, ErrInvalidName)
	}
	if a.ParentID != "" {
		if err := l.checkAncestry(ctx, a.ID, a.ParentID); err != nil {
			return Account{}, err
		}
	}
	if err := l.store.SaveAccount(ctx, a); err != nil {
		return Account{}, fmt.Errorf("save account %q: %w", a.ID, err)
	}
	return a, nil
}

// checkAncestry walks the parent chain starting at parentID and fails with
// ErrParentCycle if it reaches id (or revisits any account), or with
// ErrUnknownParent if a link in the chain does not resolve.
func (l *Ledger) checkAncestry(ctx context.Context, id, parentID string) error {
	seen := map[string]struct{}{id: {}}
	cur := parentID
	for cur != "" {
		if _, ok := seen[cur]; ok {
			return fmt.Errorf("account %q: parent %q: %w", id, parentID, ErrParentCycle)
		}
		seen[cur] = struct{}{}
		p, err := l.store.LoadAccount(ctx, cur)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%q: %w", cur, ErrUnknownParent)
			}
			return fmt.Errorf("load parent %q: %w", cur, err)
		}
		cur = p.ParentID
	}
	return nil
}
