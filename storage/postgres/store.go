// Package postgres provides a pgx-backed ledger.Storage.
//
// It is intentionally small and explicit. Migrations that create the
// expected schema live under db/migrations. Amounts travel as text and are
// parsed into exact decimals on the way in and out; they are never
// represented as binary floating point.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/khatabase/khata/internal/meta"
	"github.com/khatabase/khata/ledger"
)

// Store holds a pgx connection pool and implements ledger.Storage. All
// methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

var _ ledger.Storage = (*Store)(nil)

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// SaveAccount inserts or updates an account row.
func (s *Store) SaveAccount(ctx context.Context, a ledger.Account) error {
	md, err := a.Metadata.MarshalStableJSON()
	if err != nil {
		return err
	}
	var parent *string
	if a.ParentID != "" {
		parent = &a.ParentID
	}
	_, err = s.pool.Exec(ctx, `
		insert into accounts (id, name, type, parent_id, metadata)
		values ($1, $2, $3, $4, $5)
		on conflict (id) do update set name = $2, parent_id = $4, metadata = $5
	`, a.ID, a.Name, string(a.Type), parent, md)
	return err
}

// LoadAccount returns ledger.ErrNotFound for unknown ids.
func (s *Store) LoadAccount(ctx context.Context, id string) (ledger.Account, error) {
	row := s.pool.QueryRow(ctx, `
		select id, name, type, coalesce(parent_id, ''), metadata
		from accounts where id = $1
	`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Account{}, ledger.ErrNotFound
		}
		return ledger.Account{}, err
	}
	return a, nil
}

// ListAccounts returns all accounts in insertion order.
func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.pool.Query(ctx, `
		select id, name, type, coalesce(parent_id, ''), metadata
		from accounts order by seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(r rowScanner) (ledger.Account, error) {
	var a ledger.Account
	var typ string
	var mdBytes []byte
	if err := r.Scan(&a.ID, &a.Name, &typ, &a.ParentID, &mdBytes); err != nil {
		return ledger.Account{}, err
	}
	a.Type = ledger.AccountType(typ)
	if len(mdBytes) > 0 {
		var m meta.Metadata
		if err := m.UnmarshalJSON(mdBytes); err == nil {
			a.Metadata = m
		}
	}
	return a, nil
}

// SaveTransaction writes the header and all entries inside one database
// transaction so a partial entry set can never become visible.
func (s *Store) SaveTransaction(ctx context.Context, t ledger.Transaction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	md, err := t.Metadata.MarshalStableJSON()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		insert into transactions (id, date, description, metadata)
		values ($1, $2, $3, $4)
	`, t.ID, ledger.Day(t.Date), t.Description, md); err != nil {
		return err
	}
	for i, e := range t.Entries {
		if _, err := tx.Exec(ctx, `
			insert into entries (transaction_id, position, account_id, side, amount, memo)
			values ($1, $2, $3, $4, $5::numeric, $6)
		`, t.ID, i, e.AccountID, string(e.Side), e.Amount.String(), e.Memo); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// LoadTransaction returns ledger.ErrNotFound for unknown ids.
func (s *Store) LoadTransaction(ctx context.Context, id string) (ledger.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		select id, date, description, metadata from transactions where id = $1
	`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Transaction{}, ledger.ErrNotFound
		}
		return ledger.Transaction{}, err
	}
	entries, err := s.entriesFor(ctx, []string{id})
	if err != nil {
		return ledger.Transaction{}, err
	}
	t.Entries = entries[id]
	return t, nil
}

// ListTransactions returns transactions in the inclusive [from, to] day
// range ordered by (date, insertion).
func (s *Store) ListTransactions(ctx context.Context, from, to *time.Time) ([]ledger.Transaction, error) {
	q := `select id, date, description, metadata from transactions`
	var args []any
	var conds []string
	if from != nil {
		args = append(args, ledger.Day(*from))
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, ledger.Day(*to))
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " where " + strings.Join(conds, " and ")
	}
	q += " order by date, seq"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Transaction, 0)
	ids := make([]string, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}
	entries, err := s.entriesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Entries = entries[out[i].ID]
	}
	return out, nil
}

func scanTransaction(r rowScanner) (ledger.Transaction, error) {
	var t ledger.Transaction
	var mdBytes []byte
	if err := r.Scan(&t.ID, &t.Date, &t.Description, &mdBytes); err != nil {
		return ledger.Transaction{}, err
	}
	t.Date = ledger.Day(t.Date)
	if len(mdBytes) > 0 {
		var m meta.Metadata
		if err := m.UnmarshalJSON(mdBytes); err == nil {
			t.Metadata = m
		}
	}
	return t, nil
}

// entriesFor loads the entries of the given transactions keyed by id.
// Amounts come back as text and are parsed into exact decimals.
func (s *Store) entriesFor(ctx context.Context, ids []string) (map[string][]ledger.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		select transaction_id, account_id, side, amount::text, memo
		from entries where transaction_id = any($1)
		order by transaction_id, position
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]ledger.Entry, len(ids))
	for rows.Next() {
		var txID, accountID, side, amount, memo string
		if err := rows.Scan(&txID, &accountID, &side, &amount, &memo); err != nil {
			return nil, err
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("entry amount %q: %w", amount, err)
		}
		out[txID] = append(out[txID], ledger.Entry{
			AccountID: accountID,
			Side:      ledger.Side(side),
			Amount:    amt,
			Memo:      memo,
		})
	}
	return out, rows.Err()
}
