// Package memory provides an in-memory ledger.Storage used for development
// and tests. It keeps code paths easy to follow while allowing a real
// database backend to be plugged in later.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/khatabase/khata/ledger"
)

// txKey orders transactions per the storage contract: ascending by
// (date, insertion sequence).
type txKey struct {
	date time.Time
	seq  int
	id   string
}

// Store is an in-memory implementation of ledger.Storage, guarded by an
// RWMutex for concurrent reads and writes. Saved values are copied on the
// way in and out so callers can never mutate persisted state.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]ledger.Account
	accountOrder []string
	txs          map[string]ledger.Transaction
	txOrder      []txKey
	seq          int
}

var _ ledger.Storage = (*Store)(nil)

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[string]ledger.Account),
		txs:      make(map[string]ledger.Transaction),
	}
}

// Reset drops all stored state. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]ledger.Account)
	s.accountOrder = nil
	s.txs = make(map[string]ledger.Transaction)
	s.txOrder = nil
	s.seq = 0
}

// SaveAccount inserts or updates an account. First-time ids join the
// insertion order index.
func (s *Store) SaveAccount(_ context.Context, a ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		s.accountOrder = append(s.accountOrder, a.ID)
	}
	a.Metadata = a.Metadata.Clone()
	s.accounts[a.ID] = a
	return nil
}

// LoadAccount returns ledger.ErrNotFound for unknown ids.
func (s *Store) LoadAccount(_ context.Context, id string) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return ledger.Account{}, ledger.ErrNotFound
	}
	a.Metadata = a.Metadata.Clone()
	return a, nil
}

// ListAccounts returns all accounts in insertion order.
func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		a := s.accounts[id]
		a.Metadata = a.Metadata.Clone()
		out = append(out, a)
	}
	return out, nil
}

// SaveTransaction persists a deep copy of tx and indexes it by (date, seq).
func (s *Store) SaveTransaction(_ context.Context, tx ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	cp := copyTx(tx)
	cp.Date = ledger.Day(cp.Date)
	s.txs[cp.ID] = cp
	s.insertTxIndexLocked(txKey{date: cp.Date, seq: s.seq, id: cp.ID})
	return nil
}

// LoadTransaction returns ledger.ErrNotFound for unknown ids.
func (s *Store) LoadTransaction(_ context.Context, id string) (ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txs[id]
	if !ok {
		return ledger.Transaction{}, ledger.ErrNotFound
	}
	return copyTx(tx), nil
}

// ListTransactions returns transactions within the inclusive [from, to] day
// range in (date, insertion) order. Nil bounds leave that side open.
func (s *Store) ListTransactions(_ context.Context, from, to *time.Time) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, 0, len(s.txOrder))
	for _, k := range s.txOrder {
		if from != nil && k.date.Before(ledger.Day(*from)) {
			continue
		}
		if to != nil && k.date.After(ledger.Day(*to)) {
			continue
		}
		out = append(out, copyTx(s.txs[k.id]))
	}
	return out, nil
}

// insertTxIndexLocked inserts k keeping the index sorted asc by (date, seq).
// Caller must hold the write lock.
func (s *Store) insertTxIndexLocked(k txKey) {
	i := sort.Search(len(s.txOrder), func(i int) bool {
		if s.txOrder[i].date.After(k.date) {
			return true
		}
		return s.txOrder[i].date.Equal(k.date) && s.txOrder[i].seq > k.seq
	})
	s.txOrder = append(s.txOrder, txKey{})
	copy(s.txOrder[i+1:], s.txOrder[i:])
	s.txOrder[i] = k
}

func copyTx(tx ledger.Transaction) ledger.Transaction {
	cp := tx
	cp.Entries = append([]ledger.Entry(nil), tx.Entries...)
	cp.Metadata = tx.Metadata.Clone()
	return cp
}
