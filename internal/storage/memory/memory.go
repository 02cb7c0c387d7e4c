package memory

// Package memory provides the in-memory account store backing the registry.
// Nothing is persisted; a Store lives as long as the process.
import (
	"context"
	"sort"
	"sync"

	"github.com/tinoosan/atm/internal/atm"
	"github.com/tinoosan/atm/internal/errs"
)

// Store keeps accounts and their ledgers keyed by AccountKey.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu       sync.RWMutex
	accounts map[atm.AccountKey]atm.Account
	// Per-account ledger in insertion order
	txs map[atm.AccountKey][]atm.Transaction
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[atm.AccountKey]atm.Account),
		txs:      make(map[atm.AccountKey][]atm.Transaction),
	}
}

// Seed helpers for local dev/tests. They bypass registry validation.
func (s *Store) SeedAccount(a atm.Account) { s.mu.Lock(); s.accounts[a.Key] = a; s.mu.Unlock() }
func (s *Store) SeedTransaction(tx atm.Transaction) {
	s.mu.Lock()
	s.txs[tx.Key] = append(s.txs[tx.Key], tx)
	s.mu.Unlock()
}
func (s *Store) Reset() {
	s.mu.Lock()
	s.accounts = map[atm.AccountKey]atm.Account{}
	s.txs = map[atm.AccountKey][]atm.Transaction{}
	s.mu.Unlock()
}

// GetAccount returns the account for key or errs.ErrNotFound.
func (s *Store) GetAccount(_ context.Context, key atm.AccountKey) (atm.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[key]
	if !ok {
		return atm.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// ListAccounts returns all accounts ordered by card then PIN.
func (s *Store) ListAccounts(_ context.Context) ([]atm.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]atm.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Card == out[j].Key.Card {
			return out[i].Key.PIN < out[j].Key.PIN
		}
		return out[i].Key.Card < out[j].Key.Card
	})
	return out, nil
}

// TransactionsByKey returns a copy of one account's ledger.
func (s *Store) TransactionsByKey(_ context.Context, key atm.AccountKey) ([]atm.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.txs[key]
	out := make([]atm.Transaction, len(src))
	copy(out, src)
	return out, nil
}

// ListTransactions returns a copy of every non-empty ledger.
func (s *Store) ListTransactions(_ context.Context) (map[atm.AccountKey][]atm.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[atm.AccountKey][]atm.Transaction, len(s.txs))
	for k, src := range s.txs {
		cp := make([]atm.Transaction, len(src))
		copy(cp, src)
		out[k] = cp
	}
	return out, nil
}

// CreateAccount persists a new account with an empty ledger.
func (s *Store) CreateAccount(_ context.Context, a atm.Account) (atm.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.Key]; exists {
		return atm.Account{}, errs.ErrDuplicate
	}
	s.accounts[a.Key] = a
	s.txs[a.Key] = nil
	return a, nil
}

// ApplyTransaction stores the updated account and appends tx under one lock.
func (s *Store) ApplyTransaction(_ context.Context, a atm.Account, tx atm.Transaction) (atm.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.Key]; !ok {
		return atm.Account{}, errs.ErrNotFound
	}
	s.accounts[a.Key] = a
	s.txs[a.Key] = append(s.txs[a.Key], tx)
	return a, nil
}

// Ready reports whether the store can serve reads. The memory store always can.
func (s *Store) Ready(context.Context) error { return nil }
