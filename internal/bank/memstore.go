package bank

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/distbank/platform/internal/domain"
)

// memStore is the reference in-memory AccountStore. It assumes the caller
// (participant.go) already holds the bank's single mutex for the duration
// of every call — spec.md §5 "Bank participant locking".
type memStore struct {
	byID       map[string]*domain.Account
	byUsername map[string]*domain.Account
}

func newMemStore() *memStore {
	return &memStore{
		byID:       make(map[string]*domain.Account),
		byUsername: make(map[string]*domain.Account),
	}
}

func (s *memStore) GetByUsername(_ context.Context, username string) (*domain.Account, bool, error) {
	acct, ok := s.byUsername[username]
	return acct, ok, nil
}

func (s *memStore) GetByID(_ context.Context, accountID string) (*domain.Account, bool, error) {
	acct, ok := s.byID[accountID]
	return acct, ok, nil
}

func (s *memStore) Create(_ context.Context, acct *domain.Account) error {
	s.byID[acct.AccountID] = acct
	s.byUsername[acct.Username] = acct
	return nil
}

func (s *memStore) UpdateBalance(_ context.Context, accountID string, newBalance decimal.Decimal) error {
	acct, ok := s.byID[accountID]
	if !ok {
		return domain.NewError(domain.KindNotFound, "account not found")
	}
	acct.Balance = newBalance
	return nil
}

// memPreparedStore is the reference in-memory PreparedEntryStore.
type memPreparedStore struct {
	entries map[string]*domain.PreparedEntry
}

func newMemPreparedStore() *memPreparedStore {
	return &memPreparedStore{entries: make(map[string]*domain.PreparedEntry)}
}

func (s *memPreparedStore) Get(txnID string) (*domain.PreparedEntry, bool) {
	e, ok := s.entries[txnID]
	return e, ok
}

func (s *memPreparedStore) Put(entry *domain.PreparedEntry) {
	s.entries[entry.TxnID] = entry
}

func (s *memPreparedStore) Delete(txnID string) {
	delete(s.entries, txnID)
}
