package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountStore defines the persistence interface for a single bank's
// account shard. The reference implementation (internal/bank/memstore.go) is
// in-memory; internal/adapter/repository/postgres satisfies the same interface against
// PostgreSQL, so a durable variant is a drop-in replacement per spec.md §6
// "Persisted state".
//
// Implementations are NOT required to be safe for concurrent use on their
// own — spec.md §5 places one mutex per bank around every call into the
// store, so the store itself may assume serialized access.
type AccountStore interface {
	// GetByUsername returns the account registered under username, or
	// (nil, false) if none exists.
	GetByUsername(ctx context.Context, username string) (*Account, bool, error)

	// GetByID returns the account with the given account_id, or
	// (nil, false) if none exists.
	GetByID(ctx context.Context, accountID string) (*Account, bool, error)

	// Create inserts a brand-new account. Callers have already verified
	// the username is unique within this bank.
	Create(ctx context.Context, acct *Account) error

	// UpdateBalance persists a new balance for the given account_id.
	UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error
}

// PreparedEntryStore defines the persistence interface for the in-flight
// 2PC reservations a bank is holding. Separate from AccountStore because a
// durable bank might reasonably keep these in a different table or not
// persist them at all (a crash loses in-flight reservations either way —
// see spec.md §9 point 1, a known gap this project does not close).
type PreparedEntryStore interface {
	Get(txnID string) (*PreparedEntry, bool)
	Put(entry *PreparedEntry)
	Delete(txnID string)
}
