package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/distbank/platform/internal/domain"
)

// accountRepository implements domain.AccountStore against a single
// bank's "accounts" table. This is the durable drop-in replacement for the
// in-memory store that spec.md §6's "Persisted state" note anticipates:
// same interface, same caller-holds-the-mutex contract, different backing
// store.
type accountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) domain.AccountStore {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, bool, error) {
	return r.scanOne(ctx, `SELECT account_id, username, password, balance, session_key FROM accounts WHERE username = $1`, username)
}

func (r *accountRepository) GetByID(ctx context.Context, accountID string) (*domain.Account, bool, error) {
	return r.scanOne(ctx, `SELECT account_id, username, password, balance, session_key FROM accounts WHERE account_id = $1`, accountID)
}

func (r *accountRepository) scanOne(ctx context.Context, query string, arg string) (*domain.Account, bool, error) {
	var acct domain.Account
	var balanceStr string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&acct.AccountID,
		&acct.Username,
		&acct.Password,
		&balanceStr,
		&acct.SessionKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query account: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, false, fmt.Errorf("parse balance: %w", err)
	}
	acct.Balance = balance

	return &acct, true, nil
}

func (r *accountRepository) Create(ctx context.Context, acct *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (account_id, username, password, balance, session_key) VALUES ($1, $2, $3, $4, $5)`,
		acct.AccountID, acct.Username, acct.Password, acct.Balance.String(), acct.SessionKey,
	)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = $1 WHERE account_id = $2`,
		newBalance.String(), accountID,
	)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if n == 0 {
		return domain.NewError(domain.KindNotFound, "account not found")
	}
	return nil
}
