// Package bank implements the bank participant: authoritative owner of an
// account shard and executor of its side of two-phase commit, per
// spec.md §4.1.
package bank

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go.uber.org/zap"

	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
)

// Bank owns a map of accounts and the prepared-entries for transactions in
// flight at this node. Every account and 2PC operation acquires mu for
// all of its reads and writes of bank state (Prepare consults the
// advisory bloom filter just before taking it) — spec.md §5: "a single
// mutex per bank over the accounts + prepared-entries pair is sufficient."
type Bank struct {
	mu sync.Mutex

	name      string
	accounts  domain.AccountStore
	prepared  domain.PreparedEntryStore
	finalized map[string]struct{} // every txn_id ever prepared here, exact and never pruned
	seen      *txnFilter
	audit     *auditTrail
	log       *logging.Logger
	metrics   *metrics.Collector
}

// Config bundles Bank construction options.
type Config struct {
	Name         string
	Accounts     domain.AccountStore // nil -> in-memory store
	AuditHistory int                 // 0 disables the audit trail
	Logger       *logging.Logger
	Metrics      *metrics.Collector // nil -> prepare outcomes go unrecorded
}

func New(cfg Config) *Bank {
	store := cfg.Accounts
	if store == nil {
		store = newMemStore()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNoOp()
	}
	return &Bank{
		name:      cfg.Name,
		accounts:  store,
		prepared:  newMemPreparedStore(),
		finalized: make(map[string]struct{}),
		seen:      newTxnFilter(10000),
		audit:     newAuditTrail(cfg.AuditHistory),
		log:       log.Named("bank").Named(cfg.Name),
		metrics:   cfg.Metrics,
	}
}

func (b *Bank) Name() string { return b.name }

// RegisterResult is the reply to RegisterAccount.
type RegisterResult struct {
	AccountID  string
	SessionKey string
	Success    bool
	Message    string
}

// RegisterAccount creates a new account at this bank. Fails with
// KindUsernameTaken if username already exists here. Per spec.md §4.1.
func (b *Bank) RegisterAccount(ctx context.Context, username, password string, initial decimal.Decimal) (RegisterResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists, err := b.accounts.GetByUsername(ctx, username); err != nil {
		return RegisterResult{}, err
	} else if exists {
		return RegisterResult{Success: false, Message: "username already taken"},
			domain.NewError(domain.KindUsernameTaken, "username already taken at this bank")
	}

	accountID := uuid.New().String()
	sessionKey := deriveSessionKey(username, password)

	acct := &domain.Account{
		AccountID:  accountID,
		Username:   username,
		Password:   password,
		Balance:    initial,
		SessionKey: sessionKey,
	}
	if err := b.accounts.Create(ctx, acct); err != nil {
		return RegisterResult{}, err
	}

	return RegisterResult{AccountID: accountID, SessionKey: sessionKey, Success: true, Message: "account registered"}, nil
}

// LoginResult is the reply to LoginAccount.
type LoginResult struct {
	AccountID  string
	SessionKey string
	Message    string
}

// LoginAccount authenticates against this bank's account store. Fails
// with KindWrongBank if bankName doesn't match, KindInvalidCredentials
// otherwise. Per spec.md §4.1.
func (b *Bank) LoginAccount(ctx context.Context, username, password, bankName string) (LoginResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if bankName != b.name {
		return LoginResult{}, domain.NewError(domain.KindWrongBank, "request routed to the wrong bank")
	}

	acct, exists, err := b.accounts.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if !exists || acct.Password != password {
		return LoginResult{}, domain.NewError(domain.KindInvalidCredentials, "invalid username or password")
	}

	return LoginResult{AccountID: acct.AccountID, SessionKey: acct.SessionKey, Message: "login successful"}, nil
}

// BalanceResult is the reply to GetBalance.
type BalanceResult struct {
	Balance decimal.Decimal
	Message string
}

// GetBalance returns the current balance for accountID, if sessionKey
// matches. Per spec.md §4.1.
func (b *Bank) GetBalance(ctx context.Context, accountID, sessionKey string) (BalanceResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, exists, err := b.accounts.GetByID(ctx, accountID)
	if err != nil {
		return BalanceResult{}, err
	}
	if !exists {
		return BalanceResult{}, domain.NewError(domain.KindNotFound, "account not found")
	}
	if acct.SessionKey != sessionKey {
		return BalanceResult{}, domain.NewError(domain.KindUnauthorized, "session key does not match")
	}

	return BalanceResult{Balance: acct.Balance, Message: "ok"}, nil
}

// Prepare runs the Prepare phase of 2PC for one transaction at this bank.
// Evaluated atomically under mu, implementing the state machine of
// spec.md §4.1 with the composite-role fix for intra-bank transfers
// (spec.md §9 Open Question 2).
func (b *Bank) Prepare(ctx context.Context, req domain.TransactionRequest) (canCommit bool, err error) {
	if b.seen.Seen(req.TxnID) {
		b.log.Debug("bloom pre-check flagged possible duplicate, falling through to authoritative check", zap.String("txn_id", req.TxnID))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		b.audit.record(auditEntry{TxnID: req.TxnID, Verb: "prepare", CanCommit: canCommit, At: time.Now()})
		if b.metrics != nil {
			b.metrics.RecordPrepare(canCommit)
		}
	}()

	if _, exists := b.prepared.Get(req.TxnID); exists {
		b.log.Warn("rejected duplicate prepare", zap.String("txn_id", req.TxnID))
		return false, nil
	}
	if _, exists := b.finalized[req.TxnID]; exists {
		// b.prepared only holds entries still in flight (Commit/Abort
		// delete them), so a replay arriving after the original txn_id
		// already finished needs this exact, never-pruned record to be
		// rejected. This is the sole authority for "already prepared
		// once" — the bloom filter above never rejects on its own.
		b.log.Warn("rejected duplicate prepare for already-finalized txn", zap.String("txn_id", req.TxnID))
		return false, nil
	}

	var role domain.Role
	var senderAcct *domain.Account

	if req.FromBank == b.name {
		if acct, exists, gerr := b.accounts.GetByID(ctx, req.FromAccount); gerr != nil {
			return false, gerr
		} else if exists {
			role |= domain.RoleSender
			senderAcct = acct
		}
	}
	if req.ToBank == b.name {
		if _, exists, gerr := b.accounts.GetByID(ctx, req.ToAccount); gerr != nil {
			return false, gerr
		} else if exists {
			role |= domain.RoleRecipient
		}
	}

	if role == domain.RoleNone {
		return false, nil
	}

	if role.Has(domain.RoleSender) {
		if senderAcct.Balance.LessThan(req.Amount) {
			return false, nil
		}
		newBalance := senderAcct.Balance.Sub(req.Amount)
		if err := b.accounts.UpdateBalance(ctx, senderAcct.AccountID, newBalance); err != nil {
			return false, err
		}
	}

	b.prepared.Put(&domain.PreparedEntry{
		TxnID:          req.TxnID,
		Role:           role,
		ReservedAmount: req.Amount,
		FromAccount:    req.FromAccount,
		ToAccount:      req.ToAccount,
	})
	b.finalized[req.TxnID] = struct{}{}
	b.seen.MarkSeen(req.TxnID)

	b.log.Info("prepared", zap.String("txn_id", req.TxnID), zap.Int("role", int(role)))
	return true, nil
}

// Commit finalizes txnID: if the entry's role includes recipient, credits
// toAccount by the reserved amount. Sender-only entries require no action
// here because funds were already debited in Prepare. Per spec.md §4.1.
func (b *Bank) Commit(ctx context.Context, txnID, toAccount string) (success bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		b.audit.record(auditEntry{TxnID: txnID, Verb: "commit", CanCommit: success, At: time.Now()})
	}()

	entry, exists := b.prepared.Get(txnID)
	if !exists {
		return false, nil
	}

	if entry.Role.Has(domain.RoleRecipient) {
		acct, exists, gerr := b.accounts.GetByID(ctx, toAccount)
		if gerr != nil {
			return false, gerr
		}
		if !exists {
			return false, domain.NewError(domain.KindNotFound, "recipient account not found")
		}
		newBalance := acct.Balance.Add(entry.ReservedAmount)
		if err := b.accounts.UpdateBalance(ctx, toAccount, newBalance); err != nil {
			return false, err
		}
	}

	b.prepared.Delete(txnID)
	return true, nil
}

// Abort releases txnID's reservation: if the entry's role includes
// sender, restores fromAccount's balance. Recipient-only entries require
// no restoration because they never credited. Per spec.md §4.1.
func (b *Bank) Abort(ctx context.Context, txnID, fromAccount string) (success bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		b.audit.record(auditEntry{TxnID: txnID, Verb: "abort", CanCommit: success, At: time.Now()})
	}()

	entry, exists := b.prepared.Get(txnID)
	if !exists {
		return false, nil
	}

	if entry.Role.Has(domain.RoleSender) {
		acct, exists, gerr := b.accounts.GetByID(ctx, fromAccount)
		if gerr != nil {
			return false, gerr
		}
		if !exists {
			return false, domain.NewError(domain.KindNotFound, "sender account not found")
		}
		newBalance := acct.Balance.Add(entry.ReservedAmount)
		if err := b.accounts.UpdateBalance(ctx, fromAccount, newBalance); err != nil {
			return false, err
		}
	}

	b.prepared.Delete(txnID)
	return true, nil
}

// AuditTrail returns the bank's recent 2PC decisions for operational
// inspection. See internal/bank/audit.go.
func (b *Bank) AuditTrail() []auditEntry {
	return b.audit.Recent()
}
