package bank

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distbank/platform/internal/domain"
)

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestBank(t *testing.T, name string) *Bank {
	t.Helper()
	return New(Config{Name: name, AuditHistory: 16})
}

func register(t *testing.T, b *Bank, username, password string, initial decimal.Decimal) RegisterResult {
	t.Helper()
	res, err := b.RegisterAccount(context.Background(), username, password, initial)
	require.NoError(t, err)
	require.True(t, res.Success)
	return res
}

func TestRegisterAccount_UsernameTaken(t *testing.T) {
	b := newTestBank(t, "bank_a")
	register(t, b, "alice", "pw", amt("1000"))

	_, err := b.RegisterAccount(context.Background(), "alice", "different", amt("5"))
	require.Error(t, err)
	assert.Equal(t, domain.KindUsernameTaken, domain.KindOf(err))
}

func TestLoginAccount_WrongBankAndBadCredentials(t *testing.T) {
	b := newTestBank(t, "bank_a")
	register(t, b, "alice", "pw", amt("1000"))

	_, err := b.LoginAccount(context.Background(), "alice", "pw", "bank_zeta")
	require.Error(t, err)
	assert.Equal(t, domain.KindWrongBank, domain.KindOf(err))

	_, err = b.LoginAccount(context.Background(), "alice", "wrong", "bank_a")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidCredentials, domain.KindOf(err))

	res, err := b.LoginAccount(context.Background(), "alice", "pw", "bank_a")
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionKey)
}

func TestGetBalance_Unauthorized(t *testing.T) {
	b := newTestBank(t, "bank_a")
	reg := register(t, b, "alice", "pw", amt("1000"))

	_, err := b.GetBalance(context.Background(), reg.AccountID, "wrong-key")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	bal, err := b.GetBalance(context.Background(), reg.AccountID, reg.SessionKey)
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(amt("1000")))
}

func TestIntraBankTransfer_S1(t *testing.T) {
	ctx := context.Background()
	b := newTestBank(t, "bank_a")
	alice := register(t, b, "alice", "pw", amt("1000"))
	bob := register(t, b, "bob", "pw", amt("500"))

	req := domain.TransactionRequest{
		TxnID: "t1", FromBank: "bank_a", FromAccount: alice.AccountID,
		ToBank: "bank_a", ToAccount: bob.AccountID, Amount: amt("200"),
	}

	can, err := b.Prepare(ctx, req)
	require.NoError(t, err)
	require.True(t, can)

	okCommit, err := b.Commit(ctx, req.TxnID, bob.AccountID)
	require.NoError(t, err)
	require.True(t, okCommit)

	aliceBal, _ := b.GetBalance(ctx, alice.AccountID, alice.SessionKey)
	bobBal, _ := b.GetBalance(ctx, bob.AccountID, bob.SessionKey)
	assert.True(t, aliceBal.Balance.Equal(amt("800")))
	assert.True(t, bobBal.Balance.Equal(amt("700")))
}

func TestIntraBankTransfer_AbortRestoresSender(t *testing.T) {
	// Regression test for spec.md §9 Open Question 2: an intra-bank
	// transfer must record a composite sender+recipient role so Abort
	// still restores the sender's funds.
	ctx := context.Background()
	b := newTestBank(t, "bank_a")
	alice := register(t, b, "alice", "pw", amt("1000"))
	bob := register(t, b, "bob", "pw", amt("500"))

	req := domain.TransactionRequest{
		TxnID: "t1", FromBank: "bank_a", FromAccount: alice.AccountID,
		ToBank: "bank_a", ToAccount: bob.AccountID, Amount: amt("200"),
	}

	can, err := b.Prepare(ctx, req)
	require.NoError(t, err)
	require.True(t, can)

	ok, err := b.Abort(ctx, req.TxnID, alice.AccountID)
	require.NoError(t, err)
	require.True(t, ok)

	aliceBal, _ := b.GetBalance(ctx, alice.AccountID, alice.SessionKey)
	bobBal, _ := b.GetBalance(ctx, bob.AccountID, bob.SessionKey)
	assert.True(t, aliceBal.Balance.Equal(amt("1000")), "sender must be restored")
	assert.True(t, bobBal.Balance.Equal(amt("500")), "recipient was never credited")
}

func TestPrepare_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	b := newTestBank(t, "bank_a")
	alice := register(t, b, "alice", "pw", amt("100"))
	bob := register(t, b, "bob", "pw", amt("0"))

	req := domain.TransactionRequest{
		TxnID: "t3", FromBank: "bank_a", FromAccount: alice.AccountID,
		ToBank: "bank_a", ToAccount: bob.AccountID, Amount: amt("1000"),
	}
	can, err := b.Prepare(ctx, req)
	require.NoError(t, err)
	assert.False(t, can)

	aliceBal, _ := b.GetBalance(ctx, alice.AccountID, alice.SessionKey)
	assert.True(t, aliceBal.Balance.Equal(amt("100")), "no state change on rejected prepare")
}

func TestPrepare_DuplicateTxnRejected(t *testing.T) {
	ctx := context.Background()
	b := newTestBank(t, "bank_a")
	alice := register(t, b, "alice", "pw", amt("1000"))
	bob := register(t, b, "bob", "pw", amt("500"))

	req := domain.TransactionRequest{
		TxnID: "t1", FromBank: "bank_a", FromAccount: alice.AccountID,
		ToBank: "bank_a", ToAccount: bob.AccountID, Amount: amt("200"),
	}

	can1, err := b.Prepare(ctx, req)
	require.NoError(t, err)
	require.True(t, can1)
	_, err = b.Commit(ctx, req.TxnID, bob.AccountID)
	require.NoError(t, err)

	can2, err := b.Prepare(ctx, req)
	require.NoError(t, err)
	assert.False(t, can2, "duplicate prepare for an already-prepared txn_id must be rejected")

	aliceBal, _ := b.GetBalance(ctx, alice.AccountID, alice.SessionKey)
	assert.True(t, aliceBal.Balance.Equal(amt("800")), "duplicate prepare must cause no balance change")
}

func TestCommitAbort_NoEntryReturnsFailure(t *testing.T) {
	ctx := context.Background()
	b := newTestBank(t, "bank_a")
	alice := register(t, b, "alice", "pw", amt("1000"))

	ok, err := b.Commit(ctx, "never-prepared", alice.AccountID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.Abort(ctx, "never-prepared", alice.AccountID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrepare_NoNegativeBalanceUnderConcurrentAttempts(t *testing.T) {
	// Property: for any interleaving of Prepares against the same sender,
	// the balance never goes negative (spec.md §8 property 1).
	ctx := context.Background()
	b := newTestBank(t, "bank_a")
	alice := register(t, b, "alice", "pw", amt("100"))
	bob := register(t, b, "bob", "pw", amt("0"))

	const attempts = 20
	results := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			req := domain.TransactionRequest{
				TxnID: txnIDFor(i), FromBank: "bank_a", FromAccount: alice.AccountID,
				ToBank: "bank_a", ToAccount: bob.AccountID, Amount: amt("10"),
			}
			can, err := b.Prepare(ctx, req)
			results <- err == nil && can
		}(i)
	}

	accepted := 0
	for i := 0; i < attempts; i++ {
		if <-results {
			accepted++
		}
	}

	assert.LessOrEqual(t, accepted, 10, "sender only had 100 to reserve at 10 each")

	bal, _ := b.GetBalance(ctx, alice.AccountID, alice.SessionKey)
	assert.True(t, bal.Balance.GreaterThanOrEqual(decimal.Zero), "balance must never go negative")
}

func txnIDFor(i int) string {
	return "concurrent-" + string(rune('a'+i))
}
