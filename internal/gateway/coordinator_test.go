package gateway

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/rpc/pb"
)

// fakeBank is a scripted bankRPC double, letting ProcessPayment be
// exercised without a live gRPC dial (internal/gateway/directory.go's
// bankRPC interface exists for exactly this).
type fakeBank struct {
	mu           sync.Mutex
	canCommit    bool
	prepareCalls int
	commitCalls  int
	abortCalls   int
}

func (b *fakeBank) Prepare(ctx context.Context, req *pb.Transaction) (*pb.PrepareResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prepareCalls++
	return &pb.PrepareResponse{CanCommit: b.canCommit}, nil
}

func (b *fakeBank) Commit(ctx context.Context, req *pb.Transaction) (*pb.CommitResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commitCalls++
	return &pb.CommitResponse{Success: true}, nil
}

func (b *fakeBank) Abort(ctx context.Context, req *pb.Transaction) (*pb.AbortResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.abortCalls++
	return &pb.AbortResponse{Success: true}, nil
}

func (b *fakeBank) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	return &pb.GetBalanceResponse{}, nil
}

func (b *fakeBank) RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error) {
	return &pb.RegisterAccountResponse{Success: true}, nil
}

func (b *fakeBank) LoginAccount(ctx context.Context, req *pb.LoginAccountRequest) (*pb.LoginAccountResponse, error) {
	return &pb.LoginAccountResponse{}, nil
}

func (b *fakeBank) health() pb.BankHealth { return pb.BankHealth{Reachable: true} }
func (b *fakeBank) Close() error          { return nil }

func testCoordinator(banks map[string]bankRPC) *Coordinator {
	return &Coordinator{
		dir: &directory{byName: banks},
		log: logging.NewNoOp(),
	}
}

func txn(id, fromBank, fromAcct, toBank, toAcct string, amount int64) *pb.Transaction {
	return NewTransactionMessage(domain.TransactionRequest{
		TxnID: id, FromBank: fromBank, FromAccount: fromAcct,
		ToBank: toBank, ToAccount: toAcct, Amount: decimal.NewFromInt(amount),
	})
}

// TestProcessPayment_CommitsWhenAllBanksAgree covers the unanimous-prepare
// commit path of spec.md §4.2 across two distinct banks.
func TestProcessPayment_CommitsWhenAllBanksAgree(t *testing.T) {
	bankA := &fakeBank{canCommit: true}
	bankB := &fakeBank{canCommit: true}
	c := testCoordinator(map[string]bankRPC{"bank_a": bankA, "bank_b": bankB})

	resp, err := c.ProcessPayment(context.Background(), txn("t1", "bank_a", "acct1", "bank_b", "acct2", 100))
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.Equal(t, 1, bankA.commitCalls)
	assert.Equal(t, 1, bankB.commitCalls)
	assert.Equal(t, 0, bankA.abortCalls)
	assert.Equal(t, 0, bankB.abortCalls)
}

// TestProcessPayment_AbortsWhenAnyBankRejects covers spec.md §4.2's abort
// path: one bank's Prepare rejects, so the bank that did agree must be
// told to Abort and neither bank is told to Commit.
func TestProcessPayment_AbortsWhenAnyBankRejects(t *testing.T) {
	bankA := &fakeBank{canCommit: true}
	bankB := &fakeBank{canCommit: false}
	c := testCoordinator(map[string]bankRPC{"bank_a": bankA, "bank_b": bankB})

	resp, err := c.ProcessPayment(context.Background(), txn("t2", "bank_a", "acct1", "bank_b", "acct2", 100))
	require.NoError(t, err)
	assert.False(t, resp.Success)

	assert.Equal(t, 0, bankA.commitCalls)
	assert.Equal(t, 0, bankB.commitCalls)
	assert.Equal(t, 1, bankA.abortCalls)
	assert.Equal(t, 0, bankB.abortCalls) // bank_b never prepared, nothing to abort there
}

// TestProcessPayment_UnknownBankTakesPriorityOverInvalidAmount covers
// spec.md §8's S5 together with the ordering of spec.md §4.2 steps 1-2:
// an unknown to_bank must be reported even when the amount is also
// invalid, because bank resolution happens before Validate.
func TestProcessPayment_UnknownBankTakesPriorityOverInvalidAmount(t *testing.T) {
	bankA := &fakeBank{canCommit: true}
	c := testCoordinator(map[string]bankRPC{"bank_a": bankA})

	resp, err := c.ProcessPayment(context.Background(), txn("t5", "bank_a", "acct1", "bank_zeta", "acct2", -5))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "no bank registered")

	assert.Equal(t, 0, bankA.prepareCalls) // no RPC to any bank
}

// TestProcessPayment_InvalidAmountStillRejected covers spec.md §4.2 step 2
// when every named bank does exist.
func TestProcessPayment_InvalidAmountStillRejected(t *testing.T) {
	bankA := &fakeBank{canCommit: true}
	bankB := &fakeBank{canCommit: true}
	c := testCoordinator(map[string]bankRPC{"bank_a": bankA, "bank_b": bankB})

	resp, err := c.ProcessPayment(context.Background(), txn("t6", "bank_a", "acct1", "bank_b", "acct2", -5))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "amount must be greater than zero")
	assert.Equal(t, 0, bankA.prepareCalls)
	assert.Equal(t, 0, bankB.prepareCalls)
}
