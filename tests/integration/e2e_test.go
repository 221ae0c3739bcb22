//go:build integration

// Package integration runs the full bank-gateway-client stack in-process
// over real TCP loopback listeners, the way SimaoGato-wealthflow's own
// tests/integration/e2e_test.go dials a live gRPC server rather than
// mocking it. TLS is swapped for insecure.NewCredentials() here purely to
// keep the test self-contained (no certs/ fixture to generate); production
// wiring always goes through internal/rpc/tlsconfig (see DESIGN.md).
package integration

import (
	"context"
	"net"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/distbank/platform/internal/adapter/grpcserver"
	"github.com/distbank/platform/internal/bank"
	"github.com/distbank/platform/internal/client"
	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/gateway"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/rpc/pb"
)

// testBank starts one bank participant on a loopback listener and returns
// its address; the server is stopped via t.Cleanup.
func testBank(t *testing.T, name string) string {
	t.Helper()
	b := bank.New(bank.Config{Name: name, Logger: logging.NewNoOp()})
	server := grpcserver.NewBankServer(b)

	grpcServer := grpclib.NewServer()
	pb.RegisterAuthServiceServer(grpcServer, server)
	pb.RegisterBankServiceServer(grpcServer, server)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	return lis.Addr().String()
}

// testGateway starts the coordinator in front of banks and returns its
// address; the server and coordinator are shut down via t.Cleanup.
func testGateway(t *testing.T, banks domain.BankDirectory) string {
	t.Helper()
	coordinator, err := gateway.New(banks, insecure.NewCredentials(), logging.NewNoOp(), nil)
	require.NoError(t, err)
	t.Cleanup(coordinator.Close)

	grpcServer := grpclib.NewServer()
	pb.RegisterGatewayServiceServer(grpcServer, grpcserver.NewGatewayServer(coordinator))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	return lis.Addr().String()
}

func dialClient(t *testing.T, gatewayAddr string) *client.Client {
	t.Helper()
	c, err := client.Dial(gatewayAddr, insecure.NewCredentials(), logging.NewNoOp(), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// TestEndToEndFlow exercises registration, login, balance, and a
// cross-bank transfer through the full gateway 2PC path (spec.md §8
// scenario S2 style coverage).
func TestEndToEndFlow(t *testing.T) {
	alphaAddr := testBank(t, "alpha")
	betaAddr := testBank(t, "beta")
	gatewayAddr := testGateway(t, domain.BankDirectory{"alpha": alphaAddr, "beta": betaAddr})

	c := dialClient(t, gatewayAddr)
	ctx := context.Background()

	regA, err := c.Register(ctx, "alpha", "alice", "pw", decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, regA.Success)

	regB, err := c.Register(ctx, "beta", "bob", "pw", decimal.NewFromInt(0))
	require.NoError(t, err)
	assert.True(t, regB.Success)

	loginA, err := c.Login(ctx, "alpha", "alice", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, loginA.Key)

	balBefore, err := c.Balance(ctx, "alpha", loginA.AccountNumber)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(balBefore.Balance))

	outcome := <-c.SubmitPayment(ctx, domain.TransactionRequest{
		TxnID:       "txn-cross-bank-1",
		FromBank:    "alpha",
		FromAccount: loginA.AccountNumber,
		ToBank:      "beta",
		ToAccount:   regB.AccountNumber,
		Amount:      decimal.NewFromInt(200),
	})
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Success)

	balAfter, err := c.Balance(ctx, "alpha", loginA.AccountNumber)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(800).Equal(balAfter.Balance))
}

// TestRejectsInsufficientFunds covers spec.md §8's "insufficient balance"
// scenario: Prepare must reject without mutating any balance.
func TestRejectsInsufficientFunds(t *testing.T) {
	alphaAddr := testBank(t, "alpha")
	betaAddr := testBank(t, "beta")
	gatewayAddr := testGateway(t, domain.BankDirectory{"alpha": alphaAddr, "beta": betaAddr})

	c := dialClient(t, gatewayAddr)
	ctx := context.Background()

	regA, err := c.Register(ctx, "alpha", "poor", "pw", decimal.NewFromInt(10))
	require.NoError(t, err)
	regB, err := c.Register(ctx, "beta", "rich", "pw", decimal.NewFromInt(0))
	require.NoError(t, err)

	_, err = c.Login(ctx, "alpha", "poor", "pw")
	require.NoError(t, err)

	outcome := <-c.SubmitPayment(ctx, domain.TransactionRequest{
		TxnID:       "txn-insufficient-1",
		FromBank:    "alpha",
		FromAccount: regA.AccountNumber,
		ToBank:      "beta",
		ToAccount:   regB.AccountNumber,
		Amount:      decimal.NewFromInt(9999),
	})
	require.NoError(t, outcome.Err)
	assert.False(t, outcome.Success)

	balance, err := c.Balance(ctx, "alpha", regA.AccountNumber)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(balance.Balance))
}

// TestDuplicateTxnIDRejected covers spec.md §3's at-most-once prepare
// invariant: replaying the same txn_id must not double-apply.
func TestDuplicateTxnIDRejected(t *testing.T) {
	alphaAddr := testBank(t, "alpha")
	gatewayAddr := testGateway(t, domain.BankDirectory{"alpha": alphaAddr})

	c := dialClient(t, gatewayAddr)
	ctx := context.Background()

	regA, err := c.Register(ctx, "alpha", "sender", "pw", decimal.NewFromInt(500))
	require.NoError(t, err)
	regB, err := c.Register(ctx, "alpha", "recipient", "pw", decimal.NewFromInt(0))
	require.NoError(t, err)

	_, err = c.Login(ctx, "alpha", "sender", "pw")
	require.NoError(t, err)
	_, err = c.Login(ctx, "alpha", "recipient", "pw")
	require.NoError(t, err)

	req := domain.TransactionRequest{
		TxnID:       "txn-dup-1",
		FromBank:    "alpha",
		FromAccount: regA.AccountNumber,
		ToBank:      "alpha",
		ToAccount:   regB.AccountNumber,
		Amount:      decimal.NewFromInt(100),
	}

	first := <-c.SubmitPayment(ctx, req)
	require.NoError(t, first.Err)
	assert.True(t, first.Success)

	second := <-c.SubmitPayment(ctx, req)
	require.NoError(t, second.Err)
	assert.False(t, second.Success)

	balance, err := c.Balance(ctx, "alpha", regB.AccountNumber)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(balance.Balance))
}
