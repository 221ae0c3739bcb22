package client

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/gateway"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/codec"
	"github.com/distbank/platform/internal/rpc/pb"
)

// Client is a single end user's connection to the gateway: it logs in,
// tracks session keys per (bank, account), and submits payments through
// an offline-queueing Sender so gateway outages are masked from the
// caller. Per spec.md §4.3.
type Client struct {
	conn     *grpc.ClientConn
	rpc      pb.GatewayServiceClient
	sessions *SessionStore
	queue    *Queue
	log      *logging.Logger
}

// Dial connects to the gateway at address with mutual TLS and starts the
// client's offline payment queue. mc may be nil, in which case offline
// queue depth is simply not recorded.
func Dial(address string, creds credentials.TransportCredentials, log *logging.Logger, mc *metrics.Collector) (*Client, error) {
	if log == nil {
		log = logging.NewNoOp()
	}
	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codec.Name)),
	)
	if err != nil {
		return nil, fmt.Errorf("client: dial gateway at %s: %w", address, err)
	}

	c := &Client{
		conn:     conn,
		rpc:      pb.NewGatewayServiceClient(conn),
		sessions: NewSessionStore(),
		log:      log.Named("client"),
	}
	c.queue = NewQueue(Config{Sender: c, Logger: log, Metrics: mc})
	return c, nil
}

func (c *Client) Close() {
	c.queue.Close()
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Register creates a new account at bankName.
func (c *Client) Register(ctx context.Context, bankName, username, password string, initial decimal.Decimal) (*pb.RegisterAccountResponse, error) {
	return c.rpc.RegisterAccount(ctx, &pb.RegisterAccountRequest{
		Username: username, Password: password, BankName: bankName, InitialAmount: initial,
	})
}

// Login authenticates against bankName and remembers the resulting
// session key for (bankName, accountID).
func (c *Client) Login(ctx context.Context, bankName, username, password string) (*pb.LoginAccountResponse, error) {
	resp, err := c.rpc.LoginAccount(ctx, &pb.LoginAccountRequest{
		Username: username, Password: password, BankName: bankName,
	})
	if err != nil {
		return nil, err
	}
	if resp.Key != "" {
		c.sessions.Put(bankName, resp.AccountNumber, resp.Key)
	}
	return resp, nil
}

// Balance fetches the current balance for an account this client has
// already logged into.
func (c *Client) Balance(ctx context.Context, bankName, accountID string) (*pb.GetBalanceResponse, error) {
	key, ok := c.sessions.Get(bankName, accountID)
	if !ok {
		return nil, fmt.Errorf("client: no session for account %s at bank %s; log in first", accountID, bankName)
	}
	return c.rpc.GetBalance(ctx, &pb.GetBalanceRequest{Number: accountID, BankName: bankName, Key: key})
}

// SubmitPayment enqueues req through the offline queue, returning a
// channel that receives the eventual outcome. A payment submitted while
// the queue is non-empty is appended after it, preserving this client's
// submission order (spec.md §4.3's FIFO property).
func (c *Client) SubmitPayment(ctx context.Context, req domain.TransactionRequest) <-chan Outcome {
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}
	if req.SenderSessionKey == "" {
		key, ok := c.sessions.Get(req.FromBank, req.FromAccount)
		if !ok {
			out := make(chan Outcome, 1)
			out <- Outcome{Err: fmt.Errorf("client: no session for account %s at bank %s; log in first", req.FromAccount, req.FromBank)}
			return out
		}
		req.SenderSessionKey = key
	}
	return c.queue.Submit(ctx, req)
}

// QueueDepth reports how many payments are currently waiting in the
// offline queue.
func (c *Client) QueueDepth() int { return c.queue.Depth() }

// QueueState reports the offline queue's current state.
func (c *Client) QueueState() State { return c.queue.State() }

// SendPayment implements Sender by calling the gateway's ProcessPayment
// RPC directly. A non-nil error here means a transport failure — the
// gateway never returns an RPC error for a business-level payment
// rejection (spec.md §7's propagation policy).
func (c *Client) SendPayment(ctx context.Context, req domain.TransactionRequest) (bool, string, error) {
	resp, err := c.rpc.ProcessPayment(ctx, gateway.NewTransactionMessage(req))
	if err != nil {
		return false, "", err
	}
	return resp.Success, resp.Message, nil
}
