package gateway

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/credentials"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/pb"
)

// Coordinator is the stateless two-phase-commit driver described in
// spec.md §4.2. It holds no account data; every RegisterAccount/
// LoginAccount/GetBalance call is routed straight to the owning bank, and
// every payment drives Prepare/Commit/Abort across the one or two banks
// the transaction touches.
type Coordinator struct {
	dir       *directory
	log       *logging.Logger
	metrics   *metrics.Collector
	startedAt time.Time
}

// New builds a Coordinator from a static bank directory. creds dials every
// bank with mutual TLS (internal/rpc/tlsconfig). mc may be nil, in which
// case payment/breaker metrics are simply not recorded.
func New(banks domain.BankDirectory, creds credentials.TransportCredentials, log *logging.Logger, mc *metrics.Collector) (*Coordinator, error) {
	if log == nil {
		log = logging.NewNoOp()
	}
	d, err := newDirectory(banks, creds, log, mc)
	if err != nil {
		return nil, err
	}
	return &Coordinator{dir: d, log: log.Named("coordinator"), metrics: mc, startedAt: time.Now()}, nil
}

func (c *Coordinator) Close() {
	c.dir.closeAll()
}

// RegisterAccount routes to bankName's AuthService.
func (c *Coordinator) RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error) {
	bc, err := c.dir.get(req.BankName)
	if err != nil {
		return nil, err
	}
	return bc.RegisterAccount(ctx, req)
}

// LoginAccount routes to bankName's AuthService.
func (c *Coordinator) LoginAccount(ctx context.Context, req *pb.LoginAccountRequest) (*pb.LoginAccountResponse, error) {
	bc, err := c.dir.get(req.BankName)
	if err != nil {
		return nil, err
	}
	return bc.LoginAccount(ctx, req)
}

// GetBalance routes to bankName's BankService.
func (c *Coordinator) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	bc, err := c.dir.get(req.BankName)
	if err != nil {
		return nil, err
	}
	return bc.GetBalance(ctx, req)
}

// ProcessPayment drives the two-phase commit protocol of spec.md §4.2 for
// one transaction: Prepare at every distinct bank the transaction touches,
// then Commit everywhere if every bank agreed, or Abort everywhere it was
// accepted otherwise. Prepare calls for distinct banks run concurrently
// (errgroup), since they are independent until the commit/abort decision.
func (c *Coordinator) ProcessPayment(ctx context.Context, txn *pb.Transaction) (*pb.ProcessPaymentResponse, error) {
	req := toDomainRequest(txn)

	banks := distinctBanks(req.FromBank, req.ToBank)
	clients := make(map[string]bankRPC, len(banks))
	for _, name := range banks {
		bc, err := c.dir.get(name)
		if err != nil {
			return &pb.ProcessPaymentResponse{Success: false, Message: err.Error()}, nil
		}
		clients[name] = bc
	}

	if err := req.Validate(); err != nil {
		return &pb.ProcessPaymentResponse{Success: false, Message: err.Error()}, nil
	}

	prepared := make(map[string]bool, len(banks))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, bc := range clients {
		name, bc := name, bc
		g.Go(func() error {
			resp, err := bc.Prepare(gctx, txn)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.log.Warn("prepare failed", zap.String("bank", name), zap.String("txn_id", req.TxnID), zap.Error(err))
				prepared[name] = false
				return nil
			}
			prepared[name] = resp.CanCommit
			return nil
		})
	}
	_ = g.Wait()

	allAgreed := len(prepared) == len(banks)
	for _, ok := range prepared {
		if !ok {
			allAgreed = false
		}
	}

	if allAgreed {
		c.log.Warn("commit decision reached, sending commit", zap.String("txn_id", req.TxnID), zap.Strings("banks", banks))
		var cg errgroup.Group
		for name, bc := range clients {
			name, bc := name, bc
			cg.Go(func() error {
				if _, err := bc.Commit(context.Background(), txn); err != nil {
					c.log.Error("commit failed after unanimous prepare", zap.String("bank", name), zap.String("txn_id", req.TxnID), zap.Error(err))
				}
				return nil
			})
		}
		_ = cg.Wait()
		c.log.Info("payment committed", zap.String("txn_id", req.TxnID))
		if c.metrics != nil {
			c.metrics.RecordPayment(true)
		}
		return &pb.ProcessPaymentResponse{Success: true, Message: "payment committed"}, nil
	}

	var ag errgroup.Group
	for name, ok := range prepared {
		if !ok {
			continue
		}
		name, bc := name, clients[name]
		ag.Go(func() error {
			if _, err := bc.Abort(context.Background(), txn); err != nil {
				c.log.Error("abort failed after rejected prepare", zap.String("bank", name), zap.String("txn_id", req.TxnID), zap.Error(err))
			}
			return nil
		})
	}
	_ = ag.Wait()
	c.log.Info("payment aborted", zap.String("txn_id", req.TxnID))
	if c.metrics != nil {
		c.metrics.RecordPayment(false)
	}
	return &pb.ProcessPaymentResponse{Success: false, Message: "payment aborted: one or more banks rejected prepare"}, nil
}

// HealthCheck reports uptime and the circuit breaker state of every
// configured bank. Named in the GatewayService contract but otherwise
// unspecified there (see SPEC_FULL.md §8).
func (c *Coordinator) HealthCheck(ctx context.Context) *pb.HealthCheckResponse {
	banks := make(map[string]pb.BankHealth)
	for name, bc := range c.dir.all() {
		banks[name] = bc.health()
	}
	return &pb.HealthCheckResponse{
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		Banks:         banks,
	}
}

func distinctBanks(a, b string) []string {
	if a == b {
		return []string{a}
	}
	return []string{a, b}
}

func toDomainRequest(t *pb.Transaction) domain.TransactionRequest {
	var ts time.Time
	if t.Timestamp != nil {
		ts = t.Timestamp.AsTime()
	}
	return domain.TransactionRequest{
		TxnID:            t.ID,
		FromBank:         t.FromBank,
		FromAccount:      t.FromAccount,
		ToBank:           t.ToBank,
		ToAccount:        t.ToAccount,
		Amount:           t.Amount,
		Timestamp:        ts,
		SenderSessionKey: t.Key,
	}
}

// NewTransactionMessage builds the wire Transaction for a domain request,
// stamping the current time if none is set. Used by adapter/grpcserver
// and internal/client.
func NewTransactionMessage(req domain.TransactionRequest) *pb.Transaction {
	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &pb.Transaction{
		ID:          req.TxnID,
		FromAccount: req.FromAccount,
		FromBank:    req.FromBank,
		ToAccount:   req.ToAccount,
		ToBank:      req.ToBank,
		Amount:      req.Amount,
		Timestamp:   timestamppb.New(ts),
		Key:         req.SenderSessionKey,
	}
}
