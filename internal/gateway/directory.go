package gateway

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc/credentials"

	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/pb"
)

// bankRPC is the set of calls the coordinator makes against one bank.
// *bankClient is the only production implementation (a live gRPC
// connection wrapped in a circuit breaker); tests substitute a fake so
// ProcessPayment and friends can be exercised without a real dial.
type bankRPC interface {
	Prepare(ctx context.Context, req *pb.Transaction) (*pb.PrepareResponse, error)
	Commit(ctx context.Context, req *pb.Transaction) (*pb.CommitResponse, error)
	Abort(ctx context.Context, req *pb.Transaction) (*pb.AbortResponse, error)
	GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error)
	RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error)
	LoginAccount(ctx context.Context, req *pb.LoginAccountRequest) (*pb.LoginAccountResponse, error)
	health() pb.BankHealth
	Close() error
}

// directory holds one bankRPC per configured bank, dialed once at
// startup and reused for the gateway's lifetime.
type directory struct {
	mu     sync.RWMutex
	byName map[string]bankRPC
}

func newDirectory(banks domain.BankDirectory, creds credentials.TransportCredentials, log *logging.Logger, mc *metrics.Collector) (*directory, error) {
	d := &directory{byName: make(map[string]bankRPC, len(banks))}
	for name, addr := range banks {
		c, err := dialBank(name, addr, creds, log, mc)
		if err != nil {
			return nil, err
		}
		d.byName[name] = c
	}
	return d, nil
}

func (d *directory) get(bankName string) (bankRPC, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byName[bankName]
	if !ok {
		return nil, domain.NewError(domain.KindUnknownBank, fmt.Sprintf("no bank registered with name %q", bankName))
	}
	return c, nil
}

func (d *directory) all() map[string]bankRPC {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]bankRPC, len(d.byName))
	for k, v := range d.byName {
		out[k] = v
	}
	return out
}

func (d *directory) closeAll() {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.byName {
		_ = c.Close()
	}
}
