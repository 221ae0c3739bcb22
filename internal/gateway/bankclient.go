// Package gateway implements the stateless payment coordinator: it holds
// no account state of its own, routes RegisterAccount/LoginAccount/
// GetBalance to the owning bank, and drives two-phase commit across one or
// two bank participants for ProcessPayment. Per spec.md §4.2.
package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/codec"
	"github.com/distbank/platform/internal/rpc/pb"
)

// bankClient wraps one bank's gRPC connection with a circuit breaker, so a
// wedged or unreachable bank fails fast for subsequent calls instead of
// piling up timeouts across every in-flight payment. Grounded on
// hvitorino-cache-chain's ResilientLayer (pkg/resilience/layer.go).
type bankClient struct {
	name string
	conn *grpc.ClientConn
	rpc  pb.BankServiceClient
	auth pb.AuthServiceClient
	cb   *gobreaker.CircuitBreaker

	mu            sync.Mutex
	lastSuccessAt time.Time
}

func dialBank(name, address string, creds credentials.TransportCredentials, log *logging.Logger, mc *metrics.Collector) (*bankClient, error) {
	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codec.Name)),
	)
	if err != nil {
		return nil, fmt.Errorf("gateway: dial bank %s at %s: %w", name, address, err)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(breakerName string, from, to gobreaker.State) {
			if mc != nil {
				mc.RecordBreakerState(breakerName, int(to))
			}
			if to == gobreaker.StateOpen {
				logCircuitTrip(log, breakerName)
			}
		},
	})

	return &bankClient{
		name: name,
		conn: conn,
		rpc:  pb.NewBankServiceClient(conn),
		auth: pb.NewAuthServiceClient(conn),
		cb:   cb,
	}, nil
}

func (c *bankClient) execute(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	result, err := c.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.lastSuccessAt = time.Now()
	c.mu.Unlock()
	return result, nil
}

func (c *bankClient) Prepare(ctx context.Context, req *pb.Transaction) (*pb.PrepareResponse, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.rpc.Prepare(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*pb.PrepareResponse), nil
}

func (c *bankClient) Commit(ctx context.Context, req *pb.Transaction) (*pb.CommitResponse, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.rpc.Commit(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*pb.CommitResponse), nil
}

func (c *bankClient) Abort(ctx context.Context, req *pb.Transaction) (*pb.AbortResponse, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.rpc.Abort(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*pb.AbortResponse), nil
}

func (c *bankClient) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.rpc.GetBalance(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*pb.GetBalanceResponse), nil
}

func (c *bankClient) RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.auth.RegisterAccount(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*pb.RegisterAccountResponse), nil
}

func (c *bankClient) LoginAccount(ctx context.Context, req *pb.LoginAccountRequest) (*pb.LoginAccountResponse, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.auth.LoginAccount(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*pb.LoginAccountResponse), nil
}

func (c *bankClient) health() pb.BankHealth {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pb.BankHealth{
		Reachable:       c.cb.State() != gobreaker.StateOpen,
		BreakerState:    breakerStateString(c.cb.State()),
		LastSuccessUnix: c.lastSuccessAt.Unix(),
	}
}

func breakerStateString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func (c *bankClient) Close() error {
	return c.conn.Close()
}

func logCircuitTrip(log *logging.Logger, bankName string) {
	log.Warn("bank circuit breaker opened", zap.String("bank", bankName))
}
