package grpcserver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/pb"
	"github.com/distbank/platform/internal/workerpool"
)

// LoggingInterceptor logs every unary RPC's method, peer address, duration,
// and outcome, plus the txn_id for Transaction requests. The session key
// carried on a Transaction is never logged.
// Mirrors the shape of SimaoGato-wealthflow's AuthInterceptor
// (internal/adapter/grpc/interceptor.go) but for structured logging
// instead of token checking.
func LoggingInterceptor(log *logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
		}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields = append(fields, zap.String("peer", p.Addr.String()))
		}
		if txn, ok := req.(*pb.Transaction); ok {
			fields = append(fields, zap.String("txn_id", txn.ID))
		}
		if err != nil {
			log.Error("rpc failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("rpc completed", fields...)
		}
		return resp, err
	}
}

// MetricsInterceptor records RPC latency per method.
func MetricsInterceptor(collector *metrics.Collector) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		collector.RecordRPC(info.FullMethod, time.Since(start))
		return resp, err
	}
}

// WorkerPoolInterceptor bounds concurrent RPC handling to pool's size, per
// spec.md §5's "bounded worker pool that services one RPC per worker".
func WorkerPoolInterceptor(pool *workerpool.Pool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := pool.Acquire(ctx); err != nil {
			return nil, status.Error(codes.ResourceExhausted, "worker pool: "+err.Error())
		}
		defer pool.Release()
		return handler(ctx, req)
	}
}
