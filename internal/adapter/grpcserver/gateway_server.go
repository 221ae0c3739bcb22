package grpcserver

import (
	"context"

	"github.com/distbank/platform/internal/gateway"
	"github.com/distbank/platform/internal/rpc/pb"
)

// GatewayServer adapts a *gateway.Coordinator to pb.GatewayServiceServer.
type GatewayServer struct {
	pb.UnimplementedGatewayServiceServer

	coordinator *gateway.Coordinator
}

func NewGatewayServer(c *gateway.Coordinator) *GatewayServer {
	return &GatewayServer{coordinator: c}
}

func (s *GatewayServer) RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error) {
	res, err := s.coordinator.RegisterAccount(ctx, req)
	if err != nil {
		if isBusinessError(err) {
			return &pb.RegisterAccountResponse{Success: false, Message: err.Error()}, nil
		}
		return nil, mapError(err)
	}
	return res, nil
}

func (s *GatewayServer) LoginAccount(ctx context.Context, req *pb.LoginAccountRequest) (*pb.LoginAccountResponse, error) {
	res, err := s.coordinator.LoginAccount(ctx, req)
	if err != nil {
		if isBusinessError(err) {
			return &pb.LoginAccountResponse{Message: err.Error()}, nil
		}
		return nil, mapError(err)
	}
	return res, nil
}

func (s *GatewayServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	res, err := s.coordinator.GetBalance(ctx, req)
	if err != nil {
		if isBusinessError(err) {
			return &pb.GetBalanceResponse{Message: err.Error()}, nil
		}
		return nil, mapError(err)
	}
	return res, nil
}

func (s *GatewayServer) ProcessPayment(ctx context.Context, txn *pb.Transaction) (*pb.ProcessPaymentResponse, error) {
	return s.coordinator.ProcessPayment(ctx, txn)
}

func (s *GatewayServer) HealthCheck(ctx context.Context, _ *pb.HealthCheckRequest) (*pb.HealthCheckResponse, error) {
	return s.coordinator.HealthCheck(ctx), nil
}
