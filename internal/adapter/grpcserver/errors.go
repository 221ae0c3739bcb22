// Package grpcserver adapts bank.Bank and gateway.Coordinator to the
// pb.*ServiceServer interfaces, mirroring the shape of
// SimaoGato-wealthflow's internal/adapter/grpc server: thin handlers that
// translate requests, call into the domain layer, and map errors.
package grpcserver

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/distbank/platform/internal/domain"
)

// mapError converts a domain.Error into a gRPC status error by Kind,
// instead of the teacher's substring matching on the error message
// (internal/adapter/grpc/server.go's mapError) — the Kind taxonomy in
// internal/domain/errors.go makes that classification exact rather than
// heuristic.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch domain.KindOf(err) {
	case domain.KindInvalidAmount:
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.KindUsernameTaken:
		return status.Error(codes.AlreadyExists, err.Error())
	case domain.KindInvalidCredentials, domain.KindUnauthorized:
		return status.Error(codes.Unauthenticated, err.Error())
	case domain.KindWrongBank, domain.KindUnknownBank:
		return status.Error(codes.FailedPrecondition, err.Error())
	case domain.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
