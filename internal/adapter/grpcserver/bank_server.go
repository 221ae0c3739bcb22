package grpcserver

import (
	"context"
	"time"

	"github.com/distbank/platform/internal/bank"
	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/gateway"
	"github.com/distbank/platform/internal/rpc/pb"
)

// BankServer adapts a *bank.Bank to pb.AuthServiceServer and
// pb.BankServiceServer. Per spec.md §7's propagation policy, business
// conditions (bad credentials, insufficient funds, unknown account, ...)
// come back as populated reply fields rather than RPC errors; only
// genuinely unexpected failures (storage errors, ...) become RPC errors.
type BankServer struct {
	pb.UnimplementedAuthServiceServer
	pb.UnimplementedBankServiceServer

	bank *bank.Bank
}

func NewBankServer(b *bank.Bank) *BankServer {
	return &BankServer{bank: b}
}

// isBusinessError reports whether err represents a business condition the
// protocol resolves through reply fields, as opposed to a transport/
// storage failure that should propagate as an RPC error.
func isBusinessError(err error) bool {
	switch domain.KindOf(err) {
	case domain.KindUnknown, domain.KindTransport:
		return false
	default:
		return true
	}
}

func (s *BankServer) RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error) {
	res, err := s.bank.RegisterAccount(ctx, req.Username, req.Password, req.InitialAmount)
	if err != nil {
		if isBusinessError(err) {
			return &pb.RegisterAccountResponse{Success: false, Message: err.Error()}, nil
		}
		return nil, mapError(err)
	}
	return &pb.RegisterAccountResponse{AccountNumber: res.AccountID, Message: res.Message, Success: res.Success}, nil
}

func (s *BankServer) LoginAccount(ctx context.Context, req *pb.LoginAccountRequest) (*pb.LoginAccountResponse, error) {
	res, err := s.bank.LoginAccount(ctx, req.Username, req.Password, req.BankName)
	if err != nil {
		if isBusinessError(err) {
			return &pb.LoginAccountResponse{Message: err.Error()}, nil
		}
		return nil, mapError(err)
	}
	return &pb.LoginAccountResponse{AccountNumber: res.AccountID, Key: res.SessionKey, Message: res.Message}, nil
}

func (s *BankServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	res, err := s.bank.GetBalance(ctx, req.Number, req.Key)
	if err != nil {
		if isBusinessError(err) {
			return &pb.GetBalanceResponse{Error: domain.KindOf(err).String(), Message: err.Error()}, nil
		}
		return nil, mapError(err)
	}
	return &pb.GetBalanceResponse{Balance: res.Balance, Message: res.Message}, nil
}

func (s *BankServer) Prepare(ctx context.Context, txn *pb.Transaction) (*pb.PrepareResponse, error) {
	req := transactionToDomain(txn)
	canCommit, err := s.bank.Prepare(ctx, req)
	if err != nil && !isBusinessError(err) {
		return nil, mapError(err)
	}
	return &pb.PrepareResponse{CanCommit: canCommit}, nil
}

func (s *BankServer) Commit(ctx context.Context, txn *pb.Transaction) (*pb.CommitResponse, error) {
	success, err := s.bank.Commit(ctx, txn.ID, txn.ToAccount)
	if err != nil && !isBusinessError(err) {
		return nil, mapError(err)
	}
	return &pb.CommitResponse{Success: success}, nil
}

func (s *BankServer) Abort(ctx context.Context, txn *pb.Transaction) (*pb.AbortResponse, error) {
	success, err := s.bank.Abort(ctx, txn.ID, txn.FromAccount)
	if err != nil && !isBusinessError(err) {
		return nil, mapError(err)
	}
	return &pb.AbortResponse{Success: success}, nil
}

func transactionToDomain(t *pb.Transaction) domain.TransactionRequest {
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

// NewTransactionMessage re-exports gateway.NewTransactionMessage so
// adapter callers don't need to import the gateway package just for this
// conversion helper.
var NewTransactionMessage = gateway.NewTransactionMessage
