// Package pb holds the wire messages and service contracts for
// AuthService, BankService, and GatewayService (spec.md §6). The shapes
// here follow protoc-gen-go/protoc-gen-go-grpc conventions (typed
// request/response structs, Unimplemented*Server embeds, grpc.ServiceDesc
// registration) so the adapter layer reads exactly like a generated
// client would be used — but since no protoc toolchain runs in this
// environment, messages are plain Go structs carrying json tags and are
// marshaled by the codec in internal/rpc/codec rather than by generated
// protobuf marshal code. See SPEC_FULL.md §10.
package pb

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// --- AuthService ---

type RegisterAccountRequest struct {
	Username      string          `json:"username"`
	Password      string          `json:"password"`
	BankName      string          `json:"bank_name"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
}

type RegisterAccountResponse struct {
	AccountNumber string `json:"account_number"`
	Message       string `json:"message"`
	Success       bool   `json:"success"`
}

type LoginAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	BankName string `json:"bank_name"`
}

type LoginAccountResponse struct {
	AccountNumber string `json:"account_number"`
	Key           string `json:"key"`
	Message       string `json:"message"`
}

// --- BankService ---

type GetBalanceRequest struct {
	Number   string `json:"number"`
	BankName string `json:"bank_name"`
	Key      string `json:"key"`
}

type GetBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Transaction is the wire form of domain.TransactionRequest (spec.md §6).
type Transaction struct {
	ID          string                 `json:"id"`
	FromAccount string                 `json:"from_account"`
	FromBank    string                 `json:"from_bank"`
	ToAccount   string                 `json:"to_account"`
	ToBank      string                 `json:"to_bank"`
	Amount      decimal.Decimal        `json:"amount"`
	Timestamp   *timestamppb.Timestamp `json:"timestamp"`
	Key         string                 `json:"key"`
}

type PrepareResponse struct {
	CanCommit bool `json:"can_commit"`
}

type CommitResponse struct {
	Success bool `json:"success"`
}

type AbortResponse struct {
	Success bool `json:"success"`
}

// --- GatewayService ---

type ProcessPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthCheckRequest struct{}

type BankHealth struct {
	Reachable       bool   `json:"reachable"`
	BreakerState    string `json:"breaker_state"`
	LastSuccessUnix int64  `json:"last_success_unix"`
}

type HealthCheckResponse struct {
	UptimeSeconds int64                 `json:"uptime_seconds"`
	Banks         map[string]BankHealth `json:"banks"`
}
