package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// --- AuthService ---

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error)
	LoginAccount(context.Context, *LoginAccountRequest) (*LoginAccountResponse, error)
}

// UnimplementedAuthServiceServer embeds in concrete servers for forward
// compatibility, matching the protoc-gen-go-grpc convention.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterAccount not implemented")
}
func (UnimplementedAuthServiceServer) LoginAccount(context.Context, *LoginAccountRequest) (*LoginAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginAccount not implemented")
}

// AuthServiceClient is the client API for AuthService.
type AuthServiceClient interface {
	RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*RegisterAccountResponse, error)
	LoginAccount(ctx context.Context, in *LoginAccountRequest, opts ...grpc.CallOption) (*LoginAccountResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func (c *authServiceClient) RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*RegisterAccountResponse, error) {
	out := new(RegisterAccountResponse)
	if err := c.cc.Invoke(ctx, "/distbank.AuthService/RegisterAccount", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) LoginAccount(ctx context.Context, in *LoginAccountRequest, opts ...grpc.CallOption) (*LoginAccountResponse, error) {
	out := new(LoginAccountResponse)
	if err := c.cc.Invoke(ctx, "/distbank.AuthService/LoginAccount", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _AuthService_RegisterAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).RegisterAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.AuthService/RegisterAccount"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).RegisterAccount(ctx, req.(*RegisterAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuthService_LoginAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).LoginAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.AuthService/LoginAccount"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).LoginAccount(ctx, req.(*LoginAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "distbank.AuthService",
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterAccount", Handler: _AuthService_RegisterAccount_Handler},
		{MethodName: "LoginAccount", Handler: _AuthService_LoginAccount_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "distbank/auth.proto",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

// --- BankService ---

// BankServiceServer is the server API for BankService: the participant
// side of two-phase commit, plus account queries. Per spec.md §6.
type BankServiceServer interface {
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	Prepare(context.Context, *Transaction) (*PrepareResponse, error)
	Commit(context.Context, *Transaction) (*CommitResponse, error)
	Abort(context.Context, *Transaction) (*AbortResponse, error)
}

type UnimplementedBankServiceServer struct{}

func (UnimplementedBankServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedBankServiceServer) Prepare(context.Context, *Transaction) (*PrepareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Prepare not implemented")
}
func (UnimplementedBankServiceServer) Commit(context.Context, *Transaction) (*CommitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Commit not implemented")
}
func (UnimplementedBankServiceServer) Abort(context.Context, *Transaction) (*AbortResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Abort not implemented")
}

type BankServiceClient interface {
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	Prepare(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*PrepareResponse, error)
	Commit(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*CommitResponse, error)
	Abort(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*AbortResponse, error)
}

type bankServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBankServiceClient(cc grpc.ClientConnInterface) BankServiceClient {
	return &bankServiceClient{cc}
}

func (c *bankServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	out := new(GetBalanceResponse)
	if err := c.cc.Invoke(ctx, "/distbank.BankService/GetBalance", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bankServiceClient) Prepare(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*PrepareResponse, error) {
	out := new(PrepareResponse)
	if err := c.cc.Invoke(ctx, "/distbank.BankService/Prepare", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bankServiceClient) Commit(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*CommitResponse, error) {
	out := new(CommitResponse)
	if err := c.cc.Invoke(ctx, "/distbank.BankService/Commit", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bankServiceClient) Abort(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*AbortResponse, error) {
	out := new(AbortResponse)
	if err := c.cc.Invoke(ctx, "/distbank.BankService/Abort", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _BankService_GetBalance_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BankServiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.BankService/GetBalance"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BankServiceServer).GetBalance(ctx, req.(*GetBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BankService_Prepare_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Transaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BankServiceServer).Prepare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.BankService/Prepare"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BankServiceServer).Prepare(ctx, req.(*Transaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _BankService_Commit_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Transaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BankServiceServer).Commit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.BankService/Commit"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BankServiceServer).Commit(ctx, req.(*Transaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _BankService_Abort_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Transaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BankServiceServer).Abort(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.BankService/Abort"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BankServiceServer).Abort(ctx, req.(*Transaction))
	}
	return interceptor(ctx, in, info, handler)
}

var BankService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "distbank.BankService",
	HandlerType: (*BankServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetBalance", Handler: _BankService_GetBalance_Handler},
		{MethodName: "Prepare", Handler: _BankService_Prepare_Handler},
		{MethodName: "Commit", Handler: _BankService_Commit_Handler},
		{MethodName: "Abort", Handler: _BankService_Abort_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "distbank/bank.proto",
}

func RegisterBankServiceServer(s grpc.ServiceRegistrar, srv BankServiceServer) {
	s.RegisterService(&BankService_ServiceDesc, srv)
}

// --- GatewayService ---

// GatewayServiceServer is the server API for GatewayService: the client
// facing coordinator that fans Prepare/Commit/Abort out to banks. Per
// spec.md §6.
type GatewayServiceServer interface {
	RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error)
	LoginAccount(context.Context, *LoginAccountRequest) (*LoginAccountResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	ProcessPayment(context.Context, *Transaction) (*ProcessPaymentResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

type UnimplementedGatewayServiceServer struct{}

func (UnimplementedGatewayServiceServer) RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterAccount not implemented")
}
func (UnimplementedGatewayServiceServer) LoginAccount(context.Context, *LoginAccountRequest) (*LoginAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginAccount not implemented")
}
func (UnimplementedGatewayServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedGatewayServiceServer) ProcessPayment(context.Context, *Transaction) (*ProcessPaymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ProcessPayment not implemented")
}
func (UnimplementedGatewayServiceServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HealthCheck not implemented")
}

type GatewayServiceClient interface {
	RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*RegisterAccountResponse, error)
	LoginAccount(ctx context.Context, in *LoginAccountRequest, opts ...grpc.CallOption) (*LoginAccountResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	ProcessPayment(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*ProcessPaymentResponse, error)
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
}

type gatewayServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGatewayServiceClient(cc grpc.ClientConnInterface) GatewayServiceClient {
	return &gatewayServiceClient{cc}
}

func (c *gatewayServiceClient) RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*RegisterAccountResponse, error) {
	out := new(RegisterAccountResponse)
	if err := c.cc.Invoke(ctx, "/distbank.GatewayService/RegisterAccount", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) LoginAccount(ctx context.Context, in *LoginAccountRequest, opts ...grpc.CallOption) (*LoginAccountResponse, error) {
	out := new(LoginAccountResponse)
	if err := c.cc.Invoke(ctx, "/distbank.GatewayService/LoginAccount", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	out := new(GetBalanceResponse)
	if err := c.cc.Invoke(ctx, "/distbank.GatewayService/GetBalance", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) ProcessPayment(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*ProcessPaymentResponse, error) {
	out := new(ProcessPaymentResponse)
	if err := c.cc.Invoke(ctx, "/distbank.GatewayService/ProcessPayment", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := c.cc.Invoke(ctx, "/distbank.GatewayService/HealthCheck", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _GatewayService_RegisterAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).RegisterAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.GatewayService/RegisterAccount"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayServiceServer).RegisterAccount(ctx, req.(*RegisterAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GatewayService_LoginAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).LoginAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.GatewayService/LoginAccount"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayServiceServer).LoginAccount(ctx, req.(*LoginAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GatewayService_GetBalance_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.GatewayService/GetBalance"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayServiceServer).GetBalance(ctx, req.(*GetBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GatewayService_ProcessPayment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Transaction)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).ProcessPayment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.GatewayService/ProcessPayment"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayServiceServer).ProcessPayment(ctx, req.(*Transaction))
	}
	return interceptor(ctx, in, info, handler)
}

func _GatewayService_HealthCheck_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/distbank.GatewayService/HealthCheck"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayServiceServer).HealthCheck(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var GatewayService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "distbank.GatewayService",
	HandlerType: (*GatewayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterAccount", Handler: _GatewayService_RegisterAccount_Handler},
		{MethodName: "LoginAccount", Handler: _GatewayService_LoginAccount_Handler},
		{MethodName: "GetBalance", Handler: _GatewayService_GetBalance_Handler},
		{MethodName: "ProcessPayment", Handler: _GatewayService_ProcessPayment_Handler},
		{MethodName: "HealthCheck", Handler: _GatewayService_HealthCheck_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "distbank/gateway.proto",
}

func RegisterGatewayServiceServer(s grpc.ServiceRegistrar, srv GatewayServiceServer) {
	s.RegisterService(&GatewayService_ServiceDesc, srv)
}
