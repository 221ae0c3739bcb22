// Command bank runs a single bank participant process: it serves the
// AuthService and BankService gRPC APIs over mutual TLS, backed by either
// the in-memory account store or Postgres per config.StoreBackend.
package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"

	"github.com/distbank/platform/internal/adapter/grpcserver"
	"github.com/distbank/platform/internal/adapter/repository/postgres"
	"github.com/distbank/platform/internal/bank"
	"github.com/distbank/platform/internal/config"
	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/codec"
	"github.com/distbank/platform/internal/rpc/pb"
	"github.com/distbank/platform/internal/rpc/tlsconfig"
	"github.com/distbank/platform/internal/workerpool"
)

func main() {
	configPath := flag.String("config", "", "path to bank YAML config")
	flag.Parse()

	cfg, err := config.LoadBankConfig(*configPath)
	if err != nil {
		log.Fatalf("load bank config: %v", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logger, err := logging.New(logCfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	var store domain.AccountStore
	if cfg.StoreBackend == "postgres" {
		db, err := postgres.NewDB(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("connect to postgres", zap.Error(err))
		}
		defer db.Close()
		store = postgres.NewAccountRepository(db)
		logger.Info("using postgres account store")
	} else {
		logger.Info("using in-memory account store")
	}

	registry := prometheus.NewRegistry()
	collector, err := metrics.New("distbank_bank_"+sanitize(cfg.BankName), registry)
	if err != nil {
		logger.Fatal("register metrics", zap.Error(err))
	}

	b := bank.New(bank.Config{
		Name:         cfg.BankName,
		Accounts:     store,
		AuditHistory: 1000,
		Logger:       logger,
		Metrics:      collector,
	})

	creds, err := tlsconfig.ServerCredentials(cfg.CertsDir, cfg.BankName)
	if err != nil {
		logger.Fatal("load tls materials", zap.Error(err))
	}

	pool := workerpool.New(32)
	grpcServer := grpclib.NewServer(
		grpclib.Creds(creds),
		grpclib.ChainUnaryInterceptor(
			grpcserver.LoggingInterceptor(logger),
			grpcserver.MetricsInterceptor(collector),
			grpcserver.WorkerPoolInterceptor(pool),
		),
	)

	server := grpcserver.NewBankServer(b)
	pb.RegisterAuthServiceServer(grpcServer, server)
	pb.RegisterBankServiceServer(grpcServer, server)

	lis, err := net.Listen("tcp", ":"+cfg.ListenPort)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	go func() {
		logger.Info("bank listening", zap.String("bank", cfg.BankName), zap.String("port", cfg.ListenPort), zap.String("codec", codec.Name))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	waitForShutdown(grpcServer, logger)
}

func waitForShutdown(grpcServer *grpclib.Server, logger *logging.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))
	grpcServer.GracefulStop()
	logger.Info("bank server stopped")
}

func sanitize(name string) string {
	out := make([]byte, 0, len(name))
	for _, c := range []byte(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
