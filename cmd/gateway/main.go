// Command gateway runs the two-phase-commit coordinator: it serves the
// GatewayService gRPC API over mutual TLS, fans Prepare/Commit/Abort out
// to the configured bank directory, and exposes a debug HTTP server
// carrying /metrics and /healthz.
package main

import (
	"context"
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
	"github.com/distbank/platform/internal/adapter/httpdebug"
	"github.com/distbank/platform/internal/config"
	"github.com/distbank/platform/internal/gateway"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
	"github.com/distbank/platform/internal/rpc/codec"
	"github.com/distbank/platform/internal/rpc/pb"
	"github.com/distbank/platform/internal/rpc/tlsconfig"
	"github.com/distbank/platform/internal/workerpool"
)

func main() {
	configPath := flag.String("config", "", "path to gateway YAML config")
	flag.Parse()
	if *configPath == "" {
		log.Fatal("-config is required")
	}

	cfg, err := config.LoadGatewayConfig(*configPath)
	if err != nil {
		log.Fatalf("load gateway config: %v", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logger, err := logging.New(logCfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	registry := prometheus.NewRegistry()
	collector, err := metrics.New("distbank_gateway", registry)
	if err != nil {
		logger.Fatal("register metrics", zap.Error(err))
	}

	serverCreds, err := tlsconfig.ServerCredentials(cfg.CertsDir, "gateway")
	if err != nil {
		logger.Fatal("load server tls materials", zap.Error(err))
	}
	clientCreds, err := tlsconfig.ClientCredentials(cfg.CertsDir, "gateway", "")
	if err != nil {
		logger.Fatal("load client tls materials", zap.Error(err))
	}

	coordinator, err := gateway.New(cfg.Banks, clientCreds, logger, collector)
	if err != nil {
		logger.Fatal("build coordinator", zap.Error(err))
	}
	defer coordinator.Close()

	pool := workerpool.New(64)
	grpcServer := grpclib.NewServer(
		grpclib.Creds(serverCreds),
		grpclib.ChainUnaryInterceptor(
			grpcserver.LoggingInterceptor(logger),
			grpcserver.MetricsInterceptor(collector),
			grpcserver.WorkerPoolInterceptor(pool),
		),
	)
	pb.RegisterGatewayServiceServer(grpcServer, grpcserver.NewGatewayServer(coordinator))

	lis, err := net.Listen("tcp", ":"+cfg.ListenPort)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	go func() {
		logger.Info("gateway listening", zap.String("port", cfg.ListenPort), zap.String("codec", codec.Name))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	health := func(ctx context.Context) (any, error) {
		return coordinator.HealthCheck(ctx), nil
	}
	debugServer := httpdebug.New(":"+cfg.DebugPort, registry, health, logger.Named("httpdebug"))
	go func() {
		logger.Info("debug http server starting", zap.String("port", cfg.DebugPort))
		if err := debugServer.ListenAndServe(); err != nil {
			logger.Error("debug http server stopped", zap.Error(err))
		}
	}()

	waitForShutdown(grpcServer, debugServer, logger)
}

func waitForShutdown(grpcServer *grpclib.Server, debugServer *httpdebug.Server, logger *logging.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))

	if err := debugServer.Shutdown(context.Background()); err != nil {
		logger.Warn("debug server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	logger.Info("gateway server stopped")
}
