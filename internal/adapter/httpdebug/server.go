// Package httpdebug runs the gateway's debug HTTP surface (health and
// Prometheus metrics) on a port separate from the gRPC listener, the way
// hvitorino-cache-chain's banking-api example wires gorilla/mux +
// promhttp alongside its primary protocol.
package httpdebug

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/distbank/platform/internal/logging"
)

// HealthFunc reports process-level health; callers wire this to
// gateway.Coordinator.HealthCheck or an equivalent bank-side check.
type HealthFunc func(ctx context.Context) (any, error)

// Server wraps an *http.Server carrying /healthz and /metrics.
type Server struct {
	http *http.Server
	log  *logging.Logger
}

// New builds the debug HTTP server. registry is the Prometheus registry
// the caller already registered its collectors on.
func New(addr string, registry *prometheus.Registry, health HealthFunc, log *logging.Logger) *Server {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthzHandler(health)).Methods(http.MethodGet)

	return &Server{
		http: &http.Server{Addr: addr, Handler: r},
		log:  log,
	}
}

func healthzHandler(health HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := health(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// ListenAndServe blocks serving the debug endpoints until the server is
// shut down or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("debug http server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the debug server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
