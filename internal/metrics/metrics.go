// Package metrics exposes Prometheus instrumentation for the two-phase
// commit outcomes and RPC latency that spec.md's Non-goals explicitly
// exclude from the coordination protocol itself but which every
// production node in this corpus carries regardless (see
// hvitorino-cache-chain's pkg/metrics/prometheus).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the gauges/counters/histograms for one process (a bank
// or the gateway).
type Collector struct {
	paymentsTotal   *prometheus.CounterVec
	prepareTotal    *prometheus.CounterVec
	rpcLatency      *prometheus.HistogramVec
	breakerState    *prometheus.GaugeVec
	queueDepth      prometheus.Gauge
}

// New builds a Collector under the given namespace (e.g. "distbank_bank",
// "distbank_gateway") and registers it with registry.
func New(namespace string, registry *prometheus.Registry) (*Collector, error) {
	c := &Collector{
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Total ProcessPayment outcomes by result.",
		}, []string{"result"}),
		prepareTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prepare_total",
			Help:      "Total Prepare outcomes by result.",
		}, []string{"result"}),
		rpcLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handler latency by method.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"method"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Circuit breaker state per bank (0=closed, 1=half-open, 2=open).",
		}, []string{"bank"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "offline_queue_depth",
			Help:      "Current depth of the client offline payment queue.",
		}),
	}

	collectors := []prometheus.Collector{c.paymentsTotal, c.prepareTotal, c.rpcLatency, c.breakerState, c.queueDepth}
	for _, col := range collectors {
		if err := registry.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) RecordPayment(success bool) {
	result := "aborted"
	if success {
		result = "committed"
	}
	c.paymentsTotal.WithLabelValues(result).Inc()
}

func (c *Collector) RecordPrepare(canCommit bool) {
	result := "rejected"
	if canCommit {
		result = "accepted"
	}
	c.prepareTotal.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRPC(method string, duration time.Duration) {
	c.rpcLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// BreakerState mirrors gobreaker.State's ordering (Closed=0, HalfOpen=1, Open=2).
func (c *Collector) RecordBreakerState(bank string, state int) {
	c.breakerState.WithLabelValues(bank).Set(float64(state))
}

func (c *Collector) RecordQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}
