// Package metrics exposes command and fallback counters through Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	CommandsTotal    *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	FallbackRequests *prometheus.CounterVec
	SnapshotNodes    prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vsh_commands_total",
				Help: "Total number of executed commands",
			},
			[]string{"command", "outcome"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vsh_command_duration_seconds",
				Help:    "Command execution latency",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"command"},
		),
		FallbackRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vsh_fallback_requests_total",
				Help: "Requests sent to the fallback resolver",
			},
			[]string{"outcome"},
		),
		SnapshotNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vsh_snapshot_nodes",
				Help: "Number of nodes in the current filesystem snapshot",
			},
		),
	}

	m.registry.MustRegister(m.CommandsTotal, m.CommandDuration, m.FallbackRequests, m.SnapshotNodes)
	return m
}

// ObserveCommand records one dispatcher invocation.
func (m *Metrics) ObserveCommand(command, outcome string, d time.Duration) {
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// ObserveFallback records one fallback resolver call.
func (m *Metrics) ObserveFallback(outcome string) {
	m.FallbackRequests.WithLabelValues(outcome).Inc()
}

// SetSnapshotNodes updates the size of the current snapshot.
func (m *Metrics) SetSnapshotNodes(n int) {
	m.SnapshotNodes.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve blocks serving /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
