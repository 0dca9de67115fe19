package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gamedock/gamedock/internal/analyzer"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Game metrics
	GamesLoaded      prometheus.Counter
	GamesActive      prometheus.Gauge
	DiagnosticsTotal *prometheus.CounterVec

	// Protocol metrics
	MessagesTotal *prometheus.CounterVec

	// Sandbox metrics
	SandboxRuns     prometheus.Counter
	SandboxFailures prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gamedock_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		GamesLoaded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gamedock_games_loaded_total",
				Help: "Total number of games loaded",
			},
		),
		GamesActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gamedock_games_active",
				Help: "Number of active game sessions",
			},
		),
		DiagnosticsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_diagnostics_total",
				Help: "Analyzer diagnostics emitted, by rule and severity",
			},
			[]string{"rule", "severity"},
		),

		MessagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_protocol_messages_total",
				Help: "Protocol messages dispatched, by type",
			},
			[]string{"type"},
		),

		SandboxRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gamedock_sandbox_runs_total",
				Help: "Headless verification runs",
			},
		),
		SandboxFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gamedock_sandbox_failures_total",
				Help: "Headless verification runs that ended in error",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gamedock_ws_connections",
				Help: "Active WebSocket bridge connections",
			},
		),
	}
}

// RecordHTTPRequest records metrics for one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGameLoaded records one game load with its diagnostics.
func (m *Metrics) RecordGameLoaded(diagnostics []analyzer.Diagnostic) {
	m.GamesLoaded.Inc()
	m.GamesActive.Inc()
	for _, d := range diagnostics {
		m.DiagnosticsTotal.WithLabelValues(d.Rule, string(d.Severity)).Inc()
	}
}

// RecordGameRemoved records one session removal.
func (m *Metrics) RecordGameRemoved() {
	m.GamesActive.Dec()
}

// RecordProtocolMessage records one dispatched protocol message.
func (m *Metrics) RecordProtocolMessage(kind string) {
	m.MessagesTotal.WithLabelValues(kind).Inc()
}

// RecordSandboxRun records one verification run.
func (m *Metrics) RecordSandboxRun(failed bool) {
	m.SandboxRuns.Inc()
	if failed {
		m.SandboxFailures.Inc()
	}
}

// Uptime returns time since metrics creation.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
