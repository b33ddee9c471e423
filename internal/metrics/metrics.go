package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analytics View Metrics
var (
	// ViewComputeDuration tracks view computation latency by view name
	ViewComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "view_compute_duration_seconds",
			Help:    "Analytical view computation duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"view"},
	)

	// ViewRequestsTotal tracks view requests by view name
	ViewRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_requests_total",
			Help: "Total analytical view requests by view",
		},
		[]string{"view"},
	)
)

// Dataset Metrics
var (
	// DatasetReloadsTotal tracks dataset reloads by result
	DatasetReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reloads_total",
			Help: "Total dataset reloads by result (success/error/unchanged)",
		},
		[]string{"result"},
	)

	// DatasetLoadedTimestamp tracks the Unix time of the last successful load
	DatasetLoadedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_loaded_timestamp_seconds",
			Help: "Unix timestamp of the last successful dataset load",
		},
	)

	// DatasetCategories tracks the number of categories in the loaded dataset
	DatasetCategories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_categories",
			Help: "Number of categories in the currently loaded dataset",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketClientsCurrent tracks current connected dashboard clients
	WebSocketClientsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients_current",
			Help: "Current number of connected dashboard WebSocket clients",
		},
	)

	// WebSocketConnectionsTotal tracks connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/error/rejected)",
		},
		[]string{"result"},
	)

	// WebSocketSlowClientsEvicted tracks slow clients dropped during broadcast
	WebSocketSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_slow_clients_evicted_total",
			Help: "Total slow WebSocket clients evicted due to full send buffer",
		},
	)

	// BroadcastsTotal tracks dataset-refresh broadcasts to clients
	BroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcasts_total",
			Help: "Total refresh notifications broadcast to WebSocket clients",
		},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Request Metrics
// Note: http_errors_total{type} is provided by internal/errors package
