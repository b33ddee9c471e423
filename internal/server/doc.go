// Package server implements the HTTP server using Echo framework.
//
// Routes: dashboard views (KPI, top laws, stance area, network graph, heatmap,
// trend), the refresh WebSocket, health probes, version, and Prometheus metrics.
// Handlers split by concern: handlers_dashboard.go, handlers_ws.go, handlers_health.go.
package server
