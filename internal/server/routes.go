package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Analytical views
	api := s.echo.Group("/api/dashboard")
	api.GET("/kpi", s.handleKpi)
	api.GET("/top-laws", s.handleTopLaws)
	api.GET("/stance-area", s.handleStanceArea)
	api.GET("/network-graph", s.handleNetworkGraph)
	api.GET("/heatmap", s.handleHeatmap)
	api.GET("/trend", s.handleTrend)

	// Refresh notifications
	s.echo.GET("/ws/dashboard", s.handleWebSocket)
}
