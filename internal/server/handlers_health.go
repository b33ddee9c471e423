package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pzsluna26/Dashboard/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness reports ready once a non-empty dataset is loaded.
func (s *Server) handleReadiness(c echo.Context) error {
	ds := s.store.Get()
	if len(ds) == 0 {
		return c.JSON(503, map[string]any{
			"status":       "unhealthy",
			"failed_check": "dataset",
			"error":        "dataset is empty or not loaded",
		})
	}

	return c.JSON(200, map[string]any{
		"status":     "ready",
		"categories": len(ds),
		"loaded_at":  s.store.LoadedAt(),
		"version":    s.store.Version(),
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
