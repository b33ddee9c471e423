package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pzsluna26/Dashboard/internal/config"
	"github.com/pzsluna26/Dashboard/internal/dataset"
	apperrors "github.com/pzsluna26/Dashboard/internal/errors"
	"github.com/pzsluna26/Dashboard/internal/platform/correlation"
	"github.com/pzsluna26/Dashboard/internal/websocket"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	store     *dataset.Store
	hub       *websocket.Hub
	startTime time.Time
}

func NewServer(cfg *config.Config, store *dataset.Store, hub *websocket.Hub) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(correlation.Middleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		store:     store,
		hub:       hub,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
