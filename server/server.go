package server

import (
	"context"

	"bookmark-analytics/config"
	"bookmark-analytics/logger"
	"bookmark-analytics/rest"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	config *config.Config
	echo   *echo.Echo
}

func New(cfg *config.Config, handler *rest.Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadHeaderTimeout = cfg.HTTP.ReadHeaderTimeout

	e.Use(middleware.Recover())

	handler.Register(e)

	return &Server{
		config: cfg,
		echo:   e,
	}
}

func (s *Server) Start() error {
	logger.Logger.Info("starting HTTP server", "addr", s.config.HTTP.Addr)
	return s.echo.Start(s.config.HTTP.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Logger.Info("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
