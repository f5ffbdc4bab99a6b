// ABOUTME: This file implements the thin static front end
// ABOUTME: It serves the rendered public/ directory; the pipeline does the real work
package server

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"rss-firehose/config"
)

type Server struct {
	echo      *echo.Echo
	port      string
	publicDir string
	logger    *slog.Logger
}

func New(publicDir string, cfg config.ServerConfig, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.File(filepath.Join(publicDir, "index.html"))
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.Static("/", publicDir)

	return &Server{
		echo:      e,
		port:      cfg.Port,
		publicDir: publicDir,
		logger:    logger,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("serving rendered output", "port", s.port, "dir", s.publicDir)

	err := s.echo.Start(":" + s.port)
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
