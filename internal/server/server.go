// Package server exposes the dashboard over HTTP: an HTML page, a flat JSON
// API mode on the same route, and a health check.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg    *store.Config
	engine interfaces.Engine
	router *gin.Engine
	srv    *http.Server
}

// New builds the router. A nil access logger disables access logging.
func New(cfg *store.Config, eng interfaces.Engine, access *zap.Logger) (*Server, error) {
	if cfg == nil {
		cfg = store.Default()
	}
	if access == nil {
		access = zap.NewNop()
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing())
	router.Use(accessLog(access))

	if err := loadTemplates(router); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		engine: eng,
		router: router,
	}
	router.GET("/", s.dashboard)
	router.GET("/healthz", s.healthz)

	s.srv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return s, nil
}

func loadTemplates(router *gin.Engine) error {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Dashboard listening", "addr", s.srv.Addr, "mode", s.cfg.Server.Mode)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
