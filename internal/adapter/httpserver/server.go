package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/pscheid92/sortlist/internal/domain"
	"github.com/pscheid92/sortlist/internal/platform/config"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config

	list domain.ListService

	feedHandler    http.Handler
	metricsHandler http.Handler
	httpMetrics    *metrics.HTTPMetrics

	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

// Deps bundles the collaborators of the HTTP server. Feed, MetricsHandler and
// HTTPMetrics are optional.
type Deps struct {
	List           domain.ListService
	Feed           http.Handler
	MetricsHandler http.Handler
	HTTPMetrics    *metrics.HTTPMetrics
	HealthChecks   []HealthCheck
	Clock          clockwork.Clock
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	srv := &Server{
		echo:           e,
		config:         cfg,
		list:           deps.List,
		feedHandler:    deps.Feed,
		metricsHandler: deps.MetricsHandler,
		httpMetrics:    deps.HTTPMetrics,
		healthChecks:   deps.HealthChecks,
		clock:          clock,
		startTime:      clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP exposes the fully wired router, middleware included.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
