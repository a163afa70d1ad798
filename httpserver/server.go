package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uvboard/uvboard"
	"github.com/uvboard/uvboard/config"
	"github.com/uvboard/uvboard/meteo"
	"github.com/uvboard/uvboard/observability"
)

// Server exposes the UV and traffic dashboards plus their JSON API. A single
// dashboard state object backs the process, guarded by a mutex; every
// interaction recomputes the visible pipeline output synchronously before the
// response is written.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	mu        sync.Mutex
	dashboard *uvboard.Dashboard

	meteoClient    *meteo.Client
	metrics        *observability.Metrics
	alertThreshold int
	nowFunc        func() time.Time
}

// NewServer wires the dashboard, forecast client, and metrics into an HTTP
// server on cfg.Addr.
func NewServer(cfg *config.Config, meteoClient *meteo.Client, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		logger:         logger.With(slog.String("component", "httpserver")),
		dashboard:      uvboard.NewDashboard(),
		meteoClient:    meteoClient,
		metrics:        metrics,
		alertThreshold: cfg.AlertThreshold,
		nowFunc:        time.Now,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleUVPage)
	r.Get("/traffic", s.handleTrafficPage)

	r.Route("/api", func(r chi.Router) {
		r.Post("/uv/manual", s.handleManual)
		r.Post("/uv/upload", s.handleUpload)
		r.Get("/uv/stats", s.handleStats)
		r.Get("/uv/pivot", s.handlePivot)
		r.Get("/uv/filter", s.handleFilter)
		r.Get("/uv/export", s.handleExport)

		r.Get("/traffic/records", s.handleTrafficRecords)
		r.Get("/traffic/alert", s.handleAlert)
		r.Get("/traffic/markers", s.handleMarkers)
		r.Get("/traffic/feed", s.handleFeed)

		r.Get("/uvindex", s.handleUVIndex)
		r.Get("/weather", s.handleWeather)
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
