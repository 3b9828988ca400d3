package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/db"
	"github.com/aidmqan/mqan-console/internal/feed"
	"github.com/aidmqan/mqan-console/internal/models"
)

const shutdownTimeout = 10 * time.Second

// ViewStore persists saved filter views.
type ViewStore interface {
	SaveView(page, name string, spec models.FilterSpec) error
	GetView(page, name string) (models.SavedView, error)
	ListViews(page string) ([]models.SavedView, error)
	DeleteView(page, name string) error
}

// ActivityStore tallies the recorded feed events.
type ActivityStore interface {
	ActivityByHospital() ([]db.HospitalActivity, error)
}

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Logger         *log.Logger
	// Activity serves /api/v1/monitor/hospitals. The route responds 503
	// when nil.
	Activity ActivityStore
	// Registry receives the server collectors. A fresh registry is used
	// when nil.
	Registry *prometheus.Registry
}

// Server is the read-only JSON API over the record pages and the live feed.
type Server struct {
	catalog  *catalog.Catalog
	pages    *catalog.Registry
	feed     *feed.Feed
	views    ViewStore
	activity ActivityStore
	logger   *log.Logger
	metrics  *Metrics
	srv      *http.Server
}

// New builds a server. views may be nil, in which case the saved view
// routes respond 503.
func New(c *catalog.Catalog, f *feed.Feed, views ViewStore, opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		catalog:  c,
		feed:     f,
		views:    views,
		activity: opts.Activity,
		logger:   opts.Logger,
		metrics:  NewMetrics(reg),
	}
	var activity func() []models.Activity
	if f != nil {
		activity = f.Snapshot
	}
	s.pages = catalog.NewRegistry(c, activity)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /api/v1/pages", s.handlePages)
	mux.HandleFunc("GET /api/v1/overview", s.handleOverview)
	mux.HandleFunc("GET /api/v1/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/v1/monitor/feed", s.handleFeed)
	mux.HandleFunc("GET /api/v1/monitor/hospitals", s.handleHospitalActivity)
	mux.HandleFunc("GET /api/v1/views/{page}", s.handleListViews)
	mux.HandleFunc("PUT /api/v1/views/{page}/{name}", s.handleSaveView)
	mux.HandleFunc("DELETE /api/v1/views/{page}/{name}", s.handleDeleteView)
	mux.HandleFunc("GET /api/v1/{page}", s.handlePage)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	s.srv = &http.Server{
		Addr:         opts.Addr,
		Handler:      corsHandler.Handler(s.logging(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Metrics returns the server's collectors, for wiring the feed tick hook.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()
	if s.logger != nil {
		s.logger.Info("Server listening", "addr", ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	if s.logger != nil {
		s.logger.Info("Shutting down server")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	<-errCh
	return nil
}
