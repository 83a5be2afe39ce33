package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/fabricsight/fabricsight/pkg/serializer"
)

// Server exposes the latest collected reports over HTTP.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	store       *ReportStore
}

// New creates a server reading from the given report store.
func New(config *Config, store *ReportStore) *Server {
	if config == nil {
		config = NewConfig()
	}
	if store == nil {
		store = NewReportStore()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		store:       store,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// Store returns the server's report store, for the collection scheduler
// to publish into.
func (s *Server) Store() *ReportStore {
	return s.store
}

// setupRoutes configures all HTTP routes and middleware.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("/v1/reports", s.withMiddleware(s.handleReports))
	mux.HandleFunc("/v1/reports/", s.withMiddleware(s.handleDomainReport))

	return mux
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	_, updatedAt, ok := s.store.Latest()
	resp := struct {
		Name      string    `json:"name"`
		Version   string    `json:"version"`
		Ready     bool      `json:"ready"`
		UpdatedAt time.Time `json:"updatedAt,omitempty"`
		Routes    []string  `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     ok,
		UpdatedAt: updatedAt,
		Routes: []string{
			"GET /v1/reports",
			"GET /v1/reports/{domain}",
			"GET /health",
			"GET /ready",
			"GET /metrics",
		},
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleReports handles GET /v1/reports: the full latest result set.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", false)
		return
	}

	set, _, ok := s.store.Latest()
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "NO_REPORTS", "no collection pass has completed", true)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, set)
}

// handleDomainReport handles GET /v1/reports/{domain}: one domain's
// result, success or recorded failure.
func (s *Server) handleDomainReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", false)
		return
	}

	domain := strings.TrimPrefix(r.URL.Path, "/v1/reports/")
	if domain == "" || strings.Contains(domain, "/") {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_DOMAIN", "domain name required", false)
		return
	}

	res, ok := s.store.Domain(domain)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "DOMAIN_NOT_FOUND",
			fmt.Sprintf("no report for domain %q", domain), false)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("starting server", "addr", s.httpServer.Addr, "version", s.config.Version)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}
