// Package server provides the HTTP upload API for document extraction.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"fjacquet/docfields/internal/cache"
	"fjacquet/docfields/internal/config"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Extractor produces a record for a PDF on disk. *pipeline.Pipeline implements it.
type Extractor interface {
	Extract(ctx context.Context, path string) (models.ExtractedRecord, error)
}

// Server is the HTTP server for the extraction API.
type Server struct {
	extractor Extractor
	cache     *cache.ResultCache
	config    config.ServerConfig
	limiter   *rate.Limiter
	tempDir   string
	logger    logging.Logger

	mu     sync.Mutex
	server *http.Server
}

// NewServer creates a server. resultCache may be nil to disable caching.
func NewServer(extractor Extractor, resultCache *cache.ResultCache, cfg config.ServerConfig, logger logging.Logger) *Server {
	s := &Server{
		extractor: extractor,
		cache:     resultCache,
		config:    cfg,
		tempDir:   os.TempDir(),
		logger:    logging.OrDefault(logger),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return s
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() http.Handler {
	timeout := time.Duration(s.config.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 180 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/extract-dc", s.handleExtract(models.DeliveryChallan))
		r.Post("/extract-invoice", s.handleExtract(models.Invoice))
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	s.logger.Info("Starting server", logging.Field{Key: "addr", Value: addr})
	return srv.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			s.respondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("Request handled",
			logging.Field{Key: logging.FieldRequestID, Value: middleware.GetReqID(r.Context())},
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "path", Value: r.URL.Path},
			logging.Field{Key: logging.FieldStatus, Value: ww.Status()},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	})
}
