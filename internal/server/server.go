// Package server exposes series evaluation over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/service"
)

// Server serves the series API. Every route goes through the security,
// rate limit, logging and metrics middlewares, in that order.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	timeouts       Timeouts
	endpoints      []string
}

// NewServer builds a server for the series of factory listening on
// cfg.Port. Query parameters omitted by clients default to cfg's values.
func NewServer(factory series.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		securityConfig: DefaultSecurityConfig(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.service == nil {
		s.service = service.NewEvaluationService(factory, series.NewEvaluatorWithLogger(logging.Unwrap(s.logger)), s.securityConfig.MaxTerms)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	routes := []struct {
		path, usage string
		handler     http.HandlerFunc
	}{
		{"/evaluate", "?series=<name>&x=&a=&terms=&tol=&show=", s.handleEvaluate},
		{"/series", "", s.handleSeries},
		{"/schema", "", s.handleSchema},
		{"/health", "", s.handleHealth},
		{"/metrics", "", s.handleMetrics},
	}
	mux := http.NewServeMux()
	for _, rt := range routes {
		mux.HandleFunc(rt.path, s.wrap(rt.path, rt.handler))
		s.endpoints = append(s.endpoints, "GET "+rt.path+rt.usage)
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

func (s *Server) wrap(path string, h http.HandlerFunc) http.HandlerFunc {
	h = instrument(path, h)
	h = s.logRequests(h)
	h = RateLimitMiddleware(s.rateLimiter, h)
	return SecurityMiddleware(s.securityConfig, h)
}

// Handler returns the routed handler with all middlewares applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then drains in-flight requests for at most
// ShutdownTimeout. Listen and serve failures are returned as
// errors.ServerError.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.rateLimiter.Stop()
		return apperrors.NewServerError("server failed to start", err)
	}
	s.logger.Info("server listening",
		logging.String("addr", ln.Addr().String()),
		logging.Float64("x", s.cfg.X),
		logging.Float64("a", s.cfg.A),
		logging.Int("max_terms", s.cfg.MaxTerms),
		logging.Float64("tol", s.cfg.Tolerance),
		logging.String("endpoints", strings.Join(s.endpoints, ", ")),
	)

	served := make(chan error, 1)
	go func() { served <- s.httpServer.Serve(ln) }()

	select {
	case err := <-served:
		s.rateLimiter.Stop()
		return apperrors.NewServerError("server stopped unexpectedly", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	if err := <-served; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return apperrors.NewServerError("server stopped unexpectedly", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Shutdown stops accepting connections, waits for in-flight requests and
// stops the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.rateLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Debug("request received",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		s.logger.Info("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("took", time.Since(start)))
	}
}
