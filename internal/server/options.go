package server

import (
	"log"
	"time"

	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/service"
)

// Option customizes a Server built by NewServer.
type Option func(*Server)

// WithLogger replaces the default JSON logger on stdout. nil is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger logs through a standard library logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStd(logger)
		}
	}
}

// WithService serves evaluations from svc instead of the factory backed
// default. nil is ignored.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithRateLimiter replaces the default limiter. The server stops it on
// shutdown.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) { s.rateLimiter = rl }
}

func WithSecurityConfig(cfg SecurityConfig) Option {
	return func(s *Server) { s.securityConfig = cfg }
}

// WithMaxTerms caps the 'terms' query parameter. It has no effect together
// with WithService.
func WithMaxTerms(n int) Option {
	return func(s *Server) { s.securityConfig.MaxTerms = n }
}

func WithTimeouts(t Timeouts) Option {
	return func(s *Server) { s.timeouts = t }
}

// Timeouts bounds evaluations, shutdown and the http.Server I/O phases.
type Timeouts struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
