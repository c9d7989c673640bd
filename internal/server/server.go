package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pkg.jsn.cam/lorem/internal/config"
	"pkg.jsn.cam/lorem/internal/httpx"
	"pkg.jsn.cam/lorem/internal/store"
	"pkg.jsn.cam/lorem/pkg/lorem"
)

// MaxRange bounds the upper end of word, comma and sentence ranges a
// request may ask for.
const MaxRange = 1000

// Config configures a Server.
type Config struct {
	Addr            string
	MaxCount        int
	MaxTokens       int // zero means config.DefaultMaxTokens
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// ConfigPath, when set, is watched and reloaded into the generation
	// defaults and limits while Run is active.
	ConfigPath string
}

// FromConfig builds a server Config from the loaded file configuration.
func FromConfig(c *config.Config, path string) Config {
	cfg := Config{
		Addr:            c.Server.Addr,
		MaxCount:        c.Server.MaxCount,
		MaxTokens:       c.Server.MaxTokens,
		ReadTimeout:     c.ReadTimeout(),
		WriteTimeout:    c.WriteTimeout(),
		ShutdownTimeout: c.ShutdownTimeout(),
	}
	if c.Server.Watch {
		cfg.ConfigPath = path
	}
	return cfg
}

// Server exposes the batch operations and the vocabulary store over HTTP.
type Server struct {
	cfg       Config
	store     *store.Store
	defaults  *lorem.Defaults
	logger    *zap.Logger
	mux       *http.ServeMux
	handler   http.Handler
	maxCount  atomic.Int64
	maxTokens atomic.Int64
	started   time.Time
}

// New wires routes and middleware. defaults may be nil for lorem.Global().
func New(cfg Config, st *store.Store, defaults *lorem.Defaults, logger *zap.Logger) *Server {
	if defaults == nil {
		defaults = lorem.Global()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		store:    st,
		defaults: defaults,
		logger:   logger,
		mux:      http.NewServeMux(),
		started:  time.Now(),
	}
	s.maxCount.Store(int64(cfg.MaxCount))
	s.setMaxTokens(cfg.MaxTokens)
	s.setupRoutes()
	s.handler = httpx.WithRequestID(httpx.AccessLog(logger, s.mux))
	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on cfg.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// The config watcher, if configured, runs alongside in the same group.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(sctx)
	})

	if s.cfg.ConfigPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, s.cfg.ConfigPath, s.logger, s.applyConfig)
		})
	}

	return g.Wait()
}

// applyConfig installs reloaded generation defaults and limits.
func (s *Server) applyConfig(c *config.Config) {
	if err := s.defaults.Apply(c.Values()); err != nil {
		s.logger.Warn("rejected generation defaults", zap.Error(err))
		return
	}
	s.maxCount.Store(int64(c.Server.MaxCount))
	s.setMaxTokens(c.Server.MaxTokens)
	s.logger.Info("generation defaults updated",
		zap.Stringer("words", c.Generation.WordRange),
		zap.Stringer("sentences", c.Generation.SentenceRange),
		zap.Int("max_count", c.Server.MaxCount),
		zap.Int("max_tokens", c.Server.MaxTokens))
}

func (s *Server) setMaxTokens(n int) {
	if n <= 0 {
		n = config.DefaultMaxTokens
	}
	s.maxTokens.Store(int64(n))
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lorem.ErrInvalidRange),
		errors.Is(err, lorem.ErrInvalidPool),
		errors.Is(err, lorem.ErrUnknownOperation),
		errors.Is(err, lorem.ErrInvalidArgument),
		errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
