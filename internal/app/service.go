// Package service orchestrates the dashboard views: it loads a view's base
// dataset, derives the filter domains from it and applies the requested
// filters. It implements the dependencies required by the HTTP API, the HTML
// site and the CLI.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/repository"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/catalog"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

// Service implements the dashboard operations.
type Service struct {
	mu sync.RWMutex

	// Core components
	exec    store.Executor
	cache   *store.CachingExecutor
	loader  *repository.Loader
	catalog *catalog.Catalog

	// Configuration
	cacheTTL  time.Duration
	cacheSize int

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithExecutor sets the query executor every view reads through.
func WithExecutor(exec store.Executor) Option {
	return func(s *Service) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// WithCatalog replaces the embedded canned query catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithQueryCache enables result caching for ttl. A non-positive ttl leaves
// caching off.
func WithQueryCache(ttl time.Duration, size int) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
			s.cacheSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:   catalog.Default(),
		cacheSize: store.DefaultCacheSize,
		logger:    nil, // Will be replaced when service starts
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the loader, and the cache when enabled, over the executor.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.exec == nil {
		return ErrNoExecutor
	}

	s.logger.Info(ctx, "starting dashboard service...")

	reader := s.exec
	if s.cacheTTL > 0 {
		s.cache = store.NewCachingExecutor(s.exec, s.cacheTTL, s.cacheSize,
			store.WithLogger(s.logger.Named("cache")))
		reader = s.cache
	}
	s.loader = repository.NewLoader(reader, repository.WithLogger(s.logger.Named("loader")))

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Bool("cache", s.cache != nil),
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Int("questions", s.catalog.Len()),
	)
	return nil
}

// Stop marks the service stopped and drops cached results.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping dashboard service...")
	if s.cache != nil {
		s.cache.Invalidate(ctx)
		s.cache = nil
	}
	s.loader = nil
	s.started = false
	s.logger.Info(ctx, "dashboard service stopped")
}

// components returns the started loader and executor.
func (s *Service) components() (*repository.Loader, store.Executor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	if s.cache != nil {
		return s.loader, s.cache, nil
	}
	return s.loader, s.exec, nil
}

// Questions returns the canned question labels in display order.
func (s *Service) Questions() []string {
	return s.catalog.Questions()
}

// RunQuestion executes the canned question with the given label.
func (s *Service) RunQuestion(ctx context.Context, label string) (*table.Result, error) {
	q, err := s.catalog.Lookup(label)
	if err != nil {
		return nil, err
	}
	_, exec, err := s.components()
	if err != nil {
		return nil, err
	}
	res, err := exec.Execute(ctx, q.SQL)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "question answered", logger.String("label", label), logger.Int("rows", res.Len()))
	return res, nil
}

// RefreshCache drops every cached result and returns how many were dropped.
func (s *Service) RefreshCache(ctx context.Context) (int, error) {
	s.mu.RLock()
	cache, started := s.cache, s.started
	s.mu.RUnlock()
	if !started {
		return 0, ErrNotStarted
	}
	if cache == nil {
		return 0, ErrCacheDisabled
	}
	return cache.Invalidate(ctx), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"cacheEnabled": s.cacheTTL > 0,
		"questions":    s.catalog.Len(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		if s.cache != nil {
			stats["cacheEntries"] = s.cache.Len()
		}
	}

	if totals, err := metrics.Totals(); err == nil {
		stats["metrics"] = totals
	}
	return stats
}
