package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/internal/adapters/file"
	"github.com/aretw0/wayfarer/internal/config"
	"github.com/aretw0/wayfarer/pkg/adapters/loam"
	"github.com/aretw0/wayfarer/pkg/adapters/redis"
	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/aretw0/wayfarer/pkg/observability"
	"github.com/aretw0/wayfarer/pkg/persistence/middleware"
	"github.com/aretw0/wayfarer/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime bundles what the commands build from the configuration.
type Runtime struct {
	Planner *wayfarer.Planner
	Metrics *observability.Metrics
	Logger  *slog.Logger

	closers []func() error
}

// Close releases the store connections.
func (r *Runtime) Close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Backend is an opened session store plus its optional locker.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker
	Close  func() error
}

// OpenStore opens the session store selected by the configuration and wraps it
// with the configured middlewares.
func OpenStore(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{Close: func() error { return nil }}

	switch cfg.Store.Backend {
	case config.BackendFile:
		b.Store = file.New(cfg.Store.Path)
	case config.BackendRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		b.Store = store
		b.Close = store.Close
		if cfg.Redis.Lock {
			b.Locker = redis.NewLocker(store.Client(), store.Prefix())
		}
	default:
		// Memory stores live inside the planner.
	}

	mws, err := storeMiddlewares(cfg.Security)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if b.Store != nil && len(mws) > 0 {
		b.Store = middleware.Chain(b.Store, mws...)
	}
	return b, nil
}

// storeMiddlewares masks PII before encrypting, so the outermost runs first.
func storeMiddlewares(sec config.SecurityConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(sec.PIIPatterns) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(sec.PIIPatterns))
	}
	active, fallbacks, err := sec.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		}))
	}
	return mws, nil
}

// CatalogSource resolves a catalog path: a directory is read as Loam documents,
// a file as YAML or JSON. An empty path means the built-in catalog (nil source).
func CatalogSource(path string) (catalog.Source, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog not found: %w", err)
	}
	if info.IsDir() {
		return loam.Open(path)
	}
	return catalog.FileSource{Path: path}, nil
}

// Build wires a Planner from the configuration.
// A nil registry registers the metrics with a private registry.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer, extra ...wayfarer.Option) (*Runtime, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	rt := &Runtime{
		Metrics: observability.NewMetrics(reg),
		Logger:  logger,
	}

	backend, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, backend.Close)

	opts := []wayfarer.Option{
		wayfarer.WithLogger(logger),
		wayfarer.WithHooks(observability.Hooks(logger, rt.Metrics)),
	}
	if backend.Store != nil {
		opts = append(opts, wayfarer.WithStore(backend.Store))
	} else if mws, err := storeMiddlewares(cfg.Security); err == nil && len(mws) > 0 {
		opts = append(opts, wayfarer.WithStoreMiddleware(mws...))
	}
	if backend.Locker != nil {
		opts = append(opts, wayfarer.WithLocker(backend.Locker), wayfarer.WithLockTTL(cfg.Redis.LockTTL))
	}

	src, err := CatalogSource(cfg.Catalog.Path)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	if src != nil {
		opts = append(opts, wayfarer.WithCatalogSource(src))
	}

	p, err := wayfarer.New(append(opts, extra...)...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing planner: %w", err)
	}
	rt.Planner = p

	if cfg.Catalog.Watch && src != nil {
		if _, ok := src.(ports.Watchable); ok {
			go func() {
				if err := p.WatchCatalog(ctx); err != nil && ctx.Err() == nil {
					logger.Error("Catalog watch stopped", "err", err)
				}
			}()
		} else {
			logger.Warn("Catalog source does not support watching", "path", cfg.Catalog.Path)
		}
	}
	return rt, nil
}
