package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/internal/config"
	httpadapter "github.com/aretw0/statusmap/pkg/adapters/http"
	"github.com/aretw0/statusmap/pkg/observability"
	"github.com/aretw0/statusmap/pkg/ports"
	"github.com/aretw0/statusmap/pkg/registry"
)

// ServeOptions configures the HTTP service.
type ServeOptions struct {
	Config config.Config
	// Sources are definition paths loaded on startup, in addition to Config.Sources.
	Sources []string
	// Watch reloads sources whose loader supports it when they change.
	Watch  bool
	Logger *slog.Logger
}

type source struct {
	path   string
	loader ports.DefinitionLoader
}

// Service is the assembled HTTP service.
type Service struct {
	Registry *registry.Registry
	Metrics  *observability.Metrics

	cfg     config.Config
	handler http.Handler
	sources []source
	watch   bool
	closer  io.Closer
	logger  *slog.Logger
}

// NewService opens the store, builds the registry and seeds it from the sources.
func NewService(ctx context.Context, opts ServeOptions) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := opts.Config

	store, closer, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	metrics, err := observability.NewMetrics(promReg)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	reg := registry.New(
		registry.WithStore(store),
		registry.WithLogger(logger),
		registry.WithMapOptions(func(name string) []statusmap.Option {
			mapOpts := []statusmap.Option{statusmap.WithHooks(metrics.Hooks(name))}
			if cfg.Cache.Disabled {
				return append(mapOpts, statusmap.WithoutCache())
			}
			return append(mapOpts, statusmap.WithCacheSize(cfg.Cache.Size))
		}),
	)

	handlerOpts := []httpadapter.Option{
		httpadapter.WithLogger(logger),
		httpadapter.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateWindow),
	}
	if cfg.Server.Metrics {
		handlerOpts = append(handlerOpts, httpadapter.WithMetricsHandler(
			promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
		))
	}

	svc := &Service{
		Registry: reg,
		Metrics:  metrics,
		cfg:      cfg,
		handler:  httpadapter.NewHandler(reg, handlerOpts...),
		watch:    opts.Watch,
		closer:   closer,
		logger:   logger,
	}

	paths := append(append([]string{}, cfg.Sources...), opts.Sources...)
	for _, path := range paths {
		loader, err := NewLoader(path, logger)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		src := source{path: path, loader: loader}
		if err := svc.reload(ctx, src); err != nil {
			_ = closer.Close()
			return nil, err
		}
		svc.sources = append(svc.sources, src)
	}

	return svc, nil
}

// Handler returns the HTTP handler of the service.
func (s *Service) Handler() http.Handler {
	return s.handler
}

// Run serves HTTP on the configured address until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	defer s.closer.Close()

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})

	if s.watch {
		for _, src := range s.sources {
			watchable, ok := src.loader.(ports.Watchable)
			if !ok {
				s.logger.Warn("source does not support watching", "path", src.path)
				continue
			}
			changes, err := watchable.Watch(gctx)
			if err != nil {
				s.logger.Error("failed to watch source", "path", src.path, "err", err)
				continue
			}
			g.Go(func() error {
				s.watchSource(gctx, src, changes)
				return nil
			})
		}
	}

	return g.Wait()
}

func (s *Service) watchSource(ctx context.Context, src source, changes <-chan struct{}) {
	s.logger.Info("watching source", "path", src.path)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := s.reload(ctx, src); err != nil {
				// Keep serving the previous version.
				s.logger.Error("reload failed", "path", src.path, "err", err)
			}
		}
	}
}

func (s *Service) reload(ctx context.Context, src source) error {
	def, err := src.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src.path, err)
	}
	m, err := s.Registry.Put(ctx, def)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", src.path, err)
	}
	s.logger.Info("map loaded", "map", m.Name(), "statuses", m.Len(), "path", src.path)
	return nil
}
