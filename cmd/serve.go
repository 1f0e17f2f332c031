package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/skillswap/internal/adapters/cache"
	"github.com/okian/skillswap/internal/adapters/dataset"
	"github.com/okian/skillswap/internal/adapters/http/api"
	"github.com/okian/skillswap/internal/adapters/http/site"
	"github.com/okian/skillswap/internal/adapters/http/swagger"
	"github.com/okian/skillswap/internal/adapters/repository"
	service "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/config"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func newServeCmd(logLevel *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if *logLevel == "" {
				if err := logger.SetLevelString(cfg.LogLevel); err != nil {
					logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
					_ = logger.SetLevelString("info")
				}
			}
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address; overrides config")
	return cmd
}

// serve runs the service until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	svc, closeCache, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(gctx, "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(gctx, "server shutdown failed", logger.Error(err))
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		runEvery(gctx, systemMetricsInterval, updateSystemMetrics)
		return nil
	})
	g.Go(func() error {
		runEvery(gctx, serviceMetricsInterval, func() { svc.GetStats() })
		return nil
	})

	err = g.Wait()
	log.Info(ctx, "server stopped")
	return err
}

// buildService loads the dataset and wires the optional search cache. The
// returned func releases the cache connection.
func buildService(ctx context.Context, cfg *config.Config) (*service.Service, func(), error) {
	cat, err := dataset.New().Load(ctx, cfg.DatasetPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	lo, hi := cfg.DeliveryLatency()
	opts := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithDeliveryLatencyRange(lo, hi),
		service.WithInbox(cfg.InboxSize, cfg.NoticeTTL()),
		service.WithMaxPageSize(cfg.MaxPageSize),
		service.WithAwayWindow(cfg.AwayWindow()),
	}

	closeCache := func() {}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cache.WithTTL(cfg.CacheTTL()))
		if rc.Enabled() {
			opts = append(opts, service.WithSearchCache(rc))
		}
		closeCache = func() { _ = rc.Close() }
	}
	return service.New(repository.NewMemStore(ctx, cat), opts...), closeCache, nil
}

// newMux registers the landing page, the API docs and the business API.
func newMux(ctx context.Context, svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

func runEvery(ctx context.Context, every time.Duration, fn func()) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
