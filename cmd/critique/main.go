package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/arcadehq/critique/pkg/api"
	"github.com/arcadehq/critique/pkg/catalog"
	"github.com/arcadehq/critique/pkg/config"
	"github.com/arcadehq/critique/pkg/observability"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	seed := flag.Bool("seed", false, "Seed the database with sample data on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stdout)

	if err := run(cfg, logger, *seed); err != nil {
		logger.Fatalf("Server exited with error: %v", err)
	}
}

func run(cfg *config.Config, logger *logrus.Logger, seed bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlStore, err := catalog.Open(cfg.Storage)
	if err != nil {
		return err
	}

	if err := catalog.Migrate(ctx, sqlStore.DB()); err != nil {
		return err
	}
	if seed {
		if err := catalog.Seed(ctx, sqlStore.DB()); err != nil {
			return err
		}
		logger.Info("Database seeded with sample data")
	}

	store, err := buildStore(sqlStore, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	tracerProvider, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Observability.OTelEnabled,
		Endpoint:    cfg.Observability.OTelEndpoint,
		ServiceName: cfg.Observability.OTelServiceName,
		Insecure:    cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := observability.ShutdownTracing(context.Background(), tracerProvider); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracer provider")
		}
	}()

	var metrics *observability.Metrics
	var stats *observability.StatsCollector
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
		stats = observability.NewStatsCollector(sqlStore.DB(), metrics, logger)
		if err := stats.Start(cfg.Observability.StatsSchedule); err != nil {
			return err
		}
		defer stats.Stop()
	}

	server := api.NewServer(store, api.Options{
		Logger:    logger,
		Metrics:   metrics,
		ListLimit: cfg.Storage.ListLimit,
	})

	var handler http.Handler = server
	if tracerProvider != nil {
		handler = otelhttp.NewHandler(handler, "critique")
	}

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMux := http.NewServeMux()
	health := observability.NewHealthChecker(map[string]observability.Pinger{
		"storage": store,
	})
	health.RegisterRoutes(healthMux)
	if metrics != nil {
		healthMux.Handle("/metrics", metrics.Handler())
	}
	healthServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:      healthMux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("Starting API server")
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("Starting health/metrics server")
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return group.Wait()
}

// buildStore wraps the SQL store with the configured cache layer.
func buildStore(sqlStore *catalog.SQLStore, cfg catalog.Config, logger *logrus.Logger) (catalog.Store, error) {
	switch cfg.Cache {
	case catalog.CacheLRU:
		logger.WithField("size", cfg.LRUSize).Info("Using in-process LRU cache")
		return catalog.NewLRUStore(sqlStore, cfg.LRUSize)
	case catalog.CacheRedis:
		logger.WithField("addr", cfg.RedisAddr).Info("Using Redis cache")
		return catalog.NewRedisStore(sqlStore, cfg)
	default:
		return sqlStore, nil
	}
}
