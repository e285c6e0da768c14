// Package observability provides logging, metrics, health checks, and
// optional tracing for the critique service.
//
// # Logging
//
// Structured logging is built on logrus:
//
//	logger := observability.NewLogger("info", "json", os.Stdout)
//	logger.WithField("game_id", id).Info("game served")
//
// # Metrics
//
// Prometheus metrics cover HTTP traffic and catalog row counts:
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	handler := metrics.InstrumentHandler(apiHandler)
//	healthMux.Handle("/metrics", metrics.Handler())
//
// Row-count gauges are refreshed on a schedule by StatsCollector (robfig/cron).
//
// # Health
//
// HealthChecker serves /health/live and /health/ready, probing the database
// (and Redis when configured) with a bounded timeout.
//
// # Tracing
//
// InitTracing installs an OTLP gRPC tracer provider when enabled; wrap the
// API handler with otelhttp at the call site.
package observability
