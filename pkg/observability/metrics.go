package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arcadehq/critique/pkg/httputil"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	StorageErrorsTotal *prometheus.CounterVec

	GamesTotal   prometheus.Gauge
	ReviewsTotal prometheus.Gauge
	UsersTotal   prometheus.Gauge
}

// NewMetrics creates and registers all collectors on the given registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "critique_http_requests_total",
				Help: "Total HTTP requests by method, route, and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "critique_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		StorageErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "critique_storage_errors_total",
				Help: "Storage failures surfaced to handlers, by operation",
			},
			[]string{"operation"},
		),
		GamesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "critique_games_total",
			Help: "Number of games in the catalog",
		}),
		ReviewsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "critique_reviews_total",
			Help: "Number of reviews in the catalog",
		}),
		UsersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "critique_users_total",
			Help: "Number of users in the catalog",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StorageErrorsTotal,
		m.GamesTotal,
		m.ReviewsTotal,
		m.UsersTotal,
	)

	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler records request count and latency for every request.
// Routes are labeled by their mux template to keep cardinality bounded.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := httputil.NewStatusRecorder(w)

		next.ServeHTTP(rw, r)

		route := routeTemplate(r)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.Status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
