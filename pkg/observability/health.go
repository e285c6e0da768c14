package observability

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/arcadehq/critique/pkg/httputil"
)

// Dependency health states.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Pinger is anything whose reachability can be probed. Both catalog stores
// and raw database handles satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker serves liveness and readiness probes over named
// dependencies.
type HealthChecker struct {
	deps map[string]Pinger
}

// NewHealthChecker builds a checker over the named dependencies. Nil
// entries are skipped, so optional dependencies can be passed unconditionally.
func NewHealthChecker(deps map[string]Pinger) *HealthChecker {
	checker := &HealthChecker{deps: make(map[string]Pinger, len(deps))}
	for name, dep := range deps {
		if dep != nil {
			checker.deps[name] = dep
		}
	}
	return checker
}

// DBPinger adapts *sql.DB to Pinger.
func DBPinger(db *sql.DB) Pinger {
	return pingerFunc(db.PingContext)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthStatus is the readiness response body.
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus reports one dependency probe.
type DependencyStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Liveness always reports healthy while the process can serve requests.
func (h *HealthChecker) Liveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteSuccess(w, map[string]any{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness probes every dependency and returns 503 when any is down.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)
	code := http.StatusOK
	if status.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, status)
}

// Check probes all dependencies and aggregates their state.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyStatus, len(h.deps)),
	}

	for name, dep := range h.deps {
		start := time.Now()
		depStatus := DependencyStatus{Status: StatusHealthy}
		if err := dep.Ping(ctx); err != nil {
			depStatus.Status = StatusUnhealthy
			depStatus.Message = err.Error()
			status.Status = StatusUnhealthy
		}
		depStatus.LatencyMS = time.Since(start).Milliseconds()
		status.Dependencies[name] = depStatus
	}

	return status
}

// RegisterRoutes mounts the probe endpoints on a plain ServeMux.
func (h *HealthChecker) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health/live", h.Liveness)
	mux.HandleFunc("/health/ready", h.Readiness)
}
