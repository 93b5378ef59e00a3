package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scribe_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AuthFailures counts requests rejected by the auth gate, by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_auth_failures_total",
		Help: "Total number of requests rejected by the auth gate",
	}, []string{"reason"})

	// AccountEvents counts signup and signin outcomes.
	AccountEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_account_events_total",
		Help: "Total signup and signin attempts by outcome",
	}, []string{"event", "outcome"})

	// PostWrites counts post mutations by operation.
	PostWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_post_writes_total",
		Help: "Total number of post create, update and delete operations",
	}, []string{"operation"})

	// CacheLookups counts cache-aside reads by result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_cache_lookups_total",
		Help: "Total cache-aside lookups by result",
	}, []string{"result"})
)

// DatabaseMetrics records repository query latency for one table.
type DatabaseMetrics struct {
	table string
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance for table.
func NewDatabaseMetrics(table string) *DatabaseMetrics {
	return &DatabaseMetrics{table: table}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, m.table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, start)
	}
}
