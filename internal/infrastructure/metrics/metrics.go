package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "divisions",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	cleanupRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "divisions",
		Subsystem: "cleanup",
		Name:      "runs_total",
		Help:      "Total number of department cleanup sweeps broken down by result.",
	}, []string{"result"})

	cleanupRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "divisions",
		Subsystem: "cleanup",
		Name:      "removed_total",
		Help:      "Total number of rows physically removed by the cleanup sweep.",
	}, []string{"kind"})

	cleanupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "divisions",
		Subsystem: "cleanup",
		Name:      "duration_seconds",
		Help:      "Duration of department cleanup sweeps.",
		Buckets:   prometheus.DefBuckets,
	})

	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "divisions",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Total number of department cache lookups broken down by cache and hit/miss.",
	}, []string{"cache", "result"})

	cacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "divisions",
		Subsystem: "cache",
		Name:      "invalidate_total",
		Help:      "Total number of department cache invalidations broken down by scope and result.",
	}, []string{"scope", "result"})
)

// ObserveHTTPRequest records the duration of a handled request.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordCleanupRun records the outcome of one cleanup sweep.
func RecordCleanupRun(err error, elapsed time.Duration, departments, locations, positions int) {
	cleanupDuration.Observe(elapsed.Seconds())
	if err != nil {
		cleanupRuns.WithLabelValues("error").Inc()
		return
	}
	cleanupRuns.WithLabelValues("success").Inc()
	cleanupRemoved.WithLabelValues("department").Add(float64(departments))
	cleanupRemoved.WithLabelValues("location").Add(float64(locations))
	cleanupRemoved.WithLabelValues("position").Add(float64(positions))
}

// RecordCacheRequest records a cache hit or miss.
func RecordCacheRequest(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(cache, result).Inc()
}

// RecordCacheInvalidation records a cache invalidation attempt.
func RecordCacheInvalidation(scope string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheInvalidations.WithLabelValues(scope, result).Inc()
}

// RegisterPoolStats exposes connection pool statistics as gauges.
// Registering a second pool is a no-op.
func RegisterPoolStats(stat func() *pgxpool.Stat) error {
	gauges := []prometheus.Collector{
		poolGauge("acquired_conns", "Connections currently acquired from the pool.", func(s *pgxpool.Stat) float64 {
			return float64(s.AcquiredConns())
		}, stat),
		poolGauge("idle_conns", "Idle connections in the pool.", func(s *pgxpool.Stat) float64 {
			return float64(s.IdleConns())
		}, stat),
		poolGauge("total_conns", "Total connections in the pool.", func(s *pgxpool.Stat) float64 {
			return float64(s.TotalConns())
		}, stat),
		poolGauge("empty_acquire_total", "Acquires that had to wait for a connection.", func(s *pgxpool.Stat) float64 {
			return float64(s.EmptyAcquireCount())
		}, stat),
	}
	for _, g := range gauges {
		if err := prometheus.Register(g); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

func poolGauge(name, help string, value func(*pgxpool.Stat) float64, stat func() *pgxpool.Stat) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "divisions",
		Subsystem: "db_pool",
		Name:      name,
		Help:      help,
	}, func() float64 { return value(stat()) })
}
