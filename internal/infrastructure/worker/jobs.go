package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/metrics"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

const (
	defaultCleanupInterval  = time.Hour
	defaultHealthInterval   = 5 * time.Minute
	defaultCleanupRetention = 30 * 24 * time.Hour
)

// CleanupResult is the number of rows one sweep removed.
type CleanupResult struct {
	Departments int
	Locations   int
	Positions   int
}

// DepartmentCleanupJobConfig configures the department cleanup sweep.
type DepartmentCleanupJobConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// NewDepartmentCleanupJob creates the periodic hard-delete sweep for soft deleted departments.
// A failed sweep leaves the database untouched and is retried on the next tick.
func NewDepartmentCleanupJob(
	cleanupFn func(ctx context.Context, retention time.Duration) (CleanupResult, error),
	cfg DepartmentCleanupJobConfig,
) Job {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultCleanupInterval
	}
	if cfg.Retention < 0 {
		cfg.Retention = defaultCleanupRetention
	}

	return Job{
		Name:     "department_cleanup",
		Interval: cfg.Interval,
		Fn: func(ctx context.Context) error {
			started := time.Now()
			result, err := cleanupFn(ctx, cfg.Retention)
			metrics.RecordCleanupRun(err, time.Since(started), result.Departments, result.Locations, result.Positions)
			if err != nil {
				return err
			}
			if result.Departments > 0 || result.Locations > 0 || result.Positions > 0 {
				logger.Info(ctx, "department cleanup completed",
					zap.Int("departments", result.Departments),
					zap.Int("locations", result.Locations),
					zap.Int("positions", result.Positions),
				)
			}
			return nil
		},
	}
}

// NewHealthCheckJob creates a job that pings a dependency (database, redis).
func NewHealthCheckJob(name string, checkFn func(ctx context.Context) error) Job {
	return Job{
		Name:     name + "_health_check",
		Interval: defaultHealthInterval,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				logger.Warn(ctx, "health check failed", zap.String("target", name), zap.Error(err))
				return err
			}
			return nil
		},
	}
}
