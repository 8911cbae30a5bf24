package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestManager_RunsJobImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32
	m := NewManager(zap.NewNop())
	m.Register(Job{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	m.Start()
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	m.Shutdown(time.Second)

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestManager_FailingAndPanickingJobsKeepRunning(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	var calls atomic.Int32

	m := NewManager(zap.New(core))
	m.Register(Job{
		Name:     "flaky",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			switch calls.Add(1) {
			case 1:
				return errors.New("database unavailable")
			case 2:
				panic("unexpected nil")
			}
			return nil
		},
	})

	m.Start()
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	m.Shutdown(time.Second)

	assert.Equal(t, 1, logs.FilterMessage("worker job failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("worker job panicked").Len())
}

func TestNewDepartmentCleanupJob(t *testing.T) {
	var gotRetention time.Duration
	job := NewDepartmentCleanupJob(func(ctx context.Context, retention time.Duration) (CleanupResult, error) {
		gotRetention = retention
		return CleanupResult{Departments: 2}, nil
	}, DepartmentCleanupJobConfig{Retention: 48 * time.Hour})

	assert.Equal(t, "department_cleanup", job.Name)
	assert.Equal(t, time.Hour, job.Interval)
	require.NoError(t, job.Fn(context.Background()))
	assert.Equal(t, 48*time.Hour, gotRetention)
}

func TestNewDepartmentCleanupJob_PropagatesError(t *testing.T) {
	sweepErr := errors.New("lock timeout")
	job := NewDepartmentCleanupJob(func(ctx context.Context, retention time.Duration) (CleanupResult, error) {
		return CleanupResult{}, sweepErr
	}, DepartmentCleanupJobConfig{Interval: time.Minute})

	assert.Equal(t, time.Minute, job.Interval)
	assert.ErrorIs(t, job.Fn(context.Background()), sweepErr)
}

func TestNewHealthCheckJob(t *testing.T) {
	job := NewHealthCheckJob("database", func(ctx context.Context) error { return nil })

	assert.Equal(t, "database_health_check", job.Name)
	assert.NoError(t, job.Fn(context.Background()))
}
