package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job は定期実行ジョブを定義します
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Manager はバックグラウンドワーカーを管理します
type Manager struct {
	jobs   []Job
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager は新しいWorker Managerを作成します
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.L()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		logger: logger.Named("worker"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register は定期実行ジョブを登録します
func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Start は全ジョブのワーカーを開始します
func (m *Manager) Start() {
	for _, job := range m.jobs {
		m.wg.Add(1)
		go m.runJob(job)
	}
	m.logger.Info("worker manager started", zap.Int("jobs", len(m.jobs)))
}

// runJob は単一ジョブのワーカーループを実行します
// ジョブの失敗は記録するだけで、次のティックで再試行されます
func (m *Manager) runJob(job Job) {
	defer m.wg.Done()

	log := m.logger.With(zap.String("job", job.Name))
	log.Info("worker started", zap.Duration("interval", job.Interval))

	// 最初の実行を即座に行う
	m.runOnce(log, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			log.Info("worker stopping")
			return
		case <-ticker.C:
			m.runOnce(log, job)
		}
	}
}

func (m *Manager) runOnce(log *zap.Logger, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("worker job panicked", zap.Error(fmt.Errorf("panic: %v", r)), zap.Stack("stack"))
		}
	}()

	if err := job.Fn(m.ctx); err != nil {
		if m.ctx.Err() != nil {
			return
		}
		log.Error("worker job failed", zap.Error(err))
	}
}

// Shutdown はすべてのワーカーを安全に停止します
func (m *Manager) Shutdown(timeout time.Duration) {
	m.logger.Info("shutting down worker manager...")
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("worker manager stopped gracefully")
	case <-time.After(timeout):
		m.logger.Warn("worker manager shutdown timed out")
	}
}
