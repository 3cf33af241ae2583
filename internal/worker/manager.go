package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultShutdownTimeout - если WORKER_SHUTDOWN_TIMEOUT не задан
const defaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает воркеры в отдельных горутинах и останавливает их с таймаутом
type WorkerManager struct {
	logger          *zap.Logger
	shutdownTimeout time.Duration

	mu      sync.Mutex
	workers []Worker
	failed  []error
	wg      sync.WaitGroup
}

func NewWorkerManager(logger *zap.Logger, shutdownTimeout time.Duration) *WorkerManager {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Start не блокируется. Ошибка воркера логируется и возвращается из Stop.
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return errors.New("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.wg.Add(1)
		go m.run(ctx, w)
	}
	return nil
}

func (m *WorkerManager) run(ctx context.Context, w Worker) {
	defer m.wg.Done()

	err := w.Start(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		m.logger.Info("Worker finished", zap.String("name", w.Name()))
		return
	}

	m.logger.Error("Worker failed", zap.String("name", w.Name()), zap.Error(err))
	m.mu.Lock()
	m.failed = append(m.failed, fmt.Errorf("worker %s: %w", w.Name(), err))
	m.mu.Unlock()
}

// Stop сигнализирует всем воркерам и ждет их не дольше shutdownTimeout.
// Неподтвержденные сообщения остаются в PEL и будут перечитаны после рестарта.
func (m *WorkerManager) Stop() error {
	workers := m.snapshot()
	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker", zap.String("name", w.Name()), zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out", zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.failed) > 0 {
		return errors.Join(m.failed...)
	}
	m.logger.Info("All workers stopped gracefully")
	return nil
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Worker(nil), m.workers...)
}
