package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - имя, consumer group, сигнал остановки. Встраивается в конкретные воркеры.
type BaseWorker struct {
	name     string
	group    string
	consumer string
	logger   *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	consumer := ConsumerName()
	return &BaseWorker{
		name:     name,
		group:    consumerGroup,
		consumer: consumer,
		logger: logger.With(
			zap.String("worker", name),
			zap.String("consumer", consumer),
		),
		stopCh: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string { return w.name }

func (w *BaseWorker) ConsumerGroup() string { return w.group }

func (w *BaseWorker) ConsumerName() string { return w.consumer }

// Logger уже содержит поля worker и consumer
func (w *BaseWorker) Logger() *zap.Logger { return w.logger }

func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopCh)
	})
	return nil
}

func (w *BaseWorker) StopChan() <-chan struct{} { return w.stopCh }

func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopCh:
		return true
	default:
		return false
	}
}
