package resolve

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/validator"
	"github.com/place-resolver/internal/usecase/dto"
	"github.com/place-resolver/internal/worker"
)

const workerName = "place-resolve"

// AddressSearcher - то, что воркеру нужно от SearchUseCase
type AddressSearcher interface {
	SearchAddress(ctx context.Context, req dto.AddressRequest) (*domain.Resolution, error)
}

// Worker читает ResolveEvent из stream:place:resolve и публикует результат в stream:place:resolved
type Worker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	searcher   AddressSearcher
	batchSize  int64
}

// NewWorker создает воркер разрешения адресов
func NewWorker(
	streamRepo repository.StreamRepository,
	searcher AddressSearcher,
	consumerGroup string,
	batchSize int64,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		BaseWorker: worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo: streamRepo,
		searcher:   searcher,
		batchSize:  batchSize,
	}
}

// Start запускает воркер и блокируется до остановки
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting resolve worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.Int64("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlaceResolve, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamPlaceResolve, w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// handle обрабатывает одно сообщение. Сообщение подтверждается только после публикации результата,
// битые сообщения подтверждаются сразу чтобы не застревали в PEL.
func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.ResolveEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	done := w.resolve(ctx, &event)
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamPlaceResolved, done); err != nil {
		// без ACK сообщение останется в PEL и будет переобработано
		logger.Error("Failed to publish done event",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		return
	}

	w.ack(ctx, msg.ID)
}

func (w *Worker) resolve(ctx context.Context, event *domain.ResolveEvent) *domain.ResolveDoneEvent {
	done := &domain.ResolveDoneEvent{RequestID: event.RequestID}

	if event.IsEmpty() {
		done.Results = []domain.Result{}
		return done
	}

	req := dto.FromEvent(event)
	if err := validator.Validate(&req); err != nil {
		done.Error = err.Error()
		return done
	}

	res, err := w.searcher.SearchAddress(ctx, req)
	if err != nil {
		w.Logger().Error("Resolve failed",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		done.Error = err.Error()
		return done
	}

	done.Results = res.Payload()
	return done
}

func (w *Worker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamPlaceResolve, w.ConsumerGroup(), id); err != nil {
		w.Logger().Warn("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
