package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
)

const (
	streamDataField  = "data"
	defaultReadBlock = time.Second
	readErrorDelay   = time.Second

	// pendingID - история консьюмера (PEL), newID - только новые сообщения группы
	pendingID = "0"
	newID     = ">"
)

// StreamOptions - параметры чтения и записи стримов
type StreamOptions struct {
	// ReadBlock - сколько XREADGROUP ждет новых сообщений
	ReadBlock time.Duration
	// MaxLen - приблизительный предел длины стрима при XADD, 0 - без обрезки
	MaxLen int64
}

type streamRepository struct {
	client *redis.Client
	opts   StreamOptions
	logger *zap.Logger
}

// NewStreamRepository создает репозиторий Redis Streams
func NewStreamRepository(client *redis.Client, opts StreamOptions, logger *zap.Logger) repository.StreamRepository {
	if opts.ReadBlock <= 0 {
		opts.ReadBlock = defaultReadBlock
	}
	return &streamRepository{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// CreateConsumerGroup создает группу с позиции "$"; стрим создается при необходимости.
// Уже существующая группа ошибкой не считается.
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err == nil {
		r.logger.Info("Consumer group created",
			zap.String("stream", stream),
			zap.String("group", group))
		return nil
	}
	if strings.HasPrefix(err.Error(), "BUSYGROUP") {
		r.logger.Debug("Consumer group already exists",
			zap.String("stream", stream),
			zap.String("group", group))
		return nil
	}

	r.logger.Error("Failed to create consumer group",
		zap.String("stream", stream),
		zap.String("group", group),
		zap.Error(err))
	return fmt.Errorf("failed to create consumer group: %w", err)
}

// ConsumeStream запускает чтение в горутине. Сначала перечитываются сообщения,
// которые этот консьюмер получил раньше, но не подтвердил (упал до ACK),
// затем читаются новые.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string, batchSize int64) (<-chan domain.StreamMessage, error) {
	if batchSize <= 0 {
		batchSize = 10
	}
	out := make(chan domain.StreamMessage, batchSize)

	go func() {
		defer close(out)

		cursor := pendingID
		for ctx.Err() == nil {
			msgs, lastID, err := r.read(ctx, stream, group, consumer, cursor, batchSize)
			if err != nil {
				if ctx.Err() != nil {
					break
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.String("cursor", cursor),
					zap.Error(err))
				select {
				case <-time.After(readErrorDelay):
				case <-ctx.Done():
				}
				continue
			}

			if cursor != newID {
				if lastID == "" {
					cursor = newID
				} else {
					// следующая страница истории начинается после последнего id
					cursor = lastID
				}
			}

			for _, msg := range msgs {
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}

		r.logger.Info("Stream consumer stopped",
			zap.String("stream", stream),
			zap.String("consumer", consumer))
	}()

	return out, nil
}

// read - один XREADGROUP. lastID - id последней прочитанной записи, включая записи без data;
// пустой ответ при таймауте блокировки не ошибка.
func (r *streamRepository) read(ctx context.Context, stream, group, consumer, cursor string, count int64) ([]domain.StreamMessage, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, cursor},
		Count:    count,
		Block:    r.opts.ReadBlock,
	}
	if cursor != newID {
		// история не блокируется
		args.Block = -1
	}

	res, err := r.client.XReadGroup(ctx, args).Result()
	if errors.Is(err, redis.Nil) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var (
		msgs   []domain.StreamMessage
		lastID string
	)
	for _, xs := range res {
		for _, m := range xs.Messages {
			lastID = m.ID
			data, ok := m.Values[streamDataField].(string)
			if !ok {
				// запись без data (или удаленная через XDEL) - подтверждаем, иначе она вечно в PEL
				r.logger.Warn("Stream entry without data field, acking",
					zap.String("stream", stream),
					zap.String("message_id", m.ID))
				_ = r.AckMessage(ctx, stream, group, m.ID)
				continue
			}
			msgs = append(msgs, domain.StreamMessage{ID: m.ID, Data: data})
		}
	}
	return msgs, lastID, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}

// PublishToStream сериализует data в JSON и добавляет запись в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal stream payload: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{streamDataField: string(payload)},
	}
	if r.opts.MaxLen > 0 {
		args.MaxLen = r.opts.MaxLen
		args.Approx = true
	}

	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
