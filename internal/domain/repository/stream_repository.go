package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// StreamConsumer - чтение стрима через consumer group.
// Канал ConsumeStream сначала отдает собственные неподтвержденные сообщения консьюмера,
// потом новые; закрывается при отмене ctx.
type StreamConsumer interface {
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	ConsumeStream(ctx context.Context, stream, group, consumer string, batchSize int64) (<-chan domain.StreamMessage, error)
	AckMessage(ctx context.Context, stream, group, messageID string) error
}

// StreamPublisher - запись JSON-сообщения в поле data стрима
type StreamPublisher interface {
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

// StreamRepository - Redis Streams целиком
type StreamRepository interface {
	StreamConsumer
	StreamPublisher
}
