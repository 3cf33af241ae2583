package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/usecase/dto"
)

const (
	statsCacheKey = "stats:documents"
	statsCacheTTL = time.Minute
)

// IndexCounter - размер текстового индекса
type IndexCounter interface {
	DocCount() (uint64, error)
}

// StatsUseCase обрабатывает бизнес-логику для статистики
type StatsUseCase struct {
	store     repository.DocumentRepository
	index     IndexCounter
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	store repository.DocumentRepository,
	index IndexCounter,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		store:     store,
		index:     index,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*dto.StatsResponse, error) {
	if uc.cacheRepo != nil {
		var cached dto.StatsResponse
		hit, err := uc.cacheRepo.GetJSON(ctx, statsCacheKey, &cached)
		if err != nil {
			uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
		} else if hit {
			uc.logger.Debug("Statistics fetched from cache")
			return &cached, nil
		}
	}

	count, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	stats := &dto.StatsResponse{Documents: count}

	if uc.index != nil {
		indexed, err := uc.index.DocCount()
		if err != nil {
			uc.logger.Warn("Failed to count indexed documents", zap.Error(err))
		}
		stats.IndexedDocuments = indexed
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache stats", zap.Error(err))
		}
	}

	return stats, nil
}
