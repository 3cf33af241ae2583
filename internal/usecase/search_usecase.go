package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/metrics"
	"github.com/place-resolver/internal/usecase/dto"
)

const searchCachePrefix = "search:"

// SearchUseCase - use case для поиска мест: свободный текст, адрес, id
type SearchUseCase struct {
	engine    repository.QueryEngine
	resolver  *AddressResolver
	hydrator  *ResultHydrator
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewSearchUseCase - cacheRepo может быть nil, тогда ответы не кешируются
func NewSearchUseCase(
	engine repository.QueryEngine,
	resolver *AddressResolver,
	hydrator *ResultHydrator,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SearchUseCase {
	return &SearchUseCase{
		engine:    engine,
		resolver:  resolver,
		hydrator:  hydrator,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Search - поиск по свободному тексту; возвращает всех кандидатов в полной форме
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchRequest) (*domain.Resolution, error) {
	return uc.cached(ctx, "search", req, func(ctx context.Context) (*domain.Resolution, error) {
		text := req.Text
		if req.IsLive() {
			text = MarkPartial(text)
		}
		opts := domain.HydrateOptions{
			Placetypes: dto.Placetypes(req.Placetypes),
			Lang:       req.Lang,
		}
		if strings.TrimSpace(strings.TrimSuffix(text, domain.PartialTokenSuffix)) == "" {
			return uc.hydrator.Hydrate(ctx, nil, opts)
		}

		ids, err := uc.engine.Query(ctx, text)
		if err != nil {
			return nil, err
		}
		return uc.hydrator.Hydrate(ctx, ids, opts)
	})
}

// SearchAddress - разрешение структурированного адреса или координат
func (uc *SearchUseCase) SearchAddress(ctx context.Context, req dto.AddressRequest) (*domain.Resolution, error) {
	return uc.cached(ctx, "address", req, func(ctx context.Context) (*domain.Resolution, error) {
		return uc.resolver.Resolve(ctx, req.ToQuery())
	})
}

// GetPlace - одно место по id
func (uc *SearchUseCase) GetPlace(ctx context.Context, id int64, lang string) (*domain.Result, error) {
	res, err := uc.hydrator.Hydrate(ctx, []int64{id}, domain.HydrateOptions{Lang: lang, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(res.Results) == 0 {
		return nil, errors.ErrNotFound.WithDetails(map[string]interface{}{"id": id})
	}
	return &res.Results[0], nil
}

func (uc *SearchUseCase) cached(
	ctx context.Context,
	kind string,
	req interface{},
	resolve func(context.Context) (*domain.Resolution, error),
) (*domain.Resolution, error) {
	key, ok := cacheKey(kind, req)
	if uc.cacheRepo == nil || !ok {
		return uc.resolveObserved(ctx, kind, resolve)
	}

	var res domain.Resolution
	hit, err := uc.cacheRepo.GetJSON(ctx, key, &res)
	if err != nil {
		uc.logger.Warn("Failed to read search cache", zap.String("key", key), zap.Error(err))
	}
	if hit && err == nil {
		metrics.CacheHitsTotal.Inc()
		return &res, nil
	}
	metrics.CacheMissesTotal.Inc()

	out, err := uc.resolveObserved(ctx, kind, resolve)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetJSON(ctx, key, out, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to write search cache", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}

func (uc *SearchUseCase) resolveObserved(
	ctx context.Context,
	kind string,
	resolve func(context.Context) (*domain.Resolution, error),
) (*domain.Resolution, error) {
	res, err := resolve(ctx)
	if err == nil && res.Len() == 0 {
		metrics.EmptyResultsTotal.WithLabelValues(kind).Inc()
	}
	return res, err
}

// cacheKey - search:<sha256 от вида запроса и его полей>, первые 16 байт
func cacheKey(kind string, req interface{}) (string, bool) {
	payload, err := json.Marshal(struct {
		Kind string      `json:"kind"`
		Req  interface{} `json:"req"`
	}{kind, req})
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(payload)
	return searchCachePrefix + hex.EncodeToString(sum[:16]), true
}
