package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/usecase"
	"github.com/place-resolver/internal/usecase/dto"
)

type searchFixture struct {
	store  *MockDocumentRepository
	refs   *MockReferenceRepository
	engine *MockQueryEngine
	cache  *MockCacheRepository
	uc     *usecase.SearchUseCase
}

func newSearchFixture(withCache bool) *searchFixture {
	f := &searchFixture{
		store:  &MockDocumentRepository{},
		refs:   &MockReferenceRepository{},
		engine: &MockQueryEngine{},
		cache:  &MockCacheRepository{},
	}
	logger := zap.NewNop()
	hydrator := usecase.NewResultHydrator(f.store, logger)
	resolver := usecase.NewAddressResolver(f.store, f.refs, f.engine, hydrator, nil, config.ResolverConfig{MaxLimit: 100}, logger)

	var cache repository.CacheRepository
	if withCache {
		cache = f.cache
	}
	f.uc = usecase.NewSearchUseCase(f.engine, resolver, hydrator, cache, logger, time.Minute)
	return f
}

func TestSearchUseCase_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates every candidate", func(t *testing.T) {
		f := newSearchFixture(false)
		f.engine.On("Query", mock.Anything, "paris").Return([]int64{paris.ID, france.ID}, nil)
		f.store.On("GetFiltered", mock.Anything, []int64{paris.ID, france.ID}, repository.FilterOptions{}).
			Return([]*domain.Document{paris, france}, nil)
		f.store.On("GetMany", mock.Anything, []int64{france.ID}).Return([]*domain.Document{france}, nil)

		res, err := f.uc.Search(ctx, dto.SearchRequest{Text: "paris", Lang: "fra"})

		require.NoError(t, err)
		require.Len(t, res.Results, 2)
		assert.Equal(t, paris.ID, res.Results[0].ID)
		assert.Equal(t, "Paris", res.Results[0].Name)
		assert.False(t, res.Results[0].LanguageDefaulted)
	})

	t.Run("live mode marks the last token", func(t *testing.T) {
		f := newSearchFixture(false)
		f.engine.On("Query", mock.Anything, "par"+domain.PartialTokenSuffix).Return([]int64{}, nil)

		res, err := f.uc.Search(ctx, dto.SearchRequest{Text: "par", Mode: dto.ModeLive})

		require.NoError(t, err)
		assert.Equal(t, []domain.Result{}, res.Payload())
		f.engine.AssertExpectations(t)
	})

	t.Run("live mode with trailing space searches whole words", func(t *testing.T) {
		f := newSearchFixture(false)
		f.engine.On("Query", mock.Anything, "paris").Return([]int64{}, nil)

		_, err := f.uc.Search(ctx, dto.SearchRequest{Text: "paris ", Mode: dto.ModeLive})

		require.NoError(t, err)
		f.engine.AssertExpectations(t)
	})

	t.Run("blank text skips the engine", func(t *testing.T) {
		f := newSearchFixture(false)

		res, err := f.uc.Search(ctx, dto.SearchRequest{Text: "", Mode: dto.ModeLive})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Len())
		f.engine.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	})
}

func TestSearchUseCase_Cache(t *testing.T) {
	ctx := context.Background()
	req := dto.AddressRequest{Text: "Paris"}

	t.Run("hit short-circuits the resolver", func(t *testing.T) {
		f := newSearchFixture(true)
		f.cache.On("GetJSON", mock.Anything, mock.MatchedBy(func(key string) bool {
			return len(key) == len("search:")+32
		}), mock.Anything).
			Run(func(args mock.Arguments) {
				dest := args.Get(2).(*domain.Resolution)
				dest.Results = []domain.Result{{ID: paris.ID, Name: "Paris"}}
			}).
			Return(true, nil)

		res, err := f.uc.SearchAddress(ctx, req)

		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, paris.ID, res.Results[0].ID)
		f.engine.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss resolves and stores", func(t *testing.T) {
		f := newSearchFixture(true)
		f.cache.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil)
		f.engine.On("Query", mock.Anything, "Paris").Return([]int64{}, nil)

		res, err := f.uc.SearchAddress(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 0, res.Len())
		f.cache.AssertExpectations(t)
	})

	t.Run("cache errors are treated as misses", func(t *testing.T) {
		f := newSearchFixture(true)
		f.cache.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.ErrCacheError)
		f.cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.ErrCacheError)
		f.engine.On("Query", mock.Anything, "Paris").Return([]int64{}, nil)

		_, err := f.uc.SearchAddress(ctx, req)

		require.NoError(t, err)
		f.engine.AssertExpectations(t)
	})

	t.Run("resolver errors are not cached", func(t *testing.T) {
		f := newSearchFixture(true)
		f.cache.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.engine.On("Query", mock.Anything, "Paris").Return(nil, errors.ErrQueryEngine)

		_, err := f.uc.SearchAddress(ctx, req)

		assert.ErrorIs(t, err, errors.ErrQueryEngine)
		f.cache.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("different requests use different keys", func(t *testing.T) {
		var keys []string
		f := newSearchFixture(true)
		f.cache.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { keys = append(keys, args.String(1)) }).
			Return(false, nil)
		f.cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.engine.On("Query", mock.Anything, mock.Anything).Return([]int64{}, nil)

		_, _ = f.uc.SearchAddress(ctx, dto.AddressRequest{Text: "Paris"})
		_, _ = f.uc.SearchAddress(ctx, dto.AddressRequest{Text: "Paris", Minimal: true})
		_, _ = f.uc.Search(ctx, dto.SearchRequest{Text: "Paris"})

		require.Len(t, keys, 3)
		assert.NotEqual(t, keys[0], keys[1])
		assert.NotEqual(t, keys[0], keys[2])
	})
}

func TestSearchUseCase_GetPlace(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newSearchFixture(false)
		f.store.On("GetFiltered", mock.Anything, []int64{france.ID}, repository.FilterOptions{Limit: 1}).
			Return([]*domain.Document{france}, nil)

		place, err := f.uc.GetPlace(ctx, france.ID, "eng")

		require.NoError(t, err)
		assert.Equal(t, "France", place.Name)
		assert.Equal(t, "FR", place.Abbr)
	})

	t.Run("not found", func(t *testing.T) {
		f := newSearchFixture(false)
		f.store.On("GetFiltered", mock.Anything, []int64{42}, repository.FilterOptions{Limit: 1}).
			Return([]*domain.Document{}, nil)

		place, err := f.uc.GetPlace(ctx, 42, "")

		assert.Nil(t, place)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}
