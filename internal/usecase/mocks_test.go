package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Put(ctx context.Context, doc *domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, id int64) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetMany(ctx context.Context, ids []int64) ([]*domain.Document, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetFiltered(ctx context.Context, ids []int64, opts repository.FilterOptions) ([]*domain.Document, error) {
	args := m.Called(ctx, ids, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) NearestByPoint(ctx context.Context, lon, lat float64) (int64, error) {
	args := m.Called(ctx, lon, lat)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Scan(ctx context.Context, afterID int64, batch int) ([]*domain.Document, error) {
	args := m.Called(ctx, afterID, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) CountryByAlpha2(ctx context.Context, alpha2 string) (*domain.CountryCode, error) {
	args := m.Called(ctx, alpha2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryCode), args.Error(1)
}

func (m *MockReferenceRepository) CountryByAlpha3(ctx context.Context, alpha3 string) (*domain.CountryCode, error) {
	args := m.Called(ctx, alpha3)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryCode), args.Error(1)
}

func (m *MockReferenceRepository) CountryByIDs(ctx context.Context, ids []int64) (*domain.CountryCode, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryCode), args.Error(1)
}

func (m *MockReferenceRepository) PostalCodesByCountry(ctx context.Context, country, postalCode string, limit int) ([]domain.PostalCode, error) {
	args := m.Called(ctx, country, postalCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostalCode), args.Error(1)
}

func (m *MockReferenceRepository) PostalCodesAnyCountry(ctx context.Context, postalCode, stateHint string, limit int) ([]domain.PostalCode, error) {
	args := m.Called(ctx, postalCode, stateHint, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostalCode), args.Error(1)
}

func (m *MockReferenceRepository) SubdivisionName(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

type MockQueryEngine struct {
	mock.Mock
}

func (m *MockQueryEngine) Query(ctx context.Context, text string) ([]int64, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockQueryEngine) QueryPlacetype(ctx context.Context, text, placetype string) ([]int64, error) {
	args := m.Called(ctx, text, placetype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockIPLocator struct {
	mock.Mock
}

func (m *MockIPLocator) Locate(ip string) (float64, float64, bool) {
	args := m.Called(ip)
	return args.Get(0).(float64), args.Get(1).(float64), args.Bool(2)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func ptrFloat64(v float64) *float64 {
	return &v
}

// Фикстуры: США > Калифорния > Беверли-Хиллз, Франция > Париж
var (
	unitedStates = &domain.Document{
		ID:         85633793,
		Placetype:  domain.PlacetypeCountry,
		Names:      map[string][]string{"eng": {"United States"}, "fra": {"États-Unis"}},
		Abbr:       "US",
		Population: 331000000,
		Geom:       domain.Geom{Lat: 39.8, Lon: -98.5, Area: 9800000},
	}
	california = &domain.Document{
		ID:         85688637,
		Placetype:  domain.PlacetypeRegion,
		Names:      map[string][]string{"eng": {"California"}},
		Abbr:       "CA",
		Population: 39500000,
		Geom:       domain.Geom{Lat: 37.2, Lon: -119.4, Area: 423970},
		Lineage:    []map[string]int64{{"country_id": 85633793}},
	}
	beverlyHills = &domain.Document{
		ID:         85923517,
		Placetype:  domain.PlacetypeLocality,
		Names:      map[string][]string{"eng": {"Beverly Hills"}},
		Population: 34000,
		Geom:       domain.Geom{Lat: 34.07, Lon: -118.40, Area: 14.8},
		Lineage:    []map[string]int64{{"country_id": 85633793, "region_id": 85688637}},
	}
	paris = &domain.Document{
		ID:         101751119,
		Placetype:  domain.PlacetypeLocality,
		Names:      map[string][]string{"eng": {"Paris"}, "fra": {"Paris"}},
		Population: 2100000,
		Geom: domain.Geom{
			Lat:  48.8566,
			Lon:  2.3522,
			BBox: domain.BBox{2.22, 48.81, 2.47, 48.90},
			Area: 105.4,
		},
		Lineage: []map[string]int64{{"country_id": 85633147}},
	}
	france = &domain.Document{
		ID:        85633147,
		Placetype: domain.PlacetypeCountry,
		Names:     map[string][]string{"fra": {"France"}, "eng": {"France"}},
		Abbr:      "FR",
		Geom:      domain.Geom{Lat: 46.6, Lon: 2.2, Area: 551695},
	}
)
