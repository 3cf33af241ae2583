package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// ReferenceRepository - справочники стран, индексов и subdivision (только чтение)
type ReferenceRepository interface {
	CountryByAlpha2(ctx context.Context, alpha2 string) (*domain.CountryCode, error)
	CountryByAlpha3(ctx context.Context, alpha3 string) (*domain.CountryCode, error)

	// CountryByIDs возвращает первую страну в порядке переданных id
	CountryByIDs(ctx context.Context, ids []int64) (*domain.CountryCode, error)

	// PostalCodesByCountry - точное совпадение страны и очищенного индекса
	PostalCodesByCountry(ctx context.Context, country, postalCode string, limit int) ([]domain.PostalCode, error)

	// PostalCodesAnyCountry - поиск индекса во всех странах, по одной строке на страну
	PostalCodesAnyCountry(ctx context.Context, postalCode, stateHint string, limit int) ([]domain.PostalCode, error)

	// SubdivisionName разрешает код ISO 3166-2 (без дефиса или через пробел)
	SubdivisionName(ctx context.Context, code string) (string, error)
}
