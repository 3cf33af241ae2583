package repository

import "context"

// QueryEngine - внешний полнотекстовый поиск: текст -> id кандидатов по релевантности
type QueryEngine interface {
	Query(ctx context.Context, text string) ([]int64, error)

	// QueryPlacetype ограничивает поиск одним placetype (например, country)
	QueryPlacetype(ctx context.Context, text, placetype string) ([]int64, error)
}

// IPLocator определяет координаты по IP
type IPLocator interface {
	Locate(ip string) (lat, lon float64, ok bool)
}
