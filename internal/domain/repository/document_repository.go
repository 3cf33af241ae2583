package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// FilterOptions - фильтр и лимит для пакетной выборки документов
type FilterOptions struct {
	Placetypes []domain.Placetype
	Limit      int
}

// DocumentRepository - хранилище документов с пространственным индексом
type DocumentRepository interface {
	// Put записывает документ и строку индекса в одной транзакции
	Put(ctx context.Context, doc *domain.Document) error

	// Delete удаляет документ и строку индекса
	Delete(ctx context.Context, id int64) error

	// Get возвращает документ по ID или ErrNotFound
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// GetMany возвращает найденное подмножество; порядок не гарантирован
	GetMany(ctx context.Context, ids []int64) ([]*domain.Document, error)

	// GetFiltered - GetMany с фильтром по placetype, сортировкой population/area и лимитом
	GetFiltered(ctx context.Context, ids []int64, opts FilterOptions) ([]*domain.Document, error)

	// NearestByPoint возвращает id bbox, содержащего точку, с минимальной средней дистанцией до границ
	NearestByPoint(ctx context.Context, lon, lat float64) (int64, error)

	// Scan постранично обходит документы по возрастанию id
	Scan(ctx context.Context, afterID int64, batch int) ([]*domain.Document, error)

	// Count возвращает количество документов
	Count(ctx context.Context) (int64, error)
}
