// Package textindex is the default text query capability: a bleve index over
// place names and the names of their canonical ancestors.
package textindex

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
)

const defaultMaxCandidates = 100

type Index struct {
	index         bleve.Index
	maxCandidates int
	logger        *zap.Logger
}

var _ repository.QueryEngine = (*Index)(nil)

// Open открывает индекс по пути или создаёт новый. Пустой путь - индекс в памяти.
func Open(path string, maxCandidates int, logger *zap.Logger) (*Index, error) {
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}

	im, err := newIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("build index mapping: %w", err)
	}

	var idx bleve.Index
	if path == "" {
		idx, err = bleve.NewMemOnly(im)
	} else {
		idx, err = bleve.Open(path)
		if stderrors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
			idx, err = bleve.New(path, im)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open text index %q: %w", path, err)
	}

	logger.Info("Text index opened",
		zap.String("path", path),
		zap.Int("max_candidates", maxCandidates))

	return &Index{index: idx, maxCandidates: maxCandidates, logger: logger}, nil
}

func (i *Index) Close() error {
	return i.index.Close()
}

// DocCount - количество проиндексированных мест
func (i *Index) DocCount() (uint64, error) {
	return i.index.DocCount()
}

// Query возвращает id кандидатов в порядке релевантности
func (i *Index) Query(ctx context.Context, text string) ([]int64, error) {
	return i.search(ctx, text, "")
}

// QueryPlacetype - Query, ограниченный одним placetype
func (i *Index) QueryPlacetype(ctx context.Context, text, placetype string) ([]int64, error) {
	return i.search(ctx, text, placetype)
}

// search отбрасывает ведущие слова, пока не найдёт совпадение: в собранной
// строке запроса уличный шум стоит первым, а страна - последней.
func (i *Index) search(ctx context.Context, text, placetype string) ([]int64, error) {
	tokens := tokenize(text)

	for start := 0; start < len(tokens); start++ {
		req := bleve.NewSearchRequestOptions(buildQuery(tokens[start:], placetype), i.maxCandidates, 0, false)
		res, err := i.index.SearchInContext(ctx, req)
		if err != nil {
			i.logger.Error("Text query failed", zap.String("text", text), zap.Error(err))
			return nil, errors.ErrQueryEngine.Wrap(err)
		}
		if len(res.Hits) == 0 {
			continue
		}

		ids := make([]int64, 0, len(res.Hits))
		for _, hit := range res.Hits {
			id, err := strconv.ParseInt(hit.ID, 10, 64)
			if err != nil {
				i.logger.Warn("Skipping non-numeric index id", zap.String("id", hit.ID))
				continue
			}
			ids = append(ids, id)
		}
		if start > 0 {
			i.logger.Debug("Text query matched after dropping leading tokens",
				zap.String("text", text),
				zap.Int("dropped", start))
		}
		return ids, nil
	}

	return []int64{}, nil
}

// Index добавляет или заменяет место. parents - предки из lineage[0].
func (i *Index) Index(doc *domain.Document, parents map[int64]*domain.Document) error {
	if err := i.index.Index(docID(doc.ID), entryFor(doc, parents)); err != nil {
		return errors.ErrQueryEngine.Wrap(err)
	}
	return nil
}

func (i *Index) Remove(id int64) error {
	if err := i.index.Delete(docID(id)); err != nil {
		return errors.ErrQueryEngine.Wrap(err)
	}
	return nil
}

// BuildFromStore постранично индексирует все документы хранилища
func (i *Index) BuildFromStore(ctx context.Context, store repository.DocumentRepository, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	var (
		afterID int64
		total   int
	)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		docs, err := store.Scan(ctx, afterID, batchSize)
		if err != nil {
			return total, err
		}
		if len(docs) == 0 {
			break
		}

		parents, err := canonicalParents(ctx, store, docs)
		if err != nil {
			return total, err
		}

		batch := i.index.NewBatch()
		for _, doc := range docs {
			if err := batch.Index(docID(doc.ID), entryFor(doc, parents)); err != nil {
				return total, errors.ErrQueryEngine.Wrap(err)
			}
		}
		if err := i.index.Batch(batch); err != nil {
			return total, errors.ErrQueryEngine.Wrap(err)
		}

		total += len(docs)
		afterID = docs[len(docs)-1].ID
		i.logger.Debug("Indexed batch", zap.Int("size", len(docs)), zap.Int64("last_id", afterID))
	}

	i.logger.Info("Text index built", zap.Int("documents", total))
	return total, nil
}

func canonicalParents(ctx context.Context, store repository.DocumentRepository, docs []*domain.Document) (map[int64]*domain.Document, error) {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, doc := range docs {
		if len(doc.Lineage) == 0 {
			continue
		}
		for _, id := range doc.Lineage[0] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	found, err := store.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	parents := make(map[int64]*domain.Document, len(found))
	for _, p := range found {
		parents[p.ID] = p
	}
	return parents, nil
}

func entryFor(doc *domain.Document, parents map[int64]*domain.Document) placeEntry {
	entry := placeEntry{
		Names:     doc.AllNames(),
		Placetype: string(doc.Placetype),
	}
	if len(doc.Lineage) > 0 {
		for _, id := range doc.Lineage[0] {
			if id == doc.ID {
				continue
			}
			if p, ok := parents[id]; ok {
				entry.Context = append(entry.Context, p.AllNames()...)
			}
		}
	}
	return entry
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
