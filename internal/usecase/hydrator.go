package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/logger"
	"github.com/place-resolver/internal/pkg/metrics"
)

// ResultHydrator превращает id кандидатов в результаты с lineage и локализованными именами
type ResultHydrator struct {
	store  repository.DocumentRepository
	logger *zap.Logger
}

func NewResultHydrator(store repository.DocumentRepository, log *zap.Logger) *ResultHydrator {
	return &ResultHydrator{
		store:  store,
		logger: log,
	}
}

// ParentIDs - уникальные id предков из всех lineage документов, по возрастанию
func ParentIDs(docs []*domain.Document) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, doc := range docs {
		for _, id := range doc.ParentIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func RowsToIDMap(docs []*domain.Document) map[int64]*domain.Document {
	m := make(map[int64]*domain.Document, len(docs))
	for _, d := range docs {
		m[d.ID] = d
	}
	return m
}

// BuildLineage разворачивает каждый вариант lineage документа. Отсутствующие
// в parents предки пропускаются с предупреждением.
func (h *ResultHydrator) BuildLineage(doc *domain.Document, parents map[int64]*domain.Document, lang string) []domain.Lineage {
	out := make([]domain.Lineage, 0, len(doc.Lineage))
	for _, refs := range doc.Lineage {
		attrs := make([]string, 0, len(refs))
		for attr := range refs {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)

		lineage := make(domain.Lineage, len(refs))
		for _, attr := range attrs {
			parent, ok := parents[refs[attr]]
			if !ok {
				h.logger.Warn("Lineage ancestor not found",
					logger.DataQuality(),
					zap.Int64("id", doc.ID),
					zap.String("placetype", attr),
					zap.Int64("ancestor_id", refs[attr]))
				metrics.DataQualityWarningsTotal.WithLabelValues("missing_ancestor").Inc()
				continue
			}

			name, defaulted := ResolveName(parent, lang)
			lineage[parent.Placetype] = domain.LineageEntry{
				ID:                parent.ID,
				Name:              name,
				Abbr:              parent.Abbr,
				LanguageDefaulted: defaulted,
			}
		}
		out = append(out, lineage)
	}
	return out
}

func (h *ResultHydrator) mapResult(doc *domain.Document, parents map[int64]*domain.Document, lang string) domain.Result {
	name, defaulted := ResolveName(doc, lang)
	return domain.Result{
		ID:                doc.ID,
		Placetype:         doc.Placetype,
		Name:              name,
		Abbr:              doc.Abbr,
		Population:        doc.Population,
		Popularity:        doc.Popularity,
		Geom:              doc.Geom,
		Lineage:           h.BuildLineage(doc, parents, lang),
		LanguageDefaulted: defaulted,
	}
}

// Hydrate загружает кандидатов, сортирует и обрезает до лимита, подтягивает
// предков одним запросом и собирает результаты. Limit 0 - без ограничения.
func (h *ResultHydrator) Hydrate(ctx context.Context, ids []int64, opts domain.HydrateOptions) (*domain.Resolution, error) {
	res := &domain.Resolution{}
	if opts.Minimal {
		res.Minimal = []domain.MinimalResult{}
	}
	if len(ids) == 0 {
		return res, nil
	}

	docs, err := h.store.GetFiltered(ctx, ids, repository.FilterOptions{
		Placetypes: opts.Placetypes,
		Limit:      opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	SortDocuments(docs)
	if opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	if len(docs) == 0 {
		return res, nil
	}

	var parents map[int64]*domain.Document
	if parentIDs := ParentIDs(docs); len(parentIDs) > 0 {
		rows, err := h.store.GetMany(ctx, parentIDs)
		if err != nil {
			h.logger.Error("Failed to fetch lineage ancestors", zap.Int("count", len(parentIDs)), zap.Error(err))
			return nil, err
		}
		parents = RowsToIDMap(rows)
	}

	results := make([]domain.Result, 0, len(docs))
	for _, doc := range docs {
		results = append(results, h.mapResult(doc, parents, opts.Lang))
	}

	if opts.Minimal {
		res.Minimal = MinimizeAll(results)
		return res, nil
	}
	res.Results = results
	return res, nil
}
