package usecase

import (
	"sort"

	"github.com/place-resolver/internal/domain"
)

// lessDocument: сначала больше population (или popularity), затем больше площадь
func lessDocument(a, b *domain.Document) bool {
	pa, pb := a.SortPopulation(), b.SortPopulation()
	if pa != pb {
		return pa > pb
	}
	return a.Geom.Area > b.Geom.Area
}

// SortDocuments - стабильная сортировка кандидатов по известности места
func SortDocuments(docs []*domain.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return lessDocument(docs[i], docs[j])
	})
}
