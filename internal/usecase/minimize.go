package usecase

import "github.com/place-resolver/internal/domain"

// Minimize сворачивает канонический lineage в список имён от крупного к мелкому
func Minimize(r domain.Result) domain.MinimalResult {
	out := domain.MinimalResult{
		ID:        r.ID,
		Name:      r.Name,
		Placetype: r.Placetype,
		Lineage:   []string{},
		Lat:       r.Geom.Lat,
		Lon:       r.Geom.Lon,
	}
	if len(r.Lineage) == 0 {
		return out
	}

	canonical := r.Lineage[0]
	for i := len(domain.PlacetypeOrder) - 1; i >= 0; i-- {
		pt := domain.PlacetypeOrder[i]
		entry, ok := canonical[pt]
		if !ok {
			continue
		}
		if n := len(out.Lineage); n == 0 || out.Lineage[n-1] != entry.Name {
			out.Lineage = append(out.Lineage, entry.Name)
		}
		if pt == domain.PlacetypeCountry {
			out.CountryCode = entry.Abbr
		}
	}
	return out
}

// MinimizeAll - Minimize для каждого результата
func MinimizeAll(results []domain.Result) []domain.MinimalResult {
	out := make([]domain.MinimalResult, 0, len(results))
	for _, r := range results {
		out = append(out, Minimize(r))
	}
	return out
}
