package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/fuzzy"
	"github.com/place-resolver/internal/pkg/logger"
	"github.com/place-resolver/internal/pkg/metrics"
)

const (
	knownCountryPostalLimit = 5
	anyCountryPostalLimit   = 3
)

// AddressResolver нормализует структурированный адрес и разрешает его в места
type AddressResolver struct {
	store    repository.DocumentRepository
	refs     repository.ReferenceRepository
	engine   repository.QueryEngine
	hydrator *ResultHydrator
	locator  repository.IPLocator
	cfg      config.ResolverConfig
	logger   *zap.Logger
}

// NewAddressResolver - locator может быть nil
func NewAddressResolver(
	store repository.DocumentRepository,
	refs repository.ReferenceRepository,
	engine repository.QueryEngine,
	hydrator *ResultHydrator,
	locator repository.IPLocator,
	cfg config.ResolverConfig,
	log *zap.Logger,
) *AddressResolver {
	return &AddressResolver{
		store:    store,
		refs:     refs,
		engine:   engine,
		hydrator: hydrator,
		locator:  locator,
		cfg:      cfg,
		logger:   log,
	}
}

// Resolve проводит запрос через все стадии и гидрирует найденных кандидатов
func (r *AddressResolver) Resolve(ctx context.Context, q domain.AddressQuery) (*domain.Resolution, error) {
	q = Sanitize(q)
	q = ApplyLimit(q, r.cfg.MaxLimit)
	q = MarkLive(q)
	q = r.locateIP(q)

	if lat, lon, ok := Coordinates(q); ok {
		return r.resolvePoint(ctx, q, lat, lon)
	}

	q = r.resolveCountry(ctx, q)
	q = r.expandPostalCode(ctx, q)
	q = r.expandState(ctx, q)
	q = RemoveRedundant(q)
	q = StripShortTokens(q)

	text := Recompose(q)
	if r.cfg.Debug {
		r.logger.Debug("Resolver query composed", zap.String("text", text), zap.Any("input", q))
	}
	if text == "" {
		r.stage("query", "empty")
		return r.hydrator.Hydrate(ctx, nil, hydrateOptions(q))
	}

	ids, err := r.engine.Query(ctx, text)
	if err != nil {
		return nil, err
	}
	r.stage("query", outcome(len(ids) > 0))

	return r.hydrator.Hydrate(ctx, ids, hydrateOptions(q))
}

func hydrateOptions(q domain.AddressQuery) domain.HydrateOptions {
	return domain.HydrateOptions{
		Placetypes: q.Placetypes,
		Lang:       q.Lang,
		Limit:      q.Limit,
		Minimal:    q.Minimal,
	}
}

// locateIP подставляет координаты по IP, если текстового ввода нет
func (r *AddressResolver) locateIP(q domain.AddressQuery) domain.AddressQuery {
	if r.locator == nil || q.IP == "" || q.HasTextInput() {
		return q
	}
	if _, _, ok := Coordinates(q); ok {
		return q
	}

	lat, lon, ok := r.locator.Locate(q.IP)
	r.stage("geoip", outcome(ok))
	if !ok {
		return q
	}
	q.Lat, q.Lon = &lat, &lon
	return q
}

// resolvePoint - координаты имеют приоритет над всеми остальными полями
func (r *AddressResolver) resolvePoint(ctx context.Context, q domain.AddressQuery, lat, lon float64) (*domain.Resolution, error) {
	id, err := r.store.NearestByPoint(ctx, lon, lat)
	if stderrors.Is(err, errors.ErrNotFound) {
		r.stage("geo", "miss")
		return r.hydrator.Hydrate(ctx, nil, hydrateOptions(q))
	}
	if err != nil {
		return nil, err
	}
	r.stage("geo", "hit")

	return r.hydrator.Hydrate(ctx, []int64{id}, hydrateOptions(q))
}

func (r *AddressResolver) resolveCountry(ctx context.Context, q domain.AddressQuery) domain.AddressQuery {
	if q.Country == "" {
		return q
	}

	if n := len(q.Country); n == 2 || n == 3 {
		q.Country = strings.ToUpper(q.Country)

		var (
			country *domain.CountryCode
			err     error
		)
		if n == 2 {
			country, err = r.refs.CountryByAlpha2(ctx, q.Country)
		} else {
			country, err = r.refs.CountryByAlpha3(ctx, q.Country)
		}
		if err == nil {
			r.stage("country", "code")
			return withCountry(q, country)
		}
		if !stderrors.Is(err, errors.ErrNotFound) {
			r.logger.Warn("Country code lookup failed", zap.String("country", q.Country), zap.Error(err))
		}
	}

	ids, err := r.engine.QueryPlacetype(ctx, q.Country, string(domain.PlacetypeCountry))
	if err != nil {
		r.logger.Warn("Country text query failed", zap.String("country", q.Country), zap.Error(err))
		r.stage("country", "error")
		return q
	}
	if len(ids) == 0 {
		r.stage("country", "miss")
		q.Country, q.CountryCode = "", ""
		return q
	}

	country, err := r.refs.CountryByIDs(ctx, ids)
	switch {
	case err == nil:
		r.stage("country", "text")
		return withCountry(q, country)
	case stderrors.Is(err, errors.ErrNotFound):
		r.stage("country", "miss")
		q.Country, q.CountryCode = "", ""
		return q
	default:
		r.logger.Warn("Country lookup by ids failed", zap.Int64s("ids", ids), zap.Error(err))
		r.stage("country", "error")
		return q
	}
}

func withCountry(q domain.AddressQuery, country *domain.CountryCode) domain.AddressQuery {
	q.Country = country.Name
	q.CountryCode = country.Alpha2
	return q
}

// expandPostalCode заменяет индекс названиями населённого пункта и административных единиц
func (r *AddressResolver) expandPostalCode(ctx context.Context, q domain.AddressQuery) domain.AddressQuery {
	code := CleanPostalCode(q.PostalCode)
	if code == "" {
		q.PostalCode = ""
		return q
	}
	if len(code) < 2 {
		return q
	}
	code = TruncatePostalCode(code, q.CountryCode)

	var expansion string
	if len(q.CountryCode) == 2 {
		expansion = r.postalByCountry(ctx, q, code)
	} else {
		q, expansion = r.postalAnyCountry(ctx, q, code)
	}

	if expansion == "" {
		r.stage("postal", "miss")
		return q
	}
	r.stage("postal", "hit")
	q.PostalCode = expansion
	return q
}

func (r *AddressResolver) postalByCountry(ctx context.Context, q domain.AddressQuery, code string) string {
	rows, err := r.refs.PostalCodesByCountry(ctx, q.CountryCode, code, knownCountryPostalLimit)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			r.logger.Warn("Postal code lookup failed",
				zap.String("country", q.CountryCode),
				zap.String("postal_code", code),
				zap.Error(err))
		}
		return ""
	}
	if len(rows) == 0 {
		return ""
	}

	if !r.cfg.FuzzyPostalTieBreak || len(rows) == 1 {
		return rows[0].Expansion()
	}

	candidates := make([]string, len(rows))
	for i := range rows {
		candidates[i] = rows[i].Expansion()
	}
	target := strings.Join(strings.Fields(strings.Join([]string{q.Text, q.Address, q.City, q.State}, " ")), " ")
	if target == "" {
		return candidates[0]
	}
	return candidates[fuzzy.Closest(target, candidates)]
}

// postalAnyCountry принимает совпадение, только если все строки из одной страны
func (r *AddressResolver) postalAnyCountry(ctx context.Context, q domain.AddressQuery, code string) (domain.AddressQuery, string) {
	rows, err := r.refs.PostalCodesAnyCountry(ctx, code, StateHint(q.State), anyCountryPostalLimit)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			r.logger.Warn("Cross-country postal code lookup failed",
				zap.String("postal_code", code),
				zap.Error(err))
		}
		return q, ""
	}

	switch len(rows) {
	case 0:
		return q, ""
	case 1:
	default:
		countries := make([]string, len(rows))
		for i := range rows {
			countries[i] = rows[i].Country
		}
		r.logger.Warn("Ambiguous postal code across countries",
			logger.DataQuality(),
			zap.String("postal_code", code),
			zap.String("state", q.State),
			zap.Strings("countries", countries))
		metrics.DataQualityWarningsTotal.WithLabelValues("ambiguous_postal").Inc()
		r.stage("postal", "ambiguous")
		return q, ""
	}

	row := rows[0]
	q.CountryCode = row.Country
	q.Country = row.Country
	if country, err := r.refs.CountryByAlpha2(ctx, row.Country); err == nil {
		q.Country = country.Name
	} else if !stderrors.Is(err, errors.ErrNotFound) {
		r.logger.Warn("Country code lookup failed", zap.String("country", row.Country), zap.Error(err))
	}
	return q, row.Expansion()
}

// expandState разворачивает код региона в полное название ISO 3166-2
func (r *AddressResolver) expandState(ctx context.Context, q domain.AddressQuery) domain.AddressQuery {
	code := SubdivisionCode(q.State, q.CountryCode)
	if code == "" {
		return q
	}

	name, err := r.refs.SubdivisionName(ctx, code)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			r.logger.Warn("Subdivision lookup failed", zap.String("code", code), zap.Error(err))
		}
		r.stage("state", "miss")
		return q
	}
	r.stage("state", "hit")
	q.State = name
	return q
}

func (r *AddressResolver) stage(name, result string) {
	metrics.ResolverStageTotal.WithLabelValues(name, result).Inc()
	if r.cfg.Debug {
		r.logger.Debug("Resolver stage", zap.String("stage", name), zap.String("outcome", result))
	}
}

func outcome(ok bool) string {
	if ok {
		return "hit"
	}
	return "miss"
}
