package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
)

const postalColumns = `
	country, postalcode_cleaned,
	COALESCE(placename, '') AS placename,
	COALESCE(admin1name, '') AS admin1name,
	COALESCE(admin1code, '') AS admin1code,
	COALESCE(admin2name, '') AS admin2name,
	COALESCE(admin2code, '') AS admin2code,
	COALESCE(admin3name, '') AS admin3name
`

type referenceRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewReferenceRepository(db *DB) repository.ReferenceRepository {
	return &referenceRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *referenceRepository) CountryByAlpha2(ctx context.Context, alpha2 string) (*domain.CountryCode, error) {
	return r.country(ctx, `SELECT id, name, alpha2, alpha3 FROM countrycodes WHERE alpha2 = $1 LIMIT 1`, alpha2)
}

func (r *referenceRepository) CountryByAlpha3(ctx context.Context, alpha3 string) (*domain.CountryCode, error) {
	return r.country(ctx, `SELECT id, name, alpha2, alpha3 FROM countrycodes WHERE alpha3 = $1 LIMIT 1`, alpha3)
}

func (r *referenceRepository) CountryByIDs(ctx context.Context, ids []int64) (*domain.CountryCode, error) {
	if len(ids) == 0 {
		return nil, errors.ErrNotFound
	}
	return r.country(ctx, `
		SELECT id, name, alpha2, alpha3
		FROM countrycodes
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)
		LIMIT 1
	`, pq.Array(ids))
}

func (r *referenceRepository) country(ctx context.Context, query string, arg interface{}) (*domain.CountryCode, error) {
	defer observe("country", time.Now())

	var c domain.CountryCode
	err := r.db.GetContext(ctx, &c, query, arg)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to look up country", zap.Any("arg", arg), zap.Error(err))
		return nil, errors.ErrStorage.Wrap(err)
	}
	return &c, nil
}

func (r *referenceRepository) PostalCodesByCountry(ctx context.Context, country, postalCode string, limit int) ([]domain.PostalCode, error) {
	defer observe("postal_by_country", time.Now())

	query := `SELECT ` + postalColumns + `
		FROM postalcodes
		WHERE country = $1 AND postalcode_cleaned = $2
		LIMIT $3
	`
	var rows []domain.PostalCode
	if err := r.db.SelectContext(ctx, &rows, query, country, postalCode, limit); err != nil {
		r.logger.Error("Failed to look up postal code",
			zap.String("country", country),
			zap.String("postal_code", postalCode),
			zap.Error(err))
		return nil, errors.ErrStorage.Wrap(err)
	}
	if len(rows) == 0 {
		return nil, errors.ErrNotFound
	}
	return rows, nil
}

// PostalCodesAnyCountry возвращает не более одной строки на страну. Точное совпадение
// индекса предпочтительнее совпадения по префиксу.
func (r *referenceRepository) PostalCodesAnyCountry(ctx context.Context, postalCode, stateHint string, limit int) ([]domain.PostalCode, error) {
	defer observe("postal_any_country", time.Now())

	query := `SELECT ` + postalColumns + `
		FROM (
			SELECT DISTINCT ON (country) *
			FROM postalcodes
			WHERE postalcode_cleaned IN ($1, left($1, 3), left($1, 4), left($1, 5))
			AND ($2 = '' OR admin1code = $2 OR admin2code = $2 OR admin1name ILIKE $2 OR admin2name ILIKE $2)
			ORDER BY country, (postalcode_cleaned = $1) DESC
		) AS per_country
		ORDER BY country
		LIMIT $3
	`
	var rows []domain.PostalCode
	if err := r.db.SelectContext(ctx, &rows, query, postalCode, stateHint, limit); err != nil {
		r.logger.Error("Failed to look up postal code across countries",
			zap.String("postal_code", postalCode),
			zap.String("state_hint", stateHint),
			zap.Error(err))
		return nil, errors.ErrStorage.Wrap(err)
	}
	if len(rows) == 0 {
		return nil, errors.ErrNotFound
	}
	return rows, nil
}

func (r *referenceRepository) SubdivisionName(ctx context.Context, code string) (string, error) {
	defer observe("subdivision", time.Now())

	var name string
	err := r.db.GetContext(ctx, &name, `
		SELECT subdivision_name
		FROM iso3166_2
		WHERE replace(code, '-', '') = $1 OR replace(code, '-', ' ') = $1
		LIMIT 1
	`, code)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to look up subdivision", zap.String("code", code), zap.Error(err))
		return "", errors.ErrStorage.Wrap(err)
	}
	return name, nil
}
