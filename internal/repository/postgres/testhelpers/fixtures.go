package testhelpers

import (
	"context"
	"fmt"

	"github.com/place-resolver/internal/domain"
)

// LoadCountries inserts country reference rows
func (tdb *TestDB) LoadCountries(ctx context.Context, rows []domain.CountryCode) error {
	for _, c := range rows {
		_, err := tdb.DB.NamedExecContext(ctx,
			`INSERT INTO countrycodes (id, name, alpha2, alpha3) VALUES (:id, :name, :alpha2, :alpha3)`, c)
		if err != nil {
			return fmt.Errorf("load country %s: %w", c.Alpha2, err)
		}
	}
	return nil
}

// LoadPostalCodes inserts postal code reference rows
func (tdb *TestDB) LoadPostalCodes(ctx context.Context, rows []domain.PostalCode) error {
	for _, p := range rows {
		_, err := tdb.DB.NamedExecContext(ctx, `
			INSERT INTO postalcodes (country, postalcode_cleaned, placename, admin1name, admin1code, admin2name, admin2code, admin3name)
			VALUES (:country, :postalcode_cleaned, :placename, :admin1name, :admin1code, :admin2name, :admin2code, :admin3name)
		`, p)
		if err != nil {
			return fmt.Errorf("load postal code %s/%s: %w", p.Country, p.PostalcodeCleaned, err)
		}
	}
	return nil
}

// LoadSubdivisions inserts ISO 3166-2 rows
func (tdb *TestDB) LoadSubdivisions(ctx context.Context, rows []domain.Subdivision) error {
	for _, s := range rows {
		_, err := tdb.DB.NamedExecContext(ctx,
			`INSERT INTO iso3166_2 (code, subdivision_name) VALUES (:code, :subdivision_name)`, s)
		if err != nil {
			return fmt.Errorf("load subdivision %s: %w", s.Code, err)
		}
	}
	return nil
}

// CountIndexRows возвращает число строк rtree для id
func (tdb *TestDB) CountIndexRows(ctx context.Context, id int64) (int, error) {
	var n int
	err := tdb.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM rtree WHERE id = $1`, id)
	return n, err
}

// OrphanCount - строки docs без rtree плюс строки rtree без docs
func (tdb *TestDB) OrphanCount(ctx context.Context) (int, error) {
	var n int
	err := tdb.DB.GetContext(ctx, &n, `
		SELECT
			(SELECT COUNT(*) FROM docs d WHERE NOT EXISTS (SELECT 1 FROM rtree r WHERE r.id = d.id)) +
			(SELECT COUNT(*) FROM rtree r WHERE NOT EXISTS (SELECT 1 FROM docs d WHERE d.id = r.id))
	`)
	return n, err
}
