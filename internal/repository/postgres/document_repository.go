package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
)

type documentRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewDocumentRepository(db *DB) repository.DocumentRepository {
	return &documentRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *documentRepository) Put(ctx context.Context, doc *domain.Document) error {
	defer observe("put", time.Now())

	if err := doc.Validate(); err != nil {
		r.logger.Warn("Rejected invalid document", zap.Int64("id", doc.ID), zap.Error(err))
		return errors.ErrStorage.Wrap(fmt.Errorf("%w: %v", errors.ErrInvalidDocument, err))
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		r.logger.Error("Failed to encode document", zap.Int64("id", doc.ID), zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}

	bbox := doc.Geom.BBox
	err = r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		const upsert = `
			INSERT INTO docs (id, json, population, area)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET json = EXCLUDED.json, population = EXCLUDED.population, area = EXCLUDED.area
		`
		if _, err := tx.ExecContext(ctx, upsert, doc.ID, string(payload), doc.SortPopulation(), doc.Geom.Area); err != nil {
			return fmt.Errorf("upsert docs: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM rtree WHERE id = $1`, doc.ID); err != nil {
			return fmt.Errorf("delete rtree: %w", err)
		}

		const insertIndex = `
			INSERT INTO rtree (id, minx, maxx, miny, maxy, minz, maxz)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := tx.ExecContext(ctx, insertIndex,
			doc.ID, bbox.MinX(), bbox.MaxX(), bbox.MinY(), bbox.MaxY(), doc.Rank.Min, doc.Rank.Max,
		); err != nil {
			return fmt.Errorf("insert rtree: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to put document", zap.Int64("id", doc.ID), zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}

	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	defer observe("delete", time.Now())

	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM docs WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete docs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM rtree WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete rtree: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete document", zap.Int64("id", id), zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id int64) (*domain.Document, error) {
	defer observe("get", time.Now())

	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT json FROM docs WHERE id = $1 LIMIT 1`, id).Scan(&payload)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get document", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrStorage.Wrap(err)
	}

	return r.decode(payload)
}

func (r *documentRepository) GetMany(ctx context.Context, ids []int64) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return []*domain.Document{}, nil
	}
	defer observe("get_many", time.Now())

	return r.selectDocs(ctx, `SELECT json FROM docs WHERE id = ANY($1)`, pq.Array(ids))
}

func (r *documentRepository) GetFiltered(ctx context.Context, ids []int64, opts repository.FilterOptions) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return []*domain.Document{}, nil
	}
	defer observe("get_filtered", time.Now())

	query := `SELECT json FROM docs WHERE id = ANY($1)`
	args := []interface{}{pq.Array(ids)}
	argIdx := 2

	if len(opts.Placetypes) > 0 {
		placetypes := make([]string, len(opts.Placetypes))
		for i, p := range opts.Placetypes {
			placetypes[i] = string(p)
		}
		query += fmt.Sprintf(" AND (json::jsonb ->> 'placetype') = ANY($%d)", argIdx)
		args = append(args, pq.Array(placetypes))
		argIdx++
	}

	query += " ORDER BY population DESC, area DESC, id"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, opts.Limit)
	}

	return r.selectDocs(ctx, query, args...)
}

func (r *documentRepository) NearestByPoint(ctx context.Context, lon, lat float64) (int64, error) {
	defer observe("nearest_by_point", time.Now())

	const query = `
		SELECT id
		FROM rtree
		WHERE box(point(minx, miny), point(maxx, maxy)) @> point($1::float8, $2::float8)
		ORDER BY ((($1::float8 - minx) + (maxx - $1::float8) + ($2::float8 - miny) + (maxy - $2::float8)) / 4), id
		LIMIT 1
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, lon, lat).Scan(&id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return 0, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to find nearest place",
			zap.Float64("lon", lon),
			zap.Float64("lat", lat),
			zap.Error(err))
		return 0, errors.ErrStorage.Wrap(err)
	}

	return id, nil
}

func (r *documentRepository) Scan(ctx context.Context, afterID int64, batch int) ([]*domain.Document, error) {
	defer observe("scan", time.Now())

	return r.selectDocs(ctx, `SELECT json FROM docs WHERE id > $1 ORDER BY id LIMIT $2`, afterID, batch)
}

func (r *documentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM docs`); err != nil {
		r.logger.Error("Failed to count documents", zap.Error(err))
		return 0, errors.ErrStorage.Wrap(err)
	}
	return count, nil
}

func (r *documentRepository) selectDocs(ctx context.Context, query string, args ...interface{}) ([]*domain.Document, error) {
	var payloads []string
	if err := r.db.SelectContext(ctx, &payloads, query, args...); err != nil {
		r.logger.Error("Failed to select documents", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrStorage.Wrap(err)
	}

	docs := make([]*domain.Document, 0, len(payloads))
	for _, payload := range payloads {
		doc, err := r.decode(payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *documentRepository) decode(payload string) (*domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		r.logger.Error("Failed to decode document", zap.Error(err))
		return nil, errors.ErrStorage.Wrap(err)
	}
	return &doc, nil
}
