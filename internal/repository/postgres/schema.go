package postgres

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/pkg/errors"
)

const (
	TableDocs         = "docs"
	TableRTree        = "rtree"
	TableCountryCodes = "countrycodes"
	TablePostalCodes  = "postalcodes"
	TableISO3166_2    = "iso3166_2"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS docs (
		id BIGINT PRIMARY KEY,
		json TEXT,
		population NUMERIC DEFAULT 0,
		area NUMERIC DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS rtree (
		id BIGINT,
		minx DOUBLE PRECISION,
		maxx DOUBLE PRECISION,
		miny DOUBLE PRECISION,
		maxy DOUBLE PRECISION,
		minz DOUBLE PRECISION,
		maxz DOUBLE PRECISION
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS rtree_id_idx ON rtree (id)`,
	`CREATE INDEX IF NOT EXISTS rtree_box_idx ON rtree USING gist (box(point(minx, miny), point(maxx, maxy)))`,
	`CREATE INDEX IF NOT EXISTS docs_order_idx ON docs (population DESC, area DESC)`,
	`CREATE TABLE IF NOT EXISTS countrycodes (
		id BIGINT,
		name TEXT NOT NULL,
		alpha2 TEXT NOT NULL,
		alpha3 TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS countrycodes_alpha2_idx ON countrycodes (alpha2)`,
	`CREATE INDEX IF NOT EXISTS countrycodes_alpha3_idx ON countrycodes (alpha3)`,
	`CREATE INDEX IF NOT EXISTS countrycodes_id_idx ON countrycodes (id)`,
	`CREATE TABLE IF NOT EXISTS postalcodes (
		country TEXT NOT NULL,
		postalcode_cleaned TEXT NOT NULL,
		placename TEXT,
		admin1name TEXT,
		admin1code TEXT,
		admin2name TEXT,
		admin2code TEXT,
		admin3name TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS postalcodes_lookup_idx ON postalcodes (postalcode_cleaned, country)`,
	`CREATE TABLE IF NOT EXISTS iso3166_2 (
		code TEXT PRIMARY KEY,
		subdivision_name TEXT NOT NULL
	)`,
}

type columnSpec struct {
	Name    string  `db:"column_name"`
	Type    string  `db:"data_type"`
	Default *string `db:"column_default"`
}

func strPtr(s string) *string { return &s }

var expectedColumns = map[string][]columnSpec{
	TableDocs: {
		{Name: "id", Type: "bigint"},
		{Name: "json", Type: "text"},
		{Name: "population", Type: "numeric", Default: strPtr("0")},
		{Name: "area", Type: "numeric", Default: strPtr("0")},
	},
	TableRTree: {
		{Name: "id", Type: "bigint"},
		{Name: "minx", Type: "double precision"},
		{Name: "maxx", Type: "double precision"},
		{Name: "miny", Type: "double precision"},
		{Name: "maxy", Type: "double precision"},
		{Name: "minz", Type: "double precision"},
		{Name: "maxz", Type: "double precision"},
	},
}

// EnsureSchema создаёт таблицы и индексы, если их нет
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.logger.Error("Failed to apply schema", zap.String("statement", stmt), zap.Error(err))
			return errors.ErrStorage.Wrap(err)
		}
	}
	db.logger.Info("Database schema ensured")
	return nil
}

// CheckSchema сверяет колонки docs/rtree и первичный ключ docs с ожидаемыми.
// Расхождение - фатальная ошибка конфигурации.
func (db *DB) CheckSchema(ctx context.Context) error {
	for _, table := range []string{TableDocs, TableRTree} {
		var actual []columnSpec
		err := db.SelectContext(ctx, &actual, `
			SELECT column_name, data_type, column_default
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position
		`, table)
		if err != nil {
			db.logger.Error("Failed to read table columns", zap.String("table", table), zap.Error(err))
			return errors.ErrStorage.Wrap(err)
		}

		if diff := diffColumns(expectedColumns[table], actual); diff != "" {
			db.logger.Error("Schema mismatch", zap.String("table", table), zap.String("diff", diff))
			return errors.ErrSchemaMismatch.WithDetails(map[string]interface{}{
				"table": table,
				"diff":  diff,
			})
		}
	}

	var pk []string
	err := db.SelectContext(ctx, &pk, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = current_schema()
			AND tc.table_name = $1
			AND tc.constraint_type = 'PRIMARY KEY'
	`, TableDocs)
	if err != nil {
		db.logger.Error("Failed to read primary key", zap.Error(err))
		return errors.ErrStorage.Wrap(err)
	}
	if len(pk) != 1 || pk[0] != "id" {
		return errors.ErrSchemaMismatch.WithDetails(map[string]interface{}{
			"table": TableDocs,
			"diff":  fmt.Sprintf("primary key: want [id], got %v", pk),
		})
	}

	return nil
}

func diffColumns(expected, actual []columnSpec) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("column count: want %d, got %d", len(expected), len(actual))
	}
	var diffs []string
	for i := range expected {
		e, a := expected[i], actual[i]
		if e.Name != a.Name || e.Type != a.Type {
			diffs = append(diffs, fmt.Sprintf("column %d: want %s %s, got %s %s", i, e.Name, e.Type, a.Name, a.Type))
			continue
		}
		if normalizeDefault(e.Default) != normalizeDefault(a.Default) {
			diffs = append(diffs, fmt.Sprintf("column %s: default want %q, got %q",
				e.Name, normalizeDefault(e.Default), normalizeDefault(a.Default)))
		}
	}
	return strings.Join(diffs, "; ")
}

// normalizeDefault убирает приведение типа: "0::numeric" -> "0"
func normalizeDefault(d *string) string {
	if d == nil {
		return ""
	}
	v := *d
	if i := strings.Index(v, "::"); i >= 0 {
		v = v[:i]
	}
	return strings.Trim(v, "'")
}
