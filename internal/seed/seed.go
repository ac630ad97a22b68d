// Package seed creates a local SQLite database with the tennis schema and a
// reproducible demo dataset, for demos and tests.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
)

//go:embed schema.sql
var schemaSQL string

// ErrSeed wraps every failure to build the demo database.
var ErrSeed = errors.New("seed database")

// Seed generates a dataset and writes it to the SQLite file at path,
// replacing any tennis tables already there.
func Seed(ctx context.Context, path string, opts ...Option) (Dataset, error) {
	ds := Generate(opts...)
	if err := Write(ctx, path, ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Write recreates the schema at path and inserts ds in one transaction, so
// a failed write leaves the previous tables in place.
func Write(ctx context.Context, path string, ds Dataset) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrSeed, path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: connect %s: %w", ErrSeed, path, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrSeed, err)
	}
	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: apply schema: %w", ErrSeed, err)
	}
	if err := insertAll(ctx, tx, ds); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrSeed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrSeed, err)
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, ds Dataset) error {
	batches := []struct {
		stmt string
		rows [][]any
	}{
		{"INSERT INTO categories (category_id, category_name) VALUES (?, ?)", rowsOf(ds.Categories, func(c model.Category) []any {
			return []any{c.ID, c.Name}
		})},
		{"INSERT INTO competitions (competition_id, competition_name, parent_id, type, gender, category_id) VALUES (?, ?, ?, ?, ?, ?)", rowsOf(ds.Competitions, func(c model.Competition) []any {
			return []any{c.ID, c.Name, nullable(c.ParentID), nullable(c.Type), nullable(c.Gender), c.CategoryID}
		})},
		{"INSERT INTO complexes (complex_id, complex_name) VALUES (?, ?)", rowsOf(ds.Complexes, func(c model.Complex) []any {
			return []any{c.ID, nullable(c.Name)}
		})},
		{"INSERT INTO venues (venue_id, venue_name, city_name, country_name, country_code, timezone, complex_id) VALUES (?, ?, ?, ?, ?, ?, ?)", rowsOf(ds.Venues, func(v model.Venue) []any {
			return []any{v.ID, nullable(v.Name), nullable(v.CityName), nullable(v.CountryName), nullable(v.CountryCode), nullable(v.Timezone), nullable(v.ComplexID)}
		})},
		{"INSERT INTO competitors (competitor_id, name, country, country_code, abbreviation) VALUES (?, ?, ?, ?, ?)", rowsOf(ds.Competitors, func(c model.Competitor) []any {
			return []any{c.ID, c.Name, nullable(c.Country), nullable(c.CountryCode), nullable(c.Abbreviation)}
		})},
		{"INSERT INTO competitor_rankings (`rank`, movement, points, competitions_played, competitor_id) VALUES (?, ?, ?, ?, ?)", rowsOf(ds.Rankings, func(r model.CompetitorRanking) []any {
			return []any{r.Rank, r.Movement, r.Points, r.CompetitionsPlayed, r.CompetitorID}
		})},
	}

	for _, b := range batches {
		stmt, err := tx.PrepareContext(ctx, b.stmt)
		if err != nil {
			return fmt.Errorf("prepare %q: %w", b.stmt, err)
		}
		for _, args := range b.rows {
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				stmt.Close()
				return fmt.Errorf("insert %v: %w", args[0], err)
			}
		}
		stmt.Close()
	}
	return nil
}

func rowsOf[T any](items []T, args func(T) []any) [][]any {
	out := make([][]any, len(items))
	for i, it := range items {
		out[i] = args(it)
	}
	return out
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
