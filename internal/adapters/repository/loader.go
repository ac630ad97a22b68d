package repository

import (
	"context"
	"fmt"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

// View names used in logs and metrics.
const (
	ViewCompetitors  = "competitors"
	ViewCompetitions = "competitions"
	ViewComplexes    = "complexes"
	ViewVenues       = "venues"
)

const (
	competitorsQuery = `SELECT r.competitor_id, r.rank, r.points, r.movement, r.competitions_played,
       c.name AS name, c.country AS country, c.abbreviation
FROM competitor_rankings r
JOIN competitors c ON r.competitor_id = c.competitor_id
ORDER BY r.rank ASC`

	competitionsQuery = `SELECT c.category_id, c.competition_id, c.competition_name, c.type, c.gender,
       cat.category_name, c.parent_id
FROM categories cat
JOIN competitions c ON c.category_id = cat.category_id
ORDER BY c.category_id, c.competition_id`

	complexesQuery = `SELECT complex_id, complex_name FROM complexes ORDER BY complex_id`

	venuesQuery = `SELECT venue_id, venue_name, city_name, country_name, country_code, timezone, complex_id
FROM venues ORDER BY venue_id`
)

// Loader runs the fixed query set of each view exactly once per call.
type Loader struct {
	exec store.Executor
	log  logger.Logger
}

// NewLoader creates a Loader reading through exec.
func NewLoader(exec store.Executor, opts ...Option) *Loader {
	l := &Loader{exec: exec, log: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Competitors loads rankings joined with competitors, ordered by rank.
func (l *Loader) Competitors(ctx context.Context) ([]model.CompetitorRow, error) {
	res, err := l.load(ctx, ViewCompetitors, competitorsQuery,
		"competitor_id", "rank", "points", "movement", "competitions_played", "name", "country", "abbreviation")
	if err != nil {
		return nil, err
	}
	rows := make([]model.CompetitorRow, res.Len())
	for i := range rows {
		rows[i] = model.CompetitorRow{
			CompetitorID:       text(res, i, "competitor_id"),
			Rank:               optInt(res, i, "rank"),
			Points:             optFloat(res, i, "points"),
			Movement:           optInt(res, i, "movement"),
			CompetitionsPlayed: optInt(res, i, "competitions_played"),
			Name:               text(res, i, "name"),
			Country:            optText(res, i, "country"),
			Abbreviation:       optText(res, i, "abbreviation"),
		}
	}
	return rows, nil
}

// Competitions loads competitions joined with their category.
func (l *Loader) Competitions(ctx context.Context) ([]model.CompetitionRow, error) {
	res, err := l.load(ctx, ViewCompetitions, competitionsQuery,
		"category_id", "competition_id", "competition_name", "type", "gender", "category_name", "parent_id")
	if err != nil {
		return nil, err
	}
	rows := make([]model.CompetitionRow, res.Len())
	for i := range rows {
		rows[i] = model.CompetitionRow{
			CategoryID:      text(res, i, "category_id"),
			CompetitionID:   text(res, i, "competition_id"),
			CompetitionName: text(res, i, "competition_name"),
			Type:            optText(res, i, "type"),
			Gender:          optText(res, i, "gender"),
			CategoryName:    optText(res, i, "category_name"),
			ParentID:        optText(res, i, "parent_id"),
		}
	}
	return rows, nil
}

// ComplexesAndVenues loads both tables independently. Use MergeVenues to
// combine them.
func (l *Loader) ComplexesAndVenues(ctx context.Context) ([]model.Complex, []model.Venue, error) {
	cres, err := l.load(ctx, ViewComplexes, complexesQuery, "complex_id", "complex_name")
	if err != nil {
		return nil, nil, err
	}
	vres, err := l.load(ctx, ViewVenues, venuesQuery, "venue_id", "venue_name", "complex_id", "timezone", "country_name")
	if err != nil {
		return nil, nil, err
	}

	complexes := make([]model.Complex, cres.Len())
	for i := range complexes {
		complexes[i] = model.Complex{
			ID:   text(cres, i, "complex_id"),
			Name: optText(cres, i, "complex_name"),
		}
	}
	venues := make([]model.Venue, vres.Len())
	for i := range venues {
		venues[i] = model.Venue{
			ID:          text(vres, i, "venue_id"),
			Name:        optText(vres, i, "venue_name"),
			CityName:    optText(vres, i, "city_name"),
			CountryName: optText(vres, i, "country_name"),
			CountryCode: optText(vres, i, "country_code"),
			Timezone:    optText(vres, i, "timezone"),
			ComplexID:   optText(vres, i, "complex_id"),
		}
	}
	return complexes, venues, nil
}

// MergeVenues left-joins venues with complexes on complex_id. Venues whose
// complex is unknown keep a nil ComplexName. Venue order is preserved.
func MergeVenues(venues []model.Venue, complexes []model.Complex) []model.VenueRow {
	names := make(map[string]*string, len(complexes))
	for _, c := range complexes {
		if _, dup := names[c.ID]; !dup {
			names[c.ID] = c.Name
		}
	}
	out := make([]model.VenueRow, len(venues))
	for i, v := range venues {
		out[i] = model.VenueRow{Venue: v}
		if v.ComplexID != nil {
			out[i].ComplexName = names[*v.ComplexID]
		}
	}
	return out
}

func (l *Loader) load(ctx context.Context, view, query string, required ...string) (*table.Result, error) {
	res, err := l.exec.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	for _, col := range required {
		if _, ok := res.Index(col); !ok {
			return nil, &store.OpError{
				Op:   "load " + view,
				Kind: store.ErrQuery,
				Err:  fmt.Errorf("%w: %s", ErrMissingColumn, col),
			}
		}
	}
	metrics.UpdateDatasetRows(view, res.Len())
	l.log.Debug(ctx, "dataset loaded", logger.String("view", view), logger.Int("rows", res.Len()))
	return res, nil
}

func text(res *table.Result, row int, col string) string {
	s, _ := res.String(row, col)
	return s
}

func optText(res *table.Result, row int, col string) *string {
	if s, ok := res.String(row, col); ok {
		return &s
	}
	return nil
}

func optInt(res *table.Result, row int, col string) *int64 {
	if n, ok := res.Int(row, col); ok {
		return &n
	}
	return nil
}

func optFloat(res *table.Result, row int, col string) *float64 {
	if f, ok := res.Float(row, col); ok {
		return &f
	}
	return nil
}
