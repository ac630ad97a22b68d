package repository

import (
	"context"
	"errors"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

const (
	summaryQuery = `SELECT COUNT(DISTINCT cr.competitor_id) AS total_competitors,
       COUNT(DISTINCT c.country) AS total_countries,
       MAX(cr.points) AS highest_points
FROM competitor_rankings cr
JOIN competitors c ON cr.competitor_id = c.competitor_id`

	topCompetitorQuery = `SELECT c.name AS top_player, c.country AS top_country, cr.rank AS top_rank
FROM competitor_rankings cr
JOIN competitors c ON cr.competitor_id = c.competitor_id
WHERE cr.points = (SELECT MAX(points) FROM competitor_rankings)
ORDER BY cr.rank`
)

// Summary returns the home page metrics. An empty ranking table fails with
// store.ErrEmptyResult.
func (l *Loader) Summary(ctx context.Context) (model.Summary, error) {
	rec, err := store.Record(ctx, l.exec, summaryQuery)
	if err != nil {
		return model.Summary{}, l.empty(ctx, "summary", err)
	}
	highest, ok := rec.Float(0, "highest_points")
	if !ok {
		return model.Summary{}, l.empty(ctx, "summary", &store.OpError{Op: "summary", Kind: store.ErrEmptyResult})
	}
	competitors, _ := rec.Int(0, "total_competitors")
	countries, _ := rec.Int(0, "total_countries")
	return model.Summary{
		TotalCompetitors: competitors,
		TotalCountries:   countries,
		HighestPoints:    highest,
	}, nil
}

// TopCompetitor returns the competitor holding the highest points. Ties
// resolve to the best rank.
func (l *Loader) TopCompetitor(ctx context.Context) (model.TopCompetitor, error) {
	rec, err := store.Record(ctx, l.exec, topCompetitorQuery)
	if err != nil {
		return model.TopCompetitor{}, l.empty(ctx, "top_competitor", err)
	}
	rank, _ := rec.Int(0, "top_rank")
	return model.TopCompetitor{
		Name:    text(rec, 0, "top_player"),
		Country: optText(rec, 0, "top_country"),
		Rank:    rank,
	}, nil
}

func (l *Loader) empty(ctx context.Context, query string, err error) error {
	if errors.Is(err, store.ErrEmptyResult) {
		metrics.RecordEmptyResult(query)
		l.log.Info(ctx, "aggregate returned no rows", logger.String("query", query))
	}
	return err
}
