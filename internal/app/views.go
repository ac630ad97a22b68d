package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/repository"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/filter"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

// EmptyRankingsMessage is shown when the ranking table holds no rows.
const EmptyRankingsMessage = "No competitor ranking data available."

// HomeView carries the summary metrics and the top competitor. When the
// ranking table is empty, Empty is set and the other fields are nil.
type HomeView struct {
	Summary *model.Summary       `json:"summary,omitempty"`
	Top     *model.TopCompetitor `json:"top_competitor,omitempty"`
	Empty   bool                 `json:"empty"`
	Message string               `json:"message,omitempty"`
}

// CompetitorsView is the filtered competitors-and-rankings table with the
// control domains derived from the unfiltered dataset.
type CompetitorsView struct {
	Rows       []model.CompetitorRow `json:"rows"`
	Total      int                   `json:"total"`
	Countries  []string              `json:"countries"`
	RankBounds *filter.Range         `json:"rank_bounds"`
	Filter     CompetitorFilter      `json:"filter"`
}

// CompetitionsView is the filtered categories-and-competitions table.
type CompetitionsView struct {
	Rows    []model.CompetitionRow `json:"rows"`
	Total   int                    `json:"total"`
	Genders []string               `json:"genders"`
	Types   []string               `json:"types"`
	Filter  CompetitionFilter      `json:"filter"`
}

// VenuesView is the filtered venue/complex merge plus both raw tables.
type VenuesView struct {
	Rows         []model.VenueRow `json:"rows"`
	Total        int              `json:"total"`
	Complexes    []model.Complex  `json:"complexes"`
	Venues       []model.Venue    `json:"venues"`
	ComplexNames []string         `json:"complex_names"`
	VenueNames   []string         `json:"venue_names"`
	Filter       VenueFilter      `json:"filter"`
}

// Home loads the summary metrics and the top competitor.
func (s *Service) Home(ctx context.Context) (HomeView, error) {
	loader, _, err := s.components()
	if err != nil {
		return HomeView{}, err
	}
	sum, err := loader.Summary(ctx)
	if errors.Is(err, store.ErrEmptyResult) {
		return HomeView{Empty: true, Message: EmptyRankingsMessage}, nil
	}
	if err != nil {
		return HomeView{}, err
	}
	top, err := loader.TopCompetitor(ctx)
	if errors.Is(err, store.ErrEmptyResult) {
		return HomeView{Empty: true, Message: EmptyRankingsMessage}, nil
	}
	if err != nil {
		return HomeView{}, err
	}
	return HomeView{Summary: &sum, Top: &top}, nil
}

// Competitors loads and filters the competitors-and-rankings view.
func (s *Service) Competitors(ctx context.Context, f CompetitorFilter) (CompetitorsView, error) {
	if err := f.Validate(); err != nil {
		return CompetitorsView{}, err
	}
	loader, _, err := s.components()
	if err != nil {
		return CompetitorsView{}, err
	}
	base, err := loader.Competitors(ctx)
	if err != nil {
		return CompetitorsView{}, err
	}

	cfg := f.Config()
	rows := cfg.Apply(base)
	s.traceFilter(ctx, repository.ViewCompetitors, cfg.Active(), len(base), len(rows))

	view := CompetitorsView{
		Rows:      rows,
		Total:     len(base),
		Countries: filter.Domain(base, competitorCountry),
		Filter:    f,
	}
	if b, ok := filter.Bounds(base, competitorRank); ok {
		view.RankBounds = &b
	}
	return view, nil
}

// Competitions loads and filters the categories-and-competitions view.
func (s *Service) Competitions(ctx context.Context, f CompetitionFilter) (CompetitionsView, error) {
	if err := f.Validate(); err != nil {
		return CompetitionsView{}, err
	}
	loader, _, err := s.components()
	if err != nil {
		return CompetitionsView{}, err
	}
	base, err := loader.Competitions(ctx)
	if err != nil {
		return CompetitionsView{}, err
	}

	cfg := f.Config()
	rows := cfg.Apply(base)
	s.traceFilter(ctx, repository.ViewCompetitions, cfg.Active(), len(base), len(rows))

	return CompetitionsView{
		Rows:    rows,
		Total:   len(base),
		Genders: filter.WithAll(filter.Domain(base, competitionGender)),
		Types:   filter.WithAll(filter.Domain(base, competitionType)),
		Filter:  f,
	}, nil
}

// Venues loads complexes and venues, merges them and filters the merge.
// The complex and venue domains come from the raw tables.
func (s *Service) Venues(ctx context.Context, f VenueFilter) (VenuesView, error) {
	if err := f.Validate(); err != nil {
		return VenuesView{}, err
	}
	loader, _, err := s.components()
	if err != nil {
		return VenuesView{}, err
	}
	complexes, venues, err := loader.ComplexesAndVenues(ctx)
	if err != nil {
		return VenuesView{}, err
	}

	base := repository.MergeVenues(venues, complexes)
	cfg := f.Config()
	rows := cfg.Apply(base)
	s.traceFilter(ctx, repository.ViewVenues, cfg.Active(), len(base), len(rows))

	return VenuesView{
		Rows:         rows,
		Total:        len(base),
		Complexes:    complexes,
		Venues:       venues,
		ComplexNames: filter.WithAll(filter.Domain(complexes, complexName)),
		VenueNames:   filter.WithAll(filter.Domain(venues, rawVenueName)),
		Filter:       f,
	}, nil
}

// CompetitorView is the competitor picker and the selected competitor, both
// taken from a single load of the ranking view. When the ranking table is
// empty, Empty is set and Detail is nil.
type CompetitorView struct {
	Names   []string                `json:"names"`
	Detail  *model.CompetitorDetail `json:"detail,omitempty"`
	Empty   bool                    `json:"empty"`
	Message string                  `json:"message,omitempty"`
}

// CompetitorNames lists competitor names in rank order without repeats.
func (s *Service) CompetitorNames(ctx context.Context) ([]string, error) {
	rows, err := s.rankedCompetitors(ctx)
	if err != nil {
		return nil, err
	}
	return competitorNames(rows), nil
}

// CompetitorDetail returns the first ranked competitor named name. An empty
// name selects the best-ranked competitor.
func (s *Service) CompetitorDetail(ctx context.Context, name string) (model.CompetitorDetail, error) {
	rows, err := s.rankedCompetitors(ctx)
	if err != nil {
		return model.CompetitorDetail{}, err
	}
	return competitorDetail(rows, name)
}

// CompetitorPage loads the ranking view once and derives the name picker and
// the detail of name from it. An empty table yields the empty-state view.
func (s *Service) CompetitorPage(ctx context.Context, name string) (CompetitorView, error) {
	rows, err := s.rankedCompetitors(ctx)
	if err != nil {
		return CompetitorView{}, err
	}
	if len(rows) == 0 {
		return CompetitorView{Empty: true, Message: EmptyRankingsMessage}, nil
	}
	detail, err := competitorDetail(rows, name)
	if err != nil {
		return CompetitorView{}, err
	}
	return CompetitorView{Names: competitorNames(rows), Detail: &detail}, nil
}

func (s *Service) rankedCompetitors(ctx context.Context) ([]model.CompetitorRow, error) {
	loader, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return loader.Competitors(ctx)
}

func competitorNames(rows []model.CompetitorRow) []string {
	seen := make(map[string]struct{}, len(rows))
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}
	return names
}

func competitorDetail(rows []model.CompetitorRow, name string) (model.CompetitorDetail, error) {
	if len(rows) == 0 {
		return model.CompetitorDetail{}, &store.OpError{Op: "competitor detail", Kind: store.ErrEmptyResult}
	}
	if name == "" {
		name = rows[0].Name
	}
	for _, r := range rows {
		if r.Name == name {
			return model.CompetitorDetail{
				CompetitorID:       r.CompetitorID,
				Name:               r.Name,
				Rank:               r.Rank,
				Movement:           r.Movement,
				CompetitionsPlayed: r.CompetitionsPlayed,
				Country:            r.Country,
				Abbreviation:       r.Abbreviation,
			}, nil
		}
	}
	return model.CompetitorDetail{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (s *Service) traceFilter(ctx context.Context, view string, active []string, base, matched int) {
	metrics.RecordFilter(view, base, matched)
	s.logger.Debug(ctx, "filters applied",
		logger.String("view", view),
		logger.Any("active", active),
		logger.Int("base", base),
		logger.Int("matched", matched),
	)
}
