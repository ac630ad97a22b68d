package service

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/filter"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func check(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return nil
}

// CompetitorFilter narrows the competitors-and-rankings view. Zero values
// mean "no constraint"; an empty country list passes every row.
type CompetitorFilter struct {
	Name      string   `json:"name" validate:"max=100"`
	Countries []string `json:"countries" validate:"max=250,dive,max=100"`
	RankMin   *int64   `json:"rank_min,omitempty" validate:"omitempty,gte=0"`
	RankMax   *int64   `json:"rank_max,omitempty" validate:"omitempty,gte=0"`
}

// Validate rejects malformed input and inverted rank bounds.
func (f CompetitorFilter) Validate() error {
	if err := check(f); err != nil {
		return err
	}
	if f.RankMin != nil && f.RankMax != nil && *f.RankMin > *f.RankMax {
		return fmt.Errorf("%w: rank_min %d exceeds rank_max %d", ErrInvalidFilter, *f.RankMin, *f.RankMax)
	}
	return nil
}

// Config builds the predicate pipeline: name, then country, then rank.
func (f CompetitorFilter) Config() filter.Config[model.CompetitorRow] {
	return filter.New(
		filter.TextContains("name", competitorName, f.Name),
		filter.IsIn("country", competitorCountry, f.Countries),
		filter.RangeInclusive("rank", competitorRank, toFloat(f.RankMin), toFloat(f.RankMax)),
	)
}

// CompetitionFilter narrows the categories-and-competitions view.
type CompetitionFilter struct {
	Name   string `json:"name" validate:"max=100"`
	Gender string `json:"gender" validate:"max=20"`
	Type   string `json:"type" validate:"max=20"`
}

// Validate rejects malformed input.
func (f CompetitionFilter) Validate() error { return check(f) }

// Config builds the predicate pipeline: name, then gender, then type.
func (f CompetitionFilter) Config() filter.Config[model.CompetitionRow] {
	return filter.New(
		filter.TextContains("competition_name", competitionName, f.Name),
		filter.Equals("gender", competitionGender, f.Gender),
		filter.Equals("type", competitionType, f.Type),
	)
}

// VenueFilter narrows the merged venues view.
type VenueFilter struct {
	Complex string `json:"complex" validate:"max=100"`
	Venue   string `json:"venue" validate:"max=100"`
}

// Validate rejects malformed input.
func (f VenueFilter) Validate() error { return check(f) }

// Config builds the predicate pipeline: complex, then venue.
func (f VenueFilter) Config() filter.Config[model.VenueRow] {
	return filter.New(
		filter.Equals("complex_name", venueComplexName, f.Complex),
		filter.Equals("venue_name", venueName, f.Venue),
	)
}

var (
	competitorName    = filter.Field(func(r model.CompetitorRow) string { return r.Name })
	competitorCountry = filter.OptionalString(func(r model.CompetitorRow) *string { return r.Country })
	competitorRank    = filter.OptionalInt(func(r model.CompetitorRow) *int64 { return r.Rank })

	competitionName   = filter.Field(func(r model.CompetitionRow) string { return r.CompetitionName })
	competitionGender = filter.OptionalString(func(r model.CompetitionRow) *string { return r.Gender })
	competitionType   = filter.OptionalString(func(r model.CompetitionRow) *string { return r.Type })

	venueComplexName = filter.OptionalString(func(r model.VenueRow) *string { return r.ComplexName })
	venueName        = filter.OptionalString(func(r model.VenueRow) *string { return r.Name })

	complexName  = filter.OptionalString(func(c model.Complex) *string { return c.Name })
	rawVenueName = filter.OptionalString(func(v model.Venue) *string { return v.Name })
)

func toFloat(p *int64) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
