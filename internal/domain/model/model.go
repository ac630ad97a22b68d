// Package model contains the read-only tennis entities and the typed view
// records produced by the dataset loader.
package model

// Competitor is a player or doubles pair.
type Competitor struct {
	ID           string  `json:"competitor_id"`
	Name         string  `json:"name"`
	Country      *string `json:"country,omitempty"`
	CountryCode  *string `json:"country_code,omitempty"`
	Abbreviation *string `json:"abbreviation,omitempty"`
}

// CompetitorRanking is one row of the current ranking snapshot.
type CompetitorRanking struct {
	CompetitorID       string `json:"competitor_id"`
	Rank               int64  `json:"rank"`
	Points             int64  `json:"points"`
	Movement           int64  `json:"movement"`
	CompetitionsPlayed int64  `json:"competitions_played"`
}

// Category groups competitions, e.g. "ATP" or "ITF Women".
type Category struct {
	ID   string `json:"category_id"`
	Name string `json:"category_name"`
}

// Competition is a tournament, optionally nested under a parent.
type Competition struct {
	ID         string  `json:"competition_id"`
	Name       string  `json:"competition_name"`
	Type       *string `json:"type,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	CategoryID string  `json:"category_id"`
	ParentID   *string `json:"parent_id,omitempty"`
}

// Complex is a site hosting one or more venues.
type Complex struct {
	ID   string  `json:"complex_id"`
	Name *string `json:"complex_name"`
}

// Venue is a court facility inside a complex.
type Venue struct {
	ID          string  `json:"venue_id"`
	Name        *string `json:"venue_name"`
	CityName    *string `json:"city_name,omitempty"`
	CountryName *string `json:"country_name"`
	CountryCode *string `json:"country_code,omitempty"`
	Timezone    *string `json:"timezone"`
	ComplexID   *string `json:"complex_id"`
}

// CompetitorRow is the competitors-and-rankings view record.
type CompetitorRow struct {
	CompetitorID       string   `json:"competitor_id"`
	Rank               *int64   `json:"rank"`
	Points             *float64 `json:"points"`
	Movement           *int64   `json:"movement"`
	CompetitionsPlayed *int64   `json:"competitions_played"`
	Name               string   `json:"name"`
	Country            *string  `json:"country"`
	Abbreviation       *string  `json:"abbreviation"`
}

// CompetitionRow is the categories-and-competitions view record.
type CompetitionRow struct {
	CategoryID      string  `json:"category_id"`
	CompetitionID   string  `json:"competition_id"`
	CompetitionName string  `json:"competition_name"`
	Type            *string `json:"type"`
	Gender          *string `json:"gender"`
	CategoryName    *string `json:"category_name"`
	ParentID        *string `json:"parent_id"`
}

// VenueRow is a venue left-joined with its complex.
type VenueRow struct {
	Venue
	ComplexName *string `json:"complex_name"`
}

// Summary holds the dashboard home metrics.
type Summary struct {
	TotalCompetitors int64   `json:"total_competitors"`
	TotalCountries   int64   `json:"total_countries"`
	HighestPoints    float64 `json:"highest_points"`
}

// TopCompetitor identifies the competitor holding the highest points.
type TopCompetitor struct {
	Name    string  `json:"name"`
	Country *string `json:"country"`
	Rank    int64   `json:"rank"`
}

// CompetitorDetail is the single-competitor viewer record.
type CompetitorDetail struct {
	CompetitorID       string  `json:"competitor_id"`
	Name               string  `json:"name"`
	Rank               *int64  `json:"rank"`
	Movement           *int64  `json:"movement"`
	CompetitionsPlayed *int64  `json:"competitions_played"`
	Country            *string `json:"country"`
	Abbreviation       *string `json:"abbreviation"`
}

// Deref returns the pointed-to value and whether it was set.
func Deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
