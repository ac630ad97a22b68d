package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
)

// allowMethod rejects requests whose method differs from method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeFailure(w, fmt.Errorf("%w: %s", ErrMethodNotAllowed, r.Method))
	return false
}

// optionalInt parses key as an integer. A missing or blank value is nil.
func optionalInt(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, key)
	}
	return &v, nil
}

// multiValue collects every non-blank occurrence of key.
func multiValue(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseCompetitorFilter reads the competitors filter from query values:
// name, repeated country, rank_min and rank_max.
func ParseCompetitorFilter(q url.Values) (service.CompetitorFilter, error) {
	low, err := optionalInt(q, "rank_min")
	if err != nil {
		return service.CompetitorFilter{}, err
	}
	high, err := optionalInt(q, "rank_max")
	if err != nil {
		return service.CompetitorFilter{}, err
	}
	return service.CompetitorFilter{
		Name:      strings.TrimSpace(q.Get("name")),
		Countries: multiValue(q, "country"),
		RankMin:   low,
		RankMax:   high,
	}, nil
}

// ParseCompetitionFilter reads name, gender and type.
func ParseCompetitionFilter(q url.Values) service.CompetitionFilter {
	return service.CompetitionFilter{
		Name:   strings.TrimSpace(q.Get("name")),
		Gender: q.Get("gender"),
		Type:   q.Get("type"),
	}
}

// ParseVenueFilter reads complex and venue.
func ParseVenueFilter(q url.Values) service.VenueFilter {
	return service.VenueFilter{
		Complex: q.Get("complex"),
		Venue:   q.Get("venue"),
	}
}
