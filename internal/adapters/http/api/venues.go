package api

import (
	"context"
	"net/http"

	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
)

// VenuesDependencies defines the venues view operation.
type VenuesDependencies interface {
	Venues(ctx context.Context, f service.VenueFilter) (service.VenuesView, error)
}

// VenuesHandler handles venue requests.
type VenuesHandler struct {
	deps VenuesDependencies
}

// NewVenuesHandler creates a new venues handler.
func NewVenuesHandler(deps VenuesDependencies) *VenuesHandler {
	return &VenuesHandler{deps: deps}
}

// HandleList handles GET /api/venues?complex=&venue=.
func (h *VenuesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Venues(r.Context(), ParseVenueFilter(r.URL.Query()))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
