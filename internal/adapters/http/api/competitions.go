package api

import (
	"context"
	"net/http"

	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
)

// CompetitionsDependencies defines the competitions view operation.
type CompetitionsDependencies interface {
	Competitions(ctx context.Context, f service.CompetitionFilter) (service.CompetitionsView, error)
}

// CompetitionsHandler handles competitions requests.
type CompetitionsHandler struct {
	deps CompetitionsDependencies
}

// NewCompetitionsHandler creates a new competitions handler.
func NewCompetitionsHandler(deps CompetitionsDependencies) *CompetitionsHandler {
	return &CompetitionsHandler{deps: deps}
}

// HandleList handles GET /api/competitions?name=&gender=&type=.
func (h *CompetitionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Competitions(r.Context(), ParseCompetitionFilter(r.URL.Query()))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
