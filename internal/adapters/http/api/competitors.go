package api

import (
	"context"
	"net/http"

	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
)

// CompetitorsDependencies defines the competitor view operations.
type CompetitorsDependencies interface {
	Competitors(ctx context.Context, f service.CompetitorFilter) (service.CompetitorsView, error)
	CompetitorNames(ctx context.Context) ([]string, error)
	CompetitorDetail(ctx context.Context, name string) (model.CompetitorDetail, error)
}

// CompetitorsHandler handles competitor list, name and detail requests.
type CompetitorsHandler struct {
	deps CompetitorsDependencies
}

// NewCompetitorsHandler creates a new competitors handler.
func NewCompetitorsHandler(deps CompetitorsDependencies) *CompetitorsHandler {
	return &CompetitorsHandler{deps: deps}
}

// HandleList handles GET /api/competitors?name=&country=&rank_min=&rank_max=.
func (h *CompetitorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	f, err := ParseCompetitorFilter(r.URL.Query())
	if err != nil {
		writeFailure(w, err)
		return
	}
	view, err := h.deps.Competitors(r.Context(), f)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type namesResponse struct {
	Names []string `json:"names"`
}

// HandleNames handles GET /api/competitors/names.
func (h *CompetitorsHandler) HandleNames(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	names, err := h.deps.CompetitorNames(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, namesResponse{Names: names})
}

// HandleDetail handles GET /api/competitors/detail?name=. Without a name the
// best-ranked competitor is returned.
func (h *CompetitorsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	detail, err := h.deps.CompetitorDetail(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
