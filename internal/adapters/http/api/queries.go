package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

// QueriesDependencies defines the canned question operations.
type QueriesDependencies interface {
	Questions() []string
	RunQuestion(ctx context.Context, label string) (*table.Result, error)
}

// QueriesHandler handles canned question requests.
type QueriesHandler struct {
	deps QueriesDependencies
}

// NewQueriesHandler creates a new queries handler.
func NewQueriesHandler(deps QueriesDependencies) *QueriesHandler {
	return &QueriesHandler{deps: deps}
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

type answerResponse struct {
	Label  string        `json:"label"`
	Result *table.Result `json:"result"`
}

// HandleList handles GET /api/queries.
func (h *QueriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse{Questions: h.deps.Questions()})
}

// HandleRun handles GET /api/queries/run?label=.
func (h *QueriesHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	label := r.URL.Query().Get("label")
	if label == "" {
		writeFailure(w, fmt.Errorf("%w: missing label", ErrBadRequest))
		return
	}
	res, err := h.deps.RunQuestion(r.Context(), label)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Label: label, Result: res})
}
