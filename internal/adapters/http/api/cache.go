package api

import (
	"context"
	"net/http"
)

// CacheDependencies defines the cache control operation.
type CacheDependencies interface {
	RefreshCache(ctx context.Context) (int, error)
}

// CacheHandler handles cache refresh requests.
type CacheHandler struct {
	deps CacheDependencies
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(deps CacheDependencies) *CacheHandler {
	return &CacheHandler{deps: deps}
}

type refreshResponse struct {
	Dropped int `json:"dropped"`
}

// HandleRefresh handles POST /api/cache/refresh.
func (h *CacheHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	n, err := h.deps.RefreshCache(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Dropped: n})
}
