// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/catalog"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Home(ctx context.Context) (service.HomeView, error)
	Competitors(ctx context.Context, f service.CompetitorFilter) (service.CompetitorsView, error)
	Competitions(ctx context.Context, f service.CompetitionFilter) (service.CompetitionsView, error)
	Venues(ctx context.Context, f service.VenueFilter) (service.VenuesView, error)
	CompetitorNames(ctx context.Context) ([]string, error)
	CompetitorDetail(ctx context.Context, name string) (model.CompetitorDetail, error)
	CompetitorPage(ctx context.Context, name string) (service.CompetitorView, error)

	// Canned questions and cache control.
	Questions() []string
	RunQuestion(ctx context.Context, label string) (*table.Result, error)
	RefreshCache(ctx context.Context) (int, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	summaryHandler      *SummaryHandler
	competitorsHandler  *CompetitorsHandler
	competitionsHandler *CompetitionsHandler
	venuesHandler       *VenuesHandler
	queriesHandler      *QueriesHandler
	cacheHandler        *CacheHandler
	dashboardHandler    *dashboardHandler
	log                 logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := buildOptions(opts)
	return &Server{
		healthHandler:       NewHealthHandler(o.gatherer),
		statsHandler:        NewStatsHandler(statsProvider),
		summaryHandler:      NewSummaryHandler(deps),
		competitorsHandler:  NewCompetitorsHandler(deps),
		competitionsHandler: NewCompetitionsHandler(deps),
		venuesHandler:       NewVenuesHandler(deps),
		queriesHandler:      NewQueriesHandler(deps),
		cacheHandler:        NewCacheHandler(deps),
		dashboardHandler:    newDashboardHandler(),
		log:                 o.log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/api/summary", s.wrap(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("/api/competitors", s.wrap(s.competitorsHandler.HandleList, "competitors"))
	mux.HandleFunc("/api/competitors/names", s.wrap(s.competitorsHandler.HandleNames, "competitor_names"))
	mux.HandleFunc("/api/competitors/detail", s.wrap(s.competitorsHandler.HandleDetail, "competitor_detail"))
	mux.HandleFunc("/api/competitions", s.wrap(s.competitionsHandler.HandleList, "competitions"))
	mux.HandleFunc("/api/venues", s.wrap(s.venuesHandler.HandleList, "venues"))
	mux.HandleFunc("/api/queries", s.wrap(s.queriesHandler.HandleList, "queries"))
	mux.HandleFunc("/api/queries/run", s.wrap(s.queriesHandler.HandleRun, "query_run"))
	mux.HandleFunc("/api/cache/refresh", s.wrap(s.cacheHandler.HandleRefresh, "cache_refresh"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.log)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure translates a service or store error into a status code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	writeError(w, status, code, err)
}

// Classify maps error kinds to HTTP status and error code. Order matters:
// request errors are checked before store errors they may wrap.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidFilter):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, catalog.ErrUnknownQuestion), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrEmptyResult):
		return http.StatusNotFound, "empty_result"
	case errors.Is(err, service.ErrCacheDisabled):
		return http.StatusConflict, "cache_disabled"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_started"
	case errors.Is(err, store.ErrConnection):
		return http.StatusBadGateway, "store_unavailable"
	case errors.Is(err, store.ErrQuery):
		return http.StatusInternalServerError, "query_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
