// Package site renders the dashboard pages as server-side HTML.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/http/api"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("page render failed")
)

// Site serves the dashboard pages.
type Site struct {
	deps  api.Dependencies
	pages map[string]*pageTemplate
	log   logger.Logger
}

// Option configures the Site.
type Option func(*Site)

// WithLogger sets the logger used for render failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.log = l
		}
	}
}

// New parses the embedded page templates.
func New(deps api.Dependencies, opts ...Option) (*Site, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	s := &Site{deps: deps, pages: pages, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register attaches the page routes to mux.
func (s *Site) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/{$}", s.wrap(s.HandleHome, "page_home"))
	mux.HandleFunc("/competitors", s.wrap(s.HandleCompetitors, "page_competitors"))
	mux.HandleFunc("/competitions", s.wrap(s.HandleCompetitions, "page_competitions"))
	mux.HandleFunc("/venues", s.wrap(s.HandleVenues, "page_venues"))
	mux.HandleFunc("/competitor", s.wrap(s.HandleCompetitor, "page_competitor"))
	mux.HandleFunc("/queries", s.wrap(s.HandleQueries, "page_queries"))
}

func (s *Site) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return api.RequestIDMiddleware(api.MetricsMiddleware(h, endpoint), s.log)
}

// pageData is the value every page template executes with.
type pageData struct {
	Title  string
	Active string
	View   any
	Error  string
}

// HandleHome renders the summary metrics and the top competitor.
func (s *Site) HandleHome(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.Home(r.Context())
	if err != nil {
		s.fail(w, r, "Tennis Data Dashboard", "home", err)
		return
	}
	s.render(w, r, "home", http.StatusOK, pageData{Title: "Tennis Data Dashboard", Active: "home", View: view})
}

// HandleCompetitors renders the filtered competitors-and-rankings table.
func (s *Site) HandleCompetitors(w http.ResponseWriter, r *http.Request) {
	const title = "Competitors & Rankings"
	f, err := api.ParseCompetitorFilter(r.URL.Query())
	if err != nil {
		s.fail(w, r, title, "competitors", err)
		return
	}
	view, err := s.deps.Competitors(r.Context(), f)
	if err != nil {
		s.fail(w, r, title, "competitors", err)
		return
	}
	s.render(w, r, "competitors", http.StatusOK, pageData{Title: title, Active: "competitors", View: view})
}

// HandleCompetitions renders the filtered categories-and-competitions table.
func (s *Site) HandleCompetitions(w http.ResponseWriter, r *http.Request) {
	const title = "Competitions"
	view, err := s.deps.Competitions(r.Context(), api.ParseCompetitionFilter(r.URL.Query()))
	if err != nil {
		s.fail(w, r, title, "competitions", err)
		return
	}
	s.render(w, r, "competitions", http.StatusOK, pageData{Title: title, Active: "competitions", View: view})
}

// HandleVenues renders the filtered venue merge and both raw tables.
func (s *Site) HandleVenues(w http.ResponseWriter, r *http.Request) {
	const title = "Venues & Complexes"
	view, err := s.deps.Venues(r.Context(), api.ParseVenueFilter(r.URL.Query()))
	if err != nil {
		s.fail(w, r, title, "venues", err)
		return
	}
	s.render(w, r, "venues", http.StatusOK, pageData{Title: title, Active: "venues", View: view})
}

// HandleCompetitor renders one competitor picked from the ranked names.
func (s *Site) HandleCompetitor(w http.ResponseWriter, r *http.Request) {
	const title = "Competitor Details"
	view, err := s.deps.CompetitorPage(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.fail(w, r, title, "competitor", err)
		return
	}
	s.render(w, r, "competitor", http.StatusOK, pageData{Title: title, Active: "competitor", View: view})
}

// HandleQueries lists the canned questions and runs the selected one.
func (s *Site) HandleQueries(w http.ResponseWriter, r *http.Request) {
	const title = "SQL Queries"
	view := queriesView{Questions: s.deps.Questions(), Label: r.URL.Query().Get("label")}
	if view.Label != "" {
		res, err := s.deps.RunQuestion(r.Context(), view.Label)
		if err != nil {
			s.fail(w, r, title, "queries", err)
			return
		}
		view.Result = res
	}
	s.render(w, r, "queries", http.StatusOK, pageData{Title: title, Active: "queries", View: view})
}

// render executes into a buffer first so a template failure never leaves a
// partially written page.
func (s *Site) render(w http.ResponseWriter, r *http.Request, page string, status int, data pageData) {
	t, ok := s.pages[page]
	if !ok {
		s.log.Error(r.Context(), "unknown page", logger.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.execute(&buf, data); err != nil {
		s.log.Error(r.Context(), "page render failed", logger.String("page", page), logger.Error(fmt.Errorf("%w: %w", ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) fail(w http.ResponseWriter, r *http.Request, title, active string, err error) {
	status, _ := api.Classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "page failed", logger.String("page", active), logger.Error(err))
	}
	s.render(w, r, "error", status, pageData{Title: title, Active: active, Error: err.Error()})
}
