package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/http/api"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/catalog"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

// mockDependencies returns canned views and records the filters it saw.
type mockDependencies struct {
	err error

	home        service.HomeView
	competitors service.CompetitorsView
	detail      model.CompetitorDetail
	result      *table.Result
	dropped     int

	lastCompetitor  service.CompetitorFilter
	lastCompetition service.CompetitionFilter
	lastVenue       service.VenueFilter
	lastName        string
	lastLabel       string
}

func (m *mockDependencies) Home(context.Context) (service.HomeView, error) {
	return m.home, m.err
}

func (m *mockDependencies) Competitors(_ context.Context, f service.CompetitorFilter) (service.CompetitorsView, error) {
	m.lastCompetitor = f
	if m.err != nil {
		return service.CompetitorsView{}, m.err
	}
	if err := f.Validate(); err != nil {
		return service.CompetitorsView{}, err
	}
	return m.competitors, nil
}

func (m *mockDependencies) Competitions(_ context.Context, f service.CompetitionFilter) (service.CompetitionsView, error) {
	m.lastCompetition = f
	return service.CompetitionsView{Filter: f}, m.err
}

func (m *mockDependencies) Venues(_ context.Context, f service.VenueFilter) (service.VenuesView, error) {
	m.lastVenue = f
	return service.VenuesView{Filter: f}, m.err
}

func (m *mockDependencies) CompetitorNames(context.Context) ([]string, error) {
	return []string{"Sinner, Jannik", "Alcaraz, Carlos"}, m.err
}

func (m *mockDependencies) CompetitorDetail(_ context.Context, name string) (model.CompetitorDetail, error) {
	m.lastName = name
	return m.detail, m.err
}

func (m *mockDependencies) CompetitorPage(_ context.Context, name string) (service.CompetitorView, error) {
	m.lastName = name
	if m.err != nil {
		return service.CompetitorView{}, m.err
	}
	detail := m.detail
	return service.CompetitorView{Names: []string{"Sinner, Jannik", "Alcaraz, Carlos"}, Detail: &detail}, nil
}

func (m *mockDependencies) Questions() []string {
	return []string{"1. First", "2. Second"}
}

func (m *mockDependencies) RunQuestion(_ context.Context, label string) (*table.Result, error) {
	m.lastLabel = label
	return m.result, m.err
}

func (m *mockDependencies) RefreshCache(context.Context) (int, error) {
	return m.dropped, m.err
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}},
		api.WithGatherer(prometheus.NewRegistry()))
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("Then health endpoint should be accessible", func() {
			So(serve(mux, "GET", "/healthz").Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats endpoint should return the provider's stats", func() {
			w := serve(mux, "GET", "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And dashboard endpoint should serve HTML", func() {
			w := serve(mux, "GET", "/dashboard")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Service metrics")
		})

		Convey("And unknown paths should not be handled", func() {
			So(serve(mux, "GET", "/unknown").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And every API response should carry a request id", func() {
			w := serve(mux, "GET", "/api/summary")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("And a client supplied request id should be echoed", func() {
			req := httptest.NewRequest("GET", "/api/queries", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("And a nil mux should panic", func() {
			server := api.NewServer(deps, &mockStatsProvider{})
			So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestSummaryHandler(t *testing.T) {
	Convey("Given a summary endpoint", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When the ranking table is empty", func() {
			deps.home = service.HomeView{Empty: true, Message: service.EmptyRankingsMessage}
			w := serve(mux, "GET", "/api/summary")

			Convey("Then the empty state should be a successful response", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"empty":true`)
				So(w.Body.String(), ShouldContainSubstring, service.EmptyRankingsMessage)
			})
		})

		Convey("When summary data exists", func() {
			deps.home = service.HomeView{
				Summary: &model.Summary{TotalCompetitors: 3, TotalCountries: 2, HighestPoints: 9850},
				Top:     &model.TopCompetitor{Name: "Sinner, Jannik", Rank: 1},
			}
			w := serve(mux, "GET", "/api/summary")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Sinner, Jannik")
		})

		Convey("When the method is not GET", func() {
			w := serve(mux, "POST", "/api/summary")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodGet)
		})
	})
}

func TestCompetitorsHandler(t *testing.T) {
	Convey("Given a competitors endpoint", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When filters are passed as query parameters", func() {
			w := serve(mux, "GET", "/api/competitors?name=an&country=USA&country=Spain&country=&rank_min=1&rank_max=10")

			Convey("Then they should reach the service parsed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				f := deps.lastCompetitor
				So(f.Name, ShouldEqual, "an")
				So(f.Countries, ShouldResemble, []string{"USA", "Spain"})
				So(*f.RankMin, ShouldEqual, int64(1))
				So(*f.RankMax, ShouldEqual, int64(10))
			})
		})

		Convey("When no filter is passed", func() {
			serve(mux, "GET", "/api/competitors")
			So(deps.lastCompetitor.Countries, ShouldBeNil)
			So(deps.lastCompetitor.RankMin, ShouldBeNil)
		})

		Convey("When a rank bound is not a number", func() {
			w := serve(mux, "GET", "/api/competitors?rank_min=top")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["message"], ShouldContainSubstring, "rank_min")
		})

		Convey("When the rank bounds are inverted", func() {
			w := serve(mux, "GET", "/api/competitors?rank_min=10&rank_max=2")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("When listing names", func() {
			w := serve(mux, "GET", "/api/competitors/names")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"names":["Sinner, Jannik","Alcaraz, Carlos"]`)
		})

		Convey("When asking for a detail", func() {
			deps.detail = model.CompetitorDetail{Name: "Gauff, Coco", Rank: model.Ptr[int64](3)}
			w := serve(mux, "GET", "/api/competitors/detail?name=Gauff%2C+Coco")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastName, ShouldEqual, "Gauff, Coco")
		})

		Convey("When the competitor is unknown", func() {
			deps.err = service.ErrNotFound
			w := serve(mux, "GET", "/api/competitors/detail?name=Nobody")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCompetitionsAndVenuesHandlers(t *testing.T) {
	Convey("Given the competitions and venues endpoints", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("Then competition filters should be forwarded", func() {
			w := serve(mux, "GET", "/api/competitions?name=open&gender=women&type=All")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastCompetition, ShouldResemble, service.CompetitionFilter{Name: "open", Gender: "women", Type: "All"})
		})

		Convey("Then venue filters should be forwarded", func() {
			w := serve(mux, "GET", "/api/venues?complex=Melbourne+Park&venue=All")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastVenue, ShouldResemble, service.VenueFilter{Complex: "Melbourne Park", Venue: "All"})
		})
	})
}

func TestQueriesHandler(t *testing.T) {
	Convey("Given the canned question endpoints", t, func() {
		deps := &mockDependencies{
			result: table.New([]table.Column{{Name: "n", Type: table.TypeInteger}}, []table.Row{{int64(4)}}),
		}
		mux := newMux(deps)

		Convey("When listing questions", func() {
			w := serve(mux, "GET", "/api/queries")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "2. Second")
		})

		Convey("When running a question", func() {
			w := serve(mux, "GET", "/api/queries/run?label=1.+First")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLabel, ShouldEqual, "1. First")
			So(w.Body.String(), ShouldContainSubstring, `"label":"1. First"`)
		})

		Convey("When the label is missing", func() {
			w := serve(mux, "GET", "/api/queries/run")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the label is unknown", func() {
			deps.err = catalog.ErrUnknownQuestion
			w := serve(mux, "GET", "/api/queries/run?label=nope")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w)["code"], ShouldEqual, "not_found")
		})
	})
}

func TestCacheHandler(t *testing.T) {
	Convey("Given the cache refresh endpoint", t, func() {
		deps := &mockDependencies{dropped: 7}
		mux := newMux(deps)

		Convey("Then POST should report dropped entries", func() {
			w := serve(mux, "POST", "/api/cache/refresh")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"dropped":7}`)
		})

		Convey("Then GET should be rejected", func() {
			So(serve(mux, "GET", "/api/cache/refresh").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then a disabled cache should conflict", func() {
			deps.err = service.ErrCacheDisabled
			So(serve(mux, "POST", "/api/cache/refresh").Code, ShouldEqual, http.StatusConflict)
		})
	})
}

func TestErrorMapping(t *testing.T) {
	Convey("Given store failures surfacing through a view", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		cases := []struct {
			err    error
			status int
			code   string
		}{
			{&store.OpError{Op: "connect", Kind: store.ErrConnection, Err: errors.New("refused")}, http.StatusBadGateway, "store_unavailable"},
			{&store.OpError{Op: "query", Kind: store.ErrQuery, Err: errors.New("syntax")}, http.StatusInternalServerError, "query_failed"},
			{&store.OpError{Op: "record", Kind: store.ErrEmptyResult}, http.StatusNotFound, "empty_result"},
			{service.ErrNotStarted, http.StatusServiceUnavailable, "not_started"},
			{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		}
		for _, c := range cases {
			deps.err = c.err
			w := serve(mux, "GET", "/api/competitions")
			So(w.Code, ShouldEqual, c.status)
			So(decodeError(w)["code"], ShouldEqual, c.code)
		}
	})
}

func TestClassify(t *testing.T) {
	Convey("Classify should map request and service errors to statuses", t, func() {
		cases := []struct {
			err    error
			status int
		}{
			{fmt.Errorf("%w: rank_min", api.ErrBadRequest), http.StatusBadRequest},
			{service.ErrInvalidFilter, http.StatusBadRequest},
			{catalog.ErrUnknownQuestion, http.StatusNotFound},
			{service.ErrNotFound, http.StatusNotFound},
			{service.ErrCacheDisabled, http.StatusConflict},
			{service.ErrNotStarted, http.StatusServiceUnavailable},
		}
		for _, c := range cases {
			status, _ := api.Classify(c.err)
			So(status, ShouldEqual, c.status)
		}
	})
}
