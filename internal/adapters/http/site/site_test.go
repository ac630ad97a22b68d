package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/http/api"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/http/site"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/config"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/seed"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

func seededExecutor(t *testing.T, ds *seed.Dataset) store.Executor {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tennis.db")
	var err error
	if ds == nil {
		_, err = seed.Seed(ctx, path)
	} else {
		err = seed.Write(ctx, path, *ds)
	}
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := config.New(ctx)
	cfg.DBDriver = config.DriverSQLite
	cfg.DBName = path
	exec, err := store.FromConfig(cfg)
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	return exec
}

func newSite(t *testing.T, ds *seed.Dataset) *http.ServeMux {
	return siteOver(t, seededExecutor(t, ds))
}

func siteOver(t *testing.T, exec store.Executor) *http.ServeMux {
	ctx := context.Background()
	svc := service.New(service.WithExecutor(exec), service.WithLogger(logger.Nop()))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)

	s, err := site.New(svc)
	if err != nil {
		t.Fatalf("site: %v", err)
	}
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return mux
}

func get(t *testing.T, mux *http.ServeMux, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return w, doc
}

func TestHomePage(t *testing.T) {
	Convey("Given the site over the demo database", t, func() {
		mux := newSite(t, nil)

		Convey("When the home page is requested", func() {
			w, doc := get(t, mux, "/")

			Convey("Then it should render the metrics and the top competitor", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(doc.Find("#total-competitors .value").Text(), ShouldEqual, "25")
				So(doc.Find("#total-countries .value").Text(), ShouldEqual, "17")
				So(doc.Find("#highest-points .value").Text(), ShouldEqual, "11830")
				So(doc.Find("#top-competitor").Text(), ShouldContainSubstring, "Sinner, Jannik")
				So(doc.Find("nav a.active").Text(), ShouldEqual, "Home")
			})
		})

		Convey("When an unknown path is requested", func() {
			w, _ := get(t, mux, "/nowhere")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given the site over an empty database", t, func() {
		mux := newSite(t, &seed.Dataset{})

		Convey("Then the home page should show the empty-state message", func() {
			w, doc := get(t, mux, "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(doc.Find("#empty").Text(), ShouldEqual, service.EmptyRankingsMessage)
			So(doc.Find(".metric").Length(), ShouldEqual, 0)
		})

		Convey("Then the competitor page should show the empty-state message", func() {
			w, doc := get(t, mux, "/competitor")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(doc.Find("#empty").Text(), ShouldEqual, service.EmptyRankingsMessage)
		})
	})
}

func TestCompetitorsPage(t *testing.T) {
	Convey("Given the site over the demo database", t, func() {
		mux := newSite(t, nil)

		Convey("When the page is requested without filters", func() {
			_, doc := get(t, mux, "/competitors")

			Convey("Then every ranked competitor should be listed", func() {
				So(doc.Find("#results tbody tr").Length(), ShouldEqual, 25)
				So(doc.Find("select[name=country] option").Length(), ShouldEqual, 17)
				So(doc.Find("input[name=rank_min]").AttrOr("value", ""), ShouldEqual, "1")
				So(doc.Find("input[name=rank_max]").AttrOr("value", ""), ShouldEqual, "25")
			})
		})

		Convey("When a country is selected", func() {
			_, doc := get(t, mux, "/competitors?country=USA")

			Convey("Then only that country should be listed and stay selected", func() {
				So(doc.Find("#results tbody tr").Length(), ShouldEqual, 5)
				So(doc.Find("select[name=country] option[selected]").Text(), ShouldEqual, "USA")
				So(doc.Find("#count").Text(), ShouldEqual, "Showing 5 of 25 competitors")
			})
		})

		Convey("When the rank bound is malformed", func() {
			w, doc := get(t, mux, "/competitors?rank_max=ten")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(doc.Find("#error").Text(), ShouldContainSubstring, "rank_max")
		})
	})
}

func TestCompetitionsAndVenuesPages(t *testing.T) {
	Convey("Given the site over the demo database", t, func() {
		mux := newSite(t, nil)

		Convey("Then the competitions page should filter by gender and type", func() {
			_, doc := get(t, mux, "/competitions?gender=women&type=doubles")
			So(doc.Find("#results tbody tr").Length(), ShouldEqual, 2)
			So(doc.Find("select[name=gender] option").First().Text(), ShouldEqual, "All")
			So(doc.Find("select[name=gender] option[selected]").Text(), ShouldEqual, "women")
		})

		Convey("Then the venues page should show the merge and both raw tables", func() {
			q := url.Values{"complex": {"Melbourne Park"}}
			_, doc := get(t, mux, "/venues?"+q.Encode())
			So(doc.Find("#results tbody tr").Length(), ShouldEqual, 3)
			So(doc.Find("#complexes tbody tr").Length(), ShouldEqual, 5)
			So(doc.Find("#venues tbody tr").Length(), ShouldEqual, 8)
		})
	})
}

func TestCompetitorAndQueriesPages(t *testing.T) {
	Convey("Given the site over the demo database", t, func() {
		mux := newSite(t, nil)

		Convey("When no competitor is chosen", func() {
			_, doc := get(t, mux, "/competitor")
			So(doc.Find("#name").Text(), ShouldEqual, "Sinner, Jannik")
			So(doc.Find("#rank").Text(), ShouldEqual, "1")
			So(doc.Find("select[name=name] option").Length(), ShouldEqual, 25)
		})

		Convey("When a competitor is chosen", func() {
			q := url.Values{"name": {"Gauff, Coco"}}
			_, doc := get(t, mux, "/competitor?"+q.Encode())
			So(doc.Find("#rank").Text(), ShouldEqual, "19")
			So(doc.Find("#country").Text(), ShouldEqual, "USA")
		})

		Convey("When an unranked competitor is chosen", func() {
			q := url.Values{"name": {"Nadal, Rafael"}}
			w, _ := get(t, mux, "/competitor?"+q.Encode())
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the queries page is opened", func() {
			_, doc := get(t, mux, "/queries")
			So(doc.Find("select[name=label] option").Length(), ShouldEqual, 14)
			So(doc.Find("#results").Length(), ShouldEqual, 0)
		})

		Convey("When a question is run", func() {
			q := url.Values{"label": {"11. Competitors ranked in the top 5"}}
			_, doc := get(t, mux, "/queries?"+q.Encode())
			So(doc.Find("#results tbody tr").Length(), ShouldEqual, 5)
			So(doc.Find("#count").Text(), ShouldEqual, "5 rows")
		})

		Convey("When an unknown question is run", func() {
			w, _ := get(t, mux, "/queries?label=nope")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSiteRegisterWithNilMux(t *testing.T) {
	Convey("Given a site", t, func() {
		s, err := site.New(nil)
		So(err, ShouldBeNil)

		Convey("Then registering on a nil mux should panic", func() {
			So(func() { s.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestCompetitorPageLoadsOnce(t *testing.T) {
	Convey("Given the site over a counting executor", t, func() {
		inner := seededExecutor(t, nil)
		var executions int
		counting := store.ExecutorFunc(func(ctx context.Context, query string) (*table.Result, error) {
			executions++
			return inner.Execute(ctx, query)
		})
		mux := siteOver(t, counting)

		Convey("When a competitor is chosen", func() {
			q := url.Values{"name": {"Gauff, Coco"}}
			w, doc := get(t, mux, "/competitor?"+q.Encode())

			Convey("Then the ranking view should be queried exactly once", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(executions, ShouldEqual, 1)
			})

			Convey("Then the picker and the detail should come from the same load", func() {
				So(doc.Find("select[name=name] option").Length(), ShouldEqual, 25)
				So(doc.Find("select[name=name] option[selected]").Text(), ShouldEqual, "Gauff, Coco")
				So(doc.Find("#rank").Text(), ShouldEqual, "19")
			})
		})

		Convey("When no competitor is chosen", func() {
			get(t, mux, "/competitor")
			So(executions, ShouldEqual, 1)
		})
	})
}

func TestPageRequestIDs(t *testing.T) {
	Convey("Given the site over the demo database", t, func() {
		mux := newSite(t, nil)

		Convey("When a page is requested without an id", func() {
			w, _ := get(t, mux, "/competitions")

			Convey("Then a generated id should be returned", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When a page is requested with an id", func() {
			req := httptest.NewRequest("GET", "/venues", nil)
			req.Header.Set(api.RequestIDHeader, "page-req-7")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the same id should be echoed", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "page-req-7")
			})
		})
	})
}

func TestPageStatusForStoppedService(t *testing.T) {
	Convey("Given a site over a service that was never started", t, func() {
		svc := service.New(service.WithExecutor(seededExecutor(t, nil)), service.WithLogger(logger.Nop()))
		s, err := site.New(svc)
		So(err, ShouldBeNil)
		mux := http.NewServeMux()
		s.Register(context.Background(), mux)

		Convey("When a page is requested", func() {
			w, doc := get(t, mux, "/competitors")

			Convey("Then it should render the error page as unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(doc.Find("#error").Text(), ShouldContainSubstring, service.ErrNotStarted.Error())
			})
		})
	})
}
