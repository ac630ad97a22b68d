package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/http/api"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/config"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/seed"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

func seededMux(t *testing.T, path string) *http.ServeMux {
	ctx := context.Background()
	cfg := config.New(ctx)
	cfg.DBDriver = config.DriverSQLite
	cfg.DBName = path
	exec, err := store.FromConfig(cfg)
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	svc := service.New(service.WithExecutor(exec), service.WithLogger(logger.Nop()))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithGatherer(prometheus.NewRegistry())).Register(ctx, mux)
	return mux
}

func TestAPIIntegration(t *testing.T) {
	Convey("Given the API over the demo database", t, func() {
		path := filepath.Join(t.TempDir(), "tennis.db")
		if _, err := seed.Seed(context.Background(), path); err != nil {
			t.Fatalf("seed: %v", err)
		}
		mux := seededMux(t, path)

		Convey("When filtering competitors by country and rank", func() {
			q := url.Values{"country": {"USA"}, "rank_max": {"15"}}
			w := serve(mux, "GET", "/api/competitors?"+q.Encode())
			So(w.Code, ShouldEqual, http.StatusOK)

			var view service.CompetitorsView
			So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)

			Convey("Then rows should match both predicates", func() {
				So(view.Total, ShouldEqual, 25)
				So(view.Rows, ShouldNotBeEmpty)
				for _, r := range view.Rows {
					So(*r.Country, ShouldEqual, "USA")
					So(*r.Rank, ShouldBeLessThanOrEqualTo, int64(15))
				}
			})
		})

		Convey("When running a canned question", func() {
			q := url.Values{"label": {"11. Competitors ranked in the top 5"}}
			w := serve(mux, "GET", "/api/queries/run?"+q.Encode())
			So(w.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Result struct {
					Rows []map[string]any `json:"rows"`
				} `json:"result"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Result.Rows, ShouldHaveLength, 5)
		})

		Convey("When refreshing without a cache", func() {
			So(serve(mux, "POST", "/api/cache/refresh").Code, ShouldEqual, http.StatusConflict)
		})
	})

	Convey("Given the API over a missing database file", t, func() {
		mux := seededMux(t, filepath.Join(t.TempDir(), "missing.db"))

		Convey("Then views should report the store as unavailable", func() {
			w := serve(mux, "GET", "/api/summary")
			So(w.Code, ShouldEqual, http.StatusBadGateway)
		})
	})
}
