package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "tennis")
				So(manager.subsystem, ShouldEqual, "dashboard")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names should carry the namespace", func() {
				manager.RecordQuery("view", "ok", 1.5, 3)
				n, err := testutil.GatherAndCount(registry, "test_namespace_test_subsystem_queries_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When metrics are disabled", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry), WithMetricsEnabled(false))
			manager.RecordQuery("view", "ok", 1.5, 3)

			Convey("Then nothing should be recorded", func() {
				So(testutil.ToFloat64(manager.queries.WithLabelValues("view", "ok")), ShouldEqual, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording query outcomes", func() {
			before := testutil.ToFloat64(globalManager.queries.WithLabelValues("catalog", "query_error"))
			RecordQuery("catalog", "query_error", 2, 0)

			Convey("Then the labelled counter should increase", func() {
				after := testutil.ToFloat64(globalManager.queries.WithLabelValues("catalog", "query_error"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording cache activity", func() {
			hits := testutil.ToFloat64(globalManager.cacheHits)
			misses := testutil.ToFloat64(globalManager.cacheMisses)
			RecordCacheHit()
			RecordCacheMiss()
			RecordCacheMiss()
			UpdateCacheEntries(4)

			Convey("Then hits, misses and entries should be tracked", func() {
				So(testutil.ToFloat64(globalManager.cacheHits)-hits, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.cacheMisses)-misses, ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.cacheEntries), ShouldEqual, 4)
			})
		})

		Convey("When recording dataset and filter metrics", func() {
			So(func() {
				UpdateDatasetRows("competitors", 10)
				RecordFilter("competitors", 10, 4)
				RecordFilter("competitors", 0, 0)
				RecordEmptyResult("summary")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.datasetRows.WithLabelValues("competitors")), ShouldEqual, 10)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("competitors", "GET", "200")
				RecordHTTPRequestDuration("competitors", "GET", "200", 5.0)
				RecordErrorByType("server_error", "high")
				RecordErrorByEndpoint("summary", "GET", "server_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When gathering totals", func() {
			RecordHTTPRequest("queries", "GET", "200")
			totals, err := Totals()

			Convey("Then counters should be summed per family", func() {
				So(err, ShouldBeNil)
				So(totals["tennis_dashboard_http_requests_total"], ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When getting the registry", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		prevManager, prevRegistry := globalManager, customRegistry
		defer func() { globalManager, customRegistry = prevManager, prevRegistry }()

		Convey("When it is reconfigured with a namespace and labels", func() {
			registry := Configure(WithNamespace("configured"), WithConstLabels(map[string]string{"env": "ci"}))
			RecordCacheHit()

			Convey("Then the helpers should record on the new registry", func() {
				So(GetRegistry(), ShouldEqual, registry)
				n, err := testutil.GatherAndCount(registry, "configured_dashboard_query_cache_hits_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When it is reconfigured as disabled", func() {
			Configure(WithMetricsEnabled(false))
			RecordCacheHit()

			Convey("Then nothing should be recorded", func() {
				So(testutil.ToFloat64(globalManager.cacheHits), ShouldEqual, 0)
			})
		})
	})
}
