package seed_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/config"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/catalog"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/seed"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generated dataset", t, func() {
		ds := seed.Generate(seed.WithSeed(7))

		Convey("Then equal seeds should give equal datasets", func() {
			So(seed.Generate(seed.WithSeed(7)), ShouldResemble, ds)
		})

		Convey("Then ranks should be dense and points non-increasing", func() {
			for i, r := range ds.Rankings {
				So(r.Rank, ShouldEqual, int64(i+1))
				if i > 0 {
					So(r.Points, ShouldBeLessThan, ds.Rankings[i-1].Points)
				}
			}
			So(ds.Rankings[0].Movement, ShouldEqual, int64(0))
		})

		Convey("Then one competitor should be unranked", func() {
			So(len(ds.Competitors), ShouldEqual, len(ds.Rankings)+1)
		})

		Convey("Then synthetic competitors should extend the ranking", func() {
			more := seed.Generate(seed.WithSeed(7), seed.WithSyntheticCompetitors(5))
			So(len(more.Rankings), ShouldEqual, len(ds.Rankings)+5)
			So(more.Rankings[len(more.Rankings)-1].Rank, ShouldEqual, int64(len(ds.Rankings)+5))
		})
	})
}

func TestSeededCatalog(t *testing.T) {
	Convey("Given a seeded SQLite database", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "tennis.db")
		ds, err := seed.Seed(ctx, path)
		So(err, ShouldBeNil)

		cfg := config.New(ctx)
		cfg.DBDriver = config.DriverSQLite
		cfg.DBName = path
		exec, err := store.FromConfig(cfg)
		So(err, ShouldBeNil)

		run := func(label string) int {
			q, err := catalog.Default().Lookup(label)
			So(err, ShouldBeNil)
			res, err := exec.Execute(ctx, q.SQL)
			So(err, ShouldBeNil)
			return res.Len()
		}

		Convey("Then every canned question should run", func() {
			for _, q := range catalog.Default().All() {
				_, err := exec.Execute(ctx, q.SQL)
				So(err, ShouldBeNil)
			}
		})

		Convey("Then the answers should match the dataset", func() {
			So(run("3. Find all competitions of type 'doubles'"), ShouldEqual, 4)
			So(run("4. Competitions with no parent (top-level competitions)"), ShouldEqual, 13)
			So(run("5. All venues along with their associated complex name"), ShouldEqual, 7)
			So(run("8. Complexes that have more than one venue"), ShouldEqual, 2)
			So(run("10. All competitors with their rank and points"), ShouldEqual, len(ds.Rankings))
			So(run("11. Competitors ranked in the top 5"), ShouldEqual, 5)
			So(run("12. Competitors with no rank movement"), ShouldBeGreaterThanOrEqualTo, 1)
			So(run("14. Competitors with the highest points in the current week"), ShouldEqual, 1)
		})

		Convey("Then a failed write should keep the previous data", func() {
			bad := ds
			bad.Categories = append(append([]model.Category(nil), ds.Categories...), ds.Categories[0])
			err := seed.Write(ctx, path, bad)
			So(errors.Is(err, seed.ErrSeed), ShouldBeTrue)
			So(run("10. All competitors with their rank and points"), ShouldEqual, len(ds.Rankings))
			So(run("3. Find all competitions of type 'doubles'"), ShouldEqual, 4)
		})

		Convey("Then seeding again should replace the data", func() {
			_, err := seed.Seed(ctx, path, seed.WithSeed(99))
			So(err, ShouldBeNil)
			So(run("10. All competitors with their rank and points"), ShouldEqual, len(ds.Rankings))
		})
	})
}
