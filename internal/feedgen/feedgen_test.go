package feedgen_test

import (
	"testing"
	"time"

	"github.com/okian/preserve/internal/adapters/feed"
	"github.com/okian/preserve/internal/feedgen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGeneratedSheets(t *testing.T) {
	Convey("Given a generator config", t, func() {
		cfg := &feedgen.Config{
			NumRows: 25,
			Seed:    time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			BasePoint: feedgen.BasePoint{
				Latitude:  39.5,
				Longitude: -84.3,
			},
		}

		Convey("When rendering the updates sheet", func() {
			rows := feedgen.UpdatesCSV(cfg)

			Convey("Then the header matches the expected feed columns", func() {
				So(rows[0], ShouldResemble, feed.UpdateColumns())
				So(len(rows), ShouldEqual, 26)
			})

			Convey("And every row has the full column count", func() {
				for _, row := range rows[1:] {
					So(len(row), ShouldEqual, len(feed.UpdateColumns()))
				}
			})
		})

		Convey("When rendering the properties sheet", func() {
			rows := feedgen.PropertiesCSV(cfg)

			Convey("Then the header matches the expected feed columns", func() {
				So(rows[0], ShouldResemble, feed.PropertyColumns())
				So(len(rows), ShouldEqual, 26)
			})
		})
	})
}
