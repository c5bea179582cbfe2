package cache_test

import (
	"testing"
	"time"

	"github.com/okian/preserve/internal/adapters/cache"
	"github.com/okian/preserve/internal/adapters/feed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCache(t *testing.T) {
	Convey("Given a cache with a controllable clock", t, func() {
		now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		c := cache.New(cache.WithTTL(5*time.Minute), cache.WithClock(clock))
		table := feed.Empty("Property", "Status")

		Convey("When nothing has been stored", func() {
			_, _, ok := c.Get("updates")

			Convey("Then the lookup misses", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a table is stored", func() {
			c.Put("updates", table)

			Convey("Then it is served within the TTL", func() {
				got, fetchedAt, ok := c.Get("updates")
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, table)
				So(fetchedAt.Equal(now), ShouldBeTrue)
			})

			Convey("And it stops being served once the TTL elapses", func() {
				now = now.Add(5 * time.Minute)
				_, _, ok := c.Get("updates")
				So(ok, ShouldBeFalse)
			})

			Convey("And a refreshed entry resets the clock", func() {
				now = now.Add(4 * time.Minute)
				c.Put("updates", table)
				now = now.Add(4 * time.Minute)
				_, _, ok := c.Get("updates")
				So(ok, ShouldBeTrue)
			})

			Convey("And other keys stay independent", func() {
				_, _, ok := c.Get("properties")
				So(ok, ShouldBeFalse)
			})
		})
	})
}
