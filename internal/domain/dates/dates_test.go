package dates_test

import (
	"testing"
	"time"

	"github.com/okian/preserve/internal/domain/dates"
	. "github.com/smartystreets/goconvey/convey"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeEmptyTokens(t *testing.T) {
	Convey("Given a normalizer", t, func() {
		n := dates.New()

		Convey("When normalizing empty or placeholder values", func() {
			for _, raw := range []string{"", "   ", "none", "NONE", "NaN", "N/A", "na", "\tN/a "} {
				Convey("Then "+raw+" should be unknown", func() {
					So(n.Normalize(raw).Known, ShouldBeFalse)
				})
			}
		})
	})
}

func TestNormalizeExplicitFormats(t *testing.T) {
	Convey("Given a normalizer", t, func() {
		n := dates.New()

		Convey("When a slashed date can only be day-first", func() {
			d := n.Normalize("13/04/2025")

			Convey("Then the day-first layout wins", func() {
				So(d.Known, ShouldBeTrue)
				So(d.Day, ShouldEqual, day(2025, time.April, 13))
			})
		})

		Convey("When a two-digit-year slashed date is ambiguous", func() {
			d := n.Normalize("03/04/25")

			Convey("Then the first layout in the list that consumes it wins", func() {
				// day/month/year needs a four-digit year, so month/day/yy
				// is the first match.
				So(d.Known, ShouldBeTrue)
				So(d.Day, ShouldEqual, day(2025, time.March, 4))
			})
		})

		Convey("When a dashed four-digit-year date is ambiguous", func() {
			d := n.Normalize("03-04-2025")

			Convey("Then the day-month dashed layout wins", func() {
				So(d.Known, ShouldBeTrue)
				So(d.Day, ShouldEqual, day(2025, time.April, 3))
			})
		})

		Convey("When normalizing an ISO date", func() {
			d := n.Normalize("2025-03-04")

			Convey("Then it should resolve exactly", func() {
				So(d.Known, ShouldBeTrue)
				So(d.Day, ShouldEqual, day(2025, time.March, 4))
			})
		})

		Convey("When normalizing a written month date", func() {
			d := n.Normalize("Jan 5, 2025")

			Convey("Then it should resolve exactly", func() {
				So(d.Known, ShouldBeTrue)
				So(d.Day, ShouldEqual, day(2025, time.January, 5))
			})
		})
	})
}

func TestNormalizeFuzzyFallback(t *testing.T) {
	Convey("Given a normalizer with a fixed reference day", t, func() {
		ref := day(2025, time.June, 2) // a Monday
		n := dates.New(dates.WithReference(ref))

		Convey("When normalizing a long-form month name", func() {
			d := n.Normalize("April 5, 2025")

			Convey("Then the permissive parser should resolve it", func() {
				So(d.Known, ShouldBeTrue)
				So(d.Day, ShouldEqual, day(2025, time.April, 5))
			})
		})

		Convey("When normalizing a prose date", func() {
			d := n.Normalize("next friday")

			Convey("Then it should resolve to some Friday after the reference", func() {
				So(d.Known, ShouldBeTrue)
				So(d.Day.Weekday(), ShouldEqual, time.Friday)
				So(d.Day.After(ref), ShouldBeTrue)
			})
		})

		Convey("When normalizing garbage", func() {
			d := n.Normalize("call the vendor first")

			Convey("Then it should be unknown, not an error", func() {
				So(d.Known, ShouldBeFalse)
			})
		})

		Convey("When normalizing the same value twice", func() {
			first := n.Normalize("next friday")
			second := n.Normalize("next friday")

			Convey("Then the result should be deterministic", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestDueDateComparisons(t *testing.T) {
	Convey("Given due dates and a reference day", t, func() {
		today := day(2025, time.May, 10)

		Convey("When comparing a past due date", func() {
			d := dates.On(day(2025, time.May, 9))

			Convey("Then it is before today and on-or-before today", func() {
				So(d.Before(today), ShouldBeTrue)
				So(d.OnOrBefore(today), ShouldBeTrue)
			})
		})

		Convey("When comparing a same-day due date", func() {
			d := dates.On(today)

			Convey("Then it is not before today but is on-or-before", func() {
				So(d.Before(today), ShouldBeFalse)
				So(d.OnOrBefore(today), ShouldBeTrue)
			})
		})

		Convey("When comparing an unknown due date", func() {
			d := dates.Unknown()

			Convey("Then no comparison qualifies", func() {
				So(d.Before(today), ShouldBeFalse)
				So(d.OnOrBefore(today), ShouldBeFalse)
				So(d.String(), ShouldEqual, "unknown")
			})
		})

		Convey("When marshaling to JSON", func() {
			known, err := dates.On(day(2025, time.May, 9)).MarshalJSON()
			So(err, ShouldBeNil)
			unknown, err := dates.Unknown().MarshalJSON()
			So(err, ShouldBeNil)

			Convey("Then a known date is a plain day string and unknown is null", func() {
				So(string(known), ShouldEqual, `"2025-05-09"`)
				So(string(unknown), ShouldEqual, "null")
			})
		})
	})
}
