package urgency_test

import (
	"testing"
	"time"

	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/internal/domain/dates"
	"github.com/okian/preserve/internal/domain/model"
	"github.com/okian/preserve/internal/domain/urgency"
	. "github.com/smartystreets/goconvey/convey"
)

func record(id string, category classify.Category, due dates.DueDate) model.ClassifiedRecord {
	return model.ClassifiedRecord{
		WorkOrderUpdate: model.WorkOrderUpdate{PropertyID: id},
		Due:             due,
		Category:        category,
	}
}

func TestUrgentSelection(t *testing.T) {
	Convey("Given records around the due-soon window", t, func() {
		today := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
		overdue := record("overdue", classify.Overdue, dates.On(today.AddDate(0, 0, -3)))
		dueToday := record("due-today", classify.Other, dates.On(today))
		dueSix := record("due-6d", classify.InProgress, dates.On(today.AddDate(0, 0, 6)))
		dueEight := record("due-8d", classify.Other, dates.On(today.AddDate(0, 0, 8)))
		records := []model.ClassifiedRecord{dueEight, dueSix, dueToday, overdue}

		Convey("When selecting the urgent worklist", func() {
			got := urgency.New().Urgent(records, today)

			Convey("Then it contains overdue, due-today and due-in-6, ordered ascending", func() {
				So(len(got), ShouldEqual, 3)
				So(got[0].PropertyID, ShouldEqual, "overdue")
				So(got[1].PropertyID, ShouldEqual, "due-today")
				So(got[2].PropertyID, ShouldEqual, "due-6d")
			})

			Convey("And the record due in 8 days is excluded", func() {
				for _, r := range got {
					So(r.PropertyID, ShouldNotEqual, "due-8d")
				}
			})
		})

		Convey("When a completed record sits inside the window", func() {
			done := record("done", classify.Completed, dates.On(today.AddDate(0, 0, 2)))
			got := urgency.New().Urgent(append(records, done), today)

			Convey("Then completion excludes it", func() {
				for _, r := range got {
					So(r.PropertyID, ShouldNotEqual, "done")
				}
			})
		})

		Convey("When an overdue record has no usable date", func() {
			noDate := record("asserted-overdue", classify.Overdue, dates.Unknown())
			got := urgency.New().Urgent(append(records, noDate), today)

			Convey("Then it is included and sorts last", func() {
				So(len(got), ShouldEqual, 4)
				So(got[len(got)-1].PropertyID, ShouldEqual, "asserted-overdue")
			})
		})
	})
}

func TestSubSelectors(t *testing.T) {
	Convey("Given a mixed classified set", t, func() {
		today := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
		records := []model.ClassifiedRecord{
			record("p1", classify.Overdue, dates.On(today.AddDate(0, 0, -1))),
			record("p2", classify.PendingBid, dates.Unknown()),
			record("p3", classify.PendingBid, dates.On(today.AddDate(0, 0, 2))),
			record("p4", classify.Other, dates.On(today.AddDate(0, 0, 5))),
			record("p5", classify.Completed, dates.On(today.AddDate(0, 0, 1))),
		}
		sel := urgency.New()

		Convey("When selecting overdue only", func() {
			got := sel.OverdueOnly(records, today)

			Convey("Then only overdue records remain", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].PropertyID, ShouldEqual, "p1")
			})
		})

		Convey("When selecting pending only", func() {
			got := sel.PendingOnly(records, today)

			Convey("Then pending records come dated-first, unknown last", func() {
				So(len(got), ShouldEqual, 2)
				So(got[0].PropertyID, ShouldEqual, "p3")
				So(got[1].PropertyID, ShouldEqual, "p2")
			})
		})

		Convey("When selecting due-soon only", func() {
			got := sel.DueSoonOnly(records, today)

			Convey("Then overdue-by-date records may overlap the list", func() {
				So(len(got), ShouldEqual, 3)
				So(got[0].PropertyID, ShouldEqual, "p1")
				So(got[1].PropertyID, ShouldEqual, "p3")
				So(got[2].PropertyID, ShouldEqual, "p4")
			})
		})
	})
}

func TestOrderingStability(t *testing.T) {
	Convey("Given records sharing a due date", t, func() {
		today := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
		due := dates.On(today.AddDate(0, 0, 1))
		records := []model.ClassifiedRecord{
			record("first", classify.Other, due),
			record("second", classify.Other, due),
			record("third", classify.Other, due),
		}

		Convey("When selecting the urgent worklist", func() {
			got := urgency.New().Urgent(records, today)

			Convey("Then ties keep input order", func() {
				So(len(got), ShouldEqual, 3)
				So(got[0].PropertyID, ShouldEqual, "first")
				So(got[1].PropertyID, ShouldEqual, "second")
				So(got[2].PropertyID, ShouldEqual, "third")
			})
		})
	})
}
