// Package urgency builds ordered worklists of records needing attention.
//
// The selectors take a read-only view of the classified set and return
// fresh slices; the input is never mutated.
package urgency

import (
	"sort"
	"time"

	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/internal/domain/dates"
	"github.com/okian/preserve/internal/domain/model"
)

// defaultDueSoonWindowDays is the forward horizon for near-term deadlines.
const defaultDueSoonWindowDays = 7

// Selector filters and orders classified records into worklists.
type Selector struct {
	windowDays int
}

// New creates a Selector with configuration options.
func New(opts ...Option) *Selector {
	s := &Selector{
		windowDays: defaultDueSoonWindowDays,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Urgent returns the merged worklist: overdue records plus records due
// within the window that are not complete. Ordered ascending by due date,
// unknown dates last, stable for ties.
func (s *Selector) Urgent(records []model.ClassifiedRecord, today time.Time) []model.ClassifiedRecord {
	horizon := s.horizon(today)
	return s.selectOrdered(records, func(r model.ClassifiedRecord) bool {
		return r.Category == classify.Overdue || dueSoon(r, horizon)
	})
}

// OverdueOnly returns only overdue records, in the same ordering.
func (s *Selector) OverdueOnly(records []model.ClassifiedRecord, today time.Time) []model.ClassifiedRecord {
	return s.selectOrdered(records, func(r model.ClassifiedRecord) bool {
		return r.Category == classify.Overdue
	})
}

// PendingOnly returns only pending-bid records, in the same ordering.
func (s *Selector) PendingOnly(records []model.ClassifiedRecord, today time.Time) []model.ClassifiedRecord {
	return s.selectOrdered(records, func(r model.ClassifiedRecord) bool {
		return r.Category == classify.PendingBid
	})
}

// DueSoonOnly returns records due within the window that are not complete.
// Membership may overlap OverdueOnly; the lists are independent views.
func (s *Selector) DueSoonOnly(records []model.ClassifiedRecord, today time.Time) []model.ClassifiedRecord {
	horizon := s.horizon(today)
	return s.selectOrdered(records, func(r model.ClassifiedRecord) bool {
		return dueSoon(r, horizon)
	})
}

func (s *Selector) horizon(today time.Time) time.Time {
	return dates.DayOf(today).AddDate(0, 0, s.windowDays)
}

func dueSoon(r model.ClassifiedRecord, horizon time.Time) bool {
	return r.Due.Known && !r.Due.Day.After(horizon) && r.Category != classify.Completed
}

func (s *Selector) selectOrdered(records []model.ClassifiedRecord, keep func(model.ClassifiedRecord) bool) []model.ClassifiedRecord {
	out := make([]model.ClassifiedRecord, 0)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	sortByDue(out)
	return out
}

// sortByDue orders ascending by due day with unknown dates last. The sort
// is stable so ties keep input order.
func sortByDue(records []model.ClassifiedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Due, records[j].Due
		switch {
		case a.Known && b.Known:
			return a.Day.Before(b.Day)
		case a.Known:
			return true
		default:
			return false
		}
	})
}
