// Package classify assigns an operational category to a work-order update.
package classify

import (
	"strings"
	"time"

	"github.com/okian/preserve/internal/domain/dates"
)

// Category is the closed set of operational states derived per record.
// Assignment is a pure function of (status text, normalized due date,
// today); re-evaluating a record on a later day may legitimately change
// the answer, since overdue is relative to observation time.
type Category string

const (
	Completed  Category = "completed"
	Overdue    Category = "overdue"
	InProgress Category = "in_progress"
	PendingBid Category = "pending_bid"
	Other      Category = "other"
)

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{Completed, Overdue, InProgress, PendingBid, Other}
}

// Classification vocabularies. Matches are case-insensitive substring
// tests with no word-boundary checks; a vocabulary word hit inside a
// longer word still matches, and the feed's phrasing relies on that.
var (
	overdueWords    = []string{"overdue", "late"}
	completionWords = []string{"complete", "submitted", "payment", "finished", "done", "received"}
	progressWords   = []string{
		"ongoing", "progress", "will be", "try to", "today", "tomorrow",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}
	pendingWords = []string{"waiting", "pending", "bid", "pricing", "activation"}
)

// rule pairs a predicate with the category it assigns.
type rule struct {
	category Category
	match    func(status string, due dates.DueDate, today time.Time) bool
}

// rules is evaluated top-down and the first match wins. The order is the
// contract: an explicit overdue assertion in the text beats everything,
// completion language beats a stale due date (work can finish after its
// deadline), and only then does the date comparison decide.
var rules = []rule{
	{Overdue, func(s string, _ dates.DueDate, _ time.Time) bool {
		return containsAny(s, overdueWords)
	}},
	{Completed, func(s string, _ dates.DueDate, _ time.Time) bool {
		return containsAny(s, completionWords)
	}},
	{Overdue, func(_ string, due dates.DueDate, today time.Time) bool {
		return due.Before(today)
	}},
	{InProgress, func(s string, _ dates.DueDate, _ time.Time) bool {
		return containsAny(s, progressWords)
	}},
	{PendingBid, func(s string, _ dates.DueDate, _ time.Time) bool {
		return containsAny(s, pendingWords)
	}},
}

// Classify maps free-text status plus a normalized due date to exactly one
// category. It never fails; an unknown due date simply cannot satisfy the
// date rule and falls through.
func Classify(statusText string, due dates.DueDate, today time.Time) Category {
	status := strings.ToLower(strings.TrimSpace(statusText))
	for _, r := range rules {
		if r.match(status, due, today) {
			return r.category
		}
	}
	return Other
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
