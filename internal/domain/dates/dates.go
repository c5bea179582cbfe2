// Package dates normalizes free-text due-date values into calendar days.
//
// Every value is parsed independently; the feed mixes human conventions
// row by row, so no format is ever inferred from one value and applied
// to the rest.
package dates

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/okian/preserve/pkg/metrics"
)

// DueDate is either a concrete calendar day or an explicit unknown.
// The zero value is unknown. Comparisons are at day granularity; the
// time-of-day and zone of the source value carry no meaning.
type DueDate struct {
	Day   time.Time `json:"day"`
	Known bool      `json:"known"`
}

// On returns a known DueDate for the calendar day of t.
func On(t time.Time) DueDate {
	return DueDate{Day: DayOf(t), Known: true}
}

// Unknown returns the explicit unknown marker.
func Unknown() DueDate {
	return DueDate{}
}

// DayOf truncates t to its calendar day in UTC.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Before reports whether the due day is strictly before the calendar day
// of t. Unknown dates are never before anything.
func (d DueDate) Before(t time.Time) bool {
	return d.Known && d.Day.Before(DayOf(t))
}

// OnOrBefore reports whether the due day is on or before the calendar day
// of t. Unknown dates never qualify.
func (d DueDate) OnOrBefore(t time.Time) bool {
	return d.Known && !d.Day.After(DayOf(t))
}

// String renders the day as YYYY-MM-DD, or "unknown".
func (d DueDate) String() string {
	if !d.Known {
		return "unknown"
	}
	return d.Day.Format("2006-01-02")
}

// MarshalJSON renders a known date as "YYYY-MM-DD" and unknown as null.
func (d DueDate) MarshalJSON() ([]byte, error) {
	if !d.Known {
		return []byte("null"), nil
	}
	return json.Marshal(d.Day.Format("2006-01-02"))
}

// emptyTokens normalize to unknown without attempting a parse.
var emptyTokens = map[string]struct{}{
	"":     {},
	"none": {},
	"nan":  {},
	"n/a":  {},
	"na":   {},
}

// layouts is tried in order; the first layout that consumes the entire
// value wins. Two-part numeric dates are ambiguous (03/04/25), so this
// order IS the disambiguation policy. Unpadded layout digits accept both
// padded and unpadded input.
var layouts = []string{
	"2/1/2006",    // day/month/year
	"1/2/06",      // month/day, two-digit year
	"1/2/2006",    // month/day, four-digit year
	"2-1-06",      // day-month, two-digit year
	"2-1-2006",    // day-month, four-digit year
	"Jan 2, 2006", // Mon DD, YYYY
	"2006-01-02",  // ISO
}

// Normalizer parses heterogeneous due-date strings. Prose values such as
// "next Friday" resolve against a fixed reference day set at construction,
// so Normalize itself never reads ambient time.
type Normalizer struct {
	ref   time.Time
	fuzzy *when.Parser
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		ref: time.Now(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(n)
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	n.fuzzy = w

	return n
}

// Normalize parses raw into a DueDate. It is deterministic for a given
// raw value and normalizer instance, never errors and never panics; every
// failure is the explicit unknown marker.
func (n *Normalizer) Normalize(raw string) DueDate {
	value := strings.TrimSpace(raw)
	if _, skip := emptyTokens[strings.ToLower(value)]; skip {
		return Unknown()
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return On(t)
		}
	}

	if d, ok := n.fuzzyParse(value); ok {
		metrics.RecordDateParseFallback()
		return d
	}

	metrics.RecordDateParseFailure()
	return Unknown()
}

// fuzzyParse runs the permissive parsers. dateparse panics on some garbage
// inputs, so the fallback path swallows panics as parse failures.
func (n *Normalizer) fuzzyParse(value string) (d DueDate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d, ok = Unknown(), false
		}
	}()

	if t, err := dateparse.ParseAny(value); err == nil {
		return On(t), true
	}

	if res, err := n.fuzzy.Parse(value, n.ref); err == nil && res != nil {
		return On(res.Time), true
	}

	return Unknown(), false
}
