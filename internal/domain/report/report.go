// Package report computes aggregate KPIs over a classified record set.
//
// All outputs are read-only snapshots computed fresh from the input slice;
// there is no incremental update path.
package report

import (
	"math"
	"time"

	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/internal/domain/dates"
	"github.com/okian/preserve/internal/domain/model"
)

// Default aggregation constants.
const (
	defaultDueSoonWindowDays = 7
	noCrew                   = "N/A"
)

// CrewCount is a crew name with its assigned record count.
type CrewCount struct {
	Crew  string `json:"crew"`
	Count int    `json:"count"`
}

// DueWindowCounts buckets records by how their due date relates to the
// observation day.
type DueWindowCounts struct {
	PastDue int `json:"past_due"`
	DueSoon int `json:"due_soon"`
	Later   int `json:"later"`
	Unknown int `json:"unknown"`
}

// Summary holds the aggregate metrics for one classified record set.
type Summary struct {
	Total             int                       `json:"total"`
	CountsByCategory  map[classify.Category]int `json:"counts_by_category"`
	CompletionRate    float64                   `json:"completion_rate"`
	DistinctCrewCount int                       `json:"distinct_crew_count"`
	TopCrew           string                    `json:"top_crew"`
	TopCrewCount      int                       `json:"top_crew_count"`
	DueSoonCount      int                       `json:"due_soon_count"`
	CrewCounts        []CrewCount               `json:"crew_counts"`
	DueWindows        DueWindowCounts           `json:"due_windows"`
}

// Aggregator computes summaries with a configurable due-soon window.
type Aggregator struct {
	windowDays int
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		windowDays: defaultDueSoonWindowDays,
	}

	// Apply all options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Summarize computes the aggregate metrics for records as observed on
// today. The input slice is not mutated.
func (a *Aggregator) Summarize(records []model.ClassifiedRecord, today time.Time) Summary {
	s := Summary{
		Total:            len(records),
		CountsByCategory: make(map[classify.Category]int, len(classify.Categories())),
		TopCrew:          noCrew,
	}
	for _, c := range classify.Categories() {
		s.CountsByCategory[c] = 0
	}

	horizon := dates.DayOf(today).AddDate(0, 0, a.windowDays)

	// Crew names compare by exact equality; no fuzzy merging of variants.
	crewCounts := make(map[string]int)
	crewOrder := make([]string, 0)

	for _, r := range records {
		s.CountsByCategory[r.Category]++

		if crew := r.CrewName; crew != "" {
			if _, seen := crewCounts[crew]; !seen {
				crewOrder = append(crewOrder, crew)
			}
			crewCounts[crew]++
		}

		switch {
		case !r.Due.Known:
			s.DueWindows.Unknown++
		case r.Due.Before(today):
			s.DueWindows.PastDue++
		case !r.Due.Day.After(horizon):
			s.DueWindows.DueSoon++
		default:
			s.DueWindows.Later++
		}

		if r.Due.Known && !r.Due.Day.After(horizon) && r.Category != classify.Completed {
			s.DueSoonCount++
		}
	}

	if s.Total > 0 {
		s.CompletionRate = round1(float64(s.CountsByCategory[classify.Completed]) / float64(s.Total) * 100)
	}

	s.DistinctCrewCount = len(crewCounts)
	s.CrewCounts = make([]CrewCount, 0, len(crewOrder))
	for _, crew := range crewOrder {
		count := crewCounts[crew]
		s.CrewCounts = append(s.CrewCounts, CrewCount{Crew: crew, Count: count})
		// Strictly-greater keeps the first-encountered crew on ties.
		if count > s.TopCrewCount {
			s.TopCrew = crew
			s.TopCrewCount = count
		}
	}

	return s
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
