// Package model contains domain models passed between layers.
package model

import (
	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/internal/domain/dates"
)

// WorkOrderUpdate is one row of the status/updates feed, as entered by a
// human. PropertyID is not unique across the feed; duplicate rows are
// distinct entries, never merged.
type WorkOrderUpdate struct {
	PropertyID string `json:"property_id"`
	Details    string `json:"details"`
	CrewName   string `json:"crew_name"`
	DueDateRaw string `json:"due_date_raw"`
	StatusText string `json:"status_text"`
	Reason     string `json:"reason"`
}

// ClassifiedRecord pairs an update with its derived state for one refresh
// cycle. The set is rebuilt wholesale on every refresh and never persisted.
type ClassifiedRecord struct {
	WorkOrderUpdate
	Due      dates.DueDate     `json:"due"`
	Category classify.Category `json:"category"`
}

// Property is one row of the geocoded property feed, used by the map view.
type Property struct {
	WONumber         string  `json:"wo_number"`
	Address          string  `json:"address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Status           string  `json:"status"`
	Vendor           string  `json:"vendor"`
	WOType           string  `json:"wo_type"`
	DueDate          string  `json:"due_date"`
	CompleteDate     string  `json:"complete_date"`
	Notes            string  `json:"notes"`
	DetailedServices string  `json:"detailed_services"`
	AttachPhotos     string  `json:"attach_photos"`
}
