// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/internal/domain/model"
)

// RecordsHandler handles classified record requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleGetRecords handles GET /records?category=X requests. Without a
// category filter every classified row comes back in feed order.
func (h *RecordsHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	category := classify.Category(r.URL.Query().Get("category"))
	if category != "" && !validCategory(category) {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	records := snap.Records
	if category != "" {
		filtered := make([]model.ClassifiedRecord, 0, len(records))
		for _, rec := range records {
			if rec.Category == category {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	writeJSON(w, http.StatusOK, records)
}

func validCategory(c classify.Category) bool {
	for _, known := range classify.Categories() {
		if c == known {
			return true
		}
	}
	return false
}
