// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	service "github.com/okian/preserve/internal/app"
	"github.com/okian/preserve/internal/domain/model"
)

// Urgent list selectors accepted by GET /urgent.
const (
	listAll     = "all"
	listOverdue = "overdue"
	listPending = "pending"
	listDueSoon = "due_soon"
)

// UrgentHandler handles urgent work-order requests.
type UrgentHandler struct {
	deps Dependencies
}

// NewUrgentHandler creates a new urgent handler.
func NewUrgentHandler(deps Dependencies) *UrgentHandler {
	return &UrgentHandler{deps: deps}
}

// HandleGetUrgent handles GET /urgent?list=X requests. The default list is
// the combined urgent view; overdue, pending and due_soon narrow it.
func (h *UrgentHandler) HandleGetUrgent(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_urgent"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	list := r.URL.Query().Get("list")
	if list == "" {
		list = listAll
	}
	pick, ok := listPicker(list)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pick(snap))
}

func listPicker(list string) (func(*service.Snapshot) []model.ClassifiedRecord, bool) {
	switch list {
	case listAll:
		return func(s *service.Snapshot) []model.ClassifiedRecord { return s.Urgent }, true
	case listOverdue:
		return func(s *service.Snapshot) []model.ClassifiedRecord { return s.Overdue }, true
	case listPending:
		return func(s *service.Snapshot) []model.ClassifiedRecord { return s.Pending }, true
	case listDueSoon:
		return func(s *service.Snapshot) []model.ClassifiedRecord { return s.DueSoon }, true
	}
	return nil, false
}
