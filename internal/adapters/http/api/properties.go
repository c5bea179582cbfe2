// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// PropertiesHandler handles geocoded property requests.
type PropertiesHandler struct {
	deps Dependencies
}

// NewPropertiesHandler creates a new properties handler.
func NewPropertiesHandler(deps Dependencies) *PropertiesHandler {
	return &PropertiesHandler{deps: deps}
}

// HandleGetProperties handles GET /properties requests.
func (h *PropertiesHandler) HandleGetProperties(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_properties"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap.Properties)
}
