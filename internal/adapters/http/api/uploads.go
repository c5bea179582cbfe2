// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/okian/preserve/internal/adapters/resources"
)

// maxUploadBytes caps one resource upload at 32 MiB.
const maxUploadBytes = 32 << 20

// ResourceStore defines the interface for crew resource persistence.
type ResourceStore interface {
	Save(ctx context.Context, section, name string, r io.Reader) (*resources.Resource, error)
	List(ctx context.Context, section string) ([]resources.Resource, error)
}

// ResourcesHandler handles crew resource uploads and listings.
type ResourcesHandler struct {
	store ResourceStore
}

// NewResourcesHandler creates a new resources handler.
func NewResourcesHandler(store ResourceStore) *ResourcesHandler {
	return &ResourcesHandler{store: store}
}

// HandleResources dispatches /resources by method: GET lists stored
// uploads, POST accepts a multipart upload.
func (h *ResourcesHandler) HandleResources(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleUpload(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ResourcesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_resources"
	list, err := h.store.List(r.Context(), r.URL.Query().Get("section"))
	if err != nil {
		if errors.Is(err, resources.ErrUnknownSection) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ResourcesHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload_resource"

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	res, err := h.store.Save(r.Context(), r.FormValue("section"), header.Filename, file)
	if err != nil {
		if errors.Is(err, resources.ErrUnknownSection) || errors.Is(err, resources.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
