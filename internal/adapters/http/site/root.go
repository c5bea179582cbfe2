// Package site handles the site root path.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the root route to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Send visitors landing on / to the dashboard
	mux.Handle("/", NewRootHandler())
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// ServeHTTP redirects GET / to the dashboard page. The "/" pattern is a
// catch-all on ServeMux, so any path no other route claimed lands here
// and gets a 404 instead of the redirect.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
