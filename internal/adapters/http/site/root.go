// Package site serves the embedded landing page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the landing page to mux. Only the exact root path is
// served; unknown paths stay 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /{$}", NewRootHandler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// RootHandler serves the landing page.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// ServeHTTP serves index.html for GET /.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
