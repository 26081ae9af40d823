// Package handler provides HTTP request handlers.
package handler

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed web
var webFS embed.FS

// Handler serves the landing page, static assets and fallback responses.
type Handler struct {
	index  []byte
	static http.Handler
}

// New creates a new Handler instance backed by the embedded web assets.
func New() *Handler {
	index, err := webFS.ReadFile("web/index.html")
	if err != nil {
		panic("handler: embedded index.html missing: " + err.Error())
	}
	public, err := fs.Sub(webFS, "web/public")
	if err != nil {
		panic("handler: embedded public dir missing: " + err.Error())
	}
	return &Handler{
		index:  index,
		static: http.StripPrefix("/public/", http.FileServer(http.FS(public))),
	}
}

// Index serves the HTML form page.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.index)
}

// Static serves embedded assets.
// GET /public/*
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "Not found",
	}
	writeJSON(w, http.StatusNotFound, response)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "Method not allowed",
	}
	writeJSON(w, http.StatusMethodNotAllowed, response)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Debug("response encode failed", slog.String("error", err.Error()))
	}
}
