// Package api provides HTTP API handlers for the photo wall host.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ikeee/Photos-Wall-3D/internal/gallery"
)

// ItemsHandler serves the gallery item listing consumed by the render
// client at startup.
type ItemsHandler struct {
	items func() []gallery.Item
}

// NewItemsHandler creates an ItemsHandler over an item source.
func NewItemsHandler(items func() []gallery.Item) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// ServeHTTP implements the http.Handler interface.
func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items := h.items()
	if items == nil {
		items = []gallery.Item{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"items": items,
		"count": len(items),
	})
}
