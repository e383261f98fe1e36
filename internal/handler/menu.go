package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/menu"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the catalog and the filtered menu views.
type MenuHandler struct {
	catalog *catalog.Catalog
	engine  *menu.Engine
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(c *catalog.Catalog, engine *menu.Engine) *MenuHandler {
	return &MenuHandler{catalog: c, engine: engine}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Catalog)
	r.Get("/view", h.View)
}

// --- Response types ---

type menuItemResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Kind        catalog.Kind `json:"kind"`
}

type catalogResponse struct {
	Icons      map[string]string  `json:"icons"`
	Categories []string           `json:"categories"`
	Items      []menuItemResponse `json:"items"`
}

func toMenuItemResponse(item catalog.Item) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.StringFixed(2),
		Category:    item.Category,
		Description: item.Description,
		Image:       item.Image,
		Kind:        item.Kind,
	}
}

// --- Handlers ---

// Catalog returns the full menu: icon map, category order, and items.
func (h *MenuHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{
		Icons:      h.catalog.Icons,
		Categories: h.catalog.Categories,
		Items:      make([]menuItemResponse, len(h.catalog.Items)),
	}
	for i, item := range h.catalog.Items {
		resp.Items[i] = toMenuItemResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// View returns the rendered item view for the active filter. A `q` query
// searches across all items (the page pre-fills it from its ?search
// parameter); a `category` query scopes to one category; neither renders
// the aggregate view.
func (h *MenuHandler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip := q.Get("skip") == "true" || q.Get("skip") == "1"

	var (
		items     []catalog.Item
		aggregate bool
	)
	switch {
	case q.Has("q"):
		items = menu.Search(h.catalog.Items, q.Get("q"))
		aggregate = true
		skip = true
	case q.Has("category") && q.Get("category") != catalog.AllKey:
		items = h.catalog.ByCategory(q.Get("category"))
	default:
		items = h.catalog.Items
		aggregate = true
	}

	view, err := h.engine.Render(items, aggregate, skip)
	if err != nil {
		if errors.Is(err, menu.ErrRenderInFlight) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "render in flight"})
			return
		}
		log.Printf("ERROR: render menu view: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, view)
}
