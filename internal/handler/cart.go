package handler

import (
	"net/http"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/go-chi/chi/v5"
)

// CartHandler exposes the session's bag. Entries are only created through
// the customization flow; this handler reads and removes them.
type CartHandler struct {
	carts *cart.Manager
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
// Expected to be mounted inside the session middleware.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Delete("/items/{id}", h.Remove)
}

// --- Response types ---

type cartEntryResponse struct {
	BagID       string `json:"bag_id"`
	ItemID      string `json:"item_id"`
	DisplayName string `json:"display_name"`
	Quantity    int    `json:"quantity"`
	PriceDelta  string `json:"price_delta"`
}

func toCartEntryResponse(e cart.Entry) cartEntryResponse {
	return cartEntryResponse{
		BagID:       e.ID,
		ItemID:      e.ItemID,
		DisplayName: e.DisplayName,
		Quantity:    e.Quantity,
		PriceDelta:  e.PriceDelta.StringFixed(2),
	}
}

// --- Handlers ---

// List returns the session's bag entries in insertion order.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	entries := h.carts.Cart(r.Context(), sid).Entries()
	resp := make([]cartEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toCartEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Remove drops one entry by bag id. Removing an unknown id is a no-op,
// matching the store's semantics.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	h.carts.Cart(r.Context(), sid).Remove(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
