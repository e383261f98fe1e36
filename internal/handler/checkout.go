package handler

import (
	"errors"
	"net/http"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/checkout"
	"github.com/go-chi/chi/v5"
)

// CheckoutHandler serves the order summary and the simulated submit.
type CheckoutHandler struct {
	carts   *cart.Manager
	catalog *catalog.Catalog
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(carts *cart.Manager, c *catalog.Catalog) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, catalog: c}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
// Expected to be mounted inside the session middleware.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Summary)
	r.Post("/", h.Submit)
}

type submitResponse struct {
	Message string           `json:"message"`
	Summary checkout.Summary `json:"summary"`
}

// Summary recomputes and returns the session's checkout state.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	bag := h.carts.Cart(r.Context(), sid)
	writeJSON(w, http.StatusOK, checkout.New(bag, h.catalog).Recompute())
}

// Submit completes the simulated checkout: no payment is made, the bag is
// cleared, and the emptied summary is returned alongside the confirmation.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	bag := h.carts.Cart(r.Context(), sid)
	summary, err := checkout.New(bag, h.catalog).Submit(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": checkout.EmptyBagMessage})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Message: checkout.ThankYouMessage,
		Summary: summary,
	})
}
