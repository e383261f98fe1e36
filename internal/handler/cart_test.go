package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/handler"
	"github.com/gameday-grill/web/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Helpers ---

func setupCartRouter(carts *cart.Manager) *chi.Mux {
	h := handler.NewCartHandler(carts)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware)
		r.Route("/cart", h.RegisterRoutes)
	})
	return r
}

// --- List tests ---

func TestCartList_Empty(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupCartRouter(carts)
	sid := uuid.NewString()

	rr := doSessionRequest(t, router, "GET", "/cart", nil, sid)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeListResponse(t, rr)
	if len(resp) != 0 {
		t.Errorf("expected empty bag, got %d entries", len(resp))
	}
}

func TestCartList_Entries(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupCartRouter(carts)
	sid := uuid.NewString()

	bag := carts.Cart(context.Background(), sid)
	entry, err := bag.Add(context.Background(), "soda", "Soda (large)", 2, decimal.RequireFromString("0.5"))
	if err != nil {
		t.Fatalf("seed bag: %v", err)
	}

	rr := doSessionRequest(t, router, "GET", "/cart", nil, sid)

	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("entries: got %d, want 1", len(resp))
	}
	got := resp[0]
	if got["bag_id"] != entry.ID {
		t.Errorf("bag_id: got %v, want %s", got["bag_id"], entry.ID)
	}
	if got["item_id"] != "soda" {
		t.Errorf("item_id: got %v, want soda", got["item_id"])
	}
	if got["display_name"] != "Soda (large)" {
		t.Errorf("display_name: got %v", got["display_name"])
	}
	if got["quantity"] != float64(2) {
		t.Errorf("quantity: got %v, want 2", got["quantity"])
	}
	if got["price_delta"] != "0.50" {
		t.Errorf("price_delta: got %v, want 0.50", got["price_delta"])
	}
}

func TestCartList_SessionIsolation(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupCartRouter(carts)
	sidA := uuid.NewString()
	sidB := uuid.NewString()

	if _, err := carts.Cart(context.Background(), sidA).Add(context.Background(), "fries", "Fries", 1, decimal.Zero); err != nil {
		t.Fatalf("seed bag: %v", err)
	}

	rr := doSessionRequest(t, router, "GET", "/cart", nil, sidB)

	resp := decodeListResponse(t, rr)
	if len(resp) != 0 {
		t.Errorf("expected the other session's bag to be empty, got %d entries", len(resp))
	}
}

// --- Remove tests ---

func TestCartRemove(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupCartRouter(carts)
	sid := uuid.NewString()

	bag := carts.Cart(context.Background(), sid)
	first, _ := bag.Add(context.Background(), "fries", "Fries", 1, decimal.Zero)
	second, _ := bag.Add(context.Background(), "soda", "Soda (small)", 1, decimal.Zero)

	rr := doSessionRequest(t, router, "DELETE", "/cart/items/"+first.ID, nil, sid)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = doSessionRequest(t, router, "GET", "/cart", nil, sid)
	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("entries after remove: got %d, want 1", len(resp))
	}
	if resp[0]["bag_id"] != second.ID {
		t.Errorf("surviving entry: got %v, want %s", resp[0]["bag_id"], second.ID)
	}
}

func TestCartRemove_UnknownID(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupCartRouter(carts)
	sid := uuid.NewString()

	bag := carts.Cart(context.Background(), sid)
	bag.Add(context.Background(), "fries", "Fries", 1, decimal.Zero)

	rr := doSessionRequest(t, router, "DELETE", "/cart/items/nope", nil, sid)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	if bag.Len() != 1 {
		t.Errorf("bag length: got %d, want 1", bag.Len())
	}
}
