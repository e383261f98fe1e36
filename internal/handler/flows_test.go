package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/handler"
	"github.com/gameday-grill/web/internal/order"
	"github.com/gameday-grill/web/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Helpers ---

func setupFlowRouter(cat *catalog.Catalog, carts *cart.Manager) *chi.Mux {
	flows := handler.NewFlowHandler(carts, cat)
	bags := handler.NewCartHandler(carts)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware)
		r.Route("/flows", flows.RegisterRoutes)
		r.Route("/cart", bags.RegisterRoutes)
	})
	return r
}

func beginFlow(t *testing.T, router http.Handler, sid, itemID string) map[string]interface{} {
	t.Helper()
	rr := doSessionRequest(t, router, "POST", "/flows", map[string]string{"item_id": itemID}, sid)
	if rr.Code != http.StatusCreated {
		t.Fatalf("begin flow: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	return decodeResponse(t, rr)
}

// --- Begin tests ---

func TestFlowBegin_UnknownItem(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)

	rr := doSessionRequest(t, router, "POST", "/flows", map[string]string{"item_id": "nope"}, uuid.NewString())

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestFlowBegin_StepPerKind(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	tests := []struct {
		itemID string
		step   string
	}{
		{"soda", "SIZE"},
		{"burger", "MEAL"},
		{"fries", "QUANTITY"},
	}
	for _, tc := range tests {
		resp := beginFlow(t, router, sid, tc.itemID)
		if resp["step"] != tc.step {
			t.Errorf("%s: step got %v, want %s", tc.itemID, resp["step"], tc.step)
		}
	}
}

// --- Answer tests ---

func TestFlowDrink_FullPath(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "soda")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]string{"size": "medium"}, sid)
	if rr.Code != http.StatusOK {
		t.Fatalf("size answer: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp = decodeResponse(t, rr)
	if resp["step"] != "QUANTITY" {
		t.Fatalf("step after size: got %v, want QUANTITY", resp["step"])
	}

	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 2}, sid)
	if rr.Code != http.StatusOK {
		t.Fatalf("quantity answer: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp = decodeResponse(t, rr)
	entry := resp["entry"].(map[string]interface{})
	if entry["display_name"] != "Soda (medium)" {
		t.Errorf("display_name: got %v, want Soda (medium)", entry["display_name"])
	}
	if entry["price_delta"] != "0.25" {
		t.Errorf("price_delta: got %v, want 0.25", entry["price_delta"])
	}
	if entry["quantity"] != float64(2) {
		t.Errorf("quantity: got %v, want 2", entry["quantity"])
	}

	// The flow is retired once the entry lands in the bag.
	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 1}, sid)
	if rr.Code != http.StatusNotFound {
		t.Errorf("retired flow: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestFlowDrink_UnknownSize(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "soda")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]string{"size": "venti"}, sid)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestFlowMeal_Upgrade(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "burger")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]bool{"meal": true}, sid)
	if rr.Code != http.StatusOK {
		t.Fatalf("meal answer: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp = decodeResponse(t, rr)
	if resp["step"] != "SIDES" {
		t.Fatalf("step after meal: got %v, want SIDES", resp["step"])
	}
	options := resp["side_options"].([]interface{})
	if len(options) != 2 || options[0] != "Fries" || options[1] != "Coleslaw" {
		t.Fatalf("side_options: got %v", options)
	}

	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer",
		map[string]string{"side1": "Fries", "side2": "Coleslaw"}, sid)
	if rr.Code != http.StatusOK {
		t.Fatalf("sides answer: got %d; body: %s", rr.Code, rr.Body.String())
	}

	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 1}, sid)
	if rr.Code != http.StatusOK {
		t.Fatalf("quantity answer: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp = decodeResponse(t, rr)
	entry := resp["entry"].(map[string]interface{})
	if entry["display_name"] != "Test Burger (Meal: Fries, Coleslaw)" {
		t.Errorf("display_name: got %v", entry["display_name"])
	}
	if entry["price_delta"] != "4.00" {
		t.Errorf("price_delta: got %v, want 4.00", entry["price_delta"])
	}
}

func TestFlowMeal_Declined(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "burger")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]bool{"meal": false}, sid)
	resp = decodeResponse(t, rr)
	if resp["step"] != "QUANTITY" {
		t.Fatalf("step after declining: got %v, want QUANTITY", resp["step"])
	}

	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 1}, sid)
	resp = decodeResponse(t, rr)
	entry := resp["entry"].(map[string]interface{})
	if entry["display_name"] != "Test Burger" {
		t.Errorf("display_name: got %v, want Test Burger", entry["display_name"])
	}
	if entry["price_delta"] != "0.00" {
		t.Errorf("price_delta: got %v, want 0.00", entry["price_delta"])
	}
}

func TestFlowQuantity_RejectedThenRetried(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "fries")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 0}, sid)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("zero quantity: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	// A rejected quantity leaves the flow open for a corrected answer.
	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 3}, sid)
	if rr.Code != http.StatusOK {
		t.Fatalf("retried quantity: got %d; body: %s", rr.Code, rr.Body.String())
	}
}

func TestFlowQuantity_ClampsToMax(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "fries")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 99}, sid)
	resp = decodeResponse(t, rr)
	entry := resp["entry"].(map[string]interface{})
	if entry["quantity"] != float64(order.MaxQuantity) {
		t.Errorf("quantity: got %v, want %d", entry["quantity"], order.MaxQuantity)
	}
}

func TestFlowQuantity_FullBag(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	bag := carts.Cart(context.Background(), sid)
	for i := 0; i < cart.MaxEntries; i++ {
		if _, err := bag.Add(context.Background(), "fries", "Fries", 1, decimal.Zero); err != nil {
			t.Fatalf("seed bag: %v", err)
		}
	}

	resp := beginFlow(t, router, sid, "fries")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 1}, sid)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}
	resp = decodeResponse(t, rr)
	if resp["error"] != order.CartFullMessage {
		t.Errorf("error: got %v", resp["error"])
	}
}

// --- Cancel and isolation tests ---

func TestFlowCancel(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)
	sid := uuid.NewString()

	resp := beginFlow(t, router, sid, "fries")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "DELETE", "/flows/"+flowID, nil, sid)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("cancel: got %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 1}, sid)
	if rr.Code != http.StatusNotFound {
		t.Errorf("answer after cancel: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	// Abandoning the flow never touched the bag.
	rr = doSessionRequest(t, router, "GET", "/cart", nil, sid)
	if entries := decodeListResponse(t, rr); len(entries) != 0 {
		t.Errorf("bag after cancel: got %d entries, want 0", len(entries))
	}
}

func TestFlowAnswer_OtherSession(t *testing.T) {
	cat := newTestCatalog(t)
	carts := cart.NewManager(cart.NewMemoryStore())
	router := setupFlowRouter(cat, carts)

	resp := beginFlow(t, router, uuid.NewString(), "fries")
	flowID := resp["flow_id"].(string)

	rr := doSessionRequest(t, router, "POST", "/flows/"+flowID+"/answer", map[string]int{"quantity": 1}, uuid.NewString())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
