package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/order"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FlowHandler drives the add-to-bag customization flow over HTTP: one
// request starts a flow, each answer advances it one step, and closing it
// without finishing leaves the bag untouched.
type FlowHandler struct {
	carts   *cart.Manager
	catalog *catalog.Catalog

	mu    sync.Mutex
	flows map[uuid.UUID]*activeFlow
}

type activeFlow struct {
	flow      *order.Flow
	sessionID string
}

// NewFlowHandler creates a new FlowHandler.
func NewFlowHandler(carts *cart.Manager, c *catalog.Catalog) *FlowHandler {
	return &FlowHandler{
		carts:   carts,
		catalog: c,
		flows:   make(map[uuid.UUID]*activeFlow),
	}
}

// RegisterRoutes registers flow endpoints on the given Chi router.
// Expected to be mounted inside the session middleware.
func (h *FlowHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Begin)
	r.Post("/{id}/answer", h.Answer)
	r.Delete("/{id}", h.Cancel)
}

// --- Request / Response types ---

type beginFlowRequest struct {
	ItemID string `json:"item_id"`
}

type answerFlowRequest struct {
	Size     string `json:"size"`
	Meal     *bool  `json:"meal"`
	Side1    string `json:"side1"`
	Side2    string `json:"side2"`
	Quantity int    `json:"quantity"`
}

type flowStepResponse struct {
	FlowID      uuid.UUID          `json:"flow_id"`
	Step        order.Step         `json:"step"`
	ItemName    string             `json:"item_name"`
	SideOptions []string           `json:"side_options,omitempty"`
	Entry       *cartEntryResponse `json:"entry,omitempty"`
}

func toFlowStepResponse(id uuid.UUID, f *order.Flow) flowStepResponse {
	resp := flowStepResponse{
		FlowID:   id,
		Step:     f.Step(),
		ItemName: f.Item().Name,
	}
	if f.Step() == order.StepSides {
		resp.SideOptions = f.SideOptions()
	}
	return resp
}

// --- Handlers ---

// Begin starts a customization flow for one catalog item. The bag cap is
// checked here, before the first prompt is ever shown.
func (h *FlowHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req beginFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, ok := h.catalog.ItemByID(req.ItemID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	bag := h.carts.Cart(r.Context(), sid)
	flow, err := order.Begin(item, h.catalog, bag)
	if err != nil {
		if errors.Is(err, order.ErrCartFull) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": order.CartFullMessage})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	id := uuid.New()
	h.mu.Lock()
	h.flows[id] = &activeFlow{flow: flow, sessionID: sid}
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, toFlowStepResponse(id, flow))
}

// Answer advances a flow by one step. Which field of the body is read
// depends on the step the flow is waiting on; the final quantity answer
// adds the entry to the bag and retires the flow.
func (h *FlowHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid flow ID"})
		return
	}

	h.mu.Lock()
	active := h.flows[id]
	h.mu.Unlock()
	if active == nil || active.sessionID != sid {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "flow not found"})
		return
	}

	var req answerFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	flow := active.flow
	switch flow.Step() {
	case order.StepSize:
		err = flow.ChooseSize(order.Size(req.Size))
	case order.StepMeal:
		if req.Meal == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "meal is required"})
			return
		}
		err = flow.ChooseMeal(*req.Meal)
	case order.StepSides:
		err = flow.ChooseSides(req.Side1, req.Side2)
	case order.StepQuantity:
		var entry cart.Entry
		entry, err = flow.SubmitQuantity(r.Context(), req.Quantity)
		if err == nil {
			h.mu.Lock()
			delete(h.flows, id)
			h.mu.Unlock()

			resp := toFlowStepResponse(id, flow)
			entryResp := toCartEntryResponse(entry)
			resp.Entry = &entryResp
			writeJSON(w, http.StatusOK, resp)
			return
		}
	default:
		err = order.ErrFlowDone
	}

	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFlowStepResponse(id, flow))
}

// Cancel abandons a flow. No rollback is needed: nothing has touched the
// bag until the final quantity submission.
func (h *FlowHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid flow ID"})
		return
	}

	h.mu.Lock()
	active := h.flows[id]
	if active != nil && active.sessionID == sid {
		delete(h.flows, id)
	}
	h.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (h *FlowHandler) writeFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrCartFull):
		writeJSON(w, http.StatusConflict, map[string]string{"error": order.CartFullMessage})
	case errors.Is(err, order.ErrFlowDone):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "flow already completed"})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}
