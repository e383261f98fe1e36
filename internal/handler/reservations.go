package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gameday-grill/web/internal/reservations"
	"github.com/go-chi/chi/v5"
)

// ReservationsHandler serves calendar month views from the static
// reservations feed.
type ReservationsHandler struct {
	feed []reservations.Reservation
}

// NewReservationsHandler creates a new ReservationsHandler.
func NewReservationsHandler(feed []reservations.Reservation) *ReservationsHandler {
	return &ReservationsHandler{feed: feed}
}

// RegisterRoutes registers reservation endpoints on the given Chi router.
func (h *ReservationsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Month)
}

type monthResponse struct {
	reservations.MonthView
	NoCardMessage string `json:"no_card_message,omitempty"`
	PrevYear      int    `json:"prev_year"`
	PrevMonth     int    `json:"prev_month"`
	NextYear      int    `json:"next_year"`
	NextMonth     int    `json:"next_month"`
}

// Month returns one rendered calendar month, defaulting to the current one.
func (h *ReservationsHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if q.Has("year") {
		y, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
			return
		}
		year = y
	}
	if q.Has("month") {
		m, err := strconv.Atoi(q.Get("month"))
		if err != nil || m < 1 || m > 12 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid month"})
			return
		}
		month = m
	}

	resp := monthResponse{MonthView: reservations.BuildMonth(h.feed, year, month)}
	if len(resp.Cards) == 0 {
		resp.NoCardMessage = reservations.NoReservationsMessage
	}
	resp.PrevYear, resp.PrevMonth = reservations.PrevMonth(year, month)
	resp.NextYear, resp.NextMonth = reservations.NextMonth(year, month)

	writeJSON(w, http.StatusOK, resp)
}
