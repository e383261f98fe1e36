package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gameday-grill/web/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// sessionID extracts the session set by the session middleware. Handlers
// registered under the middleware can rely on it being present.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return "", false
	}
	return id, true
}
