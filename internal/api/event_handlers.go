package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// @Summary      Get usage events
// @Description  Returns the caller's usage journal (registrations, generation calls) since a timestamp, oldest first, capped at 100 entries.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since  query  string  false  "RFC3339 timestamp (default: 24h ago)"
// @Success      200  {array}   database.Event
// @Failure      400  {string}  string "Invalid since parameter"
// @Failure      401  {string}  string "Credenciais inválidas"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	email := IdentityFromContext(r.Context())
	if email == "" {
		http.Error(w, "Could not retrieve user identity", http.StatusInternalServerError)
		return
	}

	since := timeNow().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid 'since' parameter, expected RFC3339", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	events, err := s.store.GetEventsSince(r.Context(), email, since)
	if err != nil {
		log.Printf("ERROR: failed to fetch events for %s: %v", email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
