package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

// GET /getQuizSetEvents/{id} returns the newest audit events for a quiz set.
// Without an event log configured the history is simply empty.
func QuizSetEventsHandler(events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if events == nil {
			writeJSON(w, http.StatusOK, map[string]any{"events": []syncx.Event{}})
			return
		}
		list, err := events.Recent(r.Context(), id, 50)
		if err != nil {
			log.Printf("api: list events: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to load events")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": list})
	}
}
