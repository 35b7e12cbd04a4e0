package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// writeStoreError maps store errors onto the API's two-status policy:
// not-found conditions are 404, everything else is a logged 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizSetNotFound):
		writeMessage(w, http.StatusNotFound, "Quiz set not found")
	case errors.Is(err, quiz.ErrQuestionNotFound):
		writeMessage(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, quiz.ErrNoQuestions):
		writeMessage(w, http.StatusNotFound, "No questions found for this quiz set")
	default:
		log.Printf("api: %v", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
