package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/session"
	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

// POST /api/updateScore {question_id, increment, quiz_set_id}
// Adjusts the in-memory running score for the set by one in either direction,
// floored at zero, and echoes the new value.
func UpdateScoreHandler(scores *session.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID int64  `json:"question_id"`
			Increment  bool   `json:"increment"`
			QuizSetID  string `json:"quiz_set_id"`
		}
		if err := decodeJSON(r, &req); err != nil || req.QuizSetID == "" {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		delta := -1
		if req.Increment {
			delta = 1
		}
		score := scores.Adjust(req.QuizSetID, delta)
		writeJSON(w, http.StatusOK, map[string]any{"message": "Score updated", "current_score": score})
	}
}

// GET /api/getScore/{id}
func ScoreHandler(scores *session.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		score, ok := scores.Get(chi.URLParam(r, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Score not available", "score": 0})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"score": score})
	}
}

// POST /api/updateQuizSetScore/{id} {score}
// Records a finished attempt: attempt row, attempt counter, final score.
func UpdateQuizSetScoreHandler(store quiz.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Score int `json:"score"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.RecordAttempt(r.Context(), id, req.Score); err != nil {
			writeStoreError(w, err)
			return
		}
		appendEvent(r, events, syncx.EventSubmitted, id, map[string]any{"score": req.Score})
		writeMessage(w, http.StatusOK, "Score updated successfully")
	}
}

// POST /api/updateQuizSetStatus/{id} {status}
func UpdateQuizSetStatusHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Status != quiz.StatusPassed && req.Status != quiz.StatusFailed {
			writeMessage(w, http.StatusBadRequest, "status must be Passed or Failed")
			return
		}
		if err := store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Status updated successfully")
	}
}

// GET /api/getQuizSetScore/{id}
// Recomputes the score live from stored selections.
func QuizSetScoreHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := store.GetQuizSet(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		questions, err := store.QuestionsByQuizSet(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		score := 0
		for _, q := range questions {
			if q.Correct() {
				score++
			}
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"score":           score,
			"total_questions": len(questions),
		})
	}
}
