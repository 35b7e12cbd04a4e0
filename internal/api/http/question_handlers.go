package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

// GET /api/getQuestionsByQuizSet/{id}
func QuestionsByQuizSetHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.QuestionsByQuizSet(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// GET /api/getQuestions
func AllQuestionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.AllQuestions(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// GET /api/getUserSelections/{id} → map of question id to selection
func UserSelectionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := store.UserSelections(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		out := make(map[string]*string, len(sel))
		for id, v := range sel {
			out[strconv.FormatInt(id, 10)] = v
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /api/updateUserSelection {question_id, selected_option}
// selected_option null clears the selection.
func UpdateUserSelectionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID     int64   `json:"question_id"`
			SelectedOption *string `json:"selected_option"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.UpdateUserSelection(r.Context(), req.QuestionID, req.SelectedOption); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "User selection updated")
	}
}

// GET /api/getFavorites/{id}
func FavoritesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favs, err := store.Favorites(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, favs)
	}
}

// POST /api/toggleFavorite {question_id}
func ToggleFavoriteHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID int64 `json:"question_id"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.ToggleFavorite(r.Context(), req.QuestionID); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Favorite toggled")
	}
}

// POST /api/shuffleQuestions/{id}
func ShuffleQuestionsHandler(store quiz.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		qs, err := store.ShuffleQuestions(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		appendEvent(r, events, syncx.EventShuffled, id, map[string]any{"questions": len(qs)})
		writeJSON(w, http.StatusOK, qs)
	}
}

// POST /api/resetQuestions/{id}
func ResetQuestionsHandler(store quiz.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		qs, err := store.ResetQuestions(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		appendEvent(r, events, syncx.EventReset, id, map[string]any{"questions": len(qs)})
		writeJSON(w, http.StatusOK, qs)
	}
}

// POST /api/saveFurtherExplanation {question_id, explanation}
func SaveFurtherExplanationHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID  int64  `json:"question_id"`
			Explanation string `json:"explanation"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.SaveFurtherExplanation(r.Context(), req.QuestionID, req.Explanation); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Further explanation saved")
	}
}

// GET /api/getFurtherExplanation/{questionID}
func FurtherExplanationHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "bad question id")
			return
		}
		explanation, err := store.FurtherExplanationByQuestion(r.Context(), id)
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Further explanation not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
	}
}

func appendEvent(r *http.Request, events *syncx.EventRepo, typ, key string, data map[string]any) {
	if events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	// best-effort; the operation already succeeded
	_ = events.Append(r.Context(), syncx.Event{Type: typ, Key: key, DataJSON: string(buf)})
}
