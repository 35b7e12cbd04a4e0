package http

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// GET /api/getQuizSets
func ListQuizSetsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sets, err := store.ListQuizSets(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sets)
	}
}

// PUT /api/renameQuizSet/{id} {new_title}
func RenameQuizSetHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NewTitle string `json:"new_title"`
		}
		if err := decodeJSON(r, &req); err != nil || req.NewTitle == "" {
			writeMessage(w, http.StatusBadRequest, "new_title required")
			return
		}
		if err := store.RenameQuizSet(r.Context(), chi.URLParam(r, "id"), req.NewTitle); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Quiz set title updated successfully")
	}
}

// DELETE /api/deleteQuizSet/{id}
func DeleteQuizSetHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.DeleteQuizSet(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Quiz set "+id+" deleted successfully")
	}
}

// POST /api/deleteMultipleQuizSets {quizSetIds}
func DeleteMultipleQuizSetsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizSetIDs []string `json:"quizSetIds"`
		}
		if err := decodeJSON(r, &req); err != nil || len(req.QuizSetIDs) == 0 {
			writeMessage(w, http.StatusBadRequest, "No quiz sets specified for deletion")
			return
		}
		n, err := store.DeleteQuizSets(r.Context(), req.QuizSetIDs)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "quiz sets deleted successfully", "deleted": n})
	}
}

// POST /api/deleteAllQuizSets
func DeleteAllQuizSetsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteAllQuizSets(r.Context()); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "All quiz sets deleted successfully")
	}
}

// GET /api/getQuizSetDetails/{id}
func QuizSetDetailsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		set, err := store.GetQuizSet(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		questions, err := store.QuestionsByQuizSet(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		answered := 0
		for _, q := range questions {
			if q.Answered() {
				answered++
			}
		}
		progress := 0
		if len(questions) > 0 {
			progress = int(math.Round(float64(answered) / float64(len(questions)) * 100))
		}
		urls := json.RawMessage("[]")
		if json.Valid([]byte(set.URLs)) && set.URLs != "" {
			urls = json.RawMessage(set.URLs)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":                 set.ID,
			"title":              set.Title,
			"urls":               urls,
			"progress":           progress,
			"total_questions":    len(questions),
			"answered_questions": answered,
			"score":              set.Score,
			"attempts":           set.Attempts,
		})
	}
}

// GET /api/getRawUrls/{id}
func RawURLsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := store.RawURLs(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"rawUrls": raw})
	}
}

// GET /api/getSortOrder
func SortOrderHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := store.SortOrder(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"sortOrder": order})
	}
}

// POST /api/updateSortOrder {sortOrder}
func UpdateSortOrderHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SortOrder string `json:"sortOrder"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.SortOrder != "asc" && req.SortOrder != "desc" {
			writeMessage(w, http.StatusBadRequest, "Invalid sort order")
			return
		}
		if err := store.UpdateSortOrder(r.Context(), req.SortOrder); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Sort order updated successfully")
	}
}

// GET /api/getEyeIconState/{id}
func EyeIconStateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := store.EyeIconState(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"state": state})
	}
}

// POST /api/updateEyeIconState/{id} {state}
func UpdateEyeIconStateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			State bool `json:"state"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.UpdateEyeIconState(r.Context(), chi.URLParam(r, "id"), req.State); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Eye icon state updated")
	}
}

// globalLock is the dashboard-wide reveal lock. In-memory, like the
// original; individual sets keep theirs in the store.
var globalLock = struct {
	mu    sync.Mutex
	state bool
}{state: true}

// GET /api/getLockState/{id} (or "global")
func LockStateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "global" {
			globalLock.mu.Lock()
			state := globalLock.state
			globalLock.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]bool{"lock_state": state})
			return
		}
		state, err := store.LockState(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"lock_state": state})
	}
}

// POST /api/toggleLockState/{id} (or "global")
func ToggleLockStateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "global" {
			globalLock.mu.Lock()
			globalLock.state = !globalLock.state
			state := globalLock.state
			globalLock.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"message": "Global lock state toggled", "new_state": state})
			return
		}
		if _, err := store.ToggleLockState(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Lock state toggled")
	}
}

// POST /api/updateCurrentQuestionIndex/{id} {index}
func UpdateCurrentQuestionIndexHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index int `json:"index"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.UpdateCurrentQuestionIndex(r.Context(), chi.URLParam(r, "id"), req.Index); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Current question index updated successfully")
	}
}

// GET /api/getCurrentQuestionIndex/{id}
func CurrentQuestionIndexHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.QuizSetState(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"current_question_index": st.CurrentQuestionIndex})
	}
}

// POST /api/updateQuizSetState/{id} {index,filter}
func UpdateQuizSetStateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index  int    `json:"index"`
			Filter string `json:"filter"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.SaveQuizSetState(r.Context(), chi.URLParam(r, "id"), req.Index, req.Filter); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Quiz set state updated successfully")
	}
}

// GET /api/getQuizSetState/{id}
func QuizSetStateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.QuizSetState(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
