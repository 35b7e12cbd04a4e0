package http

import (
	"net/http"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// POST /api/saveEditorContent {content}
func SaveEditorContentHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.SaveEditorContent(r.Context(), req.Content); err != nil {
			writeStoreError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Content saved successfully")
	}
}

// GET /api/getEditorContent
func EditorContentHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := store.EditorContent(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"content": content})
	}
}
