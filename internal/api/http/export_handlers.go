package http

import (
	"bytes"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rsduran/Athena-quiz-app-v2/internal/pdf"
	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/storage"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GET /api/downloadQuizPdf/{id}
// Renders the set to a PDF, archives a copy, and streams it as an attachment.
func DownloadQuizPDFHandler(store quiz.Store, blobs *storage.FSStore) http.HandlerFunc {
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
		if len(questions) == 0 {
			writeStoreError(w, quiz.ErrNoQuestions)
			return
		}

		var buf bytes.Buffer
		if err := pdf.Export(&buf, set.Title, questions); err != nil {
			log.Printf("pdf export %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "failed to generate pdf")
			return
		}

		name := unsafeFilename.ReplaceAllString(strings.TrimSpace(set.Title), "_")
		if name == "" {
			name = id
		}
		if blobs != nil {
			if _, err := blobs.Put("pdf/"+id+".pdf", bytes.NewReader(buf.Bytes())); err != nil {
				log.Printf("pdf archive %s: %v", id, err)
			}
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
		_, _ = w.Write(buf.Bytes())
	}
}
