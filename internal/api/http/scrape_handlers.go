package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/scrape"
)

// POST /api/startScraping {title, rawUrls, urls}
// Runs synchronously and answers with the new set id and question count.
func StartScrapingHandler(svc *scrape.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scrape.Request
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if len(req.URLs) == 0 {
			writeMessage(w, http.StatusBadRequest, "urls is required")
			return
		}
		res, err := svc.Run(r.Context(), req)
		if err != nil {
			log.Printf("scraping run: %v", err)
			writeMessage(w, http.StatusInternalServerError, "scraping failed")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /api/getDiscussionComments/{questionID}
// Fetches the question's discussion page live and returns its comments.
func DiscussionCommentsHandler(store quiz.Store, svc *scrape.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "bad question id")
			return
		}
		q, err := store.QuestionByID(r.Context(), id)
		if err != nil || q.DiscussionLink == "" {
			if err != nil && !errors.Is(err, quiz.ErrQuestionNotFound) {
				writeStoreError(w, err)
				return
			}
			writeMessage(w, http.StatusNotFound, "Question or discussion link not found")
			return
		}
		comments, err := svc.FetchDiscussionComments(r.Context(), q.DiscussionLink)
		if err != nil {
			log.Printf("discussion comments %d: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "failed to fetch comments")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"discussion_comments": comments})
	}
}
