package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rsduran/Athena-quiz-app-v2/internal/auth"
	"github.com/rsduran/Athena-quiz-app-v2/internal/config"
	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/scrape"
	"github.com/rsduran/Athena-quiz-app-v2/internal/session"
	"github.com/rsduran/Athena-quiz-app-v2/internal/storage"
	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Store   quiz.Store
	DB      *sql.DB
	Scores  *session.Scoreboard
	Scraper *scrape.Service
	Events  *syncx.EventRepo
	Blobs   *storage.FSStore
	Auth    *auth.AuthService
	Config  config.Config
}

// NewRouter builds the full application router: middleware, CORS, the /api
// surface and the auth endpoints.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Route("/auth", func(au chi.Router) {
			au.Post("/signup", auth.SignupHandler(d.DB))
			au.Post("/signin", auth.SigninHandler(d.Auth, d.DB))
			au.Get("/status", auth.StatusHandler(d.Auth))
			au.Post("/logout", auth.LogoutHandler())
			if cfg.EnableGitHubAuth {
				au.Get("/github", auth.GitHubLoginHandler(cfg))
				au.Get("/github/callback", auth.GitHubCallbackHandler(d.Auth, d.DB, cfg))
			}
		})

		ar.Group(func(pr chi.Router) {
			if cfg.RequireAuth {
				pr.Use(auth.RequireAuth(d.Auth))
			}
			mountQuizRoutes(pr, d)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return r
}

func mountQuizRoutes(r chi.Router, d Deps) {
	store := d.Store

	// quiz sets
	r.Get("/getQuizSets", ListQuizSetsHandler(store))
	r.Get("/getQuizSetDetails/{id}", QuizSetDetailsHandler(store))
	r.Put("/renameQuizSet/{id}", RenameQuizSetHandler(store))
	r.Delete("/deleteQuizSet/{id}", DeleteQuizSetHandler(store))
	r.Post("/deleteMultipleQuizSets", DeleteMultipleQuizSetsHandler(store))
	r.Post("/deleteAllQuizSets", DeleteAllQuizSetsHandler(store))
	r.Get("/getRawUrls/{id}", RawURLsHandler(store))

	// questions and selections
	r.Get("/getQuestions", AllQuestionsHandler(store))
	r.Get("/getQuestionsByQuizSet/{id}", QuestionsByQuizSetHandler(store))
	r.Get("/getUserSelections/{id}", UserSelectionsHandler(store))
	r.Post("/updateUserSelection", UpdateUserSelectionHandler(store))
	r.Get("/getFavorites/{id}", FavoritesHandler(store))
	r.Post("/toggleFavorite", ToggleFavoriteHandler(store))
	r.Post("/shuffleQuestions/{id}", ShuffleQuestionsHandler(store, d.Events))
	r.Post("/resetQuestions/{id}", ResetQuestionsHandler(store, d.Events))
	r.Post("/saveFurtherExplanation", SaveFurtherExplanationHandler(store))
	r.Get("/getFurtherExplanation/{questionID}", FurtherExplanationHandler(store))

	// scores
	r.Post("/updateScore", UpdateScoreHandler(d.Scores))
	r.Get("/getScore/{id}", ScoreHandler(d.Scores))
	r.Post("/updateQuizSetScore/{id}", UpdateQuizSetScoreHandler(store, d.Events))
	r.Post("/updateQuizSetStatus/{id}", UpdateQuizSetStatusHandler(store))
	r.Get("/getQuizSetScore/{id}", QuizSetScoreHandler(store))
	r.Get("/getQuizSetEvents/{id}", QuizSetEventsHandler(d.Events))

	// per-set view state
	r.Get("/getEyeIconState/{id}", EyeIconStateHandler(store))
	r.Post("/updateEyeIconState/{id}", UpdateEyeIconStateHandler(store))
	r.Get("/getLockState/{id}", LockStateHandler(store))
	r.Post("/toggleLockState/{id}", ToggleLockStateHandler(store))
	r.Post("/updateCurrentQuestionIndex/{id}", UpdateCurrentQuestionIndexHandler(store))
	r.Get("/getCurrentQuestionIndex/{id}", CurrentQuestionIndexHandler(store))
	r.Post("/updateQuizSetState/{id}", UpdateQuizSetStateHandler(store))
	r.Get("/getQuizSetState/{id}", QuizSetStateHandler(store))

	// dashboard preferences
	r.Get("/getSortOrder", SortOrderHandler(store))
	r.Post("/updateSortOrder", UpdateSortOrderHandler(store))

	// notes editor
	r.Post("/saveEditorContent", SaveEditorContentHandler(store))
	r.Get("/getEditorContent", EditorContentHandler(store))

	// ingestion and export
	r.Post("/startScraping", StartScrapingHandler(d.Scraper))
	r.Get("/getDiscussionComments/{questionID}", DiscussionCommentsHandler(store, d.Scraper))
	r.Get("/downloadQuizPdf/{id}", DownloadQuizPDFHandler(store, d.Blobs))
}
