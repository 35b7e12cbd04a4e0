package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/rsduran/Athena-quiz-app-v2/internal/api/http"
	"github.com/rsduran/Athena-quiz-app-v2/internal/auth"
	"github.com/rsduran/Athena-quiz-app-v2/internal/config"
	"github.com/rsduran/Athena-quiz-app-v2/internal/db"
	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/scrape"
	"github.com/rsduran/Athena-quiz-app-v2/internal/session"
	"github.com/rsduran/Athena-quiz-app-v2/internal/storage"
	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh)
	events := syncx.NewEventRepo(dbh)

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	r := api.NewRouter(api.Deps{
		Store:   store,
		DB:      dbh,
		Scores:  session.NewScoreboard(),
		Scraper: scrape.NewService(store, events),
		Events:  events,
		Blobs:   blobs,
		Auth:    auth.NewAuthService(cfg.AuthSecret),
		Config:  cfg,
	})

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
