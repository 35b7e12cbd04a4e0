// Package scrape builds quiz sets from exam-bank pages: it fetches each
// requested URL, extracts question blocks and stores them under a fresh quiz
// set with a global running question number.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

// URLSpec is one entry of the startScraping payload: either a bare URL
// string or an object with a base URL plus a page range.
type URLSpec struct {
	BaseURL  string `json:"base_url"`
	StartURL int    `json:"start_url,omitempty"`
	EndURL   int    `json:"end_url,omitempty"`
	// examveda-style pagination
	StartPage int `json:"start_page,omitempty"`
	EndPage   int `json:"end_page,omitempty"`
}

func (u *URLSpec) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		u.BaseURL = s
		return nil
	}
	type alias URLSpec
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*u = URLSpec(a)
	return nil
}

// Request is the startScraping payload.
type Request struct {
	Title   string    `json:"title"`
	RawURLs string    `json:"rawUrls"`
	URLs    []URLSpec `json:"urls"`
}

// Result reports what a run produced.
type Result struct {
	QuizSetID string `json:"quiz_set_id"`
	Questions int    `json:"questions"`
}

type Service struct {
	store  quiz.Store
	events *syncx.EventRepo
	client *http.Client
}

func NewService(store quiz.Store, events *syncx.EventRepo) *Service {
	return &Service{
		store:  store,
		events: events,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Run creates the quiz set and ingests every URL the request names.
// Pages that fail to fetch or yield nothing are logged and skipped; the set
// is created regardless, matching the original's forgiving behavior.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	title := req.Title
	if title == "" {
		title = "New Quiz Set"
	}
	urlsJSON, err := json.Marshal(req.URLs)
	if err != nil {
		return Result{}, err
	}
	set, err := s.store.CreateQuizSet(ctx, title, req.RawURLs, string(urlsJSON))
	if err != nil {
		return Result{}, fmt.Errorf("create quiz set: %w", err)
	}

	counter := 1
	var batch []quiz.Question
	for _, spec := range req.URLs {
		for _, pageURL := range expand(spec) {
			qs, err := s.fetchQuestions(ctx, pageURL)
			if err != nil {
				log.Printf("scrape: %s: %v", pageURL, err)
				continue
			}
			for _, q := range qs {
				q.Order = counter
				q.URL = pageURL
				batch = append(batch, q)
				counter++
			}
		}
	}

	if len(batch) > 0 {
		if err := s.store.InsertQuestions(ctx, set.ID, batch); err != nil {
			return Result{}, fmt.Errorf("store questions: %w", err)
		}
	}

	if s.events != nil {
		data, _ := json.Marshal(map[string]any{"title": title, "questions": len(batch)})
		if err := s.events.Append(ctx, syncx.Event{
			Type: syncx.EventScraped, Key: set.ID, DataJSON: string(data),
		}); err != nil {
			log.Printf("scrape: event append: %v", err)
		}
	}

	return Result{QuizSetID: set.ID, Questions: len(batch)}, nil
}

// expand turns a spec into the concrete page URLs to fetch.
func expand(spec URLSpec) []string {
	base := strings.TrimSpace(spec.BaseURL)
	if base == "" {
		return nil
	}
	switch {
	case spec.StartURL > 0:
		end := spec.EndURL
		if end < spec.StartURL {
			end = spec.StartURL
		}
		out := make([]string, 0, end-spec.StartURL+1)
		for n := spec.StartURL; n <= end; n++ {
			out = append(out, strings.TrimSuffix(base, "/")+"/"+strconv.Itoa(n))
		}
		return out
	case spec.StartPage > 0:
		end := spec.EndPage
		if end < spec.StartPage {
			end = spec.StartPage
		}
		out := make([]string, 0, end-spec.StartPage+1)
		for n := spec.StartPage; n <= end; n++ {
			sep := "?"
			if strings.ContainsRune(base, '?') {
				sep = "&"
			}
			out = append(out, base+sep+"page="+strconv.Itoa(n))
		}
		return out
	default:
		return []string{base}
	}
}

func (s *Service) fetchQuestions(ctx context.Context, pageURL string) ([]quiz.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "athena-quiz/1.0")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	qs, err := ExtractQuestions(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("no question blocks recognized")
	}
	return qs, nil
}
