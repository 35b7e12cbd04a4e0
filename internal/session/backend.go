package session

import (
	"context"
	"sync"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// Backend is everything the session controller needs from the persistence
// side. Reads are synchronous; writes issued through the sync queue are
// best-effort (see Session).
type Backend interface {
	Questions(ctx context.Context, quizSetID string) ([]quiz.Question, error)
	Selections(ctx context.Context, quizSetID string) (map[int64]*string, error)
	Favorites(ctx context.Context, quizSetID string) ([]quiz.Question, error)
	SaveSelection(ctx context.Context, questionID int64, selected *string) error
	ToggleFavorite(ctx context.Context, questionID int64) error
	AdjustScore(ctx context.Context, quizSetID string, questionID int64, delta int) error
	ShuffleQuestions(ctx context.Context, quizSetID string) ([]quiz.Question, error)
	ResetQuestions(ctx context.Context, quizSetID string) ([]quiz.Question, error)
	SaveScore(ctx context.Context, quizSetID string, score int) error
	SaveStatus(ctx context.Context, quizSetID, status string) error
}

// Scoreboard keeps the running per-set score that option selections adjust
// incrementally. It lives in memory for the lifetime of the process, like a
// server-side session value.
type Scoreboard struct {
	mu     sync.Mutex
	scores map[string]int
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{scores: map[string]int{}}
}

// Adjust applies a delta and returns the new value, floored at zero.
func (b *Scoreboard) Adjust(quizSetID string, delta int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.scores[quizSetID] + delta
	if v < 0 {
		v = 0
	}
	b.scores[quizSetID] = v
	return v
}

// Get returns the running score and whether one has been recorded.
func (b *Scoreboard) Get(quizSetID string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.scores[quizSetID]
	return v, ok
}

// StoreBackend adapts quiz.Store (plus the in-memory scoreboard) to the
// Backend interface.
type StoreBackend struct {
	Store  quiz.Store
	Scores *Scoreboard
}

func NewStoreBackend(store quiz.Store, scores *Scoreboard) *StoreBackend {
	return &StoreBackend{Store: store, Scores: scores}
}

func (b *StoreBackend) Questions(ctx context.Context, quizSetID string) ([]quiz.Question, error) {
	return b.Store.QuestionsByQuizSet(ctx, quizSetID)
}

func (b *StoreBackend) Selections(ctx context.Context, quizSetID string) (map[int64]*string, error) {
	return b.Store.UserSelections(ctx, quizSetID)
}

func (b *StoreBackend) Favorites(ctx context.Context, quizSetID string) ([]quiz.Question, error) {
	return b.Store.Favorites(ctx, quizSetID)
}

func (b *StoreBackend) SaveSelection(ctx context.Context, questionID int64, selected *string) error {
	return b.Store.UpdateUserSelection(ctx, questionID, selected)
}

func (b *StoreBackend) ToggleFavorite(ctx context.Context, questionID int64) error {
	return b.Store.ToggleFavorite(ctx, questionID)
}

func (b *StoreBackend) AdjustScore(_ context.Context, quizSetID string, _ int64, delta int) error {
	b.Scores.Adjust(quizSetID, delta)
	return nil
}

func (b *StoreBackend) ShuffleQuestions(ctx context.Context, quizSetID string) ([]quiz.Question, error) {
	return b.Store.ShuffleQuestions(ctx, quizSetID)
}

func (b *StoreBackend) ResetQuestions(ctx context.Context, quizSetID string) ([]quiz.Question, error) {
	return b.Store.ResetQuestions(ctx, quizSetID)
}

func (b *StoreBackend) SaveScore(ctx context.Context, quizSetID string, score int) error {
	return b.Store.RecordAttempt(ctx, quizSetID, score)
}

func (b *StoreBackend) SaveStatus(ctx context.Context, quizSetID, status string) error {
	return b.Store.UpdateStatus(ctx, quizSetID, status)
}
