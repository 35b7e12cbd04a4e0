package quiz

import (
	"context"
	"errors"
)

var (
	ErrQuizSetNotFound  = errors.New("quiz set not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoQuestions      = errors.New("no questions found for this quiz set")
)

// Store is the persistence surface for quiz sets and their questions. The
// HTTP layer and the session controller both sit on top of it.
type Store interface {
	CreateQuizSet(ctx context.Context, title, rawURLs, urlsJSON string) (QuizSet, error)
	GetQuizSet(ctx context.Context, id string) (QuizSet, error)
	ListQuizSets(ctx context.Context) ([]QuizSetSummary, error)
	RenameQuizSet(ctx context.Context, id, title string) error
	DeleteQuizSet(ctx context.Context, id string) error
	DeleteQuizSets(ctx context.Context, ids []string) (int, error)
	DeleteAllQuizSets(ctx context.Context) error

	InsertQuestions(ctx context.Context, quizSetID string, qs []Question) error
	QuestionsByQuizSet(ctx context.Context, quizSetID string) ([]Question, error)
	AllQuestions(ctx context.Context) ([]Question, error)
	QuestionByID(ctx context.Context, questionID int64) (Question, error)
	UserSelections(ctx context.Context, quizSetID string) (map[int64]*string, error)
	UpdateUserSelection(ctx context.Context, questionID int64, selected *string) error
	Favorites(ctx context.Context, quizSetID string) ([]Question, error)
	ToggleFavorite(ctx context.Context, questionID int64) error

	// ShuffleQuestions assigns fresh order values server-side, clears every
	// selection, and returns the set in its new order.
	ShuffleQuestions(ctx context.Context, quizSetID string) ([]Question, error)
	// ResetQuestions clears every selection and returns the set in order.
	ResetQuestions(ctx context.Context, quizSetID string) ([]Question, error)

	EyeIconState(ctx context.Context, quizSetID string) (bool, error)
	UpdateEyeIconState(ctx context.Context, quizSetID string, state bool) error
	LockState(ctx context.Context, quizSetID string) (bool, error)
	ToggleLockState(ctx context.Context, quizSetID string) (bool, error)

	// RecordAttempt stores a finished run: inserts an Attempt row, bumps the
	// set's attempt counter, records the score and marks the set finished.
	RecordAttempt(ctx context.Context, quizSetID string, score int) error
	UpdateStatus(ctx context.Context, quizSetID, status string) error

	QuizSetState(ctx context.Context, quizSetID string) (QuizSetState, error)
	SaveQuizSetState(ctx context.Context, quizSetID string, index int, filter string) error
	UpdateCurrentQuestionIndex(ctx context.Context, quizSetID string, index int) error

	SortOrder(ctx context.Context) (string, error)
	UpdateSortOrder(ctx context.Context, order string) error

	RawURLs(ctx context.Context, quizSetID string) (string, error)

	SaveEditorContent(ctx context.Context, content string) error
	EditorContent(ctx context.Context) (string, error)

	SaveFurtherExplanation(ctx context.Context, questionID int64, explanation string) error
	FurtherExplanationByQuestion(ctx context.Context, questionID int64) (string, error)
}
