// Package session holds the quiz-taking state machine for one quiz set: the
// canonical question list, the filtered view, the navigation cursor, the two
// shuffle operations and scoring. Local state is mutated first; persistence
// runs behind it through a best-effort sync queue and is never rolled back.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/syncx"
)

// Navigation actions accepted by Navigate.
const (
	NavPrev  = "prev"
	NavNext  = "next"
	NavGoto  = "goto"
	NavReset = "reset"
)

var ErrNotLoaded = errors.New("session: no quiz set loaded")

// Summary is the result of a submission.
type Summary struct {
	Score  int    `json:"score"`
	Total  int    `json:"total"`
	Status string `json:"status"`
}

// Session is the controller for one active quiz set. All exported methods
// are safe for concurrent use; mutations are serialized the way a UI event
// loop would serialize them.
type Session struct {
	backend Backend
	queue   *syncx.Queue

	mu        sync.Mutex
	quizSetID string
	questions []quiz.Question
	favorites map[int64]bool
	filter    string
	view      []quiz.Question
	cursor    int

	cardFlipped     bool
	optionsShuffled bool
	score           int
}

func New(backend Backend, queue *syncx.Queue) *Session {
	return &Session{
		backend:   backend,
		queue:     queue,
		favorites: map[int64]bool{},
		filter:    quiz.FilterAll,
	}
}

// Load fetches the quiz set's questions, prior selections and favorites,
// normalizes them into canonical order and resets all view state.
func (s *Session) Load(ctx context.Context, quizSetID string) error {
	questions, err := s.backend.Questions(ctx, quizSetID)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })
	snapshotOriginals(questions)

	selections, err := s.backend.Selections(ctx, quizSetID)
	if err != nil {
		return fmt.Errorf("load selections: %w", err)
	}
	for i := range questions {
		questions[i].UserSelectedOption = selections[questions[i].ID]
	}

	favs, err := s.backend.Favorites(ctx, quizSetID)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	favorites := map[int64]bool{}
	for _, q := range favs {
		favorites[q.ID] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizSetID = quizSetID
	s.questions = questions
	s.favorites = favorites
	s.filter = quiz.FilterAll
	s.cursor = 0
	s.cardFlipped = false
	s.optionsShuffled = false
	s.score = 0
	s.reproject()
	return nil
}

// reproject rebuilds the filtered view and clamps the cursor. Callers hold mu.
func (s *Session) reproject() {
	s.view = Project(s.questions, s.filter, s.favorites)
	if s.cursor >= len(s.view) {
		s.cursor = len(s.view) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// View returns the currently displayed subset in display order.
func (s *Session) View() []quiz.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]quiz.Question(nil), s.view...)
}

// Current returns the question under the cursor.
func (s *Session) Current() (quiz.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.view) == 0 {
		return quiz.Question{}, false
	}
	return s.view[s.cursor], true
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Session) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) CardFlipped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardFlipped
}

func (s *Session) OptionsShuffled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optionsShuffled
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// SetFilter switches the active filter and resets the cursor to the first
// question of the new view.
func (s *Session) SetFilter(name string) error {
	if !ValidFilter(name) {
		return fmt.Errorf("unknown filter %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = name
	s.cursor = 0
	s.cardFlipped = false
	s.reproject()
	return nil
}

// FlipCard toggles the answer-reveal flag for the current question.
func (s *Session) FlipCard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cardFlipped = !s.cardFlipped
}

// Navigate moves the cursor. The flip flag is cleared on every call, even
// when the index does not change: moving always hides a revealed answer.
// value is the 1-based target for NavGoto and ignored otherwise.
func (s *Session) Navigate(action string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cardFlipped = false

	n := len(s.view)
	switch action {
	case NavPrev:
		if s.cursor > 0 {
			s.cursor--
		}
	case NavNext:
		if s.cursor < n-1 {
			s.cursor++
		}
	case NavGoto:
		target := value - 1
		if target < 0 {
			target = 0
		}
		if target > n-1 {
			target = n - 1
		}
		if target < 0 {
			target = 0
		}
		s.cursor = target
	case NavReset:
		s.cursor = 0
	default:
		return fmt.Errorf("unknown navigation action %q", action)
	}
	return nil
}

// SelectOption records the user's pick for the question under the cursor.
// optionIndex is the position within the current options; -1 clears the
// selection. Local state updates immediately; the selection and the running
// score delta are persisted through the sync queue without rollback.
func (s *Session) SelectOption(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.view) == 0 {
		return ErrNotLoaded
	}
	id := s.view[s.cursor].ID
	qi := s.indexByID(id)
	if qi < 0 {
		return quiz.ErrQuestionNotFound
	}
	q := &s.questions[qi]

	var selected *string
	if optionIndex >= 0 {
		if optionIndex >= len(q.Options) {
			return fmt.Errorf("option index %d out of range", optionIndex)
		}
		label := quiz.OptionLabel(optionIndex)
		selected = &label
	}

	wasCorrect := q.Correct()
	q.UserSelectedOption = selected
	nowCorrect := q.Correct()

	if delta := boolToInt(nowCorrect) - boolToInt(wasCorrect); delta != 0 {
		quizSetID := s.quizSetID
		questionID := q.ID
		s.queue.Enqueue("adjust-score", func(ctx context.Context) error {
			return s.backend.AdjustScore(ctx, quizSetID, questionID, delta)
		})
	}
	questionID := q.ID
	s.queue.Enqueue("save-selection", func(ctx context.Context) error {
		return s.backend.SaveSelection(ctx, questionID, selected)
	})

	s.reproject()
	return nil
}

// ToggleFavorite flips a question's membership in the favorites set and
// reports whether it is now a favorite.
func (s *Session) ToggleFavorite(questionID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := !s.favorites[questionID]
	if now {
		s.favorites[questionID] = true
	} else {
		delete(s.favorites, questionID)
	}
	s.queue.Enqueue("toggle-favorite", func(ctx context.Context) error {
		return s.backend.ToggleFavorite(ctx, questionID)
	})
	s.reproject()
	return now
}

// ToggleOptionShuffle permutes each question's options locally, remapping
// the answer label to follow the correct option's content. Toggling again
// restores the exact pre-shuffle options and answer labels.
func (s *Session) ToggleOptionShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optionsShuffled = !s.optionsShuffled
	for i := range s.questions {
		if s.optionsShuffled {
			s.questions[i] = shuffleOptions(s.questions[i])
		} else {
			s.questions[i] = restoreOptions(s.questions[i])
		}
	}
	s.reproject()
	return s.optionsShuffled
}

// Shuffle asks the backend for a new question ordering and adopts it. The
// server returns canonical, unshuffled options with selections cleared, so
// an active option shuffle is re-applied to the fresh set. The cursor resets
// to the first question.
func (s *Session) Shuffle(ctx context.Context) error {
	s.mu.Lock()
	quizSetID := s.quizSetID
	s.mu.Unlock()
	if quizSetID == "" {
		return ErrNotLoaded
	}

	shuffled, err := s.backend.ShuffleQuestions(ctx, quizSetID)
	if err != nil {
		return fmt.Errorf("shuffle questions: %w", err)
	}
	sort.SliceStable(shuffled, func(i, j int) bool { return shuffled[i].Order < shuffled[j].Order })
	snapshotOriginals(shuffled)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.optionsShuffled {
		for i := range shuffled {
			shuffled[i] = shuffleOptions(shuffled[i])
		}
	}
	s.questions = shuffled
	s.cursor = 0
	s.cardFlipped = false
	s.reproject()
	return nil
}

// Reset clears every selection server-side and locally.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	quizSetID := s.quizSetID
	s.mu.Unlock()
	if quizSetID == "" {
		return ErrNotLoaded
	}

	fresh, err := s.backend.ResetQuestions(ctx, quizSetID)
	if err != nil {
		return fmt.Errorf("reset questions: %w", err)
	}
	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Order < fresh[j].Order })
	snapshotOriginals(fresh)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = fresh
	s.optionsShuffled = false
	s.cursor = 0
	s.cardFlipped = false
	s.reproject()
	return nil
}

// Submit scores the set unless any question is unanswered, in which case the
// unanswered questions are returned for confirmation and scoring is withheld.
func (s *Session) Submit() (unanswered []quiz.Question, summary *Summary) {
	s.mu.Lock()
	for _, q := range s.questions {
		if !q.Answered() {
			unanswered = append(unanswered, q)
		}
	}
	s.mu.Unlock()
	if len(unanswered) > 0 {
		return unanswered, nil
	}
	sum := s.ForceSubmit()
	return nil, &sum
}

// ForceSubmit scores the set regardless of unanswered questions, persists
// the score and the derived status as two independent best-effort writes and
// returns the summary. Pass requires at least 70 percent.
func (s *Session) ForceSubmit() Summary {
	s.mu.Lock()
	score := 0
	for _, q := range s.questions {
		if q.Correct() {
			score++
		}
	}
	total := len(s.questions)
	s.score = score
	quizSetID := s.quizSetID
	s.mu.Unlock()

	status := quiz.StatusFailed
	if total > 0 && score*100 >= 70*total {
		status = quiz.StatusPassed
	}

	s.queue.Enqueue("save-score", func(ctx context.Context) error {
		return s.backend.SaveScore(ctx, quizSetID, score)
	})
	s.queue.Enqueue("save-status", func(ctx context.Context) error {
		return s.backend.SaveStatus(ctx, quizSetID, status)
	})
	return Summary{Score: score, Total: total, Status: status}
}

// indexByID finds a question in the canonical list. Callers hold mu.
func (s *Session) indexByID(id int64) int {
	for i := range s.questions {
		if s.questions[i].ID == id {
			return i
		}
	}
	return -1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
