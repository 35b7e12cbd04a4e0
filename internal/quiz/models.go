package quiz

import "time"

// Filter names accepted by the view projector and persisted as part of the
// quiz-set state.
const (
	FilterAll        = "all"
	FilterFavorites  = "favorites"
	FilterAnswered   = "answered"
	FilterUnanswered = "unanswered"
	FilterIncorrect  = "incorrect"
)

// Quiz-set status values written on submission.
const (
	StatusPassed = "Passed"
	StatusFailed = "Failed"
)

// Question is one quiz question. Answer is a positional label ("Option A",
// "Option B", ...) that always refers to the position of the correct option
// in the current Options slice; anything that reorders Options must recompute
// it.
type Question struct {
	ID             int64    `json:"id"`
	QuizSetID      string   `json:"quiz_set_id,omitempty"`
	Order          int      `json:"order"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	Answer         string   `json:"answer"`
	Favorite       bool     `json:"favorite"`
	URL            string   `json:"url,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	DiscussionLink string   `json:"discussion_link,omitempty"`
	// nil means unanswered; a non-nil value is a positional label like Answer.
	UserSelectedOption *string `json:"user_selected_option"`
	HasMathContent     bool    `json:"hasMathContent"`

	// Load-time snapshots used to undo a local option shuffle. Never serialized.
	OriginalOptions []string `json:"-"`
	OriginalAnswer  string   `json:"-"`
}

// Answered reports whether the user has selected any option.
func (q Question) Answered() bool { return q.UserSelectedOption != nil }

// Correct reports whether the user's selection matches the answer label.
// An unanswered question is never correct.
func (q Question) Correct() bool {
	return q.UserSelectedOption != nil && *q.UserSelectedOption == q.Answer
}

// OptionLabel returns the positional label for option index i: "Option A"
// for 0, "Option B" for 1, and so on.
func OptionLabel(i int) string {
	return "Option " + string(rune('A'+i))
}

// OptionIndex is the inverse of OptionLabel. Returns -1 for labels that do
// not name a position.
func OptionIndex(label string) int {
	const prefix = "Option "
	if len(label) != len(prefix)+1 || label[:len(prefix)] != prefix {
		return -1
	}
	c := label[len(prefix)]
	if c < 'A' || c > 'Z' {
		return -1
	}
	return int(c - 'A')
}

// QuizSet is the persisted record for one set of questions.
type QuizSet struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	URLs                 string    `json:"urls,omitempty"` // JSON array of scrape URL specs
	RawURLs              string    `json:"raw_urls,omitempty"`
	EyeIconState         bool      `json:"eye_icon_state"`
	LockState            bool      `json:"lock_state"`
	Score                *int      `json:"score"`
	Attempts             int       `json:"attempts"`
	Finished             bool      `json:"finished"`
	Status               string    `json:"status,omitempty"`
	SortOrder            string    `json:"sort_order"`
	CurrentQuestionIndex int       `json:"current_question_index"`
	CurrentFilter        string    `json:"current_filter"`
	LastUpdated          time.Time `json:"last_updated"`
}

// QuizSetSummary is the dashboard row shape: set metadata plus aggregates
// over its questions and attempts.
type QuizSetSummary struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Score               *int     `json:"score"`
	Attempts            int      `json:"attempts"`
	AverageScore        *float64 `json:"average_score"`
	LatestScore         *int     `json:"latest_score"`
	TotalQuestions      int      `json:"total_questions"`
	UnansweredQuestions int      `json:"unanswered_questions"`
	Finished            bool     `json:"finished"`
	Progress            int      `json:"progress"`
	LastUpdated         string   `json:"last_updated"`
}

// Attempt records one finished run through a quiz set.
type Attempt struct {
	ID        int64     `json:"id"`
	QuizSetID string    `json:"quiz_set_id"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// FurtherExplanation is a saved AI-generated elaboration for a question.
type FurtherExplanation struct {
	ID          int64  `json:"id"`
	QuestionID  int64  `json:"question_id"`
	Explanation string `json:"explanation"`
}

// QuizSetState is the resumable view state for a quiz set: where the user
// was and which filter was active.
type QuizSetState struct {
	CurrentQuestionIndex int    `json:"current_question_index"`
	CurrentFilter        string `json:"current_filter"`
}
