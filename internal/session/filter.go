package session

import (
	"sort"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// Project derives the displayed subset for a filter, ordered by each
// question's order value. Unknown filter names fall back to "all".
//
// "incorrect" matches every question whose selection differs from the answer
// label, which deliberately includes unanswered questions: no selection is
// never equal to the answer.
func Project(questions []quiz.Question, filter string, favorites map[int64]bool) []quiz.Question {
	out := make([]quiz.Question, 0, len(questions))
	for _, q := range questions {
		switch filter {
		case quiz.FilterFavorites:
			if !favorites[q.ID] {
				continue
			}
		case quiz.FilterAnswered:
			if !q.Answered() {
				continue
			}
		case quiz.FilterUnanswered:
			if q.Answered() {
				continue
			}
		case quiz.FilterIncorrect:
			if q.Correct() {
				continue
			}
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ValidFilter reports whether name is one of the known filters.
func ValidFilter(name string) bool {
	switch name {
	case quiz.FilterAll, quiz.FilterFavorites, quiz.FilterAnswered, quiz.FilterUnanswered, quiz.FilterIncorrect:
		return true
	}
	return false
}
