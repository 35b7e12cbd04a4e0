package session

import (
	"math/rand"

	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
)

// shuffleOptions returns q with its options uniformly permuted and the
// answer label recomputed to point at the new position of the option that
// was correct before the shuffle. A question whose answer label does not
// resolve to an option is returned untouched, since there is no correct
// option to follow through the permutation. The input is not modified.
func shuffleOptions(q quiz.Question) quiz.Question {
	idx := quiz.OptionIndex(q.Answer)
	if idx < 0 || idx >= len(q.Options) {
		return q
	}
	correct := q.Options[idx]

	options := make([]string, len(q.Options))
	copy(options, q.Options)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	q.Options = options
	for i, opt := range options {
		if opt == correct {
			q.Answer = quiz.OptionLabel(i)
			break
		}
	}
	return q
}

// restoreOptions undoes shuffleOptions using the load-time snapshots.
func restoreOptions(q quiz.Question) quiz.Question {
	if q.OriginalOptions != nil {
		q.Options = append([]string(nil), q.OriginalOptions...)
	}
	if q.OriginalAnswer != "" {
		q.Answer = q.OriginalAnswer
	}
	return q
}

// snapshotOriginals records the canonical options and answer label so a
// later un-shuffle can restore them exactly.
func snapshotOriginals(qs []quiz.Question) {
	for i := range qs {
		qs[i].OriginalOptions = append([]string(nil), qs[i].Options...)
		qs[i].OriginalAnswer = qs[i].Answer
	}
}
