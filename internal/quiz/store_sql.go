package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateQuizSet(ctx context.Context, title, rawURLs, urlsJSON string) (QuizSet, error) {
	qs := QuizSet{
		ID:            uuid.NewString(),
		Title:         title,
		URLs:          urlsJSON,
		RawURLs:       rawURLs,
		EyeIconState:  true,
		LockState:     true,
		SortOrder:     "desc",
		CurrentFilter: FilterAll,
		LastUpdated:   time.Now(),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO quiz_sets
		(id,title,urls,raw_urls,eye_icon_state,lock_state,attempts,finished,status,sort_order,current_question_index,current_filter,last_updated)
		VALUES ($1,$2,$3,$4,$5,$6,0,$7,'','desc',0,'all',$8)`,
		qs.ID, qs.Title, qs.URLs, qs.RawURLs, true, true, false, qs.LastUpdated.Unix())
	if err != nil {
		return QuizSet{}, err
	}
	return qs, nil
}

func (s *SQLStore) GetQuizSet(ctx context.Context, id string) (QuizSet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,urls,raw_urls,eye_icon_state,lock_state,score,attempts,finished,status,sort_order,current_question_index,current_filter,last_updated
		FROM quiz_sets WHERE id=$1`, id)
	return scanQuizSet(row)
}

func scanQuizSet(row *sql.Row) (QuizSet, error) {
	var qs QuizSet
	var score sql.NullInt64
	var updated int64
	err := row.Scan(&qs.ID, &qs.Title, &qs.URLs, &qs.RawURLs, &qs.EyeIconState, &qs.LockState,
		&score, &qs.Attempts, &qs.Finished, &qs.Status, &qs.SortOrder,
		&qs.CurrentQuestionIndex, &qs.CurrentFilter, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuizSet{}, ErrQuizSetNotFound
		}
		return QuizSet{}, err
	}
	if score.Valid {
		v := int(score.Int64)
		qs.Score = &v
	}
	qs.LastUpdated = time.Unix(updated, 0)
	return qs, nil
}

func (s *SQLStore) ListQuizSets(ctx context.Context) ([]QuizSetSummary, error) {
	order := "DESC"
	if so, err := s.SortOrder(ctx); err == nil && so == "asc" {
		order = "ASC"
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,score,attempts,finished,last_updated
		FROM quiz_sets ORDER BY last_updated `+order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []QuizSetSummary{}
	for rows.Next() {
		var sum QuizSetSummary
		var score sql.NullInt64
		var updated int64
		if err := rows.Scan(&sum.ID, &sum.Title, &score, &sum.Attempts, &sum.Finished, &updated); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			sum.Score = &v
		}
		sum.LastUpdated = time.Unix(updated, 0).Format(time.RFC3339)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := s.fillSummary(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *SQLStore) fillSummary(ctx context.Context, sum *QuizSetSummary) error {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) - COUNT(user_selected_option) FROM questions WHERE quiz_set_id=$1`, sum.ID)
	if err := row.Scan(&sum.TotalQuestions, &sum.UnansweredQuestions); err != nil {
		return err
	}
	if sum.TotalQuestions > 0 {
		answered := sum.TotalQuestions - sum.UnansweredQuestions
		sum.Progress = int(math.Round(float64(answered) / float64(sum.TotalQuestions) * 100))
	}

	var n int
	var avg sql.NullFloat64
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*), AVG(score) FROM attempts WHERE quiz_set_id=$1`, sum.ID)
	if err := row.Scan(&n, &avg); err != nil {
		return err
	}
	sum.Attempts = n
	if avg.Valid {
		sum.AverageScore = &avg.Float64
	}
	var latest sql.NullInt64
	row = s.db.QueryRowContext(ctx,
		`SELECT score FROM attempts WHERE quiz_set_id=$1 ORDER BY id DESC LIMIT 1`, sum.ID)
	if err := row.Scan(&latest); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if latest.Valid {
		v := int(latest.Int64)
		sum.LatestScore = &v
	}
	return nil
}

func (s *SQLStore) RenameQuizSet(ctx context.Context, id, title string) error {
	return s.execOnSet(ctx, `UPDATE quiz_sets SET title=$1, last_updated=$2 WHERE id=$3`, title, time.Now().Unix(), id)
}

func (s *SQLStore) DeleteQuizSet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quiz_sets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizSetNotFound
	}
	return nil
}

func (s *SQLStore) DeleteQuizSets(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deleted := 0
	for _, id := range ids {
		err := s.DeleteQuizSet(ctx, id)
		if errors.Is(err, ErrQuizSetNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (s *SQLStore) DeleteAllQuizSets(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM quiz_sets`)
	return err
}

func (s *SQLStore) InsertQuestions(ctx context.Context, quizSetID string, qs []Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, q := range qs {
		oj, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO questions
			(quiz_set_id,ord,text,options_json,answer,favorite,url,explanation,discussion_link,user_selected_option,has_math_content)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			quizSetID, q.Order, q.Text, string(oj), q.Answer, q.Favorite, q.URL,
			q.Explanation, q.DiscussionLink, q.UserSelectedOption, q.HasMathContent)
		if err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE quiz_sets SET last_updated=$1 WHERE id=$2`, time.Now().Unix(), quizSetID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) QuestionsByQuizSet(ctx context.Context, quizSetID string) ([]Question, error) {
	return s.queryQuestions(ctx, `SELECT id,quiz_set_id,ord,text,options_json,answer,favorite,url,explanation,discussion_link,user_selected_option,has_math_content
		FROM questions WHERE quiz_set_id=$1 ORDER BY ord`, quizSetID)
}

func (s *SQLStore) AllQuestions(ctx context.Context) ([]Question, error) {
	return s.queryQuestions(ctx, `SELECT id,quiz_set_id,ord,text,options_json,answer,favorite,url,explanation,discussion_link,user_selected_option,has_math_content
		FROM questions ORDER BY quiz_set_id, ord`)
}

func (s *SQLStore) QuestionByID(ctx context.Context, questionID int64) (Question, error) {
	qs, err := s.queryQuestions(ctx, `SELECT id,quiz_set_id,ord,text,options_json,answer,favorite,url,explanation,discussion_link,user_selected_option,has_math_content
		FROM questions WHERE id=$1`, questionID)
	if err != nil {
		return Question{}, err
	}
	if len(qs) == 0 {
		return Question{}, ErrQuestionNotFound
	}
	return qs[0], nil
}

func (s *SQLStore) queryQuestions(ctx context.Context, query string, args ...any) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		var q Question
		var oj string
		var sel sql.NullString
		if err := rows.Scan(&q.ID, &q.QuizSetID, &q.Order, &q.Text, &oj, &q.Answer, &q.Favorite,
			&q.URL, &q.Explanation, &q.DiscussionLink, &sel, &q.HasMathContent); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
			return nil, err
		}
		if sel.Valid {
			v := sel.String
			q.UserSelectedOption = &v
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) UserSelections(ctx context.Context, quizSetID string) (map[int64]*string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_selected_option FROM questions WHERE quiz_set_id=$1`, quizSetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]*string{}
	for rows.Next() {
		var id int64
		var sel sql.NullString
		if err := rows.Scan(&id, &sel); err != nil {
			return nil, err
		}
		if sel.Valid {
			v := sel.String
			out[id] = &v
		} else {
			out[id] = nil
		}
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateUserSelection(ctx context.Context, questionID int64, selected *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET user_selected_option=$1 WHERE id=$2`, selected, questionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) Favorites(ctx context.Context, quizSetID string) ([]Question, error) {
	return s.queryQuestions(ctx, `SELECT id,quiz_set_id,ord,text,options_json,answer,favorite,url,explanation,discussion_link,user_selected_option,has_math_content
		FROM questions WHERE quiz_set_id=$1 AND favorite ORDER BY ord`, quizSetID)
}

func (s *SQLStore) ToggleFavorite(ctx context.Context, questionID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET favorite = NOT favorite WHERE id=$1`, questionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// ShuffleQuestions assigns a random permutation of order values and clears
// every selection, mirroring a fresh run in the new order.
func (s *SQLStore) ShuffleQuestions(ctx context.Context, quizSetID string) ([]Question, error) {
	qs, err := s.QuestionsByQuizSet(ctx, quizSetID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}

	ids := make([]int64, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	for newOrder, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE questions SET ord=$1, user_selected_option=NULL WHERE id=$2`, newOrder, id); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.QuestionsByQuizSet(ctx, quizSetID)
}

func (s *SQLStore) ResetQuestions(ctx context.Context, quizSetID string) ([]Question, error) {
	qs, err := s.QuestionsByQuizSet(ctx, quizSetID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE questions SET user_selected_option=NULL WHERE quiz_set_id=$1`, quizSetID)
	if err != nil {
		return nil, err
	}
	return s.QuestionsByQuizSet(ctx, quizSetID)
}

func (s *SQLStore) EyeIconState(ctx context.Context, quizSetID string) (bool, error) {
	var state bool
	err := s.db.QueryRowContext(ctx, `SELECT eye_icon_state FROM quiz_sets WHERE id=$1`, quizSetID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrQuizSetNotFound
	}
	return state, err
}

func (s *SQLStore) UpdateEyeIconState(ctx context.Context, quizSetID string, state bool) error {
	return s.execOnSet(ctx, `UPDATE quiz_sets SET eye_icon_state=$1 WHERE id=$2`, state, quizSetID)
}

func (s *SQLStore) LockState(ctx context.Context, quizSetID string) (bool, error) {
	var state bool
	err := s.db.QueryRowContext(ctx, `SELECT lock_state FROM quiz_sets WHERE id=$1`, quizSetID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrQuizSetNotFound
	}
	return state, err
}

func (s *SQLStore) ToggleLockState(ctx context.Context, quizSetID string) (bool, error) {
	if err := s.execOnSet(ctx, `UPDATE quiz_sets SET lock_state = NOT lock_state WHERE id=$1`, quizSetID); err != nil {
		return false, err
	}
	return s.LockState(ctx, quizSetID)
}

func (s *SQLStore) RecordAttempt(ctx context.Context, quizSetID string, score int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	res, err := tx.ExecContext(ctx,
		`UPDATE quiz_sets SET score=$1, attempts=attempts+1, finished=$2, last_updated=$3 WHERE id=$4`,
		score, true, time.Now().Unix(), quizSetID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizSetNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO attempts (quiz_set_id,score,ts) VALUES ($1,$2,$3)`,
		quizSetID, score, time.Now().Unix()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) UpdateStatus(ctx context.Context, quizSetID, status string) error {
	return s.execOnSet(ctx, `UPDATE quiz_sets SET status=$1 WHERE id=$2`, status, quizSetID)
}

func (s *SQLStore) QuizSetState(ctx context.Context, quizSetID string) (QuizSetState, error) {
	var st QuizSetState
	err := s.db.QueryRowContext(ctx,
		`SELECT current_question_index, current_filter FROM quiz_sets WHERE id=$1`, quizSetID).
		Scan(&st.CurrentQuestionIndex, &st.CurrentFilter)
	if errors.Is(err, sql.ErrNoRows) {
		return QuizSetState{}, ErrQuizSetNotFound
	}
	return st, err
}

func (s *SQLStore) SaveQuizSetState(ctx context.Context, quizSetID string, index int, filter string) error {
	return s.execOnSet(ctx,
		`UPDATE quiz_sets SET current_question_index=$1, current_filter=$2 WHERE id=$3`,
		index, filter, quizSetID)
}

func (s *SQLStore) UpdateCurrentQuestionIndex(ctx context.Context, quizSetID string, index int) error {
	return s.execOnSet(ctx,
		`UPDATE quiz_sets SET current_question_index=$1 WHERE id=$2`, index, quizSetID)
}

// SortOrder is a single dashboard-wide preference stored on every row; any
// row answers for all of them.
func (s *SQLStore) SortOrder(ctx context.Context) (string, error) {
	var order string
	err := s.db.QueryRowContext(ctx, `SELECT sort_order FROM quiz_sets LIMIT 1`).Scan(&order)
	if errors.Is(err, sql.ErrNoRows) {
		return "desc", nil
	}
	return order, err
}

func (s *SQLStore) UpdateSortOrder(ctx context.Context, order string) error {
	if order != "asc" && order != "desc" {
		return errors.New("invalid sort order")
	}
	_, err := s.db.ExecContext(ctx, `UPDATE quiz_sets SET sort_order=$1`, order)
	return err
}

func (s *SQLStore) RawURLs(ctx context.Context, quizSetID string) (string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT raw_urls FROM quiz_sets WHERE id=$1`, quizSetID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrQuizSetNotFound
	}
	return raw, err
}

// SaveEditorContent keeps a single scratchpad document, updated in place.
func (s *SQLStore) SaveEditorContent(ctx context.Context, content string) error {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM editor_content LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = s.db.ExecContext(ctx, `INSERT INTO editor_content (id,content) VALUES ($1,$2)`,
			uuid.NewString(), content)
		return err
	}
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE editor_content SET content=$1 WHERE id=$2`, content, id)
	return err
}

func (s *SQLStore) EditorContent(ctx context.Context) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM editor_content LIMIT 1`).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return content, err
}

func (s *SQLStore) SaveFurtherExplanation(ctx context.Context, questionID int64, explanation string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE further_explanations SET explanation=$1 WHERE question_id=$2`, explanation, questionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO further_explanations (question_id,explanation) VALUES ($1,$2)`,
		questionID, explanation)
	return err
}

func (s *SQLStore) FurtherExplanationByQuestion(ctx context.Context, questionID int64) (string, error) {
	var explanation string
	err := s.db.QueryRowContext(ctx,
		`SELECT explanation FROM further_explanations WHERE question_id=$1 ORDER BY id LIMIT 1`, questionID).
		Scan(&explanation)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrQuestionNotFound
	}
	return explanation, err
}

func (s *SQLStore) execOnSet(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizSetNotFound
	}
	return nil
}
