package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/rsduran/Athena-quiz-app-v2/internal/auth"
	"github.com/rsduran/Athena-quiz-app-v2/internal/config"
	"github.com/rsduran/Athena-quiz-app-v2/internal/quiz"
	"github.com/rsduran/Athena-quiz-app-v2/internal/scrape"
	"github.com/rsduran/Athena-quiz-app-v2/internal/session"
)

// memStore is a map-backed quiz.Store for handler tests.
type memStore struct {
	sets      map[string]*quiz.QuizSet
	questions map[int64]*quiz.Question
	further   map[int64]string
	sortOrder string
	editor    string
	attempts  map[string][]int
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		sets:      map[string]*quiz.QuizSet{},
		questions: map[int64]*quiz.Question{},
		further:   map[int64]string{},
		sortOrder: "desc",
		attempts:  map[string][]int{},
		nextID:    1,
	}
}

func (m *memStore) addSet(id, title string) {
	m.sets[id] = &quiz.QuizSet{ID: id, Title: title, SortOrder: "desc", CurrentFilter: quiz.FilterAll}
}

func (m *memStore) addQuestion(setID string, order int, answer string, selected *string) int64 {
	id := m.nextID
	m.nextID++
	m.questions[id] = &quiz.Question{
		ID: id, QuizSetID: setID, Order: order,
		Text:    "q",
		Options: []string{"a", "b", "c", "d"},
		Answer:  answer, UserSelectedOption: selected,
	}
	return id
}

func (m *memStore) set(id string) (*quiz.QuizSet, error) {
	s, ok := m.sets[id]
	if !ok {
		return nil, quiz.ErrQuizSetNotFound
	}
	return s, nil
}

func (m *memStore) CreateQuizSet(_ context.Context, title, rawURLs, urlsJSON string) (quiz.QuizSet, error) {
	id := "set-" + title
	m.sets[id] = &quiz.QuizSet{ID: id, Title: title, RawURLs: rawURLs, URLs: urlsJSON}
	return *m.sets[id], nil
}

func (m *memStore) GetQuizSet(_ context.Context, id string) (quiz.QuizSet, error) {
	s, err := m.set(id)
	if err != nil {
		return quiz.QuizSet{}, err
	}
	return *s, nil
}

func (m *memStore) ListQuizSets(_ context.Context) ([]quiz.QuizSetSummary, error) {
	out := []quiz.QuizSetSummary{}
	for _, s := range m.sets {
		out = append(out, quiz.QuizSetSummary{ID: s.ID, Title: s.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) RenameQuizSet(_ context.Context, id, title string) error {
	s, err := m.set(id)
	if err != nil {
		return err
	}
	s.Title = title
	return nil
}

func (m *memStore) DeleteQuizSet(_ context.Context, id string) error {
	if _, err := m.set(id); err != nil {
		return err
	}
	delete(m.sets, id)
	return nil
}

func (m *memStore) DeleteQuizSets(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := m.sets[id]; ok {
			delete(m.sets, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteAllQuizSets(context.Context) error {
	m.sets = map[string]*quiz.QuizSet{}
	m.questions = map[int64]*quiz.Question{}
	return nil
}

func (m *memStore) InsertQuestions(_ context.Context, setID string, qs []quiz.Question) error {
	for _, q := range qs {
		q := q
		q.ID = m.nextID
		q.QuizSetID = setID
		m.nextID++
		m.questions[q.ID] = &q
	}
	return nil
}

func (m *memStore) AllQuestions(context.Context) ([]quiz.Question, error) {
	out := []quiz.Question{}
	for _, q := range m.questions {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) QuestionByID(_ context.Context, qid int64) (quiz.Question, error) {
	q, ok := m.questions[qid]
	if !ok {
		return quiz.Question{}, quiz.ErrQuestionNotFound
	}
	return *q, nil
}

func (m *memStore) QuestionsByQuizSet(_ context.Context, setID string) ([]quiz.Question, error) {
	if _, err := m.set(setID); err != nil {
		return nil, err
	}
	out := []quiz.Question{}
	for _, q := range m.questions {
		if q.QuizSetID == setID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memStore) UserSelections(_ context.Context, setID string) (map[int64]*string, error) {
	if _, err := m.set(setID); err != nil {
		return nil, err
	}
	out := map[int64]*string{}
	for _, q := range m.questions {
		if q.QuizSetID == setID {
			out[q.ID] = q.UserSelectedOption
		}
	}
	return out, nil
}

func (m *memStore) UpdateUserSelection(_ context.Context, qid int64, sel *string) error {
	q, ok := m.questions[qid]
	if !ok {
		return quiz.ErrQuestionNotFound
	}
	q.UserSelectedOption = sel
	return nil
}

func (m *memStore) Favorites(_ context.Context, setID string) ([]quiz.Question, error) {
	if _, err := m.set(setID); err != nil {
		return nil, err
	}
	out := []quiz.Question{}
	for _, q := range m.questions {
		if q.QuizSetID == setID && q.Favorite {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *memStore) ToggleFavorite(_ context.Context, qid int64) error {
	q, ok := m.questions[qid]
	if !ok {
		return quiz.ErrQuestionNotFound
	}
	q.Favorite = !q.Favorite
	return nil
}

func (m *memStore) ShuffleQuestions(ctx context.Context, setID string) ([]quiz.Question, error) {
	qs, err := m.QuestionsByQuizSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	// deterministic "shuffle": reverse order, clear selections
	for i, q := range qs {
		m.questions[q.ID].Order = len(qs) - i
		m.questions[q.ID].UserSelectedOption = nil
	}
	return m.QuestionsByQuizSet(ctx, setID)
}

func (m *memStore) ResetQuestions(ctx context.Context, setID string) ([]quiz.Question, error) {
	qs, err := m.QuestionsByQuizSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	for _, q := range qs {
		m.questions[q.ID].UserSelectedOption = nil
	}
	return m.QuestionsByQuizSet(ctx, setID)
}

func (m *memStore) EyeIconState(_ context.Context, id string) (bool, error) {
	s, err := m.set(id)
	if err != nil {
		return false, err
	}
	return s.EyeIconState, nil
}

func (m *memStore) UpdateEyeIconState(_ context.Context, id string, state bool) error {
	s, err := m.set(id)
	if err != nil {
		return err
	}
	s.EyeIconState = state
	return nil
}

func (m *memStore) LockState(_ context.Context, id string) (bool, error) {
	s, err := m.set(id)
	if err != nil {
		return false, err
	}
	return s.LockState, nil
}

func (m *memStore) ToggleLockState(_ context.Context, id string) (bool, error) {
	s, err := m.set(id)
	if err != nil {
		return false, err
	}
	s.LockState = !s.LockState
	return s.LockState, nil
}

func (m *memStore) RecordAttempt(_ context.Context, id string, score int) error {
	s, err := m.set(id)
	if err != nil {
		return err
	}
	m.attempts[id] = append(m.attempts[id], score)
	s.Score = &score
	s.Attempts++
	s.Finished = true
	return nil
}

func (m *memStore) UpdateStatus(_ context.Context, id, status string) error {
	s, err := m.set(id)
	if err != nil {
		return err
	}
	s.Status = status
	return nil
}

func (m *memStore) QuizSetState(_ context.Context, id string) (quiz.QuizSetState, error) {
	s, err := m.set(id)
	if err != nil {
		return quiz.QuizSetState{}, err
	}
	return quiz.QuizSetState{CurrentQuestionIndex: s.CurrentQuestionIndex, CurrentFilter: s.CurrentFilter}, nil
}

func (m *memStore) SaveQuizSetState(_ context.Context, id string, index int, filter string) error {
	s, err := m.set(id)
	if err != nil {
		return err
	}
	s.CurrentQuestionIndex = index
	s.CurrentFilter = filter
	return nil
}

func (m *memStore) UpdateCurrentQuestionIndex(_ context.Context, id string, index int) error {
	s, err := m.set(id)
	if err != nil {
		return err
	}
	s.CurrentQuestionIndex = index
	return nil
}

func (m *memStore) SortOrder(context.Context) (string, error) { return m.sortOrder, nil }

func (m *memStore) UpdateSortOrder(_ context.Context, order string) error {
	m.sortOrder = order
	return nil
}

func (m *memStore) RawURLs(_ context.Context, id string) (string, error) {
	s, err := m.set(id)
	if err != nil {
		return "", err
	}
	return s.RawURLs, nil
}

func (m *memStore) SaveEditorContent(_ context.Context, content string) error {
	m.editor = content
	return nil
}

func (m *memStore) EditorContent(context.Context) (string, error) { return m.editor, nil }

func (m *memStore) SaveFurtherExplanation(_ context.Context, qid int64, explanation string) error {
	if _, ok := m.questions[qid]; !ok {
		return quiz.ErrQuestionNotFound
	}
	m.further[qid] = explanation
	return nil
}

func (m *memStore) FurtherExplanationByQuestion(_ context.Context, qid int64) (string, error) {
	e, ok := m.further[qid]
	if !ok {
		return "", quiz.ErrQuestionNotFound
	}
	return e, nil
}

var _ quiz.Store = (*memStore)(nil)

func newTestServer(t *testing.T, store *memStore) *httptest.Server {
	t.Helper()
	h := NewRouter(Deps{
		Store:   store,
		Scores:  session.NewScoreboard(),
		Scraper: scrape.NewService(store, nil),
		Auth:    auth.NewAuthService("test-secret"),
		Config: config.Config{
			CORSOrigins: []string{"http://localhost:3000"},
		},
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestQuizSetLifecycle(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Networking")
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/renameQuizSet/s1", `{"new_title":"Networking 101"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rename: status %d", resp.StatusCode)
	}
	if store.sets["s1"].Title != "Networking 101" {
		t.Fatalf("rename not applied: %q", store.sets["s1"].Title)
	}

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/renameQuizSet/missing", `{"new_title":"x"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("rename missing: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/deleteQuizSet/s1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	if len(store.sets) != 0 {
		t.Fatalf("set not deleted")
	}
}

func TestQuizSetDetailsProgress(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Algo")
	sel := "Option A"
	store.addQuestion("s1", 1, "Option A", &sel)
	store.addQuestion("s1", 2, "Option B", nil)
	store.addQuestion("s1", 3, "Option C", nil)
	store.addQuestion("s1", 4, "Option D", nil)
	srv := newTestServer(t, store)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/getQuizSetDetails/s1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if got := body["progress"].(float64); got != 25 {
		t.Fatalf("progress = %v, want 25", got)
	}
	if got := body["total_questions"].(float64); got != 4 {
		t.Fatalf("total_questions = %v, want 4", got)
	}
}

func TestUpdateUserSelectionAndClear(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Sets")
	qid := store.addQuestion("s1", 1, "Option B", nil)
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/updateUserSelection",
		`{"question_id":1,"selected_option":"Option B"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select: status %d", resp.StatusCode)
	}
	if got := store.questions[qid].UserSelectedOption; got == nil || *got != "Option B" {
		t.Fatalf("selection not stored: %v", got)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/updateUserSelection",
		`{"question_id":1,"selected_option":null}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear: status %d", resp.StatusCode)
	}
	if store.questions[qid].UserSelectedOption != nil {
		t.Fatalf("selection not cleared")
	}
}

func TestShuffleClearsSelections(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Sets")
	sel := "Option A"
	store.addQuestion("s1", 1, "Option A", &sel)
	store.addQuestion("s1", 2, "Option B", nil)
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/shuffleQuestions/s1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	for id, q := range store.questions {
		if q.UserSelectedOption != nil {
			t.Fatalf("question %d kept its selection after shuffle", id)
		}
	}
}

func TestRunningScoreEndpoints(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Sets")
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/getScore/s1", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("score before any update: status %d, want 404", resp.StatusCode)
	}

	for _, inc := range []bool{true, true, false} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/updateScore",
			`{"question_id":1,"increment":`+strconv.FormatBool(inc)+`,"quiz_set_id":"s1"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("updateScore: status %d", resp.StatusCode)
		}
	}
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/getScore/s1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("getScore: status %d", resp.StatusCode)
	}
	if got := body["score"].(float64); got != 1 {
		t.Fatalf("score = %v, want 1", got)
	}
}

func TestRecordAttemptAndStatus(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Sets")
	right := "Option B"
	wrong := "Option A"
	store.addQuestion("s1", 1, "Option B", &right)
	store.addQuestion("s1", 2, "Option B", &wrong)
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/updateQuizSetScore/s1", `{"score":7}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("updateQuizSetScore: status %d", resp.StatusCode)
	}
	if got := store.attempts["s1"]; len(got) != 1 || got[0] != 7 {
		t.Fatalf("attempts = %v, want [7]", got)
	}
	if !store.sets["s1"].Finished {
		t.Fatalf("set not marked finished")
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/updateQuizSetStatus/s1", `{"status":"Passed"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("updateQuizSetStatus: status %d", resp.StatusCode)
	}
	if store.sets["s1"].Status != quiz.StatusPassed {
		t.Fatalf("status = %q", store.sets["s1"].Status)
	}
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/updateQuizSetStatus/s1", `{"status":"Maybe"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus status accepted: %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/getQuizSetScore/s1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("getQuizSetScore: status %d", resp.StatusCode)
	}
	if got := body["score"].(float64); got != 1 {
		t.Fatalf("live score = %v, want 1", got)
	}
	if got := body["total_questions"].(float64); got != 2 {
		t.Fatalf("total_questions = %v, want 2", got)
	}
}

func TestFurtherExplanationRoundTrip(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Sets")
	store.addQuestion("s1", 1, "Option A", nil)
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/saveFurtherExplanation",
		`{"question_id":1,"explanation":"because"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save: status %d", resp.StatusCode)
	}
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/getFurtherExplanation/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: status %d", resp.StatusCode)
	}
	if body["explanation"].(string) != "because" {
		t.Fatalf("explanation = %v", body["explanation"])
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/getFurtherExplanation/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing explanation: status %d", resp.StatusCode)
	}
}

func TestGlobalLockToggle(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store)

	_, body := doJSON(t, http.MethodGet, srv.URL+"/api/getLockState/global", "")
	before := body["lock_state"].(bool)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/toggleLockState/global", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: status %d", resp.StatusCode)
	}
	if body["new_state"].(bool) == before {
		t.Fatalf("lock state did not flip")
	}
	// restore for other tests; globalLock is package state
	doJSON(t, http.MethodPost, srv.URL+"/api/toggleLockState/global", "")
}

func TestSortOrderValidation(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/updateSortOrder", `{"sortOrder":"sideways"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid order accepted: %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/updateSortOrder", `{"sortOrder":"asc"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid order rejected: %d", resp.StatusCode)
	}
	_, body := doJSON(t, http.MethodGet, srv.URL+"/api/getSortOrder", "")
	if body["sortOrder"].(string) != "asc" {
		t.Fatalf("sortOrder = %v", body["sortOrder"])
	}
}

func TestQuizSetEventsWithoutLog(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/getQuizSetEvents/s1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	events, ok := body["events"].([]any)
	if !ok {
		t.Fatalf("events = %v, want a list", body["events"])
	}
	if len(events) != 0 {
		t.Fatalf("got %d events with no log configured", len(events))
	}
}

func TestEditorContentRoundTrip(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/saveEditorContent", `{"content":"<p>notes</p>"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save: status %d", resp.StatusCode)
	}
	_, body := doJSON(t, http.MethodGet, srv.URL+"/api/getEditorContent", "")
	if body["content"].(string) != "<p>notes</p>" {
		t.Fatalf("content = %v", body["content"])
	}
}

func TestDownloadQuizPDF(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Ops / Review")
	store.addQuestion("s1", 1, "Option A", nil)
	srv := newTestServer(t, store)

	resp, err := http.Get(srv.URL + "/api/downloadQuizPdf/s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || strings.Contains(cd, "/") {
		t.Fatalf("content disposition %q", cd)
	}

	resp2, _ := doJSON(t, http.MethodGet, srv.URL+"/api/downloadQuizPdf/missing", "")
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("missing set: status %d", resp2.StatusCode)
	}
}

func TestDiscussionComments(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="comment-body">the trick is the carry bit</div></body></html>`))
	}))
	defer upstream.Close()

	store := newMemStore()
	store.addSet("s1", "Sets")
	qid := store.addQuestion("s1", 1, "Option A", nil)
	store.questions[qid].DiscussionLink = upstream.URL
	srv := newTestServer(t, store)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/getDiscussionComments/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	comments := body["discussion_comments"].([]any)
	if len(comments) != 1 || comments[0].(string) != "the trick is the carry bit" {
		t.Fatalf("comments = %v", comments)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/getDiscussionComments/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing question: status %d", resp.StatusCode)
	}
}

func TestRequireAuthGatesAPI(t *testing.T) {
	store := newMemStore()
	store.addSet("s1", "Sets")
	h := NewRouter(Deps{
		Store:   store,
		Scores:  session.NewScoreboard(),
		Scraper: scrape.NewService(store, nil),
		Auth:    auth.NewAuthService("test-secret"),
		Config: config.Config{
			CORSOrigins: []string{"http://localhost:3000"},
			RequireAuth: true,
		},
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/getQuizSets", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request: status %d, want 401", resp.StatusCode)
	}
	// auth endpoints stay open
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/auth/status", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("auth status: %d", resp.StatusCode)
	}
}
