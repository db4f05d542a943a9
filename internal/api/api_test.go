package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Arokeji/Nailted-Back/core/email"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/core/router"
	"github.com/Arokeji/Nailted-Back/internal/api"
	"github.com/Arokeji/Nailted-Back/internal/quiz"
	"github.com/Arokeji/Nailted-Back/internal/session"
	"github.com/Arokeji/Nailted-Back/pkg/ratelimiter"
)

func newRouter(h *api.Handler) http.Handler {
	r := router.New[*router.Context](router.WithErrorHandler(response.JSONErrorHandler[*router.Context]))
	h.Register(r)
	return r
}

func call(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	id := bson.NewObjectID()
	sessions.On("Create", mock.Anything, session.CreateParams{Version: 1}).
		Return(&session.Session{ID: id, Version: 1, CategoryScore: []session.CategoryScore{}}, nil).Once()
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	w, body := call(t, r, http.MethodPost, "/session", `{"version":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, id.Hex(), body["id"])
	assert.Equal(t, float64(1), body["version"])
	assert.NotContains(t, body, "globalScore")
	assert.NotContains(t, body, "email")
	sessions.AssertExpectations(t)
}

func TestCreateSessionValidation(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing version", `{}`, "version"},
		{"negative version", `{"version":-1}`, "version"},
		{"bad email", `{"version":1,"email":"nope"}`, "email"},
	}
	for _, tt := range tests {
		w, body := call(t, r, http.MethodPost, "/session", tt.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.name)
		details, _ := body["details"].(map[string]any)
		assert.Contains(t, details, tt.field, tt.name)
	}

	w, body := call(t, r, http.MethodPost, "/session", `{"version":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", body["code"])

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"version":1}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "content type is required")

	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSessionStoreFailure(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	sessions.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.Join(session.ErrStore, errors.New("connection reset by peer")))
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	w, body := call(t, r, http.MethodPost, "/session", `{"version":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_server_error", body["code"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	id := bson.NewObjectID()
	score := 85.0
	sessions.On("GetByID", mock.Anything, id.Hex()).Return(&session.Session{
		ID:          id,
		Version:     1,
		GlobalScore: &score,
		CategoryScore: []session.CategoryScore{
			{Category: &quiz.Category{Name: "Culture"}, Score: 7},
		},
	}, nil)
	sessions.On("GetByID", mock.Anything, "missing").Return(nil, session.ErrNotFound)
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	w, body := call(t, r, http.MethodGet, "/session/"+id.Hex(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 85.0, body["globalScore"])
	scores := body["categoryScore"].([]any)
	require.Len(t, scores, 1)
	assert.Equal(t, "Culture", scores[0].(map[string]any)["category"].(map[string]any)["name"])

	w, body = call(t, r, http.MethodGet, "/session/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session not found", body["message"])
}

func TestGetSessionByEmail(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	id := bson.NewObjectID()
	sessions.On("GetByEmail", mock.Anything, "ana@example.com").Return(&session.Session{ID: id, Version: 2}, nil)
	sessions.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, session.ErrNotFound)
	sessions.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, session.ErrEmailTooLong)
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	w, body := call(t, r, http.MethodGet, "/session/email/ana@example.com", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.Hex(), body["id"])

	w, _ = call(t, r, http.MethodGet, "/session/email/bob@example.com", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, r, http.MethodGet, "/session/email/"+strings.Repeat("a", 80)+"@x.io", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodGet, "/session/email/%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSession(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	id := bson.NewObjectID().Hex()
	sessions.On("Update", mock.Anything, id, mock.MatchedBy(func(p session.Patch) bool {
		return p.GlobalScore != nil && *p.GlobalScore == 0 && p.CategoryScore == nil && p.Email == nil
	})).Return(&session.Session{Version: 1}, nil).Once()
	sessions.On("Update", mock.Anything, "unknown", mock.Anything).Return(nil, session.ErrNotFound).Once()
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	w, _ := call(t, r, http.MethodPut, "/session/"+id, `{"globalScore":0}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, r, http.MethodPut, "/session/unknown", `{"globalScore":10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	sessions.AssertExpectations(t)
}

func TestUpdateResultsIgnoresEmail(t *testing.T) {
	t.Parallel()

	sessions := &mockSessions{}
	id := bson.NewObjectID().Hex()
	score := 40.0
	sessions.On("Update", mock.Anything, id, mock.MatchedBy(func(p session.Patch) bool {
		return p.Email == nil && p.CategoryScore != nil && len(*p.CategoryScore) == 1
	})).Return(&session.Session{GlobalScore: &score, CategoryScore: []session.CategoryScore{{Score: 4}}}, nil)
	sessions.On("Update", mock.Anything, "bad", mock.Anything).Return(nil, &session.CategoryError{Value: "x"})
	r := newRouter(api.New(sessions, &mockQuiz{}, &mockSender{}))

	body := `{"email":"a@b.co","globalScore":40,"categoryScore":[{"category":"6474ebae9b1c30f834df26e7","score":4}]}`
	w, out := call(t, r, http.MethodPut, "/session/"+id+"/results", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 40.0, out["globalScore"])
	assert.Len(t, out["categoryScore"], 1)
	assert.NotContains(t, out, "version")

	w, out = call(t, r, http.MethodPut, "/session/bad/results", `{"categoryScore":[{"category":"x"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, out["details"], "categoryScore")
}

func TestCurrentQuestions(t *testing.T) {
	t.Parallel()

	quizzes := &mockQuiz{}
	quizzes.On("CurrentQuestions", mock.Anything).Return(&quiz.QuestionSet{
		Version: 3,
		Questions: []quiz.Question{{
			Question: "Do you share feedback?",
			Category: &quiz.Category{Name: "Culture"},
			Options:  []quiz.Option{{Text: "Yes", Score: 10}},
		}},
	}, nil).Once()
	quizzes.On("CurrentQuestions", mock.Anything).Return(nil, quiz.ErrNoQuestions).Once()
	r := newRouter(api.New(&mockSessions{}, quizzes, &mockSender{}))

	w, body := call(t, r, http.MethodGet, "/quizz/current-version", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["version"])
	assert.Len(t, body["questions"], 1)

	w, _ = call(t, r, http.MethodGet, "/quizz/current-version", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendResults(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID().Hex()
	score := 72.5
	sessions := &mockSessions{}
	sessions.On("Update", mock.Anything, id, mock.MatchedBy(func(p session.Patch) bool {
		return p.Email != nil && *p.Email == "owner@acme.com" && p.GlobalScore == nil
	})).Return(&session.Session{
		GlobalScore: &score,
		CategoryScore: []session.CategoryScore{
			{Category: &quiz.Category{Name: "Culture & <Values>"}, Score: 8},
			{Score: 2},
		},
	}, nil)

	sender := &mockSender{}
	var sent email.SendEmailParams
	sender.On("SendEmail", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(email.SendEmailParams)
	}).Return(nil).Once()

	r := newRouter(api.New(sessions, &mockQuiz{}, sender, api.WithAppName("Nailted")))
	w, body := call(t, r, http.MethodPut, "/session/"+id+"/send-results",
		`{"email":"owner@acme.com","companyName":"Acme"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner@acme.com", body["owner"])
	assert.Equal(t, "Email sent successfully", body["message"])

	assert.Equal(t, "owner@acme.com", sent.SendTo)
	assert.Equal(t, "Nailted quiz results for Acme", sent.Subject)
	assert.Equal(t, "quiz-results", sent.Tag)
	assert.Contains(t, sent.BodyHTML, "72.5")
	assert.Contains(t, sent.BodyHTML, "Culture &amp; &lt;Values&gt;")
	assert.Contains(t, sent.BodyHTML, "Other")
	sender.AssertExpectations(t)
}

func TestSendResultsUsesClientData(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID().Hex()
	sessions := &mockSessions{}
	sessions.On("Update", mock.Anything, id, mock.Anything).Return(&session.Session{}, nil)

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return strings.Contains(p.BodyHTML, "Math") &&
			strings.Contains(p.BodyHTML, "Leadership") &&
			strings.Contains(p.BodyHTML, "91")
	})).Return(nil).Once()

	r := newRouter(api.New(sessions, &mockQuiz{}, sender))
	w, _ := call(t, r, http.MethodPut, "/session/"+id+"/send-results", `{
		"email": "owner@acme.com",
		"companyName": "Acme",
		"dataResults": {
			"globalScore": 91,
			"categoryScores": [
				{"category": "Math", "score": 90},
				{"category": {"name": "Leadership"}, "score": 80}
			]
		}
	}`)
	assert.Equal(t, http.StatusOK, w.Code)
	sender.AssertExpectations(t)
}

func TestSendResultsFailures(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID().Hex()
	sessions := &mockSessions{}
	sessions.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, session.ErrNotFound)
	sessions.On("Update", mock.Anything, id, mock.Anything).Return(&session.Session{}, nil)

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything).
		Return(errors.Join(email.ErrFailedToSendEmail, errors.New("postmark: 401"))).Once()
	r := newRouter(api.New(sessions, &mockQuiz{}, sender))

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"missing email", id, `{"companyName":"Acme"}`, http.StatusBadRequest},
		{"invalid email", id, `{"email":"nope","companyName":"Acme"}`, http.StatusBadRequest},
		{"missing company", id, `{"email":"owner@acme.com"}`, http.StatusBadRequest},
		{"unknown session", "missing", `{"email":"owner@acme.com","companyName":"Acme"}`, http.StatusNotFound},
		{"delivery failure", id, `{"email":"owner@acme.com","companyName":"Acme"}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w, body := call(t, r, http.MethodPut, "/session/"+tt.target+"/send-results", tt.body)
		assert.Equal(t, tt.status, w.Code, tt.name)
		if tt.status == http.StatusInternalServerError {
			assert.Equal(t, "failed to send email", body["message"])
			assert.NotContains(t, w.Body.String(), "401")
		}
	}
	sender.AssertExpectations(t)
}

func TestSendResultsRateLimited(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID().Hex()
	sessions := &mockSessions{}
	sessions.On("Update", mock.Anything, id, mock.Anything).Return(&session.Session{}, nil)
	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil)

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.PerWindow(1, time.Hour))
	require.NoError(t, err)
	r := newRouter(api.New(sessions, &mockQuiz{}, sender, api.WithSendResultsLimiter(limiter)))

	body := `{"email":"owner@acme.com","companyName":"Acme"}`
	w, _ := call(t, r, http.MethodPut, "/session/"+id+"/send-results", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w, out := call(t, r, http.MethodPut, "/session/"+id+"/send-results", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "too_many_requests", out["code"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	sender.AssertNumberOfCalls(t, "SendEmail", 1)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	r := newRouter(api.New(&mockSessions{}, &mockQuiz{}, &mockSender{}))
	w, body := call(t, r, http.MethodDelete, "/session/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", body["code"])
}

func TestEndToEnd(t *testing.T) {
	t.Parallel()

	culture := quiz.Category{ID: bson.NewObjectID(), Name: "Culture"}
	r := newRouter(api.New(newMemSessions(culture), &mockQuiz{}, &mockSender{}))

	w, created := call(t, r, http.MethodPost, "/session", `{"version":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), created["version"])
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w, results := call(t, r, http.MethodPut, "/session/"+id+"/results",
		`{"globalScore":85,"categoryScore":[{"category":"`+culture.ID.Hex()+`","score":9}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 85.0, results["globalScore"])

	w, got := call(t, r, http.MethodGet, "/session/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 85.0, got["globalScore"])
	assert.Equal(t, float64(1), got["version"])
	scores := got["categoryScore"].([]any)
	require.Len(t, scores, 1)
	cat := scores[0].(map[string]any)["category"].(map[string]any)
	assert.Equal(t, "Culture", cat["name"])
	assert.Equal(t, 9.0, scores[0].(map[string]any)["score"])

	w, _ = call(t, r, http.MethodPut, "/session/"+id, `{"globalScore":-1}`)
	require.Equal(t, http.StatusOK, w.Code)
	_, got = call(t, r, http.MethodGet, "/session/"+id, "")
	assert.Equal(t, 85.0, got["globalScore"])
}
