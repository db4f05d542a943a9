package api_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Arokeji/Nailted-Back/core/email"
	"github.com/Arokeji/Nailted-Back/internal/quiz"
	"github.com/Arokeji/Nailted-Back/internal/session"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Create(ctx context.Context, p session.CreateParams) (*session.Session, error) {
	args := m.Called(ctx, p)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *mockSessions) Update(ctx context.Context, id string, p session.Patch) (*session.Session, error) {
	args := m.Called(ctx, id, p)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *mockSessions) GetByID(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *mockSessions) GetResults(ctx context.Context, id string) (*session.Results, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*session.Results)
	return r, args.Error(1)
}

func (m *mockSessions) GetByEmail(ctx context.Context, addr string) (*session.Session, error) {
	args := m.Called(ctx, addr)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

type mockQuiz struct {
	mock.Mock
}

func (m *mockQuiz) CurrentQuestions(ctx context.Context) (*quiz.QuestionSet, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*quiz.QuestionSet)
	return s, args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, p email.SendEmailParams) error {
	return m.Called(ctx, p).Error(0)
}

// memSessions is an in-memory session store with the same update rules as
// session.Store, minus hashing.
type memSessions struct {
	mu         sync.Mutex
	sessions   map[string]*session.Session
	categories map[bson.ObjectID]*quiz.Category
}

func newMemSessions(cats ...quiz.Category) *memSessions {
	m := &memSessions{
		sessions:   map[string]*session.Session{},
		categories: map[bson.ObjectID]*quiz.Category{},
	}
	for i := range cats {
		m.categories[cats[i].ID] = &cats[i]
	}
	return m
}

func (m *memSessions) Create(_ context.Context, p session.CreateParams) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &session.Session{ID: bson.NewObjectID(), Version: p.Version, CategoryScore: []session.CategoryScore{}}
	m.sessions[s.ID.Hex()] = s
	cp := *s
	return &cp, nil
}

func (m *memSessions) Update(_ context.Context, id string, p session.Patch) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	if p.GlobalScore != nil && *p.GlobalScore >= 0 {
		v := *p.GlobalScore
		s.GlobalScore = &v
	}
	if p.CategoryScore != nil {
		scores := make([]session.CategoryScore, 0, len(*p.CategoryScore))
		for _, in := range *p.CategoryScore {
			oid, err := bson.ObjectIDFromHex(in.Category)
			if err != nil {
				return nil, &session.CategoryError{Value: in.Category}
			}
			scores = append(scores, session.CategoryScore{CategoryID: oid, Score: in.Score})
		}
		s.CategoryScore = scores
	}
	if p.Email != nil && *p.Email != "" {
		s.Email = "hashed:" + *p.Email
	}
	return m.resolved(s), nil
}

func (m *memSessions) GetByID(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return m.resolved(s), nil
}

func (m *memSessions) GetResults(ctx context.Context, id string) (*session.Results, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Results(), nil
}

func (m *memSessions) GetByEmail(_ context.Context, addr string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Email == "hashed:"+addr {
			return m.resolved(s), nil
		}
	}
	return nil, session.ErrNotFound
}

func (m *memSessions) resolved(s *session.Session) *session.Session {
	cp := *s
	cp.CategoryScore = make([]session.CategoryScore, len(s.CategoryScore))
	for i, cs := range s.CategoryScore {
		cs.Category = m.categories[cs.CategoryID]
		cp.CategoryScore[i] = cs
	}
	return &cp
}
