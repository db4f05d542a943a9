package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Arokeji/Nailted-Back/internal/quiz"
)

// CategoryResolver loads categories by id. Implemented by quiz.Store.
type CategoryResolver interface {
	CategoriesByID(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*quiz.Category, error)
}

// Store is the session access layer over the sessions collection.
// Update is read-then-write without transactions: concurrent updates of the
// same session are last-write-wins.
type Store struct {
	sessions   *mongo.Collection
	categories CategoryResolver
	hasher     *EmailHasher
	now        func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(db *mongo.Database, categories CategoryResolver, hasher *EmailHasher, opts ...StoreOption) *Store {
	s := &Store{
		sessions:   db.Collection(Collection),
		categories: categories,
		hasher:     hasher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the email lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emailIndex", Value: 1}},
		Options: options.Index().SetName("emailIndex_1").SetSparse(true),
	})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, params CreateParams) (*Session, error) {
	now := s.timestamp()
	sess := Session{
		ID:            bson.NewObjectID(),
		Version:       params.Version,
		CategoryScore: []CategoryScore{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if params.Email != "" {
		if err := s.setEmail(&sess, params.Email); err != nil {
			return nil, err
		}
	}

	if _, err := s.sessions.InsertOne(ctx, sess); err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return &sess, nil
}

func (s *Store) Update(ctx context.Context, id string, p Patch) (*Session, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	sess, err := s.find(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := applyPatch(sess, p); err != nil {
		return nil, err
	}
	if p.Email != nil && Normalize(*p.Email) != "" {
		// An unchanged address keeps its hash.
		if !s.hasher.Match(sess.Email, *p.Email) || sess.EmailIndex == "" {
			if err := s.setEmail(sess, *p.Email); err != nil {
				return nil, err
			}
		}
	}
	sess.UpdatedAt = s.timestamp()

	res, err := s.sessions.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, sess)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	if err := s.resolve(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Session, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	sess, err := s.find(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := s.resolve(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) GetResults(ctx context.Context, id string) (*Results, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Results(), nil
}

// GetByEmail returns the first session owned by email. Indexed sessions are
// checked first, then sessions stored before the index existed.
func (s *Store) GetByEmail(ctx context.Context, email string) (*Session, error) {
	if len(Normalize(email)) > maxEmailBytes {
		return nil, ErrEmailTooLong
	}
	if Normalize(email) == "" {
		return nil, ErrNotFound
	}

	sortByCreation := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	indexed := bson.D{{Key: "emailIndex", Value: s.hasher.Index(email)}}
	sess, err := s.firstMatch(ctx, indexed, email, sortByCreation)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		legacy := bson.D{
			{Key: "emailIndex", Value: bson.D{{Key: "$exists", Value: false}}},
			{Key: "email", Value: bson.D{{Key: "$exists", Value: true}}},
		}
		sess, err = s.firstMatch(ctx, legacy, email, sortByCreation)
		if err != nil {
			return nil, err
		}
	}
	if sess == nil {
		return nil, ErrNotFound
	}

	if err := s.resolve(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) firstMatch(ctx context.Context, filter bson.D, email string, opts *options.FindOptionsBuilder) (*Session, error) {
	cur, err := s.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var sess Session
		if err := cur.Decode(&sess); err != nil {
			return nil, errors.Join(ErrStore, err)
		}
		if s.hasher.Match(sess.Email, email) {
			return &sess, nil
		}
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return nil, nil
}

func (s *Store) find(ctx context.Context, oid bson.ObjectID) (*Session, error) {
	var sess Session
	err := s.sessions.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if sess.CategoryScore == nil {
		sess.CategoryScore = []CategoryScore{}
	}
	return &sess, nil
}

func (s *Store) setEmail(sess *Session, email string) error {
	hash, err := s.hasher.Hash(email)
	if err != nil {
		return err
	}
	sess.Email = hash
	sess.EmailIndex = s.hasher.Index(email)
	return nil
}

// resolve fills CategoryScore.Category with one lookup.
func (s *Store) resolve(ctx context.Context, sess *Session) error {
	if len(sess.CategoryScore) == 0 || s.categories == nil {
		return nil
	}
	ids := quiz.CategoryIDs(sess.CategoryScore, func(cs CategoryScore) bson.ObjectID { return cs.CategoryID })
	cats, err := s.categories.CategoriesByID(ctx, ids)
	if err != nil {
		return err
	}
	for i := range sess.CategoryScore {
		sess.CategoryScore[i].Category = cats[sess.CategoryScore[i].CategoryID]
	}
	return nil
}

// timestamp truncates to milliseconds, the precision BSON dates keep.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
