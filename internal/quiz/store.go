package quiz

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store reads the quiz catalogue. It never writes questions or categories,
// those are managed outside this service.
type Store struct {
	categories *mongo.Collection
	questions  *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		categories: db.Collection(CategoriesCollection),
		questions:  db.Collection(QuestionsCollection),
	}
}

// EnsureIndexes creates the version index used to find the current question set.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.questions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "version", Value: -1}},
		Options: options.Index().SetName("version_desc"),
	})
	if err != nil {
		return errors.Join(ErrFailedToIndex, err)
	}
	return nil
}

// CurrentVersion returns the highest question version.
func (s *Store) CurrentVersion(ctx context.Context) (int, error) {
	var q struct {
		Version int `bson:"version"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.D{{Key: "version", Value: 1}})

	err := s.questions.FindOne(ctx, bson.D{}, opts).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNoQuestions
	}
	if err != nil {
		return 0, errors.Join(ErrFailedToLoad, err)
	}
	return q.Version, nil
}

// CurrentQuestions returns the questions of the current version with their
// categories resolved.
func (s *Store) CurrentQuestions(ctx context.Context) (*QuestionSet, error) {
	version, err := s.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := s.questions.Find(ctx, bson.D{{Key: "version", Value: version}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	var questions []Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	ids := CategoryIDs(questions, func(q Question) bson.ObjectID { return q.CategoryID })
	cats, err := s.CategoriesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Category = cats[questions[i].CategoryID]
	}

	return &QuestionSet{Version: version, Questions: questions}, nil
}

// CategoriesByID loads the given categories with one query. Ids without a
// document are absent from the result.
func (s *Store) CategoriesByID(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*Category, error) {
	out := make(map[bson.ObjectID]*Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.categories.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, errors.Join(ErrCategoryLookup, err)
	}
	var cats []Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, errors.Join(ErrCategoryLookup, err)
	}
	for i := range cats {
		out[cats[i].ID] = &cats[i]
	}
	return out, nil
}

// Seed inserts categories and questions. Used by tests and local setup.
func (s *Store) Seed(ctx context.Context, categories []Category, questions []Question) error {
	if len(categories) > 0 {
		if _, err := s.categories.InsertMany(ctx, categories); err != nil {
			return fmt.Errorf("quiz: seed categories: %w", err)
		}
	}
	if len(questions) > 0 {
		if _, err := s.questions.InsertMany(ctx, questions); err != nil {
			return fmt.Errorf("quiz: seed questions: %w", err)
		}
	}
	return nil
}
