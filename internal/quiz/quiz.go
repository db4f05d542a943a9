package quiz

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CategoriesCollection = "categories"
	QuestionsCollection  = "questions"
)

type Category struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
}

type Option struct {
	Text  string  `bson:"text" json:"text"`
	Score float64 `bson:"score" json:"score"`
}

// Question is a single quiz question. CategoryID is the stored reference,
// Category is filled in when the question is read through the Store.
type Question struct {
	ID         bson.ObjectID `bson:"_id" json:"id"`
	Version    int           `bson:"version" json:"version"`
	CategoryID bson.ObjectID `bson:"category" json:"-"`
	Category   *Category     `bson:"-" json:"category"`
	Question   string        `bson:"question" json:"question"`
	Options    []Option      `bson:"options" json:"options"`
}

// QuestionSet is the question list of one quiz version.
type QuestionSet struct {
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

// CategoryIDs returns the distinct non-zero ids in order of first appearance.
func CategoryIDs[T any](items []T, ref func(T) bson.ObjectID) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(items))
	ids := make([]bson.ObjectID, 0, len(items))
	for _, item := range items {
		id := ref(item)
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
