package session

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Arokeji/Nailted-Back/internal/quiz"
)

const Collection = "sessions"

// Session is one quiz attempt. The owner email is only ever stored hashed.
type Session struct {
	ID            bson.ObjectID   `bson:"_id" json:"id"`
	Email         string          `bson:"email,omitempty" json:"-"`
	EmailIndex    string          `bson:"emailIndex,omitempty" json:"-"`
	Version       int             `bson:"version" json:"version"`
	GlobalScore   *float64        `bson:"globalScore,omitempty" json:"globalScore,omitempty"`
	CategoryScore []CategoryScore `bson:"categoryScore" json:"categoryScore"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// CategoryScore stores the category reference; Category is populated on read
// and stays nil when the category document is gone.
type CategoryScore struct {
	CategoryID bson.ObjectID  `bson:"category" json:"-"`
	Category   *quiz.Category `bson:"-" json:"category"`
	Score      float64        `bson:"score" json:"score"`
}

type Results struct {
	GlobalScore   *float64        `json:"globalScore,omitempty"`
	CategoryScore []CategoryScore `json:"categoryScore"`
}

func (s *Session) Results() *Results {
	return &Results{
		GlobalScore:   s.GlobalScore,
		CategoryScore: s.CategoryScore,
	}
}

// HasOwner reports whether an email was ever attached to the session.
func (s *Session) HasOwner() bool {
	return s.Email != ""
}

type CreateParams struct {
	Version int
	// Email is optional; sessions usually get their owner on send-results.
	Email string
}

// CategoryScoreInput is a score as sent by clients, category given as a hex id.
type CategoryScoreInput struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Email         *string
	GlobalScore   *float64
	CategoryScore *[]CategoryScoreInput
}

// applyPatch copies scores from p into s. Negative global scores are ignored
// and the category list is replaced as a whole.
func applyPatch(s *Session, p Patch) error {
	if p.CategoryScore != nil {
		scores, err := parseCategoryScores(*p.CategoryScore)
		if err != nil {
			return err
		}
		s.CategoryScore = scores
	}
	if p.GlobalScore != nil && *p.GlobalScore >= 0 {
		v := *p.GlobalScore
		s.GlobalScore = &v
	}
	return nil
}

func parseCategoryScores(in []CategoryScoreInput) ([]CategoryScore, error) {
	out := make([]CategoryScore, 0, len(in))
	for _, cs := range in {
		id, err := bson.ObjectIDFromHex(strings.TrimSpace(cs.Category))
		if err != nil {
			return nil, &CategoryError{Value: cs.Category}
		}
		out = append(out, CategoryScore{CategoryID: id, Score: cs.Score})
	}
	return out, nil
}

// CategoryError reports a category reference that is not a valid id.
type CategoryError struct {
	Value string
}

func (e *CategoryError) Error() string {
	return ErrInvalidCategory.Error() + ": " + e.Value
}

func (e *CategoryError) Unwrap() error {
	return ErrInvalidCategory
}

// ParseID converts a hex id. Malformed ids can never match a document and
// are reported as ErrNotFound.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return bson.ObjectID{}, ErrNotFound
	}
	return oid, nil
}
