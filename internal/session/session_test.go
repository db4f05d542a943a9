package session_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/Arokeji/Nailted-Back/internal/quiz"
	"github.com/Arokeji/Nailted-Back/internal/session"
)

func newHasher(t *testing.T) *session.EmailHasher {
	t.Helper()
	h, err := session.NewEmailHasher("test-key", bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewEmailHasher(t *testing.T) {
	t.Parallel()

	_, err := session.NewEmailHasher("", 10)
	assert.ErrorIs(t, err, session.ErrMissingIndexKey)

	_, err = session.NewEmailHasher("k", 99)
	assert.ErrorIs(t, err, session.ErrInvalidHashCost)

	_, err = session.NewEmailHasher("k", 0)
	assert.NoError(t, err)
}

func TestEmailHasher(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	hash1, err := h.Hash("Ana@Example.com")
	require.NoError(t, err)
	hash2, err := h.Hash("Ana@Example.com")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2, "every hash uses a fresh salt")
	assert.NotContains(t, hash1, "example")

	assert.True(t, h.Match(hash1, "ana@example.com"))
	assert.True(t, h.Match(hash1, "  ANA@example.COM "))
	assert.False(t, h.Match(hash1, "bob@example.com"))
	assert.False(t, h.Match("", "ana@example.com"))

	assert.Equal(t, h.Index("Ana@Example.com"), h.Index(" ana@example.com"))
	assert.NotEqual(t, h.Index("ana@example.com"), h.Index("bob@example.com"))
	assert.Len(t, h.Index("ana@example.com"), 64)

	other, err := session.NewEmailHasher("other-key", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h.Index("ana@example.com"), other.Index("ana@example.com"))
}

func TestEmailHasherLegacyRawHash(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("Ana@Example.com"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, h.Match(string(legacy), "Ana@Example.com"))
}

func TestEmailHasherTooLong(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	long := strings.Repeat("a", 70) + "@x.io"
	_, err := h.Hash(long)
	assert.ErrorIs(t, err, session.ErrEmailTooLong)
	assert.False(t, h.Match("$2a$04$abc", long))
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID()
	got, err := session.ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "nope", "6474ebae9b1c30f834df26e"} {
		_, err := session.ParseID(bad)
		assert.ErrorIs(t, err, session.ErrNotFound, bad)
	}
}

func TestSessionJSONHidesEmail(t *testing.T) {
	t.Parallel()

	score := 0.0
	s := session.Session{
		ID:          bson.NewObjectID(),
		Email:       "$2a$10$hash",
		EmailIndex:  "index",
		Version:     1,
		GlobalScore: &score,
		CategoryScore: []session.CategoryScore{
			{CategoryID: bson.NewObjectID(), Category: &quiz.Category{Name: "Culture"}, Score: 3},
		},
	}

	b, err := json.Marshal(s)
	require.NoError(t, err)
	out := string(b)
	assert.NotContains(t, out, "hash")
	assert.NotContains(t, out, "index")
	assert.Contains(t, out, `"globalScore":0`)
	assert.Contains(t, out, `"name":"Culture"`)

	b, err = json.Marshal(session.Session{ID: bson.NewObjectID(), Version: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "globalScore")
}
