package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
)

// maxEmailBytes is the bcrypt input limit.
const maxEmailBytes = 72

// EmailHasher protects owner emails. Hash produces a salted bcrypt hash for
// storage, Index a keyed deterministic digest used to find sessions by email
// without scanning the collection.
type EmailHasher struct {
	key  []byte
	cost int
}

// NewEmailHasher creates a hasher. A zero cost means bcrypt.DefaultCost.
func NewEmailHasher(key string, cost int) (*EmailHasher, error) {
	if key == "" {
		return nil, ErrMissingIndexKey
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHashCost, cost)
	}
	return &EmailHasher{key: []byte(key), cost: cost}, nil
}

// Normalize trims and case folds an email.
func Normalize(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

func (h *EmailHasher) Hash(email string) (string, error) {
	norm := Normalize(email)
	if len(norm) > maxEmailBytes {
		return "", ErrEmailTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(norm), h.cost)
	if err != nil {
		return "", errors.Join(ErrFailedToHash, err)
	}
	return string(b), nil
}

// Index returns the hex HMAC-SHA256 of the normalized email.
func (h *EmailHasher) Index(email string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(Normalize(email)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Match reports whether hash was produced from email. Hashes written before
// normalization used the raw address, so that form is tried as well.
func (h *EmailHasher) Match(hash, email string) bool {
	if hash == "" {
		return false
	}
	norm := Normalize(email)
	if len(norm) > maxEmailBytes {
		return false
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(norm)) == nil {
		return true
	}
	raw := strings.TrimSpace(email)
	return raw != norm && len(raw) <= maxEmailBytes &&
		bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
