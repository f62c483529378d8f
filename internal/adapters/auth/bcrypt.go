package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gatherplan/internal/domain"
)

// maxTokenBytes is the longest input bcrypt accepts.
const maxTokenBytes = 72

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns an AccessTokenHasher backed by bcrypt. A cost of
// zero or less selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) domain.AccessTokenHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(token string) (string, error) {
	t := domain.CanonicalToken(token)
	if t == "" || len(t) > maxTokenBytes {
		return "", fmt.Errorf("%w: access token must be 1-%d bytes", domain.ErrInvalidInput, maxTokenBytes)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(t), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(hash, token string) bool {
	t := domain.CanonicalToken(token)
	if hash == "" || t == "" || len(t) > maxTokenBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(t)) == nil
}
