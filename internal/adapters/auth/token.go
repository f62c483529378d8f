package auth

import (
	"fmt"

	"github.com/google/uuid"

	"gatherplan/internal/domain"
)

type uuidIssuer struct{}

// NewUUIDIssuer returns an AccessTokenIssuer that issues random (version 4)
// UUIDs in canonical lower-case form.
func NewUUIDIssuer() domain.AccessTokenIssuer {
	return &uuidIssuer{}
}

func (i *uuidIssuer) Issue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return domain.CanonicalToken(id.String()), nil
}
