package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and verifies signed access tokens. It is stateless.
type TokenManager interface {
	GenerateAccessToken(principal Principal) (token string, expiresAt time.Time, err error)
	// ParseAccessToken fails with ErrTokenExpired or ErrTokenInvalid.
	ParseAccessToken(token string) (Principal, error)
}

// Principal is the verified identity carried by an access token.
type Principal struct {
	UserID uuid.UUID `json:"identityId"`
	Email  string    `json:"email"`
	Roles  []string  `json:"roles"`
}

// HasRole reports whether the principal holds role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// HasAnyRole reports whether the principal holds at least one of roles.
func (p Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
