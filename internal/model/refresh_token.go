package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore is the refresh token ledger. Rows are never deleted.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByHash(ctx context.Context, hash []byte) (RefreshToken, error)
	// GetByHashForUpdate locks the row until the surrounding transaction ends.
	GetByHashForUpdate(ctx context.Context, hash []byte) (RefreshToken, error)
	// Revoke marks an active token revoked. It returns ErrNotFound when the
	// token does not exist or was already revoked.
	Revoke(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, at time.Time) error
	// RevokeByHash is a no-op for unknown or already revoked tokens.
	RevokeByHash(ctx context.Context, hash []byte, at time.Time) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
}

// RefreshToken is one link of a rotation chain. Only the SHA-256 of the
// opaque value is stored.
type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  []byte
	ExpiresAt  time.Time
	Revoked    bool
	RevokedAt  *time.Time
	ReplacedBy *uuid.UUID
	UserAgent  string
	IPAddress  string
	CreatedAt  time.Time
}

// IsExpired reports whether the token is past its expiry at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive reports whether the token can still be exchanged.
func (t RefreshToken) IsActive(now time.Time) bool {
	return !t.Revoked && !t.IsExpired(now)
}

// ClientMeta is captured at token issuance for audit.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}
