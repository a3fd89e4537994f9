package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialStore persists exactly one password hash per identity.
type CredentialStore interface {
	Create(ctx context.Context, userID uuid.UUID, passwordHash []byte) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (Credential, error)
	Update(ctx context.Context, userID uuid.UUID, passwordHash []byte) error
}

// Credential holds the hashed secret of an identity.
type Credential struct {
	UserID       uuid.UUID
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
