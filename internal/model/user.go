package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStatus is the lifecycle state of an identity.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusDeleted:
		return true
	}
	return false
}

// UserStore defines persistence operations for identities.
//
// GetByEmail and GetByID never return soft-deleted identities.
type UserStore interface {
	Create(ctx context.Context, email string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status UserStatus, at time.Time) error
}

// User represents a stored identity.
type User struct {
	ID        uuid.UUID
	Email     string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Profile is the public view of an identity with its role names.
type Profile struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Status    UserStatus `json:"status"`
	Roles     []string   `json:"roles"`
	CreatedAt time.Time  `json:"createdAt"`
}
