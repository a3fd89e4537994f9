package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent   = "student"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// IsProtectedRole reports whether the role can never be deleted.
func IsProtectedRole(name string) bool {
	return name == RoleStudent || name == RoleAdmin
}

// RoleStore persists roles and identity to role assignments.
type RoleStore interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id int64) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	Create(ctx context.Context, name, description string) (Role, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, userID uuid.UUID, roleID int64) (RoleAssignment, error)
	Unassign(ctx context.Context, userID uuid.UUID, roleID int64) error
	RolesOf(ctx context.Context, userID uuid.UUID) ([]Role, error)
}

// Role is a named set of permissions.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// RoleAssignment links an identity to a role.
type RoleAssignment struct {
	UserID     uuid.UUID `json:"userId"`
	RoleID     int64     `json:"roleId"`
	RoleName   string    `json:"roleName"`
	AssignedAt time.Time `json:"assignedAt"`
}

// RoleNames returns the names of roles in order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
