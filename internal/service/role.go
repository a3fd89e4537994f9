package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Role administers roles and identity to role assignments.
type Role struct {
	roleStore model.RoleStore
	userStore model.UserStore
	audit     model.AuditSink
	logger    *logger.Logger
	now       func() time.Time
}

func NewRole(roleStore model.RoleStore, userStore model.UserStore, audit model.AuditSink, logger *logger.Logger) *Role {
	return &Role{
		roleStore: roleStore,
		userStore: userStore,
		audit:     audit,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Role) List(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleStore.List(ctx)
	if err != nil {
		return nil, translate("failed to list roles", err)
	}
	return roles, nil
}

func (s *Role) Create(ctx context.Context, actorID uuid.UUID, name, description string) (model.Role, error) {
	name, err := ValidateRoleName(name)
	if err != nil {
		return model.Role{}, err
	}
	if err := validateRoleDescription(description); err != nil {
		return model.Role{}, err
	}

	role, err := s.roleStore.Create(ctx, name, description)
	if errors.Is(err, model.ErrConflict) {
		return model.Role{}, apperror.Conflict("role already exists")
	}
	if err != nil {
		return model.Role{}, translate("failed to create role", err)
	}

	s.logger.Info("Role service: role created",
		"role", role.Name,
		"actor_id", actorID)
	s.record(ctx, model.AuditEvent{
		Type:    model.AuditRoleCreated,
		ActorID: actorID,
		Details: map[string]string{"role": role.Name},
	})

	return role, nil
}

// Delete removes a custom role. Protected defaults can never be deleted.
func (s *Role) Delete(ctx context.Context, actorID uuid.UUID, roleID int64) error {
	role, err := s.getRole(ctx, roleID)
	if err != nil {
		return err
	}
	if model.IsProtectedRole(role.Name) {
		return apperror.InvalidOperation("cannot delete default roles")
	}

	err = s.roleStore.Delete(ctx, roleID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.NotFound("role not found")
	}
	if err != nil {
		return translate("failed to delete role", err)
	}

	s.logger.Info("Role service: role deleted",
		"role", role.Name,
		"actor_id", actorID)
	s.record(ctx, model.AuditEvent{
		Type:    model.AuditRoleDeleted,
		ActorID: actorID,
		Details: map[string]string{"role": role.Name},
	})

	return nil
}

// UserRoles returns the roles held by an identity.
func (s *Role) UserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	roles, err := s.roleStore.RolesOf(ctx, userID)
	if err != nil {
		return nil, translate("failed to get user roles", err)
	}
	return roles, nil
}

func (s *Role) Assign(ctx context.Context, actorID, userID uuid.UUID, roleID int64) (model.RoleAssignment, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return model.RoleAssignment{}, err
	}
	role, err := s.getRole(ctx, roleID)
	if err != nil {
		return model.RoleAssignment{}, err
	}

	assignment, err := s.roleStore.Assign(ctx, userID, roleID)
	switch {
	case errors.Is(err, model.ErrConflict):
		return model.RoleAssignment{}, apperror.Conflict("role already assigned to user")
	case errors.Is(err, model.ErrNotFound):
		return model.RoleAssignment{}, apperror.NotFound("user or role not found")
	case err != nil:
		return model.RoleAssignment{}, translate("failed to assign role", err)
	}

	s.logger.Info("Role service: role assigned",
		"user_id", userID,
		"role", role.Name,
		"actor_id", actorID)
	s.record(ctx, model.AuditEvent{
		Type:    model.AuditRoleAssigned,
		UserID:  userID,
		ActorID: actorID,
		Details: map[string]string{"role": role.Name, "role_id": strconv.FormatInt(roleID, 10)},
	})

	return assignment, nil
}

// Unassign removes a role from an identity. Removing a role the identity
// does not hold succeeds.
func (s *Role) Unassign(ctx context.Context, actorID, userID uuid.UUID, roleID int64) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	role, err := s.getRole(ctx, roleID)
	if err != nil {
		return err
	}

	if err := s.roleStore.Unassign(ctx, userID, roleID); err != nil {
		return translate("failed to unassign role", err)
	}

	s.logger.Info("Role service: role unassigned",
		"user_id", userID,
		"role", role.Name,
		"actor_id", actorID)
	s.record(ctx, model.AuditEvent{
		Type:    model.AuditRoleUnassigned,
		UserID:  userID,
		ActorID: actorID,
		Details: map[string]string{"role": role.Name, "role_id": strconv.FormatInt(roleID, 10)},
	})

	return nil
}

func (s *Role) getRole(ctx context.Context, roleID int64) (model.Role, error) {
	role, err := s.roleStore.GetByID(ctx, roleID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Role{}, apperror.NotFound("role not found")
	}
	if err != nil {
		return model.Role{}, translate("failed to get role", err)
	}
	return role, nil
}

func (s *Role) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.NotFound("user not found")
	}
	if err != nil {
		return translate("failed to get user", err)
	}
	return nil
}

func (s *Role) record(ctx context.Context, event model.AuditEvent) {
	recordAudit(ctx, s.audit, s.logger, s.now, event)
}
