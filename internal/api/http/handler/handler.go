// Package handler implements the HTTP endpoints of the auth service.
package handler

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// AuthService defines identity and session operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.Profile, error)
	Login(ctx context.Context, email, password string, meta model.ClientMeta) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string, meta model.ClientMeta) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) (int64, error)
	GetIdentity(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	SetStatus(ctx context.Context, actorID, userID uuid.UUID, status model.UserStatus) error
}

// RoleService defines role catalog and assignment operations.
type RoleService interface {
	List(ctx context.Context) ([]model.Role, error)
	Create(ctx context.Context, actorID uuid.UUID, name, description string) (model.Role, error)
	Delete(ctx context.Context, actorID uuid.UUID, roleID int64) error
	UserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error)
	Assign(ctx context.Context, actorID, userID uuid.UUID, roleID int64) (model.RoleAssignment, error)
	Unassign(ctx context.Context, actorID, userID uuid.UUID, roleID int64) error
}

func principalFrom(r *http.Request, cm model.ContextManager) (model.Principal, error) {
	p, ok := cm.GetPrincipal(r.Context())
	if !ok {
		return model.Principal{}, apperror.AuthenticationReason(apperror.ReasonTokenMissing, "authentication required")
	}
	return p, nil
}

func clientMeta(r *http.Request) model.ClientMeta {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return model.ClientMeta{UserAgent: r.UserAgent(), IPAddress: ip}
}

func userIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid user id")
	}
	return id, nil
}

func roleIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid role id")
	}
	return id, nil
}
