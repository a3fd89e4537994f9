package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/token"
)

// Auth orchestrates registration, login and the refresh token lifecycle.
// It owns every transaction boundary.
type Auth struct {
	tx           model.Transactor
	userStore    model.UserStore
	roleStore    model.RoleStore
	tokenStore   model.RefreshTokenStore
	credentials  *Credential
	tokenService *TokenService
	audit        model.AuditSink
	metrics      model.AuthMetrics
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	tx model.Transactor,
	userStore model.UserStore,
	roleStore model.RoleStore,
	tokenStore model.RefreshTokenStore,
	credentials *Credential,
	tokenService *TokenService,
	audit model.AuditSink,
	metrics model.AuthMetrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		tx:           tx,
		userStore:    userStore,
		roleStore:    roleStore,
		tokenStore:   tokenStore,
		credentials:  credentials,
		tokenService: tokenService,
		audit:        audit,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates an identity with its credential and the default role.
func (a *Auth) Register(ctx context.Context, email, password string) (profile model.Profile, err error) {
	defer func() { a.metrics.AuthOperation("register", outcome(err)) }()

	email, err = NormalizeEmail(email)
	if err != nil {
		return model.Profile{}, err
	}
	if err = ValidatePassword(password); err != nil {
		return model.Profile{}, err
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := a.userStore.Create(ctx, email)
		if err != nil {
			if errors.Is(err, model.ErrConflict) {
				return apperror.Conflict("email already registered")
			}
			return translate("failed to create user", err)
		}

		if err := a.credentials.Create(ctx, user.ID, password); err != nil {
			return err
		}

		role, err := a.roleStore.GetByName(ctx, model.RoleStudent)
		if err != nil {
			return translate("failed to get default role", err)
		}
		if _, err := a.roleStore.Assign(ctx, user.ID, role.ID); err != nil {
			return translate("failed to assign default role", err)
		}

		profile = model.Profile{
			ID:        user.ID,
			Email:     user.Email,
			Status:    user.Status,
			Roles:     []string{role.Name},
			CreatedAt: user.CreatedAt,
		}
		return nil
	})
	if err != nil {
		if apperror.IsKind(err, apperror.KindConflict) {
			a.logger.Info("Auth service: email already registered",
				"email", email)
		} else {
			a.logger.Error("Auth service: failed to register user",
				"email", email,
				"error", err.Error())
		}
		return model.Profile{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", profile.ID)

	return profile, nil
}

// Login verifies credentials and starts a new refresh token chain. Unknown
// email, missing credential and wrong password fail identically.
func (a *Auth) Login(ctx context.Context, email, password string, meta model.ClientMeta) (session model.Session, err error) {
	defer func() { a.metrics.AuthOperation("login", outcome(err)) }()

	normalized, nerr := NormalizeEmail(email)
	if nerr != nil {
		a.credentials.CompareDummy(password)
		a.record(ctx, model.AuditEvent{
			Type:      model.AuditLoginFailed,
			UserAgent: meta.UserAgent,
			IPAddress: meta.IPAddress,
			Details:   map[string]string{"reason": "malformed_email"},
		})
		return model.Session{}, errInvalidCredentials
	}

	user, err := a.userStore.GetByEmail(ctx, normalized)
	if errors.Is(err, model.ErrNotFound) {
		a.credentials.CompareDummy(password)
		a.record(ctx, model.AuditEvent{
			Type:      model.AuditLoginFailed,
			UserAgent: meta.UserAgent,
			IPAddress: meta.IPAddress,
			Details:   map[string]string{"reason": "unknown_email"},
		})
		return model.Session{}, errInvalidCredentials
	}
	if err != nil {
		return model.Session{}, translate("failed to get user by email", err)
	}

	ok, err := a.credentials.Verify(ctx, user.ID, password)
	if err != nil {
		return model.Session{}, err
	}
	if !ok {
		a.logger.Info("Auth service: login failed",
			"user_id", user.ID)
		a.record(ctx, model.AuditEvent{
			Type:      model.AuditLoginFailed,
			UserID:    user.ID,
			UserAgent: meta.UserAgent,
			IPAddress: meta.IPAddress,
			Details:   map[string]string{"reason": "bad_credentials"},
		})
		return model.Session{}, errInvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		a.record(ctx, model.AuditEvent{
			Type:      model.AuditLoginFailed,
			UserID:    user.ID,
			UserAgent: meta.UserAgent,
			IPAddress: meta.IPAddress,
			Details:   map[string]string{"reason": "status_" + string(user.Status)},
		})
		return model.Session{}, errAccountInactive
	}

	roles, err := a.roleStore.RolesOf(ctx, user.ID)
	if err != nil {
		return model.Session{}, translate("failed to get user roles", err)
	}
	roleNames := model.RoleNames(roles)

	pair, err := a.issuePair(ctx, user, roleNames, meta)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return model.Session{
		User: model.Profile{
			ID:        user.ID,
			Email:     user.Email,
			Status:    user.Status,
			Roles:     roleNames,
			CreatedAt: user.CreatedAt,
		},
		TokenPair: pair,
	}, nil
}

func (a *Auth) issuePair(ctx context.Context, user model.User, roles []string, meta model.ClientMeta) (model.TokenPair, error) {
	access, accessExpiresAt, err := a.tokenService.IssueAccessToken(model.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	value, rt, err := a.tokenService.NewRefreshToken(user.ID, meta)
	if err != nil {
		return model.TokenPair{}, err
	}
	if err := a.tokenStore.Create(ctx, rt); err != nil {
		return model.TokenPair{}, translate("failed to persist refresh token", err)
	}

	return model.TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          value,
		RefreshTokenExpiresAt: rt.ExpiresAt,
	}, nil
}

// Refresh rotates an active refresh token. Presenting a revoked token
// revokes every active token of its owner before failing.
func (a *Auth) Refresh(ctx context.Context, refreshToken string, meta model.ClientMeta) (pair model.TokenPair, err error) {
	defer func() { a.metrics.AuthOperation("refresh", outcome(err)) }()

	if refreshToken == "" {
		return model.TokenPair{}, errInvalidRefresh
	}
	hash := token.HashRefreshValue(refreshToken)

	var (
		reused  *model.RefreshToken
		revoked int64
	)

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := a.tokenStore.GetByHashForUpdate(ctx, hash)
		if errors.Is(err, model.ErrNotFound) {
			return errInvalidRefresh
		}
		if err != nil {
			return translate("failed to get refresh token", err)
		}

		now := a.now().UTC()
		if current.Revoked {
			revoked, err = a.tokenStore.RevokeAllByUser(ctx, current.UserID, now)
			if err != nil {
				return translate("failed to revoke refresh tokens", err)
			}
			reused = &current
			return nil
		}
		if current.IsExpired(now) {
			return errInvalidRefresh
		}

		user, err := a.userStore.GetByID(ctx, current.UserID)
		if errors.Is(err, model.ErrNotFound) {
			return errInvalidRefresh
		}
		if err != nil {
			return translate("failed to get user", err)
		}
		if user.Status != model.UserStatusActive {
			return errAccountInactive
		}

		roles, err := a.roleStore.RolesOf(ctx, user.ID)
		if err != nil {
			return translate("failed to get user roles", err)
		}

		access, accessExpiresAt, err := a.tokenService.IssueAccessToken(model.Principal{
			UserID: user.ID,
			Email:  user.Email,
			Roles:  model.RoleNames(roles),
		})
		if err != nil {
			return err
		}

		value, successor, err := a.tokenService.NewRefreshToken(user.ID, meta)
		if err != nil {
			return err
		}
		if err := a.tokenStore.Create(ctx, successor); err != nil {
			return translate("failed to persist refresh token", err)
		}
		if err := a.tokenStore.Revoke(ctx, current.ID, &successor.ID, now); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return errInvalidRefresh
			}
			return translate("failed to revoke refresh token", err)
		}

		pair = model.TokenPair{
			AccessToken:           access,
			AccessTokenExpiresAt:  accessExpiresAt,
			RefreshToken:          value,
			RefreshTokenExpiresAt: successor.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	if reused != nil {
		a.logger.Warn("Auth service: refresh token reuse detected",
			"user_id", reused.UserID,
			"token_id", reused.ID,
			"revoked_tokens", revoked,
			"user_agent", meta.UserAgent,
			"ip_address", meta.IPAddress)
		a.record(ctx, model.AuditEvent{
			Type:      model.AuditRefreshReuseDetected,
			UserID:    reused.UserID,
			TokenID:   reused.ID,
			UserAgent: meta.UserAgent,
			IPAddress: meta.IPAddress,
		})
		return model.TokenPair{}, errInvalidRefresh
	}

	return pair, nil
}

// Logout revokes a single refresh token. Unknown and already revoked
// tokens are not an error.
func (a *Auth) Logout(ctx context.Context, refreshToken string) (err error) {
	defer func() { a.metrics.AuthOperation("logout", outcome(err)) }()

	if refreshToken == "" {
		return nil
	}

	if err := a.tokenStore.RevokeByHash(ctx, token.HashRefreshValue(refreshToken), a.now().UTC()); err != nil {
		return translate("failed to revoke refresh token", err)
	}
	return nil
}

// LogoutAll revokes every active refresh token of the identity.
func (a *Auth) LogoutAll(ctx context.Context, userID uuid.UUID) (revoked int64, err error) {
	defer func() { a.metrics.AuthOperation("logout_all", outcome(err)) }()

	revoked, err = a.tokenStore.RevokeAllByUser(ctx, userID, a.now().UTC())
	if err != nil {
		return 0, translate("failed to revoke refresh tokens", err)
	}

	a.logger.Info("Auth service: all sessions revoked",
		"user_id", userID,
		"revoked_tokens", revoked)
	a.record(ctx, model.AuditEvent{
		Type:    model.AuditLogoutAll,
		UserID:  userID,
		ActorID: userID,
	})

	return revoked, nil
}

// GetIdentity returns the profile of a live identity.
func (a *Auth) GetIdentity(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return model.Profile{}, translate("failed to get user", err)
	}

	roles, err := a.roleStore.RolesOf(ctx, user.ID)
	if err != nil {
		return model.Profile{}, translate("failed to get user roles", err)
	}

	return model.Profile{
		ID:        user.ID,
		Email:     user.Email,
		Status:    user.Status,
		Roles:     model.RoleNames(roles),
		CreatedAt: user.CreatedAt,
	}, nil
}

// ChangePassword replaces the password after checking the current one and
// ends every session of the identity.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) (err error) {
	defer func() { a.metrics.AuthOperation("change_password", outcome(err)) }()

	if err := ValidatePassword(next); err != nil {
		return err
	}

	ok, err := a.credentials.Verify(ctx, userID, current)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Authentication("current password is incorrect")
	}

	var revoked int64
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.credentials.Update(ctx, userID, next); err != nil {
			return err
		}
		revoked, err = a.tokenStore.RevokeAllByUser(ctx, userID, a.now().UTC())
		if err != nil {
			return translate("failed to revoke refresh tokens", err)
		}
		return nil
	})
	if err != nil {
		a.logger.Error("Auth service: failed to change password",
			"user_id", userID,
			"error", err.Error())
		return err
	}

	a.logger.Info("Auth service: password changed",
		"user_id", userID,
		"revoked_tokens", revoked)
	a.record(ctx, model.AuditEvent{
		Type:    model.AuditPasswordChanged,
		UserID:  userID,
		ActorID: userID,
	})

	return nil
}

// SetStatus changes the lifecycle status of an identity. Suspending or
// deleting also revokes every active refresh token.
func (a *Auth) SetStatus(ctx context.Context, actorID, userID uuid.UUID, status model.UserStatus) (err error) {
	defer func() { a.metrics.AuthOperation("set_status", outcome(err)) }()

	if !status.Valid() {
		return apperror.Validation("status must be one of active, suspended, deleted")
	}
	if actorID == userID && status != model.UserStatusActive {
		return apperror.InvalidOperation("cannot change own status")
	}

	var previous model.UserStatus
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := a.userStore.GetByID(ctx, userID)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.NotFound("user not found")
		}
		if err != nil {
			return translate("failed to get user", err)
		}
		previous = user.Status

		now := a.now().UTC()
		if err := a.userStore.SetStatus(ctx, userID, status, now); err != nil {
			return translate("failed to set user status", err)
		}

		if status != model.UserStatusActive {
			if _, err := a.tokenStore.RevokeAllByUser(ctx, userID, now); err != nil {
				return translate("failed to revoke refresh tokens", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.logger.Info("Auth service: user status changed",
		"user_id", userID,
		"actor_id", actorID,
		"from", previous,
		"to", status)
	a.record(ctx, model.AuditEvent{
		Type:    model.AuditStatusChanged,
		UserID:  userID,
		ActorID: actorID,
		Details: map[string]string{"from": string(previous), "to": string(status)},
	})

	return nil
}

func (a *Auth) record(ctx context.Context, event model.AuditEvent) {
	recordAudit(ctx, a.audit, a.logger, a.now, event)
}

func recordAudit(ctx context.Context, sink model.AuditSink, log *logger.Logger, now func() time.Time, event model.AuditEvent) {
	if sink == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = now().UTC()
	}
	if err := sink.Record(ctx, event); err != nil {
		log.Warn("Audit: failed to record event",
			"type", event.Type,
			"error", err.Error())
	}
}
