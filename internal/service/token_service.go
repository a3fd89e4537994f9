package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/token"
)

const bearerPrefix = "bearer "

// TokenService mints access tokens and fresh refresh token links, and
// implements the token verification contract shared by every transport.
type TokenService struct {
	manager    model.TokenManager
	refreshTTL time.Duration
	now        func() time.Time
	logger     *logger.Logger
}

func NewTokenService(manager model.TokenManager, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		refreshTTL: refreshTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// IssueAccessToken signs an access token for the principal.
func (s *TokenService) IssueAccessToken(p model.Principal) (string, time.Time, error) {
	access, expiresAt, err := s.manager.GenerateAccessToken(p)
	if err != nil {
		return "", time.Time{}, apperror.Internal("failed to issue access token", err)
	}
	return access, expiresAt, nil
}

// VerifyAccessToken checks an access token without touching any store.
func (s *TokenService) VerifyAccessToken(accessToken string) (model.Principal, error) {
	p, err := s.manager.ParseAccessToken(accessToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return model.Principal{}, apperror.AuthenticationReason(apperror.ReasonTokenExpired, "access token expired")
		}
		return model.Principal{}, apperror.AuthenticationReason(apperror.ReasonTokenInvalid, "access token invalid")
	}
	return p, nil
}

// Authenticate verifies an Authorization header value of the form
// "Bearer <token>".
func (s *TokenService) Authenticate(header string) (model.Principal, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return model.Principal{}, apperror.AuthenticationReason(apperror.ReasonTokenMissing, "authorization header required")
	}

	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return model.Principal{}, apperror.AuthenticationReason(apperror.ReasonTokenMalformed, "invalid authorization format")
	}

	accessToken := strings.TrimSpace(header[len(bearerPrefix):])
	if accessToken == "" || strings.ContainsAny(accessToken, " \t") {
		return model.Principal{}, apperror.AuthenticationReason(apperror.ReasonTokenMalformed, "invalid authorization format")
	}

	return s.VerifyAccessToken(accessToken)
}

// NewRefreshToken generates an opaque value and the ledger row storing its
// hash. The value is returned to the client exactly once.
func (s *TokenService) NewRefreshToken(userID uuid.UUID, meta model.ClientMeta) (string, model.RefreshToken, error) {
	value, err := token.NewRefreshValue()
	if err != nil {
		return "", model.RefreshToken{}, apperror.Internal("failed to issue refresh token", err)
	}

	now := s.now().UTC()
	return value, model.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: token.HashRefreshValue(value),
		ExpiresAt: now.Add(s.refreshTTL),
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
	}, nil
}
