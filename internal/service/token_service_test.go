package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/mocks"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/testutil"
	"github.com/dtroode/studypartner-auth/internal/token"
)

func TestTokenService_Authenticate(t *testing.T) {
	jwt := token.NewJWT("secret", "iss", time.Minute)
	svc := NewTokenService(jwt, time.Hour, testutil.MakeNoopLogger())

	p := model.Principal{UserID: uuid.New(), Email: "a@example.com", Roles: []string{model.RoleStudent}}
	valid, _, err := jwt.GenerateAccessToken(p)
	require.NoError(t, err)

	foreign, _, err := token.NewJWT("other", "iss", time.Minute).GenerateAccessToken(p)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantReason apperror.Reason
	}{
		{name: "valid", header: "Bearer " + valid},
		{name: "lowercase scheme", header: "bearer " + valid},
		{name: "missing", header: "", wantReason: apperror.ReasonTokenMissing},
		{name: "blank", header: "   ", wantReason: apperror.ReasonTokenMissing},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantReason: apperror.ReasonTokenMalformed},
		{name: "scheme only", header: "Bearer", wantReason: apperror.ReasonTokenMalformed},
		{name: "extra parts", header: "Bearer a b", wantReason: apperror.ReasonTokenMalformed},
		{name: "foreign secret", header: "Bearer " + foreign, wantReason: apperror.ReasonTokenInvalid},
		{name: "garbage", header: "Bearer garbage", wantReason: apperror.ReasonTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(tt.header)
			if tt.wantReason == "" {
				require.NoError(t, err)
				assert.Equal(t, p, got)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindAuthentication))
			assert.Equal(t, tt.wantReason, apperror.ReasonOf(err))
		})
	}
}

func TestTokenService_VerifyAccessToken_Expired(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	manager.On("ParseAccessToken", "old").Return(model.Principal{}, errors.Join(model.ErrTokenExpired, errors.New("exp"))).Once()
	manager.On("ParseAccessToken", "bad").Return(model.Principal{}, model.ErrTokenInvalid).Once()

	svc := NewTokenService(manager, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.VerifyAccessToken("old")
	assert.Equal(t, apperror.ReasonTokenExpired, apperror.ReasonOf(err))

	_, err = svc.VerifyAccessToken("bad")
	assert.Equal(t, apperror.ReasonTokenInvalid, apperror.ReasonOf(err))
}

func TestTokenService_IssueAccessToken_Failure(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", model.Principal{}).Return("", time.Time{}, errors.New("sign")).Once()

	svc := NewTokenService(manager, time.Hour, testutil.MakeNoopLogger())
	_, _, err := svc.IssueAccessToken(model.Principal{})
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}

func TestTokenService_NewRefreshToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(nil, 7*24*time.Hour, testutil.MakeNoopLogger())
	svc.now = func() time.Time { return now }

	userID := uuid.New()
	value, rt, err := svc.NewRefreshToken(userID, model.ClientMeta{UserAgent: "ua", IPAddress: "ip"})
	require.NoError(t, err)

	assert.NotEmpty(t, value)
	assert.Equal(t, token.HashRefreshValue(value), rt.TokenHash)
	assert.NotEqual(t, []byte(value), rt.TokenHash)
	assert.Equal(t, userID, rt.UserID)
	assert.Equal(t, now.Add(7*24*time.Hour), rt.ExpiresAt)
	assert.Equal(t, "ua", rt.UserAgent)
	assert.Equal(t, "ip", rt.IPAddress)
	assert.True(t, rt.IsActive(now))
	assert.False(t, rt.IsActive(rt.ExpiresAt))
}
