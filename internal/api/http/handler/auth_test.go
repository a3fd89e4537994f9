package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/dtroode/studypartner-auth/internal/api/http/context"
	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/mocks"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/testutil"
)

func newAuthHandler(t *testing.T) (*Auth, *mocks.AuthService, *httpctx.Manager) {
	t.Helper()
	svc := mocks.NewAuthService(t)
	cm := httpctx.NewManager()
	return NewAuth(svc, cm, testutil.MakeNoopLogger()), svc, cm
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newAuthHandler(t)

		profile := model.Profile{ID: uuid.New(), Email: "a@b.co", Status: model.UserStatusActive, Roles: []string{"student"}}
		svc.On("Register", mock.Anything, "a@b.co", "Passw0rd").Return(profile, nil)

		rec := serve(t, cm, nil, http.MethodPost, "/auth/register", "/auth/register",
			`{"email":"a@b.co","password":"Passw0rd"}`, h.Register)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := envelope(t, rec)
		assert.True(t, env.Success)
		data := dataMap(t, env)
		assert.Equal(t, profile.ID.String(), data["id"])
		assert.Equal(t, []any{"student"}, data["roles"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newAuthHandler(t)

		svc.On("Register", mock.Anything, "a@b.co", "Passw0rd").Return(model.Profile{}, apperror.Conflict("email already registered"))

		rec := serve(t, cm, nil, http.MethodPost, "/auth/register", "/auth/register",
			`{"email":"a@b.co","password":"Passw0rd"}`, h.Register)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := envelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "email already registered", env.Message)
	})

	t.Run("malformed body never reaches the service", func(t *testing.T) {
		t.Parallel()
		h, _, cm := newAuthHandler(t)

		rec := serve(t, cm, nil, http.MethodPost, "/auth/register", "/auth/register", `{"email":`, h.Register)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	t.Run("success passes client metadata", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newAuthHandler(t)

		exp := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)
		session := model.Session{
			User: model.Profile{ID: uuid.New(), Email: "a@b.co", Roles: []string{"student"}},
			TokenPair: model.TokenPair{
				AccessToken:           "access",
				AccessTokenExpiresAt:  exp,
				RefreshToken:          "refresh",
				RefreshTokenExpiresAt: exp.Add(time.Hour),
			},
		}
		svc.On("Login", mock.Anything, "a@b.co", "Passw0rd",
			model.ClientMeta{UserAgent: "test-agent", IPAddress: "192.0.2.1"}).Return(session, nil)

		rec := serve(t, cm, nil, http.MethodPost, "/auth/login", "/auth/login",
			`{"email":"a@b.co","password":"Passw0rd"}`, h.Login)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := dataMap(t, envelope(t, rec))
		assert.Equal(t, "access", data["accessToken"])
		assert.Equal(t, "refresh", data["refreshToken"])
		assert.Contains(t, data, "user")
	})

	t.Run("generic failure", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newAuthHandler(t)

		svc.On("Login", mock.Anything, "a@b.co", "wrong", mock.Anything).
			Return(model.Session{}, apperror.Authentication("invalid email or password"))

		rec := serve(t, cm, nil, http.MethodPost, "/auth/login", "/auth/login",
			`{"email":"a@b.co","password":"wrong"}`, h.Login)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := envelope(t, rec)
		assert.Equal(t, "invalid email or password", env.Message)
		assert.Equal(t, "authentication", env.Code)
	})

	t.Run("suspended", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newAuthHandler(t)

		svc.On("Login", mock.Anything, "a@b.co", "Passw0rd", mock.Anything).
			Return(model.Session{}, apperror.Authorization("account is not active"))

		rec := serve(t, cm, nil, http.MethodPost, "/auth/login", "/auth/login",
			`{"email":"a@b.co","password":"Passw0rd"}`, h.Login)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	h, svc, cm := newAuthHandler(t)
	svc.On("Refresh", mock.Anything, "r1", mock.AnythingOfType("model.ClientMeta")).
		Return(model.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)
	svc.On("Refresh", mock.Anything, "r1-reused", mock.Anything).
		Return(model.TokenPair{}, apperror.Authentication("refresh token is invalid or expired"))

	rec := serve(t, cm, nil, http.MethodPost, "/auth/refresh", "/auth/refresh", `{"refreshToken":"r1"}`, h.Refresh)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r2", dataMap(t, envelope(t, rec))["refreshToken"])

	rec = serve(t, cm, nil, http.MethodPost, "/auth/refresh", "/auth/refresh", `{"refreshToken":"r1-reused"}`, h.Refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	h, svc, cm := newAuthHandler(t)
	svc.On("Logout", mock.Anything, "r1").Return(nil).Twice()

	for range 2 {
		rec := serve(t, cm, nil, http.MethodPost, "/auth/logout", "/auth/logout", `{"refreshToken":"r1"}`, h.Logout)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope(t, rec).Success)
	}
}

func TestAuth_LogoutAll(t *testing.T) {
	t.Parallel()

	h, svc, cm := newAuthHandler(t)
	p := model.Principal{UserID: uuid.New(), Email: "a@b.co", Roles: []string{"student"}}
	svc.On("LogoutAll", mock.Anything, p.UserID).Return(int64(3), nil)

	rec := serve(t, cm, &p, http.MethodPost, "/auth/logout-all", "/auth/logout-all", "", h.LogoutAll)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, dataMap(t, envelope(t, rec))["revoked"])
}

func TestAuth_Me(t *testing.T) {
	t.Parallel()

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newAuthHandler(t)
		p := model.Principal{UserID: uuid.New(), Email: "a@b.co", Roles: []string{"student"}}
		svc.On("GetIdentity", mock.Anything, p.UserID).
			Return(model.Profile{ID: p.UserID, Email: p.Email, Status: model.UserStatusActive, Roles: p.Roles}, nil)

		rec := serve(t, cm, &p, http.MethodGet, "/auth/me", "/auth/me", "", h.Me)
		assert.Equal(t, http.StatusOK, rec.Code)
		data := dataMap(t, envelope(t, rec))
		assert.Equal(t, "a@b.co", data["email"])
		assert.Equal(t, "active", data["status"])
	})

	t.Run("no principal", func(t *testing.T) {
		t.Parallel()
		h, _, cm := newAuthHandler(t)

		rec := serve(t, cm, nil, http.MethodGet, "/auth/me", "/auth/me", "", h.Me)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "token_missing", envelope(t, rec).Code)
	})
}

func TestAuth_ChangePassword(t *testing.T) {
	t.Parallel()

	h, svc, cm := newAuthHandler(t)
	p := model.Principal{UserID: uuid.New()}
	svc.On("ChangePassword", mock.Anything, p.UserID, "Old1pass", "New1pass").Return(nil)
	svc.On("ChangePassword", mock.Anything, p.UserID, "bad", "New1pass").
		Return(apperror.Authentication("invalid email or password"))

	rec := serve(t, cm, &p, http.MethodPut, "/auth/password", "/auth/password",
		`{"currentPassword":"Old1pass","newPassword":"New1pass"}`, h.ChangePassword)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, cm, &p, http.MethodPut, "/auth/password", "/auth/password",
		`{"currentPassword":"bad","newPassword":"New1pass"}`, h.ChangePassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
