package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/studypartner-auth/internal/api/http/context"
	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/mocks"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/testutil"
)

func TestRole_List(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRoleService(t)
	cm := httpctx.NewManager()
	h := NewRole(svc, cm, testutil.MakeNoopLogger())

	svc.On("List", mock.Anything).Return([]model.Role{
		{ID: 2, Name: "admin", Description: "Administrator"},
		{ID: 1, Name: "student", Description: "Student"},
	}, nil)

	rec := serve(t, cm, &model.Principal{UserID: uuid.New()}, http.MethodGet, "/roles", "/roles", "", h.List)
	assert.Equal(t, http.StatusOK, rec.Code)

	roles, ok := envelope(t, rec).Data.([]any)
	require.True(t, ok)
	require.Len(t, roles, 2)
	assert.Equal(t, "admin", roles[0].(map[string]any)["name"])
}

func TestRole_Create(t *testing.T) {
	t.Parallel()

	admin := model.Principal{UserID: uuid.New(), Roles: []string{"admin"}}

	tests := []struct {
		name       string
		body       string
		setup      func(svc *mocks.RoleService)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"name":"mentor","description":"Mentor"}`,
			setup: func(svc *mocks.RoleService) {
				svc.On("Create", mock.Anything, admin.UserID, "mentor", "Mentor").
					Return(model.Role{ID: 7, Name: "mentor", Description: "Mentor"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate",
			body: `{"name":"admin","description":"x"}`,
			setup: func(svc *mocks.RoleService) {
				svc.On("Create", mock.Anything, admin.UserID, "admin", "x").
					Return(model.Role{}, apperror.Conflict("role already exists"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "invalid name",
			body: `{"name":"A","description":""}`,
			setup: func(svc *mocks.RoleService) {
				svc.On("Create", mock.Anything, admin.UserID, "A", "").
					Return(model.Role{}, apperror.Validation("role name must be 2-50 characters"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewRoleService(t)
			cm := httpctx.NewManager()
			h := NewRole(svc, cm, testutil.MakeNoopLogger())
			tt.setup(svc)

			rec := serve(t, cm, &admin, http.MethodPost, "/roles", "/roles", tt.body, h.Create)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRole_Delete(t *testing.T) {
	t.Parallel()

	admin := model.Principal{UserID: uuid.New(), Roles: []string{"admin"}}

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		svc := mocks.NewRoleService(t)
		cm := httpctx.NewManager()
		h := NewRole(svc, cm, testutil.MakeNoopLogger())
		svc.On("Delete", mock.Anything, admin.UserID, int64(7)).Return(nil)

		rec := serve(t, cm, &admin, http.MethodDelete, "/roles/{id}", "/roles/7", "", h.Delete)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected role", func(t *testing.T) {
		t.Parallel()
		svc := mocks.NewRoleService(t)
		cm := httpctx.NewManager()
		h := NewRole(svc, cm, testutil.MakeNoopLogger())
		svc.On("Delete", mock.Anything, admin.UserID, int64(1)).Return(apperror.InvalidOperation("cannot delete default roles"))

		rec := serve(t, cm, &admin, http.MethodDelete, "/roles/{id}", "/roles/1", "", h.Delete)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_operation", envelope(t, rec).Code)
	})

	t.Run("bad id", func(t *testing.T) {
		t.Parallel()
		svc := mocks.NewRoleService(t)
		cm := httpctx.NewManager()
		h := NewRole(svc, cm, testutil.MakeNoopLogger())

		rec := serve(t, cm, &admin, http.MethodDelete, "/roles/{id}", "/roles/abc", "", h.Delete)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid role id", envelope(t, rec).Message)
	})
}
