//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/studypartner-auth/database"
	"github.com/dtroode/studypartner-auth/internal/model"
	repo "github.com/dtroode/studypartner-auth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "studypartner_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/studypartner_test?sslmode=disable", host, port.Port())

	if err := database.Migrate(ctx, dsn); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newConnection(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn, 3*time.Second, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	require.NoError(t, conn.Ping(ctx))

	users := repo.NewUserRepository(conn)
	creds := repo.NewCredentialRepository(conn)
	roles := repo.NewRoleRepository(conn)
	tokens := repo.NewRefreshTokenRepository(conn)

	t.Run("user_repository", func(t *testing.T) {
		email := uniqueEmail("User")
		u, err := users.Create(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, model.UserStatusActive, u.Status)

		byEmail, err := users.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		_, err = users.Create(ctx, email)
		require.ErrorIs(t, err, model.ErrConflict)

		require.NoError(t, users.SetStatus(ctx, u.ID, model.UserStatusSuspended, time.Now()))
		byID, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, model.UserStatusSuspended, byID.Status)

		require.NoError(t, users.SetStatus(ctx, u.ID, model.UserStatusDeleted, time.Now()))
		_, err = users.GetByID(ctx, u.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
		_, err = users.GetByEmail(ctx, email)
		require.ErrorIs(t, err, model.ErrNotFound)
		require.ErrorIs(t, users.SetStatus(ctx, u.ID, model.UserStatusActive, time.Now()), model.ErrNotFound)

		_, err = users.Create(ctx, email)
		require.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("credential_repository", func(t *testing.T) {
		u, err := users.Create(ctx, uniqueEmail("cred"))
		require.NoError(t, err)

		require.NoError(t, creds.Create(ctx, u.ID, []byte("hash-1")))
		require.ErrorIs(t, creds.Create(ctx, u.ID, []byte("hash-2")), model.ErrConflict)

		c, err := creds.GetByUserID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("hash-1"), c.PasswordHash)

		require.NoError(t, creds.Update(ctx, u.ID, []byte("hash-2")))
		c, err = creds.GetByUserID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("hash-2"), c.PasswordHash)

		require.ErrorIs(t, creds.Update(ctx, uuid.New(), []byte("x")), model.ErrNotFound)
		require.ErrorIs(t, creds.Create(ctx, uuid.New(), []byte("x")), model.ErrNotFound)
	})

	t.Run("role_repository", func(t *testing.T) {
		name := "role_" + uuid.NewString()[:8]
		role, err := roles.Create(ctx, name, "desc")
		require.NoError(t, err)

		_, err = roles.Create(ctx, name, "again")
		require.ErrorIs(t, err, model.ErrConflict)

		byName, err := roles.GetByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, role.ID, byName.ID)

		list, err := roles.List(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, list)

		u, err := users.Create(ctx, uniqueEmail("roles"))
		require.NoError(t, err)

		a, err := roles.Assign(ctx, u.ID, role.ID)
		require.NoError(t, err)
		assert.Equal(t, name, a.RoleName)

		_, err = roles.Assign(ctx, u.ID, role.ID)
		require.ErrorIs(t, err, model.ErrConflict)
		_, err = roles.Assign(ctx, uuid.New(), role.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		of, err := roles.RolesOf(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{name}, model.RoleNames(of))

		require.NoError(t, roles.Unassign(ctx, u.ID, role.ID))
		require.NoError(t, roles.Unassign(ctx, u.ID, role.ID))

		_, err = roles.Assign(ctx, u.ID, role.ID)
		require.NoError(t, err)
		require.NoError(t, roles.Delete(ctx, role.ID))
		of, err = roles.RolesOf(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, of)
		_, err = roles.GetByID(ctx, role.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
		require.ErrorIs(t, roles.Delete(ctx, role.ID), model.ErrNotFound)
	})

	t.Run("refresh_token_repository", func(t *testing.T) {
		u, err := users.Create(ctx, uniqueEmail("rt"))
		require.NoError(t, err)
		now := time.Now().UTC()

		first := model.RefreshToken{
			ID:        uuid.New(),
			UserID:    u.ID,
			TokenHash: []byte(uuid.NewString()),
			ExpiresAt: now.Add(time.Hour),
			UserAgent: "test",
			IPAddress: "127.0.0.1",
		}
		require.NoError(t, tokens.Create(ctx, first))
		require.ErrorIs(t, tokens.Create(ctx, first), model.ErrConflict)

		got, err := tokens.GetByHash(ctx, first.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.True(t, got.IsActive(now))

		second := model.RefreshToken{ID: uuid.New(), UserID: u.ID, TokenHash: []byte(uuid.NewString()), ExpiresAt: now.Add(time.Hour)}
		err = conn.WithinTx(ctx, func(ctx context.Context) error {
			locked, err := tokens.GetByHashForUpdate(ctx, first.TokenHash)
			if err != nil {
				return err
			}
			if err := tokens.Create(ctx, second); err != nil {
				return err
			}
			return tokens.Revoke(ctx, locked.ID, &second.ID, now)
		})
		require.NoError(t, err)

		got, err = tokens.GetByHash(ctx, first.TokenHash)
		require.NoError(t, err)
		assert.True(t, got.Revoked)
		require.NotNil(t, got.ReplacedBy)
		assert.Equal(t, second.ID, *got.ReplacedBy)

		require.ErrorIs(t, tokens.Revoke(ctx, first.ID, nil, now), model.ErrNotFound)
		require.NoError(t, tokens.RevokeByHash(ctx, []byte("unknown"), now))

		n, err := tokens.RevokeAllByUser(ctx, u.ID, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = tokens.GetByHash(ctx, []byte("unknown"))
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestConnection_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	users := repo.NewUserRepository(conn)
	email := uniqueEmail("rollback")

	errAbort := fmt.Errorf("abort")
	err := conn.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := users.Create(ctx, email); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = users.GetByEmail(ctx, email)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSeedRoles_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	seeds, err := database.LoadRoleSeeds("")
	require.NoError(t, err)
	require.NoError(t, database.SeedRoles(ctx, db, seeds))
	require.NoError(t, database.SeedRoles(ctx, db, seeds))

	roles := repo.NewRoleRepository(newConnection(t))
	for _, name := range []string{model.RoleStudent, model.RoleAdmin, model.RoleModerator} {
		_, err := roles.GetByName(ctx, name)
		require.NoError(t, err, name)
	}
}
