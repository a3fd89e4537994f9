package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (id, email, status)
			  VALUES ($1, $2, $3)
			  RETURNING id, email, status, created_at, updated_at, deleted_at`

	var user model.User
	err := r.db.querier(ctx).QueryRow(ctx, query, uuid.New(), email, model.UserStatusActive).Scan(
		&user.ID, &user.Email, &user.Status, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		return model.User{}, mapError("create user", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT id, email, status, created_at, updated_at, deleted_at
			  FROM users WHERE lower(email) = lower($1) AND deleted_at IS NULL`

	var user model.User
	err := r.db.querier(ctx).QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Status, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		return model.User{}, mapError("get user by email", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT id, email, status, created_at, updated_at, deleted_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	var user model.User
	err := r.db.querier(ctx).QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Status, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		return model.User{}, mapError("get user by id", err)
	}

	return user, nil
}

// SetStatus changes the status of a live identity at time at. Moving to
// deleted also stamps deleted_at, after which the identity is no longer
// visible.
func (r *UserRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.UserStatus, at time.Time) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	var deletedAt *time.Time
	if status == model.UserStatusDeleted {
		deletedAt = &at
	}

	query := `UPDATE users SET status = $2, deleted_at = $3, updated_at = $4
			  WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.querier(ctx).Exec(ctx, query, id, status, deletedAt, at)
	if err != nil {
		return mapError("set user status", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("set user status", model.ErrNotFound)
	}

	return nil
}
