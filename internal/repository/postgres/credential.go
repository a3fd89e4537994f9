package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, userID uuid.UUID, passwordHash []byte) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO credentials (user_id, password_hash) VALUES ($1, $2)`
	if _, err := r.db.querier(ctx).Exec(ctx, query, userID, passwordHash); err != nil {
		return mapError("create credential", err)
	}
	return nil
}

func (r *CredentialRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Credential, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT user_id, password_hash, created_at, updated_at FROM credentials WHERE user_id = $1`

	var c model.Credential
	err := r.db.querier(ctx).QueryRow(ctx, query, userID).Scan(&c.UserID, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Credential{}, mapError("get credential", err)
	}
	return c, nil
}

func (r *CredentialRepository) Update(ctx context.Context, userID uuid.UUID, passwordHash []byte) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `UPDATE credentials SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.querier(ctx).Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return mapError("update credential", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("update credential", model.ErrNotFound)
	}
	return nil
}
