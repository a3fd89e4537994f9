package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

const refreshTokenColumns = `id, user_id, token_hash, expires_at, revoked, revoked_at, replaced_by, user_agent, ip_address, created_at`

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `
        INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, user_agent, ip_address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.querier(ctx).Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.UserAgent, token.IPAddress, token.CreatedAt,
	)
	if err != nil {
		return mapError("create refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash []byte) (model.RefreshToken, error) {
	return r.getByHash(ctx, `SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, hash)
}

// GetByHashForUpdate must be called inside WithinTx; the row stays locked
// until the transaction ends, serializing concurrent rotations.
func (r *RefreshTokenRepository) GetByHashForUpdate(ctx context.Context, hash []byte) (model.RefreshToken, error) {
	return r.getByHash(ctx, `SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1 FOR UPDATE`, hash)
}

func (r *RefreshTokenRepository) getByHash(ctx context.Context, query string, hash []byte) (model.RefreshToken, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	var rt model.RefreshToken
	err := r.db.querier(ctx).QueryRow(ctx, query, hash).Scan(
		&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &rt.RevokedAt,
		&rt.ReplacedBy, &rt.UserAgent, &rt.IPAddress, &rt.CreatedAt,
	)
	if err != nil {
		return model.RefreshToken{}, mapError("get refresh token", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, at time.Time) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `
        UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2, replaced_by = $3
        WHERE id = $1 AND NOT revoked
    `
	tag, err := r.db.querier(ctx).Exec(ctx, query, id, at, replacedBy)
	if err != nil {
		return mapError("revoke refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("revoke refresh token", model.ErrNotFound)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeByHash(ctx context.Context, hash []byte, at time.Time) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `
        UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2
        WHERE token_hash = $1 AND NOT revoked
    `
	if _, err := r.db.querier(ctx).Exec(ctx, query, hash, at); err != nil {
		return mapError("revoke refresh token by hash", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `
        UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2
        WHERE user_id = $1 AND NOT revoked
    `
	tag, err := r.db.querier(ctx).Exec(ctx, query, userID, at)
	if err != nil {
		return 0, mapError("revoke refresh tokens of user", err)
	}
	return tag.RowsAffected(), nil
}
