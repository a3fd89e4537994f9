package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Credential hashes and verifies passwords on top of a CredentialStore.
type Credential struct {
	store     model.CredentialStore
	cost      int
	dummyHash []byte
	logger    *logger.Logger
}

func NewCredential(store model.CredentialStore, cost int, logger *logger.Logger) (*Credential, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Credential{
		store:     store,
		cost:      cost,
		dummyHash: dummy,
		logger:    logger,
	}, nil
}

func (c *Credential) hash(secret string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), c.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.Validation("password must be at most 72 bytes")
		}
		return nil, apperror.Internal("failed to hash password", err)
	}
	return h, nil
}

// Create stores the first credential of an identity.
func (c *Credential) Create(ctx context.Context, userID uuid.UUID, secret string) error {
	h, err := c.hash(secret)
	if err != nil {
		return err
	}

	if err := c.store.Create(ctx, userID, h); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return apperror.Validation("credential already exists")
		}
		return translate("failed to create credential", err)
	}
	return nil
}

// Verify reports whether secret matches the stored hash. A missing
// credential is a mismatch, not an error.
func (c *Credential) Verify(ctx context.Context, userID uuid.UUID, secret string) (bool, error) {
	cred, err := c.store.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		c.CompareDummy(secret)
		return false, nil
	}
	if err != nil {
		return false, translate("failed to get credential", err)
	}

	err = bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(secret))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	c.logger.Error("Credential service: stored hash is unusable",
		"user_id", userID,
		"error", err.Error())
	return false, nil
}

// Update re-hashes and replaces the credential.
func (c *Credential) Update(ctx context.Context, userID uuid.UUID, secret string) error {
	h, err := c.hash(secret)
	if err != nil {
		return err
	}

	if err := c.store.Update(ctx, userID, h); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apperror.NotFound("credential not found")
		}
		return translate("failed to update credential", err)
	}
	return nil
}

// CompareDummy spends the same time as a real comparison so unknown
// emails cannot be told apart by latency.
func (c *Credential) CompareDummy(secret string) {
	_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(secret))
}
