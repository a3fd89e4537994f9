package service

import (
	"context"
	"errors"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/model"
)

var (
	errInvalidCredentials = apperror.Authentication("invalid email or password")
	errInvalidRefresh     = apperror.Authentication("refresh token is invalid or expired")
	errAccountInactive    = apperror.Authorization("account is not active")
)

// translate converts a store failure into the caller facing taxonomy.
// Already classified errors pass through untouched.
func translate(message string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	if errors.Is(err, model.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.Unavailable("service temporarily unavailable", err)
	}
	return apperror.Internal(message, err)
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	return apperror.KindOf(err).String()
}
