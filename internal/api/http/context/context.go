package context

import (
	"context"

	"github.com/dtroode/studypartner-auth/internal/model"
)

type principalKey struct{}

// Manager stores the verified principal on an HTTP request context.
type Manager struct{}

// NewManager creates a new HTTP context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipal returns a copy of ctx carrying principal.
func (m *Manager) SetPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal returns the principal set by the authentication middleware.
func (m *Manager) GetPrincipal(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(model.Principal)
	return p, ok
}
