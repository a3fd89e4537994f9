package context

import (
	"context"

	"github.com/dtroode/studypartner-auth/internal/model"
)

type principalKey struct{}

// Manager represents a gRPC context manager for the verified principal.
// The principal is kept out of incoming metadata so clients cannot
// inject it.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipal returns a copy of ctx carrying principal.
func (m *Manager) SetPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the principal stored by the auth interceptor.
func (m *Manager) GetPrincipal(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(model.Principal)
	return p, ok
}
