package model

import "context"

// ContextManager attaches the verified principal to a request context.
type ContextManager interface {
	SetPrincipal(ctx context.Context, principal Principal) context.Context
	GetPrincipal(ctx context.Context) (Principal, bool)
}
