package model

import "context"

// Transactor runs fn atomically. Stores called with the ctx passed to fn
// take part in the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
