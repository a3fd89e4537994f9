package testutil

import "context"

// Transactor runs fn inline. It records whether the last call failed so
// tests can assert rollback paths.
type Transactor struct {
	Calls      int
	RolledBack bool
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	err := fn(ctx)
	t.RolledBack = err != nil
	return err
}
