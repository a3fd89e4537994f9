package model

import "errors"

// Store errors. Repositories wrap driver errors with these so callers can
// classify failures with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrUnavailable = errors.New("store unavailable")
)
