// Package audit records security events to the structured log and,
// optionally, to an object store archive.
package audit

import (
	"context"
	"errors"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewID returns a lexicographically sortable event identifier.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// prepare fills in the timestamp and id of an event if missing.
func prepare(e model.AuditEvent) model.AuditEvent {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if e.ID == "" {
		e.ID = NewID(e.OccurredAt)
	}
	return e
}

var _ model.AuditSink = (*LogSink)(nil)

// LogSink writes every event to the structured log.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(logger *logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, e model.AuditEvent) error {
	e = prepare(e)

	args := []any{
		"id", e.ID,
		"type", e.Type,
		"occurred_at", e.OccurredAt,
	}
	if e.UserID != uuid.Nil {
		args = append(args, "user_id", e.UserID)
	}
	if e.ActorID != uuid.Nil {
		args = append(args, "actor_id", e.ActorID)
	}
	if e.TokenID != uuid.Nil {
		args = append(args, "token_id", e.TokenID)
	}
	if e.UserAgent != "" {
		args = append(args, "user_agent", e.UserAgent)
	}
	if e.IPAddress != "" {
		args = append(args, "ip_address", e.IPAddress)
	}
	for k, v := range e.Details {
		args = append(args, k, v)
	}

	s.logger.InfoContext(ctx, "Audit: security event", args...)
	return nil
}

var _ model.AuditSink = Multi(nil)

// Multi fans an event out to several sinks with the same id.
type Multi []model.AuditSink

func (m Multi) Record(ctx context.Context, e model.AuditEvent) error {
	e = prepare(e)

	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
