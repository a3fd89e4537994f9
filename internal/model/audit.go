package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEventType names a security relevant event.
type AuditEventType string

const (
	AuditLoginFailed          AuditEventType = "login_failed"
	AuditRefreshReuseDetected AuditEventType = "refresh_reuse_detected"
	AuditLogoutAll            AuditEventType = "logout_all"
	AuditPasswordChanged      AuditEventType = "password_changed"
	AuditStatusChanged        AuditEventType = "status_changed"
	AuditRoleCreated          AuditEventType = "role_created"
	AuditRoleDeleted          AuditEventType = "role_deleted"
	AuditRoleAssigned         AuditEventType = "role_assigned"
	AuditRoleUnassigned       AuditEventType = "role_unassigned"
)

// AuditEvent is one entry of the security audit trail.
type AuditEvent struct {
	ID         string            `json:"id"`
	Type       AuditEventType    `json:"type"`
	UserID     uuid.UUID         `json:"userId,omitempty"`
	ActorID    uuid.UUID         `json:"actorId,omitempty"`
	TokenID    uuid.UUID         `json:"tokenId,omitempty"`
	UserAgent  string            `json:"userAgent,omitempty"`
	IPAddress  string            `json:"ipAddress,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// AuditSink records audit events. Implementations must not block callers
// for long.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent) error
}

// AuthMetrics counts auth operation outcomes.
type AuthMetrics interface {
	AuthOperation(operation, outcome string)
}
