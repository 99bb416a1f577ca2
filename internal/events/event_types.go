package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/admin-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAuditRecorded EventType = "audit_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// AuditRecordedPayload carries a security-relevant action to the audit sink.
type AuditRecordedPayload struct {
	Action    domain.AuditAction `json:"action"`
	UserID    *string            `json:"user_id,omitempty"`
	TargetID  *string            `json:"target_id,omitempty"`
	Details   string             `json:"details,omitempty"`
	IPAddress string             `json:"ip_address,omitempty"`
}

// NewAuditEvent builds an audit event ready for publication.
func NewAuditEvent(payload AuditRecordedPayload) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventAuditRecorded,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
