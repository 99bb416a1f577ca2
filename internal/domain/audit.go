package domain

import "time"

// AuditAction enumerates security-relevant actions recorded in the audit log.
type AuditAction string

const (
	AuditUserLogin         AuditAction = "USER_LOGIN"
	AuditUserCreated       AuditAction = "USER_CREATED"
	AuditUserRoleChanged   AuditAction = "USER_ROLE_CHANGED"
	AuditUserStatusChanged AuditAction = "USER_STATUS_CHANGED"
	AuditInviteCreated     AuditAction = "INVITE_CREATED"
	AuditInviteAccepted    AuditAction = "INVITE_ACCEPTED"
	AuditProjectCreated    AuditAction = "PROJECT_CREATED"
	AuditProjectUpdated    AuditAction = "PROJECT_UPDATED"
	AuditProjectDeleted    AuditAction = "PROJECT_DELETED"
)

// AuditLog is an append-only record of a security-relevant action. UserID is
// nil for unauthenticated actions; TargetID identifies the affected record.
type AuditLog struct {
	ID        string
	Action    AuditAction
	UserID    *string
	TargetID  *string
	Details   string
	IPAddress string
	CreatedAt time.Time
}
