package dto

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// AuditLogResponse is the wire shape of an audit entry.
type AuditLogResponse struct {
	ID        string             `json:"id"`
	Action    domain.AuditAction `json:"action"`
	UserID    *string            `json:"userId,omitempty"`
	TargetID  *string            `json:"targetId,omitempty"`
	Details   string             `json:"details,omitempty"`
	IPAddress string             `json:"ipAddress,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// NewAuditLogResponses maps an audit entry slice.
func NewAuditLogResponses(entries []domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AuditLogResponse{
			ID:        entry.ID,
			Action:    entry.Action,
			UserID:    entry.UserID,
			TargetID:  entry.TargetID,
			Details:   entry.Details,
			IPAddress: entry.IPAddress,
			CreatedAt: entry.CreatedAt,
		})
	}
	return out
}
