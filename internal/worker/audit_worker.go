package worker

import (
	"github.com/spec-kit/admin-console/internal/service"
)

// StartAuditWorker registers the audit persistence handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
