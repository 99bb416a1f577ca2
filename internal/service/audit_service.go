package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/repository"
)

// AuditRecorder is the sink services emit security-relevant actions to.
// Recording is fire-and-forget: it never fails the caller's operation.
type AuditRecorder interface {
	Record(ctx context.Context, payload events.AuditRecordedPayload)
}

// AuditService publishes audit events and persists them as append-only rows.
type AuditService struct {
	dispatcher events.Dispatcher
	repo       repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, repo repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, repo: repo, logger: logger}
}

// RegisterHandlers subscribes the persistence handler to audit events.
func (s *AuditService) RegisterHandlers() {
	s.dispatcher.Subscribe(events.EventAuditRecorded, s.handleAuditRecorded)
}

// Record publishes an audit event through the dispatcher.
func (s *AuditService) Record(ctx context.Context, payload events.AuditRecordedPayload) {
	s.dispatcher.Publish(ctx, events.NewAuditEvent(payload))
}

// List returns recent audit entries, newest first.
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]domain.AuditLog, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *AuditService) handleAuditRecorded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AuditRecordedPayload)
	if !ok {
		return nil
	}

	entry := &domain.AuditLog{
		Action:    payload.Action,
		UserID:    payload.UserID,
		TargetID:  payload.TargetID,
		Details:   payload.Details,
		IPAddress: payload.IPAddress,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		// Audit failures are logged, never surfaced to the primary operation.
		s.logger.Error("audit write failed",
			zap.String("action", string(payload.Action)),
			zap.Error(err))
	}
	return nil
}
