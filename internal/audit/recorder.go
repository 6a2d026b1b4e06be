// Package audit appends immutable audit entries for state-changing ticket
// actions. The recorder performs no authorization checks; callers are
// pre-authorized by construction, and observation text is formatted by the
// calling component.
package audit

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// Recorder writes and reads the append-only audit trail.
type Recorder struct {
	logs repository.AuditLogRepository
}

// NewRecorder builds the recorder.
func NewRecorder(logs repository.AuditLogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// Record appends one entry describing an action performed on a ticket by the
// acting user. It is invoked strictly after the underlying mutation succeeds.
func (r *Recorder) Record(ctx context.Context, ticketID string, actor *domain.User, observation string) (*domain.AuditLog, error) {
	entry := &domain.AuditLog{
		TicketID:    ticketID,
		ChangedByID: actor.ID,
		Observation: observation,
	}
	if err := r.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListForTicket returns the trail for a ticket in creation order. The trail
// references tickets weakly, so entries remain readable for tickets that no
// longer exist.
func (r *Recorder) ListForTicket(ctx context.Context, ticketID string) ([]domain.AuditLog, error) {
	return r.logs.ListByTicket(ctx, ticketID)
}
