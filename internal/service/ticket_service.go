package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/audit"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/policy"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle: creation, status
// transitions, and query operations. Every method takes the caller's resolved
// identity explicitly; authorization runs before any persistence access, and
// mutations append their audit entry only after the write succeeds.
type TicketService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	recorder   *audit.Recorder
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	UserRepo   repository.UserRepository
	TicketRepo repository.TicketRepository
	Recorder   *audit.Recorder
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload. There is deliberately
// no status field: tickets always start as NEW no matter what the request
// carried on the wire.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
}

// TicketFilter carries the optional id/status filter pair for GetTickets.
// Status arrives as a raw token so that the enumeration check (and its
// InvalidArgument failure) lives in the core rather than in the transport.
type TicketFilter struct {
	TicketID *string
	Status   *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		recorder:   deps.Recorder,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket creates a ticket for an employee. Status is forced to NEW and
// creation itself is not an audited transition.
func (s *TicketService) CreateTicket(ctx context.Context, identity domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpCreateTicket) {
		s.logger.Warn("ticket creation denied", zap.String("user_id", caller.ID), zap.String("role", string(caller.Role)))
		return nil, util.NewPermissionDenied("only employees can create tickets")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, util.NewInvalidArgument("title required", nil)
	}
	priority := domain.TicketPriorityMedium
	if input.Priority != "" {
		parsed, ok := domain.ParseTicketPriority(string(input.Priority))
		if !ok {
			return nil, util.NewInvalidArgument("invalid priority", map[string]any{"priority": input.Priority})
		}
		priority = parsed
	}
	category := domain.TicketCategoryOther
	if input.Category != "" {
		parsed, ok := domain.ParseTicketCategory(string(input.Category))
		if !ok {
			return nil, util.NewInvalidArgument("invalid category", map[string]any{"category": input.Category})
		}
		category = parsed
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Category:    category,
		Status:      domain.TicketStatusNew,
		CreatedBy:   caller.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, util.MapError(err)
	}

	s.logger.Info("ticket created", zap.String("ticket_id", ticket.ID), zap.String("created_by", caller.ID))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  caller.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
			Category: ticket.Category,
		},
	})
	return ticket, nil
}

// UpdateStatus transitions a ticket to newStatus and appends exactly one
// audit entry. The write is guarded by the ticket version so a losing
// concurrent writer fails with a retryable conflict instead of clobbering a
// sibling transition. If the audit append fails after the status write
// committed, the operation is reported as failed so the inconsistency never
// passes silently; the status change itself is not rolled back.
func (s *TicketService) UpdateStatus(ctx context.Context, identity domain.Identity, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpUpdateStatus) {
		return nil, util.NewPermissionDenied("only IT support can update ticket status")
	}
	parsed, ok := domain.ParseTicketStatus(string(newStatus))
	if !ok {
		return nil, util.NewInvalidArgument("invalid status", map[string]any{"status": newStatus})
	}
	newStatus = parsed

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, util.MapError(err)
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus, ticket.Version)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, util.NewConflict("concurrent status update", map[string]any{"ticket_id": ticketID})
		case errors.Is(err, repository.ErrNotFound):
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		default:
			return nil, util.MapError(err)
		}
	}

	observation := fmt.Sprintf("IT Support %s changed the status of Ticket %s from %s to %s.",
		caller.Name, ticketID, oldStatus, newStatus)
	if _, err := s.recorder.Record(ctx, ticketID, caller, observation); err != nil {
		s.logger.Error("audit append failed after status update",
			zap.String("ticket_id", ticketID), zap.Error(err))
		return nil, util.NewAuditFailure(err)
	}

	s.logger.Info("ticket status updated",
		zap.String("ticket_id", ticketID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		ActorID:  caller.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return updated, nil
}

// GetTicketsByEmployee returns tickets created by the given employee.
// Cross-employee lookups are denied: the caller must be the subject.
func (s *TicketService) GetTicketsByEmployee(ctx context.Context, identity domain.Identity, employeeID string) ([]domain.Ticket, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpViewOwnTickets) {
		return nil, util.NewPermissionDenied("only employees can view their tickets")
	}
	if !policy.IsOwner(caller.ID, employeeID) {
		return nil, util.NewPermissionDenied("employees may only view their own tickets")
	}
	tickets, err := s.tickets.ListByCreator(ctx, employeeID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tickets, nil
}

// GetAllTickets returns every ticket in the system.
func (s *TicketService) GetAllTickets(ctx context.Context, identity domain.Identity) ([]domain.Ticket, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpViewAllTickets) {
		return nil, util.NewPermissionDenied("only IT support can access all tickets")
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tickets, nil
}

// GetTickets filters tickets by the optional id/status pair. The contract is
// a possibly-empty sequence: an unknown ticket id yields an empty result, not
// a NotFound error. A malformed status token fails with InvalidArgument.
func (s *TicketService) GetTickets(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	var status *domain.TicketStatus
	if filter.Status != nil {
		parsed, ok := domain.ParseTicketStatus(*filter.Status)
		if !ok {
			return nil, util.NewInvalidArgument("invalid status", map[string]any{"status": *filter.Status})
		}
		status = &parsed
	}

	switch {
	case filter.TicketID != nil && status != nil:
		tickets, err := s.tickets.ListByIDAndStatus(ctx, *filter.TicketID, *status)
		if err != nil {
			return nil, util.MapError(err)
		}
		return tickets, nil
	case filter.TicketID != nil:
		ticket, err := s.tickets.GetByID(ctx, *filter.TicketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []domain.Ticket{}, nil
			}
			return nil, util.MapError(err)
		}
		return []domain.Ticket{*ticket}, nil
	case status != nil:
		tickets, err := s.tickets.ListByStatus(ctx, *status)
		if err != nil {
			return nil, util.MapError(err)
		}
		return tickets, nil
	default:
		tickets, err := s.tickets.ListAll(ctx)
		if err != nil {
			return nil, util.MapError(err)
		}
		return tickets, nil
	}
}

// AuditTrail exposes the audit log query upward for a ticket.
func (s *TicketService) AuditTrail(ctx context.Context, identity domain.Identity, ticketID string) ([]domain.AuditLog, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpViewAllTickets) {
		return nil, util.NewPermissionDenied("only IT support can read the audit trail")
	}
	entries, err := s.recorder.ListForTicket(ctx, ticketID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return entries, nil
}

func (s *TicketService) resolveCaller(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.UserID == "" {
		return nil, util.NewAuthenticationFailure("identity required")
	}
	caller, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewPermissionDenied("user not found")
		}
		return nil, util.MapError(err)
	}
	return caller, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
