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

// CommentService attaches IT support comments to tickets, with the same
// audit contract as status updates: exactly one entry per comment, appended
// only after the comment row exists.
type CommentService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	recorder   *audit.Recorder
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CommentDependencies bundles collaborators for the comment service.
type CommentDependencies struct {
	UserRepo    repository.UserRepository
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	Recorder    *audit.Recorder
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		recorder:   deps.Recorder,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// AddComment persists a new comment authored by the caller and appends one
// audit entry describing it. An audit append failure after the comment saved
// surfaces as a caller-visible error; the comment itself stands.
func (s *CommentService) AddComment(ctx context.Context, identity domain.Identity, ticketID, content string) (*domain.Comment, error) {
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
	if !policy.CanPerform(caller.Role, policy.OpAddComment) {
		s.logger.Warn("comment denied", zap.String("user_id", caller.ID), zap.String("role", string(caller.Role)))
		return nil, util.NewPermissionDenied("only IT support can add comments")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewInvalidArgument("content required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, util.MapError(err)
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: caller.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, util.MapError(err)
	}

	observation := fmt.Sprintf("IT Support %s added a comment on Ticket %s: %s.",
		caller.Name, ticket.ID, content)
	if _, err := s.recorder.Record(ctx, ticket.ID, caller, observation); err != nil {
		s.logger.Error("audit append failed after comment save",
			zap.String("ticket_id", ticket.ID), zap.Error(err))
		return nil, util.NewAuditFailure(err)
	}

	s.logger.Info("comment added", zap.String("ticket_id", ticket.ID), zap.String("comment_id", comment.ID))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		ActorID:  caller.ID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			BodyPreview: stringPreview(content, 120),
		},
	})
	return comment, nil
}

// ListByTicket returns the comment thread for a ticket in creation order.
func (s *CommentService) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return comments, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
