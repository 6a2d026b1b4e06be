package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// In-memory implementations backing tests and DSN-less local runs. Each store
// preserves insertion order and guards its maps with a mutex so concurrent
// request workers observe the same atomicity the Postgres implementations get
// from the database.

// InMemoryUserRepository keeps users in process memory.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewInMemoryUserRepository builds an empty store.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Name, user.Name) {
			return ErrDuplicateName
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) GetByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Name == name {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

// InMemoryTicketRepository keeps tickets in process memory.
type InMemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []*domain.Ticket
}

// NewInMemoryTicketRepository builds an empty store.
func NewInMemoryTicketRepository() *InMemoryTicketRepository {
	return &InMemoryTicketRepository{}
}

func (r *InMemoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.Version = 1
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	stored := *ticket
	r.tickets = append(r.tickets, &stored)
	return nil
}

func (r *InMemoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket := r.find(id)
	if ticket == nil {
		return nil, ErrNotFound
	}
	clone := *ticket
	return &clone, nil
}

func (r *InMemoryTicketRepository) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*domain.Ticket) bool { return true }), nil
}

func (r *InMemoryTicketRepository) ListByCreator(_ context.Context, userID string) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *domain.Ticket) bool { return t.CreatedBy == userID }), nil
}

func (r *InMemoryTicketRepository) ListByStatus(_ context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *domain.Ticket) bool { return t.Status == status }), nil
}

func (r *InMemoryTicketRepository) ListByIDAndStatus(_ context.Context, id string, status domain.TicketStatus) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t *domain.Ticket) bool { return t.ID == id && t.Status == status }), nil
}

func (r *InMemoryTicketRepository) UpdateStatus(_ context.Context, id string, newStatus domain.TicketStatus, expectedVersion int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket := r.find(id)
	if ticket == nil {
		return nil, ErrNotFound
	}
	if ticket.Version != expectedVersion {
		return nil, ErrVersionConflict
	}
	ticket.Status = newStatus
	ticket.Version++
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	return &clone, nil
}

func (r *InMemoryTicketRepository) find(id string) *domain.Ticket {
	for _, ticket := range r.tickets {
		if ticket.ID == id {
			return ticket
		}
	}
	return nil
}

func (r *InMemoryTicketRepository) collect(match func(*domain.Ticket) bool) []domain.Ticket {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if match(ticket) {
			result = append(result, *ticket)
		}
	}
	return result
}

// InMemoryCommentRepository keeps comments in process memory.
type InMemoryCommentRepository struct {
	mu       sync.RWMutex
	comments []*domain.Comment
}

// NewInMemoryCommentRepository builds an empty store.
func NewInMemoryCommentRepository() *InMemoryCommentRepository {
	return &InMemoryCommentRepository{}
}

func (r *InMemoryCommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	stored := *comment
	r.comments = append(r.comments, &stored)
	return nil
}

func (r *InMemoryCommentRepository) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

// InMemoryAuditLogRepository keeps audit entries in process memory,
// append-only in creation order.
type InMemoryAuditLogRepository struct {
	mu      sync.RWMutex
	entries []*domain.AuditLog
}

// NewInMemoryAuditLogRepository builds an empty store.
func NewInMemoryAuditLogRepository() *InMemoryAuditLogRepository {
	return &InMemoryAuditLogRepository{}
}

func (r *InMemoryAuditLogRepository) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	stored := *entry
	r.entries = append(r.entries, &stored)
	return nil
}

func (r *InMemoryAuditLogRepository) ListByTicket(_ context.Context, ticketID string) ([]domain.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.AuditLog
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, *entry)
		}
	}
	return result, nil
}
