package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestInMemoryUserRepositoryDuplicateName(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Name: "alice", Role: domain.RoleEmployee}))

	err := repo.Create(ctx, &domain.User{Name: "Alice", Role: domain.RoleITSupport})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestInMemoryUserRepositoryNotFound(t *testing.T) {
	repo := NewInMemoryUserRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryTicketRepositoryVersioning(t *testing.T) {
	repo := NewInMemoryTicketRepository()
	ctx := context.Background()

	ticket := &domain.Ticket{Title: "t", Status: domain.TicketStatusNew, CreatedBy: "u1"}
	require.NoError(t, repo.Create(ctx, ticket))
	assert.Equal(t, int64(1), ticket.Version)

	updated, err := repo.UpdateStatus(ctx, ticket.ID, domain.TicketStatusInProgress, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

	// The stale version must lose.
	_, err = repo.UpdateStatus(ctx, ticket.ID, domain.TicketStatusClosed, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, err = repo.UpdateStatus(ctx, "missing", domain.TicketStatusClosed, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryTicketRepositoryListing(t *testing.T) {
	repo := NewInMemoryTicketRepository()
	ctx := context.Background()

	a := &domain.Ticket{Title: "a", Status: domain.TicketStatusNew, CreatedBy: "u1"}
	b := &domain.Ticket{Title: "b", Status: domain.TicketStatusNew, CreatedBy: "u2"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	_, err := repo.UpdateStatus(ctx, b.ID, domain.TicketStatusClosed, 1)
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.ListByCreator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	closed, err := repo.ListByStatus(ctx, domain.TicketStatusClosed)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, b.ID, closed[0].ID)

	match, err := repo.ListByIDAndStatus(ctx, b.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Len(t, match, 1)

	mismatch, err := repo.ListByIDAndStatus(ctx, b.ID, domain.TicketStatusNew)
	require.NoError(t, err)
	assert.Empty(t, mismatch)
}

func TestInMemoryTicketRepositoryReturnsClones(t *testing.T) {
	repo := NewInMemoryTicketRepository()
	ctx := context.Background()

	ticket := &domain.Ticket{Title: "t", Status: domain.TicketStatusNew}
	require.NoError(t, repo.Create(ctx, ticket))

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	got.Status = domain.TicketStatusClosed

	again, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusNew, again.Status)
}

func TestInMemoryCommentAndAuditRepositories(t *testing.T) {
	comments := NewInMemoryCommentRepository()
	audits := NewInMemoryAuditLogRepository()
	ctx := context.Background()

	require.NoError(t, comments.Create(ctx, &domain.Comment{TicketID: "t1", AuthorID: "u1", Content: "first"}))
	require.NoError(t, comments.Create(ctx, &domain.Comment{TicketID: "t1", AuthorID: "u1", Content: "second"}))
	require.NoError(t, comments.Create(ctx, &domain.Comment{TicketID: "t2", AuthorID: "u1", Content: "other"}))

	thread, err := comments.ListByTicket(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Content)

	require.NoError(t, audits.Create(ctx, &domain.AuditLog{TicketID: "t1", ChangedByID: "u1", Observation: "obs"}))
	entries, err := audits.ListByTicket(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
}
