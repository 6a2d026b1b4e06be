package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		op      Operation
		allowed bool
	}{
		{"employee creates ticket", domain.RoleEmployee, OpCreateTicket, true},
		{"employee views own tickets", domain.RoleEmployee, OpViewOwnTickets, true},
		{"employee cannot view all tickets", domain.RoleEmployee, OpViewAllTickets, false},
		{"employee cannot update status", domain.RoleEmployee, OpUpdateStatus, false},
		{"employee cannot comment", domain.RoleEmployee, OpAddComment, false},
		{"it support cannot create ticket", domain.RoleITSupport, OpCreateTicket, false},
		{"it support cannot view own tickets", domain.RoleITSupport, OpViewOwnTickets, false},
		{"it support views all tickets", domain.RoleITSupport, OpViewAllTickets, true},
		{"it support updates status", domain.RoleITSupport, OpUpdateStatus, true},
		{"it support comments", domain.RoleITSupport, OpAddComment, true},
		{"unknown role denied", domain.Role("MANAGER"), OpCreateTicket, false},
		{"unknown operation denied", domain.RoleITSupport, Operation("delete_ticket"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanPerform(tc.role, tc.op))
		})
	}
}

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner("u1", "u1"))
	assert.False(t, IsOwner("u1", "u2"))
	assert.False(t, IsOwner("", ""))
}
