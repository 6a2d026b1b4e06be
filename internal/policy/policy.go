// Package policy holds the fixed role/operation rule table. Decisions are
// pure functions of the supplied identity; nothing here touches storage or
// ambient state.
package policy

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Operation enumerates the gated core operations.
type Operation string

const (
	OpCreateTicket   Operation = "create_ticket"
	OpViewOwnTickets Operation = "view_own_tickets"
	OpViewAllTickets Operation = "view_all_tickets"
	OpUpdateStatus   Operation = "update_status"
	OpAddComment     Operation = "add_comment"
)

var ruleTable = map[Operation]domain.Role{
	OpCreateTicket:   domain.RoleEmployee,
	OpViewOwnTickets: domain.RoleEmployee,
	OpViewAllTickets: domain.RoleITSupport,
	OpUpdateStatus:   domain.RoleITSupport,
	OpAddComment:     domain.RoleITSupport,
}

// CanPerform reports whether the role is permitted to run the operation.
// Unknown operations are denied.
func CanPerform(role domain.Role, op Operation) bool {
	required, ok := ruleTable[op]
	return ok && role == required
}

// IsOwner reports whether the caller created the ticket in question.
func IsOwner(userID, createdBy string) bool {
	return userID != "" && userID == createdBy
}
