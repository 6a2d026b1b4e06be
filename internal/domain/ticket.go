package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets. No transition graph is
// enforced: any IT support actor may set any status from any prior status.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus validates a status token, case-insensitively.
func ParseTicketStatus(val string) (TicketStatus, bool) {
	switch status := TicketStatus(strings.ToUpper(val)); status {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return status, true
	}
	return "", false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// ParseTicketPriority validates a priority token, case-insensitively.
func ParseTicketPriority(val string) (TicketPriority, bool) {
	switch priority := TicketPriority(strings.ToUpper(val)); priority {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return priority, true
	}
	return "", false
}

// TicketCategory enumerates the fixed request categories.
type TicketCategory string

const (
	TicketCategoryHardware TicketCategory = "HARDWARE"
	TicketCategorySoftware TicketCategory = "SOFTWARE"
	TicketCategoryNetwork  TicketCategory = "NETWORK"
	TicketCategoryAccess   TicketCategory = "ACCESS"
	TicketCategoryOther    TicketCategory = "OTHER"
)

// ParseTicketCategory validates a category token, case-insensitively.
func ParseTicketCategory(val string) (TicketCategory, bool) {
	switch category := TicketCategory(strings.ToUpper(val)); category {
	case TicketCategoryHardware, TicketCategorySoftware, TicketCategoryNetwork,
		TicketCategoryAccess, TicketCategoryOther:
		return category, true
	}
	return "", false
}

// Ticket is the aggregate for support requests. CreatedBy references an
// EMPLOYEE user. Version backs the optimistic-concurrency guard on status
// updates: a writer carrying a stale version loses with a retryable conflict.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Priority    TicketPriority
	Category    TicketCategory
	Status      TicketStatus
	CreatedBy   string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
