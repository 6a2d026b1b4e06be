package domain

import (
	"strings"
	"time"
)

// Role is the closed two-value role enumeration. A user's role is fixed at
// registration; no role-change operation exists.
type Role string

const (
	RoleEmployee  Role = "EMPLOYEE"
	RoleITSupport Role = "IT_SUPPORT"
)

// ParseRole validates a role token, case-insensitively.
func ParseRole(val string) (Role, bool) {
	switch role := Role(strings.ToUpper(val)); role {
	case RoleEmployee, RoleITSupport:
		return role, true
	}
	return "", false
}

// User is the domain model for people raising or resolving tickets.
type User struct {
	ID           string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the resolved (userId, role) pair established by the
// authentication layer for a single request. Every core operation takes it as
// an explicit argument; nothing reads ambient per-process auth state.
type Identity struct {
	UserID string
	Role   Role
}
