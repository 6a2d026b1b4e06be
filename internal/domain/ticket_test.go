package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicketStatus(t *testing.T) {
	for _, token := range []string{"NEW", "in_progress", "Resolved", "closed"} {
		_, ok := ParseTicketStatus(token)
		assert.True(t, ok, token)
	}

	_, ok := ParseTicketStatus("DONE")
	assert.False(t, ok)
	_, ok = ParseTicketStatus("")
	assert.False(t, ok)
}

func TestParseTicketPriority(t *testing.T) {
	parsed, ok := ParseTicketPriority("urgent")
	assert.True(t, ok)
	assert.Equal(t, TicketPriorityUrgent, parsed)

	_, ok = ParseTicketPriority("CRITICAL")
	assert.False(t, ok)
}

func TestParseTicketCategory(t *testing.T) {
	parsed, ok := ParseTicketCategory("network")
	assert.True(t, ok)
	assert.Equal(t, TicketCategoryNetwork, parsed)

	_, ok = ParseTicketCategory("FURNITURE")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	parsed, ok := ParseRole("it_support")
	assert.True(t, ok)
	assert.Equal(t, RoleITSupport, parsed)

	_, ok = ParseRole("ADMIN")
	assert.False(t, ok)
}
