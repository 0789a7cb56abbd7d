package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Worker ")
	assert.NoError(t, err)
	assert.Equal(t, RoleWorker, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleWorker.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
}

func TestParseTicketStatus(t *testing.T) {
	status, err := ParseTicketStatus("IN_PROGRESS")
	assert.NoError(t, err)
	assert.Equal(t, TicketStatusInProgress, status)

	_, err = ParseTicketStatus("archived")
	assert.Error(t, err)
}

func TestParseTicketPriority(t *testing.T) {
	priority, err := ParseTicketPriority("urgent")
	assert.NoError(t, err)
	assert.Equal(t, TicketPriorityUrgent, priority)

	_, err = ParseTicketPriority("critical")
	assert.Error(t, err)
}

func TestResolvedFreezesEdits(t *testing.T) {
	ticket := Ticket{Status: TicketStatusOpen}
	assert.False(t, ticket.Resolved())

	ticket.Status = TicketStatusResolved
	assert.True(t, ticket.Resolved())

	ticket.Status = TicketStatusClosed
	assert.True(t, ticket.Resolved())
}
