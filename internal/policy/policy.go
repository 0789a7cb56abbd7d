// Package policy contains the pure access-control decision functions for
// tickets. Every function answers from (role, user id, ticket snapshot)
// alone; callers translate a false into an explicit denial, never a silent
// no-op.
package policy

import "github.com/helpdesk-kit/support-service/internal/domain"

// Scope narrows a ticket list query to what the caller may see. The
// repository applies the scope in SQL, so client-supplied pagination, sort,
// or filter parameters can never widen it.
type Scope struct {
	CustomerID     *string
	AssigneeID     *string
	UnassignedOnly bool
}

// ListScope returns the mandatory narrowing for list queries. Workers may
// request the unassigned pool instead of their own queue so they can
// self-pick work; customers always see only their own tickets; admins see
// everything.
func ListScope(role domain.Role, userID string, unassigned bool) Scope {
	switch role {
	case domain.RoleAdmin:
		return Scope{}
	case domain.RoleWorker:
		if unassigned {
			return Scope{UnassignedOnly: true}
		}
		id := userID
		return Scope{AssigneeID: &id}
	default:
		id := userID
		return Scope{CustomerID: &id}
	}
}

// CanView reports whether the actor may read the ticket and its thread.
// An unassigned ticket is visible to every worker; once assigned it is
// visible only to its assignee (and admins, and the owning customer).
func CanView(role domain.Role, userID string, ticket *domain.Ticket) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleWorker:
		return ticket.AssigneeID == nil || *ticket.AssigneeID == userID
	case domain.RoleCustomer:
		return ticket.CustomerID == userID
	}
	return false
}

// CanCreate reports whether the role may open tickets. Only customers file
// tickets; the creator becomes the ticket's customer.
func CanCreate(role domain.Role) bool {
	return role == domain.RoleCustomer
}

// CanComment reports whether the actor may append to the ticket's thread.
// Unlike viewing, a worker must be the assignee: visibility of the
// unassigned pool does not grant a voice in it.
func CanComment(role domain.Role, userID string, ticket *domain.Ticket) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleWorker:
		return ticket.AssigneeID != nil && *ticket.AssigneeID == userID
	case domain.RoleCustomer:
		return ticket.CustomerID == userID
	}
	return false
}

// TicketField identifies an updatable ticket field. Partial updates are
// checked field by field against the ticket as currently stored and
// rejected wholesale by the caller if any check fails.
type TicketField string

const (
	FieldTitle       TicketField = "title"
	FieldDescription TicketField = "description"
	FieldCategory    TicketField = "category"
	FieldStatus      TicketField = "status"
	FieldPriority    TicketField = "priority"
	FieldAssignee    TicketField = "assignee_id"
)

// CanUpdateField reports whether the actor may change one field of the
// ticket. Status and priority belong to the assigned worker or an admin;
// title, description, and category belong to the owning customer until the
// ticket resolves, or to an admin at any time; reassignment is admin-only.
func CanUpdateField(role domain.Role, userID string, ticket *domain.Ticket, field TicketField) bool {
	switch field {
	case FieldStatus, FieldPriority:
		switch role {
		case domain.RoleAdmin:
			return true
		case domain.RoleWorker:
			return ticket.AssigneeID != nil && *ticket.AssigneeID == userID
		}
		return false
	case FieldTitle, FieldDescription, FieldCategory:
		switch role {
		case domain.RoleAdmin:
			return true
		case domain.RoleCustomer:
			return ticket.CustomerID == userID && !ticket.Resolved()
		}
		return false
	case FieldAssignee:
		return role == domain.RoleAdmin
	}
	return false
}

// CanDelete reports whether the actor may remove the ticket entirely.
func CanDelete(role domain.Role) bool {
	return role == domain.RoleAdmin
}
