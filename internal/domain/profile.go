package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles. Role strings are parsed once at
// the trust boundary; everything downstream works with the enum.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleWorker   Role = "worker"
	RoleCustomer Role = "customer"
)

// ParseRole canonicalizes a role string. Matching is case-insensitive; a
// value outside the enum is an error, never a silent default.
func ParseRole(val string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(val))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleWorker:
		return RoleWorker, nil
	case RoleCustomer:
		return RoleCustomer, nil
	}
	return "", fmt.Errorf("invalid role %q", val)
}

// IsStaff reports whether accounts with this role may be assigned tickets.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleWorker
}

// Profile is the account record kept for every authenticated subject.
// It is provisioned lazily with RoleCustomer on first sight; role elevation
// happens only through the admin user API.
type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
