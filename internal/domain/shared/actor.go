package shared

import "github.com/google/uuid"

// Role is the coarse-grained role carried by an authenticated actor.
// The identity provider is responsible for assigning it; the domain only
// distinguishes admin from everything else.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
