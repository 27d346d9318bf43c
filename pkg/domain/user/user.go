// Package user defines the bank-scoped user entity and its roles.
package user

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a user is allowed to do system-wide. Roles map onto
// access scopes exactly once per request; policy code never branches on the
// raw role string beyond that mapping.
type Role string

const (
	// RoleSuperAdmin may act on any resource in any bank.
	RoleSuperAdmin Role = "SuperAdmin"
	// RoleAdmin manages Client users inside their own bank.
	RoleAdmin Role = "Admin"
	// RoleClient owns accounts and may act only on their own resources.
	RoleClient Role = "Client"
)

// User is a principal belonging to exactly one bank tenant.
type User struct {
	ID        uuid.UUID
	BankID    uuid.UUID
	Email     string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClient reports whether the user holds the Client role.
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
