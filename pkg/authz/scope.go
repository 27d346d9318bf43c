// Package authz is the authorization-scoping engine. It resolves the acting
// principal's role to an access scope once per request, then evaluates
// account, user and transaction policies against that scope. Policies either
// allow, deny with a stable reason, or narrow a listing query to permitted
// rows; they never mutate anything.
package authz

import (
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/google/uuid"
)

// AccessScope is the breadth of resources a principal may act on.
// Evaluated widest first: Global, then BankLevel, then Self.
type AccessScope uint8

const (
	// ScopeSelf restricts the actor to resources they directly own.
	ScopeSelf AccessScope = iota
	// ScopeBankLevel allows acting on Client-owned resources inside the
	// actor's own bank.
	ScopeBankLevel
	// ScopeGlobal is unrestricted.
	ScopeGlobal
)

// String implements fmt.Stringer for log output.
func (s AccessScope) String() string {
	switch s {
	case ScopeGlobal:
		return "Global"
	case ScopeBankLevel:
		return "BankLevel"
	default:
		return "Self"
	}
}

// ResolveScope maps a role to its access scope. Unknown roles fall back to
// Self, the narrowest scope.
func ResolveScope(role user.Role) AccessScope {
	switch role {
	case user.RoleSuperAdmin:
		return ScopeGlobal
	case user.RoleAdmin:
		return ScopeBankLevel
	default:
		return ScopeSelf
	}
}

// Operation is the action a policy check guards.
type Operation string

const (
	OpView           Operation = "View"
	OpEdit           Operation = "Edit"
	OpDelete         Operation = "Delete"
	OpDeposit        Operation = "Deposit"
	OpWithdraw       Operation = "Withdraw"
	OpChangePassword Operation = "ChangePassword"
)

// isSelfEdit reports whether the operation counts as editing one's own
// resource. Money operations deliberately do not: a BankLevel actor may still
// deposit into or withdraw from their own account.
func (op Operation) isSelfEdit() bool {
	return op == OpEdit || op == OpDelete
}

// Actor is the resolved per-request scope context of the authenticated
// principal. It is computed once from the identity provider and threaded
// through every policy check; it is never persisted.
type Actor struct {
	UserID uuid.UUID
	BankID uuid.UUID
	Role   user.Role
	Scope  AccessScope
}

// NewActor resolves the actor's scope from its role.
func NewActor(userID, bankID uuid.UUID, role user.Role) Actor {
	return Actor{
		UserID: userID,
		BankID: bankID,
		Role:   role,
		Scope:  ResolveScope(role),
	}
}
