package authz

import (
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
)

// FilterAccounts narrows an account listing to the rows the actor may see.
// It never fails: an out-of-scope listing simply comes back empty.
func FilterAccounts(actor Actor, base repository.AccountFilter) repository.AccountFilter {
	switch actor.Scope {
	case ScopeGlobal:
		return base
	case ScopeBankLevel:
		base.BankID = &actor.BankID
		base.OwnerRole = rolePtr(user.RoleClient)
		return base
	default:
		base.OwnerID = &actor.UserID
		return base
	}
}

// FilterUsers narrows a user listing to the rows the actor may see.
func FilterUsers(actor Actor, base repository.UserFilter) repository.UserFilter {
	switch actor.Scope {
	case ScopeGlobal:
		return base
	case ScopeBankLevel:
		base.BankID = &actor.BankID
		base.Role = rolePtr(user.RoleClient)
		return base
	default:
		base.ID = &actor.UserID
		return base
	}
}

// FilterTransactions narrows a transaction listing to entries whose legs
// touch accounts the actor may see.
func FilterTransactions(actor Actor, base repository.TransactionFilter) repository.TransactionFilter {
	switch actor.Scope {
	case ScopeGlobal:
		return base
	case ScopeBankLevel:
		base.BankID = &actor.BankID
		base.OwnerRole = rolePtr(user.RoleClient)
		return base
	default:
		base.OwnerID = &actor.UserID
		return base
	}
}

func rolePtr(r user.Role) *user.Role {
	return &r
}
