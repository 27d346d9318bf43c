package authz

import (
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
)

// Stable policy reasons carried by Forbidden failures. Callers and tests
// assert on these substrings, so they must not change casually.
const (
	MsgSelfEditAccount  = "Users cannot edit their own accounts"
	MsgSelfEditProfile  = "Users cannot edit their own profile"
	MsgSelfDelete       = "Users cannot delete themselves"
	MsgOtherUsersAcct   = "Clients cannot modify other users' accounts"
	MsgOtherUsers       = "Clients cannot access other users"
	MsgBankIsolation    = "Access forbidden due to bank isolation policy"
	MsgClientUsersOnly  = "You can only access Client users"
	MsgTransferNotOwner = "Clients can only transfer from their own accounts"
)

// CanViewAccount decides whether the actor may read the account. The owner is
// the account's user, loaded by the caller.
func CanViewAccount(actor Actor, acct *account.Account, owner *user.User) error {
	if acct == nil || owner == nil {
		return domain.ErrNotFound
	}
	switch actor.Scope {
	case ScopeGlobal:
		return nil
	case ScopeBankLevel:
		if acct.UserID == actor.UserID {
			return nil
		}
		return bankLevelReach(actor, owner)
	default:
		if acct.UserID != actor.UserID {
			return domain.Forbiddenf(MsgOtherUsersAcct)
		}
		return nil
	}
}

// CanModifyAccount decides whether the actor may perform op on the account.
//
// The self-modification carve-out applies before any scope logic: no one may
// Edit or Delete their own account, regardless of role. Money operations are
// not self-edits, so a BankLevel actor may still deposit into or withdraw
// from their own account.
func CanModifyAccount(actor Actor, acct *account.Account, owner *user.User, op Operation) error {
	if acct == nil || owner == nil {
		return domain.ErrNotFound
	}
	if acct.UserID == actor.UserID && op.isSelfEdit() {
		return domain.Forbiddenf(MsgSelfEditAccount)
	}
	switch actor.Scope {
	case ScopeGlobal:
		return nil
	case ScopeBankLevel:
		if acct.UserID == actor.UserID {
			return nil
		}
		return bankLevelReach(actor, owner)
	default:
		if acct.UserID != actor.UserID {
			return domain.Forbiddenf(MsgOtherUsersAcct)
		}
		return nil
	}
}

// CanViewUser decides whether the actor may read the target user.
func CanViewUser(actor Actor, target *user.User) error {
	if target == nil {
		return domain.ErrNotFound
	}
	switch actor.Scope {
	case ScopeGlobal:
		return nil
	case ScopeBankLevel:
		if target.ID == actor.UserID {
			return nil
		}
		return bankLevelReach(actor, target)
	default:
		if target.ID != actor.UserID {
			return domain.Forbiddenf(MsgOtherUsers)
		}
		return nil
	}
}

// CanModifyUser decides whether the actor may perform op on the target user.
//
// Carve-outs first, regardless of scope: a user may always change their own
// password, may never delete themselves, and may not edit their own profile
// through this path.
func CanModifyUser(actor Actor, target *user.User, op Operation) error {
	if target == nil {
		return domain.ErrNotFound
	}
	if target.ID == actor.UserID {
		switch op {
		case OpChangePassword, OpView:
			return nil
		case OpDelete:
			return domain.Forbiddenf(MsgSelfDelete)
		default:
			return domain.Forbiddenf(MsgSelfEditProfile)
		}
	}
	switch actor.Scope {
	case ScopeGlobal:
		return nil
	case ScopeBankLevel:
		return bankLevelReach(actor, target)
	default:
		return domain.Forbiddenf(MsgOtherUsers)
	}
}

// CanInitiateTransfer evaluates ownership and scope against the source
// account only. The target account is not scope-restricted; the movement
// engine checks that it exists and is active.
func CanInitiateTransfer(actor Actor, source *account.Account, sourceOwner *user.User) error {
	if source == nil || sourceOwner == nil {
		return domain.ErrNotFound
	}
	switch actor.Scope {
	case ScopeGlobal:
		return nil
	case ScopeBankLevel:
		if source.UserID == actor.UserID {
			return nil
		}
		return bankLevelReach(actor, sourceOwner)
	default:
		if source.UserID != actor.UserID {
			return domain.Forbiddenf(MsgTransferNotOwner)
		}
		return nil
	}
}

// bankLevelReach enforces the BankLevel boundary: the target owner must
// belong to the actor's bank and must hold the Client role. Peer admins and
// super admins are out of reach regardless of action type.
func bankLevelReach(actor Actor, owner *user.User) error {
	if owner.BankID != actor.BankID {
		return domain.Forbiddenf(MsgBankIsolation)
	}
	if !owner.IsClient() {
		return domain.Forbiddenf(MsgClientUsersOnly)
	}
	return nil
}
