package authz_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestResolveScope(t *testing.T) {
	t.Parallel()

	assert.Equal(t, authz.ScopeGlobal, authz.ResolveScope(user.RoleSuperAdmin))
	assert.Equal(t, authz.ScopeBankLevel, authz.ResolveScope(user.RoleAdmin))
	assert.Equal(t, authz.ScopeSelf, authz.ResolveScope(user.RoleClient))
	assert.Equal(t, authz.ScopeSelf, authz.ResolveScope(user.Role("Mystery")), "unknown roles fall back to the narrowest scope")
}

type fixture struct {
	bankA, bankB uuid.UUID

	superAdmin authz.Actor
	adminA     authz.Actor
	clientA    authz.Actor

	clientAUser  *user.User // owned by clientA
	peerClientA  *user.User // another Client in bank A
	adminAUser   *user.User // the adminA principal as a row
	peerAdminA   *user.User // a second Admin in bank A
	clientB      *user.User // a Client in bank B
	clientAAcct  *account.Account
	peerAAcct    *account.Account
	adminAAcct   *account.Account
	clientBAcct  *account.Account
	peerAdminAct *account.Account
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{bankA: uuid.New(), bankB: uuid.New()}

	f.clientAUser = newUser(f.bankA, user.RoleClient)
	f.peerClientA = newUser(f.bankA, user.RoleClient)
	f.adminAUser = newUser(f.bankA, user.RoleAdmin)
	f.peerAdminA = newUser(f.bankA, user.RoleAdmin)
	f.clientB = newUser(f.bankB, user.RoleClient)

	f.superAdmin = authz.NewActor(uuid.New(), f.bankA, user.RoleSuperAdmin)
	f.adminA = authz.NewActor(f.adminAUser.ID, f.bankA, user.RoleAdmin)
	f.clientA = authz.NewActor(f.clientAUser.ID, f.bankA, user.RoleClient)

	f.clientAAcct = newAccount(t, f.clientAUser.ID)
	f.peerAAcct = newAccount(t, f.peerClientA.ID)
	f.adminAAcct = newAccount(t, f.adminAUser.ID)
	f.clientBAcct = newAccount(t, f.clientB.ID)
	f.peerAdminAct = newAccount(t, f.peerAdminA.ID)
	return f
}

func newUser(bankID uuid.UUID, role user.Role) *user.User {
	return &user.User{ID: uuid.New(), BankID: bankID, Role: role, Active: true}
}

func newAccount(t *testing.T, ownerID uuid.UUID) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithUserID(ownerID).
		WithCurrencyID(uuid.New()).
		WithBalance(decimal.NewFromInt(100)).
		Build()
	require.NoError(t, err)
	return acc
}

func TestCanViewAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	t.Run("global sees everything", func(t *testing.T) {
		assert.NoError(t, authz.CanViewAccount(f.superAdmin, f.clientBAcct, f.clientB))
		assert.NoError(t, authz.CanViewAccount(f.superAdmin, f.peerAdminAct, f.peerAdminA))
	})

	t.Run("bank level reaches clients of own bank", func(t *testing.T) {
		assert.NoError(t, authz.CanViewAccount(f.adminA, f.clientAAcct, f.clientAUser))
	})

	t.Run("bank level sees own account", func(t *testing.T) {
		assert.NoError(t, authz.CanViewAccount(f.adminA, f.adminAAcct, f.adminAUser))
	})

	t.Run("bank level blocked across banks", func(t *testing.T) {
		err := authz.CanViewAccount(f.adminA, f.clientBAcct, f.clientB)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorContains(t, err, authz.MsgBankIsolation)
	})

	t.Run("bank level blocked on peer admins", func(t *testing.T) {
		err := authz.CanViewAccount(f.adminA, f.peerAdminAct, f.peerAdminA)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorContains(t, err, authz.MsgClientUsersOnly)
	})

	t.Run("self sees only own account", func(t *testing.T) {
		assert.NoError(t, authz.CanViewAccount(f.clientA, f.clientAAcct, f.clientAUser))

		err := authz.CanViewAccount(f.clientA, f.peerAAcct, f.peerClientA)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorContains(t, err, authz.MsgOtherUsersAcct)
	})

	t.Run("nil account is not found", func(t *testing.T) {
		assert.ErrorIs(t, authz.CanViewAccount(f.superAdmin, nil, f.clientAUser), domain.ErrNotFound)
	})
}

func TestCanModifyAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	t.Run("no one edits their own account", func(t *testing.T) {
		for _, actor := range []authz.Actor{f.clientA, f.adminA} {
			var acct *account.Account
			var owner *user.User
			if actor.UserID == f.adminA.UserID {
				acct, owner = f.adminAAcct, f.adminAUser
			} else {
				acct, owner = f.clientAAcct, f.clientAUser
			}
			for _, op := range []authz.Operation{authz.OpEdit, authz.OpDelete} {
				err := authz.CanModifyAccount(actor, acct, owner, op)
				assert.ErrorIs(t, err, domain.ErrForbidden)
				assert.ErrorContains(t, err, authz.MsgSelfEditAccount)
			}
		}
	})

	t.Run("self carve-out binds global scope too", func(t *testing.T) {
		ownAcct := newAccount(t, f.superAdmin.UserID)
		owner := &user.User{ID: f.superAdmin.UserID, BankID: f.bankA, Role: user.RoleSuperAdmin, Active: true}
		err := authz.CanModifyAccount(f.superAdmin, ownAcct, owner, authz.OpEdit)
		assert.ErrorContains(t, err, authz.MsgSelfEditAccount)
	})

	t.Run("money ops on own account are allowed", func(t *testing.T) {
		assert.NoError(t, authz.CanModifyAccount(f.adminA, f.adminAAcct, f.adminAUser, authz.OpDeposit))
		assert.NoError(t, authz.CanModifyAccount(f.clientA, f.clientAAcct, f.clientAUser, authz.OpWithdraw))
	})

	t.Run("bank level edits client accounts of own bank", func(t *testing.T) {
		assert.NoError(t, authz.CanModifyAccount(f.adminA, f.clientAAcct, f.clientAUser, authz.OpEdit))

		err := authz.CanModifyAccount(f.adminA, f.clientBAcct, f.clientB, authz.OpEdit)
		assert.ErrorContains(t, err, authz.MsgBankIsolation)
	})

	t.Run("self cannot touch other accounts", func(t *testing.T) {
		err := authz.CanModifyAccount(f.clientA, f.peerAAcct, f.peerClientA, authz.OpDeposit)
		assert.ErrorContains(t, err, authz.MsgOtherUsersAcct)
	})
}

func TestCanViewUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	assert.NoError(t, authz.CanViewUser(f.superAdmin, f.clientB))
	assert.NoError(t, authz.CanViewUser(f.adminA, f.clientAUser))
	assert.NoError(t, authz.CanViewUser(f.adminA, f.adminAUser), "own row is always visible")
	assert.NoError(t, authz.CanViewUser(f.clientA, f.clientAUser))

	err := authz.CanViewUser(f.adminA, f.peerAdminA)
	assert.ErrorContains(t, err, authz.MsgClientUsersOnly)

	err = authz.CanViewUser(f.adminA, f.clientB)
	assert.ErrorContains(t, err, authz.MsgBankIsolation)

	err = authz.CanViewUser(f.clientA, f.peerClientA)
	assert.ErrorContains(t, err, authz.MsgOtherUsers)
}

func TestCanModifyUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	t.Run("password change on self is always allowed", func(t *testing.T) {
		assert.NoError(t, authz.CanModifyUser(f.clientA, f.clientAUser, authz.OpChangePassword))
		assert.NoError(t, authz.CanModifyUser(f.adminA, f.adminAUser, authz.OpChangePassword))
	})

	t.Run("self delete is never allowed", func(t *testing.T) {
		err := authz.CanModifyUser(f.superAdmin, &user.User{ID: f.superAdmin.UserID, BankID: f.bankA, Role: user.RoleSuperAdmin}, authz.OpDelete)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorContains(t, err, authz.MsgSelfDelete)

		err = authz.CanModifyUser(f.adminA, f.adminAUser, authz.OpDelete)
		assert.ErrorContains(t, err, authz.MsgSelfDelete)
	})

	t.Run("self profile edit is blocked", func(t *testing.T) {
		err := authz.CanModifyUser(f.clientA, f.clientAUser, authz.OpEdit)
		assert.ErrorContains(t, err, authz.MsgSelfEditProfile)
	})

	t.Run("bank level manages clients only", func(t *testing.T) {
		assert.NoError(t, authz.CanModifyUser(f.adminA, f.clientAUser, authz.OpEdit))

		err := authz.CanModifyUser(f.adminA, f.peerAdminA, authz.OpEdit)
		assert.ErrorContains(t, err, authz.MsgClientUsersOnly)
	})

	t.Run("self cannot manage others", func(t *testing.T) {
		err := authz.CanModifyUser(f.clientA, f.peerClientA, authz.OpEdit)
		assert.ErrorContains(t, err, authz.MsgOtherUsers)
	})
}

func TestCanInitiateTransfer(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	t.Run("scope evaluates the source only", func(t *testing.T) {
		// Admin transferring out of a client account in their bank: allowed
		// no matter where the target lives.
		assert.NoError(t, authz.CanInitiateTransfer(f.adminA, f.clientAAcct, f.clientAUser))
	})

	t.Run("admin may transfer from own account", func(t *testing.T) {
		assert.NoError(t, authz.CanInitiateTransfer(f.adminA, f.adminAAcct, f.adminAUser))
	})

	t.Run("client from own account only", func(t *testing.T) {
		assert.NoError(t, authz.CanInitiateTransfer(f.clientA, f.clientAAcct, f.clientAUser))

		err := authz.CanInitiateTransfer(f.clientA, f.peerAAcct, f.peerClientA)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorContains(t, err, authz.MsgTransferNotOwner)
	})

	t.Run("bank isolation applies to the source", func(t *testing.T) {
		err := authz.CanInitiateTransfer(f.adminA, f.clientBAcct, f.clientB)
		assert.ErrorContains(t, err, authz.MsgBankIsolation)
	})
}
