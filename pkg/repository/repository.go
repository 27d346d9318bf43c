// Package repository defines the persistence interfaces the engines depend
// on. Implementations live in infra/repository; tests substitute fakes.
package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/google/uuid"
)

// AccountFilter narrows an account listing. Nil fields are unconstrained.
// Policy code builds these; repositories translate them to queries.
type AccountFilter struct {
	OwnerID   *uuid.UUID
	BankID    *uuid.UUID
	OwnerRole *user.Role
}

// UserFilter narrows a user listing. Nil fields are unconstrained.
type UserFilter struct {
	ID     *uuid.UUID
	BankID *uuid.UUID
	Role   *user.Role
}

// TransactionFilter narrows a transaction listing by the accounts its legs
// touch. Nil fields are unconstrained.
type TransactionFilter struct {
	AccountID *uuid.UUID
	OwnerID   *uuid.UUID
	BankID    *uuid.UUID
	OwnerRole *user.Role
}

// Page bounds a listing.
type Page struct {
	Limit  int
	Offset int
}

// AccountRepository is the data access contract for accounts. Update performs
// a compare-and-swap on the account's version token and reports
// domain.ErrConflict when the stored version no longer matches.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	Update(ctx context.Context, a *account.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f AccountFilter, p Page) ([]*account.Account, int64, error)
}

// UserRepository is the data access contract for users.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context, f UserFilter, p Page) ([]*user.User, int64, error)
}

// CurrencyRepository is the read-only access contract for currencies.
type CurrencyRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*currency.Currency, error)
	GetByCode(ctx context.Context, code string) (*currency.Currency, error)
}

// TransactionRepository is the append-only access contract for the ledger.
// Create persists a transaction together with all its legs as one unit.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error)
	List(ctx context.Context, f TransactionFilter, p Page) ([]*account.Transaction, int64, error)
}
