package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction
// session, so every write in the closure commits or rolls back as one unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction, providing a UoW bound to it.
// Returning an error from fn rolls the transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the root handle otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Accounts returns the account repository bound to the current session.
func (u *UoW) Accounts() (repository.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// Users returns the user repository bound to the current session.
func (u *UoW) Users() (repository.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}

// Currencies returns the currency repository bound to the current session.
func (u *UoW) Currencies() (repository.CurrencyRepository, error) {
	return NewCurrencyRepository(u.session()), nil
}

// Transactions returns the ledger repository bound to the current session.
func (u *UoW) Transactions() (repository.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}
