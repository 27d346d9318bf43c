package repository

import "context"

// UnitOfWork is the transactional persistence boundary.
//
// Do runs the given function inside one storage transaction: every repository
// obtained from the UnitOfWork passed to fn shares that transaction, and an
// error return rolls the whole unit back. Callers that retry an
// optimistic-concurrency conflict re-invoke Do so every attempt re-reads
// entities from storage rather than reusing stale in-memory state.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() (AccountRepository, error)
	Users() (UserRepository, error)
	Currencies() (CurrencyRepository, error)
	Transactions() (TransactionRepository, error)
}
