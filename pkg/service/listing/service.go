// Package listing serves paginated, authorization-narrowed listings of
// accounts, users and transactions. Narrowing never fails: rows outside the
// actor's scope are filtered out, not rejected.
package listing

import (
	"context"
	"log/slog"

	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
)

const defaultPageSize = 50

// Service narrows listing queries through the scoping policies before
// handing them to the repositories.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService builds a listing service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if uow == nil {
		panic("listing: unit of work is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// Accounts lists the accounts the actor may see, with the total count of
// matching rows for pagination.
func (s *Service) Accounts(ctx context.Context, actor authz.Actor, f repository.AccountFilter, p repository.Page) ([]*account.Account, int64, error) {
	accounts, err := s.uow.Accounts()
	if err != nil {
		return nil, 0, err
	}
	return accounts.List(ctx, authz.FilterAccounts(actor, f), normalize(p))
}

// Users lists the users the actor may see, with the total count.
func (s *Service) Users(ctx context.Context, actor authz.Actor, f repository.UserFilter, p repository.Page) ([]*user.User, int64, error) {
	users, err := s.uow.Users()
	if err != nil {
		return nil, 0, err
	}
	return users.List(ctx, authz.FilterUsers(actor, f), normalize(p))
}

// Transactions lists the ledger entries whose legs touch accounts the actor
// may see, with the total count.
func (s *Service) Transactions(ctx context.Context, actor authz.Actor, f repository.TransactionFilter, p repository.Page) ([]*account.Transaction, int64, error) {
	transactions, err := s.uow.Transactions()
	if err != nil {
		return nil, 0, err
	}
	return transactions.List(ctx, authz.FilterTransactions(actor, f), normalize(p))
}

func normalize(p repository.Page) repository.Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
