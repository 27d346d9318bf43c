// Package accounts provisions and retires accounts. Balance mutation is the
// movement engine's job; this service only creates the rows it operates on.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenRequest describes a new account.
type OpenRequest struct {
	UserID         uuid.UUID
	CurrencyCode   string
	Type           account.Type
	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal
	InterestType   account.InterestType
}

// Service creates and deletes accounts under the scoping policies.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService builds an account provisioning service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if uow == nil {
		panic("accounts: unit of work is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// Open creates an account for the requested user. The actor must be allowed
// to act on that user; a Self-scope actor can only open accounts for
// themselves.
func (s *Service) Open(ctx context.Context, actor authz.Actor, req OpenRequest) (*account.Account, error) {
	if req.UserID == uuid.Nil {
		return nil, domain.Validationf("user id is required")
	}
	var acct *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.Users()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: user %s", domain.ErrNotFound, req.UserID)
			}
			return err
		}
		if err := authz.CanViewUser(actor, owner); err != nil {
			return err
		}
		if !owner.Active {
			return domain.InvalidStatef("user %s is inactive", owner.ID)
		}
		currencies, err := uow.Currencies()
		if err != nil {
			return err
		}
		cur, err := currencies.GetByCode(ctx, req.CurrencyCode)
		if err != nil {
			return err
		}
		if !cur.Active {
			return domain.InvalidStatef("currency %s is inactive", cur.Code)
		}
		acct, err = account.New().
			WithUserID(owner.ID).
			WithCurrencyID(cur.ID).
			WithType(req.Type).
			WithOverdraftLimit(req.OverdraftLimit).
			WithInterest(req.InterestRate, req.InterestType).
			Build()
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		return accounts.Create(ctx, acct)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account opened", "accountID", acct.ID, "number", acct.Number, "type", acct.Type)
	return acct, nil
}

// Delete removes an account. Blocked while the balance is non-zero, and the
// self-modification carve-out applies: nobody deletes their own account.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, accountID uuid.UUID) error {
	if accountID == uuid.Nil {
		return domain.Validationf("account id is required")
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, accountID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: account %s", domain.ErrNotFound, accountID)
			}
			return err
		}
		users, err := uow.Users()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, acct.UserID)
		if err != nil {
			return err
		}
		if err := authz.CanModifyAccount(actor, acct, owner, authz.OpDelete); err != nil {
			return err
		}
		if err := acct.CanDelete(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidState, err)
		}
		return accounts.Delete(ctx, acct.ID)
	})
}
