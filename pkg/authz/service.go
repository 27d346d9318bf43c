package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
)

// Service is the id-based entry point into the policy checks. It loads the
// target entity and its owner, then delegates to the pure policy functions.
// Absent targets surface as domain.ErrNotFound, missing ids as
// domain.ErrValidation, policy violations as domain.ErrForbidden with a
// stable reason.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService builds an authorization service. All dependencies are
// mandatory; there is no unauthenticated bypass mode.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if uow == nil {
		panic("authz: unit of work is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// CanViewAccount checks read access to an account by id.
func (s *Service) CanViewAccount(ctx context.Context, actor Actor, accountID uuid.UUID) error {
	acct, owner, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	return CanViewAccount(actor, acct, owner)
}

// CanModifyAccount checks whether the actor may perform op on an account by id.
func (s *Service) CanModifyAccount(ctx context.Context, actor Actor, accountID uuid.UUID, op Operation) error {
	acct, owner, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	return CanModifyAccount(actor, acct, owner, op)
}

// CanViewUser checks read access to a user by id.
func (s *Service) CanViewUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	target, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	return CanViewUser(actor, target)
}

// CanModifyUser checks whether the actor may perform op on a user by id.
func (s *Service) CanModifyUser(ctx context.Context, actor Actor, userID uuid.UUID, op Operation) error {
	target, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	return CanModifyUser(actor, target, op)
}

// CanInitiateTransfer checks whether the actor may move funds out of the
// source account. Scope is evaluated against the source only; the target is
// validated by the movement engine.
func (s *Service) CanInitiateTransfer(ctx context.Context, actor Actor, sourceID, targetID uuid.UUID) error {
	if sourceID == uuid.Nil || targetID == uuid.Nil {
		return domain.Validationf("source and target account ids are required")
	}
	source, owner, err := s.loadAccount(ctx, sourceID)
	if err != nil {
		return err
	}
	return CanInitiateTransfer(actor, source, owner)
}

func (s *Service) loadAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, *user.User, error) {
	if accountID == uuid.Nil {
		return nil, nil, domain.Validationf("account id is required")
	}
	accounts, err := s.uow.Accounts()
	if err != nil {
		return nil, nil, err
	}
	acct, err := accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account %s", domain.ErrNotFound, accountID)
		}
		return nil, nil, err
	}
	users, err := s.uow.Users()
	if err != nil {
		return nil, nil, err
	}
	owner, err := users.Get(ctx, acct.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account owner %s", domain.ErrNotFound, acct.UserID)
		}
		return nil, nil, err
	}
	return acct, owner, nil
}

func (s *Service) loadUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	if userID == uuid.Nil {
		return nil, domain.Validationf("user id is required")
	}
	users, err := s.uow.Users()
	if err != nil {
		return nil, err
	}
	target, err := users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		return nil, err
	}
	return target, nil
}
