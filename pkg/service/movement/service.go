// Package movement is the transactional money-movement engine. Deposit,
// Withdraw and Transfer run validate → authorize → load → convert → mutate →
// persist inside one storage transaction, wrapped in a bounded
// optimistic-concurrency retry loop. Authorization is a mandatory capability:
// every operation consults the scoping policies before any mutation is
// attempted, and there is no bypass mode.
package movement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/amirasaad/banking/pkg/service/conversion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrConcurrentUpdate is the terminal failure surfaced once the retry budget
// for optimistic-concurrency conflicts is exhausted.
var ErrConcurrentUpdate = fmt.Errorf("%w: concurrent update, retry later", domain.ErrConflict)

// DefaultMaxRetries bounds the optimistic retry loop.
const DefaultMaxRetries = 3

// Config carries the engine's movement policy. The fee rates and the retry
// bound are configuration inputs; DefaultConfig preserves the standard
// values.
type Config struct {
	Fees       conversion.FeePolicy
	MaxRetries int
}

// DefaultConfig returns the standard movement policy: 0.5% same-currency
// fee, 1.0% cross-currency fee, 3 attempts.
func DefaultConfig() Config {
	return Config{
		Fees:       conversion.DefaultFeePolicy(),
		MaxRetries: DefaultMaxRetries,
	}
}

// Service orchestrates balance mutation and ledger writes.
type Service struct {
	uow    repository.UnitOfWork
	lookup *conversion.Lookup
	cfg    Config
	logger *slog.Logger
}

// NewService builds the movement engine. The unit of work and the currency
// lookup are mandatory.
func NewService(uow repository.UnitOfWork, lookup *conversion.Lookup, cfg Config, logger *slog.Logger) *Service {
	if uow == nil {
		panic("movement: unit of work is required")
	}
	if lookup == nil {
		panic("movement: currency lookup is required")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, lookup: lookup, cfg: cfg, logger: logger}
}

// Deposit adds amount to the account and records a one-leg ledger entry.
func (s *Service) Deposit(ctx context.Context, actor authz.Actor, accountID uuid.UUID, amount decimal.Decimal) (*account.Transaction, error) {
	return s.singleLeg(ctx, actor, accountID, amount, authz.OpDeposit)
}

// Withdraw removes amount from the account and records a one-leg ledger
// entry. The account floor (overdraft limit for checking, zero for savings)
// is enforced by the aggregate.
func (s *Service) Withdraw(ctx context.Context, actor authz.Actor, accountID uuid.UUID, amount decimal.Decimal) (*account.Transaction, error) {
	return s.singleLeg(ctx, actor, accountID, amount, authz.OpWithdraw)
}

func (s *Service) singleLeg(ctx context.Context, actor authz.Actor, accountID uuid.UUID, amount decimal.Decimal, op authz.Operation) (*account.Transaction, error) {
	if accountID == uuid.Nil {
		return nil, domain.Validationf("account id is required")
	}
	if !amount.IsPositive() {
		return nil, domain.Validationf("amount must be positive")
	}
	logger := s.logger.With("op", string(op), "accountID", accountID, "userID", actor.UserID, "amount", amount)

	var tx *account.Transaction
	err := s.withRetry(ctx, string(op), func() error {
		tx = nil
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			acct, owner, err := loadAccount(ctx, uow, accountID)
			if err != nil {
				return err
			}
			if err := authz.CanModifyAccount(actor, acct, owner, op); err != nil {
				return err
			}
			cur, err := s.resolveCurrency(ctx, acct, owner)
			if err != nil {
				return err
			}
			if op == authz.OpDeposit {
				err = acct.Deposit(amount)
			} else {
				err = acct.Withdraw(amount)
			}
			if err != nil {
				return mapMutationError(err)
			}
			if op == authz.OpDeposit {
				tx, err = account.NewDeposit(acct.ID, amount, cur.Code)
			} else {
				tx, err = account.NewWithdraw(acct.ID, amount, cur.Code)
			}
			if err != nil {
				return err
			}
			return persist(ctx, uow, tx, acct)
		})
	})
	if err != nil {
		logger.Error("movement failed", "error", err)
		return nil, err
	}
	logger.Info("movement committed", "transactionID", tx.ID)
	return tx, nil
}

// Transfer moves amount from the source account to the target account,
// converting currencies when they differ. The source is debited the
// pre-conversion amount plus the fee; the target is credited the converted
// amount. Both balance mutations and the two-leg ledger entry commit as one
// unit or not at all.
func (s *Service) Transfer(ctx context.Context, actor authz.Actor, sourceID, targetID uuid.UUID, amount decimal.Decimal) (*account.Transaction, error) {
	if sourceID == uuid.Nil || targetID == uuid.Nil {
		return nil, domain.Validationf("source and target account ids are required")
	}
	if sourceID == targetID {
		return nil, domain.Validationf("cannot transfer to the same account")
	}
	if !amount.IsPositive() {
		return nil, domain.Validationf("amount must be positive")
	}
	logger := s.logger.With("op", "Transfer", "sourceID", sourceID, "targetID", targetID, "userID", actor.UserID, "amount", amount)

	var tx *account.Transaction
	err := s.withRetry(ctx, "Transfer", func() error {
		tx = nil
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			source, sourceOwner, err := loadAccount(ctx, uow, sourceID)
			if err != nil {
				return err
			}
			if err := authz.CanInitiateTransfer(actor, source, sourceOwner); err != nil {
				return err
			}
			// Target ownership is not scope-restricted: funds may be sent to
			// any existing, active account.
			target, targetOwner, err := loadAccount(ctx, uow, targetID)
			if err != nil {
				return err
			}
			fromCur, err := s.resolveCurrency(ctx, source, sourceOwner)
			if err != nil {
				return err
			}
			toCur, err := s.resolveCurrency(ctx, target, targetOwner)
			if err != nil {
				return err
			}

			same := conversion.SameCurrency(fromCur, toCur)
			fee := s.cfg.Fees.TransferFee(amount, same)
			converted, err := conversion.Convert(amount, fromCur, toCur)
			if err != nil {
				return err
			}
			if !same {
				converted = converted.Round(2)
			}

			if err := source.Withdraw(amount.Add(fee)); err != nil {
				return mapMutationError(err)
			}
			if err := target.Deposit(converted); err != nil {
				return mapMutationError(err)
			}

			tx, err = account.NewTransfer(
				source.ID, amount, fee, fromCur.Code,
				target.ID, converted, toCur.Code,
			)
			if err != nil {
				return err
			}
			return persist(ctx, uow, tx, source, target)
		})
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return nil, err
	}
	logger.Info("transfer committed", "transactionID", tx.ID, "fee", tx.SourceLeg().Fee)
	return tx, nil
}

// GetBalance returns the account balance after an authorization check.
func (s *Service) GetBalance(ctx context.Context, actor authz.Actor, accountID uuid.UUID) (decimal.Decimal, error) {
	if accountID == uuid.Nil {
		return decimal.Zero, domain.Validationf("account id is required")
	}
	acct, owner, err := loadAccount(ctx, s.uow, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := authz.CanViewAccount(actor, acct, owner); err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

// withRetry runs fn up to the configured attempt count, retrying only on
// optimistic-concurrency conflicts. Each attempt re-enters the unit of work,
// so entities are freshly re-read rather than reused from the failed attempt.
func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if attempt >= s.cfg.MaxRetries {
			s.logger.Error("optimistic retries exhausted", "op", op, "attempts", attempt)
			return ErrConcurrentUpdate
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("concurrent update detected, retrying", "op", op, "attempt", attempt)
	}
}

// loadAccount fetches an account and its owning user, checking existence only.
func loadAccount(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*account.Account, *user.User, error) {
	accounts, err := uow.Accounts()
	if err != nil {
		return nil, nil, err
	}
	acct, err := accounts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account %s", domain.ErrNotFound, id)
		}
		return nil, nil, err
	}
	users, err := uow.Users()
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

// resolveCurrency checks the account and owner state and loads the account's
// currency through the cached lookup.
func (s *Service) resolveCurrency(ctx context.Context, acct *account.Account, owner *user.User) (*currency.Currency, error) {
	if !acct.Active {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvalidState, account.ErrAccountInactive, acct.Number)
	}
	if !owner.Active {
		return nil, domain.InvalidStatef("owner of account %s is inactive", acct.Number)
	}
	cur, err := s.lookup.ByID(ctx, acct.CurrencyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, currency.ErrCurrencyNotFound)
		}
		return nil, err
	}
	if !cur.Active {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvalidState, currency.ErrCurrencyInactive, cur.Code)
	}
	return cur, nil
}

// persist writes the mutated accounts and the ledger entry in the same save,
// so a reader never observes a balance change without its ledger entry.
func persist(ctx context.Context, uow repository.UnitOfWork, tx *account.Transaction, accts ...*account.Account) error {
	accounts, err := uow.Accounts()
	if err != nil {
		return err
	}
	for _, a := range accts {
		if err := accounts.Update(ctx, a); err != nil {
			return err
		}
	}
	transactions, err := uow.Transactions()
	if err != nil {
		return err
	}
	return transactions.Create(ctx, tx)
}

// mapMutationError folds aggregate errors into the shared taxonomy while
// keeping the original sentinel visible to errors.Is.
func mapMutationError(err error) error {
	switch {
	case errors.Is(err, account.ErrInsufficientFunds):
		return fmt.Errorf("%w: %w", domain.ErrInvalidState, err)
	case errors.Is(err, account.ErrAmountMustBePositive):
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	default:
		return err
	}
}
