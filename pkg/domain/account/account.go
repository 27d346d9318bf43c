// Package account contains the account aggregate and the append-only ledger
// entities it produces. Balance mutation lives here so that the overdraft and
// non-negative floors can never be bypassed by a service.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAmountMustBePositive is returned when a movement amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a withdrawal would push the
	// balance below the account's floor.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountInactive is returned when a movement targets a closed or
	// suspended account.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrSameAccountTransfer is returned when source and target of a transfer
	// are the same account.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	// ErrBalanceNotZero is returned when deleting an account that still holds funds.
	ErrBalanceNotZero = errors.New("account balance must be zero")
	// ErrUserRequired is returned when building an account without an owner.
	ErrUserRequired = errors.New("userID is required")
	// ErrCurrencyRequired is returned when building an account without a currency.
	ErrCurrencyRequired = errors.New("currencyID is required")
)

// Type distinguishes the account variants. They share one aggregate; the
// variant decides the balance floor and which extra fields are meaningful.
type Type string

const (
	// TypeChecking allows a negative balance down to -OverdraftLimit.
	TypeChecking Type = "Checking"
	// TypeSavings must keep a non-negative balance and accrues interest.
	TypeSavings Type = "Savings"
)

// InterestType selects how savings interest is computed. Accrual scheduling
// itself is outside this core.
type InterestType string

const (
	InterestSimple   InterestType = "Simple"
	InterestCompound InterestType = "Compound"
)

// Account is the aggregate root for balances. It is mutated only through
// Deposit and Withdraw; Version is the optimistic-concurrency token compared
// by the persistence layer at write time.
type Account struct {
	ID             uuid.UUID
	Number         string
	UserID         uuid.UUID
	CurrencyID     uuid.UUID
	Type           Type
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal
	InterestType   InterestType
	Active         bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Builder provides a fluent API for constructing Account instances, ensuring
// only valid accounts are built.
type Builder struct {
	id             uuid.UUID
	number         string
	userID         uuid.UUID
	currencyID     uuid.UUID
	accountType    Type
	balance        decimal.Decimal
	overdraftLimit decimal.Decimal
	interestRate   decimal.Decimal
	interestType   InterestType
	active         bool
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

// New creates a Builder with sensible defaults: a fresh UUID, a generated
// checking number and an active, zero-balance state.
func New() *Builder {
	return &Builder{
		id:          uuid.New(),
		accountType: TypeChecking,
		active:      true,
		createdAt:   time.Now(),
	}
}

// WithID sets the account id. Defaults to a new UUID.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the account number. When empty, Build generates one from
// the account type's prefix.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithCurrencyID sets the account currency. Mandatory.
func (b *Builder) WithCurrencyID(currencyID uuid.UUID) *Builder {
	b.currencyID = currencyID
	return b
}

// WithType sets the account variant. Defaults to checking.
func (b *Builder) WithType(t Type) *Builder {
	b.accountType = t
	return b
}

// WithBalance sets the starting balance. Intended for hydrating persisted
// accounts and for test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithOverdraftLimit sets the checking overdraft allowance.
func (b *Builder) WithOverdraftLimit(limit decimal.Decimal) *Builder {
	b.overdraftLimit = limit
	return b
}

// WithInterest sets the savings interest parameters.
func (b *Builder) WithInterest(rate decimal.Decimal, t InterestType) *Builder {
	b.interestRate = rate
	b.interestType = t
	return b
}

// WithActive sets the active flag. Defaults to true.
func (b *Builder) WithActive(active bool) *Builder {
	b.active = active
	return b
}

// WithVersion sets the optimistic-concurrency token when hydrating.
func (b *Builder) WithVersion(version int64) *Builder {
	b.version = version
	return b
}

// WithTimestamps sets creation and update times when hydrating.
func (b *Builder) WithTimestamps(createdAt, updatedAt time.Time) *Builder {
	b.createdAt = createdAt
	b.updatedAt = updatedAt
	return b
}

// Build validates the aggregate invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	if b.currencyID == uuid.Nil {
		return nil, ErrCurrencyRequired
	}
	if b.accountType != TypeChecking && b.accountType != TypeSavings {
		return nil, errors.New("unknown account type")
	}
	if b.overdraftLimit.IsNegative() {
		return nil, errors.New("overdraft limit cannot be negative")
	}
	number := b.number
	if number == "" {
		var err error
		number, err = NewNumber(NumberPrefix(b.accountType))
		if err != nil {
			return nil, err
		}
	}
	a := &Account{
		ID:             b.id,
		Number:         number,
		UserID:         b.userID,
		CurrencyID:     b.currencyID,
		Type:           b.accountType,
		Balance:        b.balance,
		OverdraftLimit: b.overdraftLimit,
		InterestRate:   b.interestRate,
		InterestType:   b.interestType,
		Active:         b.active,
		Version:        b.version,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.updatedAt,
	}
	if a.Balance.LessThan(a.floor()) {
		return nil, ErrInsufficientFunds
	}
	return a, nil
}

// floor is the lowest balance the account may reach: -overdraftLimit for
// checking, zero for savings.
func (a *Account) floor() decimal.Decimal {
	if a.Type == TypeChecking {
		return a.OverdraftLimit.Neg()
	}
	return decimal.Zero
}

// Deposit increases the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw decreases the balance by amount, refusing to cross the floor.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if a.Balance.Sub(amount).LessThan(a.floor()) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// CanDelete reports whether the account may be removed. An account is never
// deleted while it still holds or owes funds.
func (a *Account) CanDelete() error {
	if !a.Balance.IsZero() {
		return ErrBalanceNotZero
	}
	return nil
}
