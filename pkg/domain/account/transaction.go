package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionShape is returned when a ledger entry violates the leg
	// invariants (one Source leg for deposit/withdraw, exactly one Source and
	// one Target leg for a transfer).
	ErrTransactionShape = errors.New("invalid transaction leg shape")
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "Deposit"
	TransactionWithdraw TransactionType = "Withdraw"
	TransactionTransfer TransactionType = "Transfer"
)

// LegRole identifies which side of a movement a leg records.
type LegRole string

const (
	LegSource LegRole = "Source"
	LegTarget LegRole = "Target"
)

// Leg is one side of a recorded Transaction. Amount is always positive and
// expressed in the leg account's currency; CurrencyCode snapshots that
// currency at the time of the transaction. Fee is charged on Source legs only.
type Leg struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	Role          LegRole
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	CurrencyCode  string
}

// Transaction is an immutable, append-only ledger entry. It owns one leg for
// deposits and withdrawals and two legs for transfers; it is constructed and
// persisted as a single unit together with the balance mutation it records.
type Transaction struct {
	ID        uuid.UUID
	Type      TransactionType
	CreatedAt time.Time
	Legs      []Leg
}

// SourceLeg returns the Source leg, or nil if absent.
func (t *Transaction) SourceLeg() *Leg {
	return t.leg(LegSource)
}

// TargetLeg returns the Target leg, or nil if absent.
func (t *Transaction) TargetLeg() *Leg {
	return t.leg(LegTarget)
}

func (t *Transaction) leg(role LegRole) *Leg {
	for i := range t.Legs {
		if t.Legs[i].Role == role {
			return &t.Legs[i]
		}
	}
	return nil
}

func newLeg(txID, accountID uuid.UUID, role LegRole, amount, fee decimal.Decimal, currencyCode string) (Leg, error) {
	if !amount.IsPositive() {
		return Leg{}, ErrAmountMustBePositive
	}
	if fee.IsNegative() {
		return Leg{}, ErrTransactionShape
	}
	return Leg{
		ID:            uuid.New(),
		TransactionID: txID,
		AccountID:     accountID,
		Role:          role,
		Amount:        amount,
		Fee:           fee,
		CurrencyCode:  currencyCode,
	}, nil
}

// NewDeposit builds the ledger entry for a deposit: one fee-free Source leg.
func NewDeposit(accountID uuid.UUID, amount decimal.Decimal, currencyCode string) (*Transaction, error) {
	return newSingleLeg(TransactionDeposit, accountID, amount, currencyCode)
}

// NewWithdraw builds the ledger entry for a withdrawal: one fee-free Source leg.
func NewWithdraw(accountID uuid.UUID, amount decimal.Decimal, currencyCode string) (*Transaction, error) {
	return newSingleLeg(TransactionWithdraw, accountID, amount, currencyCode)
}

func newSingleLeg(t TransactionType, accountID uuid.UUID, amount decimal.Decimal, currencyCode string) (*Transaction, error) {
	tx := &Transaction{ID: uuid.New(), Type: t, CreatedAt: time.Now()}
	leg, err := newLeg(tx.ID, accountID, LegSource, amount, decimal.Zero, currencyCode)
	if err != nil {
		return nil, err
	}
	tx.Legs = []Leg{leg}
	return tx, nil
}

// NewTransfer builds the ledger entry for a transfer: a Source leg carrying
// the pre-conversion amount plus the fee in the source currency, and a Target
// leg carrying the converted amount in the target currency.
func NewTransfer(
	sourceAccountID uuid.UUID, amount, fee decimal.Decimal, sourceCurrency string,
	targetAccountID uuid.UUID, converted decimal.Decimal, targetCurrency string,
) (*Transaction, error) {
	if sourceAccountID == targetAccountID {
		return nil, ErrSameAccountTransfer
	}
	tx := &Transaction{ID: uuid.New(), Type: TransactionTransfer, CreatedAt: time.Now()}
	source, err := newLeg(tx.ID, sourceAccountID, LegSource, amount, fee, sourceCurrency)
	if err != nil {
		return nil, err
	}
	target, err := newLeg(tx.ID, targetAccountID, LegTarget, converted, decimal.Zero, targetCurrency)
	if err != nil {
		return nil, err
	}
	tx.Legs = []Leg{source, target}
	return tx, nil
}

// Validate checks the leg-shape invariant for a hydrated transaction.
func (t *Transaction) Validate() error {
	var sources, targets int
	for _, leg := range t.Legs {
		switch leg.Role {
		case LegSource:
			sources++
		case LegTarget:
			targets++
		default:
			return ErrTransactionShape
		}
		if !leg.Amount.IsPositive() {
			return ErrTransactionShape
		}
		if leg.Role == LegTarget && !leg.Fee.IsZero() {
			return ErrTransactionShape
		}
	}
	switch t.Type {
	case TransactionDeposit, TransactionWithdraw:
		if sources != 1 || targets != 0 {
			return ErrTransactionShape
		}
	case TransactionTransfer:
		if sources != 1 || targets != 1 {
			return ErrTransactionShape
		}
	default:
		return ErrTransactionShape
	}
	return nil
}
