// Package repository implements the pkg/repository contracts on GORM with
// Postgres. Account updates are guarded by a compare-and-swap on the version
// column; a stale version surfaces as domain.ErrConflict.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the persisted shape of a bank-scoped user.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BankID    uuid.UUID `gorm:"type:uuid;index"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex"`
	Role      string    `gorm:"type:varchar(32);not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string { return "users" }

// AccountModel is the persisted shape of an account. Version is the
// optimistic-concurrency token.
type AccountModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number         string          `gorm:"type:varchar(16);uniqueIndex;not null"`
	UserID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	CurrencyID     uuid.UUID       `gorm:"type:uuid;not null"`
	Type           string          `gorm:"type:varchar(16);not null"`
	Balance        decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	OverdraftLimit decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	InterestRate   decimal.Decimal `gorm:"type:numeric(10,6);not null;default:0"`
	InterestType   string          `gorm:"type:varchar(16)"`
	Active         bool            `gorm:"not null;default:true"`
	Version        int64           `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for AccountModel.
func (AccountModel) TableName() string { return "accounts" }

// CurrencyModel is the persisted shape of a currency. Rate is relative to
// the single base currency.
type CurrencyModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code      string          `gorm:"type:varchar(3);uniqueIndex;not null"`
	Rate      decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	IsBase    bool            `gorm:"not null;default:false"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for CurrencyModel.
func (CurrencyModel) TableName() string { return "currencies" }

// TransactionModel is the persisted shape of a ledger entry. Legs are saved
// in the same create so the entry is never observable half-written.
type TransactionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type      string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	Legs      []LegModel `gorm:"foreignKey:TransactionID"`
}

// TableName specifies the table name for TransactionModel.
func (TransactionModel) TableName() string { return "transactions" }

// LegModel is the persisted shape of one side of a ledger entry.
type LegModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	AccountID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Role          string          `gorm:"type:varchar(8);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Fee           decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	CurrencyCode  string          `gorm:"type:varchar(3);not null"`
}

// TableName specifies the table name for LegModel.
func (LegModel) TableName() string { return "account_transactions" }
