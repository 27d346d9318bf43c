package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger repository bound to the given session.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create persists the transaction and all its legs in one insert, so the
// ledger entry is never observable without its legs.
func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	m := mapTransactionDomain(tx)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err)
	}
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error) {
	var m TransactionModel
	if err := r.db.WithContext(ctx).Preload("Legs").First(&m, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapTransactionModel(&m), nil
}

func (r *transactionRepository) List(ctx context.Context, f repository.TransactionFilter, p repository.Page) ([]*account.Transaction, int64, error) {
	base := r.db.WithContext(ctx).Model(&TransactionModel{}).
		Joins("JOIN account_transactions ON account_transactions.transaction_id = transactions.id").
		Joins("JOIN accounts ON accounts.id = account_transactions.account_id")
	if f.AccountID != nil {
		base = base.Where("accounts.id = ?", *f.AccountID)
	}
	if f.OwnerID != nil {
		base = base.Where("accounts.user_id = ?", *f.OwnerID)
	}
	if f.BankID != nil || f.OwnerRole != nil {
		base = base.Joins("JOIN users ON users.id = accounts.user_id")
		if f.BankID != nil {
			base = base.Where("users.bank_id = ?", *f.BankID)
		}
		if f.OwnerRole != nil {
			base = base.Where("users.role = ?", string(*f.OwnerRole))
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("transactions.id").Count(&total).Error; err != nil {
		return nil, 0, mapGormError(err)
	}

	var ids []uuid.UUID
	err := base.Session(&gorm.Session{}).
		Select("transactions.id").
		Group("transactions.id").
		Order("MAX(transactions.created_at) DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&ids).Error
	if err != nil {
		return nil, 0, mapGormError(err)
	}
	if len(ids) == 0 {
		return []*account.Transaction{}, total, nil
	}

	var rows []TransactionModel
	if err := r.db.WithContext(ctx).Preload("Legs").Where("id IN ?", ids).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, mapGormError(err)
	}
	result := make([]*account.Transaction, 0, len(rows))
	for i := range rows {
		result = append(result, mapTransactionModel(&rows[i]))
	}
	return result, total, nil
}

func mapTransactionDomain(tx *account.Transaction) TransactionModel {
	m := TransactionModel{
		ID:        tx.ID,
		Type:      string(tx.Type),
		CreatedAt: tx.CreatedAt,
		Legs:      make([]LegModel, 0, len(tx.Legs)),
	}
	for _, leg := range tx.Legs {
		m.Legs = append(m.Legs, LegModel{
			ID:            leg.ID,
			TransactionID: leg.TransactionID,
			AccountID:     leg.AccountID,
			Role:          string(leg.Role),
			Amount:        leg.Amount,
			Fee:           leg.Fee,
			CurrencyCode:  leg.CurrencyCode,
		})
	}
	return m
}

func mapTransactionModel(m *TransactionModel) *account.Transaction {
	tx := &account.Transaction{
		ID:        m.ID,
		Type:      account.TransactionType(m.Type),
		CreatedAt: m.CreatedAt,
		Legs:      make([]account.Leg, 0, len(m.Legs)),
	}
	for _, leg := range m.Legs {
		tx.Legs = append(tx.Legs, account.Leg{
			ID:            leg.ID,
			TransactionID: leg.TransactionID,
			AccountID:     leg.AccountID,
			Role:          account.LegRole(leg.Role),
			Amount:        leg.Amount,
			Fee:           leg.Fee,
			CurrencyCode:  leg.CurrencyCode,
		})
	}
	return tx
}
