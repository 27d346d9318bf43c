package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository bound to the given session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m AccountModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapAccountModel(&m)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	var m AccountModel
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapAccountModel(&m)
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := mapAccountDomain(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err)
	}
	return nil
}

// Update persists the account with a compare-and-swap on the version token.
// Zero rows affected means another writer committed first; the caller must
// re-read and retry.
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).Model(&AccountModel{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"balance": a.Balance,
			"active":  a.Active,
			"version": a.Version + 1,
		})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	a.Version++
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&AccountModel{}, "id = ?", id).Error; err != nil {
		return mapGormError(err)
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context, f repository.AccountFilter, p repository.Page) ([]*account.Account, int64, error) {
	q := r.db.WithContext(ctx).Model(&AccountModel{})
	if f.OwnerID != nil {
		q = q.Where("accounts.user_id = ?", *f.OwnerID)
	}
	if f.BankID != nil || f.OwnerRole != nil {
		q = q.Joins("JOIN users ON users.id = accounts.user_id")
		if f.BankID != nil {
			q = q.Where("users.bank_id = ?", *f.BankID)
		}
		if f.OwnerRole != nil {
			q = q.Where("users.role = ?", string(*f.OwnerRole))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, mapGormError(err)
	}

	var rows []AccountModel
	if err := q.Order("accounts.created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, mapGormError(err)
	}
	result := make([]*account.Account, 0, len(rows))
	for i := range rows {
		a, err := mapAccountModel(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, a)
	}
	return result, total, nil
}

func mapAccountModel(m *AccountModel) (*account.Account, error) {
	return account.New().
		WithID(m.ID).
		WithNumber(m.Number).
		WithUserID(m.UserID).
		WithCurrencyID(m.CurrencyID).
		WithType(account.Type(m.Type)).
		WithBalance(m.Balance).
		WithOverdraftLimit(m.OverdraftLimit).
		WithInterest(m.InterestRate, account.InterestType(m.InterestType)).
		WithActive(m.Active).
		WithVersion(m.Version).
		WithTimestamps(m.CreatedAt, m.UpdatedAt).
		Build()
}

func mapAccountDomain(a *account.Account) AccountModel {
	return AccountModel{
		ID:             a.ID,
		Number:         a.Number,
		UserID:         a.UserID,
		CurrencyID:     a.CurrencyID,
		Type:           string(a.Type),
		Balance:        a.Balance,
		OverdraftLimit: a.OverdraftLimit,
		InterestRate:   a.InterestRate,
		InterestType:   string(a.InterestType),
		Active:         a.Active,
		Version:        a.Version,
	}
}
