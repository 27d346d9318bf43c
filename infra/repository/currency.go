package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type currencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a read-only currency repository bound to the
// given session.
func NewCurrencyRepository(db *gorm.DB) repository.CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) Get(ctx context.Context, id uuid.UUID) (*currency.Currency, error) {
	var m CurrencyModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapCurrencyModel(&m), nil
}

func (r *currencyRepository) GetByCode(ctx context.Context, code string) (*currency.Currency, error) {
	var m CurrencyModel
	if err := r.db.WithContext(ctx).First(&m, "code = ?", currency.NormalizeCode(code)).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapCurrencyModel(&m), nil
}

func mapCurrencyModel(m *CurrencyModel) *currency.Currency {
	return &currency.Currency{
		ID:        m.ID,
		Code:      m.Code,
		Rate:      m.Rate,
		IsBase:    m.IsBase,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
