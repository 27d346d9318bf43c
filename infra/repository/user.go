package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository bound to the given session.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapUserModel(&m), nil
}

func (r *userRepository) List(ctx context.Context, f repository.UserFilter, p repository.Page) ([]*user.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&UserModel{})
	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.BankID != nil {
		q = q.Where("bank_id = ?", *f.BankID)
	}
	if f.Role != nil {
		q = q.Where("role = ?", string(*f.Role))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, mapGormError(err)
	}

	var rows []UserModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, mapGormError(err)
	}
	result := make([]*user.User, 0, len(rows))
	for i := range rows {
		result = append(result, mapUserModel(&rows[i]))
	}
	return result, total, nil
}

func mapUserModel(m *UserModel) *user.User {
	return &user.User{
		ID:        m.ID,
		BankID:    m.BankID,
		Email:     m.Email,
		Role:      user.Role(m.Role),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
