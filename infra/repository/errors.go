package repository

import (
	"errors"

	"github.com/amirasaad/banking/pkg/domain"
	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors so that database
// concerns stay inside the infrastructure layer. It traverses the error
// chain because GORM wraps driver errors.
func mapGormError(err error) error {
	if err == nil {
		return nil
	}
	current := err
	for current != nil {
		switch {
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrConflict
		}
		current = errors.Unwrap(current)
	}
	return err
}
