package services

import (
	"errors"

	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
)

// storeError turns a repository error into an AppError. A missing row maps to
// NOT_FOUND for entity, everything else to DB_ERROR.
func storeError(err error, entity, operation string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperrors.NewNotFoundError(entity).WithContext("operation", operation)
	}
	return apperrors.NewDatabaseError(err).WithContext("operation", operation)
}
