package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/drink-helper/internal/database"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates the user on first sign-in and touches updated_at afterwards.
// Profile fields are never overwritten.
func (r *UserRepository) Upsert(ctx context.Context, id string) (*domain.User, error) {
	db := r.db.WithContext(ctx)
	row := database.User{ID: id}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": db.NowFunc()}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var stored database.User
	if err := db.First(&stored, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainUser(&stored), nil
}

// GetByID returns nil, nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row database.User
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainUser(&row), nil
}

// UpdateProfile updates the non-nil fields of update.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	db := r.db.WithContext(ctx)

	fields := map[string]interface{}{"updated_at": db.NowFunc()}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.WeightKg != nil {
		fields["weight"] = *update.WeightKg
	}
	if update.HeightCm != nil {
		fields["height"] = *update.HeightCm
	}

	res := db.Model(&database.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var row database.User
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainUser(&row), nil
}
