package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/drink-helper/internal/database"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"gorm.io/gorm"
)

// GoalRepository handles goal data operations
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create deactivates the user's active goal of the same type and inserts the
// new goal, atomically.
func (r *GoalRepository) Create(ctx context.Context, params domain.CreateGoalParams) (*domain.Goal, error) {
	row := database.Goal{
		UserID:      params.UserID,
		Type:        string(params.Type),
		TargetValue: params.TargetValue,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		IsActive:    true,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&database.Goal{}).
			Where("user_id = ? AND type = ? AND is_active = ?", params.UserID, string(params.Type), true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	goal := toDomainGoal(&row)
	return &goal, nil
}

// ListActive returns the user's active goals, newest first.
func (r *GoalRepository) ListActive(ctx context.Context, userID string) ([]domain.Goal, error) {
	var rows []database.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0, len(rows))
	for i := range rows {
		goals = append(goals, toDomainGoal(&rows[i]))
	}
	return goals, nil
}

// GetActiveByType returns nil, nil when no goal of that type is active.
func (r *GoalRepository) GetActiveByType(ctx context.Context, userID string, goalType domain.GoalType) (*domain.Goal, error) {
	var row database.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND is_active = ?", userID, string(goalType), true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	goal := toDomainGoal(&row)
	return &goal, nil
}

// Update changes the target and/or end date of a goal owned by userID.
func (r *GoalRepository) Update(ctx context.Context, userID, id string, update domain.GoalUpdate) (*domain.Goal, error) {
	var row database.Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
			return notFound(err)
		}

		fields := map[string]interface{}{}
		if update.TargetValue != nil {
			fields["target_value"] = *update.TargetValue
		}
		if update.EndDate != nil {
			fields["end_date"] = *update.EndDate
		}
		if len(fields) == 0 {
			return nil
		}

		if err := tx.Model(&row).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&row, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	goal := toDomainGoal(&row)
	return &goal, nil
}

// Deactivate ends a goal owned by userID. The row is kept.
func (r *GoalRepository) Deactivate(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Model(&database.Goal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
