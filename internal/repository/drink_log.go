package repository

import (
	"context"

	"github.com/vladimiradmaev/drink-helper/internal/database"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DrinkLogRepository handles drink log data operations
type DrinkLogRepository struct {
	db *gorm.DB
}

// NewDrinkLogRepository creates a new drink log repository
func NewDrinkLogRepository(db *gorm.DB) *DrinkLogRepository {
	return &DrinkLogRepository{db: db}
}

// Accumulate inserts a log, or folds it into the existing row for the same
// user, date and drink type in a single statement. A non-empty memo replaces
// the stored one; an empty memo keeps it.
func (r *DrinkLogRepository) Accumulate(ctx context.Context, params domain.CreateDrinkLogParams) (*domain.DrinkLog, error) {
	db := r.db.WithContext(ctx)

	row := database.DrinkLog{
		UserID:    params.UserID,
		Date:      params.Date,
		DrinkType: string(params.DrinkType),
		Amount:    params.Amount,
		VolumeMl:  domain.VolumeMl(params.DrinkType, params.Amount),
		Memo:      params.Memo,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "drink_type"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "amount"}, Value: gorm.Expr("drink_logs.amount + excluded.amount")},
			{Column: clause.Column{Name: "volume_ml"}, Value: gorm.Expr("drink_logs.volume_ml + excluded.volume_ml")},
			{Column: clause.Column{Name: "memo"}, Value: gorm.Expr("COALESCE(NULLIF(excluded.memo, ''), drink_logs.memo)")},
		},
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	// the id in row is only right when no conflict happened
	var stored database.DrinkLog
	err = db.Where("user_id = ? AND date = ? AND drink_type = ?", params.UserID, params.Date, string(params.DrinkType)).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	log := toDomainDrinkLog(&stored)
	return &log, nil
}

// ListByDate returns the logs of one day.
func (r *DrinkLogRepository) ListByDate(ctx context.Context, userID, date string) ([]domain.DrinkLog, error) {
	var rows []database.DrinkLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainDrinkLogs(rows), nil
}

// ListByDateRange returns logs with start <= date <= end, oldest first.
func (r *DrinkLogRepository) ListByDateRange(ctx context.Context, userID, start, end string) ([]domain.DrinkLog, error) {
	var rows []database.DrinkLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainDrinkLogs(rows), nil
}

// Update changes the amount and/or memo of a log owned by userID. A new
// amount recomputes the volume from the log's drink type.
func (r *DrinkLogRepository) Update(ctx context.Context, userID, id string, update domain.DrinkLogUpdate) (*domain.DrinkLog, error) {
	var row database.DrinkLog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
			return notFound(err)
		}

		fields := map[string]interface{}{}
		if update.Amount != nil {
			fields["amount"] = *update.Amount
			fields["volume_ml"] = domain.VolumeMl(domain.DrinkType(row.DrinkType), *update.Amount)
		}
		if update.Memo != nil {
			fields["memo"] = *update.Memo
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

	log := toDomainDrinkLog(&row)
	return &log, nil
}

// Delete removes a log owned by userID.
func (r *DrinkLogRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&database.DrinkLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
