package services

import (
	"context"
	"strings"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/cache"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

// CreateDrinkLogInput is a new log for the signed-in user.
type CreateDrinkLogInput struct {
	Date      string           `json:"date"`
	DrinkType domain.DrinkType `json:"drinkType"`
	Amount    float64          `json:"amount"`
	Memo      *string          `json:"memo,omitempty"`
}

type DrinkLogService struct {
	logs  domain.DrinkLogRepository
	cache *cache.QueryCache
}

func NewDrinkLogService(logs domain.DrinkLogRepository, queryCache *cache.QueryCache) *DrinkLogService {
	return &DrinkLogService{logs: logs, cache: queryCache}
}

// Create records a drink. Logging the same drink type twice on one day adds
// to the existing entry instead of creating a second one.
func (s *DrinkLogService) Create(ctx context.Context, in CreateDrinkLogInput) (*domain.DrinkLog, error) {
	userID, err := auth.UserID(ctx, "createDrinkLog")
	if err != nil {
		return nil, err
	}
	if _, err := utils.ParseDate(in.Date); err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "date")
	}
	if !in.DrinkType.Valid() {
		return nil, apperrors.NewValidationError("unknown drink type").WithContext("drink_type", in.DrinkType)
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "amount")
	}

	var memo *string
	if in.Memo != nil {
		trimmed := strings.TrimSpace(*in.Memo)
		memo = &trimmed
	}

	log, err := s.logs.Accumulate(ctx, domain.CreateDrinkLogParams{
		UserID:    userID,
		Date:      in.Date,
		DrinkType: in.DrinkType,
		Amount:    in.Amount,
		Memo:      memo,
	})
	if err != nil {
		return nil, storeError(err, "drink log", "createDrinkLog")
	}

	logger.Info("Drink logged",
		"user_id", userID, "date", log.Date, "drink_type", log.DrinkType, "amount", log.Amount)
	s.invalidate(ctx, userID)
	return log, nil
}

func (s *DrinkLogService) ByDate(ctx context.Context, date string) ([]domain.DrinkLog, error) {
	userID, err := auth.UserID(ctx, "getDrinkLogsByDate")
	if err != nil {
		return nil, err
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "date")
	}

	logs, err := cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeDrinkLogs, "date", date),
		func(ctx context.Context) ([]domain.DrinkLog, error) {
			return s.logs.ListByDate(ctx, userID, date)
		})
	if err != nil {
		return nil, storeError(err, "drink log", "getDrinkLogsByDate")
	}
	return logs, nil
}

// ByDateRange returns the logs of [start, end], oldest first.
func (s *DrinkLogService) ByDateRange(ctx context.Context, start, end string) ([]domain.DrinkLog, error) {
	userID, err := auth.UserID(ctx, "getDrinkLogsByDateRange")
	if err != nil {
		return nil, err
	}
	return s.byDateRange(ctx, userID, start, end)
}

// ByMonth returns the logs of one calendar month.
func (s *DrinkLogService) ByMonth(ctx context.Context, year int, month time.Month) ([]domain.DrinkLog, error) {
	userID, err := auth.UserID(ctx, "getDrinkLogsByMonth")
	if err != nil {
		return nil, err
	}
	start, end, err := utils.MonthRange(year, month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "month")
	}
	return s.byDateRange(ctx, userID, start, end)
}

func (s *DrinkLogService) byDateRange(ctx context.Context, userID, start, end string) ([]domain.DrinkLog, error) {
	if _, err := utils.ParseDate(start); err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "start")
	}
	if _, err := utils.ParseDate(end); err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "end")
	}
	if end < start {
		return nil, apperrors.NewValidationError("end date is before start date")
	}

	logs, err := cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeDrinkLogs, "range", start, end),
		func(ctx context.Context) ([]domain.DrinkLog, error) {
			return s.logs.ListByDateRange(ctx, userID, start, end)
		})
	if err != nil {
		return nil, storeError(err, "drink log", "getDrinkLogsByDateRange")
	}
	return logs, nil
}

// Update changes the amount and/or memo of one of the user's logs.
func (s *DrinkLogService) Update(ctx context.Context, id string, update domain.DrinkLogUpdate) (*domain.DrinkLog, error) {
	userID, err := auth.UserID(ctx, "updateDrinkLog")
	if err != nil {
		return nil, err
	}
	if update.Amount != nil {
		if err := domain.ValidateAmount(*update.Amount); err != nil {
			return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "amount")
		}
	}

	log, err := s.logs.Update(ctx, userID, id, update)
	if err != nil {
		return nil, storeError(err, "drink log", "updateDrinkLog")
	}
	s.invalidate(ctx, userID)
	return log, nil
}

func (s *DrinkLogService) Delete(ctx context.Context, id string) error {
	userID, err := auth.UserID(ctx, "deleteDrinkLog")
	if err != nil {
		return err
	}
	if err := s.logs.Delete(ctx, userID, id); err != nil {
		return storeError(err, "drink log", "deleteDrinkLog")
	}
	s.invalidate(ctx, userID)
	return nil
}

// invalidate drops every read derived from the user's logs.
func (s *DrinkLogService) invalidate(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, userID, cache.ScopeDrinkLogs, cache.ScopeStats, cache.ScopeGoals)
}
