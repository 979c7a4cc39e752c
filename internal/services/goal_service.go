package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/cache"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

const (
	// SoberChallengeDays is the default length of a sober challenge.
	SoberChallengeDays = 7
	// MaxWeeklyLimit is the largest meaningful drinking-day limit of a week.
	MaxWeeklyLimit = 7
)

// CreateGoalInput is a new goal for the signed-in user. StartDate defaults to
// today, a zero sober-challenge target to SoberChallengeDays.
type CreateGoalInput struct {
	Type        domain.GoalType `json:"type"`
	TargetValue int             `json:"targetValue"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     *string         `json:"endDate,omitempty"`
}

type GoalService struct {
	goals domain.GoalRepository
	logs  domain.DrinkLogRepository
	cache *cache.QueryCache
	clock clock.Clock
}

func NewGoalService(goals domain.GoalRepository, logs domain.DrinkLogRepository, queryCache *cache.QueryCache, c clock.Clock) *GoalService {
	if c == nil {
		c = &clock.DefaultClock{}
	}
	return &GoalService{goals: goals, logs: logs, cache: queryCache, clock: c}
}

// Create starts a goal. Any active goal of the same type is deactivated in
// the same transaction.
func (s *GoalService) Create(ctx context.Context, in CreateGoalInput) (*domain.Goal, error) {
	userID, err := auth.UserID(ctx, "createGoal")
	if err != nil {
		return nil, err
	}

	if in.Type == domain.GoalSoberChallenge && in.TargetValue == 0 {
		in.TargetValue = SoberChallengeDays
	}
	if in.StartDate == "" {
		in.StartDate = utils.FormatDate(s.clock.Now())
	}
	if err := validateGoal(in.Type, in.TargetValue); err != nil {
		return nil, err
	}
	if err := validateGoalDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	goal, err := s.goals.Create(ctx, domain.CreateGoalParams{
		UserID:      userID,
		Type:        in.Type,
		TargetValue: in.TargetValue,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		return nil, storeError(err, "goal", "createGoal")
	}

	logger.Info("Goal created", "user_id", userID, "type", goal.Type, "target", goal.TargetValue)
	s.cache.Invalidate(ctx, userID, cache.ScopeGoals)
	return goal, nil
}

// Active returns the user's active goals, newest first.
func (s *GoalService) Active(ctx context.Context) ([]domain.Goal, error) {
	userID, err := auth.UserID(ctx, "getActiveGoals")
	if err != nil {
		return nil, err
	}

	goals, err := cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeGoals, "active"),
		func(ctx context.Context) ([]domain.Goal, error) {
			return s.goals.ListActive(ctx, userID)
		})
	if err != nil {
		return nil, storeError(err, "goal", "getActiveGoals")
	}
	return goals, nil
}

// ByType returns the active goal of goalType, or nil when there is none.
func (s *GoalService) ByType(ctx context.Context, goalType domain.GoalType) (*domain.Goal, error) {
	userID, err := auth.UserID(ctx, "getGoalByType")
	if err != nil {
		return nil, err
	}
	if !goalType.Valid() {
		return nil, apperrors.NewValidationError("unknown goal type").WithContext("type", goalType)
	}

	goal, err := cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeGoals, "type", string(goalType)),
		func(ctx context.Context) (*domain.Goal, error) {
			return s.goals.GetActiveByType(ctx, userID, goalType)
		})
	if err != nil {
		return nil, storeError(err, "goal", "getGoalByType")
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, id string, update domain.GoalUpdate) (*domain.Goal, error) {
	userID, err := auth.UserID(ctx, "updateGoal")
	if err != nil {
		return nil, err
	}
	if update.TargetValue != nil && *update.TargetValue <= 0 {
		return nil, apperrors.NewValidationError("target value must be positive").WithContext("field", "targetValue")
	}
	if update.EndDate != nil {
		if _, err := utils.ParseDate(*update.EndDate); err != nil {
			return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "endDate")
		}
	}

	goal, err := s.goals.Update(ctx, userID, id, update)
	if err != nil {
		return nil, storeError(err, "goal", "updateGoal")
	}
	s.cache.Invalidate(ctx, userID, cache.ScopeGoals)
	return goal, nil
}

func (s *GoalService) Deactivate(ctx context.Context, id string) error {
	userID, err := auth.UserID(ctx, "deactivateGoal")
	if err != nil {
		return err
	}
	if err := s.goals.Deactivate(ctx, userID, id); err != nil {
		return storeError(err, "goal", "deactivateGoal")
	}
	s.cache.Invalidate(ctx, userID, cache.ScopeGoals)
	return nil
}

// Progress evaluates every active goal as of today.
func (s *GoalService) Progress(ctx context.Context) ([]stats.GoalProgress, error) {
	userID, err := auth.UserID(ctx, "getGoalProgress")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := utils.FormatDate(now)

	return cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeGoals, "progress", today),
		func(ctx context.Context) ([]stats.GoalProgress, error) {
			goals, err := s.goals.ListActive(ctx, userID)
			if err != nil {
				return nil, storeError(err, "goal", "getGoalProgress")
			}

			progress := make([]stats.GoalProgress, 0, len(goals))
			for _, goal := range goals {
				p, err := s.progress(ctx, goal, now)
				if err != nil {
					return nil, err
				}
				progress = append(progress, p)
			}
			return progress, nil
		})
}

func (s *GoalService) progress(ctx context.Context, goal domain.Goal, now time.Time) (stats.GoalProgress, error) {
	today := utils.FormatDate(now)

	switch goal.Type {
	case domain.GoalWeeklyLimit:
		start, end := utils.WeekRange(now)
		logs, err := s.logs.ListByDateRange(ctx, goal.UserID, start, end)
		if err != nil {
			return stats.GoalProgress{}, storeError(err, "drink log", "getGoalProgress")
		}
		return stats.WeeklyLimitProgress(goal, stats.Summarize(logs, start, end)), nil

	case domain.GoalSoberChallenge:
		logs, err := s.logs.ListByDateRange(ctx, goal.UserID, goal.StartDate, today)
		if err != nil {
			return stats.GoalProgress{}, storeError(err, "drink log", "getGoalProgress")
		}
		p, err := stats.SoberChallengeProgress(goal, logs, today)
		if err != nil {
			return stats.GoalProgress{}, apperrors.NewInternalError(err)
		}
		return p, nil

	default:
		return stats.GoalProgress{}, apperrors.NewInternalError(fmt.Errorf("unknown goal type %q", goal.Type))
	}
}

func validateGoal(goalType domain.GoalType, target int) error {
	switch goalType {
	case domain.GoalWeeklyLimit:
		if target < 1 || target > MaxWeeklyLimit {
			return apperrors.NewValidationError(fmt.Sprintf("weekly limit must be between 1 and %d days", MaxWeeklyLimit)).
				WithContext("field", "targetValue")
		}
	case domain.GoalSoberChallenge:
		if target < 1 {
			return apperrors.NewValidationError("sober challenge must last at least one day").
				WithContext("field", "targetValue")
		}
	default:
		return apperrors.NewValidationError("unknown goal type").WithContext("type", goalType)
	}
	return nil
}

func validateGoalDates(start string, end *string) error {
	if _, err := utils.ParseDate(start); err != nil {
		return apperrors.NewValidationError(err.Error()).WithContext("field", "startDate")
	}
	if end == nil {
		return nil
	}
	if _, err := utils.ParseDate(*end); err != nil {
		return apperrors.NewValidationError(err.Error()).WithContext("field", "endDate")
	}
	if *end < start {
		return apperrors.NewValidationError("end date is before start date").WithContext("field", "endDate")
	}
	return nil
}
