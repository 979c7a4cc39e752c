package services

import (
	"context"
	"strconv"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/cache"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

// WeeklyStats covers the current week, Sunday through today.
type WeeklyStats struct {
	Summary   stats.Summary `json:"summary"`
	Bars      [7]stats.Bar  `json:"bars"`
	SoberDays int           `json:"soberDays"`
}

// MonthlyStats covers one calendar month.
type MonthlyStats struct {
	Year           int           `json:"year"`
	Month          time.Month    `json:"month"`
	Summary        stats.Summary `json:"summary"`
	MainDrinkLabel string        `json:"mainDrinkLabel"`
	// BusiestWeekday is empty when nothing was logged.
	BusiestWeekday string `json:"busiestWeekday,omitempty"`
}

type StatsService struct {
	logs  domain.DrinkLogRepository
	cache *cache.QueryCache
	clock clock.Clock
}

func NewStatsService(logs domain.DrinkLogRepository, queryCache *cache.QueryCache, c clock.Clock) *StatsService {
	if c == nil {
		c = &clock.DefaultClock{}
	}
	return &StatsService{logs: logs, cache: queryCache, clock: c}
}

func (s *StatsService) Weekly(ctx context.Context) (*WeeklyStats, error) {
	userID, err := auth.UserID(ctx, "getWeeklyStats")
	if err != nil {
		return nil, err
	}

	start, end := utils.WeekRange(s.clock.Now())
	return cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeStats, "weekly", start, end),
		func(ctx context.Context) (*WeeklyStats, error) {
			summary, err := s.summarize(ctx, userID, start, end)
			if err != nil {
				return nil, err
			}
			return &WeeklyStats{
				Summary:   summary,
				Bars:      stats.Bars(summary.DailyMl),
				SoberDays: summary.SoberDays(),
			}, nil
		})
}

func (s *StatsService) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyStats, error) {
	userID, err := auth.UserID(ctx, "getMonthlyStats")
	if err != nil {
		return nil, err
	}
	start, end, err := utils.MonthRange(year, month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "month")
	}

	return cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeStats, "monthly", strconv.Itoa(year), strconv.Itoa(int(month))),
		func(ctx context.Context) (*MonthlyStats, error) {
			summary, err := s.summarize(ctx, userID, start, end)
			if err != nil {
				return nil, err
			}
			m := &MonthlyStats{
				Year:           year,
				Month:          month,
				Summary:        summary,
				MainDrinkLabel: summary.MainDrinkLabel(),
			}
			if day, ok := summary.BusiestWeekday(); ok {
				m.BusiestWeekday = day.String()
			}
			return m, nil
		})
}

// weekSummary aggregates the current week without going through the cache,
// keeping the per-entry logs.
func (s *StatsService) weekSummary(ctx context.Context, userID string) (stats.Summary, error) {
	start, end := utils.WeekRange(s.clock.Now())
	return s.summarize(ctx, userID, start, end)
}

func (s *StatsService) summarize(ctx context.Context, userID, start, end string) (stats.Summary, error) {
	logs, err := s.logs.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return stats.Summary{}, storeError(err, "drink log", "summarize")
	}
	return stats.Summarize(logs, start, end), nil
}
