package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	SignIn(ctx context.Context, userID string) (*domain.User, error)
	Current(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}

// DrinkLogServiceInterface defines the contract for drink log operations
type DrinkLogServiceInterface interface {
	Create(ctx context.Context, in services.CreateDrinkLogInput) (*domain.DrinkLog, error)
	ByDate(ctx context.Context, date string) ([]domain.DrinkLog, error)
	ByDateRange(ctx context.Context, start, end string) ([]domain.DrinkLog, error)
	ByMonth(ctx context.Context, year int, month time.Month) ([]domain.DrinkLog, error)
	Update(ctx context.Context, id string, update domain.DrinkLogUpdate) (*domain.DrinkLog, error)
	Delete(ctx context.Context, id string) error
}

// GoalServiceInterface defines the contract for goal operations
type GoalServiceInterface interface {
	Create(ctx context.Context, in services.CreateGoalInput) (*domain.Goal, error)
	Active(ctx context.Context) ([]domain.Goal, error)
	ByType(ctx context.Context, goalType domain.GoalType) (*domain.Goal, error)
	Update(ctx context.Context, id string, update domain.GoalUpdate) (*domain.Goal, error)
	Deactivate(ctx context.Context, id string) error
	Progress(ctx context.Context) ([]stats.GoalProgress, error)
}

// StatsServiceInterface defines the contract for stats operations
type StatsServiceInterface interface {
	Weekly(ctx context.Context) (*services.WeeklyStats, error)
	Monthly(ctx context.Context, year int, month time.Month) (*services.MonthlyStats, error)
}

// ConsultationServiceInterface defines the contract for AI consultation operations
type ConsultationServiceInterface interface {
	Chat(ctx context.Context, in services.ChatInput) (*services.ChatResult, error)
	Create(ctx context.Context, question, response string, adWatched bool) (*domain.Consultation, error)
	List(ctx context.Context, limit int) ([]domain.Consultation, error)
	ByDateRange(ctx context.Context, start, end string) ([]domain.Consultation, error)
	Delete(ctx context.Context, id string) error
}

// Services bundles everything the bot and the HTTP API talk to.
type Services struct {
	Users         UserServiceInterface
	DrinkLogs     DrinkLogServiceInterface
	Goals         GoalServiceInterface
	Stats         StatsServiceInterface
	Consultations ConsultationServiceInterface
}

var (
	_ UserServiceInterface         = (*services.UserService)(nil)
	_ DrinkLogServiceInterface     = (*services.DrinkLogService)(nil)
	_ GoalServiceInterface         = (*services.GoalService)(nil)
	_ StatsServiceInterface        = (*services.StatsService)(nil)
	_ ConsultationServiceInterface = (*services.ConsultationService)(nil)
)
