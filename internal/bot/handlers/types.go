package handlers

import (
	"github.com/vladimiradmaev/drink-helper/internal/common/clock"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService         interfaces.UserServiceInterface
	DrinkLogService     interfaces.DrinkLogServiceInterface
	GoalService         interfaces.GoalServiceInterface
	StatsService        interfaces.StatsServiceInterface
	ConsultationService interfaces.ConsultationServiceInterface
	Clock               clock.Clock
}

// Session identifies who sent an update. The context handed to handlers
// already carries User.ID for the services.
type Session struct {
	TelegramID int64
	ChatID     int64
	User       *domain.User
}
