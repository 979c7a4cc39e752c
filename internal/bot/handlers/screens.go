package handlers

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/drink-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/drink-helper/internal/bot/menus"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

const genericErrorText = "😥 Something went wrong. Please try again in a moment."

// screens renders the read-only views shared by commands and callbacks.
type screens struct {
	api  menus.Sender
	deps Dependencies
}

func (s screens) today(ctx context.Context, chatID int64) error {
	date := utils.FormatDate(s.deps.Clock.Now())
	logs, err := s.deps.DrinkLogService.ByDate(ctx, date)
	if err != nil {
		return s.sendError(chatID, err)
	}
	return menus.SendText(s.api, chatID, menus.FormatDrinkLogs(date, logs), menus.Keyboard(keyboards.BackToMenu()))
}

func (s screens) weeklyStats(ctx context.Context, chatID int64) error {
	weekly, err := s.deps.StatsService.Weekly(ctx)
	if err != nil {
		return s.sendError(chatID, err)
	}
	return menus.SendText(s.api, chatID, menus.FormatWeeklyStats(weekly), menus.Keyboard(keyboards.BackToMenu()))
}

func (s screens) goals(ctx context.Context, chatID int64) error {
	progress, err := s.deps.GoalService.Progress(ctx)
	if err != nil {
		return s.sendError(chatID, err)
	}
	return menus.SendText(s.api, chatID, menus.FormatGoals(progress), menus.Keyboard(keyboards.GoalsMenu(activeGoals(progress))))
}

func (s screens) profile(ctx context.Context, chatID int64) error {
	user, err := s.deps.UserService.Current(ctx)
	if err != nil {
		return s.sendError(chatID, err)
	}
	return menus.SendText(s.api, chatID, menus.FormatProfile(user), menus.Keyboard(keyboards.ProfileMenu()))
}

// sendError shows validation messages as they are and hides everything else
// behind a generic notice.
func (s screens) sendError(chatID int64, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation {
		return menus.SendText(s.api, chatID, "⚠️ "+appErr.Message, menus.Keyboard(keyboards.BackToMenu()))
	}

	logger.Error("Bot operation failed", "chat_id", chatID, "error", err)
	return menus.SendText(s.api, chatID, genericErrorText, menus.Keyboard(keyboards.BackToMenu()))
}

func activeGoals(progress []stats.GoalProgress) []domain.Goal {
	goals := make([]domain.Goal, 0, len(progress))
	for _, p := range progress {
		goals = append(goals, p.Goal)
	}
	return goals
}
