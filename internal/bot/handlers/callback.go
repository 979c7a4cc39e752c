package handlers

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/drink-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/drink-helper/internal/bot/menus"
	"github.com/vladimiradmaev/drink-helper/internal/bot/state"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/services"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

const askAIText = `💬 *AI counselor*

Ask anything about your drinking habits. I can see this week's records and
your profile. Press "End chat" when you are done.`

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	screens
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		screens:      screens{api: api, deps: deps},
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, session Session) error {
	// Answer the callback query first to stop the button spinner
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	chatID := session.ChatID
	action, args := keyboards.ParseCallback(query.Data)

	switch action {
	case keyboards.ActionMainMenu:
		resetSession(h.stateManager, session.TelegramID)
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.ActionLogDrink:
		return menus.SendText(h.api, chatID, "What did you drink?", menus.Keyboard(keyboards.DrinkTypes()))
	case keyboards.ActionDrinkType:
		return h.handleDrinkType(chatID, args)
	case keyboards.ActionAmount:
		return h.handleAmount(ctx, chatID, args)
	case keyboards.ActionToday:
		return h.today(ctx, chatID)
	case keyboards.ActionWeeklyStats:
		return h.weeklyStats(ctx, chatID)
	case keyboards.ActionGoals:
		return h.goals(ctx, chatID)
	case keyboards.ActionWeeklyLimit:
		return menus.SendText(h.api, chatID, "On how many days per week at most do you want to drink?", menus.Keyboard(keyboards.WeeklyLimits()))
	case keyboards.ActionSetLimit:
		return h.handleSetLimit(ctx, chatID, args)
	case keyboards.ActionSoberStart:
		return h.createGoal(ctx, chatID, services.CreateGoalInput{Type: domain.GoalSoberChallenge})
	case keyboards.ActionDeactivate:
		return h.handleDeactivate(ctx, chatID, args)
	case keyboards.ActionProfile:
		return h.profile(ctx, chatID)
	case keyboards.ActionSetWeight:
		h.stateManager.SetUserState(session.TelegramID, state.WaitingForWeight)
		return menus.SendText(h.api, chatID, "Enter your weight in kg (for example: 70.5):", menus.Keyboard(keyboards.BackToMenu()))
	case keyboards.ActionSetHeight:
		h.stateManager.SetUserState(session.TelegramID, state.WaitingForHeight)
		return menus.SendText(h.api, chatID, "Enter your height in cm (for example: 175):", menus.Keyboard(keyboards.BackToMenu()))
	case keyboards.ActionAskAI:
		h.stateManager.ClearChatHistory(session.TelegramID)
		h.stateManager.SetUserState(session.TelegramID, state.ChattingWithAI)
		return menus.SendText(h.api, chatID, askAIText, menus.Keyboard(keyboards.Chat()))
	case keyboards.ActionEndChat:
		resetSession(h.stateManager, session.TelegramID)
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.ActionHelp:
		return menus.SendText(h.api, chatID, menus.HelpText, menus.Keyboard(keyboards.BackToMenu()))
	default:
		logger.Warn("Unknown callback", "data", query.Data)
		return menus.SendMainMenu(h.api, chatID)
	}
}

func (h *CallbackHandler) handleDrinkType(chatID int64, args []string) error {
	if len(args) != 1 {
		return menus.SendMainMenu(h.api, chatID)
	}
	drinkType, err := domain.ParseDrinkType(args[0])
	if err != nil {
		return menus.SendText(h.api, chatID, "Unknown drink. Please pick one from the list.", menus.Keyboard(keyboards.DrinkTypes()))
	}

	info, _ := drinkType.Info()
	text := fmt.Sprintf("How much %s %s? (1 %s = %.0fml)", info.Icon, info.Label, info.Unit, info.MlPerUnit)
	return menus.SendText(h.api, chatID, text, menus.Keyboard(keyboards.AmountsFor(drinkType)))
}

func (h *CallbackHandler) handleAmount(ctx context.Context, chatID int64, args []string) error {
	if len(args) != 2 {
		return menus.SendMainMenu(h.api, chatID)
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return menus.SendMainMenu(h.api, chatID)
	}

	log, err := h.deps.DrinkLogService.Create(ctx, services.CreateDrinkLogInput{
		Date:      utils.FormatDate(h.deps.Clock.Now()),
		DrinkType: domain.DrinkType(args[0]),
		Amount:    amount,
	})
	if err != nil {
		return h.sendError(chatID, err)
	}
	return menus.SendText(h.api, chatID, menus.FormatLogged(log, amount), menus.Keyboard(keyboards.MainMenu()))
}

func (h *CallbackHandler) handleSetLimit(ctx context.Context, chatID int64, args []string) error {
	if len(args) != 1 {
		return h.goals(ctx, chatID)
	}
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return h.goals(ctx, chatID)
	}
	return h.createGoal(ctx, chatID, services.CreateGoalInput{Type: domain.GoalWeeklyLimit, TargetValue: days})
}

func (h *CallbackHandler) createGoal(ctx context.Context, chatID int64, in services.CreateGoalInput) error {
	if _, err := h.deps.GoalService.Create(ctx, in); err != nil {
		return h.sendError(chatID, err)
	}
	return h.goals(ctx, chatID)
}

func (h *CallbackHandler) handleDeactivate(ctx context.Context, chatID int64, args []string) error {
	if len(args) != 1 {
		return h.goals(ctx, chatID)
	}
	if err := h.deps.GoalService.Deactivate(ctx, args[0]); err != nil {
		return h.sendError(chatID, err)
	}
	return h.goals(ctx, chatID)
}
