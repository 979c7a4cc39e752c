package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/drink-helper/internal/bot/menus"
	"github.com/vladimiradmaev/drink-helper/internal/bot/state"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	screens
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		screens:      screens{api: api, deps: deps},
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, session Session) error {
	logger.Info("Handling command", "command", message.Command(), "telegram_id", session.TelegramID)

	switch message.Command() {
	case "start":
		resetSession(h.stateManager, session.TelegramID)
		return menus.SendMainMenu(h.api, session.ChatID)
	case "help":
		return menus.SendText(h.api, session.ChatID, menus.HelpText, nil)
	case "today":
		return h.today(ctx, session.ChatID)
	case "stats":
		return h.weeklyStats(ctx, session.ChatID)
	default:
		return menus.SendText(h.api, session.ChatID, "Unknown command. Use /help to see the available commands.", nil)
	}
}

// resetSession drops any pending input and the AI chat.
func resetSession(stateManager state.StateManager, telegramID int64) {
	stateManager.SetUserState(telegramID, state.None)
	stateManager.ClearTempData(telegramID)
	stateManager.ClearChatHistory(telegramID)
}
