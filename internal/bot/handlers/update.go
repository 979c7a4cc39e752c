package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/bot/menus"
	"github.com/vladimiradmaev/drink-helper/internal/bot/state"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             menus.Sender
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	if deps.Clock == nil {
		deps.Clock = &clock.DefaultClock{}
	}
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Handle signs the sender in and dispatches the update. Senders are signed
// in under their Telegram id in the bot's own namespace.
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var session Session
	switch {
	case update.Message != nil && update.Message.From != nil:
		session.TelegramID = update.Message.From.ID
		session.ChatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		session.TelegramID = update.CallbackQuery.From.ID
		session.ChatID = update.CallbackQuery.Message.Chat.ID
	default:
		return nil
	}

	userID := auth.TelegramUserID(session.TelegramID)
	user, err := h.deps.UserService.SignIn(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to sign in user %s: %w", userID, err)
	}
	session.User = user
	ctx = auth.WithUserID(ctx, user.ID)

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, session)
	}
	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, session)
	}
	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, session)
	}
	return menus.SendText(h.api, session.ChatID, "I can only read text messages. Please use the menu.", nil)
}
