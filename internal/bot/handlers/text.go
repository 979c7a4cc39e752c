package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/drink-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/drink-helper/internal/bot/menus"
	"github.com/vladimiradmaev/drink-helper/internal/bot/state"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

// TextHandler handles text messages
type TextHandler struct {
	screens
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		screens:      screens{api: api, deps: deps},
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, session Session) error {
	switch h.stateManager.GetUserState(session.TelegramID) {
	case state.WaitingForWeight:
		return h.handleBiometric(ctx, message.Text, session, func(v float64) domain.ProfileUpdate {
			return domain.ProfileUpdate{WeightKg: &v}
		})
	case state.WaitingForHeight:
		return h.handleBiometric(ctx, message.Text, session, func(v float64) domain.ProfileUpdate {
			return domain.ProfileUpdate{HeightCm: &v}
		})
	case state.ChattingWithAI:
		return h.handleChat(ctx, message.Text, session)
	default:
		return menus.SendText(h.api, session.ChatID, "Please use the menu to choose an action.", menus.Keyboard(keyboards.MainMenu()))
	}
}

// handleBiometric stores a weight or height typed by the user. Both "70.5"
// and "70,5" are accepted.
func (h *TextHandler) handleBiometric(ctx context.Context, text string, session Session, update func(float64) domain.ProfileUpdate) error {
	value, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil {
		return menus.SendText(h.api, session.ChatID, "Please enter a number (for example: 70.5)", menus.Keyboard(keyboards.BackToMenu()))
	}

	if _, err := h.deps.UserService.UpdateProfile(ctx, update(value)); err != nil {
		return h.sendError(session.ChatID, err)
	}

	h.stateManager.SetUserState(session.TelegramID, state.None)
	return h.profile(ctx, session.ChatID)
}

// handleChat forwards the message with the stored history to the AI
// counselor and records both sides of the turn.
func (h *TextHandler) handleChat(ctx context.Context, text string, session Session) error {
	if _, err := h.api.Request(tgbotapi.NewChatAction(session.ChatID, tgbotapi.ChatTyping)); err != nil {
		logger.Debug("Failed to send typing action", "error", err)
	}

	result, err := h.deps.ConsultationService.Chat(ctx, services.ChatInput{
		Message: text,
		History: h.stateManager.ChatHistory(session.TelegramID),
	})
	if err != nil {
		return h.sendError(session.ChatID, err)
	}

	h.stateManager.AppendChatTurns(session.TelegramID,
		services.Turn{Role: services.RoleUser, Text: strings.TrimSpace(text)},
		services.Turn{Role: services.RoleModel, Text: result.Response},
	)
	return menus.SendText(h.api, session.ChatID, result.Response, menus.Keyboard(keyboards.Chat()))
}
