package keyboards

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

// Callback actions. Parameterized actions carry their arguments after a colon,
// e.g. "amount:soju:1.5".
const (
	ActionMainMenu    = "main_menu"
	ActionLogDrink    = "log_drink"
	ActionDrinkType   = "drink"
	ActionAmount      = "amount"
	ActionToday       = "today"
	ActionWeeklyStats = "weekly_stats"
	ActionGoals       = "goals"
	ActionWeeklyLimit = "weekly_limit"
	ActionSetLimit    = "limit"
	ActionSoberStart  = "sober_start"
	ActionDeactivate  = "deactivate"
	ActionProfile     = "profile"
	ActionSetWeight   = "set_weight"
	ActionSetHeight   = "set_height"
	ActionAskAI       = "ask_ai"
	ActionEndChat     = "end_chat"
	ActionHelp        = "help"
)

const callbackArgSeparator = ":"

// Amounts offered on the amount keyboard.
var Amounts = []float64{0.5, 1, 1.5, 2, 2.5, 3, 4, 5}

// Callback builds callback data from an action and its arguments.
func Callback(action string, args ...string) string {
	return strings.Join(append([]string{action}, args...), callbackArgSeparator)
}

// ParseCallback splits callback data into its action and arguments.
func ParseCallback(data string) (action string, args []string) {
	parts := strings.Split(data, callbackArgSeparator)
	return parts[0], parts[1:]
}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍺 Log a drink", ActionLogDrink),
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", ActionToday),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 This week", ActionWeeklyStats),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Goals", ActionGoals),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Profile", ActionProfile),
			tgbotapi.NewInlineKeyboardButtonData("💬 Ask the AI", ActionAskAI),
		),
	)
}

// BackToMenu is a single "main menu" button.
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow())
}

// DrinkTypes lists every drink type, two per row.
func DrinkTypes() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range domain.AllDrinkTypes {
		info, _ := t.Info()
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(info.Icon+" "+info.Label, Callback(ActionDrinkType, string(t))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// AmountsFor offers the preset amounts of one drink type, four per row.
func AmountsFor(t domain.DrinkType) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, amount := range Amounts {
		value := strconv.FormatFloat(amount, 'f', -1, 64)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("x"+value, Callback(ActionAmount, string(t), value)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", ActionLogDrink),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// GoalsMenu offers goal actions plus one deactivate button per active goal.
func GoalsMenu(active []domain.Goal) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📆 Weekly limit", ActionWeeklyLimit),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Sober challenge", ActionSoberStart),
		),
	}
	for _, g := range active {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Stop "+GoalLabel(g.Type), Callback(ActionDeactivate, g.ID)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// WeeklyLimits offers limits of 1 to MaxWeeklyLimit drinking days.
func WeeklyLimits() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for days := 1; days <= services.MaxWeeklyLimit; days++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(days), Callback(ActionSetLimit, strconv.Itoa(days))))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("◀️ Back", ActionGoals)),
	)
}

// ProfileMenu creates the profile keyboard
func ProfileMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Weight", ActionSetWeight),
			tgbotapi.NewInlineKeyboardButtonData("📏 Height", ActionSetHeight),
		),
		backRow(),
	)
}

// Chat is shown under every AI answer.
func Chat() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ End chat", ActionEndChat),
		),
	)
}

// GoalLabel is the display name of a goal type.
func GoalLabel(t domain.GoalType) string {
	switch t {
	case domain.GoalWeeklyLimit:
		return "weekly limit"
	case domain.GoalSoberChallenge:
		return "sober challenge"
	default:
		return string(t)
	}
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
	)
}
