package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/drink-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
)

// Sender is the part of *tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const mainMenuText = `🍻 *Drink Helper* keeps track of your drinking habits

• Log what you drank in two taps
• See your week at a glance
• Set a weekly limit or take a sober challenge
• Ask the AI counselor for advice based on your data

⚠️ This is not medical advice. Talk to a doctor about health concerns.

Choose an action:`

// HelpText answers /help.
const HelpText = `Available commands:
/start - Show the main menu
/today - Show today's drinks
/stats - Show this week's statistics
/help - Show this message

Log a drink from the main menu: pick the drink, then the amount. Logging the
same drink twice on one day adds up into one entry.`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	return SendText(api, chatID, mainMenuText, Keyboard(keyboards.MainMenu()))
}

// SendText sends Markdown text with an optional inline keyboard. If Telegram
// rejects the Markdown the text is resent without formatting.
func SendText(api Sender, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, strings.ToValidUTF8(text, ""))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}

	if _, err := api.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, err := api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// Keyboard returns a pointer to k for SendText.
func Keyboard(k tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &k
}

// FormatLogged confirms a saved log. log holds the merged total of the day.
func FormatLogged(log *domain.DrinkLog, added float64) string {
	info, _ := log.DrinkType.Info()
	return fmt.Sprintf("✅ Logged %s %s x%s\n\nToday's %s total: %.0fml (~%.0fg alcohol)",
		info.Icon, info.Label, formatAmount(added),
		info.Label, log.VolumeMl, log.AlcoholGrams())
}

// FormatDrinkLogs lists the logs of one day.
func FormatDrinkLogs(date string, logs []domain.DrinkLog) string {
	if len(logs) == 0 {
		return fmt.Sprintf("📅 *%s*\n\nNothing logged. 🎉", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 *%s*\n", date)
	var totalMl, totalAlcohol float64
	for _, l := range logs {
		info, _ := l.DrinkType.Info()
		fmt.Fprintf(&b, "\n%s %s x%s (%.0fml)", info.Icon, info.Label, formatAmount(l.Amount), l.VolumeMl)
		if l.Memo != nil && *l.Memo != "" {
			fmt.Fprintf(&b, " - %s", escape(*l.Memo))
		}
		totalMl += l.VolumeMl
		totalAlcohol += l.AlcoholGrams()
	}
	fmt.Fprintf(&b, "\n\nTotal: %.0fml, ~%.0fg alcohol", totalMl, totalAlcohol)
	return b.String()
}

// FormatWeeklyStats renders the week summary with a text bar chart.
func FormatWeeklyStats(w *services.WeeklyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *This week* (%s - %s)\n\n", w.Summary.StartDate, w.Summary.EndDate)
	fmt.Fprintf(&b, "Total: %.0fml, ~%.0fg alcohol\n", w.Summary.TotalMl, w.Summary.TotalAlcoholGrams)
	fmt.Fprintf(&b, "Drinking days: %d, sober days: %d\n", w.Summary.DrinkDays, w.SoberDays)
	fmt.Fprintf(&b, "Main drink: %s\n", w.Summary.MainDrinkLabel())

	b.WriteString("\n")
	for _, bar := range w.Bars {
		fmt.Fprintf(&b, "`%s %s` %.0fml\n", bar.Weekday.String()[:3], chartBar(bar), bar.Ml)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatGoals describes the progress of every active goal.
func FormatGoals(progress []stats.GoalProgress) string {
	if len(progress) == 0 {
		return "🎯 *Goals*\n\nNo active goals. Set a weekly limit or start a sober challenge."
	}

	var b strings.Builder
	b.WriteString("🎯 *Goals*\n")
	for _, p := range progress {
		switch p.Goal.Type {
		case domain.GoalWeeklyLimit:
			fmt.Fprintf(&b, "\n📆 Weekly limit: %d / %d drinking days", p.DrinkDays, p.Goal.TargetValue)
			if p.Exceeded {
				b.WriteString("\n   ⚠️ Limit exceeded this week")
			} else {
				fmt.Fprintf(&b, "\n   %d left this week", p.Remaining)
			}
		case domain.GoalSoberChallenge:
			fmt.Fprintf(&b, "\n🚫 Sober challenge since %s: day %d of %d", p.Goal.StartDate, p.ElapsedDays, p.Goal.TargetValue)
			switch {
			case p.Broken:
				fmt.Fprintf(&b, "\n   💔 Broken after %d drinking day(s)", p.DrinkDays)
			case p.Completed:
				b.WriteString("\n   🏆 Completed!")
			default:
				fmt.Fprintf(&b, "\n   %d day(s) to go", p.Remaining)
			}
		}
	}
	return b.String()
}

// FormatProfile shows the stored biometrics.
func FormatProfile(u *domain.User) string {
	var b strings.Builder
	b.WriteString("👤 *Profile*\n")
	if u == nil {
		b.WriteString("\nNo profile yet.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nWeight: %s", optional(u.WeightKg, "kg"))
	fmt.Fprintf(&b, "\nHeight: %s", optional(u.HeightCm, "cm"))
	if u.WeightKg != nil && u.HeightCm != nil {
		fmt.Fprintf(&b, "\nBMI: %.1f", stats.BMI(*u.WeightKg, *u.HeightCm))
	}
	return b.String()
}

// chartBar draws a bar of up to ten blocks from a height percentage.
func chartBar(bar stats.Bar) string {
	if bar.Ml == 0 {
		return "·"
	}
	blocks := int(bar.HeightPercent/10 + 0.5)
	return strings.Repeat("█", max(blocks, 1))
}

func formatAmount(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

func optional(v *float64, unit string) string {
	if v == nil {
		return "not set"
	}
	return formatAmount(*v) + unit
}

// escape backslash-escapes Markdown control characters in user text.
func escape(s string) string {
	return strings.NewReplacer("_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "`", "\\`").Replace(s)
}
