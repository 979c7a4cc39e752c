package menus

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/drink-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
)

type recordingSender struct {
	failures int
	sent     []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	r.sent = append(r.sent, msg)
	if r.failures > 0 {
		r.failures--
		return tgbotapi.Message{}, errors.New("Bad Request: can't parse entities")
	}
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func ptr[T any](v T) *T { return &v }

func drinkLog(date string, dt domain.DrinkType, amount float64) domain.DrinkLog {
	return domain.DrinkLog{Date: date, DrinkType: dt, Amount: amount, VolumeMl: domain.VolumeMl(dt, amount)}
}

func TestSendMainMenu(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, SendMainMenu(sender, 42))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Equal(t, keyboards.MainMenu(), msg.ReplyMarkup)
}

func TestSendTextFallsBackToPlainText(t *testing.T) {
	sender := &recordingSender{failures: 1}
	require.NoError(t, SendText(sender, 1, "under_score", nil))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "", sender.sent[1].ParseMode)
	assert.Nil(t, sender.sent[1].ReplyMarkup)
}

func TestSendTextReportsPersistentFailure(t *testing.T) {
	sender := &recordingSender{failures: 2}
	assert.Error(t, SendText(sender, 1, "text", nil))
}

func TestFormatLogged(t *testing.T) {
	log := drinkLog("2026-10-16", domain.DrinkSoju, 2)
	assert.Equal(t, "✅ Logged 🍶 Soju x1\n\nToday's Soju total: 720ml (~98g alcohol)", FormatLogged(&log, 1))
}

func TestFormatDrinkLogs(t *testing.T) {
	assert.Contains(t, FormatDrinkLogs("2026-10-16", nil), "Nothing logged")

	logs := []domain.DrinkLog{
		drinkLog("2026-10-16", domain.DrinkBeer, 1.5),
		drinkLog("2026-10-16", domain.DrinkWhiskey, 2),
	}
	logs[1].Memo = ptr("with_friends")

	got := FormatDrinkLogs("2026-10-16", logs)
	assert.Contains(t, got, "🍺 Beer x1.5 (750ml)")
	assert.Contains(t, got, "🥃 Whiskey x2 (60ml) - with\\_friends")
	assert.True(t, strings.HasSuffix(got, "Total: 810ml, ~49g alcohol"))
}

func TestFormatWeeklyStats(t *testing.T) {
	summary := stats.Summarize([]domain.DrinkLog{drinkLog("2026-10-13", domain.DrinkSoju, 1)}, "2026-10-11", "2026-10-16")
	got := FormatWeeklyStats(&services.WeeklyStats{
		Summary:   summary,
		Bars:      stats.Bars(summary.DailyMl),
		SoberDays: summary.SoberDays(),
	})

	assert.Contains(t, got, "(2026-10-11 - 2026-10-16)")
	assert.Contains(t, got, "Drinking days: 1, sober days: 6")
	assert.Contains(t, got, "Main drink: Soju")
	assert.Contains(t, got, "`Tue ██████████` 360ml")
	assert.Contains(t, got, "`Sun ·` 0ml")
}

func TestFormatGoals(t *testing.T) {
	assert.Contains(t, FormatGoals(nil), "No active goals")

	got := FormatGoals([]stats.GoalProgress{
		{
			Goal:      domain.Goal{Type: domain.GoalWeeklyLimit, TargetValue: 2},
			DrinkDays: 3,
			Exceeded:  true,
		},
		{
			Goal:        domain.Goal{Type: domain.GoalSoberChallenge, TargetValue: 7, StartDate: "2026-10-14"},
			ElapsedDays: 3,
			SoberDays:   3,
			Remaining:   4,
		},
	})
	assert.Contains(t, got, "Weekly limit: 3 / 2 drinking days")
	assert.Contains(t, got, "Limit exceeded")
	assert.Contains(t, got, "Sober challenge since 2026-10-14: day 3 of 7")
	assert.Contains(t, got, "4 day(s) to go")
}

func TestFormatProfile(t *testing.T) {
	assert.Contains(t, FormatProfile(nil), "No profile yet")

	got := FormatProfile(&domain.User{WeightKg: ptr(70.0), HeightCm: ptr(175.0)})
	assert.Contains(t, got, "Weight: 70kg")
	assert.Contains(t, got, "Height: 175cm")
	assert.Contains(t, got, "BMI: 22.9")

	partial := FormatProfile(&domain.User{WeightKg: ptr(62.5)})
	assert.Contains(t, partial, "Height: not set")
	assert.NotContains(t, partial, "BMI")
}

func TestChartBar(t *testing.T) {
	assert.Equal(t, "·", chartBar(stats.Bar{}))
	assert.Equal(t, "█", chartBar(stats.Bar{Ml: 5, HeightPercent: stats.MinBarPercent}))
	assert.Equal(t, "█████", chartBar(stats.Bar{Ml: 500, HeightPercent: 50}))
}
