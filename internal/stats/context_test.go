package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestFormatContextWithoutProfile(t *testing.T) {
	logs := []domain.DrinkLog{
		newLog("2026-10-12", domain.DrinkSoju, 2),
		newLog("2026-10-14", domain.DrinkBeer, 1),
	}
	s := Summarize(logs, "2026-10-11", "2026-10-17")

	got := FormatContext(s, nil)

	want := strings.Join([]string{
		"[This week's drinking data]",
		"- Total volume: 1220ml (1.2L)",
		"- Total pure alcohol: ~118g",
		"- Drinking days: 2 / 7",
		"- Main drink: Soju",
		"",
		"[Breakdown by drink]",
		"- Soju: 720ml (2 bottles), ~98g alcohol",
		"- Beer: 500ml (1 bottle), ~20g alcohol",
	}, "\n")
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "[User profile]")
}

func TestFormatContextEmptyWeek(t *testing.T) {
	got := FormatContext(Summarize(nil, "", ""), nil)

	assert.Contains(t, got, "- Total volume: 0ml (0.0L)")
	assert.Contains(t, got, "- Drinking days: 0 / 7")
	assert.Contains(t, got, "- Main drink: None")
	assert.True(t, strings.HasSuffix(got, "- No records"))
}

func TestFormatContextWithBMI(t *testing.T) {
	uc := &UserContext{Name: ptr("Minji"), WeightKg: ptr(70.0), HeightCm: ptr(175.0)}

	got := FormatContext(Summarize(nil, "", ""), uc)

	assert.Contains(t, got, "\n\n[User profile]\n- Name: Minji\n- Weight: 70kg\n- Height: 175cm\n- BMI: 22.9")
}

func TestFormatContextPartialProfile(t *testing.T) {
	got := FormatContext(Summarize(nil, "", ""), &UserContext{WeightKg: ptr(62.5)})

	assert.Contains(t, got, "- Weight: 62.5kg")
	assert.NotContains(t, got, "BMI")
	assert.NotContains(t, got, "Height")
}

func TestFormatContextNameOnlyOmitsProfile(t *testing.T) {
	got := FormatContext(Summarize(nil, "", ""), &UserContext{Name: ptr("Minji")})
	assert.NotContains(t, got, "[User profile]")
}

func TestFormatContextIsDeterministic(t *testing.T) {
	logs := []domain.DrinkLog{
		newLog("2026-10-12", domain.DrinkWhiskey, 3),
		newLog("2026-10-13", domain.DrinkEtc, 1.5),
		newLog("2026-10-15", domain.DrinkMakgeolli, 1),
	}
	s := Summarize(logs, "", "")
	assert.Equal(t, FormatContext(s, nil), FormatContext(s, nil))
	assert.Contains(t, FormatContext(s, nil), "- Other: 225ml (1.5 glasses), ~27g alcohol")
}

func TestBMI(t *testing.T) {
	assert.InDelta(t, 22.857, BMI(70, 175), 0.001)
}

func TestUserContextFrom(t *testing.T) {
	assert.Nil(t, UserContextFrom(nil))

	uc := UserContextFrom(&domain.User{ID: "u", WeightKg: ptr(80.0)})
	assert.Equal(t, 80.0, *uc.WeightKg)
	assert.Nil(t, uc.HeightCm)
}
