package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/drink-helper/internal/domain"
)

// UserContext carries the optional biometrics included in the AI context.
type UserContext struct {
	Name     *string
	WeightKg *float64
	HeightCm *float64
}

// UserContextFrom extracts the biometrics of a profile. It returns nil for a
// nil user.
func UserContextFrom(u *domain.User) *UserContext {
	if u == nil {
		return nil
	}
	return &UserContext{Name: u.Name, WeightKg: u.WeightKg, HeightCm: u.HeightCm}
}

// BMI computes the body mass index from kilograms and centimeters.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// FormatContext renders a weekly summary and optional biometrics as the
// context block sent to the assistant. Total alcohol is the per-entry sum,
// never derived from the already aggregated volume.
func FormatContext(s Summary, uc *UserContext) string {
	var b strings.Builder

	b.WriteString("[This week's drinking data]\n")
	fmt.Fprintf(&b, "- Total volume: %sml (%.1fL)\n", formatNumber(s.TotalMl), s.TotalMl/1000)
	fmt.Fprintf(&b, "- Total pure alcohol: ~%.0fg\n", s.TotalAlcoholGrams)
	fmt.Fprintf(&b, "- Drinking days: %d / 7\n", s.DrinkDays)
	fmt.Fprintf(&b, "- Main drink: %s\n", s.MainDrinkLabel())

	b.WriteString("\n[Breakdown by drink]\n")
	if len(s.ByType) == 0 {
		b.WriteString("- No records")
	}
	for i, total := range s.ByType {
		if i > 0 {
			b.WriteString("\n")
		}
		info, _ := total.DrinkType.Info()
		fmt.Fprintf(&b, "- %s: %sml (%s %s), ~%.0fg alcohol",
			info.Label, formatNumber(total.VolumeMl), formatNumber(total.Amount),
			pluralize(info.Unit, total.Amount), total.AlcoholGrams)
	}

	if uc == nil || (uc.WeightKg == nil && uc.HeightCm == nil) {
		return b.String()
	}

	b.WriteString("\n\n[User profile]")
	if uc.Name != nil && *uc.Name != "" {
		fmt.Fprintf(&b, "\n- Name: %s", *uc.Name)
	}
	if uc.WeightKg != nil {
		fmt.Fprintf(&b, "\n- Weight: %skg", formatNumber(*uc.WeightKg))
	}
	if uc.HeightCm != nil {
		fmt.Fprintf(&b, "\n- Height: %scm", formatNumber(*uc.HeightCm))
	}
	if uc.WeightKg != nil && uc.HeightCm != nil && *uc.HeightCm > 0 {
		fmt.Fprintf(&b, "\n- BMI: %.1f", BMI(*uc.WeightKg, *uc.HeightCm))
	}

	return b.String()
}

// formatNumber prints whole numbers without a fraction and everything else
// with the shortest exact representation.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pluralize(unit string, amount float64) string {
	switch {
	case amount == 1:
		return unit
	case strings.HasSuffix(unit, "s"):
		return unit + "es"
	default:
		return unit + "s"
	}
}
