package domain

import (
	"fmt"
	"math"
)

// DrinkType is the closed set of drinks a user can log.
type DrinkType string

const (
	DrinkSoju      DrinkType = "soju"
	DrinkBeer      DrinkType = "beer"
	DrinkWine      DrinkType = "wine"
	DrinkWhiskey   DrinkType = "whiskey"
	DrinkMakgeolli DrinkType = "makgeolli"
	DrinkEtc       DrinkType = "etc"
)

// AllDrinkTypes lists every drink type in display order.
var AllDrinkTypes = [...]DrinkType{
	DrinkSoju,
	DrinkBeer,
	DrinkWine,
	DrinkWhiskey,
	DrinkMakgeolli,
	DrinkEtc,
}

// DrinkInfo is the fixed reference data of a drink type.
type DrinkInfo struct {
	Label          string
	Icon           string
	Unit           string
	MlPerUnit      float64
	AlcoholPercent float64
}

// Info returns the reference data for t. The second result is false for
// values outside the enum.
func (t DrinkType) Info() (DrinkInfo, bool) {
	switch t {
	case DrinkSoju:
		return DrinkInfo{Label: "Soju", Icon: "🍶", Unit: "bottle", MlPerUnit: 360, AlcoholPercent: 17}, true
	case DrinkBeer:
		return DrinkInfo{Label: "Beer", Icon: "🍺", Unit: "bottle", MlPerUnit: 500, AlcoholPercent: 5}, true
	case DrinkWine:
		return DrinkInfo{Label: "Wine", Icon: "🍷", Unit: "bottle", MlPerUnit: 750, AlcoholPercent: 13}, true
	case DrinkWhiskey:
		return DrinkInfo{Label: "Whiskey", Icon: "🥃", Unit: "glass", MlPerUnit: 30, AlcoholPercent: 40}, true
	case DrinkMakgeolli:
		return DrinkInfo{Label: "Makgeolli", Icon: "🍵", Unit: "bottle", MlPerUnit: 750, AlcoholPercent: 6}, true
	case DrinkEtc:
		return DrinkInfo{Label: "Other", Icon: "🍸", Unit: "glass", MlPerUnit: 150, AlcoholPercent: 15}, true
	default:
		return DrinkInfo{}, false
	}
}

// Valid reports whether t is one of the known drink types.
func (t DrinkType) Valid() bool {
	_, ok := t.Info()
	return ok
}

// Label returns the display label, or the raw value for unknown types.
func (t DrinkType) Label() string {
	if info, ok := t.Info(); ok {
		return info.Label
	}
	return string(t)
}

// ParseDrinkType converts a raw name into a DrinkType.
func ParseDrinkType(s string) (DrinkType, error) {
	t := DrinkType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown drink type %q", s)
	}
	return t, nil
}

// VolumeMl converts a unit count into milliliters.
func VolumeMl(t DrinkType, amount float64) float64 {
	info, _ := t.Info()
	return amount * info.MlPerUnit
}

// AlcoholGrams estimates the pure ethanol in volumeMl of t:
// volume × ABV × 0.8 (density of ethanol) ÷ 100.
func AlcoholGrams(t DrinkType, volumeMl float64) float64 {
	info, _ := t.Info()
	return volumeMl * info.AlcoholPercent * 0.8 / 100
}

// AmountStep is the smallest loggable fraction of a unit.
const AmountStep = 0.5

// ValidateAmount rejects non-positive amounts and amounts that are not a
// multiple of AmountStep.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", amount)
	}
	if steps := amount / AmountStep; steps != math.Trunc(steps) {
		return fmt.Errorf("amount must be a multiple of %v, got %v", AmountStep, amount)
	}
	return nil
}
