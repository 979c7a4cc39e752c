// Package stats turns drink logs into the summaries shown on the stats
// screens and handed to the AI assistant. Everything here is pure.
package stats

import (
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

// NoMainDrinkLabel is shown when there is nothing to rank.
const NoMainDrinkLabel = "None"

// TypeTotal aggregates all logs of one drink type.
type TypeTotal struct {
	DrinkType    domain.DrinkType `json:"drinkType"`
	VolumeMl     float64          `json:"volumeMl"`
	Amount       float64          `json:"amount"`
	AlcoholGrams float64          `json:"alcoholGrams"`
}

// Summary is the aggregate of the logs inside a date window.
type Summary struct {
	StartDate         string            `json:"startDate,omitempty"`
	EndDate           string            `json:"endDate,omitempty"`
	TotalMl           float64           `json:"totalMl"`
	TotalAlcoholGrams float64           `json:"totalAlcoholGrams"`
	DrinkDays         int               `json:"drinkDays"`
	ByType            []TypeTotal       `json:"byType"`
	MainDrink         domain.DrinkType  `json:"mainDrink,omitempty"`
	DailyMl           [7]float64        `json:"dailyMl"` // indexed by time.Weekday, Sunday first
	Logs              []domain.DrinkLog `json:"-"`
}

// Summarize aggregates the logs whose date lies in [start, end]. An empty
// bound leaves that side of the window open. Dates are compared as
// YYYY-MM-DD strings.
//
// The main drink is the type with the largest total volume; equal totals
// resolve to the lexicographically smallest type name.
func Summarize(logs []domain.DrinkLog, start, end string) Summary {
	s := Summary{StartDate: start, EndDate: end, ByType: []TypeTotal{}}

	days := make(map[string]struct{})
	var perType [len(domain.AllDrinkTypes)]TypeTotal
	var seen [len(domain.AllDrinkTypes)]bool

	for _, log := range logs {
		if (start != "" && log.Date < start) || (end != "" && log.Date > end) {
			continue
		}
		s.Logs = append(s.Logs, log)

		grams := log.AlcoholGrams()
		s.TotalMl += log.VolumeMl
		s.TotalAlcoholGrams += grams
		days[log.Date] = struct{}{}

		if i := typeIndex(log.DrinkType); i >= 0 {
			perType[i].DrinkType = log.DrinkType
			perType[i].VolumeMl += log.VolumeMl
			perType[i].Amount += log.Amount
			perType[i].AlcoholGrams += grams
			seen[i] = true
		}

		if wd, err := utils.Weekday(log.Date); err == nil {
			s.DailyMl[wd] += log.VolumeMl
		}
	}
	s.DrinkDays = len(days)

	var mainMl float64
	for i := range perType {
		if !seen[i] {
			continue
		}
		total := perType[i]
		s.ByType = append(s.ByType, total)
		if s.MainDrink == "" || total.VolumeMl > mainMl ||
			(total.VolumeMl == mainMl && total.DrinkType < s.MainDrink) {
			s.MainDrink = total.DrinkType
			mainMl = total.VolumeMl
		}
	}

	return s
}

// MainDrinkLabel returns the display label of the main drink, or
// NoMainDrinkLabel when the window has no logs.
func (s Summary) MainDrinkLabel() string {
	if s.MainDrink == "" {
		return NoMainDrinkLabel
	}
	return s.MainDrink.Label()
}

// BusiestWeekday returns the weekday with the largest volume. Ties resolve to
// the earliest weekday, Sunday first. ok is false when every bucket is empty.
func (s Summary) BusiestWeekday() (day time.Weekday, ok bool) {
	var best float64
	for i, ml := range s.DailyMl {
		if ml > best {
			best = ml
			day = time.Weekday(i)
			ok = true
		}
	}
	return day, ok
}

// SoberDays is the number of days of a 7-day week without a drink.
func (s Summary) SoberDays() int {
	if s.DrinkDays >= 7 {
		return 0
	}
	return 7 - s.DrinkDays
}

func typeIndex(t domain.DrinkType) int {
	for i, known := range domain.AllDrinkTypes {
		if known == t {
			return i
		}
	}
	return -1
}
