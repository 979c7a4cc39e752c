package stats

import (
	"fmt"

	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

// GoalProgress reports how a user is doing against an active goal.
type GoalProgress struct {
	Goal domain.Goal `json:"goal"`

	// DrinkDays counts distinct drinking days in the goal's window: the
	// current week for weekly limits, start..today for sober challenges.
	DrinkDays int `json:"drinkDays"`
	Remaining int `json:"remaining"`

	// Weekly limit
	Exceeded bool `json:"exceeded,omitempty"`

	// Sober challenge
	ElapsedDays int  `json:"elapsedDays,omitempty"`
	SoberDays   int  `json:"soberDays,omitempty"`
	Completed   bool `json:"completed,omitempty"`
	Broken      bool `json:"broken,omitempty"`
}

// WeeklyLimitProgress compares this week's drinking days to the limit.
func WeeklyLimitProgress(goal domain.Goal, week Summary) GoalProgress {
	p := GoalProgress{Goal: goal, DrinkDays: week.DrinkDays}
	p.Remaining = max(goal.TargetValue-week.DrinkDays, 0)
	p.Exceeded = week.DrinkDays > goal.TargetValue
	return p
}

// SoberChallengeProgress evaluates a sober challenge from its start date up
// to today, given the logs of that window.
func SoberChallengeProgress(goal domain.Goal, logs []domain.DrinkLog, today string) (GoalProgress, error) {
	elapsed, err := utils.DaysBetween(goal.StartDate, today)
	if err != nil {
		return GoalProgress{}, fmt.Errorf("sober challenge %s: %w", goal.ID, err)
	}

	window := Summarize(logs, goal.StartDate, today)
	p := GoalProgress{
		Goal:        goal,
		DrinkDays:   window.DrinkDays,
		ElapsedDays: elapsed,
		SoberDays:   elapsed - window.DrinkDays,
		Broken:      window.DrinkDays > 0,
	}
	p.Completed = !p.Broken && elapsed >= goal.TargetValue
	if !p.Broken {
		p.Remaining = max(goal.TargetValue-elapsed, 0)
	}
	return p, nil
}
