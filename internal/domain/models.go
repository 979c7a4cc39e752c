package domain

import (
	"time"
)

// User is the profile of a signed-in user. The ID comes from the upstream
// identity provider (a Telegram account or the mobile login).
type User struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name,omitempty"`
	WeightKg  *float64  `json:"weight,omitempty"`
	HeightCm  *float64  `json:"height,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DrinkLog is the amount of one drink type consumed on one day.
type DrinkLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	DrinkType DrinkType `json:"drinkType"`
	Amount    float64   `json:"amount"`
	VolumeMl  float64   `json:"volumeMl"`
	Memo      *string   `json:"memo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlcoholGrams is the estimated pure alcohol of this entry.
func (l DrinkLog) AlcoholGrams() float64 {
	return AlcoholGrams(l.DrinkType, l.VolumeMl)
}

// GoalType distinguishes the two kinds of goals.
type GoalType string

const (
	// GoalWeeklyLimit caps the number of drinking days per week.
	GoalWeeklyLimit GoalType = "weekly_limit"
	// GoalSoberChallenge is a run of consecutive sober days.
	GoalSoberChallenge GoalType = "sober_challenge"
)

func (t GoalType) Valid() bool {
	return t == GoalWeeklyLimit || t == GoalSoberChallenge
}

// Goal is a user goal; at most one goal per type is active at a time.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        GoalType  `json:"type"`
	TargetValue int       `json:"targetValue"`
	StartDate   string    `json:"startDate"`
	EndDate     *string   `json:"endDate,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Consultation is one question/answer turn with the AI assistant.
type Consultation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	AdWatched bool      `json:"adWatched"`
	CreatedAt time.Time `json:"createdAt"`
}
