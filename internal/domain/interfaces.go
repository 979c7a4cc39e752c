package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when an update or delete targets a
// row that does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

// CreateDrinkLogParams describes a new drink log entry.
type CreateDrinkLogParams struct {
	UserID    string
	Date      string
	DrinkType DrinkType
	Amount    float64
	Memo      *string
}

// DrinkLogUpdate holds the mutable fields of a drink log; nil means unchanged.
type DrinkLogUpdate struct {
	Amount *float64
	Memo   *string
}

// CreateGoalParams describes a new goal.
type CreateGoalParams struct {
	UserID      string
	Type        GoalType
	TargetValue int
	StartDate   string
	EndDate     *string
}

// GoalUpdate holds the mutable fields of a goal; nil means unchanged.
type GoalUpdate struct {
	TargetValue *int
	EndDate     *string
}

// ProfileUpdate holds the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	WeightKg *float64
	HeightCm *float64
}

// CreateConsultationParams describes a finished AI chat turn.
type CreateConsultationParams struct {
	UserID    string
	Question  string
	Response  string
	AdWatched bool
}

// UserRepository handles user persistence
type UserRepository interface {
	// Upsert inserts the user or touches updated_at if it already exists.
	Upsert(ctx context.Context, id string) (*User, error)
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
}

// DrinkLogRepository handles drink log persistence
type DrinkLogRepository interface {
	// Accumulate inserts a log or adds its amount to the existing log with the
	// same (user, date, drink type).
	Accumulate(ctx context.Context, params CreateDrinkLogParams) (*DrinkLog, error)
	ListByDate(ctx context.Context, userID, date string) ([]DrinkLog, error)
	// ListByDateRange returns logs with start <= date <= end, oldest first.
	ListByDateRange(ctx context.Context, userID, start, end string) ([]DrinkLog, error)
	Update(ctx context.Context, userID, id string, update DrinkLogUpdate) (*DrinkLog, error)
	Delete(ctx context.Context, userID, id string) error
}

// GoalRepository handles goal persistence
type GoalRepository interface {
	// Create deactivates any active goal of the same type and inserts the new one.
	Create(ctx context.Context, params CreateGoalParams) (*Goal, error)
	ListActive(ctx context.Context, userID string) ([]Goal, error)
	// GetActiveByType returns nil, nil when no goal of that type is active.
	GetActiveByType(ctx context.Context, userID string, goalType GoalType) (*Goal, error)
	Update(ctx context.Context, userID, id string, update GoalUpdate) (*Goal, error)
	Deactivate(ctx context.Context, userID, id string) error
}

// ConsultationRepository handles consultation persistence. Consultations are
// append-only.
type ConsultationRepository interface {
	Create(ctx context.Context, params CreateConsultationParams) (*Consultation, error)
	// ListByUser returns the newest consultations first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Consultation, error)
	ListByCreatedRange(ctx context.Context, userID string, from, to time.Time) ([]Consultation, error)
	Delete(ctx context.Context, userID, id string) error
}
