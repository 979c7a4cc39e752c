package repository

import (
	"errors"

	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"gorm.io/gorm"
)

// Repositories bundles the gorm-backed implementations of the domain
// repositories sharing one connection pool.
type Repositories struct {
	Users         *UserRepository
	DrinkLogs     *DrinkLogRepository
	Goals         *GoalRepository
	Consultations *ConsultationRepository
}

// NewRepositories creates all repositories on top of db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		DrinkLogs:     NewDrinkLogRepository(db),
		Goals:         NewGoalRepository(db),
		Consultations: NewConsultationRepository(db),
	}
}

var (
	_ domain.UserRepository         = (*UserRepository)(nil)
	_ domain.DrinkLogRepository     = (*DrinkLogRepository)(nil)
	_ domain.GoalRepository         = (*GoalRepository)(nil)
	_ domain.ConsultationRepository = (*ConsultationRepository)(nil)
)

// notFound translates gorm's sentinel into the domain one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
