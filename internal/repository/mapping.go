package repository

import (
	"github.com/vladimiradmaev/drink-helper/internal/database"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
)

func toDomainUser(row *database.User) *domain.User {
	return &domain.User{
		ID:        row.ID,
		Name:      row.Name,
		WeightKg:  row.WeightKg,
		HeightCm:  row.HeightCm,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toDomainDrinkLog(row *database.DrinkLog) domain.DrinkLog {
	return domain.DrinkLog{
		ID:        row.ID,
		UserID:    row.UserID,
		Date:      row.Date,
		DrinkType: domain.DrinkType(row.DrinkType),
		Amount:    row.Amount,
		VolumeMl:  row.VolumeMl,
		Memo:      row.Memo,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainDrinkLogs(rows []database.DrinkLog) []domain.DrinkLog {
	logs := make([]domain.DrinkLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, toDomainDrinkLog(&rows[i]))
	}
	return logs
}

func toDomainGoal(row *database.Goal) domain.Goal {
	return domain.Goal{
		ID:          row.ID,
		UserID:      row.UserID,
		Type:        domain.GoalType(row.Type),
		TargetValue: row.TargetValue,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
}

func toDomainConsultation(row *database.Consultation) domain.Consultation {
	return domain.Consultation{
		ID:        row.ID,
		UserID:    row.UserID,
		Question:  row.Question,
		Response:  row.Response,
		AdWatched: row.AdWatched,
		CreatedAt: row.CreatedAt,
	}
}
