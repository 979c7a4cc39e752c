package repository

import (
	"context"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/database"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"gorm.io/gorm"
)

// ConsultationRepository handles consultation data operations
type ConsultationRepository struct {
	db *gorm.DB
}

// NewConsultationRepository creates a new consultation repository
func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(ctx context.Context, params domain.CreateConsultationParams) (*domain.Consultation, error) {
	row := database.Consultation{
		UserID:    params.UserID,
		Question:  params.Question,
		Response:  params.Response,
		AdWatched: params.AdWatched,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	c := toDomainConsultation(&row)
	return &c, nil
}

// ListByUser returns at most limit consultations, newest first. A
// non-positive limit returns everything.
func (r *ConsultationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Consultation, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []database.Consultation
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainConsultations(rows), nil
}

// ListByCreatedRange returns consultations created within [from, to], newest
// first.
func (r *ConsultationRepository) ListByCreatedRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Consultation, error) {
	var rows []database.Consultation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from.UTC(), to.UTC()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainConsultations(rows), nil
}

func (r *ConsultationRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&database.Consultation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainConsultations(rows []database.Consultation) []domain.Consultation {
	out := make([]domain.Consultation, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainConsultation(&rows[i]))
	}
	return out
}
