// Package recommendations stores the history of career predictions per user.
package recommendations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rec *entities.Recommendation) error {
	return database.MapError(r.db.WithContext(ctx).Create(rec).Error, "recommendation")
}

// ListForUser returns the user's predictions, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Recommendation, error) {
	if limit <= 0 {
		limit = 50
	}

	var recs []entities.Recommendation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
