// Package careers provides database operations for careers.
package careers

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

const what = "career"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, career *entities.Career) error {
	return database.MapError(r.db.WithContext(ctx).Create(career).Error, what)
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Career, error) {
	var career entities.Career
	if err := r.db.WithContext(ctx).First(&career, id).Error; err != nil {
		return nil, database.MapError(err, what)
	}
	return &career, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Career, error) {
	var careers []entities.Career
	err := r.db.WithContext(ctx).Order("id ASC").Find(&careers).Error
	return careers, err
}

// Update overwrites title and description. Ownership is checked by the caller.
func (r *Repository) Update(ctx context.Context, career *entities.Career) error {
	result := r.db.WithContext(ctx).Model(career).Select("title", "description").Updates(career)
	if result.Error != nil {
		return database.MapError(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return database.MapError(gorm.ErrRecordNotFound, what)
	}
	return nil
}

// Delete removes a career together with its courses.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Career{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.MapError(gorm.ErrRecordNotFound, what)
	}
	return nil
}
