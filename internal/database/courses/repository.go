// Package courses provides database operations for courses and their rating aggregates.
//
// Listings return entities.CourseSummary rows built with one explicit LEFT JOIN
// on ratings, so a course without ratings reports zero count and zero average.
package courses

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

const what = "course"

const summaryColumns = "courses.*, COUNT(ratings.id) AS rating_count, COALESCE(CAST(AVG(ratings.value) AS FLOAT), 0) AS average_rating"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a course after checking that its career exists.
func (r *Repository) Create(ctx context.Context, course *entities.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var careers int64
		if err := tx.Model(&entities.Career{}).Where("id = ?", course.CareerID).Count(&careers).Error; err != nil {
			return err
		}
		if careers == 0 {
			return fmt.Errorf("career %d: %w", course.CareerID, entities.ErrNotFound)
		}
		return database.MapError(tx.Create(course).Error, what)
	})
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Course, error) {
	var course entities.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, database.MapError(err, what)
	}
	return &course, nil
}

func (r *Repository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Course{}).
		Select(summaryColumns).
		Joins("LEFT JOIN ratings ON ratings.course_id = courses.id").
		Group("courses.id")
}

// GetSummary returns one course with its rating count and average.
func (r *Repository) GetSummary(ctx context.Context, id uint) (*entities.CourseSummary, error) {
	var rows []entities.CourseSummary
	if err := r.summaries(ctx).Where("courses.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, database.MapError(gorm.ErrRecordNotFound, what)
	}
	return &rows[0], nil
}

func (r *Repository) ListSummaries(ctx context.Context) ([]entities.CourseSummary, error) {
	var rows []entities.CourseSummary
	err := r.summaries(ctx).Order("courses.id ASC").Scan(&rows).Error
	return rows, err
}

// ListByCareer returns the courses of one career. A missing career yields entities.ErrNotFound.
func (r *Repository) ListByCareer(ctx context.Context, careerID uint) ([]entities.CourseSummary, error) {
	var careers int64
	if err := r.db.WithContext(ctx).Model(&entities.Career{}).Where("id = ?", careerID).Count(&careers).Error; err != nil {
		return nil, err
	}
	if careers == 0 {
		return nil, fmt.Errorf("career %d: %w", careerID, entities.ErrNotFound)
	}

	var rows []entities.CourseSummary
	err := r.summaries(ctx).Where("courses.career_id = ?", careerID).Order("courses.id ASC").Scan(&rows).Error
	return rows, err
}

// Update overwrites title and description. Ownership is checked by the caller.
func (r *Repository) Update(ctx context.Context, course *entities.Course) error {
	result := r.db.WithContext(ctx).Model(course).Select("title", "description").Updates(course)
	if result.Error != nil {
		return database.MapError(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return database.MapError(gorm.ErrRecordNotFound, what)
	}
	return nil
}

// Delete removes a course together with its ratings and enrollments.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.MapError(gorm.ErrRecordNotFound, what)
	}
	return nil
}
