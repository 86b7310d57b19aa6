// Package enrollments tracks which users follow which courses.
package enrollments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

const what = "enrollment"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Enroll adds the user to a course. Enrolling twice yields entities.ErrConflict.
func (r *Repository) Enroll(ctx context.Context, userID uuid.UUID, courseID uint) (*entities.Enrollment, error) {
	enrollment := &entities.Enrollment{UserID: userID, CourseID: courseID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courses int64
		if err := tx.Model(&entities.Course{}).Where("id = ?", courseID).Count(&courses).Error; err != nil {
			return err
		}
		if courses == 0 {
			return fmt.Errorf("course %d: %w", courseID, entities.ErrNotFound)
		}
		return database.MapError(tx.Create(enrollment).Error, what)
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Unenroll removes the user from a course. Not being enrolled yields entities.ErrNotModified.
func (r *Repository) Unenroll(ctx context.Context, userID uuid.UUID, courseID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&entities.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("not enrolled: %w", entities.ErrNotModified)
	}
	return nil
}

// ListCourses returns the courses a user is enrolled in, oldest enrollment first.
func (r *Repository) ListCourses(ctx context.Context, userID uuid.UUID) ([]entities.Course, error) {
	var courses []entities.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.created_at ASC, courses.id ASC").
		Find(&courses).Error
	return courses, err
}
