// Package ratings stores course ratings.
//
// A (user, course) pair is either unrated or rated. Toggle moves between the two
// states inside one transaction:
//
//	unrated --value in [1,5]-->  rated      (already rated: ErrConflict)
//	rated   --other value---->  unrated    (nothing to retract: ErrNotModified)
//
// Course owners can never rate their own course (ErrForbidden).
package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/access"
	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

const what = "rating"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle rates or un-rates a course and reports whether a rating exists afterwards.
func (r *Repository) Toggle(ctx context.Context, userID uuid.UUID, courseID uint, value int) (bool, error) {
	hasRated := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course entities.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			return database.MapError(err, "course")
		}
		if access.Owns(&course, userID) {
			return fmt.Errorf("cannot rate own course: %w", entities.ErrForbidden)
		}

		var existing entities.Rating
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if entities.IsValidRatingValue(value) {
			if found {
				return fmt.Errorf("course already rated: %w", entities.ErrConflict)
			}
			rating := &entities.Rating{UserID: userID, CourseID: courseID, Value: value, HasRated: true}
			if err := tx.Create(rating).Error; err != nil {
				return database.MapError(err, what)
			}
			hasRated = true
			return nil
		}

		if !found {
			return fmt.Errorf("rating does not exist: %w", entities.ErrNotModified)
		}
		return tx.Delete(&existing).Error
	})

	return hasRated, err
}

// Get returns the caller's rating of a course.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID, courseID uint) (*entities.Rating, error) {
	var rating entities.Rating
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&rating).Error
	if err != nil {
		return nil, database.MapError(err, what)
	}
	return &rating, nil
}
