package entities

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds. Values outside the range retract an existing rating.
const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_rating_user_course;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CourseID  uint      `gorm:"uniqueIndex:idx_rating_user_course;not null" json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Value     int       `gorm:"not null" json:"value"`
	HasRated  bool      `gorm:"default:false" json:"has_rated"`
	CreatedAt time.Time `json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) OwnerID() uuid.UUID {
	return r.UserID
}

// IsValidRatingValue reports whether v rates a course rather than retracting a rating.
func IsValidRatingValue(v int) bool {
	return v >= MinRatingValue && v <= MaxRatingValue
}

type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_enrollment_user_course;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CourseID  uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
